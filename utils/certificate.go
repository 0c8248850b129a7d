package utils

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
)

// CertificateData carries everything printed on a completion
// certificate.
type CertificateData struct {
	StudentName       string
	CourseName        string
	CertificateNumber string
	IssueDate         string
}

var (
	certBgR, certBgG, certBgB          = 26, 26, 46   // dark navy
	certAccentR, certAccentG, certAccentB = 233, 69, 96  // rose
	certMutedR, certMutedG, certMutedB = 200, 200, 210
)

// GenerateCertificatePDF renders the completion certificate: landscape
// page, double border with corner marks, centered name/course block,
// certificate number and issue date, signature lines and a seal. The
// layout is fixed geometry, so identical input yields an identical
// document.
func GenerateCertificatePDF(data CertificateData) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pageWidth, pageHeight := pdf.GetPageSize()
	centerX := pageWidth / 2

	// Background
	pdf.SetFillColor(certBgR, certBgG, certBgB)
	pdf.Rect(0, 0, pageWidth, pageHeight, "F")

	// Outer and inner borders
	pdf.SetDrawColor(certAccentR, certAccentG, certAccentB)
	pdf.SetLineWidth(1.0)
	pdf.Rect(7, 7, pageWidth-14, pageHeight-14, "D")
	pdf.SetLineWidth(0.3)
	pdf.Rect(12, 12, pageWidth-24, pageHeight-24, "D")

	// Corner marks
	pdf.SetLineWidth(1.0)
	const corner = 20.0
	pdf.Line(18, 18+corner, 18, 18)
	pdf.Line(18, 18, 18+corner, 18)
	pdf.Line(pageWidth-18-corner, 18, pageWidth-18, 18)
	pdf.Line(pageWidth-18, 18, pageWidth-18, 18+corner)
	pdf.Line(18, pageHeight-18-corner, 18, pageHeight-18)
	pdf.Line(18, pageHeight-18, 18+corner, pageHeight-18)
	pdf.Line(pageWidth-18-corner, pageHeight-18, pageWidth-18, pageHeight-18)
	pdf.Line(pageWidth-18, pageHeight-18, pageWidth-18, pageHeight-18-corner)

	centeredText := func(y float64, s string) {
		pdf.Text(centerX-pdf.GetStringWidth(s)/2, y, s)
	}

	// Institute name
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(certAccentR, certAccentG, certAccentB)
	centeredText(35, "Abbas Molla Computer")

	// Title
	pdf.SetFont("Helvetica", "B", 40)
	pdf.SetTextColor(255, 255, 255)
	centeredText(55, "C E R T I F I C A T E")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(certMutedR, certMutedG, certMutedB)
	centeredText(64, "O F   C O M P L E T I O N")

	pdf.SetFont("Helvetica", "", 10)
	centeredText(82, "THIS IS PROUDLY PRESENTED TO")

	// Student name
	pdf.SetFont("Helvetica", "BI", 34)
	pdf.SetTextColor(certAccentR, certAccentG, certAccentB)
	centeredText(98, data.StudentName)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(certMutedR, certMutedG, certMutedB)
	centeredText(112, "For successfully completing the course with dedication and excellence,")
	centeredText(118, "demonstrating outstanding commitment to learning and professional development.")

	// Course name
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(255, 255, 255)
	centeredText(132, data.CourseName)

	// Details row
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(certMutedR, certMutedG, certMutedB)
	pdf.Text(centerX-70, 150, "CERTIFICATE NO.")
	pdf.Text(centerX+30, 150, "DATE OF ISSUE")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(255, 255, 255)
	pdf.Text(centerX-70, 157, data.CertificateNumber)
	pdf.Text(centerX+30, 157, data.IssueDate)

	// Signature lines
	pdf.SetDrawColor(certMutedR, certMutedG, certMutedB)
	pdf.SetLineWidth(0.4)
	pdf.Line(centerX-85, 180, centerX-35, 180)
	pdf.Line(centerX+35, 180, centerX+85, 180)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(certMutedR, certMutedG, certMutedB)
	pdf.Text(centerX-70, 186, "Director")
	pdf.Text(centerX+48, 186, "Instructor")

	// Seal
	pdf.SetDrawColor(certAccentR, certAccentG, certAccentB)
	pdf.SetLineWidth(1.0)
	pdf.Circle(pageWidth-45, pageHeight-42, 16, "D")
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(certAccentR, certAccentG, certAccentB)
	pdf.Text(pageWidth-55, pageHeight-44, "VERIFIED")
	pdf.Text(pageWidth-57, pageHeight-39, "AUTHENTIC")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

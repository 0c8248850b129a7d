package utils

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// ReceiptData carries everything printed on a single payment receipt.
type ReceiptData struct {
	ReceiptNumber  string
	StudentName    string
	StudentEmail   string
	CourseName     string
	CourseFullName string
	CenterName     string
	PaymentDate    string
	Amount         int
	PaymentMethod  string
	TotalFee       int
	TotalPaid      int
	BalanceDue     int
	Notes          string
}

// StatementEntry is one ledger line on a fee statement.
type StatementEntry struct {
	ReceiptNumber string
	PaymentDate   string
	PaymentMethod string
	CourseName    string
	Amount        int
}

var (
	primaryR, primaryG, primaryB = 37, 99, 235   // blue
	accentR, accentG, accentB    = 16, 185, 129  // green
	textR, textG, textB          = 31, 41, 55    // near-black
	mutedR, mutedG, mutedB       = 107, 114, 128 // gray
)

// GenerateReceiptPDF renders a payment receipt. The layout is fixed
// geometry, so identical input yields an identical document.
func GenerateReceiptPDF(data ReceiptData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()

	// Header band
	pdf.SetFillColor(primaryR, primaryG, primaryB)
	pdf.Rect(0, 0, pageWidth, 50, "F")

	// Logo box
	pdf.SetFillColor(255, 255, 255)
	pdf.RoundedRect(15, 10, 30, 30, 4, "1234", "F")
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(primaryR, primaryG, primaryB)
	pdf.Text(20, 30, "AMC")

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(255, 255, 255)
	pdf.Text(55, 25, "PAYMENT RECEIPT")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(55, 35, "Abbas Molla Computer")

	// Receipt number and date box
	pdf.SetFillColor(243, 244, 246)
	pdf.RoundedRect(pageWidth-70, 55, 60, 30, 3, "1234", "F")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(mutedR, mutedG, mutedB)
	pdf.Text(pageWidth-65, 65, "Receipt No:")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(textR, textG, textB)
	pdf.Text(pageWidth-65, 73, data.ReceiptNumber)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(mutedR, mutedG, mutedB)
	pdf.Text(pageWidth-65, 80, "Date:")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(textR, textG, textB)
	pdf.Text(pageWidth-65, 88, data.PaymentDate)

	// Student information
	yPos := 100.0
	pdf.SetFillColor(249, 250, 251)
	pdf.RoundedRect(15, yPos-5, pageWidth-30, 45, 3, "1234", "F")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(primaryR, primaryG, primaryB)
	pdf.Text(20, yPos+5, "Student Information")

	centerName := data.CenterName
	if centerName == "" {
		centerName = "Not specified"
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(textR, textG, textB)
	pdf.Text(20, yPos+18, "Name: "+data.StudentName)
	pdf.Text(20, yPos+28, "Email: "+data.StudentEmail)
	pdf.Text(20, yPos+38, "Center: "+centerName)

	// Course details
	yPos = 155
	pdf.SetFillColor(249, 250, 251)
	pdf.RoundedRect(15, yPos-5, pageWidth-30, 35, 3, "1234", "F")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(primaryR, primaryG, primaryB)
	pdf.Text(20, yPos+5, "Course Details")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(textR, textG, textB)
	pdf.Text(20, yPos+18, "Course: "+data.CourseName)
	pdf.Text(20, yPos+28, "Full Name: "+data.CourseFullName)

	// Payment details table
	yPos = 200
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(primaryR, primaryG, primaryB)
	pdf.Text(20, yPos, "Payment Details")

	yPos += 10
	pdf.SetFillColor(primaryR, primaryG, primaryB)
	pdf.Rect(15, yPos, pageWidth-30, 10, "F")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(255, 255, 255)
	pdf.Text(20, yPos+7, "Description")
	pdf.Text(pageWidth-60, yPos+7, "Amount")

	yPos += 17
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(textR, textG, textB)
	pdf.Text(20, yPos, fmt.Sprintf("Payment (%s)", data.PaymentMethod))
	pdf.Text(pageWidth-60, yPos, formatRupees(data.Amount))

	// Totals
	yPos += 15
	pdf.SetDrawColor(mutedR, mutedG, mutedB)
	pdf.Line(15, yPos, pageWidth-15, yPos)

	yPos += 10
	pdf.SetTextColor(mutedR, mutedG, mutedB)
	pdf.Text(pageWidth-100, yPos, "Total Fee:")
	pdf.SetTextColor(textR, textG, textB)
	pdf.Text(pageWidth-60, yPos, formatRupees(data.TotalFee))

	yPos += 8
	pdf.SetTextColor(mutedR, mutedG, mutedB)
	pdf.Text(pageWidth-100, yPos, "Total Paid:")
	pdf.SetTextColor(accentR, accentG, accentB)
	pdf.Text(pageWidth-60, yPos, formatRupees(data.TotalPaid))

	yPos += 8
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(mutedR, mutedG, mutedB)
	pdf.Text(pageWidth-100, yPos, "Balance Due:")
	if data.BalanceDue > 0 {
		pdf.SetTextColor(220, 38, 38)
	} else {
		pdf.SetTextColor(accentR, accentG, accentB)
	}
	pdf.Text(pageWidth-60, yPos, formatRupees(data.BalanceDue))

	if data.Notes != "" {
		yPos += 12
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(mutedR, mutedG, mutedB)
		pdf.Text(20, yPos, "Notes: "+data.Notes)
	}

	// Footer
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(mutedR, mutedG, mutedB)
	pdf.Text(20, 285, "This is a computer-generated receipt and does not require a signature.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateStatementPDF renders a full fee statement for one student:
// every ledger entry plus the running totals.
func GenerateStatementPDF(studentName, studentEmail string, entries []StatementEntry, totalPaid int) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()

	pdf.SetFillColor(primaryR, primaryG, primaryB)
	pdf.Rect(0, 0, pageWidth, 40, "F")
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(255, 255, 255)
	pdf.Text(15, 20, "FEE STATEMENT")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(15, 30, "Abbas Molla Computer")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(textR, textG, textB)
	pdf.Text(15, 52, "Student: "+studentName)
	pdf.Text(15, 60, "Email: "+studentEmail)

	// Table header
	yPos := 75.0
	pdf.SetFillColor(primaryR, primaryG, primaryB)
	pdf.Rect(15, yPos, pageWidth-30, 10, "F")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(255, 255, 255)
	pdf.Text(18, yPos+7, "Receipt No.")
	pdf.Text(58, yPos+7, "Date")
	pdf.Text(90, yPos+7, "Course")
	pdf.Text(135, yPos+7, "Method")
	pdf.Text(pageWidth-45, yPos+7, "Amount")

	yPos += 17
	pdf.SetFont("Helvetica", "", 9)
	for _, entry := range entries {
		if yPos > 270 {
			pdf.AddPage()
			yPos = 20
		}
		pdf.SetTextColor(textR, textG, textB)
		pdf.Text(18, yPos, entry.ReceiptNumber)
		pdf.Text(58, yPos, entry.PaymentDate)
		pdf.Text(90, yPos, truncateText(entry.CourseName, 24))
		pdf.Text(135, yPos, entry.PaymentMethod)
		pdf.Text(pageWidth-45, yPos, formatRupees(entry.Amount))
		yPos += 8
	}

	yPos += 5
	pdf.SetDrawColor(mutedR, mutedG, mutedB)
	pdf.Line(15, yPos, pageWidth-15, yPos)

	yPos += 10
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(accentR, accentG, accentB)
	pdf.Text(pageWidth-90, yPos, "Total Paid: "+formatRupees(totalPaid))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatRupees(amount int) string {
	return fmt.Sprintf("Rs. %d", amount)
}

func truncateText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCertificateNumberFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		n := GenerateCertificateNumber()
		assert.Regexp(t, `^AMC-\d{4}-[A-Z0-9]{6}$`, n)
		seen[n] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestGenerateReceiptNumberFormat(t *testing.T) {
	a := GenerateReceiptNumber()
	b := GenerateReceiptNumber()
	assert.Regexp(t, `^RCPT-[A-F0-9]{8}$`, a)
	assert.NotEqual(t, a, b)
}

func TestGenerateOrderIDFormat(t *testing.T) {
	a := GenerateOrderID()
	b := GenerateOrderID()
	assert.Regexp(t, `^ENR-[a-f0-9]{12}$`, a)
	assert.NotEqual(t, a, b)
}

func TestGenerateReceiptPDF(t *testing.T) {
	data := ReceiptData{
		ReceiptNumber:  "RCPT-TEST0001",
		StudentName:    "Salma Khatun",
		StudentEmail:   "salma@example.com",
		CourseName:     "DCA",
		CourseFullName: "Diploma in Computer Applications",
		CenterName:     "Hatisala",
		PaymentDate:    "20 August 2026",
		Amount:         3000,
		PaymentMethod:  "cash",
		TotalFee:       8000,
		TotalPaid:      3000,
		BalanceDue:     5000,
	}

	pdfBytes, err := GenerateReceiptPDF(data)
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestGenerateCertificatePDF(t *testing.T) {
	pdfBytes, err := GenerateCertificatePDF(CertificateData{
		StudentName:       "Salma Khatun",
		CourseName:        "Advanced Diploma in Computer Applications",
		CertificateNumber: "AMC-2026-X7K2P9",
		IssueDate:         "20 August 2026",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestGenerateStatementPDF(t *testing.T) {
	entries := []StatementEntry{
		{ReceiptNumber: "RCPT-AAAA0001", PaymentDate: "01 Jul 2026", PaymentMethod: "cash", CourseName: "DCA", Amount: 3000},
		{ReceiptNumber: "RCPT-AAAA0002", PaymentDate: "01 Aug 2026", PaymentMethod: "upi", CourseName: "DCA", Amount: 2000},
	}

	pdfBytes, err := GenerateStatementPDF("Salma Khatun", "salma@example.com", entries, 5000)
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestBookingMessageIncludesLeadDetails(t *testing.T) {
	msg := BookingMessage("Rakib Hossain", "9733000001", "rakib@example.com", "DCA", "Hatisala", "Morning")
	assert.Contains(t, msg, "Rakib Hossain")
	assert.Contains(t, msg, "9733000001")
	assert.Contains(t, msg, "DCA")
	assert.Contains(t, msg, "Hatisala")
	assert.Contains(t, msg, "Morning")
}

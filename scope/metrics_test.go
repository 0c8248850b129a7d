package scope

import (
	"testing"

	"amc/models"

	"github.com/stretchr/testify/assert"
)

func TestCompletionPercentage(t *testing.T) {
	assert.Equal(t, 0, CompletionPercentage(0, 0), "no lessons means 0, not NaN")
	assert.Equal(t, 0, CompletionPercentage(0, 12))
	assert.Equal(t, 100, CompletionPercentage(12, 12))
	assert.Equal(t, 58, CompletionPercentage(7, 12))
	assert.Equal(t, 33, CompletionPercentage(1, 3))
}

func TestCompletionPercentageMonotonic(t *testing.T) {
	prev := 0
	for done := 0; done <= 20; done++ {
		cur := CompletionPercentage(done, 20)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
	assert.Equal(t, 100, prev)
}

func TestAttendancePercentage(t *testing.T) {
	assert.Equal(t, 0, AttendancePercentage(nil))

	rows := make([]models.Attendance, 10)
	for i := 0; i < 7; i++ {
		rows[i].Present = true
	}
	assert.Equal(t, 70, AttendancePercentage(rows))
}

func TestAmountDueSurfacesOverpayment(t *testing.T) {
	e := models.Enrollment{AmountPaid: 3000}
	assert.Equal(t, 5000, AmountDue(e, 8000))

	e.AmountPaid = 9000
	assert.Equal(t, -1000, AmountDue(e, 8000), "overpayment must not be clamped")
}

func TestAggregateRevenue(t *testing.T) {
	assert.Equal(t, 0, AggregateRevenue(nil))
	assert.Equal(t, 9500, AggregateRevenue([]models.Enrollment{
		{AmountPaid: 6000},
		{AmountPaid: 3000},
		{AmountPaid: 500},
	}))
}

func TestAverageProgress(t *testing.T) {
	assert.Equal(t, 0, AverageProgress(nil))
	assert.Equal(t, 50, AverageProgress([]int{0, 100}))
	assert.Equal(t, 67, AverageProgress([]int{50, 75, 75}))
}

func TestDerivePaymentStatus(t *testing.T) {
	assert.Equal(t, models.PaymentPending, DerivePaymentStatus(0, 6000))
	assert.Equal(t, models.PaymentPartial, DerivePaymentStatus(3000, 8000))
	assert.Equal(t, models.PaymentPaid, DerivePaymentStatus(6000, 6000))
	assert.Equal(t, models.PaymentPaid, DerivePaymentStatus(9000, 8000))
}

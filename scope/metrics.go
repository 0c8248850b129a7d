package scope

import (
	"math"

	"amc/models"
)

// CompletionPercentage returns the rounded share of completed lessons.
// Zero lessons means zero percent, not a division by zero.
func CompletionPercentage(completedLessons, totalLessons int) int {
	if totalLessons <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completedLessons) / float64(totalLessons)))
}

// CountCompleted counts the completed rows of an enrollment's lesson
// progress.
func CountCompleted(progress []models.LessonProgress) int {
	n := 0
	for _, p := range progress {
		if p.Completed {
			n++
		}
	}
	return n
}

// AttendancePercentage returns the rounded share of present sessions.
func AttendancePercentage(rows []models.Attendance) int {
	if len(rows) == 0 {
		return 0
	}
	present := 0
	for _, r := range rows {
		if r.Present {
			present++
		}
	}
	return int(math.Round(100 * float64(present) / float64(len(rows))))
}

// AmountDue is the outstanding balance on an enrollment. A negative
// result means overpayment and is returned as-is so admins can spot the
// anomaly.
func AmountDue(e models.Enrollment, courseFee int) int {
	return courseFee - e.AmountPaid
}

// AggregateRevenue sums AmountPaid over an already-scoped enrollment
// set.
func AggregateRevenue(enrollments []models.Enrollment) int {
	total := 0
	for _, e := range enrollments {
		total += e.AmountPaid
	}
	return total
}

// AverageProgress is the arithmetic mean of completion percentages; an
// empty set averages to zero.
func AverageProgress(percentages []int) int {
	if len(percentages) == 0 {
		return 0
	}
	sum := 0
	for _, p := range percentages {
		sum += p
	}
	return int(math.Round(float64(sum) / float64(len(percentages))))
}

// DerivePaymentStatus maps the summed ledger against the course fee.
// The ledger is the single authority: paid iff the total covers the
// fee, partial for anything above zero, pending otherwise.
func DerivePaymentStatus(totalPaid, courseFee int) string {
	switch {
	case totalPaid >= courseFee:
		return models.PaymentPaid
	case totalPaid > 0:
		return models.PaymentPartial
	default:
		return models.PaymentPending
	}
}

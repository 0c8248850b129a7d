package utils

import (
	"amc/database"
	"amc/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeReminderScheduler sets up the daily payment reminder job
func InitializeReminderScheduler() {
	log.Println("[REMINDER-SCHEDULER] Initializing payment reminder scheduler...")

	c := cron.New(cron.WithLocation(time.UTC))

	// Run daily at 02:30 UTC (early morning IST) to nudge students
	// with outstanding dues
	c.AddFunc("30 2 * * *", func() {
		log.Println("[REMINDER-SCHEDULER] Running daily payment reminder check...")
		ProcessPaymentReminders()
	})

	c.Start()
	log.Println("[REMINDER-SCHEDULER] Payment reminder scheduler started - runs daily at 02:30 UTC")
}

// ProcessPaymentReminders emails every active enrollment that still has
// an unpaid balance.
func ProcessPaymentReminders() {
	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.
		Where("status = ? AND payment_status IN ? AND is_deleted = ?",
			models.EnrollmentActive, []string{models.PaymentPending, models.PaymentPartial}, false).
		Preload("Course").
		Find(&enrollments).Error; err != nil {
		log.Printf("[REMINDER-SCHEDULER] Error fetching enrollments with dues: %v", err)
		return
	}

	log.Printf("[REMINDER-SCHEDULER] Found %d enrollments with outstanding dues", len(enrollments))

	for _, e := range enrollments {
		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", e.UserID, false).First(&user).Error; err != nil {
			log.Printf("[REMINDER-SCHEDULER] Error fetching user %d: %v", e.UserID, err)
			continue
		}

		due := e.Course.Fee - e.AmountPaid
		if due <= 0 {
			continue
		}

		SendPaymentReminderEmail(user.Email, user.FullName, e.Course.Name, due)

		db.Create(&models.Notification{
			UserID:  user.ID,
			Type:    models.NotificationPaymentReminder,
			Title:   "Payment Reminder",
			Message: "Reminder sent for " + e.Course.Name,
		})

		log.Printf("[REMINDER-SCHEDULER] Sent payment reminder for enrollment %d to %s", e.ID, user.Email)
	}
}

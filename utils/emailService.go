package utils

import (
	"amc/config"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends a single HTML email through Sendgrid. It runs in
// background goroutines, so it must never panic on missing config.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig == nil || config.AppConfig.SendgridApiKey == "" {
		log.Printf("Sendgrid not configured, skipping email to %s (%s)", toEmail, subject)
		return nil
	}

	from := mail.NewEmail(config.AppConfig.EmailFromName, config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 300 {
		log.Printf("Sendgrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// getEmailTemplate wraps body content in the institute's house layout.
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Segoe UI', Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 12px; overflow: hidden; box-shadow: 0 10px 40px rgba(0,0,0,0.1); }
			.header { background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #333333; line-height: 1.8; }
			.content h2 { color: #667eea; margin-top: 0; }
			.info-box { background: linear-gradient(135deg, #f5f7fa 0%%, #c3cfe2 100%%); padding: 20px; border-radius: 8px; margin: 20px 0; }
			.amount { font-size: 28px; font-weight: bold; color: #333; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>ABBAS MOLLA COMPUTER</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				Best regards, Abbas Molla Computer Team<br>
				&#128222; +91 97330 89257
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendAdmissionEmail welcomes a newly admitted student.
func SendAdmissionEmail(toEmail, name, courseName string) {
	if courseName == "" {
		courseName = "our course"
	}
	body := fmt.Sprintf(`
		<p>Dear <strong>%s</strong>,</p>
		<p>Congratulations! Your admission to <strong>%s</strong> has been confirmed!</p>
		<div class="info-box">
			<p>&#9989; Access your dashboard to view course materials</p>
			<p>&#9989; Track your progress and attendance</p>
			<p>&#9989; Connect with instructors</p>
		</div>`, name, courseName)

	if err := SendEmail(name, toEmail, "Welcome to Abbas Molla Computer! Admission Confirmed", getEmailTemplate("Welcome Aboard!", body)); err != nil {
		log.Printf("Failed to send admission email to %s: %v", toEmail, err)
	}
}

// SendCompletionEmail congratulates a student on finishing a course.
func SendCompletionEmail(toEmail, name, courseName, certificateNumber string) {
	body := fmt.Sprintf(`
		<p>Dear <strong>%s</strong>,</p>
		<p>Congratulations on successfully completing <strong>%s</strong>!</p>
		<div class="info-box" style="text-align:center;">
			<p>Certificate Number</p>
			<p class="amount">%s</p>
		</div>
		<p>Your certificate is now available in your dashboard. Keep learning, keep growing!</p>`,
		name, courseName, certificateNumber)

	subject := fmt.Sprintf("Congratulations! You've Completed %s", courseName)
	if err := SendEmail(name, toEmail, subject, getEmailTemplate("Course Completed!", body)); err != nil {
		log.Printf("Failed to send completion email to %s: %v", toEmail, err)
	}
}

// SendPaymentReminderEmail nudges a student about an outstanding balance.
func SendPaymentReminderEmail(toEmail, name, courseName string, amountDue int) {
	body := fmt.Sprintf(`
		<p>Dear <strong>%s</strong>,</p>
		<p>This is a friendly reminder about your pending payment for <strong>%s</strong>.</p>
		<div class="info-box" style="text-align:center;">
			<p>Amount Due</p>
			<p class="amount">&#8377;%d</p>
		</div>
		<p>Please complete your payment at your earliest convenience. Contact us if you have any questions.</p>`,
		name, courseName, amountDue)

	subject := fmt.Sprintf("Payment Reminder - %s", courseName)
	if err := SendEmail(name, toEmail, subject, getEmailTemplate("Payment Reminder", body)); err != nil {
		log.Printf("Failed to send payment reminder to %s: %v", toEmail, err)
	}
}

// SendEnrollmentConfirmedEmail confirms a settled online payment.
func SendEnrollmentConfirmedEmail(toEmail, name, courseName, centerName string, amountPaid int, paymentRef string) {
	body := fmt.Sprintf(`
		<p>Dear <strong>%s</strong>,</p>
		<p>Your payment has been successfully processed and your enrollment is confirmed!</p>
		<div class="info-box">
			<p><strong>Course:</strong> %s</p>
			<p><strong>Center:</strong> %s</p>
			<p><strong>Amount Paid:</strong> &#8377;%d</p>
			<p><strong>Payment ID:</strong> %s</p>
		</div>
		<p>Please visit our center to complete your admission formalities. Bring this email as proof of payment.</p>`,
		name, courseName, centerName, amountPaid, paymentRef)

	subject := fmt.Sprintf("Enrollment Confirmed - %s", courseName)
	if err := SendEmail(name, toEmail, subject, getEmailTemplate("Enrollment Confirmed!", body)); err != nil {
		log.Printf("Failed to send enrollment confirmation to %s: %v", toEmail, err)
	}
}

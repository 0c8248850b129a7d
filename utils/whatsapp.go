package utils

import (
	"amc/config"
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"
)

// SendWhatsAppText relays a booking message to the front-desk WhatsApp
// number through the configured gateway. Offline enrollments are
// handled over WhatsApp, so this is best-effort: a failure is logged
// and the booking still stands.
func SendWhatsAppText(message string) error {
	if config.AppConfig.WhatsAppApiUrl == "" {
		log.Println("WHATSAPP_API_URL not configured, skipping WhatsApp relay")
		return nil
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+config.AppConfig.WhatsAppApiKey).
		SetBody(map[string]string{
			"to":   config.AppConfig.FrontDeskPhone,
			"text": message,
		}).
		Post(config.AppConfig.WhatsAppApiUrl)
	if err != nil {
		log.Printf("Error sending WhatsApp text: %v", err)
		return err
	}

	if resp.StatusCode() >= 300 {
		log.Printf("WhatsApp gateway returned %d: %s", resp.StatusCode(), resp.String())
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode())
	}

	return nil
}

// BookingMessage formats the offline-enrollment text sent to the front
// desk.
func BookingMessage(name, phone, email, courseName, centerName, preferredTime string) string {
	if email == "" {
		email = "N/A"
	}
	if preferredTime == "" {
		preferredTime = "Not specified"
	}
	return fmt.Sprintf(
		"New Enrollment Request\nName: %s\nPhone: %s\nEmail: %s\nCourse: %s\nCenter: %s\nPreferred Time: %s",
		name, phone, email, courseName, centerName, preferredTime,
	)
}

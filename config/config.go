package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	// Midtrans payment gateway
	MidtransServerKey  string
	MidtransProduction bool

	// Sendgrid email
	SendgridApiKey string
	EmailSender    string
	EmailFromName  string

	// WhatsApp text relay for offline bookings
	WhatsAppApiUrl string
	WhatsAppApiKey string
	FrontDeskPhone string

	// Redirect targets for hosted checkout
	PaymentSuccessURL string
	PaymentCancelURL  string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		MidtransServerKey:  getEnv("MIDTRANS_SERVER_KEY", ""),
		MidtransProduction: getEnvBool("MIDTRANS_PRODUCTION", false),

		SendgridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@abbasmollacomputer.com"),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "Abbas Molla Computer"),

		WhatsAppApiUrl: getEnv("WHATSAPP_API_URL", ""),
		WhatsAppApiKey: getEnv("WHATSAPP_API_KEY", ""),
		FrontDeskPhone: getEnv("FRONT_DESK_PHONE", "919733089257"),

		PaymentSuccessURL: getEnv("PAYMENT_SUCCESS_URL", "https://abbasmollacomputer.com/payment-success"),
		PaymentCancelURL:  getEnv("PAYMENT_CANCEL_URL", "https://abbasmollacomputer.com/?payment=cancelled"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.MidtransServerKey == "" {
		log.Println("Warning: MIDTRANS_SERVER_KEY is empty. Online payments will fail.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvBool retrieves an environment variable as a boolean or returns the default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}

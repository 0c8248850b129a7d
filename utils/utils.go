package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

const certCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCertificateNumber returns a number like AMC-2026-X7K2P9.
func GenerateCertificateNumber() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = certCharset[rng.Intn(len(certCharset))]
	}
	return fmt.Sprintf("AMC-%d-%s", time.Now().Year(), string(suffix))
}

// GenerateReceiptNumber returns a unique receipt number like RCPT-9F4A2C1B.
func GenerateReceiptNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "RCPT-" + id[:8]
}

// GenerateOrderID returns a unique checkout order id for the payment
// gateway, e.g. ENR-7b14c0de90aa.
func GenerateOrderID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ENR-" + id[:12]
}

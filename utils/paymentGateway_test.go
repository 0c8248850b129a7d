package utils

import (
	"amc/config"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSnapRequestFields(t *testing.T) {
	config.LoadConfig()

	req := buildSnapRequest(CheckoutInput{
		OrderID:       "ENR-abc123def456",
		Amount:        6000,
		CourseName:    "DCA",
		CenterName:    "Hatisala",
		StudentName:   "Rakib Hossain",
		StudentPhone:  "9733000001",
		StudentEmail:  "rakib@example.com",
		PreferredTime: "Morning",
	})

	assert.Equal(t, "ENR-abc123def456", req.TransactionDetails.OrderID)
	assert.Equal(t, int64(6000), req.TransactionDetails.GrossAmt)
	assert.Equal(t, "Hatisala", req.CustomField1)
	assert.Equal(t, "Morning", req.CustomField2)

	require.NotNil(t, req.Items)
	items := *req.Items
	require.Len(t, items, 1)
	assert.Equal(t, "DCA Course Enrollment", items[0].Name)
	assert.Equal(t, int64(6000), items[0].Price)

	require.NotNil(t, req.CustomerDetail)
	assert.Equal(t, "rakib@example.com", req.CustomerDetail.Email)
}

func TestBuildSnapRequestDefaultsPreferredTime(t *testing.T) {
	config.LoadConfig()

	req := buildSnapRequest(CheckoutInput{
		OrderID:    "ENR-abc123def456",
		Amount:     3000,
		CourseName: "CCA",
		CenterName: "Satulia",
	})

	assert.Equal(t, "Not specified", req.CustomField2)
}

func TestCreateCheckoutSessionRejectsBadInput(t *testing.T) {
	config.LoadConfig()

	_, _, err := CreateCheckoutSession(CheckoutInput{OrderID: "ENR-x", Amount: 0})
	assert.Error(t, err)

	_, _, err = CreateCheckoutSession(CheckoutInput{OrderID: "", Amount: 100})
	assert.Error(t, err)
}

func TestVerifyGatewaySignature(t *testing.T) {
	config.LoadConfig()
	config.AppConfig.MidtransServerKey = "unit-test-key"

	sum := sha512.Sum512([]byte("ENR-1" + "200" + "6000.00" + "unit-test-key"))
	valid := hex.EncodeToString(sum[:])

	assert.True(t, VerifyGatewaySignature("ENR-1", "200", "6000.00", valid))
	assert.False(t, VerifyGatewaySignature("ENR-1", "200", "6000.00", "forged"))
	assert.False(t, VerifyGatewaySignature("ENR-2", "200", "6000.00", valid))
}

func TestSendEmailSkipsWhenUnconfigured(t *testing.T) {
	saved := config.AppConfig
	defer func() { config.AppConfig = saved }()

	config.AppConfig = nil
	assert.NoError(t, SendEmail("Salma", "salma@example.com", "hello", "<p>hi</p>"))

	config.LoadConfig()
	config.AppConfig.SendgridApiKey = ""
	assert.NoError(t, SendEmail("Salma", "salma@example.com", "hello", "<p>hi</p>"))
}

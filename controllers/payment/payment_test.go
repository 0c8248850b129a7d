package paymentController

import (
	"amc/config"
	"amc/database"
	"amc/models"
	"bytes"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testServerKey = "test-server-key"

func setupWebhookTest(t *testing.T) (*gorm.DB, *fiber.App) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	config.LoadConfig()
	config.AppConfig.MidtransServerKey = testServerKey
	config.AppConfig.SaltRound = 4

	app := fiber.New()
	app.Post("/payment/webhook", Webhook)
	return db, app
}

func signNotification(orderID, statusCode, grossAmount string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + testServerKey))
	return hex.EncodeToString(sum[:])
}

func seedCheckout(t *testing.T, db *gorm.DB, orderID string, amount int) (models.Course, models.Center) {
	t.Helper()

	course := models.Course{Name: "DCA", FullName: "Diploma in Computer Applications", Fee: amount}
	require.NoError(t, db.Create(&course).Error)

	center := models.Center{Name: "Hatisala"}
	require.NoError(t, db.Create(&center).Error)

	payload, err := json.Marshal(checkoutPayload{
		Name:     "Rofikul Islam",
		Phone:    "9733000003",
		Email:    "rofikul@example.com",
		CourseID: course.ID,
		CenterID: center.ID,
		Amount:   amount,
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.PaymentGatewayEvent{
		OrderID:           orderID,
		TransactionStatus: "created",
		GrossAmount:       amount,
		Payload:           datatypes.JSON(payload),
	}).Error)

	return course, center
}

func postNotification(t *testing.T, app *fiber.App, note map[string]interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(note)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, "/payment/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	db, app := setupWebhookTest(t)
	seedCheckout(t, db, "ENR-sig1", 6000)

	resp := postNotification(t, app, map[string]interface{}{
		"order_id":           "ENR-sig1",
		"status_code":        "200",
		"gross_amount":       "6000.00",
		"signature_key":      "forged",
		"transaction_status": "settlement",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var count int64
	db.Model(&models.Enrollment{}).Count(&count)
	assert.Zero(t, count)
}

func TestWebhookRejectsUnknownOrder(t *testing.T) {
	_, app := setupWebhookTest(t)

	resp := postNotification(t, app, map[string]interface{}{
		"order_id":           "ENR-missing",
		"status_code":        "200",
		"gross_amount":       "6000.00",
		"signature_key":      signNotification("ENR-missing", "200", "6000.00"),
		"transaction_status": "settlement",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestWebhookSettlementCreatesEnrollmentAndLedger(t *testing.T) {
	db, app := setupWebhookTest(t)
	course, center := seedCheckout(t, db, "ENR-settle1", 6000)

	resp := postNotification(t, app, map[string]interface{}{
		"order_id":           "ENR-settle1",
		"status_code":        "200",
		"gross_amount":       "6000.00",
		"signature_key":      signNotification("ENR-settle1", "200", "6000.00"),
		"transaction_status": "settlement",
		"payment_type":       "qris",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, db.Where("email = ?", "rofikul@example.com").First(&user).Error)
	assert.Equal(t, models.RoleStudent, user.Role)
	require.NotNil(t, user.CenterID)
	assert.Equal(t, center.ID, *user.CenterID)

	var enrollment models.Enrollment
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&enrollment).Error)
	assert.Equal(t, course.ID, enrollment.CourseID)
	assert.Equal(t, models.EnrollmentActive, enrollment.Status)
	assert.Equal(t, 6000, enrollment.AmountPaid)
	assert.Equal(t, models.PaymentPaid, enrollment.PaymentStatus)

	var payment models.PaymentHistory
	require.NoError(t, db.Where("enrollment_id = ?", enrollment.ID).First(&payment).Error)
	assert.Equal(t, 6000, payment.Amount)
	assert.Equal(t, "online", payment.PaymentMethod)

	var event models.PaymentGatewayEvent
	require.NoError(t, db.Where("order_id = ?", "ENR-settle1").First(&event).Error)
	assert.Equal(t, "settlement", event.TransactionStatus)
	require.NotNil(t, event.EnrollmentID)
	assert.Equal(t, enrollment.ID, *event.EnrollmentID)
}

func TestWebhookPartialSettlementLeavesDues(t *testing.T) {
	db, app := setupWebhookTest(t)
	seedCheckout(t, db, "ENR-partial1", 8000)

	// The gateway settles a discounted 3000 while the fee is 8000.
	resp := postNotification(t, app, map[string]interface{}{
		"order_id":           "ENR-partial1",
		"status_code":        "200",
		"gross_amount":       "3000.00",
		"signature_key":      signNotification("ENR-partial1", "200", "3000.00"),
		"transaction_status": "settlement",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var enrollment models.Enrollment
	require.NoError(t, db.First(&enrollment).Error)
	assert.Equal(t, 3000, enrollment.AmountPaid)
	assert.Equal(t, models.PaymentPartial, enrollment.PaymentStatus)
}

func TestWebhookReplayIsNoOp(t *testing.T) {
	db, app := setupWebhookTest(t)
	seedCheckout(t, db, "ENR-replay1", 6000)

	note := map[string]interface{}{
		"order_id":           "ENR-replay1",
		"status_code":        "200",
		"gross_amount":       "6000.00",
		"signature_key":      signNotification("ENR-replay1", "200", "6000.00"),
		"transaction_status": "settlement",
	}

	resp := postNotification(t, app, note)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Redelivery of the same settlement.
	resp = postNotification(t, app, note)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var enrollments int64
	db.Model(&models.Enrollment{}).Count(&enrollments)
	assert.Equal(t, int64(1), enrollments)

	var payments int64
	db.Model(&models.PaymentHistory{}).Count(&payments)
	assert.Equal(t, int64(1), payments)
}

func TestWebhookNonSettlementOnlyRecordsStatus(t *testing.T) {
	db, app := setupWebhookTest(t)
	seedCheckout(t, db, "ENR-expire1", 6000)

	resp := postNotification(t, app, map[string]interface{}{
		"order_id":           "ENR-expire1",
		"status_code":        "407",
		"gross_amount":       "6000.00",
		"signature_key":      signNotification("ENR-expire1", "407", "6000.00"),
		"transaction_status": "expire",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var event models.PaymentGatewayEvent
	require.NoError(t, db.Where("order_id = ?", "ENR-expire1").First(&event).Error)
	assert.Equal(t, "expire", event.TransactionStatus)

	var enrollments int64
	db.Model(&models.Enrollment{}).Count(&enrollments)
	assert.Zero(t, enrollments)
}

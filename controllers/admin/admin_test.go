package adminController

import (
	"amc/config"
	"amc/database"
	"amc/middleware"
	"amc/models"
	"amc/scope"
	adminValidator "amc/validators/admin"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	database.Database = database.DbInstance{Db: db}
	config.LoadConfig()
	return db
}

// injectViewer stands in for JWTMiddleware + LoadViewer on test apps.
func injectViewer(v scope.Viewer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("viewer", v)
		return c.Next()
	}
}

func seedEnrollment(t *testing.T, db *gorm.DB, fee int, centerID *uint) models.Enrollment {
	t.Helper()

	user := models.User{FullName: "Rakib Hossain", Email: fmt.Sprintf("rakib+%d@example.com", time.Now().UnixNano()), Phone: "9733000001", Role: models.RoleStudent, Password: "x", CenterID: centerID}
	require.NoError(t, db.Create(&user).Error)

	course := models.Course{Name: "DCA", FullName: "Diploma in Computer Applications", Duration: "12 months", Fee: fee}
	require.NoError(t, db.Create(&course).Error)

	enrollment := models.Enrollment{
		UserID:         user.ID,
		CourseID:       course.ID,
		CenterID:       centerID,
		EnrollmentDate: time.Now(),
		Status:         models.EnrollmentActive,
		PaymentStatus:  models.PaymentPending,
	}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment
}

func postJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	if resp.Header.Get("Content-Type") != "" {
		_ = json.NewDecoder(resp.Body).Decode(&parsed)
	}
	return resp, parsed
}

func adminApp(v scope.Viewer) *fiber.App {
	app := fiber.New()
	app.Use(injectViewer(v))
	app.Patch("/enrollments/:id/status", adminValidator.UpdateEnrollmentStatus(), UpdateEnrollmentStatus)
	app.Post("/enrollments/:id/payments", adminValidator.RecordPayment(), RecordPayment)
	app.Post("/enrollments/:id/attendance", adminValidator.MarkAttendance(), MarkAttendance)
	app.Post("/enrollments/:id/certificate", adminValidator.IDParam(), IssueCertificate)
	return app
}

var globalAdmin = scope.Viewer{UserID: 999, Role: models.RoleAdmin, HomeCenterID: nil}

func TestRecordPaymentAccumulatesAcrossLedger(t *testing.T) {
	db := setupTestDB(t)
	enrollment := seedEnrollment(t, db, 8000, nil)
	app := adminApp(globalAdmin)

	resp, _ := postJSON(t, app, fiber.MethodPost,
		fmt.Sprintf("/enrollments/%d/payments", enrollment.ID),
		fiber.Map{"amount": 3000, "payment_method": "cash"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var after models.Enrollment
	require.NoError(t, db.First(&after, enrollment.ID).Error)
	assert.Equal(t, 3000, after.AmountPaid)
	assert.Equal(t, models.PaymentPartial, after.PaymentStatus)

	resp, _ = postJSON(t, app, fiber.MethodPost,
		fmt.Sprintf("/enrollments/%d/payments", enrollment.ID),
		fiber.Map{"amount": 5000, "payment_method": "upi"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&after, enrollment.ID).Error)
	assert.Equal(t, 8000, after.AmountPaid)
	assert.Equal(t, models.PaymentPaid, after.PaymentStatus)

	var ledger []models.PaymentHistory
	require.NoError(t, db.Where("enrollment_id = ?", enrollment.ID).Find(&ledger).Error)
	assert.Len(t, ledger, 2)
}

func TestRecordPaymentExactFeeClearsDues(t *testing.T) {
	db := setupTestDB(t)
	enrollment := seedEnrollment(t, db, 6000, nil)
	app := adminApp(globalAdmin)

	resp, body := postJSON(t, app, fiber.MethodPost,
		fmt.Sprintf("/enrollments/%d/payments", enrollment.ID),
		fiber.Map{"amount": 6000})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["amount_due"])
	assert.Equal(t, models.PaymentPaid, data["payment_status"])
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	db := setupTestDB(t)
	enrollment := seedEnrollment(t, db, 6000, nil)
	app := adminApp(globalAdmin)

	resp, _ := postJSON(t, app, fiber.MethodPost,
		fmt.Sprintf("/enrollments/%d/payments", enrollment.ID),
		fiber.Map{"amount": 0})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var ledger []models.PaymentHistory
	require.NoError(t, db.Where("enrollment_id = ?", enrollment.ID).Find(&ledger).Error)
	assert.Empty(t, ledger)
}

func TestBoundAdminCannotReachOtherCenterEnrollment(t *testing.T) {
	db := setupTestDB(t)

	centerA := models.Center{Name: "Hatisala"}
	centerB := models.Center{Name: "Satulia"}
	require.NoError(t, db.Create(&centerA).Error)
	require.NoError(t, db.Create(&centerB).Error)

	enrollment := seedEnrollment(t, db, 5000, &centerB.ID)

	boundAdmin := scope.Viewer{UserID: 500, Role: models.RoleAdmin, HomeCenterID: &centerA.ID}
	app := adminApp(boundAdmin)

	resp, _ := postJSON(t, app, fiber.MethodPost,
		fmt.Sprintf("/enrollments/%d/payments", enrollment.ID),
		fiber.Map{"amount": 1000})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStatusTransitionRules(t *testing.T) {
	db := setupTestDB(t)
	enrollment := seedEnrollment(t, db, 5000, nil)
	app := adminApp(globalAdmin)

	path := fmt.Sprintf("/enrollments/%d/status", enrollment.ID)

	// active -> cancelled
	resp, _ := postJSON(t, app, fiber.MethodPatch, path, fiber.Map{"status": "cancelled"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// cancelled -> active (reactivation)
	resp, _ = postJSON(t, app, fiber.MethodPatch, path, fiber.Map{"status": "active"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// active -> completed
	resp, _ = postJSON(t, app, fiber.MethodPatch, path, fiber.Map{"status": "completed"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// completed is terminal
	resp, _ = postJSON(t, app, fiber.MethodPatch, path, fiber.Map{"status": "active"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var after models.Enrollment
	require.NoError(t, db.First(&after, enrollment.ID).Error)
	assert.Equal(t, models.EnrollmentCompleted, after.Status)
}

func TestMarkAttendanceOverwritesSameDay(t *testing.T) {
	db := setupTestDB(t)
	enrollment := seedEnrollment(t, db, 5000, nil)
	app := adminApp(globalAdmin)

	path := fmt.Sprintf("/enrollments/%d/attendance", enrollment.ID)

	resp, _ := postJSON(t, app, fiber.MethodPost, path,
		fiber.Map{"present": false, "session_date": "2026-08-20"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = postJSON(t, app, fiber.MethodPost, path,
		fiber.Map{"present": true, "session_date": "2026-08-20", "notes": "came late"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rows []models.Attendance
	require.NoError(t, db.Where("enrollment_id = ?", enrollment.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Present)
	assert.Equal(t, "came late", rows[0].Notes)

	// A different day is a second row.
	resp, _ = postJSON(t, app, fiber.MethodPost, path,
		fiber.Map{"present": true, "session_date": "2026-08-21"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, db.Where("enrollment_id = ?", enrollment.ID).Find(&rows).Error)
	assert.Len(t, rows, 2)
}

func TestMarkAttendanceDefaultsToTodayLocalMidnight(t *testing.T) {
	db := setupTestDB(t)
	enrollment := seedEnrollment(t, db, 5000, nil)
	app := adminApp(globalAdmin)

	resp, _ := postJSON(t, app, fiber.MethodPost,
		fmt.Sprintf("/enrollments/%d/attendance", enrollment.ID),
		fiber.Map{"present": true})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var row models.Attendance
	require.NoError(t, db.Where("enrollment_id = ?", enrollment.ID).First(&row).Error)

	now := time.Now()
	want := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	assert.True(t, row.SessionDate.Equal(want), "session date %v, want local midnight %v", row.SessionDate, want)
}

func TestIssueCertificateOncePerEnrollment(t *testing.T) {
	db := setupTestDB(t)
	enrollment := seedEnrollment(t, db, 5000, nil)
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("id = ?", enrollment.ID).
		Update("status", models.EnrollmentCompleted).Error)

	app := adminApp(globalAdmin)
	path := fmt.Sprintf("/enrollments/%d/certificate", enrollment.ID)

	resp, body := postJSON(t, app, fiber.MethodPost, path, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	first := body["data"].(map[string]interface{})["certificate_number"].(string)
	assert.Regexp(t, `^AMC-\d{4}-[A-Z0-9]{6}$`, first)

	// Issuing again is benign and returns the same certificate.
	resp, body = postJSON(t, app, fiber.MethodPost, path, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	second := body["data"].(map[string]interface{})["certificate_number"].(string)
	assert.Equal(t, first, second)

	var certs []models.Certificate
	require.NoError(t, db.Where("enrollment_id = ?", enrollment.ID).Find(&certs).Error)
	require.Len(t, certs, 1)
	assert.Equal(t, fmt.Sprintf("/student/certificates/%d/download", certs[0].ID), certs[0].FileURL)
}

func TestIssueCertificateRejectedOnCancelled(t *testing.T) {
	db := setupTestDB(t)
	enrollment := seedEnrollment(t, db, 5000, nil)
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("id = ?", enrollment.ID).
		Update("status", models.EnrollmentCancelled).Error)

	app := adminApp(globalAdmin)

	resp, _ := postJSON(t, app, fiber.MethodPost,
		fmt.Sprintf("/enrollments/%d/certificate", enrollment.ID), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestIssueCertificateMarksEnrollmentCompleted(t *testing.T) {
	db := setupTestDB(t)
	enrollment := seedEnrollment(t, db, 5000, nil)
	app := adminApp(globalAdmin)

	resp, _ := postJSON(t, app, fiber.MethodPost,
		fmt.Sprintf("/enrollments/%d/certificate", enrollment.ID), nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var after models.Enrollment
	require.NoError(t, db.First(&after, enrollment.ID).Error)
	assert.Equal(t, models.EnrollmentCompleted, after.Status)
}

func TestDashboardStatsScopedByCenter(t *testing.T) {
	db := setupTestDB(t)

	centerA := models.Center{Name: "Hatisala"}
	centerB := models.Center{Name: "Satulia"}
	require.NoError(t, db.Create(&centerA).Error)
	require.NoError(t, db.Create(&centerB).Error)

	eA := seedEnrollment(t, db, 5000, &centerA.ID)
	eB := seedEnrollment(t, db, 5000, &centerB.ID)
	require.NoError(t, db.Model(&models.Enrollment{}).Where("id = ?", eA.ID).Update("amount_paid", 2000).Error)
	require.NoError(t, db.Model(&models.Enrollment{}).Where("id = ?", eB.ID).Update("amount_paid", 3000).Error)

	run := func(v scope.Viewer, query string) map[string]interface{} {
		app := fiber.New()
		app.Use(injectViewer(v))
		app.Get("/dashboard", GetDashboardStats)

		resp, body := postJSON(t, app, fiber.MethodGet, "/dashboard"+query, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		return body["data"].(map[string]interface{})
	}

	// Global admin, all centers.
	data := run(globalAdmin, "")
	assert.Equal(t, float64(2), data["total_enrollments"])
	assert.Equal(t, float64(5000), data["total_revenue"])

	// Global admin narrowed to one center.
	data = run(globalAdmin, "?center="+fmt.Sprint(centerA.ID))
	assert.Equal(t, float64(1), data["total_enrollments"])
	assert.Equal(t, float64(2000), data["total_revenue"])

	// Bound admin sees only its home center even when asking for all.
	boundAdmin := scope.Viewer{UserID: 501, Role: models.RoleAdmin, HomeCenterID: &centerB.ID}
	data = run(boundAdmin, "?center="+fmt.Sprint(centerA.ID))
	assert.Equal(t, float64(1), data["total_enrollments"])
	assert.Equal(t, float64(3000), data["total_revenue"])
}

func TestDeleteProfileSoftDeletesEnrollments(t *testing.T) {
	db := setupTestDB(t)
	enrollment := seedEnrollment(t, db, 5000, nil)

	app := fiber.New()
	app.Use(injectViewer(globalAdmin))
	app.Delete("/students/:id", adminValidator.IDParam(), DeleteProfile)

	resp, _ := postJSON(t, app, fiber.MethodDelete,
		fmt.Sprintf("/students/%d", enrollment.UserID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, db.First(&user, enrollment.UserID).Error)
	assert.True(t, user.IsDeleted)

	var after models.Enrollment
	require.NoError(t, db.First(&after, enrollment.ID).Error)
	assert.True(t, after.IsDeleted)
}

// sanity check on the envelope helper used by every handler
func TestJsonResponseEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/ping", func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "pong", fiber.Map{"ok": 1})
	})

	resp, body := postJSON(t, app, fiber.MethodGet, "/ping", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["status"])
	assert.Equal(t, "pong", body["message"])
}

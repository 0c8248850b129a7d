package adminValidator

import (
	"amc/middleware"
	"amc/models"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// enrollmentIDParam parses and validates the :id route parameter.
func enrollmentIDParam(c *fiber.Ctx) (int, bool) {
	idStr := strings.TrimSpace(c.Params("id"))
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// RecordPayment validates a manual payment entry against an enrollment
func RecordPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := enrollmentIDParam(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Enrollment ID!", nil)
		}

		reqData := new(struct {
			Amount        int    `json:"amount"`
			PaymentMethod string `json:"payment_method"`
			Notes         string `json:"notes"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Amount <= 0 {
			errors["amount"] = "Amount must be a positive number!"
		}

		reqData.PaymentMethod = strings.TrimSpace(strings.ToLower(reqData.PaymentMethod))
		if reqData.PaymentMethod == "" {
			reqData.PaymentMethod = "cash"
		} else {
			validMethods := map[string]bool{"cash": true, "upi": true, "card": true, "online": true}
			if !validMethods[reqData.PaymentMethod] {
				errors["payment_method"] = "Payment method must be cash, upi, card, or online!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("enrollmentID", id)
		c.Locals("validatedPayment", reqData)
		return c.Next()
	}
}

// UpdateEnrollmentStatus validates an enrollment status change
func UpdateEnrollmentStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := enrollmentIDParam(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Enrollment ID!", nil)
		}

		reqData := new(struct {
			Status string `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Status = strings.TrimSpace(strings.ToLower(reqData.Status))
		validStatuses := map[string]bool{
			models.EnrollmentActive:    true,
			models.EnrollmentCompleted: true,
			models.EnrollmentCancelled: true,
		}
		if !validStatuses[reqData.Status] {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be active, completed, or cancelled!",
			})
		}

		c.Locals("enrollmentID", id)
		c.Locals("validatedStatus", reqData.Status)
		return c.Next()
	}
}

// MarkAttendance validates an attendance entry
func MarkAttendance() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := enrollmentIDParam(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Enrollment ID!", nil)
		}

		reqData := new(struct {
			Present     *bool  `json:"present"`
			SessionDate string `json:"session_date"` // optional, YYYY-MM-DD, defaults to today
			Notes       string `json:"notes"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Present == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"present": "Present flag is required!",
			})
		}

		// Local midnight, not Truncate: truncating cuts on UTC epoch
		// boundaries and can land on the previous local day.
		now := time.Now()
		sessionDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if reqData.SessionDate != "" {
			parsed, err := time.Parse("2006-01-02", reqData.SessionDate)
			if err != nil {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"session_date": "Session date must be in YYYY-MM-DD format!",
				})
			}
			sessionDate = parsed
		}

		c.Locals("enrollmentID", id)
		c.Locals("attendancePresent", *reqData.Present)
		c.Locals("attendanceDate", sessionDate)
		c.Locals("attendanceNotes", reqData.Notes)
		return c.Next()
	}
}

// AssignCenter validates assigning a student profile to a center
func AssignCenter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := enrollmentIDParam(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		reqData := new(struct {
			CenterID uint `json:"center_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.CenterID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"center_id": "Center is required!",
			})
		}

		c.Locals("targetUserID", id)
		c.Locals("validatedCenterID", reqData.CenterID)
		return c.Next()
	}
}

// IDParam validates a bare :id route parameter
func IDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := enrollmentIDParam(c)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}
		c.Locals("enrollmentID", id)
		return c.Next()
	}
}

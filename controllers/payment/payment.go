package paymentController

import (
	"amc/config"
	"amc/database"
	"amc/middleware"
	"amc/models"
	"amc/scope"
	"amc/utils"
	enrollmentValidator "amc/validators/enrollment"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// errAlreadySettled marks a settlement that lost the race against a
// concurrent redelivery of the same notification.
var errAlreadySettled = errors.New("order already settled")

// checkoutPayload is the booking snapshot stored against the gateway
// order at checkout time. The webhook reconstructs the enrollment from
// it, so a session with no matching user yet can still settle.
type checkoutPayload struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	CourseID      uint   `json:"course_id"`
	CenterID      uint   `json:"center_id"`
	PreferredTime string `json:"preferred_time"`
	Amount        int    `json:"amount"`
}

// CreateCheckoutSession turns an online booking into a hosted checkout
// session. No enrollment row is created here; that happens only when
// the gateway confirms settlement through the webhook.
func CreateCheckoutSession(c *fiber.Ctx) error {
	booking := c.Locals("validatedBooking").(*enrollmentValidator.BookingRequest)

	if booking.Email == "" {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"email": "Email is required for online payment!",
		})
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", booking.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var center models.Center
	if err := db.Where("id = ? AND is_deleted = ?", booking.CenterID, false).First(&center).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Center not found!", nil)
	}

	amount := course.Fee
	if course.DiscountPercent > 0 {
		amount = course.Fee - course.Fee*course.DiscountPercent/100
	}
	if amount <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course has no payable fee; use offline booking instead!", nil)
	}

	orderID := utils.GenerateOrderID()

	redirectURL, token, err := utils.CreateCheckoutSession(utils.CheckoutInput{
		OrderID:       orderID,
		Amount:        amount,
		CourseName:    course.Name,
		CenterName:    center.Name,
		StudentName:   booking.Name,
		StudentPhone:  booking.Phone,
		StudentEmail:  booking.Email,
		PreferredTime: booking.PreferredTime,
	})
	if err != nil {
		log.Printf("Error creating checkout session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to create checkout session!", nil)
	}

	payload, _ := json.Marshal(checkoutPayload{
		Name:          booking.Name,
		Phone:         booking.Phone,
		Email:         booking.Email,
		CourseID:      course.ID,
		CenterID:      center.ID,
		PreferredTime: booking.PreferredTime,
		Amount:        amount,
	})

	event := models.PaymentGatewayEvent{
		OrderID:           orderID,
		TransactionStatus: "created",
		GrossAmount:       amount,
		Payload:           datatypes.JSON(payload),
	}
	if err := db.Create(&event).Error; err != nil {
		log.Printf("Error recording checkout session %s: %v", orderID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create checkout session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created!", fiber.Map{
		"order_id":     orderID,
		"redirect_url": redirectURL,
		"token":        token,
		"amount":       amount,
		"cancel_url":   config.AppConfig.PaymentCancelURL,
	})
}

// webhookNotification is the subset of the gateway notification the
// handler reads after the signature check.
type webhookNotification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
}

// Webhook handles gateway payment notifications. The signature check
// is mandatory; redelivered settlements are a no-op because each order
// settles exactly once.
func Webhook(c *fiber.Ctx) error {
	var note webhookNotification
	if err := c.BodyParser(&note); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification body!", nil)
	}

	if note.OrderID == "" || note.SignatureKey == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing notification fields!", nil)
	}

	if !utils.VerifyGatewaySignature(note.OrderID, note.StatusCode, note.GrossAmount, note.SignatureKey) {
		log.Printf("Webhook signature mismatch for order %s", note.OrderID)
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid signature!", nil)
	}

	db := database.Database.Db

	var event models.PaymentGatewayEvent
	if err := db.Where("order_id = ?", note.OrderID).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unknown order!", nil)
	}

	settled := note.TransactionStatus == "settlement" ||
		(note.TransactionStatus == "capture" && note.FraudStatus != "deny")

	if !settled {
		// deny / cancel / expire / pending: record and acknowledge.
		db.Model(&event).Update("transaction_status", note.TransactionStatus)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification recorded.", nil)
	}

	if event.TransactionStatus == "settlement" || event.TransactionStatus == "capture" {
		// Redelivery of an already-processed settlement.
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification already processed.", nil)
	}

	var booking checkoutPayload
	if err := json.Unmarshal(event.Payload, &booking); err != nil {
		log.Printf("Corrupt checkout payload for order %s: %v", note.OrderID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process notification!", nil)
	}

	grossAmount := booking.Amount
	if parsed, err := strconv.ParseFloat(strings.TrimSpace(note.GrossAmount), 64); err == nil {
		grossAmount = int(parsed)
	}

	var course models.Course
	if err := db.Where("id = ?", booking.CourseID).First(&course).Error; err != nil {
		log.Printf("Course %d missing while settling order %s", booking.CourseID, note.OrderID)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process notification!", nil)
	}

	var center models.Center
	db.Where("id = ?", booking.CenterID).First(&center)

	var user models.User
	var enrollment models.Enrollment
	var payment models.PaymentHistory

	err := db.Transaction(func(tx *gorm.DB) error {
		// Find or create the student behind the booking email.
		if err := tx.Where("email = ? AND is_deleted = ?", booking.Email, false).First(&user).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			hashed, hashErr := bcrypt.GenerateFromPassword([]byte(utils.GenerateOrderID()), config.AppConfig.SaltRound)
			if hashErr != nil {
				return hashErr
			}
			user = models.User{
				FullName: booking.Name,
				Email:    booking.Email,
				Phone:    booking.Phone,
				Role:     models.RoleStudent,
				Password: string(hashed),
				CenterID: &booking.CenterID,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
		}

		enrollment = models.Enrollment{
			UserID:         user.ID,
			CourseID:       course.ID,
			CenterID:       &booking.CenterID,
			EnrollmentDate: time.Now(),
			Status:         models.EnrollmentActive,
			PaymentStatus:  scope.DerivePaymentStatus(grossAmount, course.Fee),
			AmountPaid:     grossAmount,
			BatchTiming:    booking.PreferredTime,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}

		payment = models.PaymentHistory{
			EnrollmentID:  enrollment.ID,
			Amount:        grossAmount,
			PaymentDate:   time.Now(),
			PaymentMethod: "online",
			ReceiptNumber: utils.GenerateReceiptNumber(),
			Notes:         fmt.Sprintf("Online payment via %s (order %s)", note.PaymentType, note.OrderID),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		// Conditional update closes the race with a concurrent
		// redelivery: whichever transaction claims the event row first
		// settles, the other rolls back.
		result := tx.Model(&models.PaymentGatewayEvent{}).
			Where("id = ? AND transaction_status NOT IN ?", event.ID, []string{"settlement", "capture"}).
			Updates(map[string]interface{}{
				"transaction_status": note.TransactionStatus,
				"gross_amount":       grossAmount,
				"enrollment_id":      enrollment.ID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errAlreadySettled
		}
		return nil
	})
	if err == errAlreadySettled {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification already processed.", nil)
	}
	if err != nil {
		log.Printf("Error settling order %s: %v", note.OrderID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process notification!", nil)
	}

	staffNote := models.Notification{
		UserID:  0,
		Type:    models.NotificationNewEnrollment,
		Title:   "New Online Enrollment",
		Message: fmt.Sprintf("%s enrolled in %s at %s (paid Rs. %d online).", user.FullName, course.Name, center.Name, grossAmount),
	}
	db.Create(&staffNote)

	studentNote := models.Notification{
		UserID:  user.ID,
		Type:    models.NotificationAdmission,
		Title:   "Enrollment Confirmed",
		Message: fmt.Sprintf("Your enrollment in %s is confirmed. Receipt: %s", course.Name, payment.ReceiptNumber),
	}
	db.Create(&studentNote)

	go utils.SendEnrollmentConfirmedEmail(user.Email, user.FullName, course.Name, center.Name, grossAmount, payment.ReceiptNumber)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment settled and enrollment created!", fiber.Map{
		"enrollment_id": enrollment.ID,
		"receipt":       payment.ReceiptNumber,
	})
}

package paymentRoutes

import (
	paymentController "amc/controllers/payment"
	enrollmentValidator "amc/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Post("/checkout", enrollmentValidator.BookingForm(), paymentController.CreateCheckoutSession)
	paymentGroup.Post("/webhook", paymentController.Webhook)
}

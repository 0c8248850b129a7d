package adminRoutes

import (
	adminController "amc/controllers/admin"
	"amc/middleware"
	adminValidator "amc/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.LoadViewer, middleware.RequireAdmin)

	adminGroup.Get("/dashboard", adminController.GetDashboardStats)
	adminGroup.Get("/enrollments", adminController.ListEnrollments)
	adminGroup.Get("/students", adminController.ListStudents)
	adminGroup.Get("/payments", adminController.ListPayments)

	adminGroup.Patch("/enrollments/:id/status", adminValidator.UpdateEnrollmentStatus(), adminController.UpdateEnrollmentStatus)
	adminGroup.Post("/enrollments/:id/payments", adminValidator.RecordPayment(), adminController.RecordPayment)
	adminGroup.Post("/enrollments/:id/attendance", adminValidator.MarkAttendance(), adminController.MarkAttendance)
	adminGroup.Post("/enrollments/:id/certificate", adminValidator.IDParam(), adminController.IssueCertificate)
	adminGroup.Post("/enrollments/:id/reminder", adminValidator.IDParam(), adminController.SendPaymentReminder)

	adminGroup.Patch("/students/:id/center", adminValidator.AssignCenter(), adminController.AssignCenter)
	adminGroup.Delete("/students/:id", adminValidator.IDParam(), adminController.DeleteProfile)

	adminGroup.Get("/notifications", adminController.ListNotifications)
	adminGroup.Patch("/notifications/:id/read", adminValidator.IDParam(), adminController.MarkNotificationRead)
}

package studentRoutes

import (
	studentController "amc/controllers/student"
	"amc/middleware"
	adminValidator "amc/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupStudentRoutes(app *fiber.App) {
	studentGroup := app.Group("/student", middleware.JWTMiddleware, middleware.LoadViewer)

	studentGroup.Get("/dashboard", studentController.GetDashboard)
	studentGroup.Get("/enrollments/:id/attendance", adminValidator.IDParam(), studentController.GetAttendance)
	studentGroup.Post("/enrollments/:id/lessons/:lesson_id/complete", adminValidator.IDParam(), studentController.MarkLessonComplete)
	studentGroup.Get("/payments/:id/receipt", adminValidator.IDParam(), studentController.DownloadReceipt)
	studentGroup.Get("/certificates/:id/download", adminValidator.IDParam(), studentController.DownloadCertificate)
	studentGroup.Get("/statement", studentController.DownloadStatement)
	studentGroup.Get("/notifications", studentController.GetNotifications)
	studentGroup.Patch("/notifications/:id/read", adminValidator.IDParam(), studentController.MarkNotificationRead)
}

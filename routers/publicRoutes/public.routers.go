package publicRoutes

import (
	publicController "amc/controllers/public"
	enrollmentValidator "amc/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

func SetupPublicRoutes(app *fiber.App) {
	publicGroup := app.Group("/public")

	publicGroup.Get("/centers", publicController.GetCenters)
	publicGroup.Get("/courses", publicController.GetCourses)
	publicGroup.Get("/testimonials", publicController.GetTestimonials)
	publicGroup.Get("/videos", publicController.GetVideos)
	publicGroup.Get("/achievements", publicController.GetAchievements)
	publicGroup.Post("/booking", enrollmentValidator.BookingForm(), publicController.SubmitBooking)
}

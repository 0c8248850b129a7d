package publicController

import (
	"amc/database"
	"amc/middleware"
	"amc/models"
	"amc/utils"
	enrollmentValidator "amc/validators/enrollment"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetCenters lists all institute branches
func GetCenters(c *fiber.Ctx) error {
	var centers []models.Center
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("name").Find(&centers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch centers!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Centers fetched successfully!", centers)
}

// GetCourses lists all offered courses
func GetCourses(c *fiber.Ctx) error {
	db := database.Database.Db.Where("is_deleted = ?", false)

	if category := c.Query("category"); category != "" {
		db = db.Where("category = ?", category)
	}
	if c.Query("popular") == "true" {
		db = db.Where("is_popular = ?", true)
	}

	var courses []models.Course
	if err := db.Order("name").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// GetTestimonials lists student testimonials
func GetTestimonials(c *fiber.Ctx) error {
	var testimonials []models.Testimonial
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("created_at desc").Find(&testimonials).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch testimonials!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Testimonials fetched successfully!", testimonials)
}

// GetVideos lists promotional videos, optionally for one center
func GetVideos(c *fiber.Ctx) error {
	db := database.Database.Db.Where("is_deleted = ?", false)

	// A specific-center query never matches rows without a center.
	if centerID := c.QueryInt("center"); centerID > 0 {
		db = db.Where("center_id = ?", centerID)
	}

	var videos []models.Video
	if err := db.Order("created_at desc").Find(&videos).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch videos!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Videos fetched successfully!", videos)
}

// GetAchievements lists achievement entries, optionally for one center
func GetAchievements(c *fiber.Ctx) error {
	db := database.Database.Db.Where("is_deleted = ?", false)

	if centerID := c.QueryInt("center"); centerID > 0 {
		db = db.Where("center_id = ?", centerID)
	}

	var achievements []models.Achievement
	if err := db.Order("created_at desc").Find(&achievements).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch achievements!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Achievements fetched successfully!", achievements)
}

// SubmitBooking handles the offline/WhatsApp path of the enrollment
// form: record the request for admin review, relay a WhatsApp text to
// the front desk, and create a provisional enrollment when the student
// already has an account. The online path goes through the payment
// controller instead.
func SubmitBooking(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBooking").(*enrollmentValidator.BookingRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var center models.Center
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CenterID, false).First(&center).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Center not found!", nil)
	}

	// Provisional enrollment for known students
	var enrollment *models.Enrollment
	if reqData.Email != "" {
		var user models.User
		if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err == nil {
			var existing models.Enrollment
			err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, course.ID, false).
				First(&existing).Error
			if err == nil {
				return middleware.JsonResponse(c, fiber.StatusConflict, false, "Student already enrolled in this course!", nil)
			}

			centerID := center.ID
			enrollment = &models.Enrollment{
				UserID:         user.ID,
				CourseID:       course.ID,
				CenterID:       &centerID,
				EnrollmentDate: time.Now(),
				Status:         models.EnrollmentActive,
				PaymentStatus:  models.PaymentPending,
				BatchTiming:    reqData.PreferredTime,
			}
			if err := db.Create(enrollment).Error; err != nil {
				log.Printf("Error creating enrollment: %v", err)
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit enrollment request!", nil)
			}
		}
	}

	// Review-queue entry for admin staff
	notification := models.Notification{
		UserID: 0, // system
		Type:   models.NotificationNewEnrollment,
		Title:  "New Enrollment Request: " + reqData.Name,
		Message: fmt.Sprintf("Course: %s | Center: %s | Phone: %s | Email: %s | Preferred Time: %s",
			course.Name, center.Name, reqData.Phone, orNA(reqData.Email), orNA(reqData.PreferredTime)),
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Error creating booking notification: %v", err)
	}

	// WhatsApp relay, best effort
	go func() {
		msg := utils.BookingMessage(reqData.Name, reqData.Phone, reqData.Email, course.Name, center.Name, reqData.PreferredTime)
		if err := utils.SendWhatsAppText(msg); err != nil {
			log.Printf("Booking WhatsApp relay failed: %v", err)
		}
	}()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrollment request submitted successfully!", fiber.Map{
		"course":     course.Name,
		"center":     center.Name,
		"enrollment": enrollment,
	})
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

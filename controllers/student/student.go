package studentController

import (
	"amc/database"
	"amc/middleware"
	"amc/models"
	"amc/scope"
	"amc/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// enrollmentView is one row of the student dashboard: the enrollment
// plus every derived metric the UI shows.
type enrollmentView struct {
	models.Enrollment
	CompletionPercentage int `json:"completion_percentage"`
	AttendancePercentage int `json:"attendance_percentage"`
	AmountDue            int `json:"amount_due"`
}

// GetDashboard returns the signed-in student's enrollments with derived
// progress, attendance and dues, plus certificates and payments.
func GetDashboard(c *fiber.Ctx) error {
	viewer, ok := c.Locals("viewer").(scope.Viewer)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = ?", viewer.UserID, false).
		Preload("Course").Preload("Center").
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	// Optional extra center constraint on top of ownership
	selected := scope.AllCenters
	if centerID := c.QueryInt("center"); centerID > 0 {
		selected = uint(centerID)
	}
	enrollments = viewer.FilterEnrollments(selected, enrollments)

	views := make([]enrollmentView, len(enrollments))
	for i, e := range enrollments {
		var progress []models.LessonProgress
		if err := db.Where("enrollment_id = ?", e.ID).Find(&progress).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lesson progress!", nil)
		}

		var totalLessons int64
		if err := db.Model(&models.Lesson{}).Where("course_id = ? AND is_deleted = ?", e.CourseID, false).Count(&totalLessons).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
		}

		var attendance []models.Attendance
		if err := db.Where("enrollment_id = ?", e.ID).Find(&attendance).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attendance!", nil)
		}

		views[i] = enrollmentView{
			Enrollment:           e,
			CompletionPercentage: scope.CompletionPercentage(scope.CountCompleted(progress), int(totalLessons)),
			AttendancePercentage: scope.AttendancePercentage(attendance),
			AmountDue:            scope.AmountDue(e, e.Course.Fee),
		}
	}

	// Certificates through owned enrollments
	var certificates []models.Certificate
	if err := db.Joins("JOIN enrollments ON enrollments.id = certificates.enrollment_id").
		Where("enrollments.user_id = ?", viewer.UserID).
		Order("certificates.issue_date desc").
		Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	// Payment ledger through owned enrollments
	var payments []models.PaymentHistory
	if err := db.Joins("JOIN enrollments ON enrollments.id = payment_histories.enrollment_id").
		Where("enrollments.user_id = ?", viewer.UserID).
		Order("payment_histories.payment_date desc").
		Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"enrollments":  views,
		"certificates": certificates,
		"payments":     payments,
	})
}

// GetAttendance returns the attendance log of one owned enrollment
func GetAttendance(c *fiber.Ctx) error {
	viewer, ok := c.Locals("viewer").(scope.Viewer)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("id = ? AND user_id = ? AND is_deleted = ?", enrollmentID, viewer.UserID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	var attendance []models.Attendance
	if err := db.Where("enrollment_id = ?", enrollment.ID).
		Order("session_date desc").
		Find(&attendance).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attendance!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance fetched successfully!", fiber.Map{
		"attendance":            attendance,
		"attendance_percentage": scope.AttendancePercentage(attendance),
	})
}

// MarkLessonComplete marks one lesson of an owned enrollment complete.
// The upsert key is (enrollment_id, lesson_id), so repeating the call
// changes nothing.
func MarkLessonComplete(c *fiber.Ctx) error {
	viewer, ok := c.Locals("viewer").(scope.Viewer)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)
	lessonID, err := c.ParamsInt("lesson_id")
	if err != nil || lessonID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
	}

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("id = ? AND user_id = ? AND is_deleted = ?", enrollmentID, viewer.UserID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	var lesson models.Lesson
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, enrollment.CourseID, false).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found in this course!", nil)
	}

	now := time.Now()
	progress := models.LessonProgress{
		EnrollmentID: enrollment.ID,
		LessonID:     lesson.ID,
		Completed:    true,
		CompletedAt:  &now,
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "enrollment_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"completed": true}),
	}).Create(&progress).Error; err != nil {
		log.Printf("Error upserting lesson progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lesson complete!", nil)
	}

	var completedRows []models.LessonProgress
	if err := db.Where("enrollment_id = ?", enrollment.ID).Find(&completedRows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lesson progress!", nil)
	}

	var totalLessons int64
	if err := db.Model(&models.Lesson{}).Where("course_id = ? AND is_deleted = ?", enrollment.CourseID, false).Count(&totalLessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked complete!", fiber.Map{
		"completion_percentage": scope.CompletionPercentage(scope.CountCompleted(completedRows), int(totalLessons)),
	})
}

// GetNotifications returns the student's notifications, newest first
func GetNotifications(c *fiber.Ctx) error {
	viewer, ok := c.Locals("viewer").(scope.Viewer)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var notifications []models.Notification
	if err := database.Database.Db.Where("user_id = ?", viewer.UserID).
		Order("created_at desc").Limit(100).
		Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", notifications)
}

// MarkNotificationRead flags one owned notification as read
func MarkNotificationRead(c *fiber.Ctx) error {
	viewer, ok := c.Locals("viewer").(scope.Viewer)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id := c.Locals("enrollmentID").(int)

	result := database.Database.Db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, viewer.UserID).
		Update("is_read", true)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notification!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked read!", nil)
}

// DownloadReceipt streams the PDF receipt of one owned payment
func DownloadReceipt(c *fiber.Ctx) error {
	viewer, ok := c.Locals("viewer").(scope.Viewer)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	paymentID := c.Locals("enrollmentID").(int) // validated :id param

	db := database.Database.Db

	var payment models.PaymentHistory
	if err := db.Where("id = ?", paymentID).First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("id = ? AND user_id = ?", payment.EnrollmentID, viewer.UserID).
		Preload("Course").Preload("Center").
		First(&enrollment).Error; err != nil {
		// Do not reveal whether the payment exists outside scope.
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found!", nil)
	}

	var user models.User
	db.Where("id = ?", viewer.UserID).First(&user)

	centerName := ""
	if enrollment.Center != nil {
		centerName = enrollment.Center.Name
	}

	pdfBytes, err := utils.GenerateReceiptPDF(utils.ReceiptData{
		ReceiptNumber:  payment.ReceiptNumber,
		StudentName:    user.FullName,
		StudentEmail:   user.Email,
		CourseName:     enrollment.Course.Name,
		CourseFullName: enrollment.Course.FullName,
		CenterName:     centerName,
		PaymentDate:    payment.PaymentDate.Format("02 January 2006"),
		Amount:         payment.Amount,
		PaymentMethod:  payment.PaymentMethod,
		TotalFee:       enrollment.Course.Fee,
		TotalPaid:      enrollment.AmountPaid,
		BalanceDue:     scope.AmountDue(enrollment, enrollment.Course.Fee),
		Notes:          payment.Notes,
	})
	if err != nil {
		log.Printf("Error generating receipt PDF: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate receipt!", nil)
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+payment.ReceiptNumber+`.pdf"`)
	return c.Send(pdfBytes)
}

// DownloadCertificate streams the PDF of one owned certificate
func DownloadCertificate(c *fiber.Ctx) error {
	viewer, ok := c.Locals("viewer").(scope.Viewer)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certificateID := c.Locals("enrollmentID").(int) // validated :id param

	db := database.Database.Db

	var certificate models.Certificate
	if err := db.Where("id = ?", certificateID).First(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("id = ? AND user_id = ?", certificate.EnrollmentID, viewer.UserID).
		Preload("Course").
		First(&enrollment).Error; err != nil {
		// Do not reveal whether the certificate exists outside scope.
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var user models.User
	db.Where("id = ?", viewer.UserID).First(&user)

	courseName := enrollment.Course.FullName
	if courseName == "" {
		courseName = enrollment.Course.Name
	}

	pdfBytes, err := utils.GenerateCertificatePDF(utils.CertificateData{
		StudentName:       user.FullName,
		CourseName:        courseName,
		CertificateNumber: certificate.CertificateNumber,
		IssueDate:         certificate.IssueDate.Format("02 January 2006"),
	})
	if err != nil {
		log.Printf("Error generating certificate PDF: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate certificate!", nil)
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+certificate.CertificateNumber+`.pdf"`)
	return c.Send(pdfBytes)
}

// DownloadStatement streams the full fee statement of the signed-in
// student
func DownloadStatement(c *fiber.Ctx) error {
	viewer, ok := c.Locals("viewer").(scope.Viewer)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", viewer.UserID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var payments []models.PaymentHistory
	if err := db.Joins("JOIN enrollments ON enrollments.id = payment_histories.enrollment_id").
		Where("enrollments.user_id = ?", viewer.UserID).
		Preload("Enrollment.Course").
		Order("payment_histories.payment_date").
		Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	entries := make([]utils.StatementEntry, len(payments))
	totalPaid := 0
	for i, p := range payments {
		entries[i] = utils.StatementEntry{
			ReceiptNumber: p.ReceiptNumber,
			PaymentDate:   p.PaymentDate.Format("02 Jan 2006"),
			PaymentMethod: p.PaymentMethod,
			CourseName:    p.Enrollment.Course.Name,
			Amount:        p.Amount,
		}
		totalPaid += p.Amount
	}

	pdfBytes, err := utils.GenerateStatementPDF(user.FullName, user.Email, entries, totalPaid)
	if err != nil {
		log.Printf("Error generating statement PDF: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate statement!", nil)
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="statement.pdf"`)
	return c.Send(pdfBytes)
}

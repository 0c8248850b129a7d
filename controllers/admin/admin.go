package adminController

import (
	"amc/database"
	"amc/middleware"
	"amc/models"
	"amc/scope"
	"amc/utils"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func viewerFromCtx(c *fiber.Ctx) (scope.Viewer, bool) {
	v, ok := c.Locals("viewer").(scope.Viewer)
	return v, ok
}

func selectedCenter(c *fiber.Ctx) uint {
	if centerID := c.QueryInt("center"); centerID > 0 {
		return uint(centerID)
	}
	return scope.AllCenters
}

// GetDashboardStats aggregates the admin dashboard numbers over the
// viewer's center scope. All metrics are computed from the scoped
// enrollment set; a center-bound admin can never widen the selection.
func GetDashboardStats(c *fiber.Ctx) error {
	viewer, ok := viewerFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	selected := selectedCenter(c)

	var enrollments []models.Enrollment
	if err := db.Where("is_deleted = ?", false).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}
	enrollments = viewer.FilterEnrollments(selected, enrollments)

	activeCount, completedCount := 0, 0
	students := make(map[uint]struct{})
	percentages := make([]int, 0, len(enrollments))
	for _, e := range enrollments {
		students[e.UserID] = struct{}{}
		switch e.Status {
		case models.EnrollmentActive:
			activeCount++
		case models.EnrollmentCompleted:
			completedCount++
		}

		var progress []models.LessonProgress
		if err := db.Where("enrollment_id = ?", e.ID).Find(&progress).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lesson progress!", nil)
		}
		var totalLessons int64
		if err := db.Model(&models.Lesson{}).Where("course_id = ? AND is_deleted = ?", e.CourseID, false).Count(&totalLessons).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
		}
		percentages = append(percentages, scope.CompletionPercentage(scope.CountCompleted(progress), int(totalLessons)))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_students":       len(students),
		"total_enrollments":    len(enrollments),
		"active_enrollments":   activeCount,
		"completed_enrollments": completedCount,
		"total_revenue":        scope.AggregateRevenue(enrollments),
		"average_progress":     scope.AverageProgress(percentages),
		"selected_center":      viewer.ResolveCenter(selected),
	})
}

// ListEnrollments returns the scoped enrollment list with student and
// course details, optionally filtered by a search term.
func ListEnrollments(c *fiber.Ctx) error {
	viewer, ok := viewerFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []models.Enrollment
	query := db.Where("enrollments.is_deleted = ?", false).
		Preload("User").Preload("Course").Preload("Center").
		Order("enrollments.created_at desc")

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Joins("JOIN users ON users.id = enrollments.user_id").
			Where("LOWER(users.full_name) LIKE ? OR LOWER(users.email) LIKE ?", like, like)
	}

	if err := query.Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	enrollments = viewer.FilterEnrollments(selectedCenter(c), enrollments)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// ListStudents returns the scoped student profiles.
func ListStudents(c *fiber.Ctx) error {
	viewer, ok := viewerFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var students []models.User
	query := db.Where("role = ? AND is_deleted = ?", models.RoleStudent, false).
		Preload("Center").
		Order("created_at desc")

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", like, like, like)
	}

	if err := query.Find(&students).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	students = viewer.FilterProfiles(selectedCenter(c), students)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully!", students)
}

// ListPayments returns the scoped payment ledger, newest first. Scope
// runs through each row's owning enrollment.
func ListPayments(c *fiber.Ctx) error {
	viewer, ok := viewerFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var payments []models.PaymentHistory
	if err := db.Order("payment_date desc").Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	var enrollments []models.Enrollment
	if err := db.Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}
	enrollmentByID := make(map[uint]models.Enrollment, len(enrollments))
	for _, e := range enrollments {
		enrollmentByID[e.ID] = e
	}

	payments = viewer.FilterPayments(selectedCenter(c), payments, enrollmentByID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", payments)
}

// scopedEnrollment loads one enrollment and checks it against the
// viewer's center scope.
func scopedEnrollment(viewer scope.Viewer, id int) (*models.Enrollment, error) {
	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("id = ? AND is_deleted = ?", id, false).
		Preload("User").Preload("Course").Preload("Center").
		First(&enrollment).Error; err != nil {
		return nil, err
	}
	if !viewer.BelongsToScope(scope.AllCenters, enrollment.UserID, enrollment.CenterID) {
		return nil, gorm.ErrRecordNotFound
	}
	return &enrollment, nil
}

// UpdateEnrollmentStatus applies one transition of the enrollment
// status machine. Cancelled enrollments may be reactivated; completed
// ones are terminal.
func UpdateEnrollmentStatus(c *fiber.Ctx) error {
	viewer, ok := viewerFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id := c.Locals("enrollmentID").(int)
	newStatus := c.Locals("validatedStatus").(string)

	enrollment, err := scopedEnrollment(viewer, id)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if !scope.CanTransition(enrollment.Status, newStatus) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
			fmt.Sprintf("Cannot change status from %s to %s!", enrollment.Status, newStatus), nil)
	}

	if err := database.Database.Db.Model(&models.Enrollment{}).
		Where("id = ?", enrollment.ID).
		Update("status", newStatus).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update status!", nil)
	}

	enrollment.Status = newStatus
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment status updated!", enrollment)
}

// RecordPayment appends one payment to the ledger and refreshes the
// enrollment's mirror columns from the summed ledger, all inside one
// transaction so the mirror can never drift.
func RecordPayment(c *fiber.Ctx) error {
	viewer, ok := viewerFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id := c.Locals("enrollmentID").(int)
	reqData := c.Locals("validatedPayment").(*struct {
		Amount        int    `json:"amount"`
		PaymentMethod string `json:"payment_method"`
		Notes         string `json:"notes"`
	})

	enrollment, err := scopedEnrollment(viewer, id)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	payment := models.PaymentHistory{
		EnrollmentID:  enrollment.ID,
		Amount:        reqData.Amount,
		PaymentDate:   time.Now(),
		PaymentMethod: reqData.PaymentMethod,
		ReceiptNumber: utils.GenerateReceiptNumber(),
		Notes:         reqData.Notes,
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		var totalPaid int
		if err := tx.Model(&models.PaymentHistory{}).
			Where("enrollment_id = ?", enrollment.ID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&totalPaid).Error; err != nil {
			return err
		}

		return tx.Model(&models.Enrollment{}).
			Where("id = ?", enrollment.ID).
			Updates(map[string]interface{}{
				"amount_paid":    totalPaid,
				"payment_status": scope.DerivePaymentStatus(totalPaid, enrollment.Course.Fee),
			}).Error
	})
	if err != nil {
		log.Printf("Error recording payment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record payment!", nil)
	}

	var updated models.Enrollment
	database.Database.Db.Where("id = ?", enrollment.ID).First(&updated)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment recorded successfully!", fiber.Map{
		"payment":        payment,
		"amount_paid":    updated.AmountPaid,
		"payment_status": updated.PaymentStatus,
		"amount_due":     scope.AmountDue(updated, enrollment.Course.Fee),
	})
}

// MarkAttendance records presence for one session day. The upsert key
// is (enrollment_id, session_date): marking the same day again
// overwrites the earlier row.
func MarkAttendance(c *fiber.Ctx) error {
	viewer, ok := viewerFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id := c.Locals("enrollmentID").(int)
	present := c.Locals("attendancePresent").(bool)
	sessionDate := c.Locals("attendanceDate").(time.Time)
	notes := c.Locals("attendanceNotes").(string)

	enrollment, err := scopedEnrollment(viewer, id)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	attendance := models.Attendance{
		EnrollmentID: enrollment.ID,
		SessionDate:  sessionDate,
		Present:      present,
		Notes:        notes,
	}

	if err := database.Database.Db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "enrollment_id"}, {Name: "session_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"present", "notes"}),
	}).Create(&attendance).Error; err != nil {
		log.Printf("Error marking attendance: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark attendance!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance marked successfully!", attendance)
}

// AssignCenter binds a student profile to a center. A center-bound
// admin may only assign students to its own center.
func AssignCenter(c *fiber.Ctx) error {
	viewer, ok := viewerFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	targetUserID := c.Locals("targetUserID").(int)
	centerID := c.Locals("validatedCenterID").(uint)

	if viewer.HomeCenterID != nil && *viewer.HomeCenterID != centerID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only assign students to your own center!", nil)
	}

	db := database.Database.Db

	var center models.Center
	if err := db.Where("id = ? AND is_deleted = ?", centerID, false).First(&center).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Center not found!", nil)
	}

	var student models.User
	if err := db.Where("id = ? AND role = ? AND is_deleted = ?", targetUserID, models.RoleStudent, false).
		First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	if err := db.Model(&student).Update("center_id", centerID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign center!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Center assigned successfully!", fiber.Map{
		"user_id":   student.ID,
		"center_id": centerID,
	})
}

// DeleteProfile soft-deletes a student profile and its enrollments.
func DeleteProfile(c *fiber.Ctx) error {
	viewer, ok := viewerFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	targetUserID := c.Locals("enrollmentID").(int)

	db := database.Database.Db

	var student models.User
	if err := db.Where("id = ? AND role = ? AND is_deleted = ?", targetUserID, models.RoleStudent, false).
		First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}
	if !viewer.BelongsToScope(scope.AllCenters, student.ID, student.CenterID) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", student.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.Enrollment{}).Where("user_id = ?", student.ID).
			Update("is_deleted", true).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile deleted successfully!", nil)
}

// IssueCertificate issues the completion certificate of one enrollment.
// The enrollment must not be cancelled; issuing also marks it
// completed. A second issuance is benign and returns the existing
// certificate.
func IssueCertificate(c *fiber.Ctx) error {
	viewer, ok := viewerFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id := c.Locals("enrollmentID").(int)

	enrollment, err := scopedEnrollment(viewer, id)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if enrollment.Status == models.EnrollmentCancelled {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot issue a certificate on a cancelled enrollment!", nil)
	}

	db := database.Database.Db

	var existing models.Certificate
	if err := db.Where("enrollment_id = ?", enrollment.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued!", existing)
	}

	certificate := models.Certificate{
		EnrollmentID:      enrollment.ID,
		CertificateNumber: utils.GenerateCertificateNumber(),
		IssueDate:         time.Now(),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&certificate).Error; err != nil {
			return err
		}
		// Students fetch the rendered document from this path.
		certificate.FileURL = fmt.Sprintf("/student/certificates/%d/download", certificate.ID)
		if err := tx.Model(&models.Certificate{}).Where("id = ?", certificate.ID).
			Update("file_url", certificate.FileURL).Error; err != nil {
			return err
		}
		if enrollment.Status != models.EnrollmentCompleted {
			if err := tx.Model(&models.Enrollment{}).Where("id = ?", enrollment.ID).
				Update("status", models.EnrollmentCompleted).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// A concurrent issuance hit the unique index first; return its
		// certificate instead of failing.
		if dbErr := db.Where("enrollment_id = ?", enrollment.ID).First(&existing).Error; dbErr == nil {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued!", existing)
		}
		log.Printf("Error issuing certificate: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	notification := models.Notification{
		UserID:  enrollment.UserID,
		Type:    models.NotificationCourseCompletion,
		Title:   "Course Completed",
		Message: fmt.Sprintf("Congratulations! Your certificate %s for %s has been issued.", certificate.CertificateNumber, enrollment.Course.Name),
	}
	db.Create(&notification)

	go utils.SendCompletionEmail(enrollment.User.Email, enrollment.User.FullName, enrollment.Course.Name, certificate.CertificateNumber)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", certificate)
}

// SendPaymentReminder sends an on-demand dues reminder for one
// enrollment.
func SendPaymentReminder(c *fiber.Ctx) error {
	viewer, ok := viewerFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id := c.Locals("enrollmentID").(int)

	enrollment, err := scopedEnrollment(viewer, id)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	due := scope.AmountDue(*enrollment, enrollment.Course.Fee)
	if due <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No outstanding balance on this enrollment!", nil)
	}

	notification := models.Notification{
		UserID:  enrollment.UserID,
		Type:    models.NotificationPaymentReminder,
		Title:   "Payment Reminder",
		Message: fmt.Sprintf("You have an outstanding balance of Rs. %d for %s.", due, enrollment.Course.Name),
	}
	database.Database.Db.Create(&notification)

	go utils.SendPaymentReminderEmail(enrollment.User.Email, enrollment.User.FullName, enrollment.Course.Name, due)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment reminder sent!", fiber.Map{
		"amount_due": due,
	})
}

// ListNotifications returns staff notifications, newest first.
func ListNotifications(c *fiber.Ctx) error {
	db := database.Database.Db

	var notifications []models.Notification
	if err := db.Where("user_id = ?", 0).
		Order("created_at desc").Limit(100).
		Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", notifications)
}

// MarkNotificationRead flags one staff notification as read.
func MarkNotificationRead(c *fiber.Ctx) error {
	id := c.Locals("enrollmentID").(int)

	db := database.Database.Db

	result := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, 0).
		Update("is_read", true)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notification!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked read!", nil)
}

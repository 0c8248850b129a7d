package enrollmentValidator

import (
	"amc/middleware"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

var phoneRegex = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// BookingRequest is the public enrollment/booking form payload.
type BookingRequest struct {
	Name          string `json:"name" validate:"required,min=3"`
	Phone         string `json:"phone" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	CourseID      uint   `json:"course_id" validate:"required"`
	CenterID      uint   `json:"center_id" validate:"required"`
	PreferredTime string `json:"preferred_time"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=offline online"`
}

// BookingForm validates the public booking form submission
func BookingForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BookingRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Phone = strings.TrimSpace(reqData.Phone)
		reqData.Email = strings.TrimSpace(strings.ToLower(reqData.Email))
		if reqData.PaymentMethod == "" {
			reqData.PaymentMethod = "offline"
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Name":
					errors["name"] = "Name is required and must be at least 3 characters!"
				case "Phone":
					errors["phone"] = "Phone number is required!"
				case "Email":
					errors["email"] = "Invalid email address!"
				case "CourseID":
					errors["course_id"] = "Course is required!"
				case "CenterID":
					errors["center_id"] = "Center is required!"
				case "PaymentMethod":
					errors["payment_method"] = "Payment method must be offline or online!"
				}
			}
		}

		if reqData.Phone != "" && !phoneRegex.MatchString(reqData.Phone) {
			errors["phone"] = "Invalid mobile number!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBooking", reqData)
		return c.Next()
	}
}

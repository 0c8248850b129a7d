package authValidator

import (
	"amc/middleware"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
var phoneRegex = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// Signup validates the signup request
func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FullName        string `json:"full_name"`
			Email           string `json:"email"`
			Phone           string `json:"phone"`
			Password        string `json:"password"`
			ConfirmPassword string `json:"confirm_password"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.FullName = strings.TrimSpace(reqData.FullName)
		reqData.Email = strings.TrimSpace(strings.ToLower(reqData.Email))
		reqData.Phone = strings.TrimSpace(reqData.Phone)

		if reqData.FullName == "" {
			errors["full_name"] = "Full name is required!"
		} else if len(reqData.FullName) < 3 {
			errors["full_name"] = "Full name must be at least 3 characters long!"
		}

		if reqData.Email == "" {
			errors["email"] = "Email is required!"
		} else if !emailRegex.MatchString(reqData.Email) {
			errors["email"] = "Invalid email address!"
		}

		if reqData.Phone != "" && !phoneRegex.MatchString(reqData.Phone) {
			errors["phone"] = "Invalid mobile number!"
		}

		if len(reqData.Password) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}

		if reqData.Password != reqData.ConfirmPassword {
			errors["confirm_password"] = "Passwords do not match!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSignup", reqData)
		return c.Next()
	}
}

// Login validates the login request
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Email = strings.TrimSpace(strings.ToLower(reqData.Email))

		if reqData.Email == "" {
			errors["email"] = "Email is required!"
		}
		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

package unitValidator

import (
	"campus/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type CreateUnitRequest struct {
	Code       string `json:"code" validate:"required,min=2,max=20"`
	Title      string `json:"title" validate:"required,min=3,max=200"`
	LecturerID *uint  `json:"lecturer_id"`
}

// CreateUnit validator middleware
func CreateUnit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateUnitRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Code = strings.ToUpper(strings.TrimSpace(reqData.Code))
		reqData.Title = strings.TrimSpace(reqData.Title)

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Code":
					errors["code"] = "Unit code must be 2-20 characters!"
				case "Title":
					errors["title"] = "Title must be 3-200 characters!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUnit", reqData)
		return c.Next()
	}
}

type EnrollRequest struct {
	Code string `json:"code" validate:"required"`
}

// Enroll validator middleware
func Enroll() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Code = strings.ToUpper(strings.TrimSpace(reqData.Code))

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"code": "Unit code is required!"})
		}

		c.Locals("validatedEnroll", reqData)
		return c.Next()
	}
}

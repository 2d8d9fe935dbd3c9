package adminValidator

import (
	"campus/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserListRequest struct {
	Page  *int   `json:"page"`
	Limit *int   `json:"limit"`
	Role  string `json:"role"`
}

// UserList validator middleware
func UserList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UserListRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Page == nil || *reqData.Page < 1 {
			page := 1
			reqData.Page = &page
		}
		if reqData.Limit == nil || *reqData.Limit < 1 || *reqData.Limit > 100 {
			limit := 20
			reqData.Limit = &limit
		}

		c.Locals("validatedUserList", reqData)
		return c.Next()
	}
}

package handler

import (
	"github.com/gofiber/fiber/v2"

	"jobboard/internal/model"
	"jobboard/internal/service"
)

func AdminStats(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Stats(c.UserContext(), actor(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"stats": st})
	}
}

// AdminUsers lists accounts filtered by ?search= and ?role=.
func AdminUsers(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := pageFrom(c)
		if err != nil {
			return serviceError(c, err)
		}
		role := model.Role(c.Query("role"))
		if role != "" && !role.Valid() {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ROLE", "invalid role")
		}
		res, err := svc.ListUsers(c.UserContext(), actor(c), c.Query("search"), role, page)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

func AdminDeleteUser(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteUser(c.UserContext(), actor(c), c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func AdminApplications(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := pageFrom(c)
		if err != nil {
			return serviceError(c, err)
		}
		status := model.ApplicationStatus(c.Query("status"))
		if status != "" && !status.Valid() {
			return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", "invalid status")
		}
		res, err := svc.ListApplications(c.UserContext(), actor(c), status, page)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

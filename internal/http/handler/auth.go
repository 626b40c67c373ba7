package handler

import (
	"github.com/gofiber/fiber/v2"

	"jobboard/internal/service"
)

// Register creates an account and returns {token, user}.
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RegisterInput
		if err := parseBody(c, &in); err != nil {
			return serviceError(c, err)
		}
		res, err := svc.Register(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.LoginInput
		if err := parseBody(c, &in); err != nil {
			return serviceError(c, err)
		}
		res, err := svc.Login(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

func GetProfile(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.Profile(c.UserContext(), actor(c))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"user": u})
	}
}

func UpdateProfile(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ProfileInput
		if err := parseBody(c, &in); err != nil {
			return serviceError(c, err)
		}
		u, err := svc.UpdateProfile(c.UserContext(), actor(c), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"user": u})
	}
}

// UploadResume stores the multipart file field "resume" on the caller's profile.
func UploadResume(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("resume")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "resume file is required")
		}
		up, f, err := openUpload(fh)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		u, err := svc.UploadResume(c.UserContext(), actor(c), up)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"user": u})
	}
}

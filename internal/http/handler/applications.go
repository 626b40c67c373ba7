package handler

import (
	"github.com/gofiber/fiber/v2"

	"jobboard/internal/model"
	"jobboard/internal/service"
	"jobboard/internal/storage"
)

// Apply accepts JSON, or a multipart form with jobId, coverLetter, notes and an
// optional resume file.
func Apply(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ApplyInput
		if err := parseBody(c, &in); err != nil {
			return serviceError(c, err)
		}

		var resume *storage.ResumeUpload
		if isMultipart(c) {
			if fh, err := c.FormFile("resume"); err == nil {
				up, f, err := openUpload(fh)
				if err != nil {
					return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
				}
				defer f.Close()
				resume = &up
			}
		}

		a, err := svc.Apply(c.UserContext(), actor(c), in, resume)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"application": a})
	}
}

func UserApplications(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := pageFrom(c)
		if err != nil {
			return serviceError(c, err)
		}
		res, err := svc.ListByApplicant(c.UserContext(), actor(c), c.Params("userId"), page)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// JobApplications lists a job's applications, optionally filtered by ?status=.
func JobApplications(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := pageFrom(c)
		if err != nil {
			return serviceError(c, err)
		}
		status := model.ApplicationStatus(c.Query("status"))
		res, err := svc.ListByJob(c.UserContext(), actor(c), c.Params("jobId"), status, page)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

func GetApplication(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := svc.Get(c.UserContext(), actor(c), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"application": a})
	}
}

func UpdateApplicationStatus(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.StatusInput
		if err := parseBody(c, &in); err != nil {
			return serviceError(c, err)
		}
		a, err := svc.UpdateStatus(c.UserContext(), actor(c), c.Params("id"), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"application": a})
	}
}

// DownloadResume streams a stored resume as an attachment named after the
// original upload.
func DownloadResume(svc service.ApplicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := storage.ResumePrefix + c.Params("name")
		f, err := svc.OpenResume(c.UserContext(), actor(c), key)
		if err != nil {
			return serviceError(c, err)
		}

		ct := f.Info.ContentType
		if ct == "" {
			ct = fiber.MIMEOctetStream
		}
		c.Attachment(f.Filename)
		// Attachment resets the type from the filename extension; keep the stored one.
		c.Set(fiber.HeaderContentType, ct)
		if f.Info.Size > 0 {
			return c.SendStream(f.Body, int(f.Info.Size))
		}
		return c.SendStream(f.Body)
	}
}

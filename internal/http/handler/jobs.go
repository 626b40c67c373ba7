package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"jobboard/internal/model"
	"jobboard/internal/service"
)

// jobFilterFrom reads the public job search query:
// search, location, jobType, skills (comma separated), salaryMin, salaryMax,
// datePosted (days), company, page, limit.
func jobFilterFrom(c *fiber.Ctx) (model.JobFilter, error) {
	f := model.JobFilter{
		Search:   c.Query("search"),
		Location: c.Query("location"),
		JobType:  model.JobType(c.Query("jobType")),
		Company:  c.Query("company"),
	}
	if f.JobType != "" && !f.JobType.Valid() {
		return f, &badRequest{"INVALID_JOB_TYPE", "invalid jobType"}
	}
	if raw := c.Query("skills"); raw != "" {
		f.Skills = strings.Split(raw, ",")
	}

	var ok bool
	if f.SalaryMin, ok = queryInt64(c, "salaryMin"); !ok {
		return f, &badRequest{"INVALID_SALARY", "invalid salaryMin"}
	}
	if f.SalaryMax, ok = queryInt64(c, "salaryMax"); !ok {
		return f, &badRequest{"INVALID_SALARY", "invalid salaryMax"}
	}
	if f.DatePosted, ok = queryInt(c, "datePosted", 0); !ok {
		return f, &badRequest{"INVALID_DATE_POSTED", "invalid datePosted"}
	}
	page, err := pageFrom(c)
	if err != nil {
		return f, err
	}
	f.Page, f.Limit = page.Page, page.Limit
	return f, nil
}

// ListJobs returns {jobs, pagination} of active jobs.
func ListJobs(svc service.JobService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := jobFilterFrom(c)
		if err != nil {
			return serviceError(c, err)
		}
		res, err := svc.List(c.UserContext(), actor(c), f)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

func GetJob(svc service.JobService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		j, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"job": j})
	}
}

func CreateJob(svc service.JobService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.JobInput
		if err := parseBody(c, &in); err != nil {
			return serviceError(c, err)
		}
		j, err := svc.Create(c.UserContext(), actor(c), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"job": j})
	}
}

func UpdateJob(svc service.JobService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch service.JobPatch
		if err := parseBody(c, &patch); err != nil {
			return serviceError(c, err)
		}
		j, err := svc.Update(c.UserContext(), actor(c), c.Params("id"), patch)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"job": j})
	}
}

func DeleteJob(svc service.JobService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), actor(c), c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// EmployerJobs returns {jobs, pagination} of the caller's own jobs.
func EmployerJobs(svc service.JobService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := pageFrom(c)
		if err != nil {
			return serviceError(c, err)
		}
		res, err := svc.ListByEmployer(c.UserContext(), actor(c), page)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

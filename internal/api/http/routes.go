package httpapi

import (
	"bytes"
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/skywatch/internal/lco"
	"github.com/i474232898/skywatch/internal/report"
)

var validate = validator.New()

// Reporter is the report-building surface the routes need.
type Reporter interface {
	Summary(ctx context.Context, siteCode string) (*report.Summary, error)
	Build(ctx context.Context, siteCode string) (*report.Report, error)
}

// SiteLister lists live sites.
type SiteLister interface {
	ListSites(ctx context.Context) []lco.Site
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, reporter Reporter, sites SiteLister) {
	v1 := app.Group("/api/v1")

	v1.Get("/sites", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"sites": sites.ListSites(c.UserContext()),
		})
	})

	v1.Get("/lco/:site", func(c *fiber.Ctx) error {
		q, err := parseSiteParam(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		summary, err := reporter.Summary(c.UserContext(), q.Code)
		if err != nil {
			return mapReportError(err)
		}
		return c.JSON(summary)
	})

	v1.Get("/reports/:site", func(c *fiber.Ctx) error {
		q, err := parseSiteParam(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rep, err := reporter.Build(c.UserContext(), q.Code)
		if err != nil {
			return mapReportError(err)
		}

		switch q.Format {
		case "html":
			var buf bytes.Buffer
			if err := rep.HTML(&buf); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to render report")
			}
			c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
			return c.Send(buf.Bytes())
		case "json":
			return c.JSON(rep)
		default:
			c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return c.SendString(rep.Text())
		}
	})
}

func mapReportError(err error) error {
	if errors.Is(err, lco.ErrSiteNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to build report")
}

// siteQuery holds the path and query parameters identifying a report.
type siteQuery struct {
	Code   string `validate:"required,alphanum,max=16"`
	Format string `validate:"omitempty,oneof=text html json"`
}

func parseSiteParam(c *fiber.Ctx) (siteQuery, error) {
	var q siteQuery

	q.Code = c.Params("site")
	q.Format = c.Query("format")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

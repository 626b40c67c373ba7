package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"

	"jobboard/internal/logging"
)

// Logger writes one JSON access log line per request through log:
// request_id, method, path, status, latency (ms) and, when present, user_id and
// the trace_id of the request span.
func Logger(log *logging.Logger) fiber.Handler {
	if log == nil {
		log = logging.Default()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The global error handler runs after us; report the status it will write.
			status = errorStatus(err)
		}
		fields := logging.Fields{
			"request_id": RequestIDFrom(c),
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
		}
		if cl := ClaimsFrom(c); cl != nil {
			fields["user_id"] = cl.UserID
		}
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.IsValid() {
			fields["trace_id"] = sc.TraceID().String()
		}
		if status >= fiber.StatusInternalServerError {
			fields["level"] = "error"
		}
		log.Log(fields)
		return err
	}
}

// LoggerWithWriter is Logger over a dedicated writer with timestamps in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return Logger(logging.New(w, loc))
}

func errorStatus(err error) int {
	if e, ok := err.(*fiber.Error); ok {
		return e.Code
	}
	return fiber.StatusInternalServerError
}

package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("requestId").(string))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Header.Get(fiber.HeaderXRequestID) == "" {
		t.Fatal("no request id stamped")
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "abc-123")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if got := resp.Header.Get(fiber.HeaderXRequestID); got != "abc-123" {
		t.Fatalf("request id = %q", got)
	}
}

func TestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(RequestID(), Logger(zerolog.New(&buf)))
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	if _, err := app.Test(httptest.NewRequest("GET", "/missing", nil)); err != nil {
		t.Fatal(err)
	}
	var line struct {
		Level  string `json:"level"`
		Status int    `json:"status"`
		Path   string `json:"path"`
		ID     string `json:"id"`
	}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line %q: %v", buf.String(), err)
	}
	if line.Status != 404 || line.Level != "warn" || line.Path != "/missing" || line.ID == "" {
		t.Fatalf("log line = %+v", line)
	}
}

package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey)
		return c.SendString(rid.(string))
	})

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "generated when missing", incoming: ""},
		{name: "caller id kept", incoming: "test-id-123", keep: true},
		{name: "longest accepted id", incoming: strings.Repeat("a", 128), keep: true},
		{name: "too long", incoming: strings.Repeat("a", 129)},
		{name: "inner space", incoming: "abc def"},
		{name: "non-ascii", incoming: "idé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)

			rid := resp.Header.Get(RequestIDHeader)
			if tt.keep {
				assert.Equal(t, tt.incoming, rid)
			} else {
				_, err := uuid.Parse(rid)
				assert.NoError(t, err, "want a generated uuid, got %q", rid)
			}

			buf := new(bytes.Buffer)
			buf.ReadFrom(resp.Body)
			assert.Equal(t, rid, buf.String())
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	loc := time.UTC

	// Logger usually depends on RequestID for request_id field
	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, loc))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	// Verify log output
	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	assert.NoError(t, err)

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency"])
	assert.NotEmpty(t, logData["ts"])
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(LoggerWithWriter(&buf, time.UTC))

	app.Get("/bad", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusBadRequest)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusServiceUnavailable, "down")
	})

	tests := []struct {
		path       string
		wantLevel  string
		wantStatus float64
	}{
		{"/bad", "WARN", 400},
		{"/boom", "ERROR", 503},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			buf.Reset()
			app.Test(httptest.NewRequest("GET", tt.path, nil))

			var logData map[string]any
			assert.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
			assert.Equal(t, tt.wantLevel, logData["level"])
			assert.Equal(t, tt.wantStatus, logData["status"])
			assert.Equal(t, "http_request", logData["msg"])
			assert.Equal(t, "", logData["request_id"])
		})
	}
}

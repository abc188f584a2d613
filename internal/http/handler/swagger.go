package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/swaggo/swag"
)

// SwaggerUI serves the API docs for info. The host is fixed here, before any
// request reads the spec. Schemes stay empty so the UI uses the scheme it was
// loaded over.
func SwaggerUI(info *swag.Spec, host string) fiber.Handler {
	info.Host = host
	info.Schemes = []string{}
	return swagger.HandlerDefault
}

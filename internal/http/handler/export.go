package handler

import (
	"errors"
	"log/slog"
	"net/url"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"exportapi/internal/model"
	"exportapi/internal/service"
	"exportapi/internal/validator"
)

// Export godoc
// @Summary      Export tabular data
// @Description  Validates the table and returns it as an xlsx, csv or pdf download.
// @Tags         export
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/csv,application/pdf
// @Param        request  body      model.ExportRequest  true  "Table to export"
// @Success      200      {file}    file
// @Failure      400      {object}  errorPayload
// @Failure      401      {object}  errorPayload
// @Failure      500      {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/export [post]
func Export(exports service.ExportService, history service.HistoryService, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.ExportRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, CodeBadRequest, "request body must be a JSON export request", nil)
		}

		doc, err := req.ToDocument()
		if err != nil {
			var fe *model.FormatError
			if errors.As(err, &fe) {
				return writeError(c, fiber.StatusBadRequest, CodeInvalidFormat, fe.Error(), nil)
			}
			return writeError(c, fiber.StatusBadRequest, CodeInvalidOptions, err.Error(), nil)
		}

		requestID := requestIDFromCtx(c)
		log := logger.With("request_id", requestID, "format", doc.Format.String())

		out, err := exports.Execute(c.UserContext(), doc)
		if err != nil {
			var ve *validator.Error
			if service.IsValidation(err) && errors.As(err, &ve) {
				return writeError(c, fiber.StatusBadRequest, CodeValidation, ve.Error(), ve.Details())
			}
			log.Error("export_failed", "error", err.Error())
			var ee *service.ExportError
			if errors.As(err, &ee) && ee.Kind == service.KindEncoding {
				return writeError(c, fiber.StatusInternalServerError, CodeExportFailed, "export failed", nil)
			}
			return writeError(c, fiber.StatusInternalServerError, CodeInternal, "internal server error", nil)
		}

		if history != nil {
			if _, err := history.Record(c.UserContext(), doc, len(out), requestID); err != nil {
				log.Warn("export_history_failed", "error", err.Error())
			}
		}

		log.Info("export_completed",
			"rows", len(doc.Rows),
			"columns", len(doc.Headers),
			"size", len(out),
		)

		c.Set(fiber.HeaderContentType, doc.Format.MimeType())
		c.Set(fiber.HeaderContentDisposition, contentDisposition(doc.Filename()))
		return c.Status(fiber.StatusOK).Send(out)
	}
}

// contentDisposition adds an RFC 5987 filename* when the name is not plain ASCII.
func contentDisposition(name string) string {
	v := `attachment; filename="` + name + `"`
	if !isASCII(name) {
		v += `; filename*=UTF-8''` + url.PathEscape(name)
	}
	return v
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

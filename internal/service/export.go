package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"exportapi/internal/encoder"
	"exportapi/internal/metrics"
	"exportapi/internal/model"
	"exportapi/internal/validator"
)

const tracerName = "exportapi/internal/service"

// ErrorKind tells callers which stage of an export failed.
type ErrorKind int

const (
	// KindValidation means the caller's data broke an invariant; fix the input and resend.
	KindValidation ErrorKind = iota + 1
	// KindEncoding means an encoder failed on valid data. It is a defect and is not retried.
	KindEncoding
)

// ExportError is the single failure type returned by ExportService.Execute.
type ExportError struct {
	Kind ErrorKind
	Err  error
}

func (e *ExportError) Error() string {
	if e.Kind == KindEncoding {
		return fmt.Sprintf("Export failed: %v", e.Err)
	}
	return e.Err.Error()
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// ExportService turns a document into file bytes.
type ExportService interface {
	// Execute validates doc and, if valid, encodes it with the encoder for doc.Format.
	// The context only carries tracing; encoding is bounded and never suspends.
	Execute(ctx context.Context, doc *model.Document) ([]byte, error)
}

type exportService struct {
	excel   encoder.Encoder
	csv     encoder.Encoder
	pdf     encoder.Encoder
	metrics *metrics.Export
	tracer  trace.Tracer
}

// ExportOption customises an ExportService.
type ExportOption func(*exportService)

// WithMetrics records every Execute outcome.
func WithMetrics(m *metrics.Export) ExportOption {
	return func(s *exportService) { s.metrics = m }
}

// NewExportService wires one encoder per format.
func NewExportService(excel, csv, pdf encoder.Encoder, opts ...ExportOption) ExportService {
	s := &exportService{
		excel:  excel,
		csv:    csv,
		pdf:    pdf,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *exportService) Execute(ctx context.Context, doc *model.Document) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "export.execute", trace.WithAttributes(
		attribute.String("export.format", doc.Format.String()),
		attribute.Int("export.rows", len(doc.Rows)),
		attribute.Int("export.columns", len(doc.Headers)),
	))
	defer span.End()

	if err := s.validate(ctx, doc); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		s.metrics.Observe(doc.Format.String(), metrics.OutcomeInvalid, 0)
		return nil, &ExportError{Kind: KindValidation, Err: err}
	}

	out, err := s.encode(ctx, doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encoding failed")
		s.metrics.Observe(doc.Format.String(), metrics.OutcomeEncodeFailure, 0)
		return nil, &ExportError{Kind: KindEncoding, Err: err}
	}

	span.SetAttributes(attribute.Int("export.size", len(out)))
	s.metrics.Observe(doc.Format.String(), metrics.OutcomeSuccess, len(out))
	return out, nil
}

func (s *exportService) validate(ctx context.Context, doc *model.Document) error {
	_, span := s.tracer.Start(ctx, "export.validate")
	defer span.End()
	return validator.Validate(doc)
}

func (s *exportService) encode(ctx context.Context, doc *model.Document) ([]byte, error) {
	_, span := s.tracer.Start(ctx, "export.encode")
	defer span.End()

	var enc encoder.Encoder
	switch doc.Format {
	case model.FormatExcel:
		enc = s.excel
	case model.FormatCSV:
		enc = s.csv
	case model.FormatPDF:
		enc = s.pdf
	default:
		// Unreachable for documents built through model.ParseFormat.
		return nil, &encoder.Error{Format: doc.Format, Err: errors.New("no encoder for format")}
	}
	return enc.Encode(doc)
}

// IsValidation reports whether err is an ExportError caused by invalid input.
func IsValidation(err error) bool {
	var ee *ExportError
	return errors.As(err, &ee) && ee.Kind == KindValidation
}

package repository

import (
	"context"

	"exportapi/internal/model"
)

// ExportRepository stores export audit records. No business logic here,
// strictly persistence operations.
type ExportRepository interface {
	// Create inserts a record and returns it as stored.
	Create(ctx context.Context, rec *model.ExportRecord) (*model.ExportRecord, error)

	// List returns a page of records, newest first, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.ExportRecord], error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}

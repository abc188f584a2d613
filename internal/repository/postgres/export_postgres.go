package postgres

import (
	"context"
	"database/sql"

	"exportapi/internal/model"
	"exportapi/internal/repository"
)

// ExportPostgres is a PostgreSQL implementation of repository.ExportRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ExportPostgres struct {
	db *sql.DB
}

func NewExportPostgres(db *sql.DB) *ExportPostgres {
	return &ExportPostgres{db: db}
}

var _ repository.ExportRepository = (*ExportPostgres)(nil)

const exportColumns = `id, request_id, title, format, row_count, column_count, size, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (model.ExportRecord, error) {
	var r model.ExportRecord
	err := s.Scan(
		&r.ID,
		&r.RequestID,
		&r.Title,
		&r.Format,
		&r.RowCount,
		&r.ColumnCount,
		&r.Size,
		&r.CreatedAt,
	)
	return r, err
}

// Create inserts a new export record and returns the stored row.
func (r *ExportPostgres) Create(ctx context.Context, rec *model.ExportRecord) (*model.ExportRecord, error) {
	const q = `
		INSERT INTO export_records (` + exportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + exportColumns
	row := r.db.QueryRowContext(ctx, q,
		rec.ID,
		rec.RequestID,
		rec.Title,
		rec.Format,
		rec.RowCount,
		rec.ColumnCount,
		rec.Size,
		rec.CreatedAt,
	)
	out, err := scanRecord(row)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns records using LIMIT/OFFSET pagination and a total count.
func (r *ExportPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ExportRecord], error) {
	const qCount = `SELECT COUNT(*) FROM export_records`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + exportColumns + `
		FROM export_records
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ExportRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.ExportRecord]{
		Items: items,
		Total: total,
	}, nil
}

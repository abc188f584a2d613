package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"exportapi/internal/model"
	"exportapi/internal/repository"
)

var ErrDocumentNil = errors.New("document is nil")

// HistoryListResult is the service-level DTO for paginated export records.
type HistoryListResult struct {
	Items []model.ExportRecord `json:"data"`
	Total int                  `json:"total"`
}

// HistoryService keeps an audit trail of completed exports.
// Only metadata is recorded, never the generated file.
type HistoryService interface {
	// Record stores one entry for an export of doc that produced size bytes,
	// tagged with the request that asked for it.
	Record(ctx context.Context, doc *model.Document, size int, requestID string) (*model.ExportRecord, error)

	// List returns records using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*HistoryListResult, error)
}

type historyService struct {
	repo repository.ExportRepository
	now  func() time.Time
}

// NewHistoryService constructs a HistoryService on top of repo.
func NewHistoryService(repo repository.ExportRepository) HistoryService {
	return &historyService{repo: repo, now: time.Now}
}

func (s *historyService) Record(ctx context.Context, doc *model.Document, size int, requestID string) (*model.ExportRecord, error) {
	if doc == nil {
		return nil, ErrDocumentNil
	}
	rec := &model.ExportRecord{
		ID:          uuid.New().String(),
		RequestID:   requestID,
		Title:       doc.Title,
		Format:      doc.Format.String(),
		RowCount:    len(doc.Rows),
		ColumnCount: len(doc.Headers),
		Size:        int64(size),
		CreatedAt:   s.now().UTC(),
	}
	stored, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("save export record: %w", err)
	}
	return stored, nil
}

func (s *historyService) List(ctx context.Context, limit, offset int) (*HistoryListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &HistoryListResult{Items: res.Items, Total: res.Total}, nil
}

package mocks

import (
	"context"

	"exportapi/internal/model"
	"exportapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Execute(ctx context.Context, doc *model.Document) ([]byte, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) Record(ctx context.Context, doc *model.Document, size int, requestID string) (*model.ExportRecord, error) {
	args := m.Called(ctx, doc, size, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExportRecord), args.Error(1)
}

func (m *MockHistoryService) List(ctx context.Context, limit, offset int) (*service.HistoryListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HistoryListResult), args.Error(1)
}

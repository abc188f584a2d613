package mocks

import (
	"exportapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockEncoder struct {
	mock.Mock
	format model.Format
}

func NewMockEncoder(f model.Format) *MockEncoder {
	return &MockEncoder{format: f}
}

func (m *MockEncoder) Format() model.Format {
	return m.format
}

func (m *MockEncoder) Encode(doc *model.Document) ([]byte, error) {
	args := m.Called(doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

package mocks

import (
	"context"

	"rosapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) Upsert(ctx context.Context, rec *model.ROSRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecordRepository) Get(ctx context.Context, owner, repository, id string) (*model.ROSRecord, error) {
	args := m.Called(ctx, owner, repository, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ROSRecord), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"student-performance-dashboard/app/models"
)

type MockStudentSource struct {
	mock.Mock
}

func (m *MockStudentSource) LoadStudents(ctx context.Context) ([]models.StudentRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StudentRecord), args.Error(1)
}

type MockChartCache struct {
	mock.Mock
}

func (m *MockChartCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockChartCache) Set(ctx context.Context, key string, png []byte) error {
	args := m.Called(ctx, key, png)
	return args.Error(0)
}

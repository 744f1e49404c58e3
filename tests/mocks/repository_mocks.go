// Package mocks provides testify mocks for the repository interfaces
package mocks

import (
	"context"
	"time"

	"github.com/mailroomhq/mailroom-backend/internal/models"
	"github.com/mailroomhq/mailroom-backend/internal/repository"
	"github.com/stretchr/testify/mock"
)

// MockMailRepository implements repository.MailRepository
type MockMailRepository struct {
	mock.Mock
}

// Create persists a mail item with its initial timeline event
func (m *MockMailRepository) Create(ctx context.Context, item *models.MailItem, event *models.TimelineEvent) error {
	args := m.Called(ctx, item, event)
	return args.Error(0)
}

// GetByID retrieves a mail item by its identifier
func (m *MockMailRepository) GetByID(ctx context.Context, id string) (*models.MailItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MailItem), args.Error(1)
}

// List retrieves mail items newest first
func (m *MockMailRepository) List(ctx context.Context, direction models.Direction, limit, offset int) ([]models.MailItem, int64, error) {
	args := m.Called(ctx, direction, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.MailItem), args.Get(1).(int64), args.Error(2)
}

// Search retrieves mail items matching the filter
func (m *MockMailRepository) Search(ctx context.Context, filter repository.SearchFilter) ([]models.MailItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MailItem), args.Error(1)
}

// ApplyTransition persists a status change and its timeline event
func (m *MockMailRepository) ApplyTransition(ctx context.Context, item *models.MailItem, event *models.TimelineEvent) error {
	args := m.Called(ctx, item, event)
	return args.Error(0)
}

// Timeline retrieves a mail item's events in append order
func (m *MockMailRepository) Timeline(ctx context.Context, id string) ([]models.TimelineEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TimelineEvent), args.Error(1)
}

// CountByStatus counts items of one direction in a given status
func (m *MockMailRepository) CountByStatus(ctx context.Context, direction models.Direction, status models.Status) (int64, error) {
	args := m.Called(ctx, direction, status)
	return args.Get(0).(int64), args.Error(1)
}

// CountCreatedSince counts items logged at or after the given time
func (m *MockMailRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

// CountDeliveredSince counts items delivered at or after the given time
func (m *MockMailRepository) CountDeliveredSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

// MockEmployeeRepository implements repository.EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

// Create creates a new employee
func (m *MockEmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

// GetByID retrieves an employee by its ID
func (m *MockEmployeeRepository) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

// Search retrieves employees matching the query
func (m *MockEmployeeRepository) Search(ctx context.Context, query string) ([]models.Employee, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Employee), args.Error(1)
}

// Count counts all employees in the directory
func (m *MockEmployeeRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

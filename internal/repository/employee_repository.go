package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/mailroomhq/mailroom-backend/internal/models"
	"gorm.io/gorm"
)

// EmployeeRepository defines the interface for employee directory access
type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
	Search(ctx context.Context, query string) ([]models.Employee, error)
	Count(ctx context.Context) (int64, error)
}

// employeeRepository implements EmployeeRepository using GORM
type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new EmployeeRepository instance
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create creates a new employee
func (r *employeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	result := r.db.WithContext(ctx).Create(employee)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return fmt.Errorf("employee with email '%s' already exists: %w", employee.Email, ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to create employee: %w", result.Error)
	}
	return nil
}

// GetByID retrieves an employee by its ID
func (r *employeeRepository) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	result := r.db.WithContext(ctx).First(&employee, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get employee by ID: %w", result.Error)
	}
	return &employee, nil
}

// Search retrieves employees whose name or department contains the query,
// case-insensitive. An empty query lists the full directory.
func (r *employeeRepository) Search(ctx context.Context, query string) ([]models.Employee, error) {
	q := r.db.WithContext(ctx).Model(&models.Employee{})
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(department) LIKE LOWER(?)", pattern, pattern)
	}

	var employees []models.Employee
	if err := q.Order("name ASC").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}
	return employees, nil
}

// Count counts all employees in the directory
func (r *employeeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Employee{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}

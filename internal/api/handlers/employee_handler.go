package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/mailroomhq/mailroom-backend/internal/api/response"
	"github.com/mailroomhq/mailroom-backend/internal/repository"
	"github.com/mailroomhq/mailroom-backend/internal/validator"
)

// EmployeeHandler handles employee directory HTTP requests
type EmployeeHandler struct {
	employeeRepo repository.EmployeeRepository
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employeeRepo repository.EmployeeRepository) *EmployeeHandler {
	return &EmployeeHandler{employeeRepo: employeeRepo}
}

// List handles GET /api/employees
func (h *EmployeeHandler) List(c echo.Context) error {
	query := validator.SanitizeString(c.QueryParam("q"), 255)

	employees, err := h.employeeRepo.Search(c.Request().Context(), query)
	if err != nil {
		return response.InternalError(c, "failed to list employees")
	}

	return response.Success(c, employees)
}

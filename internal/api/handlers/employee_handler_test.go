package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mailroomhq/mailroom-backend/internal/models"
	"github.com/mailroomhq/mailroom-backend/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEmployeeList_PassesSanitizedQuery(t *testing.T) {
	repo := new(mocks.MockEmployeeRepository)
	repo.On("Search", mock.Anything, "sarah").Return([]models.Employee{
		{Name: "Sarah Johnson", Department: "Legal"},
	}, nil)

	handler := NewEmployeeHandler(repo)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/employees?q=%20sarah%20", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.List(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sarah Johnson")
	repo.AssertExpectations(t)
}

func TestEmployeeList_RepositoryErrorReturns500(t *testing.T) {
	repo := new(mocks.MockEmployeeRepository)
	repo.On("Search", mock.Anything, "").Return(nil, assert.AnError)

	handler := NewEmployeeHandler(repo)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.List(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

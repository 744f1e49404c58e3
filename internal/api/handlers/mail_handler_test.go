package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	apperrors "github.com/mailroomhq/mailroom-backend/internal/errors"
	"github.com/mailroomhq/mailroom-backend/internal/models"
	"github.com/mailroomhq/mailroom-backend/internal/notification"
	"github.com/mailroomhq/mailroom-backend/internal/repository"
	"github.com/mailroomhq/mailroom-backend/internal/services"
	"github.com/mailroomhq/mailroom-backend/tests/fixtures"
	"github.com/mailroomhq/mailroom-backend/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// MailHandlerTestSuite is the test suite for MailHandler
type MailHandlerTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	repo    *mocks.MockMailRepository
	center  *notification.Center
	handler *MailHandler
}

// SetupTest runs before each test
func (s *MailHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.repo = new(mocks.MockMailRepository)
	s.center = notification.NewCenter(nil)

	mailService := services.NewMailService(s.repo, s.center, "FedEx", nil)
	searchService := services.NewSearchService(s.repo)
	timelineService := services.NewTimelineService(s.repo)
	s.handler = NewMailHandler(s.repo, mailService, searchService, timelineService)
}

// TestMailHandlerTestSuite runs the test suite
func TestMailHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(MailHandlerTestSuite))
}

func (s *MailHandlerTestSuite) request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

// ==================== CreateIncoming Tests ====================

func (s *MailHandlerTestSuite) TestCreateIncoming_Returns201() {
	// Arrange
	s.repo.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.MailItem).ID = "IN001"
		}).
		Return(nil)

	body := `{"sender":"ACME Corp","recipient":"Sarah Johnson","department":"Legal","type":"Letter","priority":"Normal"}`
	c, rec := s.request(http.MethodPost, "/api/mail/incoming", body)

	// Act
	err := s.handler.CreateIncoming(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusCreated, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), `"id":"IN001"`)
	assert.Contains(s.T(), rec.Body.String(), `"status":"awaiting_pickup"`)
}

func (s *MailHandlerTestSuite) TestCreateIncoming_MissingFieldReturns400() {
	// Arrange
	body := `{"sender":"ACME Corp","type":"Letter","priority":"Normal"}`
	c, rec := s.request(http.MethodPost, "/api/mail/incoming", body)

	// Act
	err := s.handler.CreateIncoming(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), apperrors.CodeValidation)
}

func (s *MailHandlerTestSuite) TestCreateIncoming_MalformedBodyReturns400() {
	// Arrange
	c, rec := s.request(http.MethodPost, "/api/mail/incoming", `{not json`)

	// Act
	err := s.handler.CreateIncoming(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

// ==================== CreateOutgoing Tests ====================

func (s *MailHandlerTestSuite) TestCreateOutgoing_Returns201() {
	// Arrange
	s.repo.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.MailItem).ID = "OUT001"
		}).
		Return(nil)

	body := `{"sender":"Legal Department","recipient":"Johnson & Associates","recipient_address":"450 Park Avenue","type":"Certified Mail","priority":"High"}`
	c, rec := s.request(http.MethodPost, "/api/mail/outgoing", body)

	// Act
	err := s.handler.CreateOutgoing(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusCreated, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), `"status":"pending"`)
}

// ==================== List Tests ====================

func (s *MailHandlerTestSuite) TestList_ReturnsPaginatedItems() {
	// Arrange
	items := []models.MailItem{{ID: "IN002"}, {ID: "IN001"}}
	s.repo.On("List", mock.Anything, models.DirectionIncoming, 20, 0).Return(items, int64(2), nil)

	c, rec := s.request(http.MethodGet, "/api/mail?direction=incoming", "")

	// Act
	err := s.handler.List(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), `"total":2`)
}

func (s *MailHandlerTestSuite) TestList_InvalidDirectionReturns400() {
	// Arrange
	c, rec := s.request(http.MethodGet, "/api/mail?direction=sideways", "")

	// Act
	err := s.handler.List(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *MailHandlerTestSuite) TestList_ClampsPagination() {
	// Arrange
	s.repo.On("List", mock.Anything, models.Direction(""), 100, 0).Return([]models.MailItem{}, int64(0), nil)

	c, rec := s.request(http.MethodGet, "/api/mail?limit=5000&offset=-3", "")

	// Act
	err := s.handler.List(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
	s.repo.AssertExpectations(s.T())
}

// ==================== Get Tests ====================

func (s *MailHandlerTestSuite) TestGet_Found() {
	// Arrange
	s.repo.On("GetByID", mock.Anything, "IN001").Return(fixtures.NewIncomingMailBuilder().Build(), nil)

	c, rec := s.request(http.MethodGet, "/api/mail/IN001", "")
	c.SetParamNames("id")
	c.SetParamValues("IN001")

	// Act
	err := s.handler.Get(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func (s *MailHandlerTestSuite) TestGet_NotFoundReturns404() {
	// Arrange
	s.repo.On("GetByID", mock.Anything, "IN404").Return(nil, repository.ErrNotFound)

	c, rec := s.request(http.MethodGet, "/api/mail/IN404", "")
	c.SetParamNames("id")
	c.SetParamValues("IN404")

	// Act
	err := s.handler.Get(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

// ==================== Transition Tests ====================

func (s *MailHandlerTestSuite) TestTransition_LegalStepReturns200() {
	// Arrange
	item := fixtures.NewIncomingMailBuilder().
		WithTimeline(fixtures.NewTimelineEventBuilder().BuildValue()).
		Build()
	s.repo.On("GetByID", mock.Anything, "IN001").Return(item, nil)
	s.repo.On("ApplyTransition", mock.Anything, item, mock.Anything).Return(nil)

	c, rec := s.request(http.MethodPost, "/api/mail/IN001/transition", `{"status":"notified"}`)
	c.SetParamNames("id")
	c.SetParamValues("IN001")

	// Act
	err := s.handler.Transition(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), `"status":"notified"`)
}

func (s *MailHandlerTestSuite) TestTransition_IllegalStepReturns409() {
	// Arrange
	item := &models.MailItem{
		ID:        "OUT001",
		Direction: models.DirectionOutgoing,
		Status:    models.StatusPending,
		Timeline:  []models.TimelineEvent{{Sequence: 1, ResultingStatus: models.StatusPending}},
	}
	s.repo.On("GetByID", mock.Anything, "OUT001").Return(item, nil)

	c, rec := s.request(http.MethodPost, "/api/mail/OUT001/transition", `{"status":"delivered"}`)
	c.SetParamNames("id")
	c.SetParamValues("OUT001")

	// Act
	err := s.handler.Transition(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusConflict, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), apperrors.CodeInvalidTransition)
}

func (s *MailHandlerTestSuite) TestTransition_MissingStatusReturns400() {
	// Arrange
	c, rec := s.request(http.MethodPost, "/api/mail/IN001/transition", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("IN001")

	// Act
	err := s.handler.Transition(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *MailHandlerTestSuite) TestTransition_UnknownItemReturns404() {
	// Arrange
	s.repo.On("GetByID", mock.Anything, "IN404").Return(nil, repository.ErrNotFound)

	c, rec := s.request(http.MethodPost, "/api/mail/IN404/transition", `{"status":"delivered"}`)
	c.SetParamNames("id")
	c.SetParamValues("IN404")

	// Act
	err := s.handler.Transition(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

// ==================== Timeline Tests ====================

func (s *MailHandlerTestSuite) TestTimeline_ReturnsView() {
	// Arrange
	events := []models.TimelineEvent{
		{Sequence: 1, Action: models.ActionLogged, ResultingStatus: models.StatusPending},
		{Sequence: 2, Action: models.ActionShipped, ResultingStatus: models.StatusShipped},
	}
	s.repo.On("Timeline", mock.Anything, "OUT001").Return(events, nil)

	c, rec := s.request(http.MethodGet, "/api/mail/OUT001/timeline", "")
	c.SetParamNames("id")
	c.SetParamValues("OUT001")

	// Act
	err := s.handler.Timeline(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), `"current_status":"shipped"`)
}

func (s *MailHandlerTestSuite) TestTimeline_UnknownItemReturns404() {
	// Arrange
	s.repo.On("Timeline", mock.Anything, "IN404").Return(nil, repository.ErrNotFound)

	c, rec := s.request(http.MethodGet, "/api/mail/IN404/timeline", "")
	c.SetParamNames("id")
	c.SetParamValues("IN404")

	// Act
	err := s.handler.Timeline(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

// ==================== Search Tests ====================

func (s *MailHandlerTestSuite) TestSearch_PassesFilterToService() {
	// Arrange
	s.repo.On("Search", mock.Anything, mock.MatchedBy(func(f repository.SearchFilter) bool {
		return f.Query == "acme" && f.Status == models.StatusShipped
	})).Return([]models.MailItem{{ID: "OUT001"}}, nil)

	c, rec := s.request(http.MethodGet, "/api/mail/search?q=acme&status=shipped", "")

	// Act
	err := s.handler.Search(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	var resp struct {
		Success bool              `json:"success"`
		Data    []models.MailItem `json:"data"`
	}
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(s.T(), resp.Data, 1)
}

func (s *MailHandlerTestSuite) TestSearch_MalformedDateReturns400() {
	// Arrange
	c, rec := s.request(http.MethodGet, "/api/mail/search?date_start=yesterday", "")

	// Act
	err := s.handler.Search(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), apperrors.CodeInvalidQuery)
}

func (s *MailHandlerTestSuite) TestSearch_InvertedDateRangeReturns400() {
	// Arrange
	c, rec := s.request(http.MethodGet, "/api/mail/search?date_start=2026-09-02&date_end=2026-09-01", "")

	// Act
	err := s.handler.Search(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), apperrors.CodeInvalidQuery)
}

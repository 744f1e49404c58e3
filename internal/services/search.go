package services

import (
	"context"

	apperrors "github.com/mailroomhq/mailroom-backend/internal/errors"
	"github.com/mailroomhq/mailroom-backend/internal/models"
	"github.com/mailroomhq/mailroom-backend/internal/repository"
)

// SearchService validates search criteria and runs mail queries
type SearchService struct {
	repo repository.MailRepository
}

// NewSearchService creates a new SearchService
func NewSearchService(repo repository.MailRepository) *SearchService {
	return &SearchService{repo: repo}
}

// Search validates the filter and returns every matching item. All criteria
// combine with AND; an empty filter matches everything.
func (s *SearchService) Search(ctx context.Context, filter repository.SearchFilter) ([]models.MailItem, error) {
	if filter.Type != "" && !models.ValidMailType(filter.Type) {
		return nil, apperrors.NewInvalidQueryError("unknown mail type: " + string(filter.Type))
	}
	if filter.Status != "" && !models.KnownStatus(filter.Status) {
		return nil, apperrors.NewInvalidQueryError("unknown status: " + string(filter.Status))
	}
	if filter.Direction != "" && !filter.Direction.Valid() {
		return nil, apperrors.NewInvalidQueryError("unknown direction: " + string(filter.Direction))
	}
	if filter.DateStart != nil && filter.DateEnd != nil && filter.DateStart.After(*filter.DateEnd) {
		return nil, apperrors.NewInvalidQueryError("date_start must not be after date_end")
	}

	return s.repo.Search(ctx, filter)
}

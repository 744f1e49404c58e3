package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mailroomhq/mailroom-backend/internal/models"
	"gorm.io/gorm"
)

// SearchFilter holds the optional, AND-combined criteria for a mail search.
// Zero values mean "no constraint".
type SearchFilter struct {
	Query     string           // case-insensitive substring on id, sender, recipient, notes
	Type      models.MailType  // exact match
	Status    models.Status    // exact match
	Direction models.Direction // exact match
	DateStart *time.Time       // inclusive, calendar date only
	DateEnd   *time.Time       // inclusive, calendar date only
}

// MailRepository defines the interface for mail item data access
type MailRepository interface {
	Create(ctx context.Context, item *models.MailItem, event *models.TimelineEvent) error
	GetByID(ctx context.Context, id string) (*models.MailItem, error)
	List(ctx context.Context, direction models.Direction, limit, offset int) ([]models.MailItem, int64, error)
	Search(ctx context.Context, filter SearchFilter) ([]models.MailItem, error)
	ApplyTransition(ctx context.Context, item *models.MailItem, event *models.TimelineEvent) error
	Timeline(ctx context.Context, id string) ([]models.TimelineEvent, error)
	CountByStatus(ctx context.Context, direction models.Direction, status models.Status) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountDeliveredSince(ctx context.Context, since time.Time) (int64, error)
}

// mailRepository implements MailRepository using GORM
type mailRepository struct {
	db *gorm.DB
}

// NewMailRepository creates a new MailRepository instance
func NewMailRepository(db *gorm.DB) MailRepository {
	return &mailRepository{db: db}
}

// Create assigns the next sequential identifier for the item's direction and
// persists the item together with its initial timeline event in one transaction
func (r *mailRepository) Create(ctx context.Context, item *models.MailItem, event *models.TimelineEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxSeq int
		row := tx.Model(&models.MailItem{}).
			Where("direction = ?", item.Direction).
			Select("COALESCE(MAX(seq), 0)").
			Row()
		if err := row.Scan(&maxSeq); err != nil {
			return fmt.Errorf("failed to read mail sequence: %w", err)
		}

		item.Seq = maxSeq + 1
		item.ID = models.FormatMailID(item.Direction, item.Seq)

		if err := tx.Create(item).Error; err != nil {
			if isDuplicateKeyError(err) {
				return fmt.Errorf("mail item '%s' already exists: %w", item.ID, ErrDuplicateEntry)
			}
			return fmt.Errorf("failed to create mail item: %w", err)
		}

		event.MailItemID = item.ID
		event.Sequence = 1
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("failed to create initial timeline event: %w", err)
		}

		return nil
	})
}

// GetByID retrieves a mail item by its identifier with its timeline preloaded
// in append order
func (r *mailRepository) GetByID(ctx context.Context, id string) (*models.MailItem, error) {
	var item models.MailItem
	result := r.db.WithContext(ctx).
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		First(&item, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get mail item by ID: %w", result.Error)
	}
	return &item, nil
}

// List retrieves mail items newest first, optionally restricted to one direction.
// An empty direction lists both.
func (r *mailRepository) List(ctx context.Context, direction models.Direction, limit, offset int) ([]models.MailItem, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MailItem{})
	if direction != "" {
		query = query.Where("direction = ?", direction)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count mail items: %w", err)
	}

	var items []models.MailItem
	if err := query.
		Order("created_at DESC, seq DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list mail items: %w", err)
	}

	return items, total, nil
}

// Search returns all items matching the filter in store iteration order.
// An empty result is not an error.
func (r *mailRepository) Search(ctx context.Context, filter SearchFilter) ([]models.MailItem, error) {
	query := r.db.WithContext(ctx).Model(&models.MailItem{})

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where(
			"LOWER(id) LIKE LOWER(?) OR LOWER(sender) LIKE LOWER(?) OR LOWER(recipient) LIKE LOWER(?) OR LOWER(notes) LIKE LOWER(?)",
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Direction != "" {
		query = query.Where("direction = ?", filter.Direction)
	}
	// Date bounds compare by calendar date, not time of day
	if filter.DateStart != nil {
		query = query.Where("created_at >= ?", startOfDay(*filter.DateStart))
	}
	if filter.DateEnd != nil {
		query = query.Where("created_at < ?", startOfDay(*filter.DateEnd).AddDate(0, 0, 1))
	}

	var items []models.MailItem
	if err := query.Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to search mail items: %w", err)
	}
	return items, nil
}

// ApplyTransition persists a status change and its timeline event atomically.
// Either both the item row and the appended event commit, or neither does.
func (r *mailRepository) ApplyTransition(ctx context.Context, item *models.MailItem, event *models.TimelineEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status": item.Status,
		}
		if item.TrackingNumber != "" {
			updates["tracking_number"] = item.TrackingNumber
		}
		if item.Carrier != "" {
			updates["carrier"] = item.Carrier
		}
		if item.ShippedAt != nil {
			updates["shipped_at"] = item.ShippedAt
		}
		if item.DeliveredAt != nil {
			updates["delivered_at"] = item.DeliveredAt
		}

		result := tx.Model(&models.MailItem{}).Where("id = ?", item.ID).Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("failed to update mail item status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		event.MailItemID = item.ID
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("failed to append timeline event: %w", err)
		}

		return nil
	})
}

// Timeline retrieves a mail item's events in append order
func (r *mailRepository) Timeline(ctx context.Context, id string) ([]models.TimelineEvent, error) {
	var exists int64
	if err := r.db.WithContext(ctx).Model(&models.MailItem{}).Where("id = ?", id).Count(&exists).Error; err != nil {
		return nil, fmt.Errorf("failed to check mail item: %w", err)
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	var events []models.TimelineEvent
	if err := r.db.WithContext(ctx).
		Where("mail_item_id = ?", id).
		Order("sequence ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to load timeline: %w", err)
	}
	return events, nil
}

// CountByStatus counts items of one direction in a given status
func (r *mailRepository) CountByStatus(ctx context.Context, direction models.Direction, status models.Status) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.MailItem{}).
		Where("direction = ? AND status = ?", direction, status).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count mail items by status: %w", result.Error)
	}
	return count, nil
}

// CountCreatedSince counts items logged at or after the given time
func (r *mailRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.MailItem{}).
		Where("created_at >= ?", since).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count created mail items: %w", result.Error)
	}
	return count, nil
}

// CountDeliveredSince counts items delivered at or after the given time
func (r *mailRepository) CountDeliveredSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.MailItem{}).
		Where("delivered_at >= ?", since).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count delivered mail items: %w", result.Error)
	}
	return count, nil
}

// startOfDay truncates a time to midnight in its own location
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"lodge-backend/models"
)

type LodgeService struct {
	DB *gorm.DB
}

func NewLodgeService(db *gorm.DB) *LodgeService {
	return &LodgeService{DB: db}
}

// List returns the catalog, optionally only featured lodges. Rooms ride along
// so the public listing can show price/stock without extra round trips.
func (s *LodgeService) List(featuredOnly bool) ([]models.Lodge, error) {
	q := s.DB.Preload("Rooms").Order("featured DESC, name ASC")
	if featuredOnly {
		q = q.Where("featured = ?", true)
	}
	var lodges []models.Lodge
	if err := q.Find(&lodges).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve lodges: %w", err)
	}
	return lodges, nil
}

func (s *LodgeService) GetBySlug(slug string) (*models.Lodge, error) {
	var lodge models.Lodge
	if err := s.DB.Preload("Rooms").Where("slug = ?", strings.TrimSpace(slug)).First(&lodge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("lodge_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve lodge: %w", err)
	}
	return &lodge, nil
}

func (s *LodgeService) GetByID(id uint) (*models.Lodge, error) {
	var lodge models.Lodge
	if err := s.DB.Preload("Rooms").First(&lodge, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("lodge_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve lodge: %w", err)
	}
	return &lodge, nil
}

func (s *LodgeService) Create(lodge *models.Lodge) error {
	lodge.Slug = strings.TrimSpace(strings.ToLower(lodge.Slug))
	if lodge.Slug == "" {
		return errors.New("validation: slug required")
	}
	if err := s.DB.Create(lodge).Error; err != nil {
		if isDuplicateKeyError(err) {
			return errors.New("validation: slug already in use")
		}
		return fmt.Errorf("failed to create lodge: %w", err)
	}
	return nil
}

func (s *LodgeService) Update(id uint, updates map[string]interface{}) (*models.Lodge, error) {
	lodge, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	// Never let a catalog edit touch the review aggregate directly.
	delete(updates, "rating")
	delete(updates, "review_count")
	if err := s.DB.Model(lodge).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update lodge: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes the lodge; rooms go with it via the cascade constraint.
func (s *LodgeService) Delete(id uint) error {
	res := s.DB.Delete(&models.Lodge{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete lodge: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.New("lodge_not_found")
	}
	return nil
}

// AddReview folds a new rating into the aggregate in a single SQL statement
// so concurrent reviews cannot lose each other's updates.
func (s *LodgeService) AddReview(slug string, rating int) (*models.Lodge, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.New("validation: rating must be between 1 and 5")
	}

	lodge, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	err = s.DB.Model(&models.Lodge{}).
		Where("id = ?", lodge.ID).
		Updates(map[string]interface{}{
			"rating":       gorm.Expr("(rating * review_count + ?) / (review_count + 1)", rating),
			"review_count": gorm.Expr("review_count + 1"),
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to record review: %w", err)
	}

	return s.GetBySlug(slug)
}

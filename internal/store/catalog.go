package store

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/broxB/AgroPlan-sub000/internal/models"
)

// isUniqueViolation matches the duplicate-key wording of both supported
// drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// CreatePrincipal inserts an owner.
func (s *Store) CreatePrincipal(ctx context.Context, p *models.Principal) error {
	return s.db.WithContext(ctx).Create(p).Error
}

// PrincipalByID returns the owner, nil when absent.
func (s *Store) PrincipalByID(ctx context.Context, id uuid.UUID) (*models.Principal, error) {
	return one[models.Principal](s.db.WithContext(ctx).Where("id = ?", id))
}

// CreateCrop inserts a crop descriptor, enforcing the per-owner name
// uniqueness.
func (s *Store) CreateCrop(ctx context.Context, c *models.Crop) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Crop{}).
		Where("principal_id = ? AND name = ?", c.PrincipalID, c.Name).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateCrop
	}
	return s.db.WithContext(ctx).Create(c).Error
}

// CropByID returns the crop descriptor, nil when absent.
func (s *Store) CropByID(ctx context.Context, id uuid.UUID) (*models.Crop, error) {
	return one[models.Crop](s.db.WithContext(ctx).Where("id = ?", id))
}

// CropByName resolves a crop descriptor by its per-owner name.
func (s *Store) CropByName(ctx context.Context, principalID uuid.UUID, name string) (*models.Crop, error) {
	return one[models.Crop](s.db.WithContext(ctx).
		Where("principal_id = ? AND name = ?", principalID, name))
}

// CropsOfPrincipal lists all crop descriptors of one owner, optionally
// restricted to a field type.
func (s *Store) CropsOfPrincipal(ctx context.Context, principalID uuid.UUID, fieldType *models.FieldType) ([]models.Crop, error) {
	q := s.db.WithContext(ctx).Where("principal_id = ?", principalID)
	if fieldType != nil {
		q = q.Where("field_type = ?", *fieldType)
	}
	var rows []models.Crop
	err := q.Order("name").Find(&rows).Error
	return rows, err
}

// UpdateCrop persists changed crop attributes.
func (s *Store) UpdateCrop(ctx context.Context, c *models.Crop) error {
	return s.db.WithContext(ctx).Save(c).Error
}

// DeleteCrop removes a crop descriptor.
func (s *Store) DeleteCrop(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Crop{}, "id = ?", id).Error
}

// CreateFertilizer inserts a fertilizer descriptor. Organic fertilizers are
// unique per owner, name and year since their composition is re-analyzed
// yearly; mineral ones are unique per owner and name across years.
func (s *Store) CreateFertilizer(ctx context.Context, f *models.Fertilizer) error {
	q := s.db.WithContext(ctx).Model(&models.Fertilizer{}).
		Where("principal_id = ? AND name = ?", f.PrincipalID, f.Name)
	if f.FertClass == models.FertClassOrganic {
		q = q.Where("year = ?", f.Year)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateFertilizer
	}
	return s.db.WithContext(ctx).Create(f).Error
}

// FertilizerByID returns the fertilizer descriptor, nil when absent.
func (s *Store) FertilizerByID(ctx context.Context, id uuid.UUID) (*models.Fertilizer, error) {
	return one[models.Fertilizer](s.db.WithContext(ctx).Where("id = ?", id))
}

// FertilizersOfPrincipal lists fertilizer descriptors usable in a planning
// year: mineral ones regardless of year, organic ones of that year.
func (s *Store) FertilizersOfPrincipal(ctx context.Context, principalID uuid.UUID, year int) ([]models.Fertilizer, error) {
	var rows []models.Fertilizer
	err := s.db.WithContext(ctx).
		Where("principal_id = ? AND active = ?", principalID, true).
		Where("fert_class = ? OR year = ?", models.FertClassMineral, year).
		Order("name").
		Find(&rows).Error
	return rows, err
}

// UpdateFertilizer persists changed fertilizer attributes.
func (s *Store) UpdateFertilizer(ctx context.Context, f *models.Fertilizer) error {
	return s.db.WithContext(ctx).Save(f).Error
}

// DeleteFertilizer removes a fertilizer descriptor.
func (s *Store) DeleteFertilizer(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Fertilizer{}, "id = ?", id).Error
}

// SaveReport stores a named fertilization list filter.
func (s *Store) SaveReport(ctx context.Context, r *models.SavedReport) error {
	return s.db.WithContext(ctx).Create(r).Error
}

// SavedReportByID returns the stored filter, nil when absent.
func (s *Store) SavedReportByID(ctx context.Context, id uuid.UUID) (*models.SavedReport, error) {
	return one[models.SavedReport](s.db.WithContext(ctx).Where("id = ?", id))
}

// SavedReportsOfPrincipal lists the stored filters of one owner.
func (s *Store) SavedReportsOfPrincipal(ctx context.Context, principalID uuid.UUID) ([]models.SavedReport, error) {
	var rows []models.SavedReport
	err := s.db.WithContext(ctx).
		Where("principal_id = ?", principalID).
		Order("name").
		Find(&rows).Error
	return rows, err
}

// DeleteSavedReport removes a stored filter.
func (s *Store) DeleteSavedReport(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.SavedReport{}, "id = ?", id).Error
}

package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/broxB/AgroPlan-sub000/internal/models"
)

// CreateBaseField inserts a parcel, enforcing the per-owner uniqueness of
// its prefix and suffix.
func (s *Store) CreateBaseField(ctx context.Context, bf *models.BaseField) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.BaseField{}).
		Where("principal_id = ? AND prefix = ? AND suffix = ?", bf.PrincipalID, bf.Prefix, bf.Suffix).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateParcel
	}
	return s.db.WithContext(ctx).Create(bf).Error
}

// BaseFieldByID returns the parcel, nil when absent.
func (s *Store) BaseFieldByID(ctx context.Context, id uuid.UUID) (*models.BaseField, error) {
	return one[models.BaseField](s.db.WithContext(ctx).Where("id = ?", id))
}

// BaseFieldsOfPrincipal lists all parcels of one owner ordered by number.
func (s *Store) BaseFieldsOfPrincipal(ctx context.Context, principalID uuid.UUID) ([]models.BaseField, error) {
	var rows []models.BaseField
	err := s.db.WithContext(ctx).
		Where("principal_id = ?", principalID).
		Order("prefix, suffix").
		Find(&rows).Error
	return rows, err
}

// DeleteBaseField removes a parcel and, through the schema constraints, all
// its dependent rows.
func (s *Store) DeleteBaseField(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.BaseField{}, "id = ?", id).Error
}

// CreateField inserts a planning-year row, enforcing one row per parcel,
// sub-suffix and year.
func (s *Store) CreateField(ctx context.Context, f *models.Field) error {
	existing, err := s.FieldByKey(ctx, f.BaseFieldID, f.SubSuffix, f.Year)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateField
	}
	return s.db.WithContext(ctx).Create(f).Error
}

// FieldByKey resolves a field by its natural key, nil when absent.
func (s *Store) FieldByKey(ctx context.Context, baseFieldID uuid.UUID, subSuffix, year int) (*models.Field, error) {
	return one[models.Field](s.db.WithContext(ctx).
		Where("base_field_id = ? AND sub_suffix = ? AND year = ?", baseFieldID, subSuffix, year))
}

// FieldByID returns the field row, nil when absent.
func (s *Store) FieldByID(ctx context.Context, id uuid.UUID) (*models.Field, error) {
	return one[models.Field](s.db.WithContext(ctx).Where("id = ?", id))
}

// FieldsOfYear lists all fields of one owner in one planning year, joined
// through their parcels and ordered by parcel number.
func (s *Store) FieldsOfYear(ctx context.Context, principalID uuid.UUID, year int) ([]models.Field, error) {
	var rows []models.Field
	err := s.db.WithContext(ctx).
		Joins("JOIN base_fields ON base_fields.id = fields.base_field_id").
		Where("base_fields.principal_id = ? AND fields.year = ?", principalID, year).
		Order("base_fields.prefix, base_fields.suffix, fields.sub_suffix").
		Preload("BaseField").
		Find(&rows).Error
	return rows, err
}

// UpdateField persists changed field attributes.
func (s *Store) UpdateField(ctx context.Context, f *models.Field) error {
	return s.db.WithContext(ctx).Save(f).Error
}

// DeleteField removes one planning-year row with its dependents.
func (s *Store) DeleteField(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Field{}, "id = ?", id).Error
}

// CreateSoilSample inserts a measurement, one per parcel and year.
func (s *Store) CreateSoilSample(ctx context.Context, sample *models.SoilSample) error {
	err := s.db.WithContext(ctx).Create(sample).Error
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("soil sample for %d already recorded", sample.Year)
	}
	return err
}

// SoilSampleInEffect returns the latest sample taken in or before the
// planning year, nil when the parcel has none.
func (s *Store) SoilSampleInEffect(ctx context.Context, baseFieldID uuid.UUID, year int) (*models.SoilSample, error) {
	return one[models.SoilSample](s.db.WithContext(ctx).
		Where("base_field_id = ? AND year <= ?", baseFieldID, year).
		Order("year DESC"))
}

// SoilSamplesOfParcel lists all measurements of a parcel, newest first.
func (s *Store) SoilSamplesOfParcel(ctx context.Context, baseFieldID uuid.UUID) ([]models.SoilSample, error) {
	var rows []models.SoilSample
	err := s.db.WithContext(ctx).
		Where("base_field_id = ?", baseFieldID).
		Order("year DESC").
		Find(&rows).Error
	return rows, err
}

// CreateCultivation inserts a cultivation, enforcing one per field and role.
func (s *Store) CreateCultivation(ctx context.Context, c *models.Cultivation) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Cultivation{}).
		Where("field_id = ? AND cultivation_type = ?", c.FieldID, c.CultivationType).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateCultivation
	}
	return s.db.WithContext(ctx).Create(c).Error
}

// CultivationsOfField lists a field's cultivations with their crops.
func (s *Store) CultivationsOfField(ctx context.Context, fieldID uuid.UUID) ([]models.Cultivation, error) {
	var rows []models.Cultivation
	err := s.db.WithContext(ctx).
		Where("field_id = ?", fieldID).
		Preload("Crop").
		Find(&rows).Error
	return rows, err
}

// CultivationByID returns the cultivation with its crop, nil when absent.
func (s *Store) CultivationByID(ctx context.Context, id uuid.UUID) (*models.Cultivation, error) {
	return one[models.Cultivation](s.db.WithContext(ctx).Preload("Crop").Where("id = ?", id))
}

// UpdateCultivation persists changed cultivation attributes.
func (s *Store) UpdateCultivation(ctx context.Context, c *models.Cultivation) error {
	return s.db.WithContext(ctx).Save(c).Error
}

// DeleteCultivation removes a cultivation and its fertilizations.
func (s *Store) DeleteCultivation(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Fertilization{}, "cultivation_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Cultivation{}, "id = ?", id).Error
	})
}

// CreateFertilization inserts an application event.
func (s *Store) CreateFertilization(ctx context.Context, f *models.Fertilization) error {
	return s.db.WithContext(ctx).Create(f).Error
}

// FertilizationsOfField lists a field's application events with their
// fertilizers and fertilized cultivations.
func (s *Store) FertilizationsOfField(ctx context.Context, fieldID uuid.UUID) ([]models.Fertilization, error) {
	var rows []models.Fertilization
	err := s.db.WithContext(ctx).
		Where("field_id = ?", fieldID).
		Preload("Fertilizer").
		Preload("Cultivation").
		Preload("Cultivation.Crop").
		Find(&rows).Error
	return rows, err
}

// FertilizationByID returns the application event, nil when absent.
func (s *Store) FertilizationByID(ctx context.Context, id uuid.UUID) (*models.Fertilization, error) {
	return one[models.Fertilization](s.db.WithContext(ctx).
		Preload("Fertilizer").
		Preload("Cultivation").
		Preload("Cultivation.Crop").
		Where("id = ?", id))
}

// UpdateFertilization persists changed application attributes.
func (s *Store) UpdateFertilization(ctx context.Context, f *models.Fertilization) error {
	return s.db.WithContext(ctx).Save(f).Error
}

// DeleteFertilization removes an application event.
func (s *Store) DeleteFertilization(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Fertilization{}, "id = ?", id).Error
}

// CreateModifier inserts a per-field adjustment.
func (s *Store) CreateModifier(ctx context.Context, m *models.Modifier) error {
	return s.db.WithContext(ctx).Create(m).Error
}

// ModifiersOfField lists the adjustments of one field.
func (s *Store) ModifiersOfField(ctx context.Context, fieldID uuid.UUID) ([]models.Modifier, error) {
	var rows []models.Modifier
	err := s.db.WithContext(ctx).Where("field_id = ?", fieldID).Find(&rows).Error
	return rows, err
}

// DeleteModifier removes an adjustment.
func (s *Store) DeleteModifier(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Modifier{}, "id = ?", id).Error
}

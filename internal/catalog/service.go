// Package catalog manages the master data behind the planning engine:
// parcels with their planning years and soil samples, the crop and
// fertilizer lists of an operation, and per-field adjustments.
package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/broxB/AgroPlan-sub000/internal/guidelines"
	"github.com/broxB/AgroPlan-sub000/internal/models"
	"github.com/broxB/AgroPlan-sub000/internal/store"
	"github.com/broxB/AgroPlan-sub000/internal/validation"
)

// Service validates and persists master data.
type Service struct {
	store     *store.Store
	validator *validation.Validator
	log       *zap.Logger
}

// NewService returns a catalog service.
func NewService(s *store.Store, gl *guidelines.Guidelines, log *zap.Logger) *Service {
	return &Service{
		store:     s,
		validator: validation.New(s, gl),
		log:       log,
	}
}

// CreateBaseField validates and stores a new parcel. Validation failures
// come back as the field-error map with a nil error.
func (s *Service) CreateBaseField(ctx context.Context, bf *models.BaseField) (validation.Errors, error) {
	if ok, errs := s.validator.ValidateBaseField(ctx, *bf); !ok {
		return errs, nil
	}
	if err := s.store.CreateBaseField(ctx, bf); err != nil {
		return nil, fmt.Errorf("saving parcel: %w", err)
	}
	s.log.Info("parcel created", zap.String("id", bf.ID.String()))
	return nil, nil
}

// BaseFields lists the parcels of an operation.
func (s *Service) BaseFields(ctx context.Context, principalID uuid.UUID) ([]models.BaseField, error) {
	return s.store.BaseFieldsOfPrincipal(ctx, principalID)
}

// DeleteBaseField removes a parcel with its planning years.
func (s *Service) DeleteBaseField(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteBaseField(ctx, id)
}

// CreateField validates and stores a new planning year of a parcel.
func (s *Service) CreateField(ctx context.Context, f *models.Field) (validation.Errors, error) {
	if ok, errs := s.validator.ValidateField(ctx, *f); !ok {
		return errs, nil
	}
	if err := s.store.CreateField(ctx, f); err != nil {
		return nil, fmt.Errorf("saving field: %w", err)
	}
	return nil, nil
}

// Fields lists the planning years of an operation for one year.
func (s *Service) Fields(ctx context.Context, principalID uuid.UUID, year int) ([]models.Field, error) {
	return s.store.FieldsOfYear(ctx, principalID, year)
}

// UpdateField validates and stores changed field attributes.
func (s *Service) UpdateField(ctx context.Context, f *models.Field) (validation.Errors, error) {
	if ok, errs := s.validator.ValidateField(ctx, *f); !ok {
		return errs, nil
	}
	if err := s.store.UpdateField(ctx, f); err != nil {
		return nil, fmt.Errorf("updating field: %w", err)
	}
	return nil, nil
}

// DeleteField removes a planning year.
func (s *Service) DeleteField(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteField(ctx, id)
}

// CreateSoilSample validates and stores a soil measurement of a parcel.
func (s *Service) CreateSoilSample(ctx context.Context, sample *models.SoilSample) (validation.Errors, error) {
	if ok, errs := s.validator.ValidateSoilSample(ctx, *sample); !ok {
		return errs, nil
	}
	if err := s.store.CreateSoilSample(ctx, sample); err != nil {
		return nil, fmt.Errorf("saving soil sample: %w", err)
	}
	return nil, nil
}

// SoilSamples lists the measurements of a parcel, newest first.
func (s *Service) SoilSamples(ctx context.Context, baseFieldID uuid.UUID) ([]models.SoilSample, error) {
	return s.store.SoilSamplesOfParcel(ctx, baseFieldID)
}

// CreateCultivation validates and stores a crop planted on a field.
func (s *Service) CreateCultivation(ctx context.Context, principalID uuid.UUID, c *models.Cultivation) (validation.Errors, error) {
	if ok, errs := s.validator.ValidateCultivation(ctx, principalID, *c); !ok {
		return errs, nil
	}
	if err := s.store.CreateCultivation(ctx, c); err != nil {
		return nil, fmt.Errorf("saving cultivation: %w", err)
	}
	return nil, nil
}

// UpdateCultivation validates and stores changed cultivation attributes.
func (s *Service) UpdateCultivation(ctx context.Context, principalID uuid.UUID, c *models.Cultivation) (validation.Errors, error) {
	if ok, errs := s.validator.ValidateCultivation(ctx, principalID, *c); !ok {
		return errs, nil
	}
	if err := s.store.UpdateCultivation(ctx, c); err != nil {
		return nil, fmt.Errorf("updating cultivation: %w", err)
	}
	return nil, nil
}

// DeleteCultivation removes a cultivation with its applications.
func (s *Service) DeleteCultivation(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteCultivation(ctx, id)
}

// CreateCrop validates and stores a crop descriptor.
func (s *Service) CreateCrop(ctx context.Context, c *models.Crop) (validation.Errors, error) {
	if ok, errs := s.validator.ValidateCrop(ctx, *c); !ok {
		return errs, nil
	}
	if err := s.store.CreateCrop(ctx, c); err != nil {
		return nil, fmt.Errorf("saving crop: %w", err)
	}
	return nil, nil
}

// Crops lists the crop descriptors of an operation, optionally narrowed
// to one field type.
func (s *Service) Crops(ctx context.Context, principalID uuid.UUID, fieldType *models.FieldType) ([]models.Crop, error) {
	return s.store.CropsOfPrincipal(ctx, principalID, fieldType)
}

// UpdateCrop validates and stores changed crop attributes.
func (s *Service) UpdateCrop(ctx context.Context, c *models.Crop) (validation.Errors, error) {
	if ok, errs := s.validator.ValidateCrop(ctx, *c); !ok {
		return errs, nil
	}
	if err := s.store.UpdateCrop(ctx, c); err != nil {
		return nil, fmt.Errorf("updating crop: %w", err)
	}
	return nil, nil
}

// DeleteCrop removes a crop descriptor.
func (s *Service) DeleteCrop(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteCrop(ctx, id)
}

// CreateFertilizer stores a fertilizer descriptor. Organic fertilizers
// carry per-year analyses, mineral ones apply across years.
func (s *Service) CreateFertilizer(ctx context.Context, f *models.Fertilizer) (validation.Errors, error) {
	if f.Name == "" {
		return validation.Errors{"name": "name is required"}, nil
	}
	if err := s.store.CreateFertilizer(ctx, f); err != nil {
		return nil, fmt.Errorf("saving fertilizer: %w", err)
	}
	return nil, nil
}

// Fertilizers lists the usable fertilizers of an operation for one year.
func (s *Service) Fertilizers(ctx context.Context, principalID uuid.UUID, year int) ([]models.Fertilizer, error) {
	return s.store.FertilizersOfPrincipal(ctx, principalID, year)
}

// UpdateFertilizer stores changed fertilizer attributes.
func (s *Service) UpdateFertilizer(ctx context.Context, f *models.Fertilizer) error {
	return s.store.UpdateFertilizer(ctx, f)
}

// DeleteFertilizer removes a fertilizer descriptor.
func (s *Service) DeleteFertilizer(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteFertilizer(ctx, id)
}

// CreateModifier validates and stores a manual balance adjustment.
func (s *Service) CreateModifier(ctx context.Context, m *models.Modifier) (validation.Errors, error) {
	if ok, errs := s.validator.ValidateModifier(ctx, *m); !ok {
		return errs, nil
	}
	if err := s.store.CreateModifier(ctx, m); err != nil {
		return nil, fmt.Errorf("saving modifier: %w", err)
	}
	return nil, nil
}

// DeleteModifier removes an adjustment.
func (s *Service) DeleteModifier(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteModifier(ctx, id)
}

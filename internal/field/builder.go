package field

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/broxB/AgroPlan-sub000/internal/crops"
	"github.com/broxB/AgroPlan-sub000/internal/fertilizers"
	"github.com/broxB/AgroPlan-sub000/internal/guidelines"
	"github.com/broxB/AgroPlan-sub000/internal/models"
	"github.com/broxB/AgroPlan-sub000/internal/soil"
)

// Repository is the persistence surface the builder reads from. Child
// lookups return the rows with their crop and fertilizer associations
// populated. Missing optional rows return nil without error.
type Repository interface {
	BaseFieldByID(ctx context.Context, id uuid.UUID) (*models.BaseField, error)
	FieldByKey(ctx context.Context, baseFieldID uuid.UUID, subSuffix, year int) (*models.Field, error)
	SoilSampleInEffect(ctx context.Context, baseFieldID uuid.UUID, year int) (*models.SoilSample, error)
	CultivationsOfField(ctx context.Context, fieldID uuid.UUID) ([]models.Cultivation, error)
	FertilizationsOfField(ctx context.Context, fieldID uuid.UUID) ([]models.Fertilization, error)
	ModifiersOfField(ctx context.Context, fieldID uuid.UUID) ([]models.Modifier, error)
}

// Builder loads field snapshots from a repository.
type Builder struct {
	repo Repository
	gl   *guidelines.Guidelines
}

// NewBuilder returns a builder reading from repo and calculating against gl.
func NewBuilder(repo Repository, gl *guidelines.Guidelines) *Builder {
	return &Builder{repo: repo, gl: gl}
}

// Build assembles the snapshot of rec: its parcel, the soil sample in
// effect, all cultivations, fertilizations and modifiers, and recursively
// the same parcel's field of the preceding year.
func (b *Builder) Build(ctx context.Context, rec models.Field) (*Field, error) {
	return b.build(ctx, rec)
}

// BuildByKey resolves the field row by its natural key and builds it.
func (b *Builder) BuildByKey(ctx context.Context, baseFieldID uuid.UUID, subSuffix, year int) (*Field, error) {
	rec, err := b.repo.FieldByKey(ctx, baseFieldID, subSuffix, year)
	if err != nil {
		return nil, fmt.Errorf("resolving field: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("no field for parcel %s sub %d in %d", baseFieldID, subSuffix, year)
	}
	return b.build(ctx, *rec)
}

func (b *Builder) build(ctx context.Context, rec models.Field) (*Field, error) {
	baseField, err := b.repo.BaseFieldByID(ctx, rec.BaseFieldID)
	if err != nil {
		return nil, fmt.Errorf("loading parcel: %w", err)
	}
	if baseField == nil {
		return nil, fmt.Errorf("parcel %s not found", rec.BaseFieldID)
	}

	f := &Field{
		rec:          rec,
		baseField:    *baseField,
		cultivations: map[models.CultivationType]crops.Cultivation{},
		gl:           b.gl,
	}

	sample, err := b.repo.SoilSampleInEffect(ctx, rec.BaseFieldID, rec.Year)
	if err != nil {
		return nil, fmt.Errorf("loading soil sample: %w", err)
	}
	if sample != nil {
		f.soil = soil.New(*sample, rec.FieldType, b.gl)
	}

	cultivationRows, err := b.repo.CultivationsOfField(ctx, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("loading cultivations: %w", err)
	}
	cropByCultivation := map[uuid.UUID]*crops.Crop{}
	for _, row := range cultivationRows {
		crop := crops.New(row.Crop, b.gl)
		cropByCultivation[row.ID] = crop
		f.cultivations[row.CultivationType] = crops.NewCultivation(row, crop, rec.FieldType, b.gl)
	}

	fertilizationRows, err := b.repo.FertilizationsOfField(ctx, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("loading fertilizations: %w", err)
	}
	for _, row := range fertilizationRows {
		fert := fertilizers.New(row.Fertilizer, b.gl)
		crop := cropByCultivation[row.CultivationID]
		if crop == nil {
			crop = crops.New(row.Cultivation.Crop, b.gl)
		}
		f.fertilizations = append(f.fertilizations,
			fertilizers.NewFertilization(row, fert, crop, row.Cultivation.CultivationType))
	}

	f.modifiers, err = b.repo.ModifiersOfField(ctx, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("loading modifiers: %w", err)
	}

	prevRec, err := b.repo.FieldByKey(ctx, rec.BaseFieldID, rec.SubSuffix, rec.Year-1)
	if err != nil {
		return nil, fmt.Errorf("resolving prior year: %w", err)
	}
	if prevRec != nil {
		f.prev, err = b.build(ctx, *prevRec)
		if err != nil {
			return nil, fmt.Errorf("building prior year: %w", err)
		}
	}
	return f, nil
}

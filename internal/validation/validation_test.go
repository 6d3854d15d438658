package validation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broxB/AgroPlan-sub000/internal/guidelines"
	"github.com/broxB/AgroPlan-sub000/internal/models"
	"github.com/broxB/AgroPlan-sub000/internal/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	validator   *Validator
	store       *store.Store
	principalID uuid.UUID
	field       *models.Field
	cultivation *models.Cultivation
	slurry      *models.Fertilizer
	kas         *models.Fertilizer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := store.Open("sqlite", ":memory:")
	require.NoError(t, err)
	s := store.New(db)
	require.NoError(t, s.AutoMigrate())

	principal := &models.Principal{Name: "Hof Brandt"}
	require.NoError(t, s.CreatePrincipal(ctx, principal))

	parcel := &models.BaseField{PrincipalID: principal.ID, Prefix: 1, Name: "Am Bach"}
	require.NoError(t, s.CreateBaseField(ctx, parcel))

	field := &models.Field{
		BaseFieldID: parcel.ID, Year: 2025, Area: dec("10"),
		FieldType: models.FieldTypeCropland,
	}
	require.NoError(t, s.CreateField(ctx, field))

	crop := &models.Crop{
		PrincipalID: principal.ID, Name: "Winterweizen",
		FieldType: models.FieldTypeCropland, CropClass: models.CropClassMainCrop,
		CropType: "grain",
	}
	require.NoError(t, s.CreateCrop(ctx, crop))

	cultivation := &models.Cultivation{
		FieldID: field.ID, CultivationType: models.CultivationMainCrop,
		CropID: crop.ID, CropYield: dec("80"),
	}
	require.NoError(t, s.CreateCultivation(ctx, cultivation))

	slurry := &models.Fertilizer{
		PrincipalID: principal.ID, Name: "Rindergülle", Year: 2025,
		FertClass: models.FertClassOrganic, FertType: models.FertTypeOrgSlurry,
		N: dec("2"), NH4: dec("1"),
	}
	require.NoError(t, s.CreateFertilizer(ctx, slurry))

	kas := &models.Fertilizer{
		PrincipalID: principal.ID, Name: "KAS",
		FertClass: models.FertClassMineral, FertType: models.FertTypeN,
		N: dec("27"), NH4: dec("13.5"),
	}
	require.NoError(t, s.CreateFertilizer(ctx, kas))

	return &fixture{
		validator:   New(s, guidelines.New("../../guidelines")),
		store:       s,
		principalID: principal.ID,
		field:       field,
		cultivation: cultivation,
		slurry:      slurry,
		kas:         kas,
	}
}

func (f *fixture) fertilization(fertilizerID uuid.UUID, measure models.MeasureType, amount string) models.Fertilization {
	return models.Fertilization{
		FieldID:       f.field.ID,
		CultivationID: f.cultivation.ID,
		FertilizerID:  fertilizerID,
		Measure:       measure,
		Amount:        dec(amount),
	}
}

func TestFertilizationAccepted(t *testing.T) {
	f := newFixture(t)
	ok, errs := f.validator.ValidateFertilization(context.Background(), f.principalID,
		f.fertilization(f.slurry.ID, models.MeasureOrgFall, "20"), nil)
	assert.True(t, ok, "errors: %v", errs)
}

func TestFertilizationAmountMustBePositive(t *testing.T) {
	f := newFixture(t)
	ok, errs := f.validator.ValidateFertilization(context.Background(), f.principalID,
		f.fertilization(f.slurry.ID, models.MeasureOrgFall, "0"), nil)
	assert.False(t, ok)
	assert.Contains(t, errs, "amount")
}

func TestFertilizationRejectsForeignFertilizer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := &models.Principal{Name: "Anderer Hof"}
	require.NoError(t, f.store.CreatePrincipal(ctx, other))
	foreign := &models.Fertilizer{
		PrincipalID: other.ID, Name: "Fremdgülle", Year: 2025,
		FertClass: models.FertClassOrganic, FertType: models.FertTypeOrgSlurry,
		N: dec("2"), NH4: dec("1"),
	}
	require.NoError(t, f.store.CreateFertilizer(ctx, foreign))

	ok, errs := f.validator.ValidateFertilization(ctx, f.principalID,
		f.fertilization(foreign.ID, models.MeasureOrgFall, "10"), nil)
	assert.False(t, ok)
	assert.Contains(t, errs, "fertilizer_id")
}

func TestFertilizationRejectsUnknownCultivation(t *testing.T) {
	f := newFixture(t)
	fz := f.fertilization(f.slurry.ID, models.MeasureOrgFall, "10")
	fz.CultivationID = uuid.New()

	ok, errs := f.validator.ValidateFertilization(context.Background(), f.principalID, fz, nil)
	assert.False(t, ok)
	assert.Contains(t, errs, "cultivation_id")
}

func TestMineralMeasureUniquePerCultivation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.fertilization(f.kas.ID, models.MeasureFirstNFert, "3")
	ok, errs := f.validator.ValidateFertilization(ctx, f.principalID, first, nil)
	require.True(t, ok, "errors: %v", errs)
	require.NoError(t, f.store.CreateFertilization(ctx, &first))

	ok, errs = f.validator.ValidateFertilization(ctx, f.principalID,
		f.fertilization(f.kas.ID, models.MeasureFirstNFert, "2"), nil)
	assert.False(t, ok)
	assert.Contains(t, errs, "measure")

	// A different mineral dose on the same cultivation is fine.
	ok, _ = f.validator.ValidateFertilization(ctx, f.principalID,
		f.fertilization(f.kas.ID, models.MeasureSecondNFert, "2"), nil)
	assert.True(t, ok)
}

func TestFallCeilingRejectsOverload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	existing := f.fertilization(f.slurry.ID, models.MeasureOrgFall, "25")
	require.NoError(t, f.store.CreateFertilization(ctx, &existing))

	// 25 units of 2/1 slurry already mean 50 kg N and 25 kg NH4; another 20
	// units break both ceilings.
	ok, errs := f.validator.ValidateFertilization(ctx, f.principalID,
		f.fertilization(f.slurry.ID, models.MeasureOrgFall, "20"), nil)
	assert.False(t, ok)
	assert.Contains(t, errs["amount"], "at most 5")
}

func TestModifierBounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok, _ := f.validator.ValidateModifier(ctx, models.Modifier{
		Description: "Kompostgabe", Modification: models.NutrientN, Amount: 500,
	})
	assert.True(t, ok)

	ok, errs := f.validator.ValidateModifier(ctx, models.Modifier{
		Description: "Zuviel", Modification: models.NutrientN, Amount: -1001,
	})
	assert.False(t, ok)
	assert.Contains(t, errs, "amount")
}

func TestCultivationResidueMustFitRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := *f.cultivation
	c.Residues = models.ResidueCatchFrozen
	ok, errs := f.validator.ValidateCultivation(ctx, f.principalID, c)
	assert.False(t, ok)
	assert.Contains(t, errs, "residues")
}

func TestFieldRequiresPositiveArea(t *testing.T) {
	f := newFixture(t)
	ok, errs := f.validator.ValidateField(context.Background(), models.Field{
		BaseFieldID: f.field.BaseFieldID, Year: 2026, Area: dec("0"),
		FieldType: models.FieldTypeCropland,
	})
	assert.False(t, ok)
	assert.Contains(t, errs, "area")
}

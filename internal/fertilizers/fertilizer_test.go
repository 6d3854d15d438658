package fertilizers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/broxB/AgroPlan-sub000/internal/guidelines"
	"github.com/broxB/AgroPlan-sub000/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testGuidelines() *guidelines.Guidelines {
	return guidelines.New("../../guidelines")
}

func digestateRecord() models.Fertilizer {
	return models.Fertilizer{
		Name:      "Gärrest",
		FertClass: models.FertClassOrganic,
		FertType:  models.FertTypeOrgDigestate,
		N:         dec("100"),
		NH4:       dec("40"),
		P2O5:      dec("50"),
		K2O:       dec("120"),
		CaO:       dec("30"),
	}
}

func TestOrganicNTotal(t *testing.T) {
	f := New(digestateRecord(), testGuidelines())

	assert.True(t, f.NTotal(false).Equal(dec("100")))
	// Digestate loses half its nitrogen in storage.
	assert.True(t, f.NTotal(true).Equal(dec("50")))
}

func TestOrganicNVerf(t *testing.T) {
	f := New(digestateRecord(), testGuidelines())

	// Ammonium is fully available, the bound remainder converts by the
	// field-type factor: (100-40)*0.6+40 and (100-40)*0.5+40.
	assert.True(t, f.NVerf(models.FieldTypeCropland).Equal(dec("76")))
	assert.True(t, f.NVerf(models.FieldTypeGrassland).Equal(dec("70")))

	// No legal credit on fallow or exchanged land.
	assert.True(t, f.NVerf(models.FieldTypeFallowCropland).IsZero())
	assert.True(t, f.NVerf(models.FieldTypeFallowGrassland).IsZero())
	assert.True(t, f.NVerf(models.FieldTypeExchangedLand).IsZero())
}

func TestOrganicClassification(t *testing.T) {
	f := New(digestateRecord(), testGuidelines())

	assert.True(t, f.IsOrganic())
	assert.False(t, f.IsMineral())
	assert.False(t, f.IsLime())
	assert.True(t, f.IsClass(models.FertClassOrganic))
	assert.IsType(t, &Organic{}, f)
}

func TestMineral(t *testing.T) {
	rec := models.Fertilizer{
		Name:      "KAS",
		FertClass: models.FertClassMineral,
		FertType:  models.FertTypeN,
		N:         dec("27"),
		NH4:       dec("13.5"),
	}
	f := New(rec, testGuidelines())

	assert.IsType(t, &Mineral{}, f)
	assert.True(t, f.IsMineral())

	// No storage loss on mineral nitrogen.
	assert.True(t, f.NTotal(true).Equal(dec("27")))
	assert.True(t, f.NTotal(false).Equal(dec("27")))

	// Only the ammonium share counts as available.
	assert.True(t, f.NVerf(models.FieldTypeCropland).Equal(dec("13.5")))
	assert.True(t, f.NVerf(models.FieldTypeGrassland).Equal(dec("13.5")))
}

func TestLimeClassification(t *testing.T) {
	rec := models.Fertilizer{
		Name:      "Kohlensaurer Kalk",
		FertClass: models.FertClassMineral,
		FertType:  models.FertTypeLime,
		CaO:       dec("50"),
	}
	f := New(rec, testGuidelines())

	assert.True(t, f.IsLime())
}

func TestLimeStarvation(t *testing.T) {
	rec := models.Fertilizer{
		Name:      "ASS",
		FertClass: models.FertClassMineral,
		FertType:  models.FertTypeNS,
		N:         dec("26"),
		S:         dec("13"),
		CaO:       dec("10"),
	}
	f := New(rec, testGuidelines())

	// 10 - 26*1.0 - 13*0.7 on cropland, half of it on grassland.
	assert.True(t, f.LimeStarvation(models.FieldTypeCropland).Equal(dec("-25.1")))
	assert.True(t, f.LimeStarvation(models.FieldTypeGrassland).Equal(dec("-12.55")))
}

func TestOrganicLimeStarvationUsesLimeFactor(t *testing.T) {
	f := New(digestateRecord(), testGuidelines())

	// (30 - 100*1.0) * 0.7 digestate lime factor.
	assert.True(t, f.LimeStarvation(models.FieldTypeCropland).Equal(dec("-49")))
}

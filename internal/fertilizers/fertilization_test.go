package fertilizers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/broxB/AgroPlan-sub000/internal/crops"
	"github.com/broxB/AgroPlan-sub000/internal/models"
)

func feedableCrop() *crops.Crop {
	return crops.New(models.Crop{
		Name:     "Ackergras 3 Schnitte",
		Feedable: true,
	}, testGuidelines())
}

func grainCrop() *crops.Crop {
	return crops.New(models.Crop{
		Name: "Winterweizen",
	}, testGuidelines())
}

func application(amount string, measure models.MeasureType, fert Fertilizer, crop *crops.Crop, ct models.CultivationType) *Fertilization {
	return NewFertilization(models.Fertilization{
		Measure: measure,
		Amount:  dec(amount),
	}, fert, crop, ct)
}

func TestNTotalFilters(t *testing.T) {
	organic := New(digestateRecord(), testGuidelines())
	f := application("2", models.MeasureOrgFall, organic, grainCrop(), models.CultivationMainCrop)

	// Unfiltered: amount times brutto nitrogen.
	assert.True(t, f.NTotal(nil, nil, false).Equal(dec("200")))
	assert.True(t, f.NTotal(nil, nil, true).Equal(dec("100")))

	fall := models.MeasureOrgFall
	spring := models.MeasureOrgSpring
	assert.True(t, f.NTotal(&fall, nil, false).Equal(dec("200")))
	assert.True(t, f.NTotal(&spring, nil, false).IsZero())

	main := models.CultivationMainCrop
	catch := models.CultivationCatchCrop
	assert.True(t, f.NTotal(&fall, &main, false).Equal(dec("200")))
	assert.True(t, f.NTotal(&fall, &catch, false).IsZero())
}

func TestNTotalMineralIsZero(t *testing.T) {
	mineral := New(models.Fertilizer{
		Name:      "KAS",
		FertClass: models.FertClassMineral,
		FertType:  models.FertTypeN,
		N:         dec("27"),
	}, testGuidelines())
	f := application("10", models.MeasureFirstNFert, mineral, grainCrop(), models.CultivationMainCrop)

	assert.True(t, f.NTotal(nil, nil, false).IsZero())
}

func TestNutrients(t *testing.T) {
	organic := New(digestateRecord(), testGuidelines())
	f := application("2", models.MeasureOrgSpring, organic, grainCrop(), models.CultivationMainCrop)

	b := f.Nutrients(models.FieldTypeCropland)

	assert.Equal(t, "Gärrest", b.Title)
	assert.True(t, b.N.Equal(dec("152")), "n = %s", b.N) // 2 * 76 available N
	assert.True(t, b.P2O5.Equal(dec("100")))
	assert.True(t, b.K2O.Equal(dec("240")))
	assert.True(t, b.CaO.Equal(dec("60")))
	assert.True(t, b.NH4.IsZero())
}

func TestNutrientsFeedableRoutesGrassland(t *testing.T) {
	organic := New(digestateRecord(), testGuidelines())
	f := application("1", models.MeasureOrgSpring, organic, feedableCrop(), models.CultivationMainCrop)

	// The recipient is feedable, so the grassland conversion applies even
	// though the field is cropland.
	assert.True(t, f.Nutrients(models.FieldTypeCropland).N.Equal(dec("70")))
}

func TestNutrientsOrganicCatchCropNotCredited(t *testing.T) {
	organic := New(digestateRecord(), testGuidelines())
	f := application("2", models.MeasureOrgFall, organic, grainCrop(), models.CultivationCatchCrop)

	b := f.Nutrients(models.FieldTypeCropland)
	assert.True(t, b.N.IsZero())
	assert.True(t, b.P2O5.Equal(dec("100")))
}

func TestLinearityInAmount(t *testing.T) {
	organic := New(digestateRecord(), testGuidelines())
	single := application("1", models.MeasureOrgFall, organic, grainCrop(), models.CultivationMainCrop)
	triple := application("3", models.MeasureOrgFall, organic, grainCrop(), models.CultivationMainCrop)

	three := dec("3")
	assert.True(t, triple.Nutrients(models.FieldTypeCropland).Equal(
		single.Nutrients(models.FieldTypeCropland).MulScalar(three)))
	assert.True(t, triple.NTotal(nil, nil, false).Equal(
		single.NTotal(nil, nil, false).Mul(three)))
	assert.True(t, triple.NTotal(nil, nil, true).Equal(
		single.NTotal(nil, nil, true).Mul(three)))
}

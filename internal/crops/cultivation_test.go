package crops

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/broxB/AgroPlan-sub000/internal/models"
)

func wheatRecord() models.Crop {
	return models.Crop{
		Name:          "Winterweizen",
		FieldType:     models.FieldTypeCropland,
		CropClass:     models.CropClassMainCrop,
		CropType:      "grain",
		Feedable:      false,
		NminDepth:     models.Nmin90,
		TargetDemand:  dec("200"),
		TargetYield:   dec("80"),
		PosYield:      dec("1"),
		NegYield:      dec("1.5"),
		TargetProtein: dec("12"),
		VarProtein:    dec("1"),
		P2O5:          dec("0.8"),
		K2O:           dec("0.6"),
		MgO:           dec("0.2"),
	}
}

func mainCultivation(rec models.Cultivation, crop models.Crop, fieldType models.FieldType) Cultivation {
	return NewCultivation(rec, New(crop, testGuidelines()), fieldType, testGuidelines())
}

func TestVariantDispatch(t *testing.T) {
	crop := wheatRecord()

	main := mainCultivation(models.Cultivation{CultivationType: models.CultivationMainCrop}, crop, models.FieldTypeCropland)
	secondMain := mainCultivation(models.Cultivation{CultivationType: models.CultivationSecondMainCrop}, crop, models.FieldTypeCropland)
	second := mainCultivation(models.Cultivation{CultivationType: models.CultivationSecondCrop}, crop, models.FieldTypeCropland)
	catch := mainCultivation(models.Cultivation{CultivationType: models.CultivationCatchCrop}, crop, models.FieldTypeCropland)

	assert.IsType(t, &MainCrop{}, main)
	assert.IsType(t, &MainCrop{}, secondMain)
	assert.IsType(t, &SecondCrop{}, second)
	assert.IsType(t, &CatchCrop{}, catch)

	assert.True(t, main.IsClass(models.CultivationMainCrop))
	assert.False(t, main.IsClass(models.CultivationCatchCrop))
}

func TestReductionNminDepths(t *testing.T) {
	nmin := models.Cultivation{
		CultivationType: models.CultivationMainCrop,
		Nmin30:          dec("20"),
		Nmin60:          dec("10"),
		Nmin90:          dec("8"),
	}

	cases := []struct {
		depth    models.NminType
		expected string
	}{
		{models.Nmin0, "0"},
		{models.Nmin30, "20"},
		{models.Nmin60, "30"},
		{models.Nmin90, "34"},
	}
	for _, tc := range cases {
		crop := wheatRecord()
		crop.NminDepth = tc.depth
		c := mainCultivation(nmin, crop, models.FieldTypeCropland)
		assert.True(t, c.ReductionNmin().Equal(dec(tc.expected)), "depth %s", tc.depth)
	}
}

func TestReductionNminFeedable(t *testing.T) {
	crop := wheatRecord()
	crop.Feedable = true
	crop.NminDepth = models.Nmin90

	c := mainCultivation(models.Cultivation{
		CultivationType: models.CultivationMainCrop,
		Nmin30:          dec("20"),
		Nmin60:          dec("10"),
		Nmin90:          dec("8"),
	}, crop, models.FieldTypeCropland)

	assert.True(t, c.ReductionNmin().IsZero())
}

func TestSecondCropHasNoNminReduction(t *testing.T) {
	c := mainCultivation(models.Cultivation{
		CultivationType: models.CultivationSecondCrop,
		Nmin30:          dec("20"),
	}, wheatRecord(), models.FieldTypeCropland)

	assert.True(t, c.ReductionNmin().IsZero())
}

func TestMainCropDemandWithResidues(t *testing.T) {
	crop := wheatRecord()
	crop.ByproductRatio = dec("0.8")
	crop.ByproductP2O5 = dec("0.5")

	removed := mainCultivation(models.Cultivation{
		CultivationType: models.CultivationMainCrop,
		CropYield:       dec("80"),
		CropProtein:     dec("12"),
		Residues:        models.ResidueMainRemoved,
	}, crop, models.FieldTypeCropland)

	stayed := mainCultivation(models.Cultivation{
		CultivationType: models.CultivationMainCrop,
		CropYield:       dec("80"),
		CropProtein:     dec("12"),
		Residues:        models.ResidueMainStayed,
	}, crop, models.FieldTypeCropland)

	// Removed by-products add their own withdrawal: 0.5 * 0.8 * 80 = 32.
	assert.True(t, removed.Demand(false).P2O5.Sub(stayed.Demand(false).P2O5).Equal(dec("32")))

	// Balance direction negates the whole demand.
	assert.True(t, removed.Demand(true).N.Equal(removed.Demand(false).N.Neg()))
	assert.Equal(t, "Winterweizen", removed.Demand(true).Title)
}

func TestCatchCropFixedDemand(t *testing.T) {
	crop := wheatRecord()
	crop.Name = "Senf"
	crop.CropClass = models.CropClassCatchCrop
	crop.CropType = "non_legume_catch"

	c := mainCultivation(models.Cultivation{CultivationType: models.CultivationCatchCrop}, crop, models.FieldTypeCropland)

	d := c.Demand(true)
	assert.True(t, d.N.Equal(dec("-60")))
	assert.True(t, d.P2O5.IsZero())
	assert.True(t, d.K2O.IsZero())
	assert.True(t, d.S.IsZero())
}

func TestCatchCropPreCropEffect(t *testing.T) {
	crop := wheatRecord()
	crop.CropClass = models.CropClassCatchCrop
	crop.CropType = "legume_catch"

	frozen := mainCultivation(models.Cultivation{
		CultivationType: models.CultivationCatchCrop,
		Residues:        models.ResidueCatchFrozen,
	}, crop, models.FieldTypeCropland)
	spring := mainCultivation(models.Cultivation{
		CultivationType: models.CultivationCatchCrop,
		Residues:        models.ResidueCatchNotFrozenSpring,
	}, crop, models.FieldTypeCropland)

	assert.True(t, frozen.PreCropEffect().Equal(dec("10")))
	assert.True(t, spring.PreCropEffect().Equal(dec("40")))
}

func TestMainCropPreCropEffect(t *testing.T) {
	crop := wheatRecord()
	crop.CropType = "field_grass"

	c := mainCultivation(models.Cultivation{CultivationType: models.CultivationMainCrop}, crop, models.FieldTypeCropland)

	assert.True(t, c.PreCropEffect().Equal(dec("10")))
}

func TestLegumeDelivery(t *testing.T) {
	feedable := wheatRecord()
	feedable.Feedable = true

	// Grassland bands use the tabulated values.
	grass := mainCultivation(models.Cultivation{
		CultivationType: models.CultivationMainCrop,
		LegumeRate:      models.LegumeGrassLess10,
	}, feedable, models.FieldTypeGrassland)
	assert.True(t, grass.LegumeDelivery().Equal(dec("20")))

	// Grass-legume mixtures scale linearly with the legume share.
	mixture := feedable
	mixture.Kind = "alfalfa_grass"
	alfalfaGrass := mainCultivation(models.Cultivation{
		CultivationType: models.CultivationMainCrop,
		LegumeRate:      models.LegumeMainCrop40,
	}, mixture, models.FieldTypeCropland)
	assert.True(t, alfalfaGrass.LegumeDelivery().Equal(dec("40")))

	// Pure stands are constants.
	pure := feedable
	pure.Kind = "alfalfa"
	alfalfa := mainCultivation(models.Cultivation{
		CultivationType: models.CultivationMainCrop,
		LegumeRate:      models.LegumeMainCrop100,
	}, pure, models.FieldTypeCropland)
	assert.True(t, alfalfa.LegumeDelivery().Equal(dec("100")))

	// Non-feedable crops never fix credited nitrogen.
	nonFeedable := mainCultivation(models.Cultivation{
		CultivationType: models.CultivationMainCrop,
		LegumeRate:      models.LegumeGrassLess10,
	}, wheatRecord(), models.FieldTypeGrassland)
	assert.True(t, nonFeedable.LegumeDelivery().IsZero())
}

package crops

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

func fieldGrassRecord() models.Crop {
	return models.Crop{
		Name:          "Ackergras 3 Schnitte",
		FieldType:     models.FieldTypeCropland,
		CropClass:     models.CropClassMainCrop,
		CropType:      "field_grass",
		Feedable:      true,
		NminDepth:     models.Nmin0,
		TargetDemand:  dec("100"),
		TargetYield:   dec("100"),
		PosYield:      dec("1"),
		NegYield:      dec("2"),
		TargetProtein: dec("16"),
		VarProtein:    dec("0.5"),
		P2O5:          dec("1"),
		K2O:           dec("1"),
		MgO:           dec("1"),
	}
}

func TestDemandCropHigherYield(t *testing.T) {
	c := New(fieldGrassRecord(), testGuidelines())

	d := c.DemandCrop(dec("110"), dec("16.5"))

	// 100 target + 1 * 10 yield surplus + 0.5 * 0.5 protein surplus.
	assert.True(t, d.N.Equal(dec("110.25")), "n = %s", d.N)
	assert.True(t, d.P2O5.Equal(dec("110")))
	assert.True(t, d.K2O.Equal(dec("110")))
	assert.True(t, d.MgO.Equal(dec("110")))
	assert.True(t, d.S.Equal(dec("20")))
	assert.True(t, d.CaO.IsZero())
	assert.True(t, d.NH4.IsZero())
}

func TestDemandCropLowerYield(t *testing.T) {
	c := New(fieldGrassRecord(), testGuidelines())

	d := c.DemandCrop(dec("90"), dec("16"))

	// Shortfalls use the steeper negative slope: 100 + 2 * (-10).
	assert.True(t, d.N.Equal(dec("80")), "n = %s", d.N)
}

func TestDemandByproduct(t *testing.T) {
	rec := fieldGrassRecord()
	rec.ByproductRatio = dec("0.8")
	rec.ByproductP2O5 = dec("0.5")
	rec.ByproductK2O = dec("0.5")
	rec.ByproductMgO = dec("0.5")
	c := New(rec, testGuidelines())

	d := c.DemandByproduct(dec("110"))

	assert.True(t, d.N.IsZero())
	assert.True(t, d.P2O5.Equal(dec("44")))
	assert.True(t, d.K2O.Equal(dec("44")))
	assert.True(t, d.MgO.Equal(dec("44")))
	assert.True(t, d.S.IsZero())
}

func TestSDemandUnknownCropIsZero(t *testing.T) {
	rec := fieldGrassRecord()
	rec.Name = "Unbekannte Kultur"
	c := New(rec, testGuidelines())

	assert.True(t, c.SDemand().IsZero())
}

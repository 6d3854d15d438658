package balance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/broxB/AgroPlan-sub000/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAddKeepsLeftTitle(t *testing.T) {
	b1 := New("Winterweizen", dec("10"), dec("1"), dec("2"), dec("3"), dec("4"), dec("5"), dec("6"))
	b2 := New("Zwischenfrucht", dec("5"), dec("1"), dec("1"), dec("1"), dec("1"), dec("1"), dec("1"))

	sum := b1.Add(b2)

	assert.Equal(t, "Winterweizen", sum.Title)
	assert.True(t, sum.N.Equal(dec("15")))
	assert.True(t, sum.P2O5.Equal(dec("2")))
	assert.True(t, sum.NH4.Equal(dec("7")))
}

func TestSubInvertsAdd(t *testing.T) {
	b1 := New("a", dec("10.5"), dec("1.1"), dec("2.2"), dec("3.3"), dec("4.4"), dec("5.5"), dec("6.6"))
	b2 := New("b", dec("0.5"), dec("0.1"), dec("0.2"), dec("0.3"), dec("0.4"), dec("0.5"), dec("0.6"))

	assert.True(t, b1.Add(b2).Sub(b2).Equal(b1))
}

func TestScalarOperations(t *testing.T) {
	b := New("", dec("1"), dec("2"), dec("3"), dec("4"), dec("5"), dec("6"), dec("7"))

	shifted := b.AddScalar(dec("10"))
	assert.True(t, shifted.N.Equal(dec("11")))
	assert.True(t, shifted.NH4.Equal(dec("17")))

	scaled := b.MulScalar(dec("2"))
	assert.True(t, scaled.K2O.Equal(dec("6")))
	assert.True(t, scaled.CaO.Equal(dec("12")))

	assert.True(t, b.MulScalar(decimal.Zero).IsEmpty())
}

func TestAccumulate(t *testing.T) {
	b := Zero("total")
	b.Accumulate(New("x", dec("1"), dec("1"), dec("1"), dec("1"), dec("1"), dec("1"), dec("1")))
	b.Accumulate(New("y", dec("2"), dec("0"), dec("0"), dec("0"), dec("0"), dec("0"), dec("0")))

	assert.Equal(t, "total", b.Title)
	assert.True(t, b.N.Equal(dec("3")))
	assert.True(t, b.P2O5.Equal(dec("1")))
}

func TestModifierAffectsOnlyNamedNutrient(t *testing.T) {
	for _, nutrient := range models.Nutrients {
		m := Modifier("adjustment", nutrient, dec("42"))
		for _, other := range models.Nutrients {
			if other == nutrient {
				assert.True(t, m.Nutrient(other).Equal(dec("42")))
			} else {
				assert.True(t, m.Nutrient(other).IsZero(), "nutrient %s leaked into %s", nutrient, other)
			}
		}
	}
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, Zero("x").IsEmpty())
	assert.False(t, Modifier("x", models.NutrientS, dec("0.01")).IsEmpty())
}

func TestRoundToNearestHalfUp(t *testing.T) {
	assert.True(t, RoundToNearest(dec("2.5"), 0).Equal(dec("3")))
	assert.True(t, RoundToNearest(dec("2.45"), 1).Equal(dec("2.5")))
	assert.True(t, RoundToNearest(dec("2.44"), 1).Equal(dec("2.4")))
	assert.True(t, RoundToNearest(dec("3.5"), 0).Equal(dec("4")))
}

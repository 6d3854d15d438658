// Package fertilizers computes nutrient supply from fertilizer descriptors
// and their application events.
package fertilizers

import (
	"github.com/shopspring/decimal"

	"github.com/broxB/AgroPlan-sub000/internal/guidelines"
	"github.com/broxB/AgroPlan-sub000/internal/models"
)

// Lime starvation weights: nitrogen and sulfur acidify, calcium oxide
// neutralizes. Grassland converts at half the cropland rate.
var (
	starvationN         = decimal.RequireFromString("1.0")
	starvationS         = decimal.RequireFromString("0.7")
	grasslandStarvation = decimal.RequireFromString("0.5")
)

// Fertilizer is a fertilizer descriptor in one of two closed variants,
// picked by the fert class at construction time.
type Fertilizer interface {
	// Record returns the wrapped descriptor row.
	Record() models.Fertilizer
	// Name returns the fertilizer name.
	Name() string
	// IsOrganic reports whether the fertilizer is of organic origin.
	IsOrganic() bool
	// IsMineral reports whether the fertilizer is mineral.
	IsMineral() bool
	// IsLime reports whether the fertilizer is a lime product.
	IsLime() bool
	// IsClass reports whether the fertilizer belongs to the given class.
	IsClass(models.FertClass) bool
	// NTotal returns the nitrogen content per unit, brutto or netto of
	// storage losses.
	NTotal(netto bool) decimal.Decimal
	// NVerf returns the plant-available nitrogen per unit for a field type.
	NVerf(fieldType models.FieldType) decimal.Decimal
	// LimeStarvation returns the signed acidification value per unit.
	LimeStarvation(fieldType models.FieldType) decimal.Decimal
}

// New wraps rec in the variant matching its fert class.
func New(rec models.Fertilizer, gl *guidelines.Guidelines) Fertilizer {
	if rec.FertClass == models.FertClassOrganic {
		return &Organic{fertilizerBase: fertilizerBase{rec: rec}, gl: gl}
	}
	return &Mineral{fertilizerBase: fertilizerBase{rec: rec}}
}

type fertilizerBase struct {
	rec models.Fertilizer
}

func (f *fertilizerBase) Record() models.Fertilizer {
	return f.rec
}

func (f *fertilizerBase) Name() string {
	return f.rec.Name
}

func (f *fertilizerBase) IsOrganic() bool {
	return f.rec.FertClass == models.FertClassOrganic
}

func (f *fertilizerBase) IsMineral() bool {
	return f.rec.FertClass == models.FertClassMineral
}

func (f *fertilizerBase) IsLime() bool {
	return f.rec.FertType == models.FertTypeLime
}

func (f *fertilizerBase) IsClass(fc models.FertClass) bool {
	return f.rec.FertClass == fc
}

// starvation is the shared acidification combination: calcium oxide
// neutralizes what nitrogen and sulfur acidify.
func (f *fertilizerBase) starvation(fieldType models.FieldType) decimal.Decimal {
	value := f.rec.CaO.
		Sub(f.rec.N.Mul(starvationN)).
		Sub(f.rec.S.Mul(starvationS))
	if fieldType == models.FieldTypeGrassland || fieldType == models.FieldTypeFallowGrassland {
		value = value.Mul(grasslandStarvation)
	}
	return value
}

// Organic is a fertilizer of organic origin. Its nitrogen effectiveness
// depends on the tabulated factors of its product group.
type Organic struct {
	fertilizerBase
	gl *guidelines.Guidelines
}

// NTotal returns the brutto nitrogen content, or the netto content after
// subtracting the tabulated storage loss.
func (o *Organic) NTotal(netto bool) decimal.Decimal {
	if !netto {
		return o.rec.N
	}
	loss := o.gl.OrgFactors(o.rec.FertType).StorageLoss
	return o.rec.N.Mul(decimal.NewFromInt(1).Sub(loss))
}

// NVerf returns the legally credited nitrogen per unit: the ammonium share
// is fully available, the organically bound remainder converts by the
// field-type factor. Fallow and exchanged land receive no credit.
func (o *Organic) NVerf(fieldType models.FieldType) decimal.Decimal {
	if fieldType.IsFallow() {
		return decimal.Zero
	}
	factors := o.gl.OrgFactors(o.rec.FertType)
	factor := factors.CroplandFactor
	if fieldType == models.FieldTypeGrassland {
		factor = factors.GrasslandFactor
	}
	return o.NTotal(false).Sub(o.rec.NH4).Mul(factor).Add(o.rec.NH4)
}

// LimeStarvation scales the shared combination by the organic lime factor
// of the product group.
func (o *Organic) LimeStarvation(fieldType models.FieldType) decimal.Decimal {
	return o.starvation(fieldType).Mul(o.gl.OrgFactors(o.rec.FertType).LimeFactor)
}

// Mineral is a mineral fertilizer. Nitrogen carries no storage loss and
// only the ammonium share counts as plant-available.
type Mineral struct {
	fertilizerBase
}

func (m *Mineral) NTotal(_ bool) decimal.Decimal {
	return m.rec.N
}

func (m *Mineral) NVerf(_ models.FieldType) decimal.Decimal {
	return m.rec.NH4
}

func (m *Mineral) LimeStarvation(fieldType models.FieldType) decimal.Decimal {
	return m.starvation(fieldType)
}

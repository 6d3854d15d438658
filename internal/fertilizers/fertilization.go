package fertilizers

import (
	"github.com/shopspring/decimal"

	"github.com/broxB/AgroPlan-sub000/internal/balance"
	"github.com/broxB/AgroPlan-sub000/internal/crops"
	"github.com/broxB/AgroPlan-sub000/internal/models"
)

// Fertilization is one application event of a fertilizer to a cultivation.
type Fertilization struct {
	rec             models.Fertilization
	fert            Fertilizer
	crop            *crops.Crop
	cultivationType models.CultivationType
}

// NewFertilization wraps an application record with its fertilizer, the
// recipient crop and the role of the fertilized cultivation.
func NewFertilization(rec models.Fertilization, fert Fertilizer, crop *crops.Crop, ct models.CultivationType) *Fertilization {
	return &Fertilization{rec: rec, fert: fert, crop: crop, cultivationType: ct}
}

// Record returns the wrapped application row.
func (f *Fertilization) Record() models.Fertilization {
	return f.rec
}

// Amount returns the applied amount.
func (f *Fertilization) Amount() decimal.Decimal {
	return f.rec.Amount
}

// Measure returns the application measure.
func (f *Fertilization) Measure() models.MeasureType {
	return f.rec.Measure
}

// CultivationType returns the role of the fertilized cultivation.
func (f *Fertilization) CultivationType() models.CultivationType {
	return f.cultivationType
}

// Fertilizer returns the applied fertilizer.
func (f *Fertilization) Fertilizer() Fertilizer {
	return f.fert
}

// NTotal returns the total organic nitrogen of the application, optionally
// restricted to a measure and a cultivation role. Mineral applications and
// filtered-out events contribute zero.
func (f *Fertilization) NTotal(measure *models.MeasureType, ct *models.CultivationType, netto bool) decimal.Decimal {
	if !f.fert.IsOrganic() {
		return decimal.Zero
	}
	if measure != nil && f.rec.Measure != *measure {
		return decimal.Zero
	}
	if ct != nil && f.cultivationType != *ct {
		return decimal.Zero
	}
	return f.rec.Amount.Mul(f.fert.NTotal(netto))
}

// Nutrients returns the supplied nutrient balance of the application. The
// nitrogen component carries the plant-available share only.
func (f *Fertilization) Nutrients(fieldType models.FieldType) balance.Balance {
	rec := f.fert.Record()
	return balance.New(f.fert.Name(),
		f.rec.Amount.Mul(f.nVerf(fieldType)),
		f.rec.Amount.Mul(rec.P2O5),
		f.rec.Amount.Mul(rec.K2O),
		f.rec.Amount.Mul(rec.MgO),
		f.rec.Amount.Mul(rec.S),
		f.rec.Amount.Mul(rec.CaO),
		decimal.Zero,
	)
}

// nVerf routes the available-N lookup: feedable recipients convert at the
// grassland rate regardless of the field's own type, and organic nitrogen
// applied to a catch crop is not credited to the main crop.
func (f *Fertilization) nVerf(fieldType models.FieldType) decimal.Decimal {
	if f.cultivationType == models.CultivationCatchCrop && f.fert.IsOrganic() {
		return decimal.Zero
	}
	if f.crop != nil && f.crop.Feedable() {
		return f.fert.NVerf(models.FieldTypeGrassland)
	}
	return f.fert.NVerf(fieldType)
}

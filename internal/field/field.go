// Package field assembles the per-year planning aggregate and derives its
// nutrient balances. A Field is a frozen snapshot: repeated queries on the
// same instance return equal balances.
package field

import (
	"github.com/shopspring/decimal"

	"github.com/broxB/AgroPlan-sub000/internal/balance"
	"github.com/broxB/AgroPlan-sub000/internal/crops"
	"github.com/broxB/AgroPlan-sub000/internal/fertilizers"
	"github.com/broxB/AgroPlan-sub000/internal/guidelines"
	"github.com/broxB/AgroPlan-sub000/internal/models"
	"github.com/broxB/AgroPlan-sub000/internal/soil"
)

// redeliveryRate is the share of organic nitrogen carried into next year.
var redeliveryRate = decimal.RequireFromString("0.1")

// cultivationOrder fixes the presentation order of crop balances.
var cultivationOrder = []models.CultivationType{
	models.CultivationMainCrop,
	models.CultivationSecondMainCrop,
	models.CultivationSecondCrop,
	models.CultivationCatchCrop,
}

// Field is the planning unit of one parcel-year.
type Field struct {
	rec            models.Field
	baseField      models.BaseField
	soil           *soil.Soil
	cultivations   map[models.CultivationType]crops.Cultivation
	fertilizations []*fertilizers.Fertilization
	modifiers      []models.Modifier
	prev           *Field
	gl             *guidelines.Guidelines
}

// Record returns the wrapped field row.
func (f *Field) Record() models.Field {
	return f.rec
}

// BaseField returns the parcel of the field.
func (f *Field) BaseField() models.BaseField {
	return f.baseField
}

// Year returns the planning year.
func (f *Field) Year() int {
	return f.rec.Year
}

// FieldType returns the usage type of the field.
func (f *Field) FieldType() models.FieldType {
	return f.rec.FieldType
}

// Soil returns the soil sample in effect, nil when the parcel has none.
func (f *Field) Soil() *soil.Soil {
	return f.soil
}

// Previous returns the same parcel's field of the preceding year, nil when
// absent.
func (f *Field) Previous() *Field {
	return f.prev
}

// Cultivation returns the cultivation playing the given role, nil when the
// role is not planted.
func (f *Field) Cultivation(ct models.CultivationType) crops.Cultivation {
	return f.cultivations[ct]
}

// Cultivations returns all cultivations in presentation order.
func (f *Field) Cultivations() []crops.Cultivation {
	out := make([]crops.Cultivation, 0, len(f.cultivations))
	for _, ct := range cultivationOrder {
		if c, ok := f.cultivations[ct]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Fertilizations returns all application events of the year.
func (f *Field) Fertilizations() []*fertilizers.Fertilization {
	return f.fertilizations
}

// Modifiers returns the free-form adjustments of the year.
func (f *Field) Modifiers() []models.Modifier {
	return f.modifiers
}

// NGes sums the total organic nitrogen over all fertilizations, optionally
// restricted by measure and cultivation role.
func (f *Field) NGes(measure *models.MeasureType, ct *models.CultivationType, netto bool) decimal.Decimal {
	sum := decimal.Zero
	for _, fz := range f.fertilizations {
		sum = sum.Add(fz.NTotal(measure, ct, netto))
	}
	return sum
}

// NH4Ges sums the applied ammonium over all fertilizations of a measure.
func (f *Field) NH4Ges(measure models.MeasureType) decimal.Decimal {
	sum := decimal.Zero
	for _, fz := range f.fertilizations {
		if fz.Measure() != measure {
			continue
		}
		sum = sum.Add(fz.Amount().Mul(fz.Fertilizer().Record().NH4))
	}
	return sum
}

// SumFertilizations sums the supplied nutrients over all fertilizations,
// optionally restricted to one fertilizer class.
func (f *Field) SumFertilizations(fc *models.FertClass) balance.Balance {
	sum := balance.Zero("Fertilizations")
	for _, fz := range f.fertilizations {
		if fc != nil && !fz.Fertilizer().IsClass(*fc) {
			continue
		}
		sum.Accumulate(fz.Nutrients(f.rec.FieldType))
	}
	return sum
}

// SumDemands sums the nutrient demands of all cultivations. With negative
// set the result is in balance direction.
func (f *Field) SumDemands(negative bool) balance.Balance {
	sum := balance.Zero("Demands")
	for _, c := range f.Cultivations() {
		sum.Accumulate(c.Demand(negative))
	}
	return sum
}

// CropBalance returns the balance of one cultivation: its negated demand,
// the reductions applicable to its role, and the fertilizations addressed
// to it.
func (f *Field) CropBalance(c crops.Cultivation) balance.Balance {
	b := c.Demand(true)
	b.Accumulate(f.Reductions(c))
	for _, fz := range f.fertilizations {
		if fz.CultivationType() == c.Type() {
			b.Accumulate(fz.Nutrients(f.rec.FieldType))
		}
	}
	return b
}

// CropBalances returns one balance per cultivation present, each titled
// with the cultivated crop.
func (f *Field) CropBalances() []balance.Balance {
	out := make([]balance.Balance, 0, len(f.cultivations))
	for _, c := range f.Cultivations() {
		out = append(out, f.CropBalance(c))
	}
	return out
}

// Reductions returns the reduction balance applicable to one cultivation.
// Main crops collect the full set of soil reductions, the predecessor
// effect, Nmin and the legume delivery. Second crops receive the pre-crop
// effect of this year's main crop and their legume delivery. Catch crops
// receive none.
func (f *Field) Reductions(c crops.Cultivation) balance.Balance {
	b := balance.Zero("Reductions")
	switch c.Type() {
	case models.CultivationMainCrop:
		b.Accumulate(f.baseReductions(c))
		n := c.ReductionNmin().Add(c.LegumeDelivery())
		if f.soil != nil {
			n = n.Add(f.soil.ReductionN())
		}
		if pre := f.predecessor(); pre != nil && f.rec.FieldType == models.FieldTypeCropland {
			n = n.Add(pre.PreCropEffect())
		}
		b.N = b.N.Add(n)
	case models.CultivationSecondMainCrop:
		n := c.ReductionNmin().Add(c.LegumeDelivery())
		if main := f.Cultivation(models.CultivationMainCrop); main != nil {
			n = n.Add(main.PreCropEffect())
		}
		b.N = n
	case models.CultivationSecondCrop:
		n := c.LegumeDelivery()
		if main := f.Cultivation(models.CultivationMainCrop); main != nil {
			n = n.Add(main.PreCropEffect())
		}
		b.N = n
	}
	return b
}

// baseReductions returns the per-nutrient soil reductions, applied once per
// field against the main crop.
func (f *Field) baseReductions(c crops.Cultivation) balance.Balance {
	b := balance.Zero("Soil reductions")
	if f.soil == nil {
		return b
	}
	main := models.CultivationMainCrop
	b.P2O5 = f.soil.ReductionP2O5()
	b.K2O = f.soil.ReductionK2O()
	b.MgO = f.soil.ReductionMg()
	b.CaO = f.soil.ReductionCaO(false)
	b.S = f.soil.ReductionS(c.Crop().SDemand(), f.NGes(nil, &main, false))
	return b
}

// predecessor resolves the crop preceding this year's main crop: the catch
// crop of the same year if planted, otherwise the prior year's second or
// main crop.
func (f *Field) predecessor() crops.Cultivation {
	if catch := f.Cultivation(models.CultivationCatchCrop); catch != nil {
		return catch
	}
	if f.prev == nil {
		return nil
	}
	if second := f.prev.Cultivation(models.CultivationSecondCrop); second != nil {
		return second
	}
	return f.prev.Cultivation(models.CultivationMainCrop)
}

// NRedelivery returns the nitrogen carried over from organic fertilization:
// a tenth of last year's spring applications plus this year's fall
// applications on catch crops.
func (f *Field) NRedelivery() decimal.Decimal {
	if f.prev == nil {
		return decimal.Zero
	}
	spring := models.MeasureOrgSpring
	fall := models.MeasureOrgFall
	catch := models.CultivationCatchCrop
	carried := f.prev.NGes(&spring, nil, false).
		Add(f.NGes(&fall, &catch, false))
	return carried.Mul(redeliveryRate)
}

// CaOSaldo returns the calcium oxide carry of the prior year: the CaO
// component of its fertilizations minus its demands. The prior year's
// reductions are deliberately not part of the carry.
func (f *Field) CaOSaldo() decimal.Decimal {
	if f.prev == nil {
		return decimal.Zero
	}
	return f.prev.SumFertilizations(nil).CaO.Sub(f.prev.SumDemands(false).CaO)
}

// TotalBalance returns the pointwise sum of all crop balances, the field
// modifiers, and the year-end carries.
func (f *Field) TotalBalance() balance.Balance {
	total := balance.Zero(f.baseField.Name)
	for _, cb := range f.CropBalances() {
		total.Accumulate(cb)
	}
	for _, m := range f.modifiers {
		total.Accumulate(balance.Modifier(m.Description, m.Modification, decimal.NewFromInt(int64(m.Amount))))
	}
	if f.prev != nil {
		total.N = total.N.Add(f.NRedelivery())
		total.CaO = total.CaO.Add(f.CaOSaldo())
	}
	return total
}

// CategoryBalances aggregates the year's fertilizations into presentation
// categories: organic applications by season, mineral applications by
// measure, and the soil reductions once.
func (f *Field) CategoryBalances() []balance.Balance {
	out := []balance.Balance{}

	fall := balance.Zero("Organic fall")
	spring := balance.Zero("Organic spring")
	mineral := map[models.MeasureType]*balance.Balance{}
	var mineralOrder []models.MeasureType

	for _, fz := range f.fertilizations {
		nutrients := fz.Nutrients(f.rec.FieldType)
		switch {
		case fz.Fertilizer().IsOrganic() && fz.Measure() == models.MeasureOrgFall:
			fall.Accumulate(nutrients)
		case fz.Fertilizer().IsOrganic() && fz.Measure() == models.MeasureOrgSpring:
			spring.Accumulate(nutrients)
		case fz.Fertilizer().IsMineral():
			measure := fz.Measure()
			b, ok := mineral[measure]
			if !ok {
				nb := balance.Zero(string(measure))
				mineral[measure] = &nb
				mineralOrder = append(mineralOrder, measure)
				b = &nb
			}
			b.Accumulate(nutrients)
		}
	}

	if !fall.IsEmpty() {
		out = append(out, fall)
	}
	if !spring.IsEmpty() {
		out = append(out, spring)
	}
	for _, measure := range mineralOrder {
		out = append(out, *mineral[measure])
	}
	if main := f.Cultivation(models.CultivationMainCrop); main != nil {
		base := f.baseReductions(main)
		if !base.IsEmpty() {
			out = append(out, base)
		}
	}
	return out
}

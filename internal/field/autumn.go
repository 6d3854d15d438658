package field

import (
	"github.com/shopspring/decimal"

	"github.com/broxB/AgroPlan-sub000/internal/fertilizers"
	"github.com/broxB/AgroPlan-sub000/internal/models"
)

// Regulatory ceilings for fall applications of organic fertilizers, in
// kg/ha. The feedable cap drops in nitrate-polluted (red) regions.
var (
	fallLimitN           = decimal.NewFromInt(60)
	fallLimitNH4         = decimal.NewFromInt(30)
	fallLimitFeedable    = decimal.NewFromInt(80)
	fallLimitFeedableRed = decimal.NewFromInt(60)
)

// AutumnResult is the outcome of the fall-application check. MaxAmount is
// the largest acceptable amount of the proposed fertilizer and is only
// meaningful when the proposal was rejected.
type AutumnResult struct {
	Accepted  bool            `json:"accepted"`
	MaxAmount decimal.Decimal `json:"max_amount"`
}

// CheckAutumnFertilization validates a proposed fall application of an
// organic fertilizer against the regulatory nitrogen ceilings. The sums
// cover all existing fall applications on the field plus the proposal.
// When the proposal edits an existing application, current holds its stored
// amount and the suggested maximum is additive on top of it.
func (f *Field) CheckAutumnFertilization(fert fertilizers.Fertilizer, amount decimal.Decimal, ct models.CultivationType, current *decimal.Decimal) AutumnResult {
	if !fert.IsOrganic() {
		return AutumnResult{Accepted: true}
	}

	fall := models.MeasureOrgFall
	existingN := f.NGes(&fall, nil, false)
	existingNH4 := f.NH4Ges(fall)
	if current != nil {
		existingN = existingN.Sub(current.Mul(fert.NTotal(false)))
		existingNH4 = existingNH4.Sub(current.Mul(fert.Record().NH4))
	}

	sumN := existingN.Add(amount.Mul(fert.NTotal(false)))
	sumNH4 := existingNH4.Add(amount.Mul(fert.Record().NH4))

	if sumN.LessThanOrEqual(fallLimitN) && sumNH4.LessThanOrEqual(fallLimitNH4) {
		return AutumnResult{Accepted: true}
	}

	var suggested decimal.Decimal
	if f.feedableException(ct) {
		limit := fallLimitFeedable
		if f.rec.RedRegion {
			limit = fallLimitFeedableRed
		}
		if sumN.LessThan(limit) {
			return AutumnResult{Accepted: true}
		}
		suggested = headroom(limit, existingN, fert.NTotal(false))
	} else {
		suggested = decimal.Min(
			headroom(fallLimitNH4, existingNH4, fert.Record().NH4),
			headroom(fallLimitN, existingN, fert.NTotal(false)),
		)
	}

	if current != nil {
		suggested = suggested.Add(*current)
	}
	if suggested.IsNegative() {
		suggested = decimal.Zero
	}
	return AutumnResult{MaxAmount: suggested}
}

// feedableException reports whether the field qualifies for the raised fall
// ceiling: grassland always does, cropland only when the application feeds
// a feedable main crop and no later crop follows in the same year.
func (f *Field) feedableException(ct models.CultivationType) bool {
	if f.rec.FieldType == models.FieldTypeGrassland || f.rec.FieldType == models.FieldTypeFallowGrassland {
		return true
	}
	if ct != models.CultivationMainCrop {
		return false
	}
	main := f.Cultivation(models.CultivationMainCrop)
	if main == nil || !main.Crop().Feedable() {
		return false
	}
	return f.Cultivation(models.CultivationSecondMainCrop) == nil &&
		f.Cultivation(models.CultivationSecondCrop) == nil
}

// headroom returns the largest whole number of fertilizer units fitting
// under a ceiling given what is already applied. A zero per-unit content
// never constrains.
func headroom(limit, existing, perUnit decimal.Decimal) decimal.Decimal {
	if !perUnit.IsPositive() {
		return decimal.NewFromInt(1 << 30)
	}
	room := limit.Sub(existing)
	if room.IsNegative() {
		return decimal.Zero
	}
	return room.Div(perUnit).Floor()
}

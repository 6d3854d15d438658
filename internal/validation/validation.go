// Package validation checks candidate entities against the planning
// invariants before they reach the store. Failures travel as per-field
// message maps, never as panics.
package validation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/broxB/AgroPlan-sub000/internal/fertilizers"
	"github.com/broxB/AgroPlan-sub000/internal/field"
	"github.com/broxB/AgroPlan-sub000/internal/guidelines"
	"github.com/broxB/AgroPlan-sub000/internal/models"
	"github.com/broxB/AgroPlan-sub000/internal/store"
)

// modifierLimit bounds a modifier amount in kg/ha, either direction.
const modifierLimit = 1000

// Errors maps a field name to its failure message.
type Errors map[string]string

// Validator checks candidates against the store and the engine.
type Validator struct {
	store *store.Store
	gl    *guidelines.Guidelines
}

// New returns a validator backed by the given store and guideline tables.
func New(s *store.Store, gl *guidelines.Guidelines) *Validator {
	return &Validator{store: s, gl: gl}
}

// ValidateBaseField checks a candidate parcel.
func (v *Validator) ValidateBaseField(ctx context.Context, bf models.BaseField) (bool, Errors) {
	errs := Errors{}
	if bf.Name == "" {
		errs["name"] = "name is required"
	}
	if bf.Prefix < 0 || bf.Suffix < 0 {
		errs["prefix"] = "parcel number must not be negative"
	}
	if bf.PrincipalID == uuid.Nil {
		errs["principal_id"] = "owner is required"
	}
	return len(errs) == 0, errs
}

// ValidateField checks a candidate planning-year row.
func (v *Validator) ValidateField(ctx context.Context, f models.Field) (bool, Errors) {
	errs := Errors{}
	if !f.Area.IsPositive() {
		errs["area"] = "area must be positive"
	}
	if !knownFieldType(f.FieldType) {
		errs["field_type"] = fmt.Sprintf("unknown field type %q", f.FieldType)
	}
	parcel, err := v.store.BaseFieldByID(ctx, f.BaseFieldID)
	if err != nil || parcel == nil {
		errs["base_field_id"] = "parcel not found"
	}
	return len(errs) == 0, errs
}

// ValidateSoilSample checks a candidate measurement.
func (v *Validator) ValidateSoilSample(ctx context.Context, s models.SoilSample) (bool, Errors) {
	errs := Errors{}
	if s.Year <= 0 {
		errs["year"] = "year is required"
	}
	if !knownSoilType(s.SoilType) {
		errs["soil_type"] = fmt.Sprintf("unknown soil type %q", s.SoilType)
	}
	if !knownHumusType(s.HumusType) {
		errs["humus_type"] = fmt.Sprintf("unknown humus type %q", s.HumusType)
	}
	parcel, err := v.store.BaseFieldByID(ctx, s.BaseFieldID)
	if err != nil || parcel == nil {
		errs["base_field_id"] = "parcel not found"
	}
	return len(errs) == 0, errs
}

// ValidateCrop checks a candidate crop descriptor.
func (v *Validator) ValidateCrop(ctx context.Context, c models.Crop) (bool, Errors) {
	errs := Errors{}
	if c.Name == "" {
		errs["name"] = "name is required"
	}
	if !knownFieldType(c.FieldType) {
		errs["field_type"] = fmt.Sprintf("unknown field type %q", c.FieldType)
	}
	if c.TargetYield.IsNegative() {
		errs["target_yield"] = "target yield must not be negative"
	}
	return len(errs) == 0, errs
}

// ValidateCultivation checks a candidate cultivation: its crop must exist
// under the same owner and residue handling must fit the role.
func (v *Validator) ValidateCultivation(ctx context.Context, principalID uuid.UUID, c models.Cultivation) (bool, Errors) {
	errs := Errors{}
	crop, err := v.store.CropByID(ctx, c.CropID)
	if err != nil || crop == nil {
		errs["crop_id"] = "crop not found"
	} else if crop.PrincipalID != principalID {
		errs["crop_id"] = "crop belongs to another owner"
	}
	if c.CropYield.IsNegative() {
		errs["crop_yield"] = "yield must not be negative"
	}
	if !residueFitsRole(c.CultivationType, c.Residues) {
		errs["residues"] = fmt.Sprintf("residue handling %q does not fit a %s", c.Residues, c.CultivationType)
	}
	return len(errs) == 0, errs
}

// ValidateModifier checks a candidate adjustment.
func (v *Validator) ValidateModifier(ctx context.Context, m models.Modifier) (bool, Errors) {
	errs := Errors{}
	if m.Description == "" {
		errs["description"] = "description is required"
	}
	if !knownNutrient(m.Modification) {
		errs["modification"] = fmt.Sprintf("unknown nutrient %q", m.Modification)
	}
	if m.Amount > modifierLimit || m.Amount < -modifierLimit {
		errs["amount"] = fmt.Sprintf("amount is limited to %d kg/ha in either direction", modifierLimit)
	}
	return len(errs) == 0, errs
}

// ValidateFertilization checks a candidate application: a positive amount,
// referents under the same owner, the per-cultivation uniqueness of mineral
// measures, and the fall nitrogen ceilings. For edits, current carries the
// stored amount so the ceiling suggestion is additive.
func (v *Validator) ValidateFertilization(ctx context.Context, principalID uuid.UUID, fz models.Fertilization, current *decimal.Decimal) (bool, Errors) {
	errs := Errors{}
	if !fz.Amount.IsPositive() {
		errs["amount"] = "amount must be positive"
	}

	fert, err := v.store.FertilizerByID(ctx, fz.FertilizerID)
	if err != nil || fert == nil {
		errs["fertilizer_id"] = "fertilizer not found"
	} else if fert.PrincipalID != principalID {
		errs["fertilizer_id"] = "fertilizer belongs to another owner"
	}

	cultivation, err := v.store.CultivationByID(ctx, fz.CultivationID)
	if err != nil || cultivation == nil {
		errs["cultivation_id"] = "cultivation not found"
	} else if cultivation.FieldID != fz.FieldID {
		errs["cultivation_id"] = "cultivation belongs to another field"
	}
	if len(errs) > 0 {
		return false, errs
	}

	if fz.Measure.IsMineral() {
		if taken, err := v.mineralMeasureTaken(ctx, fz); err != nil {
			errs["measure"] = "measure could not be checked"
		} else if taken {
			errs["measure"] = fmt.Sprintf("measure %s already applied to this cultivation", fz.Measure)
		}
	}

	if fz.Measure == models.MeasureOrgFall {
		if msg := v.checkFallCeiling(ctx, fz, *fert, cultivation.CultivationType, current); msg != "" {
			errs["amount"] = msg
		}
	}
	return len(errs) == 0, errs
}

// mineralMeasureTaken reports whether another application of the same
// mineral measure already exists on the cultivation.
func (v *Validator) mineralMeasureTaken(ctx context.Context, fz models.Fertilization) (bool, error) {
	rows, err := v.store.FertilizationsOfField(ctx, fz.FieldID)
	if err != nil {
		return false, err
	}
	for _, row := range rows {
		if row.ID == fz.ID {
			continue
		}
		if row.CultivationID == fz.CultivationID && row.Measure == fz.Measure {
			return true, nil
		}
	}
	return false, nil
}

// checkFallCeiling builds the field snapshot and consults the autumn check
// against the pre-mutation view.
func (v *Validator) checkFallCeiling(ctx context.Context, fz models.Fertilization, fert models.Fertilizer, ct models.CultivationType, current *decimal.Decimal) string {
	rec, err := v.store.FieldByID(ctx, fz.FieldID)
	if err != nil || rec == nil {
		return "field not found"
	}
	snapshot, err := field.NewBuilder(v.store, v.gl).Build(ctx, *rec)
	if err != nil {
		return "field could not be loaded"
	}
	res := snapshot.CheckAutumnFertilization(fertilizers.New(fert, v.gl), fz.Amount, ct, current)
	if res.Accepted {
		return ""
	}
	return fmt.Sprintf("exceeds the fall nitrogen ceiling, at most %s allowed", res.MaxAmount)
}

func residueFitsRole(ct models.CultivationType, r models.ResidueType) bool {
	switch r {
	case models.ResidueNone:
		return true
	case models.ResidueMainStayed, models.ResidueMainRemoved, models.ResidueMainNoResidues:
		return ct != models.CultivationCatchCrop
	case models.ResidueCatchFrozen, models.ResidueCatchNotFrozenFall,
		models.ResidueCatchNotFrozenSpring, models.ResidueCatchUsed:
		return ct == models.CultivationCatchCrop
	}
	return false
}

func knownFieldType(ft models.FieldType) bool {
	switch ft {
	case models.FieldTypeGrassland, models.FieldTypeCropland, models.FieldTypeExchangedLand,
		models.FieldTypeFallowGrassland, models.FieldTypeFallowCropland:
		return true
	}
	return false
}

func knownSoilType(st models.SoilType) bool {
	switch st {
	case models.SoilTypeSand, models.SoilTypeLightLoamySand, models.SoilTypeStrongLoamySand,
		models.SoilTypeSandyToSiltyLoam, models.SoilTypeClayeyLoamToClay, models.SoilTypeMoor:
		return true
	}
	return false
}

func knownHumusType(ht models.HumusType) bool {
	switch ht {
	case models.HumusTypeLess4, models.HumusTypeLess8, models.HumusTypeLess15,
		models.HumusTypeLess30, models.HumusTypeMore30:
		return true
	}
	return false
}

func knownNutrient(n models.NutrientType) bool {
	for _, known := range models.Nutrients {
		if n == known {
			return true
		}
	}
	return false
}

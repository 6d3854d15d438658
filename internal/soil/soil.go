// Package soil derives nutrient reductions and content classes from a soil
// sample in the context of a target field type.
package soil

import (
	"github.com/shopspring/decimal"

	"github.com/broxB/AgroPlan-sub000/internal/guidelines"
	"github.com/broxB/AgroPlan-sub000/internal/models"
)

// Soil wraps one soil sample. All reductions follow the sign convention of
// the balance: positive values offset demand, negative values add to it.
// Missing measurements yield zero reductions and empty classes.
type Soil struct {
	sample    models.SoilSample
	fieldType models.FieldType
	gl        *guidelines.Guidelines
}

// New wraps sample for calculations against the given field type.
func New(sample models.SoilSample, fieldType models.FieldType, gl *guidelines.Guidelines) *Soil {
	return &Soil{sample: sample, fieldType: fieldType, gl: gl}
}

// Sample returns the wrapped sample.
func (s *Soil) Sample() models.SoilSample {
	return s.sample
}

// ReductionN returns the baseline nitrogen delivery of the soil class.
// Grassland soils deliver 10 kg N/ha, cropland none.
func (s *Soil) ReductionN() decimal.Decimal {
	return s.gl.SoilReductionN(s.fieldType)
}

// ClassP2O5 returns the phosphate content class A..E, or "" when the sample
// carries no phosphate measurement.
func (s *Soil) ClassP2O5() string {
	return s.class(guidelines.TableP2O5Classes, s.sample.P2O5)
}

// ClassK2O returns the potash content class A..E, or "".
func (s *Soil) ClassK2O() string {
	return s.class(guidelines.TableK2OClasses, s.sample.K2O)
}

// ClassMg returns the magnesium content class A..E, or "".
func (s *Soil) ClassMg() string {
	return s.class(guidelines.TableMgClasses, s.sample.Mg)
}

// ClassPh returns the pH class A..E, or "".
func (s *Soil) ClassPh() string {
	return s.class(guidelines.TablePhClasses, s.sample.PH)
}

func (s *Soil) class(table string, value *decimal.Decimal) string {
	if value == nil {
		return ""
	}
	return s.gl.ContentClass(table, s.fieldType, s.sample.SoilType, s.sample.HumusType, *value)
}

// ReductionP2O5 returns the phosphate reduction for the sample's content
// class, zero when the measurement or class is unknown.
func (s *Soil) ReductionP2O5() decimal.Decimal {
	return s.gl.NutrientReduction(guidelines.TableP2O5Reductions, s.sample.SoilType, s.ClassP2O5())
}

// ReductionK2O returns the potash reduction, zero when unknown.
func (s *Soil) ReductionK2O() decimal.Decimal {
	return s.gl.NutrientReduction(guidelines.TableK2OReductions, s.sample.SoilType, s.ClassK2O())
}

// ReductionMg returns the magnesium reduction, zero when unknown.
func (s *Soil) ReductionMg() decimal.Decimal {
	return s.gl.NutrientReduction(guidelines.TableMgReductions, s.sample.SoilType, s.ClassMg())
}

// OptimalPh returns the tabulated optimal pH for the sample's soil and
// humus band, zero when not tabulated.
func (s *Soil) OptimalPh() decimal.Decimal {
	return s.gl.OptimalPh(s.fieldType, s.sample.SoilType, s.sample.HumusType)
}

// ReductionCaO returns the lime demand derived from the gap between the
// measured and the optimal pH. In preservation mode a fixed maintenance
// offset applies instead. A missing pH or an untabulated soil yields zero.
func (s *Soil) ReductionCaO(preservation bool) decimal.Decimal {
	if preservation {
		return s.gl.CaOPreservation().Neg()
	}
	if s.sample.PH == nil {
		return decimal.Zero
	}
	optimal := s.OptimalPh()
	if optimal.IsZero() {
		return decimal.Zero
	}
	delta := optimal.Sub(*s.sample.PH)
	if !delta.IsPositive() {
		return decimal.Zero
	}
	return delta.Mul(s.gl.CaOPerPh(s.sample.SoilType)).Neg()
}

// ReductionS returns the soil sulfur delivery credited against the crop's
// sulfur demand. Delivery grows with the humus band and with the total
// nitrogen supplied, and never exceeds the demand itself.
func (s *Soil) ReductionS(sDemand, nTotal decimal.Decimal) decimal.Decimal {
	if !sDemand.IsPositive() {
		return decimal.Zero
	}
	supply, nFactor := s.gl.SulfurDelivery(s.sample.HumusType)
	supply = supply.Add(nTotal.Mul(nFactor))
	if supply.GreaterThan(sDemand) {
		return sDemand
	}
	return supply
}

package crops

import (
	"github.com/shopspring/decimal"

	"github.com/broxB/AgroPlan-sub000/internal/balance"
	"github.com/broxB/AgroPlan-sub000/internal/guidelines"
	"github.com/broxB/AgroPlan-sub000/internal/models"
)

// catchCropNDemand is the fixed nitrogen demand of any catch crop.
var catchCropNDemand = decimal.NewFromInt(60)

// Cultivation is a crop grown on a field in one of four roles. The three
// variants share this interface; the role tag picks the variant at
// construction time.
type Cultivation interface {
	// Type returns the role of the cultivation on its field.
	Type() models.CultivationType
	// IsClass reports whether the cultivation plays the given role.
	IsClass(models.CultivationType) bool
	// Crop returns the cultivated crop.
	Crop() *Crop
	// Record returns the wrapped cultivation row.
	Record() models.Cultivation
	// Demand returns the nutrient demand. With negative set the demand is
	// returned in balance direction (withdrawals count negative).
	Demand(negative bool) balance.Balance
	// ReductionNmin returns the soil mineral nitrogen credited against the
	// demand. Only main crops receive it.
	ReductionNmin() decimal.Decimal
	// PreCropEffect returns the nitrogen credit this cultivation grants to
	// its successor.
	PreCropEffect() decimal.Decimal
	// LegumeDelivery returns the nitrogen fixed by the legume share.
	LegumeDelivery() decimal.Decimal
}

// NewCultivation wraps rec in the variant matching its role.
func NewCultivation(rec models.Cultivation, crop *Crop, fieldType models.FieldType, gl *guidelines.Guidelines) Cultivation {
	base := cultivationBase{rec: rec, crop: crop, fieldType: fieldType, gl: gl}
	switch rec.CultivationType {
	case models.CultivationCatchCrop:
		return &CatchCrop{cultivationBase: base}
	case models.CultivationSecondCrop:
		return &SecondCrop{cultivationBase: base}
	default:
		return &MainCrop{cultivationBase: base}
	}
}

type cultivationBase struct {
	rec       models.Cultivation
	crop      *Crop
	fieldType models.FieldType
	gl        *guidelines.Guidelines
}

func (c *cultivationBase) Type() models.CultivationType {
	return c.rec.CultivationType
}

func (c *cultivationBase) IsClass(ct models.CultivationType) bool {
	return c.rec.CultivationType == ct
}

func (c *cultivationBase) Crop() *Crop {
	return c.crop
}

func (c *cultivationBase) Record() models.Cultivation {
	return c.rec
}

func (c *cultivationBase) PreCropEffect() decimal.Decimal {
	return c.gl.PreCropEffect(c.crop.Record().CropType)
}

// LegumeDelivery returns the nitrogen fixation credit of the legume share.
// Only feedable crops qualify. Grassland bands use the tabulated values,
// grass-legume mixtures scale a base value linearly with the legume share,
// pure legume stands are constants.
func (c *cultivationBase) LegumeDelivery() decimal.Decimal {
	if !c.crop.Feedable() {
		return decimal.Zero
	}
	rate := c.rec.LegumeRate
	if rate == models.LegumeNone {
		return decimal.Zero
	}

	if c.fieldType == models.FieldTypeGrassland || c.fieldType == models.FieldTypeFallowGrassland {
		return c.gl.LegumeDelivery("grassland", rate)
	}

	kind := c.crop.Record().Kind
	switch kind {
	case "alfalfa_grass", "clover_grass":
		if share, ok := rate.MainCropRate(); ok {
			factor := decimal.NewFromInt(int64(share)).Div(decimal.NewFromInt(10))
			return c.gl.LegumeConstant(kind).Mul(factor)
		}
		return decimal.Zero
	case "alfalfa", "clover":
		return c.gl.LegumeConstant(kind)
	}
	return decimal.Zero
}

// demandWithResidues sums the primary demand and, when the by-product was
// removed from the field, the by-product demand.
func (c *cultivationBase) demandWithResidues(negative bool) balance.Balance {
	d := c.crop.DemandCrop(c.rec.CropYield, c.rec.CropProtein)
	if c.rec.Residues == models.ResidueMainRemoved {
		d = d.Add(c.crop.DemandByproduct(c.rec.CropYield))
	}
	d.Title = c.crop.Name()
	if negative {
		return d.Neg()
	}
	return d
}

// MainCrop is the cultivation variant for main and second main crops.
type MainCrop struct {
	cultivationBase
}

func (m *MainCrop) Demand(negative bool) balance.Balance {
	return m.demandWithResidues(negative)
}

// ReductionNmin sums the measured soil mineral nitrogen down to the crop's
// rooting depth. The 60-90 cm layer counts half. Feedable crops receive no
// Nmin reduction.
func (m *MainCrop) ReductionNmin() decimal.Decimal {
	if m.crop.Feedable() {
		return decimal.Zero
	}
	two := decimal.NewFromInt(2)
	switch m.crop.Record().NminDepth {
	case models.Nmin30:
		return m.rec.Nmin30
	case models.Nmin60:
		return m.rec.Nmin30.Add(m.rec.Nmin60)
	case models.Nmin90:
		return m.rec.Nmin30.Add(m.rec.Nmin60).Add(m.rec.Nmin90.Div(two))
	}
	return decimal.Zero
}

// SecondCrop is the cultivation variant for second crops. It behaves like a
// main crop without the Nmin reduction.
type SecondCrop struct {
	cultivationBase
}

func (s *SecondCrop) Demand(negative bool) balance.Balance {
	return s.demandWithResidues(negative)
}

func (s *SecondCrop) ReductionNmin() decimal.Decimal {
	return decimal.Zero
}

// CatchCrop is the cultivation variant for catch crops. It carries a fixed
// nitrogen demand and contributes to successors through residues rather
// than yield.
type CatchCrop struct {
	cultivationBase
}

func (c *CatchCrop) Demand(negative bool) balance.Balance {
	n := catchCropNDemand
	if negative {
		n = n.Neg()
	}
	return balance.New(c.crop.Name(), n,
		decimal.Zero, decimal.Zero, decimal.Zero,
		decimal.Zero, decimal.Zero, decimal.Zero)
}

func (c *CatchCrop) ReductionNmin() decimal.Decimal {
	return decimal.Zero
}

// PreCropEffect of a catch crop additionally depends on how its residues
// were handled.
func (c *CatchCrop) PreCropEffect() decimal.Decimal {
	return c.gl.CatchCropEffect(c.crop.Record().CropType, c.rec.Residues)
}

// LegumeDelivery of a catch crop uses the catch-crop legume bands.
func (c *CatchCrop) LegumeDelivery() decimal.Decimal {
	if !c.crop.Feedable() {
		return decimal.Zero
	}
	return c.gl.LegumeDelivery("catch_crop", c.rec.LegumeRate)
}

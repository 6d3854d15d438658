// Package crops computes crop nutrient demands and wraps cultivations in
// their role-specific calculation variants.
package crops

import (
	"github.com/shopspring/decimal"

	"github.com/broxB/AgroPlan-sub000/internal/balance"
	"github.com/broxB/AgroPlan-sub000/internal/guidelines"
	"github.com/broxB/AgroPlan-sub000/internal/models"
)

// Crop wraps a static crop descriptor.
type Crop struct {
	rec models.Crop
	gl  *guidelines.Guidelines
}

// New wraps rec for demand calculations.
func New(rec models.Crop, gl *guidelines.Guidelines) *Crop {
	return &Crop{rec: rec, gl: gl}
}

// Name returns the crop name.
func (c *Crop) Name() string {
	return c.rec.Name
}

// Feedable reports whether the crop is used as feed. Feedable crops receive
// no Nmin reduction and route organic nitrogen credit as grassland.
func (c *Crop) Feedable() bool {
	return c.rec.Feedable
}

// Record returns the wrapped descriptor.
func (c *Crop) Record() models.Crop {
	return c.rec
}

// DemandCrop returns the primary-product nutrient demand for the realized
// yield and protein. Nitrogen follows the variable-yield correction: the
// target demand shifted by a slope per yield unit above or below the target
// yield and by the protein deviation.
func (c *Crop) DemandCrop(cropYield, cropProtein decimal.Decimal) balance.Balance {
	yieldDelta := cropYield.Sub(c.rec.TargetYield)
	slope := c.rec.PosYield
	if yieldDelta.IsNegative() {
		slope = c.rec.NegYield
	}
	n := c.rec.TargetDemand.
		Add(slope.Mul(yieldDelta)).
		Add(c.rec.VarProtein.Mul(cropProtein.Sub(c.rec.TargetProtein)))

	return balance.New("",
		n,
		c.rec.P2O5.Mul(cropYield),
		c.rec.K2O.Mul(cropYield),
		c.rec.MgO.Mul(cropYield),
		c.SDemand(),
		decimal.Zero,
		decimal.Zero,
	)
}

// DemandByproduct returns the nutrient demand of the harvested by-product,
// scaled by the by-product ratio of the primary yield.
func (c *Crop) DemandByproduct(cropYield decimal.Decimal) balance.Balance {
	amount := c.rec.ByproductRatio.Mul(cropYield)
	return balance.New("",
		decimal.Zero,
		c.rec.ByproductP2O5.Mul(amount),
		c.rec.ByproductK2O.Mul(amount),
		c.rec.ByproductMgO.Mul(amount),
		decimal.Zero,
		decimal.Zero,
		decimal.Zero,
	)
}

// SDemand returns the tabulated sulfur demand of the crop, zero when the
// crop is not listed.
func (c *Crop) SDemand() decimal.Decimal {
	return c.gl.SulfurNeed(c.rec.Name)
}

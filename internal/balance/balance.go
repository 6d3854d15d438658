package balance

import (
	"github.com/shopspring/decimal"

	"github.com/broxB/AgroPlan-sub000/internal/models"
)

// Balance is a named nutrient 7-tuple. Balances are value objects; all
// operations return new values except Accumulate.
type Balance struct {
	Title string
	N     decimal.Decimal
	P2O5  decimal.Decimal
	K2O   decimal.Decimal
	MgO   decimal.Decimal
	S     decimal.Decimal
	CaO   decimal.Decimal
	NH4   decimal.Decimal
}

// New builds a balance from its seven nutrient components.
func New(title string, n, p2o5, k2o, mgo, s, cao, nh4 decimal.Decimal) Balance {
	return Balance{Title: title, N: n, P2O5: p2o5, K2O: k2o, MgO: mgo, S: s, CaO: cao, NH4: nh4}
}

// Zero returns an empty balance with the given title.
func Zero(title string) Balance {
	return Balance{Title: title}
}

// Modifier returns a balance with exactly one nutrient set.
func Modifier(title string, nutrient models.NutrientType, amount decimal.Decimal) Balance {
	b := Balance{Title: title}
	switch nutrient {
	case models.NutrientN:
		b.N = amount
	case models.NutrientP2O5:
		b.P2O5 = amount
	case models.NutrientK2O:
		b.K2O = amount
	case models.NutrientMgO:
		b.MgO = amount
	case models.NutrientS:
		b.S = amount
	case models.NutrientCaO:
		b.CaO = amount
	case models.NutrientNH4:
		b.NH4 = amount
	}
	return b
}

// Add returns the componentwise sum. The title of the left operand wins.
func (b Balance) Add(o Balance) Balance {
	return Balance{
		Title: b.Title,
		N:     b.N.Add(o.N),
		P2O5:  b.P2O5.Add(o.P2O5),
		K2O:   b.K2O.Add(o.K2O),
		MgO:   b.MgO.Add(o.MgO),
		S:     b.S.Add(o.S),
		CaO:   b.CaO.Add(o.CaO),
		NH4:   b.NH4.Add(o.NH4),
	}
}

// Sub returns the componentwise difference. The title of the left operand wins.
func (b Balance) Sub(o Balance) Balance {
	return Balance{
		Title: b.Title,
		N:     b.N.Sub(o.N),
		P2O5:  b.P2O5.Sub(o.P2O5),
		K2O:   b.K2O.Sub(o.K2O),
		MgO:   b.MgO.Sub(o.MgO),
		S:     b.S.Sub(o.S),
		CaO:   b.CaO.Sub(o.CaO),
		NH4:   b.NH4.Sub(o.NH4),
	}
}

// AddScalar adds k to all seven nutrients.
func (b Balance) AddScalar(k decimal.Decimal) Balance {
	return Balance{
		Title: b.Title,
		N:     b.N.Add(k),
		P2O5:  b.P2O5.Add(k),
		K2O:   b.K2O.Add(k),
		MgO:   b.MgO.Add(k),
		S:     b.S.Add(k),
		CaO:   b.CaO.Add(k),
		NH4:   b.NH4.Add(k),
	}
}

// SubScalar subtracts k from all seven nutrients.
func (b Balance) SubScalar(k decimal.Decimal) Balance {
	return b.AddScalar(k.Neg())
}

// MulScalar scales all seven nutrients by k.
func (b Balance) MulScalar(k decimal.Decimal) Balance {
	return Balance{
		Title: b.Title,
		N:     b.N.Mul(k),
		P2O5:  b.P2O5.Mul(k),
		K2O:   b.K2O.Mul(k),
		MgO:   b.MgO.Mul(k),
		S:     b.S.Mul(k),
		CaO:   b.CaO.Mul(k),
		NH4:   b.NH4.Mul(k),
	}
}

// Neg negates all seven nutrients.
func (b Balance) Neg() Balance {
	return b.MulScalar(decimal.NewFromInt(-1))
}

// Accumulate adds o into b in place.
func (b *Balance) Accumulate(o Balance) {
	*b = b.Add(o)
}

// IsEmpty reports whether all seven nutrients are zero.
func (b Balance) IsEmpty() bool {
	return b.N.IsZero() && b.P2O5.IsZero() && b.K2O.IsZero() && b.MgO.IsZero() &&
		b.S.IsZero() && b.CaO.IsZero() && b.NH4.IsZero()
}

// Equal reports componentwise equality, ignoring titles.
func (b Balance) Equal(o Balance) bool {
	return b.N.Equal(o.N) && b.P2O5.Equal(o.P2O5) && b.K2O.Equal(o.K2O) &&
		b.MgO.Equal(o.MgO) && b.S.Equal(o.S) && b.CaO.Equal(o.CaO) && b.NH4.Equal(o.NH4)
}

// Nutrient returns the component named by nutrient.
func (b Balance) Nutrient(nutrient models.NutrientType) decimal.Decimal {
	switch nutrient {
	case models.NutrientN:
		return b.N
	case models.NutrientP2O5:
		return b.P2O5
	case models.NutrientK2O:
		return b.K2O
	case models.NutrientMgO:
		return b.MgO
	case models.NutrientS:
		return b.S
	case models.NutrientCaO:
		return b.CaO
	case models.NutrientNH4:
		return b.NH4
	}
	return decimal.Zero
}

// Round returns the balance with all components rounded for display.
func (b Balance) Round(places int32) Balance {
	return Balance{
		Title: b.Title,
		N:     RoundToNearest(b.N, places),
		P2O5:  RoundToNearest(b.P2O5, places),
		K2O:   RoundToNearest(b.K2O, places),
		MgO:   RoundToNearest(b.MgO, places),
		S:     RoundToNearest(b.S, places),
		CaO:   RoundToNearest(b.CaO, places),
		NH4:   RoundToNearest(b.NH4, places),
	}
}

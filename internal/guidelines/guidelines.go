// Package guidelines provides the static agronomic lookup tables backing the
// nutrient-balance engine. Tables live as JSON files in a directory, one file
// per table name, and are memoized process-wide on first access. Missing
// files, keys or malformed entries yield zero contributions rather than
// errors.
package guidelines

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/broxB/AgroPlan-sub000/internal/models"
)

// Table names recognized under the guidelines directory.
const (
	TableP2O5Reductions = "p2o5_reductions"
	TableK2OReductions  = "k2o_reductions"
	TableMgReductions   = "mg_reductions"
	TableCaOReductions  = "cao_reductions"
	TableSReductions    = "s_reductions"
	TableSoilReductions = "soil_reductions"
	TableP2O5Classes    = "p2o5_classes"
	TableK2OClasses     = "k2o_classes"
	TableMgClasses      = "mg_classes"
	TablePhClasses      = "ph_classes"
	TableOrgFactors     = "org_factor"
	TablePreCropEffects = "pre_crop_effect"
	TableLegumeDelivery = "legume_delivery"
	TableSulfurNeeds    = "sulfur_needs"
)

// classLetters orders the content classes from poor to rich. A value above
// the last tabulated threshold falls into class E.
var classLetters = []string{"A", "B", "C", "D"}

// node is one parsed table entry: either a scalar decimal or a nested map.
type node struct {
	scalar   bool
	value    decimal.Decimal
	children map[string]node
}

func (n *node) UnmarshalJSON(data []byte) error {
	var nested map[string]node
	if err := json.Unmarshal(data, &nested); err == nil {
		n.children = nested
		return nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	n.scalar = true
	n.value = d
	return nil
}

// lookup descends by key, falling back to a "default" sibling when the key
// is absent. The boolean reports whether a node was found.
func (n node) lookup(key string) (node, bool) {
	if n.children == nil {
		return node{}, false
	}
	if child, ok := n.children[key]; ok {
		return child, true
	}
	if child, ok := n.children["default"]; ok {
		return child, true
	}
	return node{}, false
}

// Guidelines is a process-wide immutable read-through cache over the table
// directory. The zero value is unusable; construct with New.
type Guidelines struct {
	dir string

	mu     sync.RWMutex
	tables map[string]node
}

// New returns a guidelines provider reading tables from dir.
func New(dir string) *Guidelines {
	return &Guidelines{dir: dir, tables: make(map[string]node)}
}

var (
	defaultOnce sync.Once
	defaultGl   *Guidelines
)

// Default returns the shared provider rooted at the given directory. The
// first caller fixes the directory for the process lifetime.
func Default(dir string) *Guidelines {
	defaultOnce.Do(func() {
		defaultGl = New(dir)
	})
	return defaultGl
}

// table loads and memoizes one table by name. A missing or unreadable file
// caches as an empty table.
func (g *Guidelines) table(name string) node {
	g.mu.RLock()
	t, ok := g.tables[name]
	g.mu.RUnlock()
	if ok {
		return t
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if t, ok := g.tables[name]; ok {
		return t
	}

	var root node
	if data, err := os.ReadFile(filepath.Join(g.dir, name+".json")); err == nil {
		if err := json.Unmarshal(data, &root); err != nil {
			root = node{}
		}
	}
	g.tables[name] = root
	return root
}

// value walks the table by the given keys and returns the scalar found, or
// zero when any step misses.
func (g *Guidelines) value(table string, keys ...string) decimal.Decimal {
	n := g.table(table)
	for _, key := range keys {
		child, ok := n.lookup(key)
		if !ok {
			return decimal.Zero
		}
		n = child
	}
	if !n.scalar {
		return decimal.Zero
	}
	return n.value
}

// classify resolves the content class letter for a measured value using the
// threshold record at the given keys. Classes A..D are upper bounds; values
// above the D bound are class E. An empty record yields "".
func (g *Guidelines) classify(table string, value decimal.Decimal, keys ...string) string {
	n := g.table(table)
	for _, key := range keys {
		child, ok := n.lookup(key)
		if !ok {
			return ""
		}
		n = child
	}
	if n.children == nil {
		return ""
	}
	for _, letter := range classLetters {
		bound, ok := n.children[letter]
		if !ok || !bound.scalar {
			return ""
		}
		if value.LessThanOrEqual(bound.value) {
			return letter
		}
	}
	return "E"
}

// NutrientReduction returns the reduction value for a base nutrient, keyed
// by soil type and content class.
func (g *Guidelines) NutrientReduction(table string, soil models.SoilType, class string) decimal.Decimal {
	if class == "" {
		return decimal.Zero
	}
	return g.value(table, string(soil), class)
}

// SoilReductionN returns the baseline nitrogen reduction of a field type.
func (g *Guidelines) SoilReductionN(fieldType models.FieldType) decimal.Decimal {
	return g.value(TableSoilReductions, string(fieldType), string(models.NutrientN))
}

// ContentClass resolves the class letter A..E of a measured value for the
// nutrient class table, parameterized by field, soil and humus type.
func (g *Guidelines) ContentClass(table string, fieldType models.FieldType, soil models.SoilType, humus models.HumusType, value decimal.Decimal) string {
	return g.classify(table, value, string(fieldType), string(soil), string(humus))
}

// OptimalPh returns the tabulated optimal pH for the soil, or zero when the
// combination is not tabulated.
func (g *Guidelines) OptimalPh(fieldType models.FieldType, soil models.SoilType, humus models.HumusType) decimal.Decimal {
	return g.value(TablePhClasses, string(fieldType), string(soil), string(humus), "optimal")
}

// OrgFactor bundles the effectiveness factors of an organic fertilizer type.
type OrgFactor struct {
	StorageLoss     decimal.Decimal
	CroplandFactor  decimal.Decimal
	GrasslandFactor decimal.Decimal
	LimeFactor      decimal.Decimal
}

// OrgFactors returns the effectiveness factors for an organic fertilizer
// type. Unknown types yield all-zero factors.
func (g *Guidelines) OrgFactors(fertType models.FertType) OrgFactor {
	key := string(fertType)
	return OrgFactor{
		StorageLoss:     g.value(TableOrgFactors, key, "storage_loss"),
		CroplandFactor:  g.value(TableOrgFactors, key, "cropland_factor"),
		GrasslandFactor: g.value(TableOrgFactors, key, "grassland_factor"),
		LimeFactor:      g.value(TableOrgFactors, key, "lime_factor"),
	}
}

// PreCropEffect returns the nitrogen credit granted by a main or second
// crop predecessor of the given agronomic group.
func (g *Guidelines) PreCropEffect(cropType string) decimal.Decimal {
	return g.value(TablePreCropEffects, cropType)
}

// CatchCropEffect returns the nitrogen credit of a catch-crop predecessor,
// which additionally depends on residue handling.
func (g *Guidelines) CatchCropEffect(cropType string, residues models.ResidueType) decimal.Decimal {
	return g.value(TablePreCropEffects, cropType, string(residues))
}

// LegumeDelivery returns the tabulated delivery for a group and legume band.
func (g *Guidelines) LegumeDelivery(group string, rate models.LegumeType) decimal.Decimal {
	return g.value(TableLegumeDelivery, group, string(rate))
}

// LegumeConstant returns a scalar legume delivery for groups that do not
// branch on the legume band (pure alfalfa, pure clover).
func (g *Guidelines) LegumeConstant(group string) decimal.Decimal {
	return g.value(TableLegumeDelivery, group)
}

// SulfurNeed returns the sulfur demand of a crop by name, zero when the
// crop is not tabulated.
func (g *Guidelines) SulfurNeed(cropName string) decimal.Decimal {
	return g.value(TableSulfurNeeds, cropName)
}

// SulfurDelivery returns the soil sulfur supply for a humus band and the
// nitrogen-dependent mineralization factor.
func (g *Guidelines) SulfurDelivery(humus models.HumusType) (decimal.Decimal, decimal.Decimal) {
	return g.value(TableSReductions, string(humus)), g.value(TableSReductions, "n_factor")
}

// CaOPerPh returns the lime demand per full pH unit below optimum for a
// soil type.
func (g *Guidelines) CaOPerPh(soil models.SoilType) decimal.Decimal {
	return g.value(TableCaOReductions, string(soil))
}

// CaOPreservation returns the fixed preservation liming offset.
func (g *Guidelines) CaOPreservation() decimal.Decimal {
	return g.value(TableCaOReductions, "preservation")
}

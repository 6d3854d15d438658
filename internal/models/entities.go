package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Principal is the owner of all mutable planning data.
type Principal struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Principal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BaseField is a geographic parcel, persistent across planning years.
// Prefix and suffix are unique within one owner.
type BaseField struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PrincipalID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_base_field_number,priority:1" json:"principal_id"`
	Prefix      int       `gorm:"not null;uniqueIndex:idx_base_field_number,priority:2" json:"prefix"`
	Suffix      int       `gorm:"not null;uniqueIndex:idx_base_field_number,priority:3" json:"suffix"`
	Name        string    `gorm:"not null" json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	SoilSamples []SoilSample `gorm:"foreignKey:BaseFieldID;constraint:OnDelete:CASCADE" json:"soil_samples,omitempty"`
	Fields      []Field      `gorm:"foreignKey:BaseFieldID;constraint:OnDelete:CASCADE" json:"fields,omitempty"`
}

func (b *BaseField) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Field is a parcel restricted to one planning year. It owns that year's
// cultivations, fertilizations and modifiers.
type Field struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BaseFieldID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_field_year,priority:1" json:"base_field_id"`
	SubSuffix   int             `gorm:"not null;default:0;uniqueIndex:idx_field_year,priority:2" json:"sub_suffix"`
	Year        int             `gorm:"not null;uniqueIndex:idx_field_year,priority:3" json:"year"`
	Area        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"area"`
	RedRegion   bool            `gorm:"not null;default:false" json:"red_region"`
	FieldType   FieldType       `gorm:"not null" json:"field_type"`
	DemandP2O5  DemandType      `gorm:"not null;default:'demand'" json:"demand_p2o5"`
	DemandK2O   DemandType      `gorm:"not null;default:'demand'" json:"demand_k2o"`
	DemandMgO   DemandType      `gorm:"not null;default:'demand'" json:"demand_mgo"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	BaseField      BaseField       `gorm:"foreignKey:BaseFieldID" json:"base_field,omitempty"`
	Cultivations   []Cultivation   `gorm:"foreignKey:FieldID;constraint:OnDelete:CASCADE" json:"cultivations,omitempty"`
	Fertilizations []Fertilization `gorm:"foreignKey:FieldID;constraint:OnDelete:CASCADE" json:"fertilizations,omitempty"`
	Modifiers      []Modifier      `gorm:"foreignKey:FieldID;constraint:OnDelete:CASCADE" json:"modifiers,omitempty"`
}

func (f *Field) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// SoilSample is one laboratory measurement of a parcel. Samples persist
// across years; the sample in effect for a planning year is the latest one
// with year <= planning year. Measured values may be absent.
type SoilSample struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	BaseFieldID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_soil_sample_year,priority:1" json:"base_field_id"`
	Year        int              `gorm:"not null;uniqueIndex:idx_soil_sample_year,priority:2" json:"year"`
	PH          *decimal.Decimal `gorm:"type:decimal(4,2)" json:"ph,omitempty"`
	P2O5        *decimal.Decimal `gorm:"type:decimal(10,2)" json:"p2o5,omitempty"`
	K2O         *decimal.Decimal `gorm:"type:decimal(10,2)" json:"k2o,omitempty"`
	Mg          *decimal.Decimal `gorm:"type:decimal(10,2)" json:"mg,omitempty"`
	SoilType    SoilType         `gorm:"not null" json:"soil_type"`
	HumusType   HumusType        `gorm:"not null" json:"humus_type"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (s *SoilSample) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Crop is a static crop descriptor. Name is unique per owner.
type Crop struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PrincipalID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_crop_name,priority:1" json:"principal_id"`
	Name        string    `gorm:"not null;uniqueIndex:idx_crop_name,priority:2" json:"name"`
	FieldType   FieldType `gorm:"not null" json:"field_type"`
	CropClass   CropClass `gorm:"not null" json:"crop_class"`
	// CropType is the agronomic group keying the preceding-crop effect table.
	CropType  string   `gorm:"not null" json:"crop_type"`
	Kind      string   `json:"kind"`
	Feedable  bool     `gorm:"not null;default:false" json:"feedable"`
	Residue   bool     `gorm:"not null;default:false" json:"residue"`
	NminDepth NminType `gorm:"not null;default:'nmin_0'" json:"nmin_depth"`

	TargetDemand  decimal.Decimal `gorm:"type:decimal(10,2)" json:"target_demand"`
	TargetYield   decimal.Decimal `gorm:"type:decimal(10,2)" json:"target_yield"`
	PosYield      decimal.Decimal `gorm:"type:decimal(10,4)" json:"pos_yield"`
	NegYield      decimal.Decimal `gorm:"type:decimal(10,4)" json:"neg_yield"`
	TargetProtein decimal.Decimal `gorm:"type:decimal(10,2)" json:"target_protein"`
	VarProtein    decimal.Decimal `gorm:"type:decimal(10,4)" json:"var_protein"`

	P2O5 decimal.Decimal `gorm:"type:decimal(10,4)" json:"p2o5"`
	K2O  decimal.Decimal `gorm:"type:decimal(10,4)" json:"k2o"`
	MgO  decimal.Decimal `gorm:"type:decimal(10,4)" json:"mgo"`

	ByproductName  string          `json:"byproduct_name"`
	ByproductRatio decimal.Decimal `gorm:"type:decimal(10,4)" json:"byproduct_ratio"`
	ByproductP2O5  decimal.Decimal `gorm:"type:decimal(10,4)" json:"byproduct_p2o5"`
	ByproductK2O   decimal.Decimal `gorm:"type:decimal(10,4)" json:"byproduct_k2o"`
	ByproductMgO   decimal.Decimal `gorm:"type:decimal(10,4)" json:"byproduct_mgo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Crop) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Cultivation is a crop grown on a field in one of four roles. The role is
// unique per field.
type Cultivation struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	FieldID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cultivation_role,priority:1" json:"field_id"`
	CultivationType CultivationType `gorm:"not null;uniqueIndex:idx_cultivation_role,priority:2" json:"cultivation_type"`
	CropID          uuid.UUID       `gorm:"type:uuid;not null" json:"crop_id"`
	CropYield       decimal.Decimal `gorm:"type:decimal(10,2)" json:"crop_yield"`
	CropProtein     decimal.Decimal `gorm:"type:decimal(10,2)" json:"crop_protein"`
	Residues        ResidueType     `gorm:"not null;default:'none'" json:"residues"`
	LegumeRate      LegumeType      `gorm:"not null;default:'none'" json:"legume_rate"`
	Nmin30          decimal.Decimal `gorm:"type:decimal(10,2)" json:"nmin_30"`
	Nmin60          decimal.Decimal `gorm:"type:decimal(10,2)" json:"nmin_60"`
	Nmin90          decimal.Decimal `gorm:"type:decimal(10,2)" json:"nmin_90"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Crop Crop `gorm:"foreignKey:CropID" json:"crop,omitempty"`
}

func (c *Cultivation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Fertilizer is a fertilizer descriptor with its nutrient composition per
// unit. Organic fertilizers are unique per (owner, name, year); mineral ones
// per (owner, name) ignoring year. The store boundary enforces this.
type Fertilizer struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PrincipalID uuid.UUID       `gorm:"type:uuid;not null;index:idx_fertilizer_name" json:"principal_id"`
	Name        string          `gorm:"not null;index:idx_fertilizer_name" json:"name"`
	Year        int             `gorm:"not null;default:0" json:"year"`
	FertClass   FertClass       `gorm:"not null" json:"fert_class"`
	FertType    FertType        `gorm:"not null" json:"fert_type"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	N           decimal.Decimal `gorm:"type:decimal(10,4)" json:"n"`
	P2O5        decimal.Decimal `gorm:"type:decimal(10,4)" json:"p2o5"`
	K2O         decimal.Decimal `gorm:"type:decimal(10,4)" json:"k2o"`
	MgO         decimal.Decimal `gorm:"type:decimal(10,4)" json:"mgo"`
	S           decimal.Decimal `gorm:"type:decimal(10,4)" json:"s"`
	CaO         decimal.Decimal `gorm:"type:decimal(10,4)" json:"cao"`
	NH4         decimal.Decimal `gorm:"type:decimal(10,4)" json:"nh4"`
	Active      bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (f *Fertilizer) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Fertilization is one application event of a fertilizer to a cultivation.
type Fertilization struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	FieldID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"field_id"`
	CultivationID uuid.UUID       `gorm:"type:uuid;not null" json:"cultivation_id"`
	FertilizerID  uuid.UUID       `gorm:"type:uuid;not null" json:"fertilizer_id"`
	Measure       MeasureType     `gorm:"not null" json:"measure"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Month         int             `json:"month"`
	CutTiming     string          `json:"cut_timing"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Cultivation Cultivation `gorm:"foreignKey:CultivationID" json:"cultivation,omitempty"`
	Fertilizer  Fertilizer  `gorm:"foreignKey:FertilizerID" json:"fertilizer,omitempty"`
}

func (f *Fertilization) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Modifier is a free-form per-field adjustment on a single nutrient axis.
// Amounts are bounded to 1000 kg/ha in either direction.
type Modifier struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	FieldID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"field_id"`
	Description  string       `gorm:"not null" json:"description"`
	Modification NutrientType `gorm:"not null" json:"modification"`
	Amount       int          `gorm:"not null" json:"amount"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (m *Modifier) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// SavedReport stores a named fertilization list filter for reuse.
type SavedReport struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PrincipalID uuid.UUID      `gorm:"type:uuid;not null;index" json:"principal_id"`
	Name        string         `gorm:"not null" json:"name"`
	Filter      datatypes.JSON `json:"filter"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (r *SavedReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// All lists every entity for migration.
func All() []interface{} {
	return []interface{}{
		&Principal{}, &BaseField{}, &Field{}, &SoilSample{}, &Crop{},
		&Cultivation{}, &Fertilizer{}, &Fertilization{}, &Modifier{},
		&SavedReport{},
	}
}

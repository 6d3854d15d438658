package models

import "strconv"

// FieldType classifies how a parcel is used in a planning year.
type FieldType string

const (
	FieldTypeGrassland       FieldType = "grassland"
	FieldTypeCropland        FieldType = "cropland"
	FieldTypeExchangedLand   FieldType = "exchanged_land"
	FieldTypeFallowGrassland FieldType = "fallow_grassland"
	FieldTypeFallowCropland  FieldType = "fallow_cropland"
)

// IsFallow reports whether no legal nitrogen credit applies to the field.
func (f FieldType) IsFallow() bool {
	return f == FieldTypeFallowGrassland || f == FieldTypeFallowCropland || f == FieldTypeExchangedLand
}

// SoilType is the granulometric soil group of a soil sample.
type SoilType string

const (
	SoilTypeSand             SoilType = "sand"
	SoilTypeLightLoamySand   SoilType = "light_loamy_sand"
	SoilTypeStrongLoamySand  SoilType = "strong_loamy_sand"
	SoilTypeSandyToSiltyLoam SoilType = "sandy_to_silty_loam"
	SoilTypeClayeyLoamToClay SoilType = "clayey_loam_to_clay"
	SoilTypeMoor             SoilType = "moor"
)

// HumusType is the humus content band of a soil sample.
type HumusType string

const (
	HumusTypeLess4  HumusType = "less_4"
	HumusTypeLess8  HumusType = "less_8"
	HumusTypeLess15 HumusType = "less_15"
	HumusTypeLess30 HumusType = "less_30"
	HumusTypeMore30 HumusType = "more_30"
)

// CropClass is the storage-level classification of a crop.
type CropClass string

const (
	CropClassMainCrop   CropClass = "main_crop"
	CropClassSecondCrop CropClass = "second_crop"
	CropClassCatchCrop  CropClass = "catch_crop"
)

// CultivationType is the role a crop plays on a field within one year.
type CultivationType string

const (
	CultivationMainCrop       CultivationType = "main_crop"
	CultivationSecondMainCrop CultivationType = "second_main_crop"
	CultivationSecondCrop     CultivationType = "second_crop"
	CultivationCatchCrop      CultivationType = "catch_crop"
)

// FertClass separates organic from mineral fertilizers.
type FertClass string

const (
	FertClassOrganic FertClass = "organic"
	FertClassMineral FertClass = "mineral"
)

// FertType is the product group of a fertilizer. Organic types carry the
// org_ prefix and map into the organic effectiveness factor table.
type FertType string

const (
	FertTypeOrgDigestate FertType = "org_digestate"
	FertTypeOrgSlurry    FertType = "org_slurry"
	FertTypeOrgManure    FertType = "org_manure"
	FertTypeOrgDryManure FertType = "org_dry_manure"
	FertTypeOrgCompost   FertType = "org_compost"
	FertTypeK            FertType = "k"
	FertTypeN            FertType = "n"
	FertTypeNK           FertType = "n_k"
	FertTypeNP           FertType = "n_p"
	FertTypeNS           FertType = "n_s"
	FertTypeNPK          FertType = "n_p_k"
	FertTypeNPKS         FertType = "n_p_k_s"
	FertTypeP            FertType = "p"
	FertTypePK           FertType = "p_k"
	FertTypeLime         FertType = "lime"
	FertTypeMisc         FertType = "misc"
	FertTypeAuxiliary    FertType = "auxiliary"
)

// MeasureType is the agronomic application event of a fertilization.
type MeasureType string

const (
	MeasureOrgFall          MeasureType = "org_fall"
	MeasureOrgSpring        MeasureType = "org_spring"
	MeasureFirstNFert       MeasureType = "first_n_fert"
	MeasureFirstFirstNFert  MeasureType = "first_first_n_fert"
	MeasureFirstSecondNFert MeasureType = "first_second_n_fert"
	MeasureSecondNFert      MeasureType = "second_n_fert"
	MeasureThirdNFert       MeasureType = "third_n_fert"
	MeasureFourthNFert      MeasureType = "fourth_n_fert"
	MeasureFirstBaseFert    MeasureType = "first_base_fert"
	MeasureSecondBaseFert   MeasureType = "second_base_fert"
	MeasureThirdBaseFert    MeasureType = "third_base_fert"
	MeasureFourthBaseFert   MeasureType = "fourth_base_fert"
	MeasureLimeFert         MeasureType = "lime_fert"
	MeasureMiscFert         MeasureType = "misc_fert"
)

// measureOrder fixes the total order used for report sorting:
// fall, spring, numbered N doses, base doses, lime, misc.
var measureOrder = map[MeasureType]int{
	MeasureOrgFall:          0,
	MeasureOrgSpring:        1,
	MeasureFirstNFert:       2,
	MeasureFirstFirstNFert:  3,
	MeasureFirstSecondNFert: 4,
	MeasureSecondNFert:      5,
	MeasureThirdNFert:       6,
	MeasureFourthNFert:      7,
	MeasureFirstBaseFert:    8,
	MeasureSecondBaseFert:   9,
	MeasureThirdBaseFert:    10,
	MeasureFourthBaseFert:   11,
	MeasureLimeFert:         12,
	MeasureMiscFert:         13,
}

// Order returns the sorting rank of the measure. Unknown measures sort last.
func (m MeasureType) Order() int {
	if o, ok := measureOrder[m]; ok {
		return o
	}
	return len(measureOrder)
}

// IsOrganic reports whether the measure belongs to an organic application.
func (m MeasureType) IsOrganic() bool {
	return m == MeasureOrgFall || m == MeasureOrgSpring
}

// IsMineral reports whether the measure belongs to a mineral application.
// Mineral measures are unique per cultivation.
func (m MeasureType) IsMineral() bool {
	_, known := measureOrder[m]
	return known && !m.IsOrganic()
}

// NminType is the soil nitrogen sampling depth of a crop.
type NminType string

const (
	Nmin0  NminType = "nmin_0"
	Nmin30 NminType = "nmin_30"
	Nmin60 NminType = "nmin_60"
	Nmin90 NminType = "nmin_90"
)

// Depth returns the sampling depth in centimeters.
func (n NminType) Depth() int {
	switch n {
	case Nmin30:
		return 30
	case Nmin60:
		return 60
	case Nmin90:
		return 90
	}
	return 0
}

// NutrientType names one axis of a nutrient balance.
type NutrientType string

const (
	NutrientN    NutrientType = "n"
	NutrientP2O5 NutrientType = "p2o5"
	NutrientK2O  NutrientType = "k2o"
	NutrientMgO  NutrientType = "mgo"
	NutrientS    NutrientType = "s"
	NutrientCaO  NutrientType = "cao"
	NutrientNH4  NutrientType = "nh4"
)

// Nutrients lists all balance axes in canonical order.
var Nutrients = []NutrientType{
	NutrientN, NutrientP2O5, NutrientK2O, NutrientMgO,
	NutrientS, NutrientCaO, NutrientNH4,
}

// ResidueType describes how crop residues were handled.
type ResidueType string

const (
	ResidueMainStayed           ResidueType = "main_stayed"
	ResidueMainRemoved          ResidueType = "main_removed"
	ResidueMainNoResidues       ResidueType = "main_no_residues"
	ResidueCatchFrozen          ResidueType = "catch_frozen"
	ResidueCatchNotFrozenFall   ResidueType = "catch_not_frozen_fall"
	ResidueCatchNotFrozenSpring ResidueType = "catch_not_frozen_spring"
	ResidueCatchUsed            ResidueType = "catch_used"
	ResidueNone                 ResidueType = "none"
)

// LegumeType is the legume share band of a cultivation.
type LegumeType string

const (
	LegumeGrassLess5     LegumeType = "grass_less_5"
	LegumeGrassLess10    LegumeType = "grass_less_10"
	LegumeGrassLess20    LegumeType = "grass_less_20"
	LegumeGrassGreater20 LegumeType = "grass_greater_20"
	LegumeMainCrop0      LegumeType = "main_crop_0"
	LegumeMainCrop10     LegumeType = "main_crop_10"
	LegumeMainCrop20     LegumeType = "main_crop_20"
	LegumeMainCrop30     LegumeType = "main_crop_30"
	LegumeMainCrop40     LegumeType = "main_crop_40"
	LegumeMainCrop50     LegumeType = "main_crop_50"
	LegumeMainCrop60     LegumeType = "main_crop_60"
	LegumeMainCrop70     LegumeType = "main_crop_70"
	LegumeMainCrop80     LegumeType = "main_crop_80"
	LegumeMainCrop90     LegumeType = "main_crop_90"
	LegumeMainCrop100    LegumeType = "main_crop_100"
	LegumeCatch25        LegumeType = "catch_25"
	LegumeCatch50        LegumeType = "catch_50"
	LegumeCatch75        LegumeType = "catch_75"
	LegumeNone           LegumeType = "none"
)

// MainCropRate returns the numeric legume share of a main_crop_NN member
// and whether the member carries one.
func (l LegumeType) MainCropRate() (int, bool) {
	const prefix = "main_crop_"
	s := string(l)
	if len(s) <= len(prefix) || s[:len(prefix)] != prefix {
		return 0, false
	}
	rate, err := strconv.Atoi(s[len(prefix):])
	if err != nil {
		return 0, false
	}
	return rate, true
}

// DemandType selects between removal-based and demand-based accounting
// for the base nutrients of a field.
type DemandType string

const (
	DemandRemoval DemandType = "removal"
	DemandDemand  DemandType = "demand"
)

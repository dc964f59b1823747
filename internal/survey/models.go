package survey

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Reach length choices. ReachOther unlocks ReachLengthCustom.
const (
	Reach50m   = "50m"
	Reach100m  = "100m"
	Reach150m  = "150m"
	Reach200m  = "200m"
	Reach500m  = "500m"
	Reach750m  = "750m"
	ReachOther = "other"
)

// ReachLengthChoice is one option of the reach length select.
type ReachLengthChoice struct {
	Value string
	Label string
}

var ReachLengthChoices = []ReachLengthChoice{
	{Reach50m, "50m"},
	{Reach100m, "100m"},
	{Reach150m, "150m"},
	{Reach200m, "200m"},
	{Reach500m, "500m"},
	{Reach750m, "750m"},
	{ReachOther, "Other"},
}

// SurveyRecord is one submitted CQHEI survey.
type SurveyRecord struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Basic information
	SurveyDate      datatypes.Date  `gorm:"not null" json:"survey_date"`
	RiverCode       string          `gorm:"size:50;not null" json:"river_code"`
	RiverMile       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"river_mile"`
	Clarity         string          `gorm:"size:100;not null;default:''" json:"clarity"`
	ForestUleNumber string          `gorm:"size:50;not null;default:''" json:"forest_ule_number"`
	ClusterNumber   string          `gorm:"size:50;not null;default:''" json:"cluster_number"`
	RiverSite       string          `gorm:"size:200;not null" json:"river_site"`
	NameGroup       string          `gorm:"size:200;not null" json:"name_group"`

	// Reach
	ReachLength       string `gorm:"size:20;not null" json:"reach_length"`
	ReachLengthCustom string `gorm:"size:100;not null;default:''" json:"reach_length_custom"`

	Flags `gorm:"embedded"`

	CreatedAt time.Time `json:"created_at"`
}

func (r SurveyRecord) String() string {
	return fmt.Sprintf("CQHEI Survey - %s (%s)", r.RiverSite, time.Time(r.SurveyDate).Format("2006-01-02"))
}

// Flags holds every checkbox on the form. Column names follow the form
// field names.
type Flags struct {
	// Section I
	SubstrateMostlyLarge      bool `gorm:"not null;default:false"`
	SubstrateMostlyMedium     bool `gorm:"not null;default:false"`
	SubstrateMostlySmall      bool `gorm:"not null;default:false"`
	SubstrateDominatedBedrock bool `gorm:"not null;default:false"`
	SubstrateMostlyVeryFine   bool `gorm:"not null;default:false"`

	SmotheringNo  bool `gorm:"not null;default:false"`
	SmotheringYes bool `gorm:"not null;default:false"`

	SiltingNo  bool `gorm:"not null;default:false"`
	SiltingYes bool `gorm:"not null;default:false"`

	// Section II, independent cover indicators
	CoverUnderwaterTreeRootsLarge bool `gorm:"not null;default:false"`
	CoverUnderwaterTreeRootlets   bool `gorm:"not null;default:false"`
	CoverBoulders                 bool `gorm:"not null;default:false"`
	CoverBackwaters               bool `gorm:"not null;default:false"`
	CoverDownedTrees              bool `gorm:"not null;default:false"`
	CoverDeepAreas                bool `gorm:"not null;default:false"`
	CoverUndercutBanks            bool `gorm:"not null;default:false"`
	CoverWaterPlants              bool `gorm:"not null;default:false"`
	CoverShallowSlowAreas         bool `gorm:"not null;default:false"`
	CoverShrubsSmallTrees         bool `gorm:"not null;default:false"`

	// Section III
	CurvinessTwoPlusGoodBends bool `gorm:"not null;default:false"`
	CurvinessOneTwoGoodBends  bool `gorm:"not null;default:false"`
	CurvinessMostlyStraight   bool `gorm:"not null;default:false"`
	CurvinessVeryStraight     bool `gorm:"not null;default:false"`

	NaturalMostlyNatural bool `gorm:"not null;default:false"`
	NaturalMinorChanges  bool `gorm:"not null;default:false"`
	NaturalManyChanges   bool `gorm:"not null;default:false"`
	NaturalHeavyChanges  bool `gorm:"not null;default:false"`

	// Section IV
	WidthWide   bool `gorm:"not null;default:false"`
	WidthNarrow bool `gorm:"not null;default:false"`
	WidthNone   bool `gorm:"not null;default:false"`

	LanduseForestWetland       bool `gorm:"not null;default:false"`
	LanduseShrubs              bool `gorm:"not null;default:false"`
	LanduseOvergrownFields     bool `gorm:"not null;default:false"`
	LanduseFencedPasture       bool `gorm:"not null;default:false"`
	LandusePark                bool `gorm:"not null;default:false"`
	LanduseConservationTillage bool `gorm:"not null;default:false"`

	ErosionUrbanIndustrial bool `gorm:"not null;default:false"`
	ErosionOpenPasture     bool `gorm:"not null;default:false"`
	ErosionSuburbanRowcrop bool `gorm:"not null;default:false"`
	ErosionRawCollapsing   bool `gorm:"not null;default:false"`

	ShadingMostly bool `gorm:"not null;default:false"`
	ShadingPartly bool `gorm:"not null;default:false"`
	ShadingNone   bool `gorm:"not null;default:false"`

	// Section V
	DepthChestDeep bool `gorm:"not null;default:false"`
	DepthWaistDeep bool `gorm:"not null;default:false"`
	DepthKneeDeep  bool `gorm:"not null;default:false"`
	DepthAnkleDeep bool `gorm:"not null;default:false"`

	// Not single-choice
	FlowVeryFast bool `gorm:"not null;default:false"`
	FlowFast     bool `gorm:"not null;default:false"`
	FlowModerate bool `gorm:"not null;default:false"`
	FlowSlow     bool `gorm:"not null;default:false"`
	FlowNone     bool `gorm:"not null;default:false"`

	// Section VI
	RifflesKneeDeepFast     bool `gorm:"not null;default:false"`
	RifflesAnkleCalfFast    bool `gorm:"not null;default:false"`
	RifflesAnkleShallowSlow bool `gorm:"not null;default:false"`
	RifflesNone             bool `gorm:"not null;default:false"`

	SubstrateFistSize          bool `gorm:"not null;default:false"`
	SubstrateSmallerFist       bool `gorm:"not null;default:false"`
	SubstrateSmallerFingernail bool `gorm:"not null;default:false"`
}

// byName maps form field names onto the flag storage.
func (f *Flags) byName() map[string]*bool {
	return map[string]*bool{
		"substrate_mostly_large":      &f.SubstrateMostlyLarge,
		"substrate_mostly_medium":     &f.SubstrateMostlyMedium,
		"substrate_mostly_small":      &f.SubstrateMostlySmall,
		"substrate_dominated_bedrock": &f.SubstrateDominatedBedrock,
		"substrate_mostly_very_fine":  &f.SubstrateMostlyVeryFine,
		"smothering_no":               &f.SmotheringNo,
		"smothering_yes":              &f.SmotheringYes,
		"silting_no":                  &f.SiltingNo,
		"silting_yes":                 &f.SiltingYes,

		"cover_underwater_tree_roots_large": &f.CoverUnderwaterTreeRootsLarge,
		"cover_underwater_tree_rootlets":    &f.CoverUnderwaterTreeRootlets,
		"cover_boulders":                    &f.CoverBoulders,
		"cover_backwaters":                  &f.CoverBackwaters,
		"cover_downed_trees":                &f.CoverDownedTrees,
		"cover_deep_areas":                  &f.CoverDeepAreas,
		"cover_undercut_banks":              &f.CoverUndercutBanks,
		"cover_water_plants":                &f.CoverWaterPlants,
		"cover_shallow_slow_areas":          &f.CoverShallowSlowAreas,
		"cover_shrubs_small_trees":          &f.CoverShrubsSmallTrees,

		"curviness_two_plus_good_bends": &f.CurvinessTwoPlusGoodBends,
		"curviness_one_two_good_bends":  &f.CurvinessOneTwoGoodBends,
		"curviness_mostly_straight":     &f.CurvinessMostlyStraight,
		"curviness_very_straight":       &f.CurvinessVeryStraight,
		"natural_mostly_natural":        &f.NaturalMostlyNatural,
		"natural_minor_changes":         &f.NaturalMinorChanges,
		"natural_many_changes":          &f.NaturalManyChanges,
		"natural_heavy_changes":         &f.NaturalHeavyChanges,

		"width_wide":                   &f.WidthWide,
		"width_narrow":                 &f.WidthNarrow,
		"width_none":                   &f.WidthNone,
		"landuse_forest_wetland":       &f.LanduseForestWetland,
		"landuse_shrubs":               &f.LanduseShrubs,
		"landuse_overgrown_fields":     &f.LanduseOvergrownFields,
		"landuse_fenced_pasture":       &f.LanduseFencedPasture,
		"landuse_park":                 &f.LandusePark,
		"landuse_conservation_tillage": &f.LanduseConservationTillage,
		"erosion_urban_industrial":     &f.ErosionUrbanIndustrial,
		"erosion_open_pasture":         &f.ErosionOpenPasture,
		"erosion_suburban_rowcrop":     &f.ErosionSuburbanRowcrop,
		"erosion_raw_collapsing":       &f.ErosionRawCollapsing,
		"shading_mostly":               &f.ShadingMostly,
		"shading_partly":               &f.ShadingPartly,
		"shading_none":                 &f.ShadingNone,

		"depth_chest_deep": &f.DepthChestDeep,
		"depth_waist_deep": &f.DepthWaistDeep,
		"depth_knee_deep":  &f.DepthKneeDeep,
		"depth_ankle_deep": &f.DepthAnkleDeep,
		"flow_very_fast":   &f.FlowVeryFast,
		"flow_fast":        &f.FlowFast,
		"flow_moderate":    &f.FlowModerate,
		"flow_slow":        &f.FlowSlow,
		"flow_none":        &f.FlowNone,

		"riffles_knee_deep_fast":       &f.RifflesKneeDeepFast,
		"riffles_ankle_calf_fast":      &f.RifflesAnkleCalfFast,
		"riffles_ankle_shallow_slow":   &f.RifflesAnkleShallowSlow,
		"riffles_none":                 &f.RifflesNone,
		"substrate_fist_size":          &f.SubstrateFistSize,
		"substrate_smaller_fist":       &f.SubstrateSmallerFist,
		"substrate_smaller_fingernail": &f.SubstrateSmallerFingernail,
	}
}

// Get reports the flag stored under a form field name. Unknown names are false.
func (f *Flags) Get(name string) bool {
	if p, ok := f.byName()[name]; ok {
		return *p
	}
	return false
}

// Set stores a flag by form field name and reports whether the name exists.
func (f *Flags) Set(name string, v bool) bool {
	p, ok := f.byName()[name]
	if ok {
		*p = v
	}
	return ok
}

// CoverRecord maps the pre-existing Section II table owned by another
// system. It is never migrated or written from here.
type CoverRecord struct {
	CoverID     uint `gorm:"column:Cover_ID;primaryKey;autoIncrement"`
	CQHEINewXID int  `gorm:"column:cQHEI_New_X_ID"`

	UnderwaterTreeRoots    int `gorm:"column:Underwater_Tree_Roots;default:0"`
	UnderwaterTreeRootlets int `gorm:"column:Underwater_Tree_Rootlets;default:0"`
	Boulders               int `gorm:"column:Boulders;default:0"`
	OxbowsBackwaters       int `gorm:"column:Oxbows_Backwaters;default:0"`
	DownedTrees            int `gorm:"column:Downed_trees;default:0"`
	Shallows               int `gorm:"column:Shallows;default:0"`
	WaterPlants            int `gorm:"column:Water_Plants;default:0"`
	DeepPools              int `gorm:"column:Deep_Pools;default:0"`
	OverhangingVegetation  int `gorm:"column:Overhanging_Vegetation;default:0"`
	UndercutBanks          int `gorm:"column:Undercut_Banks;default:0"`

	CoverScore *int `gorm:"column:Cover_Score"`

	CreatedTimestamp     time.Time `gorm:"column:Created_Timestamp;autoCreateTime"`
	LastUpdatedTimestamp time.Time `gorm:"column:Last_Updated_Timestamp;autoUpdateTime"`
}

func (CoverRecord) TableName() string {
	return "cQHEI.Cover"
}

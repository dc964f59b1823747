package survey

import "fmt"

// FieldGroup is a set of checkboxes of which at most one may be ticked.
type FieldGroup struct {
	Name    string
	Section string
	Fields  []string
}

// Message is the form-level error reported when the group has more than
// one option selected.
func (g FieldGroup) Message() string {
	return fmt.Sprintf("Please select only one option for %s in Section %s.", g.Name, g.Section)
}

// SingleChoiceGroups is checked in order; only the first violation is
// reported for a submission.
var SingleChoiceGroups = []FieldGroup{
	{
		Name:    "Substrate Size",
		Section: "I",
		Fields: []string{
			"substrate_mostly_large", "substrate_mostly_medium",
			"substrate_mostly_small", "substrate_dominated_bedrock",
			"substrate_mostly_very_fine",
		},
	},
	{
		Name:    "Smothering",
		Section: "I",
		Fields:  []string{"smothering_yes", "smothering_no"},
	},
	{
		Name:    "Silting",
		Section: "I",
		Fields:  []string{"silting_yes", "silting_no"},
	},
	{
		Name:    "Curviness",
		Section: "III",
		Fields: []string{
			"curviness_two_plus_good_bends", "curviness_one_two_good_bends",
			"curviness_mostly_straight", "curviness_very_straight",
		},
	},
	{
		Name:    "Natural Condition",
		Section: "III",
		Fields: []string{
			"natural_mostly_natural", "natural_minor_changes",
			"natural_many_changes", "natural_heavy_changes",
		},
	},
	{
		Name:    "Width",
		Section: "IV",
		Fields:  []string{"width_wide", "width_narrow", "width_none"},
	},
	{
		Name:    "Land Use",
		Section: "IV",
		Fields: []string{
			"landuse_forest_wetland", "landuse_shrubs",
			"landuse_overgrown_fields", "landuse_fenced_pasture",
			"landuse_park", "landuse_conservation_tillage",
		},
	},
	{
		Name:    "Erosion",
		Section: "IV",
		Fields: []string{
			"erosion_urban_industrial", "erosion_open_pasture",
			"erosion_suburban_rowcrop", "erosion_raw_collapsing",
		},
	},
	{
		Name:    "Shading",
		Section: "IV",
		Fields:  []string{"shading_mostly", "shading_partly", "shading_none"},
	},
	{
		Name:    "Depth",
		Section: "V",
		Fields: []string{
			"depth_chest_deep", "depth_waist_deep",
			"depth_knee_deep", "depth_ankle_deep",
		},
	},
	{
		Name:    "Riffles",
		Section: "VI",
		Fields: []string{
			"riffles_knee_deep_fast", "riffles_ankle_calf_fast",
			"riffles_ankle_shallow_slow", "riffles_none",
		},
	},
	{
		Name:    "Substrate",
		Section: "VI",
		Fields: []string{
			"substrate_fist_size", "substrate_smaller_fist",
			"substrate_smaller_fingernail",
		},
	},
}

// firstViolation returns the first group with more than one selected
// flag, or false when every group is satisfied.
func firstViolation(f *Flags) (FieldGroup, bool) {
	values := f.byName()
	for _, g := range SingleChoiceGroups {
		selected := 0
		for _, name := range g.Fields {
			if p, ok := values[name]; ok && *p {
				selected++
			}
		}
		if selected > 1 {
			return g, true
		}
	}
	return FieldGroup{}, false
}

// Option is one checkbox as rendered on the form.
type Option struct {
	Field string
	Label string
}

// OptionGroup is a titled run of checkboxes. Exclusive groups are the
// ones listed in SingleChoiceGroups.
type OptionGroup struct {
	Title     string
	Exclusive bool
	Options   []Option
}

// FormSection is one Roman-numeral section of the paper form.
type FormSection struct {
	Numeral string
	Title   string
	Groups  []OptionGroup
}

var FormSections = []FormSection{
	{
		Numeral: "I",
		Title:   "Substrate",
		Groups: []OptionGroup{
			{Title: "Substrate Size", Exclusive: true, Options: []Option{
				{"substrate_mostly_large", "Mostly large stones (larger than a fist)"},
				{"substrate_mostly_medium", "Mostly medium stones (gravel to fist size)"},
				{"substrate_mostly_small", "Mostly small stones and sand"},
				{"substrate_dominated_bedrock", "Dominated by bedrock"},
				{"substrate_mostly_very_fine", "Mostly very fine (silt, muck, clay)"},
			}},
			{Title: "Are the rocks smothered by fine material?", Exclusive: true, Options: []Option{
				{"smothering_yes", "Yes"},
				{"smothering_no", "No"},
			}},
			{Title: "Is there a layer of silt on the bottom?", Exclusive: true, Options: []Option{
				{"silting_yes", "Yes"},
				{"silting_no", "No"},
			}},
		},
	},
	{
		Numeral: "II",
		Title:   "Fish Cover (check all that apply)",
		Groups: []OptionGroup{
			{Title: "Cover", Options: []Option{
				{"cover_underwater_tree_roots_large", "Large underwater tree roots"},
				{"cover_underwater_tree_rootlets", "Underwater tree rootlets"},
				{"cover_boulders", "Boulders"},
				{"cover_backwaters", "Oxbows and backwaters"},
				{"cover_downed_trees", "Downed trees and logs"},
				{"cover_deep_areas", "Deep areas (pools)"},
				{"cover_undercut_banks", "Undercut banks"},
				{"cover_water_plants", "Water plants"},
				{"cover_shallow_slow_areas", "Shallow, slow areas"},
				{"cover_shrubs_small_trees", "Overhanging shrubs and small trees"},
			}},
		},
	},
	{
		Numeral: "III",
		Title:   "Stream Shape and Human Alterations",
		Groups: []OptionGroup{
			{Title: "Curviness", Exclusive: true, Options: []Option{
				{"curviness_two_plus_good_bends", "Two or more good bends"},
				{"curviness_one_two_good_bends", "One or two good bends"},
				{"curviness_mostly_straight", "Mostly straight"},
				{"curviness_very_straight", "Very straight (ditch-like)"},
			}},
			{Title: "Natural Condition", Exclusive: true, Options: []Option{
				{"natural_mostly_natural", "Mostly natural"},
				{"natural_minor_changes", "Minor changes, recovering"},
				{"natural_many_changes", "Many changes, some recovery"},
				{"natural_heavy_changes", "Heavy changes, no recovery"},
			}},
		},
	},
	{
		Numeral: "IV",
		Title:   "Stream Banks",
		Groups: []OptionGroup{
			{Title: "Width of wooded streamside area", Exclusive: true, Options: []Option{
				{"width_wide", "Wide (more than a stream width)"},
				{"width_narrow", "Narrow"},
				{"width_none", "None"},
			}},
			{Title: "Land Use", Exclusive: true, Options: []Option{
				{"landuse_forest_wetland", "Forest or wetland"},
				{"landuse_shrubs", "Shrubs"},
				{"landuse_overgrown_fields", "Overgrown fields"},
				{"landuse_fenced_pasture", "Fenced pasture"},
				{"landuse_park", "Park or lawn"},
				{"landuse_conservation_tillage", "Conservation tillage"},
			}},
			{Title: "Erosion", Exclusive: true, Options: []Option{
				{"erosion_urban_industrial", "Urban or industrial"},
				{"erosion_open_pasture", "Open pasture"},
				{"erosion_suburban_rowcrop", "Suburban or row crop"},
				{"erosion_raw_collapsing", "Raw, collapsing banks"},
			}},
			{Title: "Shading", Exclusive: true, Options: []Option{
				{"shading_mostly", "Mostly shaded"},
				{"shading_partly", "Partly shaded"},
				{"shading_none", "No shade"},
			}},
		},
	},
	{
		Numeral: "V",
		Title:   "Depth and Flow",
		Groups: []OptionGroup{
			{Title: "Deepest Pool", Exclusive: true, Options: []Option{
				{"depth_chest_deep", "Chest deep or deeper"},
				{"depth_waist_deep", "Waist deep"},
				{"depth_knee_deep", "Knee deep"},
				{"depth_ankle_deep", "Ankle deep"},
			}},
			{Title: "Current (check all observed)", Options: []Option{
				{"flow_very_fast", "Very fast"},
				{"flow_fast", "Fast"},
				{"flow_moderate", "Moderate"},
				{"flow_slow", "Slow"},
				{"flow_none", "No flow"},
			}},
		},
	},
	{
		Numeral: "VI",
		Title:   "Riffles",
		Groups: []OptionGroup{
			{Title: "Riffles", Exclusive: true, Options: []Option{
				{"riffles_knee_deep_fast", "Knee deep and fast"},
				{"riffles_ankle_calf_fast", "Ankle to calf deep and fast"},
				{"riffles_ankle_shallow_slow", "Ankle deep or shallower, slow"},
				{"riffles_none", "No riffles"},
			}},
			{Title: "Riffle Substrate", Exclusive: true, Options: []Option{
				{"substrate_fist_size", "Fist size or larger"},
				{"substrate_smaller_fist", "Smaller than a fist"},
				{"substrate_smaller_fingernail", "Smaller than a fingernail"},
			}},
		},
	},
}

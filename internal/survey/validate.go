package survey

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"gorm.io/datatypes"
)

const (
	msgRequired       = "This field is required."
	msgInvalidDate    = "Enter a valid date."
	msgInvalidNumber  = "Enter a number."
	msgNullCharacters = "Null characters are not allowed."
	msgDecimalPlaces  = "Ensure that there are no more than 2 decimal places."
	msgMileNegative   = "River mile cannot be negative."
	msgMileTooLarge   = "River mile cannot exceed 999.99."
	msgFutureDate     = "Survey date cannot be in the future."
	msgOtherNeedsText = "Please specify the exact length when selecting 'Other'."
	msgOtherRefused   = "Please specify the reach length when 'Other' is selected."
)

var maxRiverMile = decimal.RequireFromString("999.99")

// Accepted survey_date layouts; the first one is what the date picker sends.
var dateLayouts = []string{"2006-01-02", "01/02/2006", "01/02/06"}

// Submission is a decoded, not yet validated, survey form.
type Submission struct {
	SurveyDate        *time.Time       `form:"survey_date" validate:"required"`
	RiverCode         string           `form:"river_code" validate:"required,max=50"`
	RiverMile         *decimal.Decimal `form:"river_mile" validate:"required"`
	Clarity           string           `form:"clarity" validate:"max=100"`
	ForestUleNumber   string           `form:"forest_ule_number" validate:"max=50"`
	ClusterNumber     string           `form:"cluster_number" validate:"max=50"`
	RiverSite         string           `form:"river_site" validate:"required,max=200"`
	NameGroup         string           `form:"name_group" validate:"required,max=200"`
	ReachLength       string           `form:"reach_length" validate:"required,oneof=50m 100m 150m 200m 500m 750m other"`
	ReachLengthCustom string           `form:"reach_length_custom" validate:"max=100"`

	Flags Flags `validate:"-"`

	// Problems found while decoding; those fields skip the tag checks.
	decodeErrs *ValidationErrors
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeForm turns posted form values into a Submission. Text is trimmed,
// absent checkboxes are false, and values that cannot be parsed are left
// unset with an error remembered for ValidateSubmission.
func DecodeForm(values url.Values) *Submission {
	sub := &Submission{decodeErrs: &ValidationErrors{}}
	text := func(name string) string { return strings.TrimSpace(values.Get(name)) }

	if raw := text("survey_date"); raw != "" {
		if d, ok := parseDate(raw); ok {
			sub.SurveyDate = &d
		} else {
			sub.decodeErrs.AddField("survey_date", msgInvalidDate)
		}
	}

	if raw := text("river_mile"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			sub.RiverMile = &d
		} else {
			sub.decodeErrs.AddField("river_mile", msgInvalidNumber)
		}
	}

	// Postgres refuses NUL in text columns.
	plain := func(name string) string {
		v := text(name)
		if strings.ContainsRune(v, 0) {
			sub.decodeErrs.AddField(name, msgNullCharacters)
		}
		return v
	}
	sub.RiverCode = plain("river_code")
	sub.Clarity = plain("clarity")
	sub.ForestUleNumber = plain("forest_ule_number")
	sub.ClusterNumber = plain("cluster_number")
	sub.RiverSite = plain("river_site")
	sub.NameGroup = plain("name_group")
	sub.ReachLength = plain("reach_length")
	sub.ReachLengthCustom = plain("reach_length_custom")

	for name, p := range sub.Flags.byName() {
		*p = checkboxValue(values, name)
	}
	return sub
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// checkboxValue treats a missing key, "", "0" and "false" as unchecked.
func checkboxValue(values url.Values, name string) bool {
	vals, ok := values[name]
	if !ok || len(vals) == 0 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(vals[len(vals)-1])) {
	case "", "0", "false":
		return false
	}
	return true
}

// ValidateSubmission runs every submission-time check and returns nil when
// the submission may be saved. now is the server clock; its calendar date
// in now's location is "today".
func ValidateSubmission(sub *Submission, now time.Time) *ValidationErrors {
	errs := sub.decodeErrs.clone()

	checkFields(sub, errs)
	checkRiverMile(sub, errs)
	checkSurveyDate(sub, now, errs)

	// Form-level rules. A group violation stops the group walk but not the
	// reach length rule below.
	if g, bad := firstViolation(&sub.Flags); bad {
		errs.AddForm(g.Message())
	}
	if isOther(sub.ReachLength) && sub.ReachLengthCustom == "" {
		errs.AddField("reach_length_custom", msgOtherNeedsText)
	}

	if errs.Empty() {
		return nil
	}
	return errs
}

// checkFields applies the struct tags: required, max length and choices.
func checkFields(sub *Submission, errs *ValidationErrors) {
	err := validate.Struct(sub)
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.AddForm(err.Error())
		return
	}
	for _, fe := range verrs {
		field := fe.Field()
		if errs.HasField(field) {
			continue
		}
		errs.AddField(field, tagMessage(fe))
	}
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "max":
		s, _ := fe.Value().(string)
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), utf8.RuneCountInString(s))
	case "oneof":
		return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
	}
	return fmt.Sprintf("Invalid value (%s).", fe.Tag())
}

func checkRiverMile(sub *Submission, errs *ValidationErrors) {
	if sub.RiverMile == nil || errs.HasField("river_mile") {
		return
	}
	mile := *sub.RiverMile
	switch {
	case mile.IsNegative():
		errs.AddField("river_mile", msgMileNegative)
	case mile.GreaterThan(maxRiverMile):
		errs.AddField("river_mile", msgMileTooLarge)
	case mile.Exponent() < -2:
		errs.AddField("river_mile", msgDecimalPlaces)
	}
}

func checkSurveyDate(sub *Submission, now time.Time, errs *ValidationErrors) {
	if sub.SurveyDate == nil || errs.HasField("survey_date") {
		return
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	sy, sm, sd := sub.SurveyDate.Date()
	if time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC).After(today) {
		errs.AddField("survey_date", msgFutureDate)
	}
}

// isOther compares against ReachOther with Unicode case folding.
func isOther(reach string) bool {
	return reach != "" && cases.Fold().String(reach) == ReachOther
}

// Record builds the row to insert. Call it only after ValidateSubmission
// returned nil.
func (s *Submission) Record() *SurveyRecord {
	rec := &SurveyRecord{
		RiverCode:         s.RiverCode,
		Clarity:           s.Clarity,
		ForestUleNumber:   s.ForestUleNumber,
		ClusterNumber:     s.ClusterNumber,
		RiverSite:         s.RiverSite,
		NameGroup:         s.NameGroup,
		ReachLength:       s.ReachLength,
		ReachLengthCustom: s.ReachLengthCustom,
		Flags:             s.Flags,
	}
	if s.SurveyDate != nil {
		rec.SurveyDate = datatypes.Date(*s.SurveyDate)
	}
	if s.RiverMile != nil {
		rec.RiverMile = *s.RiverMile
	}
	return rec
}

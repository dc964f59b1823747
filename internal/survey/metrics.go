package survey

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSaved   = "saved"
	outcomeInvalid = "invalid"
	outcomeRefused = "refused"
	outcomeError   = "error"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cqhei_submissions_total",
			Help: "Survey submissions by outcome",
		},
		[]string{"outcome"},
	)

	GroupViolationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cqhei_group_violations_total",
			Help: "Submissions rejected because a single-choice group had several options ticked",
		},
		[]string{"section", "group"},
	)

	FieldErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cqhei_field_errors_total",
			Help: "Field-level validation errors by form field",
		},
		[]string{"field"},
	)
)

// recordRejection counts a submission that failed validation.
func recordRejection(verrs *ValidationErrors) {
	SubmissionsTotal.WithLabelValues(outcomeInvalid).Inc()
	for field := range verrs.Fields {
		FieldErrorsTotal.WithLabelValues(field).Inc()
	}
	for _, g := range SingleChoiceGroups {
		for _, msg := range verrs.Form {
			if msg == g.Message() {
				GroupViolationsTotal.WithLabelValues(g.Section, g.Name).Inc()
			}
		}
	}
}

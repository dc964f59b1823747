package survey

import (
	"log"
	"time"
)

// LogSaved logs a stored survey.
func LogSaved(rec *SurveyRecord, duration time.Duration) {
	log.Printf("[survey] saved id=%d river_code=%s reach=%s duration=%dms",
		rec.ID, rec.RiverCode, rec.ReachLength, duration.Milliseconds())
}

// LogRejected logs a submission that failed validation.
func LogRejected(verrs *ValidationErrors) {
	log.Printf("[survey] rejected submission fields=%d form=%d", len(verrs.Fields), len(verrs.Form))
}

// LogRefused logs an insert stopped by the save hook.
func LogRefused(rec *SurveyRecord, err error) {
	log.Printf("[survey] refused insert river_code=%s: %v", rec.RiverCode, err)
}

// LogError logs an infrastructure failure.
func LogError(operation string, err error) {
	log.Printf("[survey] %s error: %v", operation, err)
}

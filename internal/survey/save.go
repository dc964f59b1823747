package survey

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// NormalizeAndEnforceBeforeSave is the last gate before an insert. Custom
// reach length text only survives when the reach length is "other", and an
// "other" reach length without text is refused outright.
func NormalizeAndEnforceBeforeSave(rec *SurveyRecord) error {
	if !isOther(rec.ReachLength) {
		rec.ReachLengthCustom = ""
		return nil
	}
	if strings.TrimSpace(rec.ReachLengthCustom) == "" {
		return ErrReachLengthCustomRequired
	}
	return nil
}

// BeforeSave runs on every gorm create/save of a SurveyRecord.
func (r *SurveyRecord) BeforeSave(tx *gorm.DB) error {
	return NormalizeAndEnforceBeforeSave(r)
}

// Service validates and stores surveys.
type Service struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

// NewService returns a Service that decides "today" in loc.
func NewService(d *gorm.DB, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{db: d, loc: loc, now: time.Now}
}

// Today is the service clock in its configured location.
func (s *Service) Today() time.Time {
	return s.now().In(s.loc)
}

// Submit validates sub and, when it is clean, inserts it in a single
// transaction. Validation failures come back as *ValidationErrors and
// nothing is written.
func (s *Service) Submit(ctx context.Context, sub *Submission) (*SurveyRecord, error) {
	if verrs := ValidateSubmission(sub, s.Today()); verrs != nil {
		recordRejection(verrs)
		LogRejected(verrs)
		return nil, verrs
	}

	rec := sub.Record()
	if err := s.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Save inserts rec. The BeforeSave hook normalizes it first and can refuse
// it with ErrReachLengthCustomRequired, in which case the transaction is
// rolled back.
func (s *Service) Save(ctx context.Context, rec *SurveyRecord) error {
	start := time.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(rec).Error
	})
	if err != nil {
		if errors.Is(err, ErrReachLengthCustomRequired) {
			SubmissionsTotal.WithLabelValues(outcomeRefused).Inc()
			LogRefused(rec, err)
			return err
		}
		SubmissionsTotal.WithLabelValues(outcomeError).Inc()
		LogError("save", err)
		return fmt.Errorf("save survey: %w", err)
	}

	SubmissionsTotal.WithLabelValues(outcomeSaved).Inc()
	LogSaved(rec, time.Since(start))
	return nil
}

// Get loads a stored survey by id.
func (s *Service) Get(ctx context.Context, id uint) (*SurveyRecord, error) {
	var rec SurveyRecord
	err := s.db.WithContext(ctx).First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load survey %d: %w", id, err)
	}
	return &rec, nil
}

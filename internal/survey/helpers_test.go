package survey

import (
	"net/url"
	"testing"
	"time"

	"github.com/cqhei/cqhei-survey/internal/config"
	"github.com/cqhei/cqhei-survey/internal/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testNow is the fixed server clock used across the package tests.
var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// newTestDB opens a private in-memory sqlite database with the survey
// tables migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	d, err := db.Open(config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: path}, false)
	require.NoError(t, err)
	require.NoError(t, Migrate(d))

	t.Cleanup(func() {
		if sqlDB, err := d.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return d
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(newTestDB(t), time.UTC)
	svc.now = func() time.Time { return testNow }
	return svc
}

// validValues is a submission that passes every check.
func validValues() url.Values {
	return url.Values{
		"survey_date":  {"2024-06-01"},
		"river_code":   {"OH-123"},
		"river_mile":   {"12.50"},
		"clarity":      {"Clear"},
		"river_site":   {"Big Darby at Rt 40"},
		"name_group":   {"Darby Watchers"},
		"reach_length": {Reach100m},
	}
}

func countSurveys(t *testing.T, d *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, d.Model(&SurveyRecord{}).Count(&n).Error)
	return n
}

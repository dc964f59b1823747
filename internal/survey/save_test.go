package survey

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newRecord(reach, custom string) *SurveyRecord {
	return &SurveyRecord{
		SurveyDate:        datatypes.Date(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		RiverCode:         "OH-123",
		RiverMile:         decimal.RequireFromString("12.50"),
		RiverSite:         "Big Darby at Rt 40",
		NameGroup:         "Darby Watchers",
		ReachLength:       reach,
		ReachLengthCustom: custom,
	}
}

func TestNormalizeAndEnforceBeforeSave(t *testing.T) {
	tests := []struct {
		name       string
		reach      string
		custom     string
		wantCustom string
		wantErr    error
	}{
		{"fixed length drops custom", Reach50m, "custom-200m", "", nil},
		{"fixed length without custom", Reach750m, "", "", nil},
		{"other keeps custom", ReachOther, "custom-200m", "custom-200m", nil},
		{"other any case keeps custom", "Other", "300m", "300m", nil},
		{"other without custom", ReachOther, "", "", ErrReachLengthCustomRequired},
		{"other with blank custom", "OTHER", "  ", "  ", ErrReachLengthCustomRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecord(tt.reach, tt.custom)
			err := NormalizeAndEnforceBeforeSave(rec)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCustom, rec.ReachLengthCustom)
		})
	}
}

func TestServiceSave_NormalizesCustomLength(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec := newRecord(Reach50m, "custom-200m")
	require.NoError(t, svc.Save(ctx, rec))
	require.NotZero(t, rec.ID)

	got, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, Reach50m, got.ReachLength)
	assert.Empty(t, got.ReachLengthCustom)
}

func TestServiceSave_RefusesOtherWithoutCustom(t *testing.T) {
	svc := newTestService(t)
	before := testutil.ToFloat64(SubmissionsTotal.WithLabelValues(outcomeRefused))

	err := svc.Save(context.Background(), newRecord(ReachOther, ""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReachLengthCustomRequired))

	assert.Zero(t, countSurveys(t, svc.db))
	assert.Equal(t, before+1, testutil.ToFloat64(SubmissionsTotal.WithLabelValues(outcomeRefused)))
}

func TestServiceSubmit_StoresOneRecord(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	before := testutil.ToFloat64(SubmissionsTotal.WithLabelValues(outcomeSaved))

	v := validValues()
	v.Set("reach_length", ReachOther)
	v.Set("reach_length_custom", "custom-200m")
	v.Set("cover_boulders", "on")
	v.Set("cover_water_plants", "on")
	v.Set("riffles_none", "on")

	rec, err := svc.Submit(ctx, DecodeForm(v))
	require.NoError(t, err)
	assert.Equal(t, int64(1), countSurveys(t, svc.db))
	assert.Equal(t, before+1, testutil.ToFloat64(SubmissionsTotal.WithLabelValues(outcomeSaved)))

	got, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, ReachOther, got.ReachLength)
	assert.Equal(t, "custom-200m", got.ReachLengthCustom)
	assert.Equal(t, "12.50", got.RiverMile.StringFixed(2))
	assert.Equal(t, "2024-06-01", time.Time(got.SurveyDate).Format("2006-01-02"))
	assert.True(t, got.CoverBoulders)
	assert.True(t, got.CoverWaterPlants)
	assert.True(t, got.RifflesNone)
	assert.False(t, got.CoverDeepAreas)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestServiceSubmit_InvalidWritesNothing(t *testing.T) {
	svc := newTestService(t)
	before := testutil.ToFloat64(SubmissionsTotal.WithLabelValues(outcomeInvalid))
	groupBefore := testutil.ToFloat64(GroupViolationsTotal.WithLabelValues("I", "Substrate Size"))

	v := validValues()
	v.Set("substrate_mostly_large", "on")
	v.Set("substrate_mostly_small", "on")

	rec, err := svc.Submit(context.Background(), DecodeForm(v))
	assert.Nil(t, rec)

	var verrs *ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"Please select only one option for Substrate Size in Section I."}, verrs.Form)

	assert.Zero(t, countSurveys(t, svc.db))
	assert.Equal(t, before+1, testutil.ToFloat64(SubmissionsTotal.WithLabelValues(outcomeInvalid)))
	assert.Equal(t, groupBefore+1, testutil.ToFloat64(GroupViolationsTotal.WithLabelValues("I", "Substrate Size")))
}

func TestServiceGet_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceToday(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	svc := NewService(nil, ny)
	svc.now = func() time.Time { return time.Date(2024, 6, 16, 2, 0, 0, 0, time.UTC) }
	assert.Equal(t, "2024-06-15", svc.Today().Format("2006-01-02"))

	assert.Equal(t, time.UTC, NewService(nil, nil).loc)
}

func TestServiceSubmit_NullCharacterWritesNothing(t *testing.T) {
	svc := newTestService(t)

	v := validValues()
	v.Set("river_site", "Big\x00Darby")

	_, err := svc.Submit(context.Background(), DecodeForm(v))
	var verrs *ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{msgNullCharacters}, verrs.Fields["river_site"])
	assert.Zero(t, countSurveys(t, svc.db))
}

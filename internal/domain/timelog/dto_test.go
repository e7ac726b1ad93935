package timelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/validator"
)

const testPhoto = "data:image/jpeg;base64,/9j/4AAQSkZJRg=="

func TestClockRequestValidate(t *testing.T) {
	t.Run("valid photo", func(t *testing.T) {
		req := ClockRequest{Photo: testPhoto}
		assert.NoError(t, req.Validate())
	})

	t.Run("missing photo", func(t *testing.T) {
		req := ClockRequest{}
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "photo")
	})

	t.Run("not a data URI", func(t *testing.T) {
		req := ClockRequest{Photo: "https://example.com/photo.jpg"}
		assert.Error(t, req.Validate())
	})
}

func TestAdjustRequestValidate(t *testing.T) {
	adjusted := ts(t, "2024-03-15T09:00:00")

	t.Run("valid", func(t *testing.T) {
		req := AdjustRequest{
			TimelogID:      42,
			AdjustedTimeIn: adjusted,
			Reason:         "Forgot to clock in",
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("reason is mandatory", func(t *testing.T) {
		req := AdjustRequest{TimelogID: 42, AdjustedTimeIn: adjusted, Reason: "   "}
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "reason")
	})

	t.Run("at least one adjusted value", func(t *testing.T) {
		req := AdjustRequest{TimelogID: 42, Reason: "Correction"}
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "adjustment")
	})

	t.Run("negative break duration", func(t *testing.T) {
		req := AdjustRequest{TimelogID: 42, AdjustedBreakDuration: i64(-5), Reason: "Correction"}
		assert.Error(t, req.Validate())
	})

	t.Run("missing timelog id", func(t *testing.T) {
		req := AdjustRequest{AdjustedTimeIn: adjusted, Reason: "Correction"}
		assert.Error(t, req.Validate())
	})
}

func TestMonthlyFilterValidate(t *testing.T) {
	valid := MonthlyFilter{Year: 2024, Month: 3}
	assert.NoError(t, valid.Validate())

	cases := []MonthlyFilter{
		{Year: 2024, Month: 0},
		{Year: 2024, Month: 13},
		{Year: 1999, Month: 6},
		{Year: 0, Month: 0},
	}
	for _, f := range cases {
		assert.Error(t, f.Validate(), "filter %+v should be invalid", f)
	}
}

func TestRangeFilterValidate(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		f := RangeFilter{StartDate: "2024-03-01", EndDate: "2024-03-31"}
		assert.NoError(t, f.Validate())
	})

	t.Run("single day range", func(t *testing.T) {
		f := RangeFilter{StartDate: "2024-03-15", EndDate: "2024-03-15"}
		assert.NoError(t, f.Validate())
	})

	t.Run("end before start", func(t *testing.T) {
		f := RangeFilter{StartDate: "2024-03-31", EndDate: "2024-03-01"}
		assert.Error(t, f.Validate())
	})

	t.Run("malformed dates", func(t *testing.T) {
		f := RangeFilter{StartDate: "03/01/2024", EndDate: "2024-03-31"}
		assert.Error(t, f.Validate())
	})

	t.Run("empty", func(t *testing.T) {
		f := RangeFilter{}
		assert.Error(t, f.Validate())
	})
}

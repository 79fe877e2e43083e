package valueobject

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("parses ISO date", func(t *testing.T) {
		d, err := ParseDate("2025-03-15")
		require.NoError(t, err)
		assert.Equal(t, 2025, d.Year())
		assert.Equal(t, time.March, d.Month())
		assert.Equal(t, 15, d.Day())
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseDate("15/03/2025")
		assert.Error(t, err)
	})

	t.Run("rejects impossible day", func(t *testing.T) {
		_, err := ParseDate("2025-02-30")
		assert.Error(t, err)
	})
}

func TestDateString(t *testing.T) {
	d := NewDate(2025, time.January, 5)
	assert.Equal(t, "2025-01-05", d.String())
}

func TestDateOrdering(t *testing.T) {
	earlier := MustParseDate("2025-01-31")
	later := MustParseDate("2025-02-01")

	assert.True(t, earlier.Before(later))
	assert.True(t, later.After(earlier))
	assert.False(t, earlier.Equal(later))
	assert.Equal(t, -1, earlier.Compare(later))
	assert.Equal(t, 1, later.Compare(earlier))
	assert.Equal(t, 0, earlier.Compare(MustParseDate("2025-01-31")))
}

func TestDateAddDays(t *testing.T) {
	d := MustParseDate("2025-02-28")
	assert.Equal(t, "2025-03-01", d.AddDays(1).String())
	assert.Equal(t, "2025-02-27", d.AddDays(-1).String())
}

func TestDateAddMonths(t *testing.T) {
	t.Run("plain month step", func(t *testing.T) {
		d := MustParseDate("2025-03-10")
		assert.Equal(t, "2025-04-10", d.AddMonths(1).String())
		assert.Equal(t, "2025-06-10", d.AddMonths(3).String())
	})

	t.Run("day overflow rolls into next month", func(t *testing.T) {
		d := MustParseDate("2025-01-31")
		assert.Equal(t, "2025-03-03", d.AddMonths(1).String())
	})

	t.Run("day overflow in leap year", func(t *testing.T) {
		d := MustParseDate("2024-01-31")
		assert.Equal(t, "2024-03-02", d.AddMonths(1).String())
	})

	t.Run("crosses year boundary", func(t *testing.T) {
		d := MustParseDate("2025-11-15")
		assert.Equal(t, "2026-01-15", d.AddMonths(2).String())
	})
}

func TestDateStartOfWeek(t *testing.T) {
	t.Run("weekday maps to preceding sunday", func(t *testing.T) {
		// 2025-03-12 is a Wednesday
		d := MustParseDate("2025-03-12")
		assert.Equal(t, "2025-03-09", d.StartOfWeek().String())
		assert.Equal(t, time.Sunday, d.StartOfWeek().Weekday())
	})

	t.Run("sunday is its own week start", func(t *testing.T) {
		d := MustParseDate("2025-03-09")
		assert.Equal(t, d, d.StartOfWeek())
	})

	t.Run("end of week is the saturday", func(t *testing.T) {
		d := MustParseDate("2025-03-12")
		assert.Equal(t, "2025-03-15", d.EndOfWeek().String())
	})
}

func TestDateMonthBounds(t *testing.T) {
	d := MustParseDate("2025-02-14")
	assert.Equal(t, "2025-02-01", d.StartOfMonth().String())
	assert.Equal(t, "2025-02-28", d.EndOfMonth().String())

	leap := MustParseDate("2024-02-14")
	assert.Equal(t, "2024-02-29", leap.EndOfMonth().String())

	december := MustParseDate("2025-12-31")
	assert.Equal(t, "2025-12-31", december.EndOfMonth().String())
}

func TestDateJSON(t *testing.T) {
	d := MustParseDate("2025-07-04")
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-07-04"`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, d.Equal(decoded))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, time.May, 20, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, "2025-05-20", d.String())

	require.NoError(t, d.Scan("2025-06-01"))
	assert.Equal(t, "2025-06-01", d.String())

	assert.Error(t, d.Scan(42))
}

func TestDateRangeContains(t *testing.T) {
	r := NewDateRange(MustParseDate("2025-03-01"), MustParseDate("2025-03-31"))

	assert.True(t, r.Contains(MustParseDate("2025-03-01")))
	assert.True(t, r.Contains(MustParseDate("2025-03-31")))
	assert.True(t, r.Contains(MustParseDate("2025-03-15")))
	assert.False(t, r.Contains(MustParseDate("2025-02-28")))
	assert.False(t, r.Contains(MustParseDate("2025-04-01")))

	open := DateRange{Start: MustParseDate("2025-03-01")}
	assert.True(t, open.Contains(MustParseDate("2030-01-01")))
	assert.False(t, open.Contains(MustParseDate("2025-02-28")))

	unbounded := DateRange{}
	assert.True(t, unbounded.Contains(MustParseDate("1999-01-01")))
}

func TestBranchFilter(t *testing.T) {
	t.Run("all branches matches everything", func(t *testing.T) {
		f := FilterAllBranches()
		assert.True(t, f.IsAll())
		assert.True(t, f.Matches(BranchPrimary))
		assert.True(t, f.Matches(BranchSecondary))
	})

	t.Run("single branch matches only itself", func(t *testing.T) {
		f := FilterBranch(BranchSecondary)
		assert.False(t, f.IsAll())
		assert.True(t, f.Matches(BranchSecondary))
		assert.False(t, f.Matches(BranchPrimary))
	})

	t.Run("parse accepts empty, ALL and branch names", func(t *testing.T) {
		f, ok := ParseBranchFilter("")
		assert.True(t, ok)
		assert.True(t, f.IsAll())

		f, ok = ParseBranchFilter("ALL")
		assert.True(t, ok)
		assert.True(t, f.IsAll())

		f, ok = ParseBranchFilter("PRIMARY")
		assert.True(t, ok)
		assert.Equal(t, BranchPrimary, f.Branch())

		_, ok = ParseBranchFilter("WAREHOUSE")
		assert.False(t, ok)
	})
}

package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfman30/prospecting-manager/internal/prospects"
)

func rec(company, state, status string, attempts int) prospects.Record {
	return prospects.Record{Company: company, State: state, Status: status, Attempts: attempts}
}

func TestAttempted(t *testing.T) {
	assert.True(t, Attempted(rec("", "", "Voicemail", 0)))
	assert.True(t, Attempted(rec("", "", "", 1)))
	assert.False(t, Attempted(rec("", "", "", 0)))
}

func TestConverted(t *testing.T) {
	assert.True(t, Converted(rec("", "", "Yes", 0)))
	assert.True(t, Converted(rec("", "", "yes", 0)))
	assert.True(t, Converted(rec("", "", "YES", 0)))
	assert.False(t, Converted(rec("", "", "No", 3)))
	assert.False(t, Converted(rec("", "", "", 3)))
}

func TestOverall(t *testing.T) {
	records := []prospects.Record{
		rec("", "", "Yes", 1),
		rec("", "", "No", 2),
		rec("", "", "Voicemail", 0),
		rec("", "", "", 0), // untouched, excluded from attempted entirely
	}

	s := Overall(records)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 3, s.Attempted)
	assert.Equal(t, 1, s.Converted)
	assert.InDelta(t, 100.0/3.0, s.Rate, 0.0001)
}

func TestOverallEmptySet(t *testing.T) {
	s := Overall(nil)
	assert.Equal(t, 0, s.Attempted)
	assert.Equal(t, 0.0, s.Rate)
}

func TestRateByCompanyScenario(t *testing.T) {
	// 10 Acme records: 6 attempted, 3 of them converted
	var records []prospects.Record
	for i := 0; i < 3; i++ {
		records = append(records, rec("Acme", "", "Yes", 1))
	}
	for i := 0; i < 3; i++ {
		records = append(records, rec("Acme", "", "No", 1))
	}
	for i := 0; i < 4; i++ {
		records = append(records, rec("Acme", "", "", 0))
	}

	rows := RateByCompany(records, 0)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0].Key)
	assert.Equal(t, 10, rows[0].Count)
	assert.Equal(t, 6, rows[0].Attempted)
	assert.Equal(t, 3, rows[0].Converted)
	assert.Equal(t, 50.0, rows[0].Rate)
}

func TestRateByCompanyDropsZeroAttempted(t *testing.T) {
	records := []prospects.Record{
		rec("Acme", "", "Yes", 1),
		rec("Untouched Co", "", "", 0),
	}

	rows := RateByCompany(records, 0)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0].Key)
	for _, row := range rows {
		assert.Greater(t, row.Attempted, 0)
	}
}

func TestRateByCompanyOrderingAndTieBreak(t *testing.T) {
	var records []prospects.Record
	// Best: 100% from 1 attempt
	records = append(records, rec("Small Win", "", "Yes", 1))
	// Two groups tied at 50%: Bigger has 4 attempted, Smaller has 2
	records = append(records,
		rec("Bigger", "", "Yes", 1), rec("Bigger", "", "Yes", 1),
		rec("Bigger", "", "No", 1), rec("Bigger", "", "No", 1),
		rec("Smaller", "", "Yes", 1), rec("Smaller", "", "No", 1),
	)
	// Worst: 0% from 3 attempts
	records = append(records, rec("Cold", "", "No", 1), rec("Cold", "", "No", 1), rec("Cold", "", "No", 1))

	rows := RateByCompany(records, 0)
	require.Len(t, rows, 4)
	assert.Equal(t, "Small Win", rows[0].Key)
	assert.Equal(t, "Bigger", rows[1].Key, "ties break by attempted count descending")
	assert.Equal(t, "Smaller", rows[2].Key)
	assert.Equal(t, "Cold", rows[3].Key)
}

func TestRateByCompanyFullTieFallsBackToKey(t *testing.T) {
	records := []prospects.Record{
		rec("Zeta", "", "Yes", 1),
		rec("Alpha", "", "Yes", 1),
	}

	rows := RateByCompany(records, 0)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alpha", rows[0].Key)
	assert.Equal(t, "Zeta", rows[1].Key)
}

func TestRateByCompanyEmptyBucket(t *testing.T) {
	records := []prospects.Record{
		rec("", "", "Yes", 1),
		rec("", "", "No", 1),
	}

	rows := RateByCompany(records, 0)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Key)
	assert.Equal(t, 50.0, rows[0].Rate)
}

func TestRateByCompanyTopN(t *testing.T) {
	records := []prospects.Record{
		rec("A", "", "Yes", 1),
		rec("B", "", "Yes", 1),
		rec("C", "", "No", 1),
	}

	rows := RateByCompany(records, 2)
	assert.Len(t, rows, 2)
}

func TestRateByStateUsesStateKey(t *testing.T) {
	records := []prospects.Record{
		rec("Acme", "NY", "Yes", 1),
		rec("Globex", "NY", "No", 1),
		rec("Initech", "TX", "Yes", 1),
	}

	rows := RateByState(records, 0)
	require.Len(t, rows, 2)
	assert.Equal(t, "TX", rows[0].Key)
	assert.Equal(t, 100.0, rows[0].Rate)
	assert.Equal(t, "NY", rows[1].Key)
	assert.Equal(t, 50.0, rows[1].Rate)
}

func TestRateRounding(t *testing.T) {
	records := []prospects.Record{
		rec("Acme", "", "Yes", 1),
		rec("Acme", "", "No", 1),
		rec("Acme", "", "No", 1),
	}

	rows := RateByCompany(records, 0)
	require.Len(t, rows, 1)
	assert.Equal(t, 33.3, rows[0].Rate)
}

func withTouch(r prospects.Record, lastCall string) prospects.Record {
	r.LastCallDateTime = prospects.ParseDateTime(lastCall)
	return r
}

func TestRateByHour(t *testing.T) {
	records := []prospects.Record{
		// 2025-03-03 is a Monday
		withTouch(rec("", "", "Yes", 1), "2025-03-03 09:15"),
		withTouch(rec("", "", "No", 1), "2025-03-03 09:45"),
		withTouch(rec("", "", "Yes", 1), "2025-03-03 14:05"),
		withTouch(rec("", "", "", 0), "2025-03-03 16:00"), // not attempted: hour dropped
		rec("", "", "Yes", 1),                             // no touch timestamp: excluded
	}

	rows := RateByHour(records)
	require.Len(t, rows, 2)
	assert.Equal(t, 9, rows[0].Hour)
	assert.Equal(t, 2, rows[0].Attempted)
	assert.Equal(t, 50.0, rows[0].Rate)
	assert.Equal(t, 14, rows[1].Hour)
	assert.Equal(t, 100.0, rows[1].Rate)
}

func TestRateByWeekdayOrderAndDrops(t *testing.T) {
	records := []prospects.Record{
		// Friday 2025-03-07, Monday 2025-03-03, Wednesday 2025-03-05
		withTouch(rec("", "", "No", 1), "2025-03-07 10:00"),
		withTouch(rec("", "", "Yes", 1), "2025-03-03 10:00"),
		withTouch(rec("", "", "Yes", 1), "2025-03-05 10:00"),
		withTouch(rec("", "", "No", 1), "2025-03-05 11:00"),
	}

	rows := RateByWeekday(records)
	require.Len(t, rows, 3)
	assert.Equal(t, "Monday", rows[0].Weekday)
	assert.Equal(t, "Wednesday", rows[1].Weekday)
	assert.Equal(t, "Friday", rows[2].Weekday)
	assert.Equal(t, 100.0, rows[0].Rate)
	assert.Equal(t, 50.0, rows[1].Rate)
	assert.Equal(t, 0.0, rows[2].Rate)
}

func TestTemporalTablesUseTouchPriority(t *testing.T) {
	r := rec("", "", "Yes", 1)
	r.MeetingDateTime = prospects.ParseDateTime("2025-03-04 14:30")
	r.LastCallDateTime = prospects.ParseDateTime("2025-03-03 09:00")

	rows := RateByHour([]prospects.Record{r})
	require.Len(t, rows, 1)
	assert.Equal(t, 9, rows[0].Hour, "last call outranks the meeting time")
}

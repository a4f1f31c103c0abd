// Package analytics computes conversion statistics over the record set.
// All queries are read-only views; nothing here mutates records.
package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/wolfman30/prospecting-manager/internal/prospects"
)

// DefaultTopN bounds grouped rate tables.
const DefaultTopN = 15

// Attempted reports whether the prospect has at least one recorded contact
// attempt or outcome.
func Attempted(r prospects.Record) bool {
	return r.Attempts > 0 || r.Status != ""
}

// Converted reports whether the recorded outcome is affirmative.
func Converted(r prospects.Record) bool {
	return strings.EqualFold(r.Status, prospects.StatusYes)
}

// Summary is the overall attempted/converted view.
type Summary struct {
	Total     int     `json:"total"`
	Attempted int     `json:"attempted"`
	Converted int     `json:"converted"`
	Rate      float64 `json:"rate"`
}

// Overall computes the whole-set summary. Rate is 0 when nothing was
// attempted.
func Overall(records []prospects.Record) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		if Attempted(r) {
			s.Attempted++
		}
		if Converted(r) {
			s.Converted++
		}
	}
	s.Rate = rate(s.Converted, s.Attempted)
	return s
}

// GroupRow is one bucket of a grouped rate table.
type GroupRow struct {
	Key       string  `json:"key"`
	Count     int     `json:"count"`
	Attempted int     `json:"attempted"`
	Converted int     `json:"converted"`
	Rate      float64 `json:"rate"`
}

// RateByCompany groups conversion rates by company.
func RateByCompany(records []prospects.Record, topN int) []GroupRow {
	return rateBy(records, func(r prospects.Record) string { return r.Company }, topN)
}

// RateByState groups conversion rates by state.
func RateByState(records []prospects.Record, topN int) []GroupRow {
	return rateBy(records, func(r prospects.Record) string { return r.State }, topN)
}

// rateBy buckets records by a categorical key (empty/missing values form
// the empty-string bucket), drops buckets with zero attempted, sorts by
// rate descending with ties broken by attempted count descending, and
// truncates to topN. Full ties keep key-ascending order for determinism.
func rateBy(records []prospects.Record, key func(prospects.Record) string, topN int) []GroupRow {
	if topN <= 0 {
		topN = DefaultTopN
	}

	buckets := make(map[string]*GroupRow)
	for _, r := range records {
		k := key(r)
		row, ok := buckets[k]
		if !ok {
			row = &GroupRow{Key: k}
			buckets[k] = row
		}
		row.Count++
		if Attempted(r) {
			row.Attempted++
		}
		if Converted(r) {
			row.Converted++
		}
	}

	rows := make([]GroupRow, 0, len(buckets))
	for _, row := range buckets {
		if row.Attempted == 0 {
			continue
		}
		row.Rate = round1(rate(row.Converted, row.Attempted))
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Rate != rows[j].Rate {
			return rows[i].Rate > rows[j].Rate
		}
		return rows[i].Attempted > rows[j].Attempted
	})
	if len(rows) > topN {
		rows = rows[:topN]
	}
	return rows
}

// HourRow is one hour-of-day bucket.
type HourRow struct {
	Hour      int     `json:"hour"`
	Attempted int     `json:"attempted"`
	Converted int     `json:"converted"`
	Rate      float64 `json:"rate"`
}

// RateByHour groups conversion rates by the touch timestamp's hour of day
// (0-23) as stored; no zone conversion is applied to the wall-clock value.
// Records without any touch timestamp are excluded, as are hours with zero
// attempted. Rows come back in ascending hour order.
func RateByHour(records []prospects.Record) []HourRow {
	type bucket struct{ attempted, converted int }
	buckets := make(map[int]*bucket)
	for _, r := range records {
		touch := r.Touch()
		if !touch.Valid {
			continue
		}
		hour := touch.Time.Hour()
		b, ok := buckets[hour]
		if !ok {
			b = &bucket{}
			buckets[hour] = b
		}
		if Attempted(r) {
			b.attempted++
		}
		if Converted(r) {
			b.converted++
		}
	}

	var rows []HourRow
	for hour := 0; hour < 24; hour++ {
		b, ok := buckets[hour]
		if !ok || b.attempted == 0 {
			continue
		}
		rows = append(rows, HourRow{
			Hour:      hour,
			Attempted: b.attempted,
			Converted: b.converted,
			Rate:      round1(rate(b.converted, b.attempted)),
		})
	}
	return rows
}

// WeekdayRow is one weekday bucket.
type WeekdayRow struct {
	Weekday   string  `json:"weekday"`
	Attempted int     `json:"attempted"`
	Converted int     `json:"converted"`
	Rate      float64 `json:"rate"`
}

// weekdayOrder is the canonical Monday-first display order.
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// RateByWeekday groups conversion rates by the touch timestamp's weekday,
// in Monday-to-Sunday order. Weekdays with no data are dropped entirely.
func RateByWeekday(records []prospects.Record) []WeekdayRow {
	type bucket struct{ attempted, converted int }
	buckets := make(map[time.Weekday]*bucket)
	for _, r := range records {
		touch := r.Touch()
		if !touch.Valid {
			continue
		}
		day := touch.Time.Weekday()
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		if Attempted(r) {
			b.attempted++
		}
		if Converted(r) {
			b.converted++
		}
	}

	var rows []WeekdayRow
	for _, day := range weekdayOrder {
		b, ok := buckets[day]
		if !ok || b.attempted == 0 {
			continue
		}
		rows = append(rows, WeekdayRow{
			Weekday:   day.String(),
			Attempted: b.attempted,
			Converted: b.converted,
			Rate:      round1(rate(b.converted, b.attempted)),
		})
	}
	return rows
}

func rate(converted, attempted int) float64 {
	if attempted == 0 {
		return 0.0
	}
	return float64(converted) / float64(attempted) * 100.0
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

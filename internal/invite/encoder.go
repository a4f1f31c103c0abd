// Package invite encodes prospect meetings as iCalendar documents. Unlike
// the normalizer and renderer, timezone resolution here fails loudly: a
// silently wrong meeting time is worse than a blocked export.
package invite

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wolfman30/prospecting-manager/internal/mailmerge"
	"github.com/wolfman30/prospecting-manager/internal/prospects"
)

// DefaultDescriptionTemplate is the example invite description offered to
// operators. Placeholders: {name}, {company}, {notes}.
const DefaultDescriptionTemplate = "Meeting with {name} ({company}).\n\nNotes: {notes}\n"

// CommonTimezones lists the zone choices surfaced in the configuration UI.
var CommonTimezones = []string{
	"America/New_York", "America/Chicago", "America/Denver", "America/Los_Angeles",
	"America/Phoenix", "America/Anchorage", "America/Honolulu", "UTC",
}

const stampLayout = "20060102T150405Z"

var calendarHeader = []string{
	"BEGIN:VCALENDAR",
	"VERSION:2.0",
	"PRODID:-//Prospecting Manager//EN",
	"CALSCALE:GREGORIAN",
	"METHOD:PUBLISH",
}

// Options configures invite encoding. Timezone must be a resolvable IANA
// zone identifier and DurationMinutes must be positive.
type Options struct {
	Timezone            string
	DurationMinutes     int
	OrganizerName       string
	OrganizerEmail      string
	Location            string
	DescriptionTemplate string
}

// Encoder turns records with a meeting time into calendar documents.
type Encoder struct {
	opts Options
	loc  *time.Location

	// injectable for deterministic tests
	now    func() time.Time
	newUID func() string
}

// NewEncoder resolves the configured timezone up front. An unresolvable
// zone is a surfaced error since it would corrupt every timestamp.
func NewEncoder(opts Options) (*Encoder, error) {
	if opts.DurationMinutes <= 0 {
		return nil, fmt.Errorf("invite: duration must be positive, got %d", opts.DurationMinutes)
	}
	loc, err := time.LoadLocation(opts.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invite: resolve timezone %q: %w", opts.Timezone, err)
	}
	return &Encoder{
		opts: opts,
		loc:  loc,
		now:  time.Now,
		newUID: func() string {
			return uuid.New().String() + "@prospecting-manager"
		},
	}, nil
}

// Encode produces one VCALENDAR document for the record's meeting. A record
// with no meeting timestamp yields (nil, false): a valid no-op, not an
// error.
func (e *Encoder) Encode(r prospects.Record) ([]byte, bool) {
	if !r.MeetingDateTime.Valid {
		return nil, false
	}
	lines := append([]string(nil), calendarHeader...)
	lines = append(lines, e.eventLines(r)...)
	lines = append(lines, "END:VCALENDAR")
	return encodeLines(lines), true
}

// EncodeAll produces one combined VCALENDAR with one VEVENT per record that
// has a meeting timestamp. Records without one are silently skipped; the
// returned count tells callers how many events were actually produced.
func (e *Encoder) EncodeAll(records []prospects.Record) ([]byte, int) {
	lines := append([]string(nil), calendarHeader...)
	produced := 0
	for _, r := range records {
		if !r.MeetingDateTime.Valid {
			continue
		}
		lines = append(lines, e.eventLines(r)...)
		produced++
	}
	if produced == 0 {
		return nil, 0
	}
	lines = append(lines, "END:VCALENDAR")
	return encodeLines(lines), produced
}

// eventLines builds one VEVENT block. Line order is part of the contract:
// calendar clients that parse linearly depend on it.
func (e *Encoder) eventLines(r prospects.Record) []string {
	name := strings.TrimSpace(r.Name)
	company := strings.TrimSpace(r.Company)
	notes := strings.TrimSpace(r.Notes)

	start := e.startTime(r.MeetingDateTime)
	end := start.Add(time.Duration(e.opts.DurationMinutes) * time.Minute)

	summary := "Meeting – " + name
	if company != "" {
		summary = fmt.Sprintf("Meeting – %s (%s)", name, company)
	}

	description, err := mailmerge.Expand(e.opts.DescriptionTemplate, map[string]string{
		"name":    name,
		"company": company,
		"notes":   notes,
	})
	if err != nil {
		description = e.opts.DescriptionTemplate
	}
	description = strings.ReplaceAll(description, "\n", `\n`)

	lines := []string{
		"BEGIN:VEVENT",
		"UID:" + e.newUID(),
		"DTSTAMP:" + e.now().UTC().Format(stampLayout),
		"DTSTART:" + start.UTC().Format(stampLayout),
		"DTEND:" + end.UTC().Format(stampLayout),
		"SUMMARY:" + summary,
		"DESCRIPTION:" + description,
		"LOCATION:" + e.opts.Location,
		fmt.Sprintf("ORGANIZER;CN=%s:mailto:%s", e.opts.OrganizerName, e.opts.OrganizerEmail),
	}
	if email := strings.TrimSpace(r.Email); email != "" {
		lines = append(lines, fmt.Sprintf("ATTENDEE;CN=%s;ROLE=REQ-PARTICIPANT:mailto:%s", name, email))
	}
	return append(lines, "END:VEVENT")
}

// startTime interprets a naive meeting timestamp as wall-clock time in the
// configured zone; a timestamp that already carried a zone is used as-is.
func (e *Encoder) startTime(d prospects.DateTime) time.Time {
	if d.Zoned {
		return d.Time
	}
	t := d.Time
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, e.loc)
}

func encodeLines(lines []string) []byte {
	return []byte(strings.Join(lines, "\r\n") + "\r\n")
}

// Filename derives a download name for a single invite, e.g.
// "Ana_Lopez_20250304T1430.ics".
func Filename(r prospects.Record) string {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = "meeting"
	}
	name = strings.ReplaceAll(name, " ", "_")
	if !r.MeetingDateTime.Valid {
		return name + ".ics"
	}
	return name + "_" + r.MeetingDateTime.Time.Format("20060102T1504") + ".ics"
}

// ConfirmedMeetings selects the records the bulk export targets: status
// "Yes" (case-insensitive) with a meeting timestamp set.
func ConfirmedMeetings(records []prospects.Record) []prospects.Record {
	var out []prospects.Record
	for _, r := range records {
		if strings.EqualFold(r.Status, prospects.StatusYes) && r.MeetingDateTime.Valid {
			out = append(out, r)
		}
	}
	return out
}

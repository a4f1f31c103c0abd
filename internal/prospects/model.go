package prospects

import (
	"encoding/json"
	"strings"
	"time"
)

// Status values the outcome field is expected to carry. The field stays an
// open string so arbitrary imported values survive normalization.
const (
	StatusVoicemail = "Voicemail"
	StatusYes       = "Yes"
	StatusNo        = "No"
	StatusCallBack  = "Call back later"
)

// StatusOptions lists the selectable outcomes, leading with the empty
// (unknown) state.
var StatusOptions = []string{"", StatusVoicemail, StatusYes, StatusNo, StatusCallBack}

// Columns is the canonical column order for any serialized form of the
// record set. Exports always use exactly this order.
var Columns = []string{
	"Name", "Phone", "Email", "Company", "Title", "State",
	"Status", "MeetingDateTime", "CallbackDateTime", "LastCallDateTime",
	"Attempts", "Notes",
}

// DateTime is an optional timestamp. Valid reports presence; absence is a
// distinct state from any timestamp value. Zoned reports whether the source
// value carried an explicit UTC offset — naive values are wall-clock times
// interpreted in an operator-chosen zone only at invite-encoding time.
type DateTime struct {
	Time  time.Time
	Zoned bool
	Valid bool
}

const (
	naiveLayout = "2006-01-02 15:04:05"
	zonedLayout = "2006-01-02 15:04:05Z07:00"
)

var parseLayouts = []struct {
	layout string
	zoned  bool
}{
	{time.RFC3339, true},
	{zonedLayout, true},
	{"2006-01-02 15:04Z07:00", true},
	{naiveLayout, false},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02 15:04", false},
	{"2006-01-02T15:04", false},
	{"2006-01-02", false},
	{"1/2/2006 15:04:05", false},
	{"1/2/2006 15:04", false},
	{"1/2/2006 3:04 PM", false},
	{"1/2/2006", false},
}

// ParseDateTime parses a timestamp leniently. Any value that cannot be
// parsed becomes the absent timestamp; no error is ever raised.
func ParseDateTime(s string) DateTime {
	s = strings.TrimSpace(s)
	if s == "" {
		return DateTime{}
	}
	for _, l := range parseLayouts {
		if t, err := time.Parse(l.layout, s); err == nil {
			return DateTime{Time: t, Zoned: l.zoned, Valid: true}
		}
	}
	return DateTime{}
}

// String renders the timestamp in the canonical export form, or the empty
// string when absent. The form round-trips through ParseDateTime.
func (d DateTime) String() string {
	if !d.Valid {
		return ""
	}
	if d.Zoned {
		return d.Time.Format(zonedLayout)
	}
	return d.Time.Format(naiveLayout)
}

// MarshalJSON encodes the timestamp as its canonical string, or null when
// absent.
func (d DateTime) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts null or any string ParseDateTime understands;
// unparseable strings become the absent timestamp.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = DateTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*d = DateTime{}
		return nil
	}
	*d = ParseDateTime(s)
	return nil
}

// Record is one normalized prospect row. Every field is always present
// after normalization; optional fields default to empty / absent / zero.
type Record struct {
	Name             string   `json:"name"`
	Phone            string   `json:"phone"`
	Email            string   `json:"email"`
	Company          string   `json:"company"`
	Title            string   `json:"title"`
	State            string   `json:"state"`
	Status           string   `json:"status"`
	MeetingDateTime  DateTime `json:"meetingDateTime"`
	CallbackDateTime DateTime `json:"callbackDateTime"`
	LastCallDateTime DateTime `json:"lastCallDateTime"`
	Attempts         int      `json:"attempts"`
	Notes            string   `json:"notes"`
}

// Touch returns the record's touch timestamp: the first present value among
// last call, callback, and meeting, in that priority order.
func (r Record) Touch() DateTime {
	for _, dt := range []DateTime{r.LastCallDateTime, r.CallbackDateTime, r.MeetingDateTime} {
		if dt.Valid {
			return dt
		}
	}
	return DateTime{}
}

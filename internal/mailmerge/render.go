// Package mailmerge renders personalized outreach text from placeholder
// templates. Substitution failures never surface: the raw template is the
// designed fallback, because partial prospect data should not block the
// workflow.
package mailmerge

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/wolfman30/prospecting-manager/internal/prospects"
)

// DefaultSubjectTemplate is the example subject offered to operators.
const DefaultSubjectTemplate = "Quick intro – {name}"

// DefaultBodyTemplate is the example body offered to operators.
const DefaultBodyTemplate = "Hi {first_name},\n\n" +
	"Great speaking with you. Confirming our meeting on {meeting_date} at {meeting_time}.\n\n" +
	"If that time changes, just reply to this email.\n\n" +
	"Best,\nYour Name"

// Bindings computes the placeholder values derived from one record.
func Bindings(r prospects.Record) map[string]string {
	return map[string]string{
		"name":             r.Name,
		"first_name":       firstName(r.Name),
		"company":          r.Company,
		"meeting_datetime": r.MeetingDateTime.String(),
		"meeting_date":     formatLongDate(r.MeetingDateTime),
		"meeting_time":     formatClockTime(r.MeetingDateTime),
	}
}

// Expand substitutes {placeholder} markers in a single linear pass. Doubled
// braces are literals. Unknown, empty, or unclosed placeholders are errors;
// callers decide whether to fall back.
func Expand(template string, values map[string]string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(template); {
		switch template[i] {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("mailmerge: unclosed placeholder at offset %d", i)
			}
			key := template[i+1 : i+1+end]
			val, ok := values[key]
			if !ok {
				return "", fmt.Errorf("mailmerge: unknown placeholder %q", key)
			}
			b.WriteString(val)
			i += end + 2
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				b.WriteByte('}')
				i += 2
				continue
			}
			return "", fmt.Errorf("mailmerge: unmatched '}' at offset %d", i)
		default:
			b.WriteByte(template[i])
			i++
		}
	}
	return b.String(), nil
}

// Render substitutes the record's bindings into the subject and body
// templates. Each field falls back to its raw template text independently
// on any substitution failure; Render never errors.
func Render(r prospects.Record, subjectTemplate, bodyTemplate string) (subject, body string) {
	values := Bindings(r)

	subject, err := Expand(subjectTemplate, values)
	if err != nil {
		subject = subjectTemplate
	}
	body, err = Expand(bodyTemplate, values)
	if err != nil {
		body = bodyTemplate
	}
	return subject, body
}

// Email is one rendered outreach message for an email-bearing prospect.
type Email struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Batch renders one Email per record that has a non-empty email address;
// records without one are excluded, not defaulted.
func Batch(records []prospects.Record, subjectTemplate, bodyTemplate string) []Email {
	var out []Email
	for _, r := range records {
		email := strings.TrimSpace(r.Email)
		if email == "" {
			continue
		}
		subject, body := Render(r, subjectTemplate, bodyTemplate)
		out = append(out, Email{
			Name:    r.Name,
			Email:   email,
			Subject: subject,
			Body:    body,
		})
	}
	return out
}

// MailtoLink builds a mail-compose URI for handoff to an external client.
// Construction only; nothing is sent.
func MailtoLink(email, subject, body string) string {
	return "mailto:" + email + "?subject=" + escape(subject) + "&body=" + escape(body)
}

// escape percent-encodes for a mailto query component, with spaces as %20
// rather than '+'.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// firstName returns the first whitespace-delimited token of the full name.
func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// formatLongDate renders e.g. "March 04, 2025", or "" when absent.
func formatLongDate(d prospects.DateTime) string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format("January 02, 2006")
}

// formatClockTime renders a 12-hour clock with no leading zero, e.g.
// "2:30 PM", or "" when absent.
func formatClockTime(d prospects.DateTime) string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format("3:04 PM")
}

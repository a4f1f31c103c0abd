package prospects

import (
	"strconv"
	"strings"
)

// Table is the boundary shape for tabular data: named columns over string
// cells. Spreadsheet reading/writing lives outside this package; everything
// here works on Tables.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Normalize coerces arbitrary imported tabular data into canonical records.
// Column matching is case-insensitive with no fuzzy matching; unmatched
// input columns are dropped and missing ones are defaulted. It never fails:
// unparseable timestamps become absent and unparseable attempts become 0.
func Normalize(t Table) []Record {
	idx := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		name := strings.ToLower(strings.TrimSpace(c))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, Record{
			Name:             cell(row, "name"),
			Phone:            cell(row, "phone"),
			Email:            cell(row, "email"),
			Company:          cell(row, "company"),
			Title:            cell(row, "title"),
			State:            cell(row, "state"),
			Status:           cell(row, "status"),
			MeetingDateTime:  ParseDateTime(cell(row, "meetingdatetime")),
			CallbackDateTime: ParseDateTime(cell(row, "callbackdatetime")),
			LastCallDateTime: ParseDateTime(cell(row, "lastcalldatetime")),
			Attempts:         parseAttempts(cell(row, "attempts")),
			Notes:            cell(row, "notes"),
		})
	}
	return records
}

// parseAttempts coerces an attempts cell to a non-negative integer.
// Numeric values (including floats like "3.0") are truncated; anything else
// defaults to 0, and negatives clamp to 0.
func parseAttempts(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0
		}
		n = int(f)
	}
	if n < 0 {
		return 0
	}
	return n
}

// Export serializes records back to the canonical table: fixed column
// order, timestamps in their round-trippable string form.
func Export(records []Record) Table {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Name,
			r.Phone,
			r.Email,
			r.Company,
			r.Title,
			r.State,
			r.Status,
			r.MeetingDateTime.String(),
			r.CallbackDateTime.String(),
			r.LastCallDateTime.String(),
			strconv.Itoa(r.Attempts),
			r.Notes,
		})
	}
	cols := make([]string, len(Columns))
	copy(cols, Columns)
	return Table{Columns: cols, Rows: rows}
}

// Contacts projects the record set to the Name/Phone/Email extract.
func Contacts(records []Record) Table {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Name, r.Phone, r.Email})
	}
	return Table{Columns: []string{"Name", "Phone", "Email"}, Rows: rows}
}

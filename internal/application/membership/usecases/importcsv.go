package usecases

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/parlourcover/parlour/internal/shared/biztime"
)

const (
	colFirstName   = "first_name"
	colLastName    = "last_name"
	colType        = "type"
	colRelation    = "relation_to_main_member"
	colIDNumber    = "id_number"
	colDateOfBirth = "date_of_birth"
	colNumber      = "number"
	colDateJoined  = "date_joined"
)

var headerAliases = map[string]string{
	"name":             colFirstName,
	"first_names":      colFirstName,
	"surname":          colLastName,
	"member_type":      colType,
	"relation":         colRelation,
	"relationship":     colRelation,
	"id":               colIDNumber,
	"id_no":            colIDNumber,
	"identity_number":  colIDNumber,
	"dob":              colDateOfBirth,
	"birth_date":       colDateOfBirth,
	"phone":            colNumber,
	"phone_number":     colNumber,
	"contact_number":   colNumber,
	"joined":           colDateJoined,
	"date_of_joining":  colDateJoined,
	"membership_start": colDateJoined,
}

// Single-digit layout tokens also accept zero-padded values.
var importDateLayouts = []string{"2/1/2006", "2-1-2006", "2006/1/2", "2006-1-2"}

var errEmptyImport = errors.New("csv file has no header row")

// csvRow is one data row keyed by canonical column name. Row counts data rows
// from 1. ParseErr is set when the row is malformed and Fields is empty.
type csvRow struct {
	Row      int
	Fields   map[string]string
	ParseErr error
}

func (r csvRow) get(col string) string {
	return strings.TrimSpace(r.Fields[col])
}

// readMemberCSV parses a member import file. Columns are matched by header
// name, in any order; unknown columns are ignored. A malformed data row is
// returned with ParseErr set so the rows around it still import.
func readMemberCSV(r io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errEmptyImport
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = canonicalColumn(h)
	}
	if missing := missingColumns(columns); len(missing) > 0 {
		return nil, fmt.Errorf("csv header is missing columns: %s", strings.Join(missing, ", "))
	}

	var rows []csvRow
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			rows = append(rows, csvRow{Row: line, ParseErr: parseErr.Err})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", line, err)
		}
		if blankRecord(record) {
			continue
		}
		fields := make(map[string]string, len(columns))
		for i, value := range record {
			if i < len(columns) && columns[i] != "" {
				fields[columns[i]] = value
			}
		}
		rows = append(rows, csvRow{Row: line, Fields: fields})
	}
	return rows, nil
}

func canonicalColumn(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.Join(strings.FieldsFunc(h, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "_")
	if alias, ok := headerAliases[h]; ok {
		return alias
	}
	return h
}

func missingColumns(columns []string) []string {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	var missing []string
	for _, required := range []string{colFirstName, colLastName, colType, colRelation} {
		if !present[required] {
			missing = append(missing, required)
		}
	}
	if !present[colIDNumber] && !present[colDateOfBirth] {
		missing = append(missing, colIDNumber+" or "+colDateOfBirth)
	}
	return missing
}

func blankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseImportDate accepts dd/mm/yyyy, dd-mm-yyyy, yyyy/mm/dd and yyyy-mm-dd.
func parseImportDate(s string) (time.Time, error) {
	for _, layout := range importDateLayouts {
		if t, err := time.ParseInLocation(layout, s, biztime.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// titleName normalises "mARY-anne  van wyk" to "Mary-Anne Van Wyk".
func titleName(s string) string {
	return cases.Title(language.English).String(strings.Join(strings.Fields(s), " "))
}

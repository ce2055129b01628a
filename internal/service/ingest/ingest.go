package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jwalitptl/outreach-api/internal/model"
	"github.com/jwalitptl/outreach-api/pkg/errors"
)

// Column labels as they appear in the header row of operator spreadsheets.
// Matching is case-insensitive after trimming; unrecognized columns are
// ignored and missing columns default every cell to "".
var headerFields = map[string]func(*model.Contact, string){
	"record number":      func(c *model.Contact, v string) { c.RecordNumber = v },
	"status":             func(c *model.Contact, v string) { c.Status = v },
	"full name":          func(c *model.Contact, v string) { c.FullName = v },
	"neighborhood":       func(c *model.Contact, v string) { c.Neighborhood = v },
	"phone (display)":    func(c *model.Contact, v string) { c.PhoneDisplay = v },
	"phone (normalized)": func(c *model.Contact, v string) { c.PhoneNormalized = v },
	"email":              func(c *model.Contact, v string) { c.Email = v },
	"age":                func(c *model.Contact, v string) { c.Age = v },
	"shift preference":   func(c *model.Contact, v string) { c.ShiftPreference = v },
}

// ParseCSV reads a delimited-text spreadsheet with a header row and returns
// the normalized contacts in file order. A structural parse failure aborts
// the whole ingestion; no partial result is returned.
func ParseCSV(r io.Reader) ([]*model.Contact, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParseError(fmt.Errorf("malformed CSV: %w", err))
	}
	return fromRows(rows)
}

func fromRows(rows [][]string) ([]*model.Contact, error) {
	if len(rows) == 0 {
		return nil, errors.NewParseError(fmt.Errorf("spreadsheet has no header row"))
	}

	setters := make([]func(*model.Contact, string), len(rows[0]))
	for i, label := range rows[0] {
		setters[i] = headerFields[strings.ToLower(strings.TrimSpace(label))]
	}

	contacts := make([]*model.Contact, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		contact := &model.Contact{}
		for i, cell := range row {
			if i < len(setters) && setters[i] != nil {
				setters[i](contact, strings.TrimSpace(cell))
			}
		}
		contacts = append(contacts, contact)
	}
	return contacts, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// UniqueShiftValues collects distinct non-empty shift preferences in
// first-seen order. The console uses these to build its filter chips.
func UniqueShiftValues(contacts []*model.Contact) []string {
	seen := make(map[string]struct{})
	var shifts []string
	for _, c := range contacts {
		if c.ShiftPreference == "" {
			continue
		}
		if _, ok := seen[c.ShiftPreference]; ok {
			continue
		}
		seen[c.ShiftPreference] = struct{}{}
		shifts = append(shifts, c.ShiftPreference)
	}
	return shifts
}

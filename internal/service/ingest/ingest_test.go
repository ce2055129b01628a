package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jwalitptl/outreach-api/pkg/errors"
)

const sampleCSV = `Record Number,Status,Full Name,Neighborhood,Phone (display),Phone (normalized),Email,Age,Shift Preference
1,confirmed,Ana Souza,Centro,(11) 99999-0001,5511999990001,ana@example.com,28,Morning
2,pending,Bruno Lima,Jardins,(11) 99999-0002,5511999990002,bruno@example.com,35,Evening

3,confirmed,Clara Dias,Centro,(11) 99999-0003,5511999990003,,,Morning
`

func TestParseCSV(t *testing.T) {
	contacts, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, contacts, 3)

	assert.Equal(t, "1", contacts[0].RecordNumber)
	assert.Equal(t, "confirmed", contacts[0].Status)
	assert.Equal(t, "Ana Souza", contacts[0].FullName)
	assert.Equal(t, "Centro", contacts[0].Neighborhood)
	assert.Equal(t, "(11) 99999-0001", contacts[0].PhoneDisplay)
	assert.Equal(t, "5511999990001", contacts[0].PhoneNormalized)
	assert.Equal(t, "ana@example.com", contacts[0].Email)
	assert.Equal(t, "28", contacts[0].Age)
	assert.Equal(t, "Morning", contacts[0].ShiftPreference)

	// Blank cells come back as empty strings.
	assert.Equal(t, "", contacts[2].Email)
	assert.Equal(t, "", contacts[2].Age)

	for _, c := range contacts {
		assert.False(t, c.Selected)
		assert.False(t, c.MessageSent)
	}
}

func TestParseCSVHeaderCaseInsensitive(t *testing.T) {
	csv := "FULL NAME,phone (NORMALIZED)\nAna,5511999990001\n"
	contacts, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Ana", contacts[0].FullName)
	assert.Equal(t, "5511999990001", contacts[0].PhoneNormalized)
}

func TestParseCSVIgnoresUnknownColumns(t *testing.T) {
	csv := "Full Name,Favorite Color,Email\nAna,blue,ana@example.com\n"
	contacts, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Ana", contacts[0].FullName)
	assert.Equal(t, "ana@example.com", contacts[0].Email)
}

func TestParseCSVMalformed(t *testing.T) {
	csv := "Full Name,Email\n\"unterminated,ana@example.com\n"
	contacts, err := ParseCSV(strings.NewReader(csv))
	assert.Nil(t, contacts)
	assert.True(t, errors.IsCode(err, errors.ErrParse))
}

func TestParseCSVEmpty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.True(t, errors.IsCode(err, errors.ErrParse))
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Full Name", "Phone (normalized)", "Shift Preference"},
		{"Ana Souza", "5511999990001", "Morning"},
		{"Bruno Lima", "5511999990002", "Evening"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	contacts, err := ParseXLSX(&buf)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Ana Souza", contacts[0].FullName)
	assert.Equal(t, "Evening", contacts[1].ShiftPreference)
}

func TestParseXLSXMalformed(t *testing.T) {
	_, err := ParseXLSX(strings.NewReader("not a workbook"))
	assert.True(t, errors.IsCode(err, errors.ErrParse))
}

func TestUniqueShiftValues(t *testing.T) {
	contacts, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	shifts := UniqueShiftValues(contacts)
	assert.Equal(t, []string{"Morning", "Evening"}, shifts)
}

func TestUniqueShiftValuesSkipsEmpty(t *testing.T) {
	csv := "Full Name,Shift Preference\nAna,\nBruno,Night\nClara,Night\n"
	contacts, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []string{"Night"}, UniqueShiftValues(contacts))
}

package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jwalitptl/outreach-api/internal/model"
	"github.com/jwalitptl/outreach-api/pkg/errors"
)

// ParseXLSX reads the first sheet of an Excel workbook with the same header
// contract as ParseCSV.
func ParseXLSX(r io.Reader) ([]*model.Contact, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.NewParseError(fmt.Errorf("malformed XLSX: %w", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParseError(fmt.Errorf("workbook has no sheets"))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParseError(fmt.Errorf("failed to read sheet %q: %w", sheets[0], err))
	}
	return fromRows(rows)
}

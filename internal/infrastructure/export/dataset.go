// Package export serializes catalog and document listings to CSV and XLSX.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"billbook/internal/core/apperror"
)

// Format selects the output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format string, defaulting to CSV.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return "", apperror.NewValidation("unsupported export format").
			WithDetail("format", s)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// Dataset is a tabular result ready for encoding.
type Dataset struct {
	// Name becomes the download filename stem and the XLSX sheet name.
	Name    string
	Headers []string
	Rows    [][]any
}

// Filename returns the download name for the format.
func (d Dataset) Filename(f Format) string {
	return d.Name + "." + string(f)
}

// Encode serializes the dataset in the requested format.
func (d Dataset) Encode(f Format) ([]byte, error) {
	if f == FormatXLSX {
		return d.encodeXLSX()
	}
	return d.encodeCSV()
}

func (d Dataset) encodeCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(d.Headers); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(d.Headers))
	for _, row := range d.Rows {
		for i, cell := range row {
			record[i] = cellString(cell)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

func (d Dataset) encodeXLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if d.Name != "" {
		if err := f.SetSheetName(sheet, d.Name); err != nil {
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
		sheet = d.Name
	}

	for i, h := range d.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("set header: %w", err)
		}
	}

	for rowIdx, row := range d.Rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("set cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}

	return buf.Bytes(), nil
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

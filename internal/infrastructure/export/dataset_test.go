package export

import (
	"bytes"
	"strings"
	"testing"

	"billbook/internal/core/apperror"
)

func sampleDataset() Dataset {
	return Dataset{
		Name:    "bills",
		Headers: []string{"Invoice Number", "Customer Name", "Total Amount"},
		Rows: [][]any{
			{"SQE-2026-08-00001", "Acme Traders", "236.00"},
			{"SQE-2026-08-00002", "Walk-in, with comma", "59.00"},
		},
	}
}

func TestDataset_EncodeCSV(t *testing.T) {
	out, err := sampleDataset().Encode(FormatCSV)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}
	if lines[0] != "Invoice Number,Customer Name,Total Amount" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[2], `"Walk-in, with comma"`) {
		t.Errorf("comma not quoted: %s", lines[2])
	}
}

func TestDataset_EncodeXLSX(t *testing.T) {
	out, err := sampleDataset().Encode(FormatXLSX)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// XLSX is a zip container
	if !bytes.HasPrefix(out, []byte("PK")) {
		t.Errorf("output is not a zip archive")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatCSV},
		{in: "csv", want: FormatCSV},
		{in: "xlsx", want: FormatXLSX},
		{in: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q) expected error", tt.in)
			} else if !apperror.IsAppError(err) {
				t.Errorf("ParseFormat(%q) expected AppError, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDataset_Filename(t *testing.T) {
	ds := Dataset{Name: "customers"}
	if got := ds.Filename(FormatCSV); got != "customers.csv" {
		t.Errorf("Filename = %s", got)
	}
	if got := ds.Filename(FormatXLSX); got != "customers.xlsx" {
		t.Errorf("Filename = %s", got)
	}
}

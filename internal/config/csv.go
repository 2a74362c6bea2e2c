package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/christophergentle/perfgraph/internal/series"
)

// LoadSamplesCSV reads samples from a CSV file with rows of
// date,value[,label]. A first row whose date column is not a date and
// whose value column holds no digits is treated as a header.
func LoadSamplesCSV(path string) ([]series.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open samples file: %w", err)
	}
	defer f.Close()

	return ReadSamplesCSV(f)
}

// ReadSamplesCSV reads samples in the LoadSamplesCSV format
func ReadSamplesCSV(r io.Reader) ([]series.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // allow 2 or 3 fields
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse samples file: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("samples file is empty")
	}

	var samples []series.Sample
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d: expected 2 or 3 columns, got %d", i+1, len(row))
		}
		valueStr := strings.TrimSpace(row[1])
		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			if i == 0 && isHeader(row) {
				continue
			}
			return nil, fmt.Errorf("row %d: invalid value %q: %w", i+1, valueStr, err)
		}

		sample := series.Sample{Date: strings.TrimSpace(row[0]), Value: value}
		if len(row) >= 3 {
			sample.Label = strings.TrimSpace(row[2])
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func isHeader(row []string) bool {
	if _, err := series.ParseDate(strings.TrimSpace(row[0])); err == nil {
		return false
	}
	return !strings.ContainsAny(row[1], "0123456789")
}

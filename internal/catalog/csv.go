package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/civic_pulse/mlservice/internal/models"
)

// LoadCSV reads the complaint history file and builds a Catalog from it.
// Any malformed row fails the whole load.
func LoadCSV(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	records, errs := ParseCSV(f)
	if len(errs) > 0 {
		return nil, fmt.Errorf("parse catalog %s: %s", path, strings.Join(errs, "; "))
	}
	return New(records)
}

// countColumns are the accepted headers of the optional complaint count.
var countColumns = []string{"total_complaints", "total complaints", "complaints", "total"}

// ParseCSV reads complaint rows and returns one message per row it rejects.
func ParseCSV(r io.Reader) ([]models.ComplaintRecord, []string) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	headers, err := reader.Read()
	if err != nil {
		return nil, []string{"failed to read header"}
	}
	index := headerIndex(headers)
	for _, required := range []string{"area", "zone", "year", "month"} {
		if _, ok := index[required]; !ok {
			return nil, []string{fmt.Sprintf("missing column %q", required)}
		}
	}

	hasCount := false
	for _, name := range countColumns {
		if _, ok := index[name]; ok {
			hasCount = true
		}
	}

	var errors []string
	var out []models.ComplaintRecord
	line := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			errors = append(errors, err.Error())
			continue
		}

		area := getFieldAny(rec, index, "area")
		zone := getFieldAny(rec, index, "zone")
		if area == "" || zone == "" {
			errors = append(errors, fmt.Sprintf("line %d: area and zone required", line))
			continue
		}
		year, err := parseInt(getFieldAny(rec, index, "year"))
		if err != nil {
			errors = append(errors, fmt.Sprintf("line %d: year: %v", line, err))
			continue
		}
		month, err := parseInt(getFieldAny(rec, index, "month"))
		if err != nil || month < 1 || month > 12 {
			errors = append(errors, fmt.Sprintf("line %d: month must be 1-12", line))
			continue
		}
		total := 0
		if hasCount {
			total, err = parseInt(getFieldAny(rec, index, countColumns...))
			if err != nil || total < 0 {
				errors = append(errors, fmt.Sprintf("line %d: total_complaints must be a non-negative whole number", line))
				continue
			}
		}

		out = append(out, models.ComplaintRecord{
			Area:            area,
			Zone:            zone,
			Year:            year,
			Month:           month,
			TotalComplaints: total,
		})
	}
	return out, errors
}

// parseInt accepts "2023" as well as "2023.0", which dataframe exports produce.
func parseInt(v string) (int, error) {
	if i, err := strconv.Atoi(v); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not a whole number", v)
	}
	return int(f), nil
}

func headerIndex(headers []string) map[string]int {
	idx := map[string]int{}
	for i, h := range headers {
		idx[normalizeHeader(h)] = i
	}
	return idx
}

func getField(rec []string, idx map[string]int, name string) string {
	pos, ok := idx[name]
	if !ok || pos >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[pos])
}

func getFieldAny(rec []string, idx map[string]int, names ...string) string {
	for _, name := range names {
		if v := getField(rec, idx, normalizeHeader(name)); v != "" {
			return v
		}
	}
	return ""
}

func normalizeHeader(h string) string {
	h = strings.ReplaceAll(h, "\ufeff", "")
	return strings.ToLower(strings.TrimSpace(h))
}

package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civic_pulse/mlservice/internal/models"
)

func fixtureRecords() []models.ComplaintRecord {
	return []models.ComplaintRecord{
		{Area: "Connaught Place", Zone: "Central", Year: 2022, Month: 5, TotalComplaints: 120},
		{Area: "Lajpat Nagar", Zone: "South", Year: 2022, Month: 11, TotalComplaints: 80},
		{Area: "Lajpat Nagar", Zone: "South East", Year: 2023, Month: 1, TotalComplaints: 95},
		{Area: "Connaught Place", Zone: "Central", Year: 2021, Month: 12, TotalComplaints: 110},
		{Area: "Rohini", Zone: "North West", Year: 2023, Month: 3, TotalComplaints: 60},
	}
}

func TestNewRejectsEmptyCatalog(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestFindLatestRecordPicksMaxYearMonth(t *testing.T) {
	c, err := New(fixtureRecords())
	require.NoError(t, err)

	rec, err := c.FindLatestRecord("Lajpat Nagar")
	require.NoError(t, err)
	assert.Equal(t, 2023, rec.Year)
	assert.Equal(t, 1, rec.Month)

	rec, err = c.FindLatestRecord("Connaught Place")
	require.NoError(t, err)
	assert.Equal(t, 2022, rec.Year)
	assert.Equal(t, 5, rec.Month)
}

func TestFindLatestRecordComparesMonthWithinYear(t *testing.T) {
	c, err := New([]models.ComplaintRecord{
		{Area: "X", Zone: "Z", Year: 2023, Month: 2},
		{Area: "X", Zone: "Z", Year: 2023, Month: 10},
		{Area: "X", Zone: "Z", Year: 2023, Month: 9},
	})
	require.NoError(t, err)

	rec, err := c.FindLatestRecord("X")
	require.NoError(t, err)
	assert.Equal(t, 10, rec.Month)
}

func TestFindLatestRecordUnknownArea(t *testing.T) {
	c, err := New(fixtureRecords())
	require.NoError(t, err)

	_, err = c.FindLatestRecord("Atlantis")
	assert.ErrorIs(t, err, ErrAreaNotFound)
}

func TestZoneForAreaUsesFirstStoredRecord(t *testing.T) {
	c, err := New(fixtureRecords())
	require.NoError(t, err)

	zone, err := c.ZoneForArea("Lajpat Nagar")
	require.NoError(t, err)
	assert.Equal(t, "South", zone, "zone must come from the first stored record, not the latest")
}

func TestAreaNamesDistinctInLoadOrder(t *testing.T) {
	c, err := New(fixtureRecords())
	require.NoError(t, err)

	assert.Equal(t, []string{"Connaught Place", "Lajpat Nagar", "Rohini"}, c.AreaNames())
	assert.Equal(t, []string{"Central", "South", "South East", "North West"}, c.Zones())
	assert.Equal(t, "Connaught Place", c.First().Area)
	assert.Equal(t, 5, c.Len())
}

func TestCatalogIsNotAliasedToInput(t *testing.T) {
	records := fixtureRecords()
	c, err := New(records)
	require.NoError(t, err)

	records[0].Area = "Mutated"
	assert.Equal(t, "Connaught Place", c.First().Area)

	names := c.AreaNames()
	names[0] = "Mutated"
	assert.Equal(t, "Connaught Place", c.AreaNames()[0])
}

func TestParseCSV(t *testing.T) {
	content := "\ufeffArea,Zone,Year,Month,Total_Complaints\n" +
		"Connaught Place,Central,2022,5,120\n" +
		"Rohini, North West ,2023.0,3,60\n"

	records, errs := ParseCSV(strings.NewReader(content))
	require.Empty(t, errs)
	require.Len(t, records, 2)
	assert.Equal(t, models.ComplaintRecord{Area: "Rohini", Zone: "North West", Year: 2023, Month: 3, TotalComplaints: 60}, records[1])
}

func TestParseCSVReportsBadRows(t *testing.T) {
	content := "Area,Zone,Year,Month,Complaints\n" +
		"Rohini,North West,2023,13,60\n" +
		",North West,2023,1,60\n" +
		"Rohini,North West,abc,1,60\n" +
		"Rohini,North West,2023,1,abc\n" +
		"Saket,South,2023,1,-7\n" +
		"Saket,South,2023,2,\n"

	records, errs := ParseCSV(strings.NewReader(content))
	assert.Empty(t, records)
	require.Len(t, errs, 6)
	assert.Contains(t, errs[3], "line 5: total_complaints")
	assert.Contains(t, errs[4], "line 6: total_complaints")
}

func TestParseCSVCountColumnIsOptional(t *testing.T) {
	records, errs := ParseCSV(strings.NewReader("Area,Zone,Year,Month\nRohini,North West,2023,1\n"))
	require.Empty(t, errs)
	require.Len(t, records, 1)
	assert.Equal(t, 0, records[0].TotalComplaints)
}

func TestParseCSVMissingColumn(t *testing.T) {
	_, errs := ParseCSV(strings.NewReader("Area,Year,Month\nRohini,2023,1\n"))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "zone")
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complaints.csv")
	content := "Area,Zone,Year,Month,Total_Complaints\nRohini,North West,2023,3,60\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, "Rohini", c.First().Area)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

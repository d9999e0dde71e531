package catalog

import (
	"errors"
	"fmt"

	"github.com/civic_pulse/mlservice/internal/models"
)

var (
	ErrEmptyCatalog = errors.New("catalog has no records")
	ErrAreaNotFound = errors.New("area not found in catalog")
)

// Catalog is the read-only complaint history. Record order is the load order
// and is significant: the first record supplies the fallback area and the
// zone of an area comes from its first stored record.
type Catalog struct {
	records     []models.ComplaintRecord
	areas       []string
	firstByArea map[string]int
	latest      map[string]int
}

// New indexes records in load order. It fails with ErrEmptyCatalog when
// records is empty.
func New(records []models.ComplaintRecord) (*Catalog, error) {
	if len(records) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		records:     make([]models.ComplaintRecord, len(records)),
		firstByArea: map[string]int{},
		latest:      map[string]int{},
	}
	copy(c.records, records)

	for i, r := range c.records {
		if _, ok := c.firstByArea[r.Area]; !ok {
			c.firstByArea[r.Area] = i
			c.areas = append(c.areas, r.Area)
		}
		// strict comparison keeps the earliest record on equal (year, month)
		if j, ok := c.latest[r.Area]; !ok || c.records[j].Before(r) {
			c.latest[r.Area] = i
		}
	}
	return c, nil
}

// FindLatestRecord returns the most recent record for area by (year, month).
func (c *Catalog) FindLatestRecord(area string) (models.ComplaintRecord, error) {
	i, ok := c.latest[area]
	if !ok {
		return models.ComplaintRecord{}, fmt.Errorf("%w: %q", ErrAreaNotFound, area)
	}
	return c.records[i], nil
}

// ZoneForArea returns the zone of the first stored record for area, which is
// not necessarily the zone of its latest record.
func (c *Catalog) ZoneForArea(area string) (string, error) {
	i, ok := c.firstByArea[area]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrAreaNotFound, area)
	}
	return c.records[i].Zone, nil
}

// AreaNames returns the distinct areas in first-appearance order.
func (c *Catalog) AreaNames() []string {
	out := make([]string, len(c.areas))
	copy(out, c.areas)
	return out
}

// First returns the first loaded record, whose area is the fallback area.
func (c *Catalog) First() models.ComplaintRecord {
	return c.records[0]
}

func (c *Catalog) Len() int {
	return len(c.records)
}

// Zones returns the distinct zones in first-appearance order.
func (c *Catalog) Zones() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range c.records {
		if _, ok := seen[r.Zone]; ok {
			continue
		}
		seen[r.Zone] = struct{}{}
		out = append(out, r.Zone)
	}
	return out
}

// Records returns a copy of all records in load order.
func (c *Catalog) Records() []models.ComplaintRecord {
	out := make([]models.ComplaintRecord, len(c.records))
	copy(out, c.records)
	return out
}

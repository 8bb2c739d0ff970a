package engine

import (
	"time"

	"github.com/google/uuid"

	"student-performance-dashboard/app/models"
)

// Table is an immutable snapshot of the enriched dataset. It is built once
// per load and shared read-only between request handlers.
type Table struct {
	id       uuid.UUID
	loadedAt time.Time
	policy   ImputePolicy
	records  []models.EnrichedRecord
	options  models.FilterOptions
}

// NewTable enriches raw records into a new snapshot.
func NewTable(records []models.StudentRecord, policy ImputePolicy) *Table {
	enriched := Enrich(records, policy)
	return &Table{
		id:       uuid.New(),
		loadedAt: time.Now().UTC(),
		policy:   policy,
		records:  enriched,
		options:  Options(enriched),
	}
}

func (t *Table) ID() uuid.UUID {
	return t.id
}

func (t *Table) LoadedAt() time.Time {
	return t.loadedAt
}

func (t *Table) Policy() ImputePolicy {
	return t.policy
}

func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of every enriched record.
func (t *Table) Records() []models.EnrichedRecord {
	return Filter(t.records, Criteria{})
}

// Query returns a filtered copy of the table.
func (t *Table) Query(c Criteria) []models.EnrichedRecord {
	return Filter(t.records, c)
}

// Options lists the grades and genders of the whole table, independent of
// any filter.
func (t *Table) Options() models.FilterOptions {
	return models.FilterOptions{
		Grades:  append([]string(nil), t.options.Grades...),
		Genders: append([]string(nil), t.options.Genders...),
	}
}

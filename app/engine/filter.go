package engine

import "student-performance-dashboard/app/models"

// Criteria is a conjunction of optional equality constraints. An empty field
// means the constraint is not set.
type Criteria struct {
	Grade  string
	Gender string
}

func (c Criteria) IsEmpty() bool {
	return c.Grade == "" && c.Gender == ""
}

func (c Criteria) Match(r models.EnrichedRecord) bool {
	if c.Grade != "" && r.Grade != c.Grade {
		return false
	}
	if c.Gender != "" && r.Gender != c.Gender {
		return false
	}
	return true
}

// Filter returns the records matching every set constraint, in input order.
// The result is always a new slice; the input is never modified.
func Filter(records []models.EnrichedRecord, c Criteria) []models.EnrichedRecord {
	out := make([]models.EnrichedRecord, 0, len(records))
	for _, r := range records {
		if c.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

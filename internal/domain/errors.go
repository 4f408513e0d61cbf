package domain

import "fmt"

// MissingInputError signals that a required table is absent for a section.
// Fatal for that section only; sibling sections keep running.
type MissingInputError struct {
	Section string
	Table   string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("section %s: missing required %s table", e.Section, e.Table)
}

// DegenerateCategoryWarning is surfaced when a section has no qualifying-value
// articles at all. A valid outcome, but usually an upstream data gap.
type DegenerateCategoryWarning struct {
	Section string
}

func (e *DegenerateCategoryWarning) Error() string {
	return fmt.Sprintf("section %s: no articles with qualifying sales value (all category D)", e.Section)
}

package domain

import "strconv"

// DiagramDimension selects which part of a matching result a diagram shows.
type DiagramDimension uint8

const (
	// DiagramAll renders every match.
	DiagramAll DiagramDimension = iota
	// DiagramFamily renders the matches into one family.
	DiagramFamily
	// DiagramSample renders the matches into one sample.
	DiagramSample
)

// DiagramFilter restricts a diagram to one family or one sample, never both.
type DiagramFilter struct {
	Dimension DiagramDimension
	ID        int
}

// NoDiagramFilter renders the unfiltered result.
func NoDiagramFilter() DiagramFilter {
	return DiagramFilter{Dimension: DiagramAll}
}

// FamilyDiagramFilter restricts a diagram to one family.
func FamilyDiagramFilter(familyID int) DiagramFilter {
	return DiagramFilter{Dimension: DiagramFamily, ID: familyID}
}

// SampleDiagramFilter restricts a diagram to one sample.
func SampleDiagramFilter(sampleID int) DiagramFilter {
	return DiagramFilter{Dimension: DiagramSample, ID: sampleID}
}

// Suffix returns the artifact name suffix for the filter.
func (f DiagramFilter) Suffix() string {
	switch f.Dimension {
	case DiagramFamily:
		return "-famid_" + strconv.Itoa(f.ID)
	case DiagramSample:
		return "-samid_" + strconv.Itoa(f.ID)
	default:
		return ""
	}
}

// DiagramName returns the artifact file name for a job, filter and extension.
// The name only depends on its inputs, so job ids must never be reused for other results.
func DiagramName(jobID string, f DiagramFilter, ext string) string {
	return jobID + f.Suffix() + ext
}

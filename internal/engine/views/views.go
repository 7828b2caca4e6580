// Package views turns job results and remote listings into paginated, narrowed views.
package views

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"go.trai.ch/matchview/internal/core/domain"
)

// Query parameters interpreted by the views.
const (
	ParamSamplePage   = "samp"
	ParamFunctionPage = "funp"
	ParamFamilyPage   = "famp"
	ParamBlockPage    = "blkp"

	ParamFamilyID      = "famid"
	ParamSampleID      = "samid"
	ParamFunctionID    = "funid"
	ParamOtherFunction = "ofunid"

	ParamMinScore       = "min_score"
	ParamMinBlockLength = "min_block_length"
	ParamMaxBlockLength = "max_block_length"

	ParamCustomOrder = "custom"
	ParamSearchType  = "type"
)

// View is the outcome of resolving a job result.
type View interface {
	// JobInfo returns the job the view was built for.
	JobInfo() *domain.JobInfo
}

// Narrowing names the narrowing a matches view was built with.
type Narrowing uint8

const (
	// NarrowNone shows the unfiltered result.
	NarrowNone Narrowing = iota
	// NarrowFamily restricts matches to one family.
	NarrowFamily
	// NarrowSample restricts matches to one sample.
	NarrowSample
	// NarrowFunction restricts matches to one function.
	NarrowFunction
)

// String returns the name of the narrowing.
func (n Narrowing) String() string {
	switch n {
	case NarrowFamily:
		return "family"
	case NarrowSample:
		return "sample"
	case NarrowFunction:
		return "function"
	default:
		return "none"
	}
}

// InProgressView is returned while a known job has no result yet.
type InProgressView struct {
	Job *domain.JobInfo
}

// JobInfo implements View.
func (v *InProgressView) JobInfo() *domain.JobInfo { return v.Job }

// MatchesView presents a matching result, possibly narrowed, with its paginated lists.
// Page fields are nil for lists the narrowing does not show.
type MatchesView struct {
	Job       *domain.JobInfo
	Narrowing Narrowing
	Result    *domain.MatchingResult

	Family   *domain.Family
	Sample   *domain.Sample
	Function *domain.Function

	// DiagramPath is empty when no diagram applies or rendering failed.
	DiagramPath string

	SamplePage   *domain.Page
	FamilyPage   *domain.Page
	FunctionPage *domain.Page

	Samples          []domain.SampleMatch
	Families         []domain.SampleMatch
	Functions        []domain.AggregatedFunctionMatch
	FunctionMatches  []domain.FunctionMatch
	FamilyCount      int
	MatchedFunctions int
}

// JobInfo implements View.
func (v *MatchesView) JobInfo() *domain.JobInfo { return v.Job }

// FunctionVsView compares two functions side by side, bypassing the matching result.
type FunctionVsView struct {
	Job            *domain.JobInfo
	Function       *domain.Function
	Other          *domain.Function
	PicHashes      *domain.PicHashSummary
	OtherPicHashes *domain.PicHashSummary
}

// JobInfo implements View.
func (v *FunctionVsView) JobInfo() *domain.JobInfo { return v.Job }

// BlocksView lists the filtered unique blocks of a sample or family.
type BlocksView struct {
	Job       *domain.JobInfo
	SampleIDs []int
	FamilyID  *int
	Filter    domain.BlockFilter
	Page      domain.Page

	// Blocks holds the current page, each with its signature rendered.
	Blocks []domain.UniqueBlock
}

// JobInfo implements View.
func (v *BlocksView) JobInfo() *domain.JobInfo { return v.Job }

// CrossView is a reconciled cross compare.
type CrossView struct {
	Job *domain.JobInfo

	// CustomOrder is the raw ordering the view was requested with, empty for none.
	CustomOrder string
	Compare     *domain.CrossCompareView
}

// JobInfo implements View.
func (v *CrossView) JobInfo() *domain.JobInfo { return v.Job }

// SampleRedirectView points at the sample a submission job created.
type SampleRedirectView struct {
	Job      *domain.JobInfo
	SampleID int
}

// JobInfo implements View.
func (v *SampleRedirectView) JobInfo() *domain.JobInfo { return v.Job }

// queryInt reads an integer parameter. Missing and malformed values are absent.
func queryInt(values url.Values, key string) (int, bool) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// honored reports whether a narrowing lookup resolved. Unknown ids fall through
// to the next narrowing, every other failure is returned.
func honored(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return false, err
}

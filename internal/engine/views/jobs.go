package views

import (
	"context"
	"errors"
	"net/url"
	"sort"

	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/matchview/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Page parameters of the job listing sections.
const (
	ParamOthersPage   = "p_o"
	ParamOneVsOnePage = "p_1"
	ParamOneVsAllPage = "p_n"
	ParamCrossPage    = "p_c"
)

// Queue filters of the job listing sections. The opening parenthesis keeps
// one-vs-all jobs from matching one-vs-one ones.
const (
	filterOneVsOne = "getMatchesForSampleVs("
	filterOneVsAll = "getMatchesForSample("
	filterCross    = "combineMatchesToCross("
)

// JobOverview is a job with the jobs it depends on.
type JobOverview struct {
	Job      *domain.JobInfo
	Children []domain.JobInfo
}

// JobSection is one paginated window of the job queue.
type JobSection struct {
	Name   string
	Filter string
	Page   domain.Page
	Jobs   []domain.JobInfo
}

// JobListing groups the job queue into its sections.
type JobListing struct {
	Query    string
	Others   *JobSection
	OneVsOne *JobSection
	OneVsAll *JobSection
	Cross    *JobSection
}

// Sections returns the sections in display order.
func (l *JobListing) Sections() []*JobSection {
	return []*JobSection{l.Others, l.OneVsOne, l.OneVsAll, l.Cross}
}

// JobService inspects the job queue of the matching service.
type JobService struct {
	client ports.MatchingClient
	log    ports.Logger
	limits domain.PaginationConfig
}

// NewJobService creates a new JobService.
func NewJobService(client ports.MatchingClient, log ports.Logger, limits domain.PaginationConfig) *JobService {
	return &JobService{client: client, log: log, limits: limits}
}

// Overview returns the job and its dependencies ordered by job number.
// Dependencies the service no longer knows are skipped.
func (s *JobService) Overview(ctx context.Context, jobID string) (*JobOverview, error) {
	if err := domain.ValidateJobID(jobID); err != nil {
		return nil, err
	}
	job, err := s.client.GetJobData(ctx, jobID)
	if err != nil {
		return nil, err
	}

	children := make([]*domain.JobInfo, len(job.Dependencies))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range job.Dependencies {
		g.Go(func() error {
			child, err := s.client.GetJobData(gctx, id)
			if errors.Is(err, domain.ErrNotFound) {
				s.log.Warn("skipping missing child job " + id)
				return nil
			}
			if err != nil {
				return err
			}
			children[i] = child
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview := &JobOverview{Job: job}
	for _, child := range children {
		if child != nil {
			overview.Children = append(overview.Children, *child)
		}
	}
	sort.SliceStable(overview.Children, func(i, j int) bool {
		return overview.Children[i].Number < overview.Children[j].Number
	})
	return overview, nil
}

// List returns the sections of the job queue. query filters the "others" section.
func (s *JobService) List(ctx context.Context, query string, values url.Values) (*JobListing, error) {
	listing := &JobListing{
		Query:    query,
		Others:   &JobSection{Name: "others", Filter: query},
		OneVsOne: &JobSection{Name: "one-vs-one", Filter: filterOneVsOne},
		OneVsAll: &JobSection{Name: "one-vs-all", Filter: filterOneVsAll},
		Cross:    &JobSection{Name: "cross compare", Filter: filterCross},
	}
	params := map[*JobSection]string{
		listing.Others:   ParamOthersPage,
		listing.OneVsOne: ParamOneVsOnePage,
		listing.OneVsAll: ParamOneVsAllPage,
		listing.Cross:    ParamCrossPage,
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, section := range listing.Sections() {
		g.Go(func() error {
			return s.fill(gctx, section, params[section], values)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *JobService) fill(ctx context.Context, section *JobSection, param string, values url.Values) error {
	total, err := s.client.GetJobCount(ctx, section.Filter)
	if err != nil {
		return err
	}
	section.Page = domain.NewPage(values, param, total, s.limits.DefaultLimit)
	section.Jobs, err = s.client.GetQueueData(ctx, domain.QueueQuery{
		Start:  section.Page.Start,
		Limit:  section.Page.Limit,
		Filter: section.Filter,
	})
	return err
}

package views

import (
	"context"
	"errors"
	"net/url"

	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/matchview/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// ResultService resolves a job id into a view of its result.
type ResultService struct {
	client     ports.MatchingClient
	cache      ports.ResultCache
	diagrams   ports.DiagramCache
	tracer     ports.Tracer
	log        ports.Logger
	reconciler *Reconciler
	limits     domain.PaginationConfig
	flight     *singleflight.Group
}

// Option configures a ResultService.
type Option func(*ResultService)

// WithLimits overrides the page sizes.
func WithLimits(limits domain.PaginationConfig) Option {
	return func(s *ResultService) {
		s.limits = limits
	}
}

// WithSingleFlight collapses concurrent remote fetches of the same job into one call.
func WithSingleFlight(enabled bool) Option {
	return func(s *ResultService) {
		if enabled {
			s.flight = &singleflight.Group{}
		} else {
			s.flight = nil
		}
	}
}

// NewResultService creates a new ResultService. diagrams may be nil, in which case
// no diagrams are rendered.
func NewResultService(
	client ports.MatchingClient,
	cache ports.ResultCache,
	diagrams ports.DiagramCache,
	tracer ports.Tracer,
	log ports.Logger,
	opts ...Option,
) *ResultService {
	s := &ResultService{
		client:     client,
		cache:      cache,
		diagrams:   diagrams,
		tracer:     tracer,
		log:        log,
		reconciler: NewReconciler(client, tracer),
		limits:     domain.DefaultConfig().Pagination,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve loads the result of a job and builds the view selected by the query values.
//
// The payload comes from the local cache when present, otherwise from the matching
// service, in which case it is appended to the cache. A job without a result yields
// an InProgressView. Unknown job ids fail with domain.ErrNotFound.
func (s *ResultService) Resolve(ctx context.Context, jobID string, values url.Values) (View, error) {
	ctx, span := s.tracer.Start(ctx, "result.resolve", ports.WithAttribute("job_id", jobID))
	defer span.End()

	view, err := s.resolve(ctx, jobID, values)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return view, nil
}

func (s *ResultService) resolve(ctx context.Context, jobID string, values url.Values) (View, error) {
	if err := domain.ValidateJobID(jobID); err != nil {
		return nil, err
	}

	job, payload, err := s.fetch(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return &InProgressView{Job: job}, nil
	}
	if job.Kind == domain.KindUnknown && !job.Finished() {
		return &InProgressView{Job: job}, nil
	}

	result, err := domain.ParseResult(job, payload)
	if err != nil {
		return nil, err
	}

	switch {
	case result.Matching != nil:
		return s.matches(ctx, job, result.Matching, values)
	case result.Cross != nil:
		return s.cross(ctx, job, result.Cross, values)
	case result.Blocks != nil:
		return s.blocks(job, result.Blocks, values), nil
	default:
		return &SampleRedirectView{Job: job, SampleID: result.AddedSampleID}, nil
	}
}

// fetch returns the job and its payload. The payload is nil while the job has no result.
func (s *ResultService) fetch(ctx context.Context, jobID string) (*domain.JobInfo, []byte, error) {
	payload, cached := s.loadCached(ctx, jobID)

	job, err := s.remoteJob(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	if cached {
		return job, payload, nil
	}
	if !job.HasResult() {
		return job, nil, nil
	}

	if s.flight == nil {
		payload, err = s.remoteResult(ctx, job)
	} else {
		var v any
		v, err, _ = s.flight.Do(jobID, func() (any, error) {
			return s.remoteResult(ctx, job)
		})
		payload, _ = v.([]byte)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return job, nil, nil
		}
		return nil, nil, err
	}
	return job, payload, nil
}

func (s *ResultService) loadCached(ctx context.Context, jobID string) ([]byte, bool) {
	_, span := s.tracer.Start(ctx, "cache.load", ports.WithAttribute("job_id", jobID))
	defer span.End()

	payload, found, err := s.cache.Load(jobID)
	if err != nil {
		span.RecordError(err)
		s.log.Warn("ignoring result cache: " + err.Error())
		return nil, false
	}
	span.SetAttribute("hit", found)
	return payload, found
}

func (s *ResultService) remoteJob(ctx context.Context, jobID string) (*domain.JobInfo, error) {
	ctx, span := s.tracer.Start(ctx, "remote.job", ports.WithAttribute("job_id", jobID))
	defer span.End()

	job, err := s.client.GetJobData(ctx, jobID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("kind", job.Kind.String())
	return job, nil
}

// remoteResult fetches the payload and appends it to the cache.
// A failed cache write is logged and otherwise ignored.
func (s *ResultService) remoteResult(ctx context.Context, job *domain.JobInfo) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "remote.result", ports.WithAttribute("job_id", job.ID))
	defer span.End()

	payload, err := s.client.GetResultForJob(ctx, job.ID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("bytes", len(payload))

	stored, err := s.cache.Store(job, payload)
	if err != nil {
		s.log.Warn("result not cached: " + err.Error())
	}
	span.SetAttribute("stored", stored)
	return payload, nil
}

func (s *ResultService) cross(ctx context.Context, job *domain.JobInfo, result *domain.CrossCompareResult, values url.Values) (View, error) {
	custom := values.Get(ParamCustomOrder)
	compare, err := s.reconciler.Reconcile(ctx, result, custom)
	if err != nil {
		return nil, zerr.With(err, "job_id", job.ID)
	}
	return &CrossView{Job: job, CustomOrder: custom, Compare: compare}, nil
}

// diagram returns the artifact path, or "" when rendering is disabled or failed.
func (s *ResultService) diagram(ctx context.Context, jobID string, result *domain.MatchingResult, filter domain.DiagramFilter) string {
	if s.diagrams == nil {
		return ""
	}
	path, err := s.diagrams.GetOrRender(ctx, jobID, result, filter)
	if err != nil {
		s.log.Warn("diagram unavailable: " + err.Error())
		return ""
	}
	return path
}

package views

import (
	"context"
	"net/url"

	"go.trai.ch/matchview/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// matches narrows a matching result by the first honored intent of the query:
// family, sample, function against function, single function, then the default.
func (s *ResultService) matches(ctx context.Context, job *domain.JobInfo, result *domain.MatchingResult, values url.Values) (View, error) {
	if id, ok := queryInt(values, ParamFamilyID); ok {
		family, err := s.client.GetFamily(ctx, id)
		found, err := honored(err)
		if err != nil {
			return nil, err
		}
		if found {
			return s.familyView(ctx, job, result, family, values), nil
		}
	}

	if id, ok := queryInt(values, ParamSampleID); ok {
		sample, err := s.client.GetSampleByID(ctx, id)
		found, err := honored(err)
		if err != nil {
			return nil, err
		}
		if found {
			return s.sampleView(ctx, job, result, sample, values), nil
		}
	}

	functionID, hasFunction := queryInt(values, ParamFunctionID)
	if otherID, ok := queryInt(values, ParamOtherFunction); ok && hasFunction {
		view, err := s.functionVsView(ctx, job, functionID, otherID)
		found, err := honored(err)
		if err != nil {
			return nil, err
		}
		if found {
			return view, nil
		}
	}

	if hasFunction {
		function, err := s.client.GetFunctionByID(ctx, functionID, false)
		found, err := honored(err)
		if err != nil {
			return nil, err
		}
		if found {
			return s.functionView(ctx, job, result, function, values), nil
		}
	}

	if job.Kind == domain.KindMatchSampleVs {
		return s.sampleVsView(job, result, values), nil
	}
	return s.defaultView(ctx, job, result, values), nil
}

func (s *ResultService) familyView(ctx context.Context, job *domain.JobInfo, result *domain.MatchingResult, family *domain.Family, values url.Values) *MatchesView {
	filter := domain.FamilyDiagramFilter(family.ID)
	narrowed := result.FilterToFamily(family.ID)

	samplePage := domain.NewPage(values, ParamSamplePage, len(narrowed.SampleMatches), domain.DefaultFamilyPageLimit)
	aggregated := narrowed.AggregatedFunctionMatches()
	functionPage := domain.NewPage(values, ParamFunctionPage, len(aggregated), s.limits.DefaultLimit)

	return &MatchesView{
		Job:          job,
		Narrowing:    NarrowFamily,
		Result:       narrowed,
		Family:       family,
		DiagramPath:  s.diagram(ctx, job.ID, result, filter),
		SamplePage:   &samplePage,
		FunctionPage: &functionPage,
		Samples:      domain.Slice(narrowed.SampleMatches, samplePage),
		Functions:    domain.Slice(aggregated, functionPage),
	}
}

func (s *ResultService) sampleView(ctx context.Context, job *domain.JobInfo, result *domain.MatchingResult, sample *domain.Sample, values url.Values) *MatchesView {
	filter := domain.SampleDiagramFilter(sample.ID)
	narrowed := result.FilterToSample(sample.ID, sample)

	samplePage := domain.NewPage(values, ParamSamplePage, 1, domain.DefaultFamilyPageLimit)
	aggregated := narrowed.AggregatedFunctionMatches()
	functionPage := domain.NewPage(values, ParamFunctionPage, len(aggregated), s.limits.DefaultLimit)

	return &MatchesView{
		Job:          job,
		Narrowing:    NarrowSample,
		Result:       narrowed,
		Sample:       sample,
		DiagramPath:  s.diagram(ctx, job.ID, result, filter),
		SamplePage:   &samplePage,
		FunctionPage: &functionPage,
		Samples:      domain.Slice(narrowed.SampleMatches, samplePage),
		Functions:    domain.Slice(aggregated, functionPage),
	}
}

// functionVsView fetches both functions with their control flow graphs and the
// corpus-wide occurrence of their pichashes. A pichash without summary is left nil.
func (s *ResultService) functionVsView(ctx context.Context, job *domain.JobInfo, functionID, otherID int) (*FunctionVsView, error) {
	view := &FunctionVsView{Job: job}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		view.Function, view.PicHashes, err = s.functionWithSummary(gctx, functionID)
		return err
	})
	g.Go(func() error {
		var err error
		view.Other, view.OtherPicHashes, err = s.functionWithSummary(gctx, otherID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *ResultService) functionWithSummary(ctx context.Context, functionID int) (*domain.Function, *domain.PicHashSummary, error) {
	function, err := s.client.GetFunctionByID(ctx, functionID, true)
	if err != nil {
		return nil, nil, err
	}
	summary, err := s.client.GetMatchesForPicHash(ctx, function.PicHash)
	if _, err := honored(err); err != nil {
		return nil, nil, err
	}
	return function, summary, nil
}

func (s *ResultService) functionView(ctx context.Context, job *domain.JobInfo, result *domain.MatchingResult, function *domain.Function, values url.Values) *MatchesView {
	diagram := s.diagram(ctx, job.ID, result, domain.NoDiagramFilter())
	narrowed := result.FilterToFunction(function.ID)

	families := narrowed.FamiliesByBestMatch()
	familyPage := domain.NewPage(values, ParamFamilyPage, len(families), domain.DefaultFamilyPageLimit)
	functionPage := domain.NewPage(values, ParamFunctionPage, len(narrowed.FunctionMatches), s.limits.DefaultLimit)

	return &MatchesView{
		Job:              job,
		Narrowing:        NarrowFunction,
		Result:           narrowed,
		Function:         function,
		DiagramPath:      diagram,
		FamilyPage:       &familyPage,
		FunctionPage:     &functionPage,
		Families:         domain.Slice(families, familyPage),
		FunctionMatches:  domain.Slice(narrowed.FunctionMatches, functionPage),
		FamilyCount:      narrowed.FunctionMatchFamilyCount(),
		MatchedFunctions: narrowed.MatchedFunctionCount(),
	}
}

// sampleVsView pages the raw function matches of a one-vs-one comparison before
// aggregation. It renders no diagram.
func (s *ResultService) sampleVsView(job *domain.JobInfo, result *domain.MatchingResult, values url.Values) *MatchesView {
	functionPage := domain.NewPage(values, ParamFunctionPage, len(result.FunctionMatches), s.limits.DefaultLimit)
	sliced := result.WithFunctionMatches(domain.Slice(result.FunctionMatches, functionPage))

	return &MatchesView{
		Job:             job,
		Narrowing:       NarrowNone,
		Result:          sliced,
		FunctionPage:    &functionPage,
		Samples:         sliced.SampleMatches,
		Functions:       sliced.AggregatedFunctionMatches(),
		FunctionMatches: sliced.FunctionMatches,
	}
}

func (s *ResultService) defaultView(ctx context.Context, job *domain.JobInfo, result *domain.MatchingResult, values url.Values) *MatchesView {
	families := result.FamiliesByBestMatch()
	familyPage := domain.NewPage(values, ParamFamilyPage, len(families), domain.DefaultFamilyPageLimit)
	aggregated := result.AggregatedFunctionMatches()
	functionPage := domain.NewPage(values, ParamFunctionPage, len(aggregated), s.limits.DefaultLimit)

	return &MatchesView{
		Job:          job,
		Narrowing:    NarrowNone,
		Result:       result,
		DiagramPath:  s.diagram(ctx, job.ID, result, domain.NoDiagramFilter()),
		FamilyPage:   &familyPage,
		FunctionPage: &functionPage,
		Families:     domain.Slice(families, familyPage),
		Functions:    domain.Slice(aggregated, functionPage),
		FamilyCount:  result.MatchedFamilyCount(),
	}
}

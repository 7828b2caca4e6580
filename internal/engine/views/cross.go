package views

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.trai.ch/matchview/internal/core/domain"
	"go.trai.ch/matchview/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentLookups bounds the sample lookups of one reconciliation.
const maxConcurrentLookups = 8

// Reconciler turns a cross compare result into per-method sample orderings.
type Reconciler struct {
	client ports.MatchingClient
	tracer ports.Tracer
}

// NewReconciler creates a new Reconciler.
func NewReconciler(client ports.MatchingClient, tracer ports.Tracer) *Reconciler {
	return &Reconciler{client: client, tracer: tracer}
}

// Reconcile resolves every sample referenced by the result and orders each method's
// samples by the custom ordering, the clustered sequence, or resolution order, in
// that precedence. customOrder is a comma separated id list, empty for none.
//
// A referenced sample the service no longer knows fails with domain.ErrCorrupted, as
// does a custom id outside a method's samples.
func (r *Reconciler) Reconcile(ctx context.Context, result *domain.CrossCompareResult, customOrder string) (*domain.CrossCompareView, error) {
	ctx, span := r.tracer.Start(ctx, "cross.reconcile", ports.WithAttribute("methods", len(result.Methods)))
	defer span.End()

	view, err := r.reconcile(ctx, result, customOrder)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return view, nil
}

func (r *Reconciler) reconcile(ctx context.Context, result *domain.CrossCompareResult, customOrder string) (*domain.CrossCompareView, error) {
	custom, err := domain.ParseCustomOrder(customOrder)
	if err != nil {
		return nil, err
	}

	ids := result.SampleIDs()
	resolved, err := r.resolve(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]domain.Sample, len(resolved))
	for _, s := range resolved {
		byID[s.ID] = s
	}

	view := &domain.CrossCompareView{Methods: make([]domain.MethodOrdering, 0, len(result.Methods))}
	for _, method := range result.Methods {
		order, err := methodOrder(method, ids, custom)
		if err != nil {
			return nil, err
		}
		samples := make([]domain.Sample, 0, len(order))
		for _, id := range order {
			samples = append(samples, byID[id])
		}
		view.Methods = append(view.Methods, domain.MethodOrdering{
			Name:            method.Name,
			Samples:         samples,
			Checkpoints:     domain.Checkpoints(samples),
			MatchingMatches: method.MatchingMatches,
			MatchingPercent: method.MatchingPercent,
		})
	}
	return view, nil
}

// resolve fetches the samples concurrently and returns them in the order of ids.
func (r *Reconciler) resolve(ctx context.Context, ids []int) ([]domain.Sample, error) {
	samples := make([]domain.Sample, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, id := range ids {
		g.Go(func() error {
			sample, err := r.client.GetSampleByID(gctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					reason := fmt.Sprintf("sample %d was deleted since the cross compare was computed", id)
					return zerr.With(zerr.Wrap(domain.ErrCorrupted, reason), "sample_id", id)
				}
				return err
			}
			samples[i] = *sample
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return samples, nil
}

// methodOrder returns the ids of one method in display order.
func methodOrder(method domain.CrossCompareMethod, resolved, custom []int) ([]int, error) {
	members := method.ClusteredSequence
	if len(members) == 0 {
		members = resolved
	}
	if len(custom) == 0 {
		return members, nil
	}

	allowed := make(map[int]struct{}, len(members))
	for _, id := range members {
		allowed[id] = struct{}{}
	}
	for _, id := range custom {
		if _, ok := allowed[id]; !ok {
			reason := fmt.Sprintf("custom ordering %s references sample %d outside the compared set of %s", formatIDs(custom), id, method.Name)
			return nil, zerr.With(zerr.Wrap(domain.ErrCorrupted, reason), "sample_id", id)
		}
	}
	return custom, nil
}

func formatIDs(ids []int) string {
	buf := make([]byte, 0, len(ids)*4)
	for i, id := range ids {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(id), 10)
	}
	return string(buf)
}

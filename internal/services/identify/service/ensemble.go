package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"nutriscope/internal/adapters/roboflow"
	"nutriscope/internal/core/foodvote"
	"nutriscope/internal/core/pipeline"
	"nutriscope/internal/services/identify/domain"
)

// DefaultThreshold is the ensemble confidence floor
const DefaultThreshold = 0.6

// DefaultWorkflows are the hosted south-indian classifiers
var DefaultWorkflows = []string{
	"south-indian/custom-workflow-1",
	"south-indian/custom-workflow-2",
	"south-indian/custom-workflow-3",
}

func unknownIndian() domain.Identification {
	return domain.Identification{Food: domain.UnknownFood, Type: domain.Indian}
}

// Indian runs every workflow on img and elects a label by agreement.
// A failing workflow only loses its votes
func (s *Svc) Indian(ctx context.Context, img domain.Image) domain.Identification {
	if !s.wf.Configured() || len(s.cfg.Workflows) == 0 {
		s.log.Warn().Msg("no indian workflows configured")
		return unknownIndian()
	}

	results := s.runWorkflows(ctx, img.Data)

	var votes []foodvote.Vote
	for _, r := range results {
		if !r.OK() {
			s.log.Warn().Err(r.Err).Str("workflow", r.Source).Str("image_id", img.ID.String()).Msg("workflow skipped")
			continue
		}
		for _, p := range r.Value {
			votes = append(votes, foodvote.Vote{Label: p.Class, Confidence: p.Confidence})
		}
	}

	t, ok := foodvote.Elect(votes, s.cfg.Threshold)
	if !ok {
		s.log.Info().
			Str("image_id", img.ID.String()).
			Int("qualifying", t.Qualifying).
			Int("top_count", t.Count).
			Msg("no confident indian prediction")
		return unknownIndian()
	}
	return domain.Identification{Food: t.Label, Type: domain.Indian, Confidence: t.Mean}
}

// runWorkflows fills one slot per workflow so the fold order never depends on scheduling
func (s *Svc) runWorkflows(ctx context.Context, image []byte) []pipeline.Result[[]roboflow.Prediction] {
	results := make([]pipeline.Result[[]roboflow.Prediction], len(s.cfg.Workflows))
	var g errgroup.Group
	g.SetLimit(s.cfg.Parallelism)
	for i, wf := range s.cfg.Workflows {
		i, wf := i, wf
		g.Go(func() error {
			preds, err := s.wf.Run(ctx, wf, image)
			results[i] = pipeline.Of(wf.String(), preds, err)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

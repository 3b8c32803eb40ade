package service

import (
	"context"
	"fmt"

	"nutriscope/internal/core/foodvote"
	"nutriscope/internal/services/identify/domain"
)

func unknownInternational(reason string) domain.Identification {
	return domain.Identification{Food: domain.UnknownFood, Type: domain.International, Err: reason}
}

// International picks the non-tableware class covering the largest total area.
// Detector errors and panics degrade to Unknown with the reason attached
func (s *Svc) International(ctx context.Context, img domain.Image) (id domain.Identification) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("image_id", img.ID.String()).Msg("detector panicked")
			id = unknownInternational(fmt.Sprint(r))
		}
	}()

	boxes, err := s.det.Detect(ctx, img.Data)
	if err != nil {
		s.log.Warn().Err(err).Str("image_id", img.ID.String()).Msg("detector failed")
		return unknownInternational(err.Error())
	}

	dets := make([]foodvote.Detection, 0, len(boxes))
	for _, b := range boxes {
		dets = append(dets, foodvote.Detection{Class: b.Class, Confidence: b.Confidence, Area: b.Area()})
	}
	best, ok := foodvote.Pick(dets, s.cfg.Ignore)
	if !ok {
		return unknownInternational("")
	}
	return domain.Identification{Food: best.Class, Type: domain.International, Confidence: best.MaxConfidence}
}

package module

import (
	"context"

	"nutriscope/internal/adapters/detector"
	"nutriscope/internal/adapters/detector/onnx"
	"nutriscope/internal/adapters/detector/rekognition"
	"nutriscope/internal/platform/logger"
)

// NewDetector builds the configured detector backend. A backend that fails to start
// degrades to detector.None so the Indian path keeps serving; release frees its resources
func NewDetector(ctx context.Context, o Options) (det detector.Detector, release func()) {
	log := logger.Named("identify")
	noop := func() {}

	switch o.Backend {
	case detector.BackendONNX:
		d, err := onnx.New(o.ONNX)
		if err != nil {
			log.Error().Err(err).Str("model", o.ONNX.ModelPath).Msg("onnx detector unavailable")
			return detector.None{}, noop
		}
		log.Info().Str("model", o.ONNX.ModelPath).Int("imgsz", o.ONNX.ImageSize).Msg("onnx detector loaded")
		return d, d.Close
	case detector.BackendRekognition:
		d, err := rekognition.New(ctx, o.Rekognition)
		if err != nil {
			log.Error().Err(err).Msg("rekognition detector unavailable")
			return detector.None{}, noop
		}
		log.Info().Str("region", o.Rekognition.Region).Msg("rekognition detector ready")
		return d, noop
	default:
		log.Warn().Msg("no detector configured; international photos resolve to Unknown")
		return detector.None{}, noop
	}
}

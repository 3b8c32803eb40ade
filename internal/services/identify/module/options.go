package module

import (
	"nutriscope/internal/adapters/detector"
	"nutriscope/internal/adapters/detector/onnx"
	"nutriscope/internal/adapters/detector/rekognition"
	"nutriscope/internal/adapters/roboflow"
	"nutriscope/internal/core/foodvote"
	"nutriscope/internal/platform/config"
	"nutriscope/internal/platform/logger"
	"nutriscope/internal/services/identify/service"
)

// Options controls identification. Values are read from IDENTIFY_ and ROBOFLOW_ env
type Options struct {
	Backend     string
	ONNX        onnx.Options
	Rekognition rekognition.Options

	IgnoreClasses []string
	Threshold     float64
	Workflows     []string
	Parallelism   int

	Roboflow roboflow.Options
}

// FromConfig reads options from cfg
func FromConfig(cfg config.Conf) Options {
	id := cfg.Prefix("IDENTIFY_")
	return Options{
		Backend:       id.MayEnum("DETECTOR_BACKEND", detector.BackendONNX, detector.BackendONNX, detector.BackendRekognition, detector.BackendNone),
		ONNX:          onnx.FromConfig(id),
		Rekognition:   rekognition.FromConfig(id),
		IgnoreClasses: id.MayCSV("IGNORE_CLASSES", foodvote.DefaultIgnore),
		Threshold:     id.MayFloat64("INDIAN_THRESHOLD", service.DefaultThreshold),
		Workflows:     id.MayCSV("INDIAN_WORKFLOWS", service.DefaultWorkflows),
		Parallelism:   id.MayInt("ENSEMBLE_PARALLELISM", 1),
		Roboflow:      roboflow.FromConfig(cfg.Prefix("ROBOFLOW_")),
	}
}

// serviceConfig turns Options into the service Config; malformed workflow ids are skipped
func (o Options) serviceConfig(log *logger.Logger) service.Config {
	wfs := make([]roboflow.Workflow, 0, len(o.Workflows))
	for _, s := range o.Workflows {
		wf, err := roboflow.ParseWorkflow(s)
		if err != nil {
			log.Warn().Err(err).Msg("skipping workflow")
			continue
		}
		wfs = append(wfs, wf)
	}
	return service.Config{
		Ignore:      foodvote.NewIgnoreSet(o.IgnoreClasses...),
		Threshold:   o.Threshold,
		Workflows:   wfs,
		Parallelism: o.Parallelism,
	}
}

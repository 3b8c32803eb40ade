// Package rekognition detects objects with AWS Rekognition DetectLabels
package rekognition

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg" // DecodeConfig for pixel boxes
	_ "image/png"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"nutriscope/internal/adapters/detector"
	"nutriscope/internal/platform/config"
	perr "nutriscope/internal/platform/errors"
	"nutriscope/internal/platform/logger"
)

// API is the slice of the Rekognition client this backend calls
type API interface {
	DetectLabels(ctx context.Context, in *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// Options configures the detector
type Options struct {
	Region        string
	MaxLabels     int32
	MinConfidence float32 // percent, as Rekognition reports it
}

// FromConfig reads the IDENTIFY_ rekognition keys
func FromConfig(cfg config.Conf) Options {
	return Options{
		Region:        cfg.MayString("AWS_REGION", ""),
		MaxLabels:     int32(cfg.MayInt("REKOGNITION_MAX_LABELS", 50)),
		MinConfidence: float32(cfg.MayFloat64("REKOGNITION_MIN_CONFIDENCE", 25)),
	}
}

// Detector is the rekognition backend
type Detector struct {
	api API
	opt Options
	log *logger.Logger
}

// New loads the default AWS credential chain for o.Region and builds the client
func New(ctx context.Context, o Options) (*Detector, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if o.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(o.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeNotConfigured, "load aws config")
	}
	return NewWithAPI(rekognition.NewFromConfig(cfg), o), nil
}

// NewWithAPI wraps an existing client
func NewWithAPI(api API, o Options) *Detector {
	if o.MaxLabels <= 0 {
		o.MaxLabels = 50
	}
	return &Detector{api: api, opt: o, log: logger.Named("detector.rekognition")}
}

// Detect turns every labelled instance into a box in source pixels
func (d *Detector) Detect(ctx context.Context, data []byte) ([]detector.Box, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "unsupported image; expected JPEG or PNG")
	}
	in := &rekognition.DetectLabelsInput{
		Image:     &types.Image{Bytes: data},
		MaxLabels: aws.Int32(d.opt.MaxLabels),
	}
	if d.opt.MinConfidence > 0 {
		in.MinConfidence = aws.Float32(d.opt.MinConfidence)
	}
	out, err := d.api.DetectLabels(ctx, in)
	if err != nil {
		d.log.Warn().Err(err).Msg("DetectLabels failed")
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "rekognition DetectLabels failed")
	}

	w, h := float64(cfg.Width), float64(cfg.Height)
	var boxes []detector.Box
	for id, l := range out.Labels {
		name := strings.ToLower(strings.TrimSpace(aws.ToString(l.Name)))
		if name == "" {
			name = detector.UnknownLabel
		}
		for _, inst := range l.Instances {
			bb := inst.BoundingBox
			if bb == nil {
				continue
			}
			conf := aws.ToFloat32(inst.Confidence)
			if inst.Confidence == nil {
				conf = aws.ToFloat32(l.Confidence)
			}
			left, top := float64(aws.ToFloat32(bb.Left)), float64(aws.ToFloat32(bb.Top))
			bw, bh := float64(aws.ToFloat32(bb.Width)), float64(aws.ToFloat32(bb.Height))
			boxes = append(boxes, detector.Box{
				ClassID:    id,
				Class:      name,
				Confidence: float64(conf) / 100,
				X1:         left * w,
				Y1:         top * h,
				X2:         (left + bw) * w,
				Y2:         (top + bh) * h,
			})
		}
	}
	return boxes, nil
}

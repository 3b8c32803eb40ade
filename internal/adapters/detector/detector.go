// Package detector defines the object-detector port and the pieces its backends share
package detector

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"strconv"
	"strings"

	perr "nutriscope/internal/platform/errors"
)

// Backend names accepted by IDENTIFY_DETECTOR_BACKEND
const (
	BackendONNX        = "onnx"
	BackendRekognition = "rekognition"
	BackendNone        = "none"
)

// UnknownLabel is used for class ids missing from the label table
const UnknownLabel = "unknown"

// Box is one raw detection in pixel coordinates of the submitted image
type Box struct {
	ClassID    int
	Class      string
	Confidence float64
	X1, Y1     float64
	X2, Y2     float64
}

// Area is (x2-x1)*(y2-y1); inverted boxes count as zero
func (b Box) Area() float64 {
	w, h := b.X2-b.X1, b.Y2-b.Y1
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Detector finds objects in an encoded image
type Detector interface {
	Detect(ctx context.Context, image []byte) ([]Box, error)
}

// ErrUnavailable is returned by backends that were never set up
var ErrUnavailable = perr.NotConfiguredf("detector not available")

// None is the backend used when no detector is configured
type None struct{}

// Detect always fails with ErrUnavailable
func (None) Detect(context.Context, []byte) ([]Box, error) { return nil, ErrUnavailable }

// Labels maps class ids to lower-cased names
type Labels []string

// Name returns the label for id, or UnknownLabel
func (l Labels) Name(id int) string {
	if id < 0 || id >= len(l) || l[id] == "" {
		return UnknownLabel
	}
	return l[id]
}

type labelFile struct {
	Names   map[string]string `json:"names"`
	Classes []string          `json:"classes"`
}

// ParseLabels reads either an ultralytics style {"names":{"0":"person",...}} table
// or a plain {"classes":["person",...]} list
func ParseLabels(data []byte) (Labels, error) {
	var f labelFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "detector metadata is not valid JSON")
	}
	if len(f.Classes) > 0 {
		out := make(Labels, len(f.Classes))
		for i, c := range f.Classes {
			out[i] = strings.ToLower(strings.TrimSpace(c))
		}
		return out, nil
	}
	if len(f.Names) == 0 {
		return nil, perr.InvalidArgf("detector metadata has neither names nor classes")
	}

	ids := make([]int, 0, len(f.Names))
	byID := make(map[int]string, len(f.Names))
	for k, v := range f.Names {
		id, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil || id < 0 {
			return nil, perr.InvalidArgf("detector metadata has bad class id %q", k)
		}
		ids = append(ids, id)
		byID[id] = strings.ToLower(strings.TrimSpace(v))
	}
	sort.Ints(ids)
	out := make(Labels, ids[len(ids)-1]+1)
	for _, id := range ids {
		out[id] = byID[id]
	}
	return out, nil
}

// LoadLabels reads a label table from path
func LoadLabels(path string) (Labels, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeNotConfigured, "read detector metadata %s", path)
	}
	return ParseLabels(data)
}

package onnx

import (
	"sort"

	"nutriscope/internal/adapters/detector"
)

// decode reads a YOLOv8 head laid out as [4+classes, anchors] (cx, cy, w, h, scores...),
// keeps the best class per anchor when it reaches minScore, and maps boxes back to source pixels
func decode(out []float32, classes, anchors int, minScore float64, f frame, labels detector.Labels) []detector.Box {
	rows := 4 + classes
	if classes <= 0 || anchors <= 0 || len(out) < rows*anchors {
		return nil
	}
	at := func(row, i int) float64 { return float64(out[row*anchors+i]) }

	var boxes []detector.Box
	for i := 0; i < anchors; i++ {
		best, score := -1, 0.0
		for c := 0; c < classes; c++ {
			if s := at(4+c, i); s > score {
				best, score = c, s
			}
		}
		if best < 0 || score < minScore {
			continue
		}
		cx, cy, w, h := at(0, i), at(1, i), at(2, i), at(3, i)
		x1, y1 := f.toSource(cx-w/2, cy-h/2)
		x2, y2 := f.toSource(cx+w/2, cy+h/2)
		boxes = append(boxes, detector.Box{
			ClassID:    best,
			Class:      labels.Name(best),
			Confidence: score,
			X1:         x1, Y1: y1, X2: x2, Y2: y2,
		})
	}
	return boxes
}

func iou(a, b detector.Box) float64 {
	ix1, iy1 := max(a.X1, b.X1), max(a.Y1, b.Y1)
	ix2, iy2 := min(a.X2, b.X2), min(a.Y2, b.Y2)
	inter := detector.Box{X1: ix1, Y1: iy1, X2: ix2, Y2: iy2}.Area()
	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// nms suppresses overlapping boxes of the same class, highest confidence first
func nms(boxes []detector.Box, threshold float64) []detector.Box {
	sorted := append([]detector.Box(nil), boxes...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Confidence > sorted[j].Confidence })

	kept := make([]detector.Box, 0, len(sorted))
	for _, b := range sorted {
		drop := false
		for _, k := range kept {
			if k.ClassID == b.ClassID && iou(k, b) > threshold {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, b)
		}
	}
	return kept
}

package figures

import "github.com/nayanlc19/journal-club-standalone/model"

// captionDistance returns the vertical distance between a caption and an
// element, or ok=false when the pair cannot plausibly belong together.
// Any vertical overlap counts as distance zero, which lets captions
// typeset inside or beside a figure's frame win immediately.
func captionDistance(caption, element model.BBox, cfg Config) (float64, bool) {
	leftOffset := caption.X1 - element.X1
	if leftOffset < -cfg.AlignTolerance || leftOffset > cfg.AlignTolerance {
		return 0, false
	}

	if caption.Y1 < element.Y2 && caption.Y2 > element.Y1 {
		return 0, true
	}

	var gap float64
	if caption.Y1 >= element.Y2 {
		gap = caption.Y1 - element.Y2 // caption below the element
	} else {
		gap = element.Y1 - caption.Y2 // caption above the element
	}
	if gap > cfg.MaxCaptionGap {
		return 0, false
	}
	return gap, true
}

// matchCaption finds the nearest unclaimed caption of the given kind for an
// element. When two captions are equidistant the one earlier in scan order
// wins, so matching is deterministic. The returned caption is not claimed;
// the caller claims it once it commits to the pairing.
func matchCaption(captions *CaptionSet, kind model.ElementKind, element model.BBox, cfg Config) *Caption {
	var best *Caption
	bestDist := 0.0

	for _, c := range captions.Unclaimed(kind) {
		dist, ok := captionDistance(c.BBox, element, cfg)
		if !ok {
			continue
		}
		if best == nil || dist < bestDist {
			best = c
			bestDist = dist
		}
	}
	return best
}

package reader

import (
	"sort"
	"strings"

	"github.com/nayanlc19/journal-club-standalone/model"
)

// textRun is one positioned text run in top-left page coordinates
type textRun struct {
	text     string
	bbox     model.BBox
	fontSize float64
}

// lineYTolerance is how far apart two baselines can sit and still belong
// to the same visual line, as a fraction of the font size.
const lineYTolerance = 0.5

// blockGapFactor bounds the vertical gap between consecutive lines of one
// block, as a multiple of the first line's font size.
const blockGapFactor = 1.8

// assembleLines groups runs into visual lines. Runs are bucketed by
// vertical overlap of their baselines, then each line is ordered
// left-to-right and joined with spaces where the horizontal gap suggests a
// word break.
func assembleLines(runs []textRun) []model.TextLine {
	if len(runs) == 0 {
		return nil
	}

	sorted := append([]textRun(nil), runs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].bbox.Y2 != sorted[j].bbox.Y2 {
			return sorted[i].bbox.Y2 < sorted[j].bbox.Y2
		}
		return sorted[i].bbox.X1 < sorted[j].bbox.X1
	})

	var lines []model.TextLine
	group := []textRun{sorted[0]}

	flush := func() {
		lines = append(lines, buildLine(group))
		group = group[:0]
	}

	for _, run := range sorted[1:] {
		anchor := group[len(group)-1]
		tol := anchor.fontSize * lineYTolerance
		if run.bbox.Y2-anchor.bbox.Y2 > tol {
			flush()
		}
		group = append(group, run)
	}
	flush()

	return lines
}

// buildLine orders one line's runs by X and concatenates them
func buildLine(group []textRun) model.TextLine {
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].bbox.X1 < group[j].bbox.X1
	})

	var sb strings.Builder
	bbox := group[0].bbox
	maxFont := group[0].fontSize

	for i, run := range group {
		if i > 0 {
			prev := group[i-1]
			gap := run.bbox.X1 - prev.bbox.X2
			if gap > prev.fontSize*0.2 && !strings.HasSuffix(sb.String(), " ") {
				sb.WriteByte(' ')
			}
			bbox = bbox.Union(run.bbox)
			if run.fontSize > maxFont {
				maxFont = run.fontSize
			}
		}
		sb.WriteString(run.text)
	}

	return model.TextLine{
		Text:     strings.TrimSpace(sb.String()),
		BBox:     bbox,
		FontSize: maxFont,
	}
}

// assembleBlocks groups consecutive lines into blocks. A block breaks when
// the vertical gap exceeds the usual leading or the left edge jumps, which
// is where columns and paragraphs separate.
func assembleBlocks(lines []model.TextLine) []model.TextBlock {
	var blocks []model.TextBlock

	for _, ln := range lines {
		if ln.Text == "" {
			continue
		}
		if n := len(blocks); n > 0 {
			last := &blocks[n-1]
			prevLine := last.Lines[len(last.Lines)-1]
			gap := ln.BBox.Y1 - prevLine.BBox.Y2
			leftJump := ln.BBox.X1 - last.BBox.X1
			if gap >= 0 && gap <= prevLine.FontSize*blockGapFactor &&
				leftJump > -2 && leftJump < prevLine.FontSize*4 {
				last.Lines = append(last.Lines, ln)
				last.BBox = last.BBox.Union(ln.BBox)
				continue
			}
		}
		blocks = append(blocks, model.TextBlock{
			Lines: []model.TextLine{ln},
			BBox:  ln.BBox,
		})
	}

	return blocks
}

package reader

import (
	"testing"

	"github.com/nayanlc19/journal-club-standalone/model"
)

func run(text string, x1, y1, x2, y2, size float64) textRun {
	return textRun{text: text, bbox: model.NewBBox(x1, y1, x2, y2), fontSize: size}
}

func TestAssembleLinesMergesRunsOnBaseline(t *testing.T) {
	runs := []textRun{
		run("Figure", 72, 100, 105, 112, 12),
		run("1.", 110, 100, 120, 112, 12),
		run("Study", 126, 100, 160, 112, 12),
	}

	lines := assembleLines(runs)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Text != "Figure 1. Study" {
		t.Errorf("text = %q", lines[0].Text)
	}
	if lines[0].BBox.X2 != 160 {
		t.Errorf("bbox not unioned: %+v", lines[0].BBox)
	}
}

func TestAssembleLinesSeparatesBaselines(t *testing.T) {
	runs := []textRun{
		run("First line", 72, 100, 150, 112, 12),
		run("Second line", 72, 118, 150, 130, 12),
	}

	lines := assembleLines(runs)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
}

func TestAssembleLinesOrdersByX(t *testing.T) {
	// Runs arrive in content stream order, not reading order
	runs := []textRun{
		run("world", 120, 100, 160, 112, 12),
		run("hello", 72, 100, 110, 112, 12),
	}

	lines := assembleLines(runs)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Text != "hello world" {
		t.Errorf("text = %q", lines[0].Text)
	}
}

func TestAssembleLinesNoSpaceWithinWord(t *testing.T) {
	// Kerned runs inside one word sit flush against each other
	runs := []textRun{
		run("Ta", 72, 100, 85, 112, 12),
		run("ble", 85.5, 100, 105, 112, 12),
	}

	lines := assembleLines(runs)
	if lines[0].Text != "Table" {
		t.Errorf("text = %q, want Table", lines[0].Text)
	}
}

func TestAssembleBlocksSplitsOnGap(t *testing.T) {
	lines := []model.TextLine{
		{Text: "Paragraph one line one", BBox: model.NewBBox(72, 100, 300, 112), FontSize: 12},
		{Text: "paragraph one line two", BBox: model.NewBBox(72, 114, 300, 126), FontSize: 12},
		{Text: "Paragraph two after a gap", BBox: model.NewBBox(72, 200, 300, 212), FontSize: 12},
	}

	blocks := assembleBlocks(lines)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if len(blocks[0].Lines) != 2 {
		t.Errorf("first block has %d lines, want 2", len(blocks[0].Lines))
	}
	if blocks[0].Text() != "Paragraph one line one paragraph one line two" {
		t.Errorf("block text = %q", blocks[0].Text())
	}
}

func TestAssembleBlocksSplitsOnColumnJump(t *testing.T) {
	lines := []model.TextLine{
		{Text: "Left column", BBox: model.NewBBox(72, 100, 280, 112), FontSize: 12},
		{Text: "Right column", BBox: model.NewBBox(330, 114, 540, 126), FontSize: 12},
	}

	blocks := assembleBlocks(lines)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2 (column jump)", len(blocks))
	}
}

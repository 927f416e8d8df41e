package figures

import (
	"testing"

	"github.com/nayanlc19/journal-club-standalone/model"
)

func TestMatchCaption(t *testing.T) {
	tests := []struct {
		line     string
		wantKind model.ElementKind
		wantName string
		wantOK   bool
	}{
		{"Figure 1. Study flow diagram.", model.KindFigure, "Figure 1", true},
		{"Fig. 2: Kaplan-Meier curves", model.KindFigure, "Figure 2", true},
		{"FIGURE 3 Overall survival", model.KindFigure, "Figure 3", true},
		{"Table 2. Baseline characteristics", model.KindTable, "Table 2", true},
		{"Tbl. 4 Adverse events", model.KindTable, "Table 4", true},
		{"TABLE IV. Subgroup analysis", model.KindTable, "Table IV", true},
		{"table iii continued", model.KindTable, "Table III", true},
		{"Supplementary Figure 2. Sensitivity analysis", model.KindFigure, "Supplementary Figure 2", true},
		{"Appendix Table 1. Search strategy", model.KindTable, "Appendix Table 1", true},
		{"  Figure 10. Indented caption", model.KindFigure, "Figure 10", true},
		{"The figure below shows", "", "", false},
		{"Figurative language", "", "", false},
		{"Table of contents", "", "", false},
		{"configure 5 settings", "", "", false},
		{"A table 3 rows wide", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			kind, name, ok := MatchCaption(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", kind, tt.wantKind)
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
		})
	}
}

func TestIsContinuation(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Table 3 (continued)", true},
		{"Table 3 (cont.)", true},
		{"Table 3, cont'd", true},
		{"Figure 1 continuation", true},
		{"TABLE 2 CONTINUED", true},
		{"Table 3. Treatment continued for 12 weeks", true}, // marker words anywhere match
		{"Table 3. Contingency analysis", false},
		{"Figure 4. Control group", false},
	}

	for _, tt := range tests {
		if got := IsContinuation(tt.text); got != tt.want {
			t.Errorf("IsContinuation(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Eﬀect of ﬁrst-line therapy", "Effect of first-line therapy"},
		{"dose–response", "dose-response"},
		{"a b\tc", "a b c"},
		{"  spaced   out  ", "spaced out"},
	}

	for _, tt := range tests {
		if got := NormalizeText(tt.in); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func line(text string, x1, y1, x2, y2 float64) model.TextLine {
	return model.TextLine{Text: text, BBox: model.NewBBox(x1, y1, x2, y2)}
}

func pageWithLines(lines ...model.TextLine) *model.PageContent {
	p := model.NewPageContent(1, 612, 792)
	for _, ln := range lines {
		p.Blocks = append(p.Blocks, model.TextBlock{
			Lines: []model.TextLine{ln},
			BBox:  ln.BBox,
		})
	}
	return p
}

func TestScanCaptionsExtendsAdjacentLines(t *testing.T) {
	page := pageWithLines(
		line("Figure 1. Study flow", 72, 500, 300, 512),
		line("diagram across all sites.", 72, 516, 280, 528),
		line("Unrelated body text far below.", 72, 600, 300, 612),
	)

	set := ScanCaptions(page, DefaultConfig())
	if set.Len() != 1 {
		t.Fatalf("got %d captions, want 1", set.Len())
	}

	capt := set.All()[0]
	want := "Figure 1. Study flow diagram across all sites."
	if capt.Text != want {
		t.Errorf("caption text = %q, want %q", capt.Text, want)
	}
	if capt.BBox.Y2 != 528 {
		t.Errorf("caption box not extended: %+v", capt.BBox)
	}
}

func TestScanCaptionsStopsAtNextCaption(t *testing.T) {
	page := pageWithLines(
		line("Table 1. First table.", 72, 100, 300, 112),
		line("Table 2. Second table.", 72, 116, 300, 128),
	)

	set := ScanCaptions(page, DefaultConfig())
	if set.Len() != 2 {
		t.Fatalf("got %d captions, want 2", set.Len())
	}
	if set.All()[0].Text != "Table 1. First table." {
		t.Errorf("first caption absorbed the second: %q", set.All()[0].Text)
	}
}

func TestScanCaptionsRespectsLeftSlack(t *testing.T) {
	// Continuation line indented far beyond the slack belongs to another column
	page := pageWithLines(
		line("Figure 2. Short caption.", 72, 100, 250, 112),
		line("Column two text here.", 330, 116, 500, 128),
	)

	set := ScanCaptions(page, DefaultConfig())
	if set.Len() != 1 {
		t.Fatalf("got %d captions, want 1", set.Len())
	}
	if set.All()[0].Text != "Figure 2. Short caption." {
		t.Errorf("caption wrongly extended: %q", set.All()[0].Text)
	}
}

func TestCaptionSetUnclaimed(t *testing.T) {
	page := pageWithLines(
		line("Figure 1. A", 72, 100, 300, 112),
		line("Table 1. B", 72, 400, 300, 412),
	)

	set := ScanCaptions(page, DefaultConfig())
	if got := len(set.Unclaimed(model.KindFigure)); got != 1 {
		t.Fatalf("unclaimed figures = %d, want 1", got)
	}

	set.Unclaimed(model.KindFigure)[0].Claim()
	if got := len(set.Unclaimed(model.KindFigure)); got != 0 {
		t.Errorf("unclaimed figures after claim = %d, want 0", got)
	}
	if got := len(set.Unclaimed(model.KindTable)); got != 1 {
		t.Errorf("unclaimed tables = %d, want 1", got)
	}
}

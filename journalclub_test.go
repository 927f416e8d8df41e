package journalclub

import (
	"context"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/nayanlc19/journal-club-standalone/figures"
	"github.com/nayanlc19/journal-club-standalone/model"
)

func TestConfigMethodsDoNotMutateReceiver(t *testing.T) {
	base := Open("paper.pdf")
	limited := base.Pages(2, 3)
	bare := base.WithoutImages()

	if len(base.options.pages) != 0 {
		t.Errorf("base extractor gained a page selection: %v", base.options.pages)
	}
	if !base.options.withImages {
		t.Error("base extractor lost image rendering")
	}
	if len(limited.options.pages) != 2 {
		t.Errorf("limited extractor pages = %v, want [2 3]", limited.options.pages)
	}
	if bare.options.withImages {
		t.Error("WithoutImages did not take effect on the clone")
	}
}

func TestPagesValidation(t *testing.T) {
	if err := Open("paper.pdf").Pages(1, 0).Err(); err == nil {
		t.Error("Pages accepted page number 0")
	}
	if err := Open("paper.pdf").Pages(3, 1, 2).Err(); err != nil {
		t.Errorf("Pages rejected valid selection: %v", err)
	}
}

func TestPageRangeValidation(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		wantErr  bool
		wantLen  int
	}{
		{"valid range", 2, 5, false, 4},
		{"single page", 3, 3, false, 1},
		{"reversed", 5, 2, true, 0},
		{"zero start", 0, 3, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := Open("paper.pdf").PageRange(tt.from, tt.to)
			if (ext.Err() != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", ext.Err(), tt.wantErr)
			}
			if !tt.wantErr && len(ext.options.pages) != tt.wantLen {
				t.Errorf("pages = %v, want %d entries", ext.options.pages, tt.wantLen)
			}
		})
	}
}

func TestWithConfigRejectsInvalid(t *testing.T) {
	bad := figures.DefaultConfig()
	bad.RenderScale = 0
	if err := Open("paper.pdf").WithConfig(bad).Err(); err == nil {
		t.Error("WithConfig accepted a zero render scale")
	}
}

func TestWithTimeoutRejectsNonPositive(t *testing.T) {
	if err := Open("paper.pdf").WithTimeout(0).Err(); err == nil {
		t.Error("WithTimeout accepted zero")
	}
}

func TestConfigErrorPropagatesThroughChain(t *testing.T) {
	ext := Open("paper.pdf").Pages(-1).WithoutImages().PageRange(1, 2)
	if ext.Err() == nil {
		t.Fatal("error from Pages was dropped by later chain calls")
	}
	if _, _, err := ext.Figures(); err == nil {
		t.Error("Figures did not surface the chain error")
	}
}

func TestFiguresFailsOnMissingFile(t *testing.T) {
	_, _, err := Open("no-such-file.pdf").Figures()
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "no-such-file.pdf") {
		t.Errorf("error does not name the file: %v", err)
	}
}

func TestMustPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustFigures did not panic on a missing file")
		}
	}()
	MustFigures("no-such-file.pdf")
}

type solidRasterizer struct {
	w, h int
}

func (s *solidRasterizer) RenderPage(_ context.Context, _ string, _ int, scale float64) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, int(float64(s.w)*scale), int(float64(s.h)*scale)))
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img, nil
}

func TestRenderRecordsFillsImages(t *testing.T) {
	ext := Open("paper.pdf").WithRasterizer(&solidRasterizer{w: 612, h: 792})
	records := []model.Figure{
		{Kind: model.KindFigure, PageNumber: 1, Name: "Figure 1", BBox: model.BBox{X1: 50, Y1: 50, X2: 300, Y2: 250}},
		{Kind: model.KindTable, PageNumber: 1, Name: "Table 1", BBox: model.BBox{X1: 50, Y1: 400, X2: 500, Y2: 600}},
	}

	warnings := ext.renderRecords(context.Background(), records)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	for _, rec := range records {
		if !strings.HasPrefix(rec.Image, "data:image/png;base64,") {
			t.Errorf("%s: image is not a png data uri", rec.Name)
		}
	}
}

func TestRenderRecordsWarnsOnBadBox(t *testing.T) {
	ext := Open("paper.pdf").WithRasterizer(&solidRasterizer{w: 612, h: 792})
	records := []model.Figure{
		{Kind: model.KindFigure, PageNumber: 1, Name: "Figure 1", BBox: model.BBox{X1: 300, Y1: 300, X2: 100, Y2: 100}},
	}

	warnings := ext.renderRecords(context.Background(), records)
	if len(warnings) != 1 || warnings[0].Code != WarnRenderFailed {
		t.Fatalf("warnings = %v, want one %s", warnings, WarnRenderFailed)
	}
	if records[0].Image != "" {
		t.Error("record with invalid box still got image data")
	}
}

func TestWarningString(t *testing.T) {
	w := Warning{Code: WarnPageSkipped, Page: 4, Message: "corrupt stream"}
	if got := w.String(); got != "page-skipped (page 4): corrupt stream" {
		t.Errorf("String() = %q", got)
	}
	w = Warning{Code: WarnNoRasterizer, Message: "nothing installed"}
	if got := w.String(); got != "no-rasterizer: nothing installed" {
		t.Errorf("String() = %q", got)
	}
}

func TestFormatWarnings(t *testing.T) {
	if got := FormatWarnings(nil); got != "" {
		t.Errorf("FormatWarnings(nil) = %q, want empty", got)
	}
	got := FormatWarnings([]Warning{
		{Code: WarnPageSkipped, Page: 2, Message: "corrupt stream"},
		{Code: WarnNoRasterizer, Message: "nothing installed"},
	})
	want := "page-skipped (page 2): corrupt stream\nno-rasterizer: nothing installed"
	if got != want {
		t.Errorf("FormatWarnings() = %q, want %q", got, want)
	}
}

package figures

import (
	"testing"

	"github.com/nayanlc19/journal-club-standalone/model"
)

func TestImageDetectorAreaThreshold(t *testing.T) {
	page := pageWithLines(
		line("Figure 1. Large panel.", 72, 420, 300, 432),
	)
	page.Images = []model.ImagePlacement{
		{Name: "Im0", BBox: model.NewBBox(72, 100, 400, 400), PixelWidth: 800, PixelHeight: 600},
		{Name: "Im1", BBox: model.NewBBox(500, 30, 550, 80), PixelWidth: 120, PixelHeight: 120}, // 50x50 logo
	}

	d := NewImageDetector()
	records, err := d.Detect(page, ScanCaptions(page, DefaultConfig()))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 (small image filtered)", len(records))
	}
	if records[0].Name != "Figure 1" {
		t.Errorf("name = %q, want Figure 1", records[0].Name)
	}
	if records[0].Caption != "Figure 1. Large panel." {
		t.Errorf("caption = %q", records[0].Caption)
	}
	if records[0].BBox != page.Images[0].BBox {
		t.Errorf("bbox = %v, want the image bounds alone (caption excluded)", records[0].BBox)
	}
}

func TestImageDetectorPixelThreshold(t *testing.T) {
	page := model.NewPageContent(1, 612, 792)
	// Large on the page but only 40 pixels tall: a stretched rule, not a figure
	page.Images = []model.ImagePlacement{
		{Name: "Im0", BBox: model.NewBBox(72, 100, 540, 130), PixelWidth: 2000, PixelHeight: 40},
	}

	d := NewImageDetector()
	records, err := d.Detect(page, ScanCaptions(page, DefaultConfig()))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d records, want 0", len(records))
	}
}

func TestImageDetectorSynthesizesNames(t *testing.T) {
	page := model.NewPageContent(2, 612, 792)
	page.Images = []model.ImagePlacement{
		{Name: "Im0", BBox: model.NewBBox(72, 100, 400, 400), PixelWidth: 800, PixelHeight: 600},
	}

	d := NewImageDetector()
	records, err := d.Detect(page, ScanCaptions(page, DefaultConfig()))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Name != "Figure 1" {
		t.Errorf("name = %q, want synthesized Figure 1", records[0].Name)
	}
	if records[0].Caption != "" {
		t.Errorf("caption = %q, want empty", records[0].Caption)
	}
	if records[0].Kind != model.KindFigure {
		t.Errorf("kind = %v, want figure", records[0].Kind)
	}
}

// grid fills a region with small paths the way a chart's tick marks and
// bars land in the content stream.
func grid(x, y float64, cols, rows int, step float64) []model.DrawingPath {
	var paths []model.DrawingPath
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			px := x + float64(c)*step
			py := y + float64(r)*step
			paths = append(paths, model.DrawingPath{
				BBox: model.NewBBox(px, py, px+10, py+10),
				Ops:  2,
			})
		}
	}
	return paths
}

func TestDrawingDetectorClustersAndMatches(t *testing.T) {
	page := pageWithLines(
		line("Figure 3. Bar chart.", 72, 380, 300, 392),
	)
	page.Drawings = grid(80, 120, 4, 4, 60) // 16 paths spanning ~190x190

	d := NewDrawingDetector()
	records, err := d.Detect(page, ScanCaptions(page, DefaultConfig()))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Name != "Figure 3" {
		t.Errorf("name = %q, want Figure 3", records[0].Name)
	}
	if records[0].Source != "vector-drawing" {
		t.Errorf("source = %q", records[0].Source)
	}
	if want := model.NewBBox(80, 120, 270, 310); records[0].BBox != want {
		t.Errorf("bbox = %v, want the cluster bounds %v (caption excluded)", records[0].BBox, want)
	}
}

func TestDrawingDetectorDropsSparseClusters(t *testing.T) {
	page := pageWithLines(
		line("Figure 3. Caption present.", 72, 420, 300, 432),
	)
	page.Drawings = grid(80, 120, 2, 2, 100) // 4 paths, below the minimum

	d := NewDrawingDetector()
	records, err := d.Detect(page, ScanCaptions(page, DefaultConfig()))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d records, want 0 (sparse cluster)", len(records))
	}
}

func TestDrawingDetectorDropsUncaptioned(t *testing.T) {
	page := model.NewPageContent(1, 612, 792)
	page.Drawings = grid(80, 120, 4, 4, 60)

	d := NewDrawingDetector()
	records, err := d.Detect(page, ScanCaptions(page, DefaultConfig()))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d records, want 0 (no caption)", len(records))
	}
}

func TestClusterPathsSeparatesDistantGroups(t *testing.T) {
	paths := append(grid(50, 50, 3, 3, 40), grid(50, 600, 3, 3, 40)...)

	clusters := clusterPaths(paths, 200)
	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(clusters))
	}
	for _, c := range clusters {
		if len(c.paths) != 9 {
			t.Errorf("cluster has %d paths, want 9", len(c.paths))
		}
	}
}

func TestTableDetectorCollectsRegionBlocks(t *testing.T) {
	page := pageWithLines(
		line("Table 2. Baseline characteristics.", 72, 100, 350, 112),
		line("Age, years    64.2    63.8", 72, 140, 400, 152),
		line("Male, n (%)   210     205", 72, 180, 400, 192),
		line("Footer text on the same page", 72, 700, 300, 712),
	)

	d := NewTableDetector()
	records, err := d.Detect(page, ScanCaptions(page, DefaultConfig()))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.Kind != model.KindTable {
		t.Errorf("kind = %v, want table", rec.Kind)
	}
	if rec.BBox.Y1 != 100 {
		t.Errorf("caption not included in crop: top = %v", rec.BBox.Y1)
	}
	if rec.BBox.Y2 != 192 {
		t.Errorf("body rows not collected: bottom = %v", rec.BBox.Y2)
	}
	if rec.BBox.Y2 >= 700 {
		t.Error("footer outside the search depth was absorbed")
	}
}

func TestTableDetectorSkipsClaimedCaptions(t *testing.T) {
	page := pageWithLines(
		line("Table 2. Baseline characteristics.", 72, 100, 350, 112),
		line("Age, years    64.2    63.8", 72, 140, 400, 152),
	)

	set := ScanCaptions(page, DefaultConfig())
	set.Unclaimed(model.KindTable)[0].Claim()

	d := NewTableDetector()
	records, err := d.Detect(page, set)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d records, want 0", len(records))
	}
}

func TestPipelineMergesContinuations(t *testing.T) {
	pageOne := pageWithLines(
		line("Table 3. Adverse events by grade.", 72, 100, 350, 112),
		line("Anemia      12    8", 72, 140, 400, 152),
	)
	pageOne.Number = 1

	pageTwo := pageWithLines(
		line("Table 3 (continued)", 72, 100, 300, 112),
		line("Nausea      20    15", 72, 140, 400, 152),
	)
	pageTwo.Number = 2

	p, err := NewPipeline(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	records, err := p.Process([]*model.PageContent{pageOne, pageTwo})
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 merged record", len(records))
	}
	rec := records[0]
	if rec.PageNumber != 1 {
		t.Errorf("merged record on page %d, want 1", rec.PageNumber)
	}
	want := "Table 3. Adverse events by grade. Table 3 (continued)"
	if rec.Caption != want {
		t.Errorf("caption = %q, want %q", rec.Caption, want)
	}
}

func TestMergeContinuationsKeepsOrphans(t *testing.T) {
	records := []model.Figure{
		{Kind: model.KindTable, Name: "Table 9", Caption: "Table 9 (continued)", PageNumber: 4},
	}

	out := MergeContinuations(records)
	if len(out) != 1 {
		t.Fatalf("got %d records, want 1 (orphan kept)", len(out))
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cfg.RenderScale = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero render scale should be rejected")
	}

	cfg = DefaultConfig()
	cfg.MinClusterPaths = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero cluster minimum should be rejected")
	}
}

func TestGlobalRegistryOrder(t *testing.T) {
	want := []string{"embedded-image", "vector-drawing", "table-region"}
	got := ListDetectors()
	if len(got) != len(want) {
		t.Fatalf("registered detectors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("registered detectors = %v, want %v", got, want)
		}
	}
	if GetDetector("table-region") == nil {
		t.Error("lookup by name failed")
	}
}

package figures

import (
	"github.com/nayanlc19/journal-club-standalone/model"
)

// DrawingDetector groups vector drawing paths into clusters and promotes
// captioned clusters to figure or table records. Charts and diagrams in
// journal PDFs are usually drawn as many small paths, so a dense cluster
// near a caption is a strong figure signal, while sparse or uncaptioned
// path groups are page furniture (rules, borders) and are dropped.
type DrawingDetector struct {
	config Config
}

// NewDrawingDetector creates a drawing detector with default configuration
func NewDrawingDetector() *DrawingDetector {
	return &DrawingDetector{config: DefaultConfig()}
}

// Name returns the detector name
func (d *DrawingDetector) Name() string {
	return "vector-drawing"
}

// Configure sets detector parameters
func (d *DrawingDetector) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	d.config = config
	return nil
}

// Detect clusters the page's paths and emits one record per captioned
// cluster. The record takes the caption's kind, so a chart drawn under a
// "Table N" caption is reported as a table.
func (d *DrawingDetector) Detect(page *model.PageContent, captions *CaptionSet) ([]model.Figure, error) {
	var out []model.Figure

	for _, cluster := range clusterPaths(page.Drawings, d.config.ClusterRadius) {
		if len(cluster.paths) < d.config.MinClusterPaths {
			continue
		}
		if cluster.bounds.Area() < d.config.MinImageArea {
			continue
		}

		match := matchCaption(captions, model.KindFigure, cluster.bounds, d.config)
		if match == nil {
			match = matchCaption(captions, model.KindTable, cluster.bounds, d.config)
		}
		if match == nil {
			// Uncaptioned clusters are decorative
			continue
		}
		match.Claim()

		out = append(out, model.Figure{
			Kind:       match.Kind,
			PageNumber: page.Number,
			Name:       match.Name,
			Caption:    match.Text,
			BBox:       cluster.bounds,
			Source:     d.Name(),
		})
	}

	return out, nil
}

type pathCluster struct {
	paths  []model.DrawingPath
	bounds model.BBox
}

// clusterPaths greedily groups paths whose boxes sit within radius of the
// growing cluster bounds. Growing the bounds as paths join lets elongated
// charts chain together, which is the behavior the thresholds were tuned
// against.
func clusterPaths(paths []model.DrawingPath, radius float64) []pathCluster {
	assigned := make([]bool, len(paths))
	var clusters []pathCluster

	for i := range paths {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		cluster := pathCluster{
			paths:  []model.DrawingPath{paths[i]},
			bounds: paths[i].BBox,
		}

		for grew := true; grew; {
			grew = false
			reach := cluster.bounds.Expand(radius)
			for j := range paths {
				if assigned[j] || !reach.Intersects(paths[j].BBox) {
					continue
				}
				assigned[j] = true
				cluster.paths = append(cluster.paths, paths[j])
				cluster.bounds = cluster.bounds.Union(paths[j].BBox)
				grew = true
			}
		}

		clusters = append(clusters, cluster)
	}

	return clusters
}

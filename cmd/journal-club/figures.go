package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	journalclub "github.com/nayanlc19/journal-club-standalone"
	"github.com/nayanlc19/journal-club-standalone/figures"
	"github.com/nayanlc19/journal-club-standalone/render"
)

var figuresCmd = &cobra.Command{
	Use:   "figures <pdf>",
	Short: "Extract figure and table records from a PDF",
	Long: `Figures locates captioned figures and tables in the given PDF and
writes them to stdout as JSON records with page number, name, caption,
bounding box and a rendered PNG crop encoded as a data URI.`,
	Args: cobra.ExactArgs(1),
	RunE: runFigures,
}

func init() {
	figuresCmd.Flags().String("pages", "", "pages to process, e.g. \"1,3,5-7\" (default: all)")
	figuresCmd.Flags().Bool("no-images", false, "skip rendering, emit coordinates and captions only")
	figuresCmd.Flags().Bool("ocr", false, "recover captions on scanned pages (requires an ocr-enabled build)")
	figuresCmd.Flags().String("ocr-lang", "eng", "tesseract language code for --ocr")
	figuresCmd.Flags().Duration("timeout", render.DefaultTimeout, "per-page render timeout")
	figuresCmd.Flags().Float64("min-image-area", 0, "override minimum figure area in square points")
	figuresCmd.Flags().Float64("max-caption-gap", 0, "override maximum caption-to-element gap in points")
	figuresCmd.Flags().Float64("render-scale", 0, "override render scale for figure crops")

	rootCmd.AddCommand(figuresCmd)
}

func runFigures(cmd *cobra.Command, args []string) error {
	start := time.Now()

	ext := journalclub.Open(args[0]).WithConfig(detectionConfig(cmd))

	if spec, _ := cmd.Flags().GetString("pages"); spec != "" {
		pages, err := parsePages(spec)
		if err != nil {
			return fail(err)
		}
		ext = ext.Pages(pages...)
	}
	if skip, _ := cmd.Flags().GetBool("no-images"); skip {
		ext = ext.WithoutImages()
	}
	if useOCR, _ := cmd.Flags().GetBool("ocr"); useOCR {
		lang, _ := cmd.Flags().GetString("ocr-lang")
		ext = ext.WithOCR(lang)
	}
	if d, _ := cmd.Flags().GetDuration("timeout"); d > 0 {
		ext = ext.WithTimeout(d)
	}
	if binary := viper.GetString("rasterizer"); binary != "" {
		ext = ext.WithRasterizer(render.NewExternal(binary))
	}

	figs, warnings, err := ext.FiguresContext(cmd.Context())
	if err != nil {
		return fail(err)
	}
	for _, w := range warnings {
		logger.Warn(w.Message, zap.String("code", w.Code), zap.Int("page", w.Page))
	}
	logger.Info("extraction complete",
		zap.String("file", args[0]),
		zap.Int("records", len(figs)),
		zap.Duration("elapsed", time.Since(start)))

	return writeResult(resultEnvelope{
		Success:        true,
		Figures:        figs,
		Warnings:       warnings,
		ProcessingTime: time.Since(start).Seconds(),
	})
}

// detectionConfig starts from the defaults and applies any threshold
// overrides given on the command line.
func detectionConfig(cmd *cobra.Command) figures.Config {
	cfg := figures.DefaultConfig()
	if v, _ := cmd.Flags().GetFloat64("min-image-area"); v > 0 {
		cfg.MinImageArea = v
	}
	if v, _ := cmd.Flags().GetFloat64("max-caption-gap"); v > 0 {
		cfg.MaxCaptionGap = v
	}
	if v, _ := cmd.Flags().GetFloat64("render-scale"); v > 0 {
		cfg.RenderScale = v
	}
	return cfg
}

// parsePages expands a page spec like "1,3,5-7" into sorted page numbers.
func parsePages(spec string) ([]int, error) {
	seen := make(map[int]bool)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if from, to, ok := strings.Cut(part, "-"); ok {
			lo, err1 := strconv.Atoi(strings.TrimSpace(from))
			hi, err2 := strconv.Atoi(strings.TrimSpace(to))
			if err1 != nil || err2 != nil || lo < 1 || hi < lo {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
			for p := lo; p <= hi; p++ {
				seen[p] = true
			}
			continue
		}
		p, err := strconv.Atoi(part)
		if err != nil || p < 1 {
			return nil, fmt.Errorf("invalid page number %q", part)
		}
		seen[p] = true
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("empty page spec %q", spec)
	}
	pages := make([]int, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages, nil
}

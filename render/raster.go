package render

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// Rasterizer renders one PDF page to an image. scale is relative to the
// page's natural size at 72 DPI, so scale 2 yields 144 DPI.
type Rasterizer interface {
	RenderPage(ctx context.Context, pdfPath string, pageNr int, scale float64) (image.Image, error)
}

// DefaultTimeout bounds a single page render when the caller's context
// carries no deadline of its own.
const DefaultTimeout = 60 * time.Second

// External rasterizes pages by shelling out to a renderer binary. Both
// poppler's pdftoppm and mupdf's mutool are understood; the argument style
// is picked from the binary's base name.
type External struct {
	// Binary is the renderer executable, looked up on PATH when not
	// absolute. Defaults to pdftoppm.
	Binary string

	// Timeout bounds one render. Zero means DefaultTimeout.
	Timeout time.Duration
}

// NewExternal returns a rasterizer using the given binary, or pdftoppm
// when binary is empty.
func NewExternal(binary string) *External {
	if binary == "" {
		binary = "pdftoppm"
	}
	return &External{Binary: binary}
}

// Available reports whether the renderer binary can be found
func (e *External) Available() bool {
	_, err := exec.LookPath(e.Binary)
	return err == nil
}

// RenderPage renders pageNr (1-based) at the given scale and decodes the
// resulting PNG.
func (e *External) RenderPage(ctx context.Context, pdfPath string, pageNr int, scale float64) (image.Image, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("render scale must be positive, got %v", scale)
	}

	timeout := e.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "jc-render-*")
	if err != nil {
		return nil, fmt.Errorf("render temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	dpi := int(scale*72 + 0.5)

	outFile, args := e.commandArgs(pdfPath, pageNr, dpi, tmpDir)
	cmd := exec.CommandContext(ctx, e.Binary, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s page %d: %w: %s", filepath.Base(e.Binary), pageNr, err, firstLine(out))
	}

	matches, err := filepath.Glob(outFile)
	if err != nil || len(matches) == 0 {
		return nil, fmt.Errorf("%s page %d: no output produced", filepath.Base(e.Binary), pageNr)
	}

	f, err := os.Open(matches[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode rendered page %d: %w", pageNr, err)
	}
	return img, nil
}

// commandArgs builds the renderer invocation and the glob matching its
// output file.
func (e *External) commandArgs(pdfPath string, pageNr, dpi int, tmpDir string) (outGlob string, args []string) {
	page := strconv.Itoa(pageNr)

	if filepath.Base(e.Binary) == "mutool" {
		out := filepath.Join(tmpDir, "page.png")
		return out, []string{
			"draw", "-o", out, "-r", strconv.Itoa(dpi), "-F", "png", pdfPath, page,
		}
	}

	// pdftoppm appends the page number with zero padding that varies by
	// document length, hence the glob.
	prefix := filepath.Join(tmpDir, "page")
	return prefix + "-*.png", []string{
		"-png", "-r", strconv.Itoa(dpi), "-f", page, "-l", page, pdfPath, prefix,
	}
}

func firstLine(out []byte) string {
	for i, b := range out {
		if b == '\n' {
			return string(out[:i])
		}
	}
	return string(out)
}

// Package render rasterizes PDF pages to PNG files using go-fitz.
package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog"

	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/domain"
)

// Exporter renders selected pages of a PDF into a directory named after the
// source file, and archives a copy of the source alongside the rasters.
type Exporter struct {
	logger zerolog.Logger
}

// NewExporter creates a new exporter
func NewExporter(logger zerolog.Logger) *Exporter {
	return &Exporter{
		logger: logger.With().Str("component", "render").Logger(),
	}
}

// Export renders the pages selected by opts.Pages at opts.DPI and returns the
// manifest of written files. The output directory is the source path with its
// extension stripped; re-running overwrites rendered pages but never the
// archived source copy.
func (e *Exporter) Export(path string, opts domain.RenderOptions) (*domain.Manifest, error) {
	if opts.DPI <= 0 {
		return nil, domain.ValidationError(fmt.Sprintf("dpi must be positive, got %d", opts.DPI), nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, domain.SourceNotFoundError(fmt.Sprintf("file not found: %s", path), err)
	}
	if info.IsDir() {
		return nil, domain.SourceNotFoundError(fmt.Sprintf("path is a directory, not a file: %s", path), nil)
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, domain.DocumentOpenError(fmt.Sprintf("cannot open document: %s", path), err)
	}
	defer doc.Close()

	pages, err := ResolvePages(opts.Pages, doc.NumPage())
	if err != nil {
		return nil, err
	}

	outDir := strings.TrimSuffix(path, filepath.Ext(path))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, domain.IOError(fmt.Sprintf("cannot create output directory: %s", outDir), err)
	}
	base := filepath.Base(outDir)

	e.logger.Debug().
		Str("source", path).
		Int("dpi", opts.DPI).
		Bool("grayscale", opts.Grayscale).
		Ints("pages", pages).
		Msg("rendering pages")

	// A lone selected page gets no page suffix; any larger selection numbers
	// every output. The two namings must never be mixed within one run.
	single := len(pages) == 1

	manifest := &domain.Manifest{Pages: make([]string, 0, len(pages))}

	for _, pageNum := range pages {
		img, err := doc.ImageDPI(pageNum-1, float64(opts.DPI))
		if err != nil {
			return nil, domain.RenderError(fmt.Sprintf("cannot render page %d", pageNum), err)
		}

		var out image.Image = img
		if opts.Grayscale {
			out = toGray(img)
		}

		var name string
		if single {
			name = base + ".png"
		} else {
			name = fmt.Sprintf("%s_p%02d.png", base, pageNum)
		}
		outPath := filepath.Join(outDir, name)

		if err := writePNG(outPath, out); err != nil {
			return nil, err
		}

		manifest.Pages = append(manifest.Pages, outPath)
	}

	copyPath, err := archiveSource(path, outDir)
	if err != nil {
		return nil, err
	}
	manifest.SourceCopy = copyPath

	e.logger.Info().
		Int("pages", len(manifest.Pages)).
		Str("dir", outDir).
		Msg("export complete")

	return manifest, nil
}

// toGray collapses a multi-channel raster to a single channel. Rasters that
// are already single-channel pass through untouched.
func toGray(img image.Image) image.Image {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	g := image.NewGray(img.Bounds())
	draw.Draw(g, g.Bounds(), img, img.Bounds().Min, draw.Src)
	return g
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return domain.IOError(fmt.Sprintf("cannot create output file: %s", path), err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return domain.IOError(fmt.Sprintf("cannot encode %s", path), err)
	}
	if err := f.Close(); err != nil {
		return domain.IOError(fmt.Sprintf("cannot write %s", path), err)
	}
	return nil
}

// archiveSource copies the original document into outDir under its own
// basename, skipping the copy if one is already there.
func archiveSource(path, outDir string) (string, error) {
	copyPath := filepath.Join(outDir, filepath.Base(path))
	if _, err := os.Stat(copyPath); err == nil {
		return copyPath, nil
	}

	src, err := os.Open(path)
	if err != nil {
		return "", domain.IOError(fmt.Sprintf("cannot open source for archiving: %s", path), err)
	}
	defer src.Close()

	dst, err := os.Create(copyPath)
	if err != nil {
		return "", domain.IOError(fmt.Sprintf("cannot create archive copy: %s", copyPath), err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", domain.IOError(fmt.Sprintf("cannot archive source to %s", copyPath), err)
	}
	if err := dst.Close(); err != nil {
		return "", domain.IOError(fmt.Sprintf("cannot archive source to %s", copyPath), err)
	}

	return copyPath, nil
}

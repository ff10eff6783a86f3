package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/domain"
	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/render"
)

var (
	renderDPI       int
	renderPages     string
	renderGrayscale bool
)

var renderCmd = &cobra.Command{
	Use:   "render <document-path>",
	Short: "Render a PDF to PNG images",
	Long: `Render the selected pages of a PDF into a directory named after the
document (extension stripped), and archive a copy of the original alongside
the images. Prints each written PNG path on success.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntVar(&renderDPI, "dpi", domain.DefaultDPI, "render resolution in dots per inch")
	renderCmd.Flags().StringVar(&renderPages, "pages", "", "pages to render, e.g. '1,3-5' (1-based; default: all)")
	renderCmd.Flags().BoolVar(&renderGrayscale, "grayscale", false, "render in grayscale to reduce size")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	opts := domain.RenderOptions{
		DPI:       renderDPI,
		Pages:     renderPages,
		Grayscale: renderGrayscale,
	}
	if !cmd.Flags().Changed("dpi") {
		opts.DPI = cfg.Render.DPI
	}
	if !cmd.Flags().Changed("grayscale") {
		opts.Grayscale = cfg.Render.Grayscale
	}

	exporter := render.NewExporter(logger)
	manifest, err := exporter.Export(args[0], opts)
	if err != nil {
		return err
	}

	for _, path := range manifest.Pages {
		fmt.Println(path)
	}

	return nil
}

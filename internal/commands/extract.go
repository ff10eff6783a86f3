package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/domain"
	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/extract"
	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/render"
)

var (
	extractStrategy  string
	extractPages     string
	extractDPI       int
	extractGrayscale bool
	extractDryRun    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <document-path>",
	Short: "Extract equipment metadata from a solar installation diagram",
	Long: `Render the document's pages, upload it with up to two page images to the
hosted model, run the chosen extraction strategy, and save the structured
result next to the rendered images.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractStrategy, "strategy", extract.StrategyEquipment, "extraction strategy to run")
	extractCmd.Flags().StringVar(&extractPages, "pages", "", "pages to render, e.g. '1,3-5' (1-based; default: all)")
	extractCmd.Flags().IntVar(&extractDPI, "dpi", domain.DefaultDPI, "render resolution in dots per inch")
	extractCmd.Flags().BoolVar(&extractGrayscale, "grayscale", false, "render pages in grayscale")
	extractCmd.Flags().BoolVar(&extractDryRun, "dry-run", false, "render only; skip uploads and the API call")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	client, err := newAPIClient()
	if err != nil && !extractDryRun {
		return err
	}

	registry := newRegistry(client)
	service := extract.NewService(render.NewExporter(logger), client, registry, logger)

	opts := extract.ProcessOptions{
		Strategy: extractStrategy,
		DryRun:   extractDryRun,
		Render: domain.RenderOptions{
			DPI:       extractDPI,
			Pages:     extractPages,
			Grayscale: extractGrayscale,
		},
	}
	if !cmd.Flags().Changed("dpi") {
		opts.Render.DPI = cfg.Render.DPI
	}

	fmt.Printf("Processing: %s\n", pdfPath)

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.Suffix = fmt.Sprintf(" running %s extraction...", opts.Strategy)
	sp.Start()

	result, err := service.Process(ctx, pdfPath, opts)
	sp.Stop()

	if err != nil {
		return err
	}

	color.Green("✓ Extraction complete in %v", result.Duration.Round(time.Second))
	fmt.Printf("Rendered pages: %d\n", len(result.Manifest.Pages))

	if result.Result.DryRun {
		color.Yellow("Dry run: no API call made")
		return nil
	}

	if eq := result.Result.Equipment; eq != nil {
		printEquipment("Inverter", eq.Inverter)
		printEquipment("Module", eq.Module)
		printEquipment("Racking System", eq.RackingSystem)
	}
	if result.Result.Text != "" {
		fmt.Println(result.Result.Text)
	}

	fmt.Printf("Results saved to: %s\n", result.LatestPath)

	return nil
}

func printEquipment(label string, entries []domain.EquipmentEntry) {
	if len(entries) == 0 || !entries[0].Found {
		color.Yellow("%-15s not found", label)
		return
	}
	e := entries[0]
	fmt.Printf("%-15s %s %s (pages %v)\n", label, e.Manufacturer, e.Model, e.PageRefs)
	if e.EvidenceNote != "" {
		fmt.Printf("%-15s note: %s\n", "", e.EvidenceNote)
	}
}

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/extract"
)

var (
	invokeStrategy string
	invokeFileID   string
	invokeDryRun   bool
)

var invokeCmd = &cobra.Command{
	Use:   "invoke [image-file-ids...]",
	Short: "Run one extraction against already-uploaded file IDs",
	Long: `Run a single extraction strategy against file IDs that were previously
uploaded to the hosted API, without rendering or uploading anything. Prints
the result as JSON. This is the command-line twin of POST /v1/invoke.`,
	RunE: runInvoke,
}

func init() {
	invokeCmd.Flags().StringVar(&invokeStrategy, "strategy", extract.StrategyEquipment, "extraction strategy to run")
	invokeCmd.Flags().StringVar(&invokeFileID, "file-id", "", "uploaded document file ID")
	invokeCmd.Flags().BoolVar(&invokeDryRun, "dry-run", false, "echo the resolved inputs without calling the API")
	rootCmd.AddCommand(invokeCmd)
}

func runInvoke(cmd *cobra.Command, args []string) error {
	if invokeFileID == "" && !invokeDryRun {
		return fmt.Errorf("--file-id is required (or use --dry-run)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := newAPIClient()
	if err != nil && !invokeDryRun {
		return err
	}

	registry := newRegistry(client)
	extractor, err := registry.Get(invokeStrategy)
	if err != nil {
		return err
	}

	result, err := extractor.Run(ctx, extract.Request{
		FileID:   invokeFileID,
		ImageIDs: args,
		DryRun:   invokeDryRun,
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	return nil
}

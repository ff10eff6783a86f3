package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/domain"
)

const (
	latestResultsName = "extracted_fields.json"
	timestampLayout   = "2006-01-02T15-04-05Z"
)

// SaveResults writes the extraction result into dir twice: once under the
// fixed latest name, overwritten every run, and once under a UTC-timestamped
// name that accumulates a history. Returns both paths.
func SaveResults(result *Result, dir string) (latest string, timestamped string, err error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", "", domain.IOError("cannot marshal extraction result", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", domain.IOError(fmt.Sprintf("cannot create results directory: %s", dir), err)
	}

	stamp := time.Now().UTC().Format(timestampLayout)
	timestamped = filepath.Join(dir, fmt.Sprintf("extracted_fields-%s.json", stamp))
	if err := os.WriteFile(timestamped, data, 0o644); err != nil {
		return "", "", domain.IOError(fmt.Sprintf("cannot write %s", timestamped), err)
	}

	latest = filepath.Join(dir, latestResultsName)
	if err := os.WriteFile(latest, data, 0o644); err != nil {
		return "", "", domain.IOError(fmt.Sprintf("cannot write %s", latest), err)
	}

	return latest, timestamped, nil
}

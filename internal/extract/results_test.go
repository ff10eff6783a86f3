package extract

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/domain"
)

func TestSaveResults(t *testing.T) {
	dir := t.TempDir()
	result := &Result{
		Strategy: StrategyEquipment,
		FileID:   "file-1",
		Equipment: &domain.ExtractionResult{
			Inverter: []domain.EquipmentEntry{{
				Found:        true,
				Manufacturer: "SolarEdge",
				Model:        "SE6000H-US",
				PageRefs:     []int{2},
			}},
		},
	}

	latest, timestamped, err := SaveResults(result, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "extracted_fields.json"), latest)
	assert.True(t, strings.HasPrefix(filepath.Base(timestamped), "extracted_fields-"))
	assert.True(t, strings.HasSuffix(timestamped, ".json"))

	latestData, err := os.ReadFile(latest)
	require.NoError(t, err)
	stampedData, err := os.ReadFile(timestamped)
	require.NoError(t, err)
	assert.Equal(t, latestData, stampedData)

	var restored Result
	require.NoError(t, json.Unmarshal(latestData, &restored))
	assert.Equal(t, StrategyEquipment, restored.Strategy)
	require.Len(t, restored.Equipment.Inverter, 1)
	assert.Equal(t, "SolarEdge", restored.Equipment.Inverter[0].Manufacturer)
}

func TestSaveResultsCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	_, _, err := SaveResults(&Result{Strategy: StrategyDescribe, Text: "x"}, dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "extracted_fields.json"))
	assert.NoError(t, err)
}

func TestSaveResultsOverwritesLatest(t *testing.T) {
	dir := t.TempDir()

	_, _, err := SaveResults(&Result{Strategy: StrategyDescribe, Text: "first"}, dir)
	require.NoError(t, err)
	latest, _, err := SaveResults(&Result{Strategy: StrategyDescribe, Text: "second"}, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(latest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "second")
}

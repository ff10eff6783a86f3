package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/observability"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	logger := observability.NewLogger(observability.LogConfig{Level: "error", Service: "test"})
	client, err := NewClient(Config{
		APIKey:  "sk-test-key",
		BaseURL: baseURL,
	}, logger)
	require.NoError(t, err)
	// Keep retries fast in tests
	client.retry = &RetryConfig{
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}
	return client
}

func TestNewClient(t *testing.T) {
	logger := observability.NewLogger(observability.LogConfig{Level: "error", Service: "test"})

	t.Run("requires api key", func(t *testing.T) {
		_, err := NewClient(Config{}, logger)
		assert.Error(t, err)
	})

	t.Run("defaults applied", func(t *testing.T) {
		client, err := NewClient(Config{APIKey: "sk-test"}, logger)
		require.NoError(t, err)
		assert.Equal(t, defaultModel, client.Model())
		assert.Equal(t, defaultBaseURL, client.baseURL)
	})

	t.Run("model override", func(t *testing.T) {
		client, err := NewClient(Config{APIKey: "sk-test", Model: "gpt-4.1"}, logger)
		require.NoError(t, err)
		assert.Equal(t, "gpt-4.1", client.Model())
	})
}

func TestUploadFile(t *testing.T) {
	var gotPurpose, gotFilename, gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/files", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotPurpose = r.FormValue("purpose")
		if fhs := r.MultipartForm.File["file"]; len(fhs) == 1 {
			gotFilename = fhs[0].Filename
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(FileUploadResponse{ID: "file-abc123"})
	}))
	defer srv.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "diagram.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 test"), 0o644))

	client := newTestClient(t, srv.URL)
	id, err := client.UploadFile(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "file-abc123", id)
	assert.Equal(t, "user_data", gotPurpose)
	assert.Equal(t, "diagram.pdf", gotFilename)
	assert.Equal(t, "Bearer sk-test-key", gotAuth)
}

func TestUploadFileMissing(t *testing.T) {
	client := newTestClient(t, "http://localhost:0")
	_, err := client.UploadFile(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))
	assert.Error(t, err)
}

func TestRespond(t *testing.T) {
	var gotReq Request

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/responses", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Response{
			ID: "resp_1",
			Output: []OutputItem{{
				Type: "message",
				Content: []OutputContent{
					{Type: "output_text", Text: `{"Inverter":[]`},
					{Type: "output_text", Text: `}`},
				},
			}},
		})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	text, err := client.Respond(context.Background(), &Request{
		Input: []InputMessage{{
			Role: "user",
			Content: []ContentPart{
				{Type: PartInputFile, FileID: "file-1"},
				{Type: PartInputText, Text: "hello"},
			},
		}},
	})

	require.NoError(t, err)
	assert.Equal(t, `{"Inverter":[]}`, text)
	// The client fills in its default model when the request leaves it blank
	assert.Equal(t, defaultModel, gotReq.Model)
	require.Len(t, gotReq.Input, 1)
	assert.Equal(t, PartInputFile, gotReq.Input[0].Content[0].Type)
}

func TestRespondAPIStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.Respond(context.Background(), &Request{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestRespondRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(Response{
			ID: "resp_2",
			Output: []OutputItem{{
				Type:    "message",
				Content: []OutputContent{{Type: "output_text", Text: "ok"}},
			}},
		})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	text, err := client.Respond(context.Background(), &Request{})

	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRespondNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.Respond(context.Background(), &Request{})

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRespondEmptyOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Response{ID: "resp_3"})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	_, err := client.Respond(context.Background(), &Request{})
	assert.Error(t, err)
}

func TestOutputText(t *testing.T) {
	resp := &Response{
		Output: []OutputItem{
			{Type: "reasoning", Content: []OutputContent{{Type: "output_text", Text: "skip"}}},
			{Type: "message", Content: []OutputContent{
				{Type: "output_text", Text: "a"},
				{Type: "refusal", Text: "skip"},
				{Type: "output_text", Text: "b"},
			}},
		},
	}
	assert.Equal(t, "ab", resp.OutputText())
}

func TestEquipmentFormat(t *testing.T) {
	format := EquipmentFormat()

	assert.Equal(t, "json_schema", format.Format.Type)
	assert.Equal(t, "equipment_summary", format.Format.Name)
	assert.True(t, format.Format.Strict)

	data, err := json.Marshal(format)
	require.NoError(t, err)

	for _, key := range []string{"Inverter", "Module", "Racking System", "found", "manufacturer", "model", "evidence_note", "page_refs"} {
		assert.Contains(t, string(data), key)
	}
}

func TestCalculateBackoff(t *testing.T) {
	config := &RetryConfig{
		InitialBackoff: time.Second,
		MaxBackoff:     5 * time.Second,
	}

	assert.Equal(t, time.Second, calculateBackoff(0, config))
	assert.Equal(t, 2*time.Second, calculateBackoff(1, config))
	assert.Equal(t, 4*time.Second, calculateBackoff(2, config))
	assert.Equal(t, 5*time.Second, calculateBackoff(3, config), "capped at max")
}

func TestShouldRetry(t *testing.T) {
	retryable := []int{429, 500, 502, 503, 504}
	for _, code := range retryable {
		assert.True(t, shouldRetry(code), "status %d", code)
	}
	for _, code := range []int{200, 400, 401, 403, 404} {
		assert.False(t, shouldRetry(code), "status %d", code)
	}
}

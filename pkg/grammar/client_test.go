package grammar_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/checkmark/pkg/grammar"
)

type request struct {
	Key       string `json:"key"`
	Text      string `json:"text"`
	SessionID string `json:"session_id"`
}

// newEditsServer answers every request with edits computed by respond.
func newEditsServer(t *testing.T, respond func(req request) (int, any)) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		status, body := respond(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func newClient(t *testing.T, endpoint string) *grammar.SaplingClient {
	t.Helper()

	client, err := grammar.NewSaplingClient(grammar.ClientOptions{
		Endpoint: endpoint,
		Key:      "secret",
		Backoff:  time.Millisecond,
	})
	require.NoError(t, err)
	return client
}

func TestNewSaplingClient_MissingCredential(t *testing.T) {
	t.Parallel()

	_, err := grammar.NewSaplingClient(grammar.ClientOptions{})
	require.ErrorIs(t, err, grammar.ErrMissingCredential)
}

func TestSaplingClient_Suggest(t *testing.T) {
	t.Parallel()

	server, _ := newEditsServer(t, func(req request) (int, any) {
		assert.Equal(t, "secret", req.Key)
		assert.NotEmpty(t, req.SessionID)
		if req.Text == "This are fine." {
			return http.StatusOK, map[string]any{"edits": []map[string]any{{
				"start": 5, "end": 8, "replacement": "is", "sentence": req.Text, "sentence_start": 0,
			}}}
		}
		return http.StatusOK, map[string]any{"edits": []any{}}
	})
	client := newClient(t, server.URL)

	got, ok, err := client.Suggest(context.Background(), "This are fine.")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "This is fine.", got)

	_, ok, err = client.Suggest(context.Background(), "This is fine.")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaplingClient_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var first atomic.Bool
	server, calls := newEditsServer(t, func(_ request) (int, any) {
		if first.CompareAndSwap(false, true) {
			return http.StatusServiceUnavailable, nil
		}
		return http.StatusOK, map[string]any{"edits": []any{}}
	})

	_, ok, err := newClient(t, server.URL).Suggest(context.Background(), "Fine text.")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSaplingClient_ClientErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	server, calls := newEditsServer(t, func(_ request) (int, any) {
		return http.StatusUnauthorized, map[string]string{"msg": "bad key"}
	})

	_, _, err := newClient(t, server.URL).Suggest(context.Background(), "Some text.")
	require.ErrorIs(t, err, grammar.ErrService)
	assert.Contains(t, err.Error(), "status 401")
	assert.Equal(t, int32(1), calls.Load())
}

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		edits    []grammar.Edit
		expected string
	}{
		{
			name:     "no edits",
			text:     "Unchanged.",
			expected: "Unchanged.",
		},
		{
			name: "sentence offsets",
			text: "First one. Second are here.",
			edits: []grammar.Edit{
				{Start: 7, End: 10, Replacement: "is", SentenceStart: 11},
			},
			expected: "First one. Second is here.",
		},
		{
			name: "unordered edits",
			text: "a b c",
			edits: []grammar.Edit{
				{Start: 4, End: 5, Replacement: "C"},
				{Start: 0, End: 1, Replacement: "A"},
			},
			expected: "A b C",
		},
		{
			name: "overlapping and out of range edits are dropped",
			text: "abcdef",
			edits: []grammar.Edit{
				{Start: 0, End: 3, Replacement: "X"},
				{Start: 2, End: 4, Replacement: "Y"},
				{Start: 5, End: 40, Replacement: "Z"},
			},
			expected: "Xdef",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, grammar.ApplyEdits(tc.text, tc.edits))
		})
	}
}

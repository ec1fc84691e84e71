package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/mamadbah2/aquashop/internal/config"
)

type recordedCall struct {
	method string
	path   string
	body   string
}

func newTestRepository(t *testing.T) (*GoogleSheetRepository, func() []recordedCall) {
	t.Helper()

	var (
		mu    sync.Mutex
		calls []recordedCall
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, recordedCall{method: r.Method, path: r.URL.Path, body: string(body)})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	repo, err := NewGoogleSheetRepository(context.Background(),
		config.SheetsConfig{SpreadsheetID: "sheet-1"},
		nil,
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	return repo, func() []recordedCall {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedCall(nil), calls...)
	}
}

func TestAppendRow_PostsSingleRow(t *testing.T) {
	repo, calls := newTestRepository(t)

	err := repo.AppendRow(context.Background(), "Billing Closures!A:F", []interface{}{"2024-03", "210"})
	require.NoError(t, err)

	recorded := calls()
	require.Len(t, recorded, 1)
	assert.Equal(t, http.MethodPost, recorded[0].method)
	assert.True(t, strings.HasSuffix(recorded[0].path, ":append"))

	var payload struct {
		Values [][]interface{} `json:"values"`
	}
	require.NoError(t, json.Unmarshal([]byte(recorded[0].body), &payload))
	assert.Equal(t, [][]interface{}{{"2024-03", "210"}}, payload.Values)
}

func TestReplaceRange_ClearsThenUpdates(t *testing.T) {
	repo, calls := newTestRepository(t)

	err := repo.ReplaceRange(context.Background(), "Billing!A1:F", [][]interface{}{{"Mês"}, {"março, 2024"}})
	require.NoError(t, err)

	recorded := calls()
	require.Len(t, recorded, 2)
	assert.True(t, strings.HasSuffix(recorded[0].path, ":clear"))
	assert.Equal(t, http.MethodPut, recorded[1].method)
}

func TestRepository_RequiresRange(t *testing.T) {
	repo, calls := newTestRepository(t)

	assert.ErrorIs(t, repo.AppendRow(context.Background(), "", nil), ErrEmptyRange)
	assert.ErrorIs(t, repo.ReplaceRange(context.Background(), "", nil), ErrEmptyRange)
	assert.Empty(t, calls())
}

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bnema/bezier/internal/application/port"
	"github.com/bnema/bezier/internal/application/store"
	"github.com/bnema/bezier/internal/application/usecase"
	"github.com/bnema/bezier/internal/infrastructure/api"
	"github.com/bnema/bezier/internal/infrastructure/permission"
	"github.com/bnema/bezier/internal/logging"
)

var epoch = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func sequentialIDs(prefix string) port.IDGenerator {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s%d", prefix, n.Add(1))
	}
}

func clock() time.Time { return epoch }

func newDeps(t *testing.T, grants ...string) api.Deps {
	t.Helper()
	browser := store.NewBrowserStore(nil, store.Options{
		IDs:            sequentialIDs("id-"),
		Clock:          clock,
		SearchTemplate: "https://duckduckgo.com/?q=%s",
	})
	t.Cleanup(browser.Close)

	return api.Deps{
		Browser:     browser,
		Themes:      store.NewThemeStore(nil, sequentialIDs("theme-"), clock),
		Extensions:  store.NewExtensionStore(nil, sequentialIDs("ext-"), clock),
		Permissions: store.NewPermissionGate(permission.NewPolicyPrompter(grants)),
		Palette:     usecase.NewSearchCommandsUseCase(browser, 0),
		Analytics:   usecase.NewHistoryAnalyticsUseCase(browser, clock),
		Logger:      logging.NewFromConfigValues("debug", "console"),
		StartTime:   epoch,
	}
}

func newTestServer(t *testing.T, d api.Deps) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(api.NewRouter(d, nil))
	t.Cleanup(ts.Close)
	return ts
}

// call sends a JSON request and returns the status and raw body.
func call(t *testing.T, ts *httptest.Server, method, path string, body any) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(t, err)
			rd = bytes.NewReader(data)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, method, ts.URL+path, rd)
	require.NoError(t, err)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decodeAs[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

type idBody struct {
	ID string `json:"id"`
}

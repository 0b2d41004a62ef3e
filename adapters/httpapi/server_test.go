package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"goshuffle/adapters/rng"
	"goshuffle/app"
	"goshuffle/domain/shuffle"
	"goshuffle/internal"
	"goshuffle/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Cleanup(func() { shuffle.SetDefaultStrategy(nil) })

	logger := internal.NewLogger(internal.LogLevelError).WithOutput(log.New(io.Discard, "", 0))
	port := rng.NewAdapter(1)
	defaults := config.SimulationConfig{Trials: 400, Workers: 2, DeckSize: 3, Timeout: 10 * time.Second, Alpha: 0.001}
	return NewServer(
		app.NewShuffleService(port, logger),
		app.NewSimulationService(port, defaults, 5, logger),
		logger,
	)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestShuffleEndpointFaro(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/shuffle", `{"items":[1,2,3,4,5,6,7,8],"strategy":"faro:out"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got struct {
		Items    []int  `json:"items"`
		Strategy string `json:"strategy"`
		Repeats  int    `json:"repeats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []int{1, 5, 2, 6, 3, 7, 4, 8}, got.Items)
	assert.Equal(t, "faro:out", got.Strategy)
	assert.Equal(t, 1, got.Repeats)
}

func TestShuffleEndpointKeepsMixedElements(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/shuffle", `{"items":["a",{"b":1},[2],null],"strategy":"faro:in","repeats":2}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	items := gjson.GetBytes(w.Body.Bytes(), "items").Array()
	require.Len(t, items, 4)
	raw := make([]string, len(items))
	for i, v := range items {
		raw[i] = v.Raw
	}
	assert.ElementsMatch(t, []string{`"a"`, `{"b":1}`, `[2]`, `null`}, raw)
}

func TestShuffleEndpointSeeded(t *testing.T) {
	s := newTestServer(t)
	body := `{"items":["a","b","c","d","e","f"],"strategy":"gsr","seed":11,"repeats":3}`

	first := do(t, s, http.MethodPost, "/shuffle", body)
	second := do(t, s, http.MethodPost, "/shuffle", body)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t,
		gjson.GetBytes(first.Body.Bytes(), "items").Raw,
		gjson.GetBytes(second.Body.Bytes(), "items").Raw)
	assert.Equal(t, int64(11), gjson.GetBytes(first.Body.Bytes(), "seed").Int())
}

func TestShuffleEndpointErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"not json", `{"items":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"missing items", `{"strategy":"random"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"items not array", `{"items":"abc"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown strategy", `{"items":[1,2],"strategy":"bogo"}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"negative repeats", `{"items":[1,2],"repeats":-1}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"repeats not number", `{"items":[1,2],"repeats":"two"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"fractional repeats", `{"items":[1,2],"repeats":1.5}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"repeats out of range", `{"items":[1,2],"repeats":1e30}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"seed too large", `{"items":[1,2],"seed":99999999999999999999}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"fractional seed", `{"items":[1,2],"seed":0.25}`, http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/shuffle", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, gjson.GetBytes(w.Body.Bytes(), "code").String())
		})
	}
}

func TestDefaultEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/default", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "random", gjson.GetBytes(w.Body.Bytes(), "strategy").String())

	w = do(t, s, http.MethodPut, "/default", `{"strategy":"weave:in"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "faro:in", gjson.GetBytes(w.Body.Bytes(), "strategy").String())

	w = do(t, s, http.MethodPost, "/shuffle", `{"items":[6,5,4,3,2,1]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[3,6,2,5,1,4]`, gjson.GetBytes(w.Body.Bytes(), "items").Raw)

	w = do(t, s, http.MethodPut, "/default", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPut, "/default", `{"strategy":"bogo"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "faro:in", s.shuffles.Default().Name())
}

func TestStrategiesEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/strategies", "")
	require.Equal(t, http.StatusOK, w.Code)

	names := gjson.GetBytes(w.Body.Bytes(), "strategies.#.name").Array()
	got := make([]string, len(names))
	for i, n := range names {
		got[i] = n.String()
	}
	assert.ElementsMatch(t, shuffle.Names(), got)
	assert.Equal(t, "random", gjson.GetBytes(w.Body.Bytes(), `strategies.#(default==true).name`).String())
}

func TestSimulateEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/simulate", `{"strategy":"gsr","trials":800}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := w.Body.Bytes()
	assert.Equal(t, "gsr", gjson.GetBytes(body, "strategy").String())
	assert.Equal(t, int64(800), gjson.GetBytes(body, "trials").Int())
	assert.Equal(t, int64(5), gjson.GetBytes(body, "seed").Int())
	assert.True(t, gjson.GetBytes(body, "fit").Exists())

	w = do(t, s, http.MethodPost, "/simulate?format=markdown", `{"strategy":"faro:out","deck_size":4,"trials":10}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "# Shuffle simulation")

	w = do(t, s, http.MethodPost, "/simulate?format=html", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.Contains(w.Body.Bytes(), []byte("<h1")))
}

func TestSimulateEndpointLargeRiffleDeck(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/simulate", `{"strategy":"gsr","deck_size":200,"repeats":7,"trials":10,"workers":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, gjson.ValidBytes(w.Body.Bytes()), w.Body.String())

	tv := gjson.GetBytes(w.Body.Bytes(), "theoretical_tv")
	require.True(t, tv.Exists())
	assert.InDelta(t, 1.0, tv.Float(), 1e-3)
}

func TestSimulateEndpointErrors(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/simulate?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/simulate", `{"repeats":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ARGUMENT", gjson.GetBytes(w.Body.Bytes(), "code").String())

	w = do(t, s, http.MethodPost, "/simulate", `{"trials":"many"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

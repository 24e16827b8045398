package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/DoorCraft/internal/archive"
	"github.com/piwi3910/DoorCraft/internal/configurator"
	"github.com/piwi3910/DoorCraft/internal/engine"
	"github.com/piwi3910/DoorCraft/internal/model"
)

type memQuotes struct {
	quotes []archive.Quote
}

func (m *memQuotes) Get(_ context.Context, idOrRef string) (archive.Quote, error) {
	for _, q := range m.quotes {
		if q.ID == idOrRef || q.Reference == idOrRef {
			return q, nil
		}
	}
	return archive.Quote{}, archive.ErrNotFound
}

func (m *memQuotes) List(_ context.Context, limit int) ([]archive.Quote, error) {
	if limit < len(m.quotes) {
		return m.quotes[:limit], nil
	}
	return m.quotes, nil
}

func newTestEnv() *Env {
	return &Env{
		Prices:   model.DefaultPriceList(),
		Defaults: model.DefaultConfiguration(),
		Company:  "Test Staal",
	}
}

func testQuote() archive.Quote {
	cfg := model.DefaultConfiguration()
	env := engine.Envelope(cfg)
	price := engine.CalculatePrice(env.DoorLeafWidth, cfg.OpeningHeight, cfg.Mechanism, cfg.GridLayout,
		cfg.LeafCount, cfg.SidePanels, cfg.Handle)
	return archive.NewQuote(cfg, price)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestEnv().Handler(), http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}

func TestCORSPreflight(t *testing.T) {
	rec := do(t, newTestEnv().Handler(), http.MethodOptions, "/api/configuration", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestOptions(t *testing.T) {
	rec := do(t, newTestEnv().Handler(), http.MethodGet, "/api/options", "")
	require.Equal(t, http.StatusOK, rec.Code)
	opts := decode[Options](t, rec)
	assert.Equal(t, model.Mechanisms, opts.Mechanisms)
	assert.Contains(t, opts.Handles, model.HandleNone)
}

func TestDefaultConfiguration(t *testing.T) {
	rec := do(t, newTestEnv().Handler(), http.MethodGet, "/api/configuration", "")
	require.Equal(t, http.StatusOK, rec.Code)

	state := decode[configurator.DerivedState](t, rec)
	assert.Equal(t, model.DefaultConfiguration(), state.Configuration)
	assert.Equal(t, 840.0, state.Envelope.DoorLeafWidth)
	assert.Len(t, state.Assembly.Parts, 7)
	assert.Equal(t, int64(1751), state.Price.TotalPrice)
}

func TestConfigureClampsWidth(t *testing.T) {
	rec := do(t, newTestEnv().Handler(), http.MethodPost, "/api/configuration",
		`{"door_mechanism":"hinged","opening_width":5000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	state := decode[configurator.DerivedState](t, rec)
	assert.Equal(t, model.MechanismHinged, state.Configuration.Mechanism)
	assert.Equal(t, 1360.0, state.Configuration.OpeningWidth)
}

func TestConfigureNormalizesAliases(t *testing.T) {
	rec := do(t, newTestEnv().Handler(), http.MethodPost, "/api/configuration",
		`{"door_mechanism":"Scharnier","grid_layout":"FOUR_PANE"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	state := decode[configurator.DerivedState](t, rec)
	assert.Equal(t, model.MechanismHinged, state.Configuration.Mechanism)
	assert.Equal(t, model.GridFourPane, state.Configuration.GridLayout)
}

func TestConfigureRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown option", `{"door_mechanism":"sliding"}`},
		{"unknown field", `{"colour":"red"}`},
		{"malformed json", `{"opening_width":`},
		{"wrong type", `{"opening_width":"wide"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestEnv().Handler(), http.MethodPost, "/api/configuration", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode[errorBody](t, rec).Error)
		})
	}
}

func TestConfigureUnknownOptionNamed(t *testing.T) {
	rec := do(t, newTestEnv().Handler(), http.MethodPost, "/api/configuration", `{"door_mechanism":"sliding"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[errorBody](t, rec).Error, `"sliding"`)
}

func TestValidate(t *testing.T) {
	h := newTestEnv().Handler()

	t.Run("defaults are valid", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/validate", `{}`)
		require.Equal(t, http.StatusOK, rec.Code)
		res := decode[model.ValidationResult](t, rec)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
	})

	t.Run("too wide is not clamped", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/validate", `{"opening_width":5000}`)
		require.Equal(t, http.StatusOK, rec.Code)
		res := decode[model.ValidationResult](t, rec)
		assert.False(t, res.Valid)
		assert.NotEmpty(t, res.Errors)
	})

	t.Run("unknown option is an error", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/validate", `{"finish":"purple"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		res := decode[model.ValidationResult](t, rec)
		assert.False(t, res.Valid)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], `"purple"`)
	})

	t.Run("handle on fixed panel warns", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/validate", `{"door_mechanism":"fixed-panel"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		res := decode[model.ValidationResult](t, rec)
		assert.True(t, res.Valid)
		assert.Len(t, res.Warnings, 1)
	})
}

func TestQuotesWithoutArchive(t *testing.T) {
	h := newTestEnv().Handler()
	for _, path := range []string{"/api/quotes", "/api/quotes/abc", "/api/quotes/abc/pdf"} {
		rec := do(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
	}
}

func TestQuotes(t *testing.T) {
	first, second := testQuote(), testQuote()
	env := newTestEnv()
	env.Quotes = &memQuotes{quotes: []archive.Quote{second, first}}
	h := env.Handler()

	t.Run("list", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/quotes", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]archive.Quote](t, rec), 2)
	})

	t.Run("list with limit", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/quotes?limit=1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[[]archive.Quote](t, rec)
		require.Len(t, got, 1)
		assert.Equal(t, second.ID, got[0].ID)
	})

	t.Run("bad limit", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/quotes?limit=zero", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get by reference", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/quotes/"+first.Reference, "")
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[archive.Quote](t, rec)
		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, int64(1751), got.Price.TotalPrice)
	})

	t.Run("not found", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/quotes/missing", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("pdf", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/quotes/"+first.ID+"/pdf", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
	})
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(t, newTestEnv().Handler(), http.MethodDelete, "/api/configuration", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

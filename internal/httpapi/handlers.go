package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/piwi3910/DoorCraft/internal/archive"
	"github.com/piwi3910/DoorCraft/internal/configurator"
	"github.com/piwi3910/DoorCraft/internal/engine"
	"github.com/piwi3910/DoorCraft/internal/export"
	"github.com/piwi3910/DoorCraft/internal/model"
)

// maxBodyBytes caps request bodies; a patch is a handful of fields.
const maxBodyBytes = 64 << 10

// Options lists every value each configuration field accepts.
type Options struct {
	Mechanisms    []model.Mechanism    `json:"door_mechanism"`
	LeafCounts    []model.LeafCount    `json:"leaf_count"`
	SidePanels    []model.SidePanels   `json:"side_panels"`
	GridLayouts   []model.GridLayout   `json:"grid_layout"`
	Finishes      []model.Finish       `json:"finish"`
	Handles       []model.Handle       `json:"handle_type"`
	GlassPatterns []model.GlassPattern `json:"glass_pattern"`
}

func (e *Env) HandleHealth(w http.ResponseWriter, r *http.Request) {
	e.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (e *Env) HandleOptions(w http.ResponseWriter, r *http.Request) {
	e.writeJSON(w, http.StatusOK, Options{
		Mechanisms:    model.Mechanisms,
		LeafCounts:    model.LeafCounts,
		SidePanels:    model.SidePanelOptions,
		GridLayouts:   model.GridLayouts,
		Finishes:      model.Finishes,
		Handles:       model.Handles,
		GlassPatterns: model.GlassPatterns,
	})
}

// newStore starts a fresh session seeded with the configured defaults.
func (e *Env) newStore() *configurator.Store {
	return configurator.New(
		configurator.WithPriceList(e.Prices),
		configurator.WithConfiguration(e.Defaults),
		configurator.WithLogger(e.logger()),
	)
}

// HandleDefaultConfiguration returns the derived state of the defaults.
func (e *Env) HandleDefaultConfiguration(w http.ResponseWriter, r *http.Request) {
	e.writeJSON(w, http.StatusOK, e.newStore().State())
}

// HandleConfigure applies a patch to the defaults and returns the clamped,
// derived state. Unknown option values are rejected with 400.
func (e *Env) HandleConfigure(w http.ResponseWriter, r *http.Request) {
	patch, ok := e.decodePatch(w, r)
	if !ok {
		return
	}
	if err := patch.Normalize(); err != nil {
		e.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	e.writeJSON(w, http.StatusOK, e.newStore().Apply(patch))
}

// HandleValidate checks the requested values as sent, without clamping.
// Unknown option values show up as validation errors.
func (e *Env) HandleValidate(w http.ResponseWriter, r *http.Request) {
	patch, ok := e.decodePatch(w, r)
	if !ok {
		return
	}
	var optionErrs []string
	if err := patch.Normalize(); err != nil {
		optionErrs = strings.Split(err.Error(), "\n")
	}
	result := engine.ValidateConfiguration(patch.Apply(e.Defaults))
	if len(optionErrs) > 0 {
		result = model.NewValidationResult(optionErrs, nil).Merge(result)
	}
	e.writeJSON(w, http.StatusOK, result)
}

func (e *Env) decodePatch(w http.ResponseWriter, r *http.Request) (configurator.Patch, bool) {
	var patch configurator.Patch
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		e.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid patch: %v", err))
		return configurator.Patch{}, false
	}
	return patch, true
}

// HandleQuotes lists archived quotes, newest first.
func (e *Env) HandleQuotes(w http.ResponseWriter, r *http.Request) {
	if e.Quotes == nil {
		e.writeError(w, http.StatusServiceUnavailable, "quote archive not configured")
		return
	}
	limit := archive.DefaultListLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			e.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	quotes, err := e.Quotes.List(r.Context(), limit)
	if err != nil {
		e.logger().Error("listing quotes", "error", err)
		e.writeError(w, http.StatusInternalServerError, "listing quotes failed")
		return
	}
	e.writeJSON(w, http.StatusOK, quotes)
}

// HandleQuote returns one quote by ID or reference.
func (e *Env) HandleQuote(w http.ResponseWriter, r *http.Request) {
	q, ok := e.lookupQuote(w, r)
	if !ok {
		return
	}
	e.writeJSON(w, http.StatusOK, q)
}

// HandleQuotePDF renders an archived quote as a PDF sheet. The price is
// the archived one, not a fresh calculation.
func (e *Env) HandleQuotePDF(w http.ResponseWriter, r *http.Request) {
	q, ok := e.lookupQuote(w, r)
	if !ok {
		return
	}
	state := configurator.New(configurator.WithConfiguration(q.Configuration)).State()
	doc := export.Document{
		Company:       e.Company,
		Reference:     q.Reference,
		Date:          q.CreatedAt,
		Configuration: q.Configuration,
		Envelope:      state.Envelope,
		Assembly:      state.Assembly,
		Price:         q.Price,
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.pdf"`, q.Reference))
	if err := export.WritePDF(w, doc); err != nil {
		e.logger().Error("rendering quote pdf", "reference", q.Reference, "error", err)
		http.Error(w, "rendering pdf failed", http.StatusInternalServerError)
	}
}

func (e *Env) lookupQuote(w http.ResponseWriter, r *http.Request) (archive.Quote, bool) {
	if e.Quotes == nil {
		e.writeError(w, http.StatusServiceUnavailable, "quote archive not configured")
		return archive.Quote{}, false
	}
	id := r.PathValue("id")
	q, err := e.Quotes.Get(r.Context(), id)
	switch {
	case errors.Is(err, archive.ErrNotFound):
		e.writeError(w, http.StatusNotFound, fmt.Sprintf("quote %q not found", id))
		return archive.Quote{}, false
	case err != nil:
		e.logger().Error("loading quote", "id", id, "error", err)
		e.writeError(w, http.StatusInternalServerError, "loading quote failed")
		return archive.Quote{}, false
	}
	return q, true
}

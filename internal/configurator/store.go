// Package configurator holds the one stateful piece of the door
// configurator: a Store that owns the raw configuration and keeps the
// envelope, part list and price derived from it.
package configurator

import (
	"io"
	"log/slog"
	"sync"

	"github.com/piwi3910/DoorCraft/internal/engine"
	"github.com/piwi3910/DoorCraft/internal/model"
)

// DerivedState is a consistent snapshot of a Store.
type DerivedState struct {
	Configuration model.Configuration  `json:"configuration"`
	Envelope      model.Envelope       `json:"envelope"`
	Assembly      model.Assembly       `json:"assembly"`
	Price         model.PriceBreakdown `json:"price"`
}

// Clone returns a copy that shares no part list with s.
func (s DerivedState) Clone() DerivedState {
	s.Assembly = s.Assembly.Clone()
	return s
}

// Listener receives the new state after every mutation.
type Listener func(DerivedState)

// Store is one configurator session. Create one per user or request;
// Stores share nothing.
type Store struct {
	// applyMu orders mutations together with their notifications, so
	// listeners see states in the order they were applied.
	applyMu sync.Mutex

	mu       sync.RWMutex
	cfg      model.Configuration
	envelope model.Envelope
	assembly model.Assembly
	price    model.PriceBreakdown

	pricer *engine.Pricer
	log    *slog.Logger

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

// Option configures a Store.
type Option func(*Store)

// WithPriceList sets the price list used for quotes.
func WithPriceList(prices model.PriceList) Option {
	return func(s *Store) { s.pricer = engine.NewPricer(prices) }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithConfiguration replaces the default starting configuration.
// Out-of-range sizes are clamped like any other mutation.
func WithConfiguration(cfg model.Configuration) Option {
	return func(s *Store) { s.cfg = cfg }
}

// New creates a Store with the default configuration and derives its
// state immediately.
func New(opts ...Option) *Store {
	s := &Store{
		cfg:       model.DefaultConfiguration(),
		pricer:    engine.NewPricer(model.DefaultPriceList()),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	s.recompute(stages{envelope: true, height: true, geometry: true, price: true})
	s.mu.Unlock()
	return s
}

// Apply changes the configuration and recomputes whatever the change
// affects, always in the order clamp, envelope, geometry, price:
//
//   - mechanism, leaf count, side panels, width: everything
//   - height: height clamp, geometry, price
//   - grid layout: geometry, price
//   - handle: price
//   - finish, glass pattern: nothing beyond the raw field
//
// Unknown enum values in the patch are ignored. Sizes out of range are
// clamped, never rejected. Listeners are called after the new state is
// in place, one mutation at a time; a listener must not mutate the Store
// that called it.
func (s *Store) Apply(p Patch) DerivedState {
	if err := p.Normalize(); err != nil {
		s.log.Warn("ignoring unknown configuration values", "error", err)
	}

	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	s.mu.Lock()
	s.cfg = p.Apply(s.cfg)
	st := p.stages()
	s.recompute(st)
	state := s.snapshot()
	s.mu.Unlock()

	s.log.Debug("configuration applied",
		"fields", p.Fields(),
		"opening_width", state.Configuration.OpeningWidth,
		"opening_height", state.Configuration.OpeningHeight,
		"leaf_width", state.Envelope.DoorLeafWidth,
		"total_price", state.Price.TotalPrice,
	)

	s.notify(state)
	return state
}

// recompute runs the requested stages. Callers hold mu.
func (s *Store) recompute(st stages) {
	if st.envelope {
		s.cfg.OpeningWidth = engine.ClampOpeningWidth(s.cfg.OpeningWidth, s.cfg.LeafCount, s.cfg.SidePanels)
		s.envelope = engine.Envelope(s.cfg)
	}
	if st.height {
		s.cfg.OpeningHeight = engine.ClampOpeningHeight(s.cfg.OpeningHeight)
	}
	if st.geometry {
		s.assembly = engine.GenerateAssembly(s.cfg.Mechanism, s.cfg.GridLayout, s.envelope.DoorLeafWidth, s.cfg.OpeningHeight)
	}
	if st.price {
		s.price = s.pricer.Calculate(
			s.envelope.DoorLeafWidth, s.cfg.OpeningHeight,
			s.cfg.Mechanism, s.cfg.GridLayout, s.cfg.LeafCount, s.cfg.SidePanels, s.cfg.Handle,
		)
	}
}

// snapshot copies the current state. Callers hold mu.
func (s *Store) snapshot() DerivedState {
	return DerivedState{
		Configuration: s.cfg,
		Envelope:      s.envelope,
		Assembly:      s.assembly.Clone(),
		Price:         s.price,
	}
}

func (s *Store) notify(state DerivedState) {
	s.listenersMu.Lock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.listenersMu.Unlock()

	for _, l := range ls {
		l(state.Clone())
	}
}

// State returns a snapshot of the current derived state.
func (s *Store) State() DerivedState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Configuration returns the current raw configuration.
func (s *Store) Configuration() model.Configuration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Validate checks the current configuration strictly. Since the Store
// clamps sizes, failures here point at unknown options or a leaf that
// cannot be built; warnings flag choices that do not fit together.
func (s *Store) Validate() model.ValidationResult {
	return engine.ValidateConfiguration(s.Configuration())
}

// Subscribe registers l to be called after every mutation. The returned
// function removes it again.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

// Load replaces the whole configuration.
func (s *Store) Load(cfg model.Configuration) DerivedState {
	return s.Apply(PatchFrom(cfg))
}

func (s *Store) SetMechanism(m model.Mechanism) DerivedState {
	return s.Apply(Patch{Mechanism: &m})
}

func (s *Store) SetLeafCount(l model.LeafCount) DerivedState {
	return s.Apply(Patch{LeafCount: &l})
}

func (s *Store) SetSidePanels(sp model.SidePanels) DerivedState {
	return s.Apply(Patch{SidePanels: &sp})
}

func (s *Store) SetGridLayout(g model.GridLayout) DerivedState {
	return s.Apply(Patch{GridLayout: &g})
}

func (s *Store) SetFinish(f model.Finish) DerivedState {
	return s.Apply(Patch{Finish: &f})
}

func (s *Store) SetHandle(h model.Handle) DerivedState {
	return s.Apply(Patch{Handle: &h})
}

func (s *Store) SetGlassPattern(g model.GlassPattern) DerivedState {
	return s.Apply(Patch{GlassPattern: &g})
}

// SetWidth sets the opening width, clamped into the current envelope.
func (s *Store) SetWidth(w float64) DerivedState {
	return s.Apply(Patch{OpeningWidth: &w})
}

// SetHeight sets the opening height, clamped to the manufacturable range.
func (s *Store) SetHeight(h float64) DerivedState {
	return s.Apply(Patch{OpeningHeight: &h})
}

// SetDimensions sets width and height in one mutation.
func (s *Store) SetDimensions(w, h float64) DerivedState {
	return s.Apply(Patch{OpeningWidth: &w, OpeningHeight: &h})
}

package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/DoorCraft/internal/model"
)

// ErrNotFound is returned when no quote has the requested ID.
var ErrNotFound = errors.New("quote not found")

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// Quote is an issued price quote for one configuration.
type Quote struct {
	ID            string               `json:"id"`
	Reference     string               `json:"reference"`
	CreatedAt     time.Time            `json:"created_at"`
	Configuration model.Configuration  `json:"configuration"`
	Price         model.PriceBreakdown `json:"price"`
}

// NewQuote stamps a configuration and its price with a fresh ID and a
// reference like Q-20260314-1A2B3C.
func NewQuote(cfg model.Configuration, price model.PriceBreakdown) Quote {
	id := uuid.New().String()
	now := time.Now().UTC().Truncate(time.Second)
	ref := fmt.Sprintf("Q-%s-%s", now.Format("20060102"), strings.ToUpper(id[:6]))
	return Quote{
		ID:            id,
		Reference:     ref,
		CreatedAt:     now,
		Configuration: cfg,
		Price:         price,
	}
}

// QuoteRepo reads and writes quotes.
type QuoteRepo struct {
	db     *sql.DB
	driver string
}

// NewQuoteRepo wraps an open, migrated archive database.
func NewQuoteRepo(db *sql.DB, driver string) *QuoteRepo {
	return &QuoteRepo{db: db, driver: driver}
}

// Save inserts q. Quotes are immutable; saving an existing ID fails.
func (r *QuoteRepo) Save(ctx context.Context, q Quote) error {
	cfg, err := json.Marshal(q.Configuration)
	if err != nil {
		return fmt.Errorf("marshal configuration: %w", err)
	}
	price, err := json.Marshal(q.Price)
	if err != nil {
		return fmt.Errorf("marshal price: %w", err)
	}
	_, err = r.db.ExecContext(ctx, rebind(r.driver, `
	INSERT INTO quotes(id, reference, created_at, door_mechanism, opening_width, opening_height, currency, total, configuration, price)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		q.ID, q.Reference, q.CreatedAt.UTC(), string(q.Configuration.Mechanism),
		q.Configuration.OpeningWidth, q.Configuration.OpeningHeight,
		q.Price.Currency, q.Price.TotalPrice, string(cfg), string(price))
	if err != nil {
		return fmt.Errorf("insert quote %s: %w", q.ID, err)
	}
	return nil
}

// Get returns the quote with the given ID or reference.
func (r *QuoteRepo) Get(ctx context.Context, idOrRef string) (Quote, error) {
	row := r.db.QueryRowContext(ctx, rebind(r.driver, `
	SELECT id, reference, created_at, configuration, price
	FROM quotes WHERE id = ? OR reference = ?`), idOrRef, idOrRef)
	q, err := scanQuote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Quote{}, fmt.Errorf("%w: %s", ErrNotFound, idOrRef)
	}
	return q, err
}

// List returns the most recent quotes, newest first.
func (r *QuoteRepo) List(ctx context.Context, limit int) ([]Quote, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := r.db.QueryContext(ctx, rebind(r.driver, `
	SELECT id, reference, created_at, configuration, price
	FROM quotes ORDER BY created_at DESC, reference DESC LIMIT ?`), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Quote{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Delete removes a quote. Deleting an unknown ID returns ErrNotFound.
func (r *QuoteRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, rebind(r.driver, `DELETE FROM quotes WHERE id = ?`), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuote(s scanner) (Quote, error) {
	var (
		q          Quote
		cfg, price []byte
	)
	if err := s.Scan(&q.ID, &q.Reference, &q.CreatedAt, &cfg, &price); err != nil {
		return Quote{}, err
	}
	if err := json.Unmarshal(cfg, &q.Configuration); err != nil {
		return Quote{}, fmt.Errorf("quote %s configuration: %w", q.ID, err)
	}
	if err := json.Unmarshal(price, &q.Price); err != nil {
		return Quote{}, fmt.Errorf("quote %s price: %w", q.ID, err)
	}
	q.CreatedAt = q.CreatedAt.UTC()
	return q, nil
}

package quotes

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// defaults is the built-in fallback shown until (or instead of) the feed.
var defaults = []string{
	"Small steps every day.",
	"Done is better than perfect.",
	"Focus on what you can control.",
	"Rest is part of the work.",
}

// Feed serves motivational quotes from a published-spreadsheet CSV export,
// falling back to the built-in list whenever the fetch or parse fails.
type Feed struct {
	url    string
	http   *http.Client
	logger *slog.Logger

	mu     sync.RWMutex
	quotes []string
}

func NewFeed(url string, logger *slog.Logger) *Feed {
	return &Feed{
		url:    strings.TrimSpace(url),
		logger: logger,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		quotes: defaults,
	}
}

// Quotes returns the current snapshot.
func (f *Feed) Quotes() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, len(f.quotes))
	copy(out, f.quotes)
	return out
}

// QuoteOfDay picks deterministically per calendar day so the client sees the
// same quote all day.
func (f *Feed) QuoteOfDay(day time.Time) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.quotes) == 0 {
		return ""
	}
	idx := day.YearDay() % len(f.quotes)
	return f.quotes[idx]
}

// Refresh fetches and replaces the quote list. On any failure the previous
// snapshot (at worst the defaults) stays in place.
func (f *Feed) Refresh(ctx context.Context) error {
	if f.url == "" {
		return errors.New("quote feed url not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return err
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("quote feed returned %d", resp.StatusCode)
	}

	quotes, err := Parse(resp.Body)
	if err != nil {
		return err
	}
	if len(quotes) == 0 {
		return errors.New("quote feed is empty")
	}

	f.mu.Lock()
	f.quotes = quotes
	f.mu.Unlock()
	f.logger.Info("quote feed refreshed", "count", len(quotes))
	return nil
}

// Parse reads the exported sheet: one quote per record, first column.
// Quoted fields may contain embedded newlines; encoding/csv handles those.
func Parse(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var quotes []string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 0 {
			continue
		}
		q := strings.TrimSpace(record[0])
		if q == "" {
			continue
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

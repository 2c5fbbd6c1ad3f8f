// Package sheets pulls catalog rows from a Google Sheet using a service
// account. Credentials are established lazily on first fetch so the process
// can start (and serve the seed set) without them.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"DealBoard/internal/catalog"
)

const (
	// DefaultRange skips the header row and covers the ten known columns.
	DefaultRange = "Sheet1!A2:J"

	readonlyScope = "https://www.googleapis.com/auth/spreadsheets.readonly"
)

var ErrNoCredentials = errors.New("sheets: service account credentials not configured")

type Fetcher struct {
	log       *zap.Logger
	sheetID   string
	readRange string
	credsJSON []byte

	mu  sync.Mutex
	svc *sheetsapi.Service

	now func() time.Time
}

func NewFetcher(sheetID, readRange, credsJSON string, log *zap.Logger) *Fetcher {
	if readRange == "" {
		readRange = DefaultRange
	}
	return &Fetcher{
		log:       log,
		sheetID:   sheetID,
		readRange: readRange,
		credsJSON: []byte(credsJSON),
		now:       time.Now,
	}
}

// FetchCards reads the configured range and converts rows to cards. Errors
// are returned to the caller; the catalog store decides that they mean
// "keep the previous snapshot".
func (f *Fetcher) FetchCards(ctx context.Context) ([]catalog.Card, error) {
	svc, err := f.service()
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.Get(f.sheetID, f.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read %s: %w", f.readRange, err)
	}

	return f.cardsFromRows(resp.Values), nil
}

// service returns the cached Sheets client, building it on first use. A
// failed build is not cached, so the next fetch retries credential setup.
func (f *Fetcher) service() (*sheetsapi.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.svc != nil {
		return f.svc, nil
	}
	if len(f.credsJSON) == 0 {
		return nil, ErrNoCredentials
	}

	cfg, err := google.JWTConfigFromJSON(f.credsJSON, readonlyScope)
	if err != nil {
		return nil, fmt.Errorf("sheets: parse credentials: %w", err)
	}

	// The client outlives any single request, so it is bound to the
	// background context rather than a request context.
	ctx := context.Background()
	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets: init service: %w", err)
	}

	f.svc = svc
	return svc, nil
}

// cardsFromRows maps positional columns to card fields, trims every cell,
// fills defaults for missing trailing columns, and drops rows missing
// serviceName, offer or value. Row order is preserved.
func (f *Fetcher) cardsFromRows(rows [][]any) []catalog.Card {
	fetchedAt := f.now()
	out := make([]catalog.Card, 0, len(rows))

	for i, row := range rows {
		c := catalog.Card{
			ID:          fmt.Sprintf("sheet-card-%d-%d", i, fetchedAt.UnixMilli()),
			ServiceName: cell(row, 0, ""),
			Category:    cell(row, 1, catalog.DefaultCategory),
			Offer:       cell(row, 2, ""),
			Price:       cell(row, 3, ""),
			Type:        cell(row, 4, catalog.KindLink),
			Value:       cell(row, 5, ""),
			Badge:       cell(row, 6, ""),
			Slug:        cell(row, 7, ""),
			Icon:        cell(row, 8, catalog.DefaultIcon),
			ImageURL:    cell(row, 9, ""),
			CreatedAt:   fetchedAt.UTC(),
		}

		if c.ServiceName == "" || c.Offer == "" || c.Value == "" {
			continue
		}
		if c.Slug == "" {
			c.Slug = catalog.Slugify(c.ServiceName)
		}

		out = append(out, c)
	}

	if f.log != nil {
		f.log.Debug("mapped sheet rows", zap.Int("rows", len(rows)), zap.Int("cards", len(out)))
	}
	return out
}

// cell returns the trimmed string at index i, or def when the column is
// missing entirely. A present-but-blank cell stays blank.
func cell(row []any, i int, def string) string {
	if i >= len(row) || row[i] == nil {
		return def
	}

	s, ok := row[i].(string)
	if !ok {
		s = fmt.Sprint(row[i])
	}
	return strings.TrimSpace(s)
}

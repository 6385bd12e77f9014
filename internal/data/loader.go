package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"orders-dashboard/internal/models"
)

// Dataset is the fully loaded export: the record list and its descriptor.
// Both documents must load successfully; there is no partial-data mode.
type Dataset struct {
	Records  []models.OrderRecord
	Metadata *models.Metadata
}

type Loader struct {
	client      *http.Client
	ordersURL   string
	metadataURL string
	logger      *slog.Logger
}

func NewLoader(ordersURL, metadataURL string, timeout time.Duration, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		client:      &http.Client{Timeout: timeout},
		ordersURL:   ordersURL,
		metadataURL: metadataURL,
		logger:      logger,
	}
}

// Load fetches the order list and the metadata descriptor concurrently. A
// failure of either fetch fails the whole load; the session has to restart
// to retry.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	start := time.Now()

	var (
		records []models.OrderRecord
		meta    models.Metadata
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := l.fetchJSON(ctx, l.ordersURL, &records); err != nil {
			return fmt.Errorf("load orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := l.fetchJSON(ctx, l.metadataURL, &meta); err != nil {
			return fmt.Errorf("load metadata: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.Info("dataset loaded",
		"records", len(records),
		"total_records", meta.TotalRecords,
		"duration", time.Since(start),
	)

	return &Dataset{Records: records, Metadata: &meta}, nil
}

func (l *Loader) fetchJSON(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

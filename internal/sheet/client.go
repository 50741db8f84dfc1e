package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/iho/shopledger/internal/domain"
)

var (
	tableFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopledger_table_fetches_total",
			Help: "Total table fetch attempts by table and outcome",
		},
		[]string{"table", "status"},
	)

	tableFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shopledger_table_fetch_duration_seconds",
			Help:    "Duration of table fetches including retries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"table"},
	)
)

// ClientConfig configures the tabular feed client.
type ClientConfig struct {
	BaseURL        string
	Tables         TableNames
	RequestTimeout time.Duration
	RetryInitial   time.Duration
	RetryMaxWait   time.Duration
	RetryElapsed   time.Duration
}

// Client fetches row-oriented tables from an opensheet-style endpoint: a GET
// on {base}/{table} returns a JSON array of string-keyed records. It is the
// fetch collaborator of the reconciliation engine and owns the retry policy
// for transient failures.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a tabular feed client.
func NewClient(cfg ClientConfig, logger zerolog.Logger) *Client {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	if cfg.RetryInitial <= 0 {
		cfg.RetryInitial = 200 * time.Millisecond
	}
	if cfg.RetryMaxWait <= 0 {
		cfg.RetryMaxWait = 2 * time.Second
	}
	if cfg.RetryElapsed <= 0 {
		cfg.RetryElapsed = 20 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		logger:     logger.With().Str("component", "sheet_client").Logger(),
	}
}

// FetchTable fetches and normalizes one table, retrying transient failures
// with exponential backoff. Exhausted retries surface ErrSourceUnavailable.
func (c *Client) FetchTable(ctx context.Context, table string) ([]Row, error) {
	start := time.Now()

	var rows []Row
	operation := func() error {
		var err error
		rows, err = c.fetchOnce(ctx, table)
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.RetryInitial
	b.MaxInterval = c.cfg.RetryMaxWait
	b.MaxElapsedTime = c.cfg.RetryElapsed

	err := backoff.Retry(operation, backoff.WithContext(b, ctx))
	tableFetchDuration.WithLabelValues(table).Observe(time.Since(start).Seconds())
	if err != nil {
		tableFetchesTotal.WithLabelValues(table, "error").Inc()
		c.logger.Error().Err(err).Str("table", table).Msg("table fetch failed")
		return nil, fmt.Errorf("%w: table %q: %v", domain.ErrSourceUnavailable, table, err)
	}

	tableFetchesTotal.WithLabelValues(table, "ok").Inc()
	c.logger.Debug().Str("table", table).Int("rows", len(rows)).Msg("table fetched")
	return rows, nil
}

func (c *Client) fetchOnce(ctx context.Context, table string) ([]Row, error) {
	endpoint := c.cfg.BaseURL + "/" + url.PathEscape(table)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(fmt.Errorf("%w: %q", domain.ErrTableNotFound, table))
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	default:
		return nil, backoff.Permanent(fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	var raw []map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode table %q: %w", table, err))
	}

	rows := make([]Row, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, NormalizeRow(r))
	}
	return rows, nil
}

// FetchAll fetches the five logical tables concurrently. The fetches are
// independent; the first failure aborts the run with no partial TableSet,
// since reconciliation must never run over a zeroed table.
func (c *Client) FetchAll(ctx context.Context) (*TableSet, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ts := &TableSet{}
	targets := []struct {
		table string
		dst   *[]Row
	}{
		{c.cfg.Tables.Balances, &ts.Balances},
		{c.cfg.Tables.Deposits, &ts.Deposits},
		{c.cfg.Tables.Withdrawals, &ts.Withdrawals},
		{c.cfg.Tables.Settlements, &ts.Settlements},
		{c.cfg.Tables.Rates, &ts.Rates},
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(targets))
	for _, target := range targets {
		wg.Add(1)
		go func(table string, dst *[]Row) {
			defer wg.Done()
			rows, err := c.FetchTable(ctx, table)
			if err != nil {
				errs <- err
				cancel()
				return
			}
			*dst = rows
		}(target.table, target.dst)
	}
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return nil, err
	}
	ts.FetchedAt = time.Now().UTC()
	return ts, nil
}

// Package feed is the source adapter for the third-party XML listing
// provider. The remote endpoint cannot filter server-side, so every search
// fetches the configured dealer inventories in full, normalizes each record
// into the unified vehicle shape and filters, sorts and paginates in memory.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/VirgoSitesDev/rd-group-sub000/config"
	"github.com/VirgoSitesDev/rd-group-sub000/models"
)

// DealerConfig is one feed inventory: a customer code on the provider side
// plus the fixed contact block and location stamped onto every record.
type DealerConfig struct {
	Name         string
	CustomerCode string
	Luxury       bool
	Dealer       models.Dealer
	LogoURL      string
}

// Client fetches and normalizes the provider feed
type Client struct {
	httpClient *http.Client
	baseURL    string
	configs    []DealerConfig
	denylist   map[string]struct{}
}

// ad numbers with known-bad upstream data, excluded unconditionally
var defaultDenylist = []string{
	"9145705",
	"9230114",
	"9278452",
}

// New builds the client with the standard and luxury dealer configurations.
// The base URL is the same-origin proxy when configured, the provider
// endpoint otherwise.
func New(conf *config.Config) *Client {
	baseURL := conf.FeedProxyURL
	if baseURL == "" {
		baseURL = conf.FeedBaseURL
	}

	standard := DealerConfig{
		Name:         "RD Group",
		CustomerCode: conf.FeedCustomerCode,
		Luxury:       false,
		LogoURL:      "https://www.rdgroupautomobili.it/images/logo-rd-group.png",
		Dealer: models.Dealer{
			Name:  "RD Group",
			Phone: "+39 0573 123456",
			Email: "info@rdgroupautomobili.it",
			Location: models.Location{
				Address:    "Via Fiorentina 331",
				City:       "Pistoia",
				Region:     "Toscana",
				PostalCode: "51100",
				Country:    "IT",
			},
		},
	}
	luxury := standard
	luxury.Name = "RD Luxury"
	luxury.CustomerCode = conf.FeedLuxuryCode
	luxury.Luxury = true
	luxury.LogoURL = "https://www.rdgroupautomobili.it/images/logo-rd-luxury.png"
	luxury.Dealer.Name = "RD Luxury"
	luxury.Dealer.Email = "luxury@rdgroupautomobili.it"

	return NewWithConfigs(baseURL, []DealerConfig{standard, luxury}, conf.FeedDenylist)
}

// NewWithConfigs builds a client with explicit dealer configurations; the
// extra denylist entries are layered over the built-in list
func NewWithConfigs(baseURL string, configs []DealerConfig, extraDenylist []string) *Client {
	denylist := make(map[string]struct{}, len(defaultDenylist)+len(extraDenylist))
	for _, id := range defaultDenylist {
		denylist[id] = struct{}{}
	}
	for _, id := range extraDenylist {
		denylist[id] = struct{}{}
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		configs:    configs,
		denylist:   denylist,
	}
}

// Search fetches the dealer configurations selected by the luxury flag,
// filters the mapped records in memory and paginates the sorted set
func (c *Client) Search(ctx context.Context, filter models.VehicleFilter, page, pageSize int) (*models.SearchResult, error) {
	vehicles := c.fetchSelected(ctx, filter.IsLuxury)

	filtered := make([]models.Vehicle, 0, len(vehicles))
	for i := range vehicles {
		if filter.Matches(&vehicles[i]) {
			filtered = append(filtered, vehicles[i])
		}
	}

	c.sortVehicles(filtered, filter.IsLuxury)
	result := models.Paginate(filtered, filter, page, pageSize)
	return &result, nil
}

// GetByID resolves a feed ad number against both dealer configurations
func (c *Client) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	vehicles := c.fetchSelected(ctx, nil)
	for i := range vehicles {
		if vehicles[i].ID == id {
			return &vehicles[i], nil
		}
	}
	return nil, models.ErrVehicleNotFound
}

// ProbeResult is one dealer configuration's health snapshot
type ProbeResult struct {
	Config  string
	Records int
	Err     error
}

// Probe fetches every configuration once and reports record counts; used by
// the background health job
func (c *Client) Probe(ctx context.Context) []ProbeResult {
	results := make([]ProbeResult, len(c.configs))
	for i, cfg := range c.configs {
		vehicles, err := c.fetchConfig(ctx, cfg)
		results[i] = ProbeResult{Config: cfg.Name, Records: len(vehicles), Err: err}
	}
	return results
}

// fetchSelected fires the selected configuration fetches concurrently. A
// failed configuration is logged and skipped so one dead inventory cannot
// take down the whole catalog; the total count degrades accordingly.
func (c *Client) fetchSelected(ctx context.Context, luxury *bool) []models.Vehicle {
	var selected []DealerConfig
	for _, cfg := range c.configs {
		if luxury == nil || cfg.Luxury == *luxury {
			selected = append(selected, cfg)
		}
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		gathered []models.Vehicle
	)
	wg.Add(len(selected))
	for _, cfg := range selected {
		go func(cfg DealerConfig) {
			defer wg.Done()
			vehicles, err := c.fetchConfig(ctx, cfg)
			if err != nil {
				zap.S().Errorw("feed fetch failed, continuing without this inventory",
					"config", cfg.Name,
					"error", err,
				)
				return
			}
			mu.Lock()
			gathered = append(gathered, vehicles...)
			mu.Unlock()
		}(cfg)
	}
	wg.Wait()
	return gathered
}

// fetchConfig downloads and normalizes one dealer inventory
func (c *Client) fetchConfig(ctx context.Context, cfg DealerConfig) ([]models.Vehicle, error) {
	q := url.Values{}
	q.Set("client_code", cfg.CustomerCode)
	q.Set("engine", "gestionaleauto")
	q.Set("show_all", "1")
	// newest first; upstream order is advisory only, we re-sort anyway
	q.Set("sort", "insertion_date")
	q.Set("invert", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/xml, text/xml, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed body: %w", err)
	}
	if len(body) == 0 {
		// distinct from a valid document with zero records, which is fine
		return nil, fmt.Errorf("feed returned an empty body")
	}

	records, err := parseRecords(body)
	if err != nil {
		return nil, err
	}

	vehicles := make([]models.Vehicle, 0, len(records))
	for _, record := range records {
		v, ok := c.mapRecord(record, cfg)
		if !ok {
			continue
		}
		vehicles = append(vehicles, v)
	}
	zap.S().Debugw("feed inventory fetched",
		"config", cfg.Name,
		"records", len(records),
		"admitted", len(vehicles),
	)
	return vehicles, nil
}

// sortVehicles orders standard before luxury (unless the caller explicitly
// asked for luxury only), then by last update and creation time, newest first
func (c *Client) sortVehicles(vehicles []models.Vehicle, luxury *bool) {
	luxuryOnly := luxury != nil && *luxury
	sort.SliceStable(vehicles, func(i, j int) bool {
		a, b := &vehicles[i], &vehicles[j]
		if !luxuryOnly && a.IsLuxury != b.IsLuxury {
			return !a.IsLuxury
		}
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

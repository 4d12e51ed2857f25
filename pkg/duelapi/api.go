// Package duelapi is an API client for the DuelScope HTTP statistics API.
package duelapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path"
	"time"

	"golang.org/x/time/rate"
)

// WinratesPath is the fixed endpoint serving pairwise win rates.
const WinratesPath = "/get_winrates"

// StatsPath is the endpoint serving per-class statistics.
const StatsPath = "/api/stats"

// API holds the necessary state to communicate with a DuelScope server.
type API struct {
	http    http.Client
	base    url.URL
	limiter *rate.Limiter
}

// New creates a new rate-limited access point to the API served at baseURL.
func New(baseURL string) (*API, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API URL scheme %q", u.Scheme)
	}

	return &API{
		// Be nice to the dashboard, it recomputes everything on each call.
		limiter: rate.NewLimiter(5, 1),
		base:    *u,
		http: http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (api *API) getURL(subPath string, q url.Values) string {
	u := api.base
	u.Path = path.Join(u.Path, subPath)
	u.RawQuery = q.Encode()

	return u.String()
}

// GetWinrates fetches the pairwise win rates matching the query.
func (api *API) GetWinrates(ctx context.Context, q Query) ([]WinrateRecord, error) {
	log.Printf("debug: fetching winrates %v", q.Values())

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, api.getURL(WinratesPath, q.Values()), nil)
	if err != nil {
		return nil, err
	}

	var ret []WinrateRecord
	if err := api.do(ctx, request, &ret); err != nil {
		return nil, err
	}

	return ret, nil
}

// GetStats fetches the per-class statistics matching the query.
func (api *API) GetStats(ctx context.Context, q Query) (Stats, error) {
	log.Printf("debug: fetching stats %v", q.Values())

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, api.getURL(StatsPath, q.Values()), nil)
	if err != nil {
		return Stats{}, err
	}

	var ret Stats
	if err := api.do(ctx, request, &ret); err != nil {
		return Stats{}, err
	}

	return ret, nil
}

var errRateLimit = errors.New("triggered API rate-limiter")

// do performs a rate-limited request on the API and writes the JSON-decoded
// response body in response.
func (api *API) do(ctx context.Context, request *http.Request, response interface{}) error {
	var tries int

	for {
		err := api.doInner(ctx, request, response)
		if errors.Is(err, errRateLimit) {
			tries++
			log.Printf("warning: rate-limited %d times", tries)
			continue
		}

		return err
	}
}

func (api *API) doInner(ctx context.Context, request *http.Request, response interface{}) error {
	start := time.Now()
	if err := api.limiter.Wait(ctx); err != nil {
		return err
	}
	log.Printf("debug: waited %s before calling API", time.Since(start))

	res, err := api.http.Do(request)
	if err != nil {
		return fmt.Errorf("unable to perform HTTP request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusTooManyRequests {
		return errRateLimit
	}

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("got status code %d", res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(response); err != nil {
		return fmt.Errorf("unable to parse response: %w", err)
	}

	return nil
}

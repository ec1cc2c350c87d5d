// Package neo is a client for the NASA Near-Earth-Object REST API. It
// supplies candidate asteroid records (diameter, mass, velocity, miss
// distance) for impact-scenario selection.
package neo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ArmaanSap/MeteorMadness2025/internal/model"
)

// Asteroid is a normalized NEO record. Velocity and miss distance come from
// the most recent close-approach entry; both are zero when the record has
// none.
type Asteroid struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	DiameterM      float64 `json:"diameter_m"` // max estimated diameter
	VelocityKmh    float64 `json:"velocity_kmh"`
	MissDistanceKm float64 `json:"miss_distance_km"`
	Hazardous      bool    `json:"hazardous"`
}

// MassKg derives the record's mass assuming a rocky spherical body.
func (a Asteroid) MassKg() float64 {
	return model.MassFromDiameter(a.DiameterM, model.RockyDensityKgM3)
}

// Options configures the client.
type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	Limiter    *rate.Limiter // overrides the default request pacing
}

// Client talks to the NASA NEO API with rate limiting and retry. The
// DEMO_KEY tier allows ~30 requests/hour, so the default limiter is
// deliberately conservative.
type Client struct {
	opts    Options
	hc      *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Client with the given options.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.nasa.gov"
	}
	if opts.APIKey == "" {
		opts.APIKey = "DEMO_KEY"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	limiter := opts.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(2*time.Second), 2)
	}
	return &Client{
		opts:    opts,
		hc:      &http.Client{Timeout: opts.Timeout},
		limiter: limiter,
	}
}

// Lookup fetches a single NEO record by its NASA JPL small-body ID.
func (c *Client) Lookup(ctx context.Context, id string) (*Asteroid, error) {
	var raw neoRecord
	path := fmt.Sprintf("/neo/rest/v1/neo/%s", url.PathEscape(id))
	if err := c.getJSON(ctx, path, nil, &raw); err != nil {
		return nil, err
	}
	a := raw.toAsteroid()
	return &a, nil
}

// Browse returns one page of the NEO catalog.
func (c *Client) Browse(ctx context.Context, page, size int) ([]Asteroid, error) {
	if size <= 0 || size > 20 {
		size = 20
	}
	var raw struct {
		NearEarthObjects []neoRecord `json:"near_earth_objects"`
	}
	params := url.Values{
		"page": []string{strconv.Itoa(page)},
		"size": []string{strconv.Itoa(size)},
	}
	if err := c.getJSON(ctx, "/neo/rest/v1/neo/browse", params, &raw); err != nil {
		return nil, err
	}

	asteroids := make([]Asteroid, 0, len(raw.NearEarthObjects))
	for _, r := range raw.NearEarthObjects {
		asteroids = append(asteroids, r.toAsteroid())
	}
	return asteroids, nil
}

// Feed returns every NEO approaching Earth on the given date.
func (c *Client) Feed(ctx context.Context, date time.Time) ([]Asteroid, error) {
	day := date.Format("2006-01-02")
	var raw struct {
		NearEarthObjects map[string][]neoRecord `json:"near_earth_objects"`
	}
	params := url.Values{
		"start_date": []string{day},
		"end_date":   []string{day},
	}
	if err := c.getJSON(ctx, "/neo/rest/v1/feed", params, &raw); err != nil {
		return nil, err
	}

	var asteroids []Asteroid
	for _, records := range raw.NearEarthObjects {
		for _, r := range records {
			asteroids = append(asteroids, r.toAsteroid())
		}
	}
	return asteroids, nil
}

// getJSON performs a rate-limited GET with retry on 429 and 5xx responses.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dst any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.opts.APIKey)
	endpoint := c.opts.BaseURL + path + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt <= c.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			backoff += time.Duration(rand.Int64N(int64(backoff / 2)))
			zap.L().Debug("neo: retrying request",
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return eris.Wrap(ctx.Err(), "neo: retry wait")
			case <-time.After(backoff):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "neo: rate limit wait")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return eris.Wrapf(err, "neo: build request %s", path)
		}

		resp, err := c.hc.Do(req)
		if err != nil {
			lastErr = eris.Wrapf(err, "neo: GET %s", path)
			continue
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
		resp.Body.Close()
		if readErr != nil {
			lastErr = eris.Wrapf(readErr, "neo: read response %s", path)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			if err := json.Unmarshal(body, dst); err != nil {
				return eris.Wrapf(err, "neo: decode response %s", path)
			}
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = eris.Errorf("neo: GET %s: status %d", path, resp.StatusCode)
			continue
		default:
			return eris.Errorf("neo: GET %s: status %d", path, resp.StatusCode)
		}
	}
	return lastErr
}

// neoRecord mirrors the wire format; numeric fields arrive as strings.
type neoRecord struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	EstimatedDiameter struct {
		Meters struct {
			Max float64 `json:"estimated_diameter_max"`
		} `json:"meters"`
	} `json:"estimated_diameter"`
	Hazardous         bool `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData []struct {
		RelativeVelocity struct {
			KilometersPerHour string `json:"kilometers_per_hour"`
		} `json:"relative_velocity"`
		MissDistance struct {
			Kilometers string `json:"kilometers"`
		} `json:"miss_distance"`
	} `json:"close_approach_data"`
}

func (r neoRecord) toAsteroid() Asteroid {
	a := Asteroid{
		ID:        r.ID,
		Name:      r.Name,
		DiameterM: r.EstimatedDiameter.Meters.Max,
		Hazardous: r.Hazardous,
	}
	if len(r.CloseApproachData) > 0 {
		latest := r.CloseApproachData[len(r.CloseApproachData)-1]
		a.VelocityKmh, _ = strconv.ParseFloat(latest.RelativeVelocity.KilometersPerHour, 64)
		a.MissDistanceKm, _ = strconv.ParseFloat(latest.MissDistance.Kilometers, 64)
	}
	return a
}

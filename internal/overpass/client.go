// Package overpass queries an Overpass-style API for points of interest and
// competitor cafes around a coordinate.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/cafe-scout/internal/competitor"
	"github.com/sells-group/cafe-scout/internal/geo"
	"github.com/sells-group/cafe-scout/internal/model"
	"github.com/sells-group/cafe-scout/internal/poi"
)

// DefaultBaseURL is the public Overpass API interpreter endpoint.
const DefaultBaseURL = "https://overpass-api.de/api/interpreter"

// maxResponseBytes limits the Overpass response size read into memory.
const maxResponseBytes = 8 * 1024 * 1024

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Overpass endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit sets the requests-per-second limit for Overpass calls.
func WithRateLimit(rps float64) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// Client is a rate-limited Overpass API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewClient creates a Client with the given options. The default rate limit
// of 1 req/s respects the public Overpass usage policy.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		limiter:    rate.NewLimiter(1, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// element is one node in an Overpass JSON response.
type element struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// QueryPOIs fetches points of interest around a coordinate and categorizes
// them. Records whose tags match no category are dropped.
func (c *Client) QueryPOIs(ctx context.Context, center geo.Coordinate, radiusMeters float64) ([]model.POIRecord, error) {
	selectors := []string{
		`node["shop"="mall"]`, `node["shop"="department_store"]`, `node["shop"="supermarket"]`,
		`node["amenity"="school"]`, `node["amenity"="university"]`,
		`node["railway"="station"]`, `node["railway"="subway_entrance"]`, `node["amenity"="bus_station"]`,
		`node["leisure"="park"]`,
		`node["building"="office"]`,
		`node["amenity"="restaurant"]`, `node["amenity"="fast_food"]`,
		`node["amenity"="cinema"]`, `node["amenity"="theatre"]`,
	}

	elements, err := c.run(ctx, buildQuery(selectors, center, radiusMeters))
	if err != nil {
		return nil, eris.Wrap(err, "overpass: query pois")
	}

	var pois []model.POIRecord
	for _, el := range elements {
		if el.Lat == 0 && el.Lon == 0 {
			continue
		}
		cat := poi.Categorize(el.Tags)
		if cat == model.CategoryUncategorized {
			continue
		}
		pois = append(pois, model.POIRecord{
			ID:          fmt.Sprintf("%s/%d", el.Type, el.ID),
			Name:        nameOf(el.Tags),
			Category:    cat,
			Coordinates: geo.Coordinate{Lat: el.Lat, Lng: el.Lon},
			Tags:        el.Tags,
		})
	}
	return pois, nil
}

// QueryCompetitors fetches competitor cafes around a coordinate. NearStores
// is left empty; the analysis scheduler fills it during the merge.
func (c *Client) QueryCompetitors(ctx context.Context, center geo.Coordinate, radiusMeters float64) ([]model.CompetitorRecord, error) {
	selectors := []string{
		`node["amenity"="cafe"]["brand"="Starbucks"]`,
		`node["amenity"="cafe"]["name"~"Starbucks",i]`,
		`node["amenity"="cafe"]["name"~"Luckin",i]`,
		`node["amenity"="cafe"]["name"~"Blank Street",i]`,
		`node["amenity"="cafe"]["name"~"Dunkin",i]`,
		`node["amenity"="cafe"]["brand"="Dunkin'"]`,
	}

	elements, err := c.run(ctx, buildQuery(selectors, center, radiusMeters))
	if err != nil {
		return nil, eris.Wrap(err, "overpass: query competitors")
	}

	var competitors []model.CompetitorRecord
	for _, el := range elements {
		if el.Type != "node" || (el.Lat == 0 && el.Lon == 0) {
			continue
		}
		competitors = append(competitors, model.CompetitorRecord{
			ID:          fmt.Sprintf("%d", el.ID),
			Name:        nameOf(el.Tags),
			Brand:       competitor.BrandOf(el.Tags),
			Address:     el.Tags["addr:street"],
			Coordinates: geo.Coordinate{Lat: el.Lat, Lng: el.Lon},
			Tags:        el.Tags,
		})
	}
	return competitors, nil
}

// run posts an Overpass QL query and decodes the element list.
func (c *Client) run(ctx context.Context, query string) ([]element, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "overpass: rate limit wait")
	}

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, eris.Wrap(err, "overpass: create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "overpass: execute request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("overpass: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, eris.Wrap(err, "overpass: read response")
	}

	var payload struct {
		Elements []element `json:"elements"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, eris.Wrap(err, "overpass: decode response")
	}
	return payload.Elements, nil
}

// buildQuery assembles an Overpass QL union query for the given node
// selectors around a point.
func buildQuery(selectors []string, center geo.Coordinate, radiusMeters float64) string {
	var b strings.Builder
	b.WriteString("[out:json][timeout:25];\n(\n")
	for _, sel := range selectors {
		fmt.Fprintf(&b, "  %s(around:%.0f,%f,%f);\n", sel, radiusMeters, center.Lat, center.Lng)
	}
	b.WriteString(");\nout body;")
	return b.String()
}

func nameOf(tags map[string]string) string {
	if n := tags["name"]; n != "" {
		return n
	}
	if b := tags["brand"]; b != "" {
		return b
	}
	return "Unnamed"
}

package overpass

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/cafe-scout/internal/geo"
	"github.com/sells-group/cafe-scout/internal/model"
)

const poiResponse = `{
	"elements": [
		{"type": "node", "id": 101, "lat": 40.7589, "lon": -73.9851,
		 "tags": {"name": "Macy's", "shop": "department_store"}},
		{"type": "node", "id": 102, "lat": 40.7527, "lon": -73.9772,
		 "tags": {"railway": "station", "name": "Grand Central"}},
		{"type": "node", "id": 103, "lat": 40.7540, "lon": -73.9800,
		 "tags": {"barrier": "fence"}},
		{"type": "node", "id": 104, "lat": 0, "lon": 0,
		 "tags": {"shop": "mall"}}
	]
}`

const competitorResponse = `{
	"elements": [
		{"type": "node", "id": 201, "lat": 40.7580, "lon": -73.9855,
		 "tags": {"name": "Starbucks", "brand": "Starbucks", "addr:street": "Broadway"}},
		{"type": "node", "id": 202, "lat": 40.7570, "lon": -73.9860,
		 "tags": {"name": "Corner Cafe"}}
	]
}`

func testServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Contains(t, r.Form.Get("data"), "[out:json]")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestQueryPOIs(t *testing.T) {
	srv := testServer(t, poiResponse)
	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(1000))

	pois, err := c.QueryPOIs(context.Background(), geo.FallbackCenter, 804)
	require.NoError(t, err)

	// The fence is uncategorized and the zero-coordinate mall is dropped.
	require.Len(t, pois, 2)

	assert.Equal(t, "node/101", pois[0].ID)
	assert.Equal(t, "Macy's", pois[0].Name)
	assert.Equal(t, model.CategoryShopping, pois[0].Category)
	assert.InDelta(t, 40.7589, pois[0].Coordinates.Lat, 1e-9)

	assert.Equal(t, "node/102", pois[1].ID)
	assert.Equal(t, model.CategoryTransport, pois[1].Category)
}

func TestQueryCompetitors(t *testing.T) {
	srv := testServer(t, competitorResponse)
	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(1000))

	comps, err := c.QueryCompetitors(context.Background(), geo.FallbackCenter, 804)
	require.NoError(t, err)
	require.Len(t, comps, 2)

	assert.Equal(t, "201", comps[0].ID)
	assert.Equal(t, model.BrandStarbucks, comps[0].Brand)
	assert.Equal(t, "Broadway", comps[0].Address)
	assert.Empty(t, comps[0].NearStores, "merge attribution happens downstream")

	assert.Equal(t, model.BrandOther, comps[1].Brand)
}

func TestQueryErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(1000))
	_, err := c.QueryPOIs(context.Background(), geo.FallbackCenter, 804)
	assert.Error(t, err)
}

func TestQueryBadJSON(t *testing.T) {
	srv := testServer(t, "not json")
	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(1000))

	_, err := c.QueryPOIs(context.Background(), geo.FallbackCenter, 804)
	assert.Error(t, err)
}

func TestQueryContextCancellation(t *testing.T) {
	srv := testServer(t, poiResponse)
	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(1000))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.QueryPOIs(ctx, geo.FallbackCenter, 804)
	assert.Error(t, err)
}

func TestBuildQuery(t *testing.T) {
	q := buildQuery([]string{`node["shop"="mall"]`}, geo.Coordinate{Lat: 40.75, Lng: -73.98}, 804)
	assert.Contains(t, q, `node["shop"="mall"](around:804,40.750000,-73.980000);`)
	assert.Contains(t, q, "out body;")
}

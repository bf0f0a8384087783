package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"geodistance-service/internal/adapters/cache"
	"geodistance-service/internal/adapters/distance"
	"geodistance-service/internal/api/dto"
	"geodistance-service/internal/domain"
	"geodistance-service/internal/geo/haversine"
	"geodistance-service/internal/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWayRepository struct {
	ways []*domain.Way
}

func (s *stubWayRepository) ListWays(ctx context.Context) ([]*domain.Way, error) {
	out := make([]*domain.Way, 0, len(s.ways))
	for _, w := range s.ways {
		out = append(out, domain.NewWay(w.WayID, w.Name))
	}
	return out, nil
}

func (s *stubWayRepository) GetWay(ctx context.Context, wayID int64) (*domain.Way, error) {
	for _, w := range s.ways {
		if w.WayID == wayID {
			return w, nil
		}
	}
	return nil, fmt.Errorf("stub: way %d: %w", wayID, ports.ErrWayNotFound)
}

var meridian = &domain.Way{
	WayID: 1,
	Name:  "Meridian",
	Nodes: []domain.Node{
		{NodeID: 1, Coords: domain.Coordinates{Lon: 0, Lat: 0}},
		{NodeID: 2, Coords: domain.Coordinates{Lon: 0, Lat: 45}},
		{NodeID: 3, Coords: domain.Coordinates{Lon: 0, Lat: 90}},
	},
}

func newTestServer(t *testing.T, lengthCache ports.LengthCache) *httptest.Server {
	t.Helper()
	return newTestServerWithWays(t, lengthCache, meridian, &domain.Way{WayID: 2, Name: "Stub"})
}

func newTestServerWithWays(t *testing.T, lengthCache ports.LengthCache, ways ...*domain.Way) *httptest.Server {
	t.Helper()

	repo := &stubWayRepository{ways: ways}
	router := NewRouter(repo, lengthCache, distance.NewHaversineProvider(true), zerolog.Nop())

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, _ = do(t, http.MethodPost, srv.URL+"/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, http.MethodGet, resp.Header.Get("Allow"))
}

func TestDistanceEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	t.Run("quarter circle", func(t *testing.T) {
		resp, body := do(t, http.MethodPost, srv.URL+"/distance",
			`{"from":{"lon":0,"lat":0},"to":{"lon":0,"lat":90}}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var res dto.DistanceResponse
		require.NoError(t, json.Unmarshal(body, &res))
		assert.InEpsilon(t, math.Pi/2*haversine.EarthRadiusInMeters, res.DistanceMeters, 1e-9)
		assert.False(t, res.Clamped)
	})

	t.Run("clamped", func(t *testing.T) {
		resp, body := do(t, http.MethodPost, srv.URL+"/distance",
			`{"from":{"lon":0,"lat":0},"to":{"lon":180,"lat":0},"clamp":true}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var res dto.DistanceResponse
		require.NoError(t, json.Unmarshal(body, &res))
		assert.True(t, res.Clamped)
		assert.InEpsilon(t, math.Pi*haversine.EarthRadiusInMeters, res.DistanceMeters, 1e-9)
	})

	bad := []struct {
		name string
		body string
	}{
		{"missing lat", `{"from":{"lon":0},"to":{"lon":0,"lat":90}}`},
		{"unknown field", `{"from":{"lon":0,"lat":0},"to":{"lon":0,"lat":1},"unit":"km"}`},
		{"two objects", `{"from":{"lon":0,"lat":0},"to":{"lon":0,"lat":1}}{}`},
		{"not json", `nope`},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := do(t, http.MethodPost, srv.URL+"/distance", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestLengthEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	want := haversine.Length(meridian.Nodes)

	cases := []struct {
		name   string
		body   string
		points int
		length float64
	}{
		{
			name:   "line string",
			body:   `{"type":"LineString","coordinates":[[0,0],[0,45],[0,90]]}`,
			points: 3,
			length: want,
		},
		{
			name:   "feature",
			body:   `{"type":"Feature","properties":{"name":"x"},"geometry":{"type":"LineString","coordinates":[[0,0],[0,45],[0,90]]}}`,
			points: 3,
			length: want,
		},
		{
			name:   "single point line",
			body:   `{"type":"LineString","coordinates":[[5,5]]}`,
			points: 1,
			length: 0,
		},
		{
			name:   "multi line string sums parts",
			body:   `{"type":"MultiLineString","coordinates":[[[0,0],[0,45]],[[0,45],[0,90]]]}`,
			points: 4,
			length: want,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, srv.URL+"/length", tt.body)
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

			var res dto.LengthResponse
			require.NoError(t, json.Unmarshal(body, &res))
			assert.Equal(t, tt.points, res.Points)
			assert.InDelta(t, tt.length, res.LengthMeters, 1e-6)
		})
	}

	t.Run("point geometry rejected", func(t *testing.T) {
		resp, _ := do(t, http.MethodPost, srv.URL+"/length", `{"type":"Point","coordinates":[1,2]}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		resp, _ := do(t, http.MethodPost, srv.URL+"/length", `[`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestWaysEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)

	t.Run("list", func(t *testing.T) {
		resp, body := do(t, http.MethodGet, srv.URL+"/ways", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var res dto.ListWaysResponse
		require.NoError(t, json.Unmarshal(body, &res))
		require.Len(t, res.Ways, 2)
		assert.Equal(t, "Meridian", res.Ways[0].Name)
		assert.Equal(t, haversine.Length(meridian.Nodes), res.Ways[0].LengthMeters)
		assert.Zero(t, res.Ways[1].LengthMeters)
	})

	t.Run("single", func(t *testing.T) {
		resp, body := do(t, http.MethodGet, srv.URL+"/ways/1/length", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var res dto.WayLengthResponse
		require.NoError(t, json.Unmarshal(body, &res))
		assert.Equal(t, int64(1), res.WayID)
		assert.Equal(t, haversine.Length(meridian.Nodes), res.LengthMeters)
	})

	t.Run("not found", func(t *testing.T) {
		resp, body := do(t, http.MethodGet, srv.URL+"/ways/77/length", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var res map[string]string
		require.NoError(t, json.Unmarshal(body, &res))
		assert.Equal(t, "way not found", res["error"])
		assert.Equal(t, resp.Header.Get("X-Request-ID"), res["request_id"])
	})

	t.Run("bad id", func(t *testing.T) {
		resp, _ := do(t, http.MethodGet, srv.URL+"/ways/abc/length", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestWaysEndpointUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	srv := newTestServer(t, cache.NewRedisLengthCache(client, 0))

	var first, second dto.WayLengthResponse
	_, body := do(t, http.MethodGet, srv.URL+"/ways/1/length", "")
	require.NoError(t, json.Unmarshal(body, &first))
	_, body = do(t, http.MethodGet, srv.URL+"/ways/1/length", "")
	require.NoError(t, json.Unmarshal(body, &second))

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.LengthMeters, second.LengthMeters)
	assert.True(t, mr.Exists("way:length:1"))
}

func TestWaysEndpointNonFiniteLength(t *testing.T) {
	a := domain.Coordinates{Lon: -126.5256, Lat: -44.3640}
	b := domain.Coordinates{Lon: 53.4744, Lat: 44.3640}
	require.True(t, math.IsNaN(haversine.Distance(a, b)))

	antipodal := &domain.Way{
		WayID: 7,
		Name:  "Antipodal",
		Nodes: []domain.Node{{NodeID: 1, Coords: a}, {NodeID: 2, Coords: b}},
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	srv := newTestServerWithWays(t, cache.NewRedisLengthCache(client, 0), meridian, antipodal)

	for range 2 {
		resp, body := do(t, http.MethodGet, srv.URL+"/ways/7/length", "")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, string(body), "not a finite number")
	}

	resp, body := do(t, http.MethodGet, srv.URL+"/ways", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(body), "way 7")

	assert.False(t, mr.Exists("way:length:7"))
	assert.True(t, mr.Exists("way:length:1"))
}

func TestToursEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	body := `{
		"start": {"name": "origin", "lon": 0, "lat": 0},
		"stops": [
			{"name": "far", "lon": 0, "lat": 3},
			{"name": "near", "lon": 0, "lat": 1},
			{"name": "mid", "lon": 0, "lat": 2}
		],
		"return_to_start": true
	}`

	resp, raw := do(t, http.MethodPost, srv.URL+"/tours", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var res dto.TourResponse
	require.NoError(t, json.Unmarshal(raw, &res))
	require.Len(t, res.Stops, 3)
	assert.Equal(t, []string{"near", "mid", "far"}, []string{res.Stops[0].Name, res.Stops[1].Name, res.Stops[2].Name})

	oneDegree := math.Pi / 180 * haversine.EarthRadiusInMeters
	assert.InEpsilon(t, 6*oneDegree, res.TotalDistanceMeters, 1e-9)
	assert.InEpsilon(t, 3*oneDegree, res.ReturnLegMeters, 1e-9)
	assert.Equal(t, [][]float64{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 0}}, res.Path)

	t.Run("missing name", func(t *testing.T) {
		resp, _ := do(t, http.MethodPost, srv.URL+"/tours", `{"start":{"lon":0,"lat":0},"stops":[]}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("stop without coordinates", func(t *testing.T) {
		resp, _ := do(t, http.MethodPost, srv.URL+"/tours", `{"start":{"name":"s","lon":0,"lat":0},"stops":[{"name":"x"}]}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

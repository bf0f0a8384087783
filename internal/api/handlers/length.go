package handlers

import (
	"encoding/json"
	"geodistance-service/internal/api/dto"
	"geodistance-service/internal/domain"
	"geodistance-service/internal/geo/haversine"
	"io"
	"iter"
	"net/http"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Length measures a GeoJSON LineString or MultiLineString, given either as
// a bare geometry or wrapped in a Feature. The lines of a MultiLineString
// are measured separately and summed; they are not joined end to start.
func Length(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "could not read body")
		return
	}

	g, err := decodeGeometry(body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid geojson body")
		return
	}

	var res dto.LengthResponse
	switch geom := g.(type) {
	case orb.LineString:
		res.LengthMeters = haversine.PathDistance(points(geom))
		res.Points = len(geom)
	case orb.MultiLineString:
		for _, ls := range geom {
			res.LengthMeters += haversine.PathDistance(points(ls))
			res.Points += len(ls)
		}
	default:
		writeError(w, r, http.StatusBadRequest, "geometry must be a LineString or MultiLineString")
		return
	}

	if !finite(res.LengthMeters) {
		writeError(w, r, http.StatusUnprocessableEntity, "length is not a finite number")
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

func decodeGeometry(body []byte) (orb.Geometry, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		return nil, err
	}

	if head.Type == "Feature" {
		f, err := geojson.UnmarshalFeature(body)
		if err != nil {
			return nil, err
		}
		return f.Geometry, nil
	}

	g, err := geojson.UnmarshalGeometry(body)
	if err != nil {
		return nil, err
	}
	return g.Geometry(), nil
}

// points walks a line string lazily, without copying it.
func points(ls orb.LineString) iter.Seq[domain.Coordinates] {
	return func(yield func(domain.Coordinates) bool) {
		for _, p := range ls {
			if !yield(domain.Coordinates{Lon: p.Lon(), Lat: p.Lat()}) {
				return
			}
		}
	}
}

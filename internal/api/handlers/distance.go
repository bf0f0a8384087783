package handlers

import (
	"fmt"
	"geodistance-service/internal/api/dto"
	"geodistance-service/internal/domain"
	"geodistance-service/internal/geo/haversine"
	"net/http"
)

func coordinates(field string, c dto.CoordinatesRequest) (domain.Coordinates, error) {
	if c.Lon == nil || c.Lat == nil {
		return domain.Coordinates{}, fmt.Errorf("%s.lon and %s.lat are required", field, field)
	}
	if !finite(*c.Lon) || !finite(*c.Lat) {
		return domain.Coordinates{}, fmt.Errorf("%s must be finite", field)
	}
	return domain.Coordinates{Lon: *c.Lon, Lat: *c.Lat}, nil
}

// Distance returns the great-circle distance between two points.
// Coordinates are not range checked.
func Distance(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.DistanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	from, err := coordinates("from", req.From)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	to, err := coordinates("to", req.To)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var meters float64
	if req.Clamp {
		meters = haversine.ClampedDistance(from, to)
	} else {
		meters = haversine.Distance(from, to)
	}

	if !finite(meters) {
		writeError(w, r, http.StatusUnprocessableEntity, "distance is not a finite number; retry with clamp=true")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{DistanceMeters: meters, Clamped: req.Clamp})
}

package handlers

import (
	"fmt"
	"geodistance-service/internal/api/dto"
	"geodistance-service/internal/domain"
	"geodistance-service/internal/ports"
	"geodistance-service/internal/services"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

const maxTourStops = 200

type TourHandler struct {
	Provider ports.DistanceProvider
}

// Plan orders the requested stops by nearest neighbor starting from start.
func (h *TourHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.TourRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	start, err := waypoint("start", req.Start)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.Stops) > maxTourStops {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("at most %d stops are allowed", maxTourStops))
		return
	}

	stops := make([]domain.Waypoint, 0, len(req.Stops))
	for i, s := range req.Stops {
		wp, err := waypoint(fmt.Sprintf("stops[%d]", i), s)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		stops = append(stops, wp)
	}

	tour, err := services.PlanTour(r.Context(), start, stops, h.Provider, req.ReturnToStart)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("plan tour failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.TourResponse{
		Start:               stopResponse(tour.Start, 0),
		Stops:               make([]dto.TourStopResponse, 0, len(tour.Stops)),
		ReturnToStart:       tour.ReturnToStart,
		ReturnLegMeters:     tour.ReturnLegMeters,
		TotalDistanceMeters: tour.TotalDistanceMeters,
	}
	for _, s := range tour.Stops {
		res.Stops = append(res.Stops, stopResponse(s.Waypoint, s.LegMeters))
	}

	path := tour.Path()
	res.Path = make([][]float64, 0, len(path))
	for _, c := range path {
		res.Path = append(res.Path, c.CoordsToList())
	}

	writeJSON(w, r, http.StatusOK, res)
}

func waypoint(field string, req dto.WaypointRequest) (domain.Waypoint, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Waypoint{}, fmt.Errorf("%s.name is required", field)
	}

	c, err := coordinates(field, dto.CoordinatesRequest{Lon: req.Lon, Lat: req.Lat})
	if err != nil {
		return domain.Waypoint{}, err
	}

	return domain.Waypoint{Name: name, Coords: c}, nil
}

func stopResponse(wp domain.Waypoint, leg float64) dto.TourStopResponse {
	return dto.TourStopResponse{
		Name:      wp.Name,
		Lon:       wp.Coords.Lon,
		Lat:       wp.Coords.Lat,
		LegMeters: leg,
	}
}

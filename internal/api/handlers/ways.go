package handlers

import (
	"errors"
	"fmt"
	"geodistance-service/internal/api/dto"
	"geodistance-service/internal/ports"
	"geodistance-service/internal/services"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
)

// WayHandler exposes lengths of stored ways.
type WayHandler struct {
	Repo  ports.WayRepository
	Cache ports.LengthCache
}

func (h *WayHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	lengths, err := services.WayLengths(r.Context(), h.Repo, h.Cache)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("list way lengths failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListWaysResponse{
		Ways: make([]dto.WayLengthResponse, 0, len(lengths)),
	}
	for _, l := range lengths {
		if !finite(l.LengthMeters) {
			writeError(w, r, http.StatusUnprocessableEntity, fmt.Sprintf("length of way %d is not a finite number", l.WayID))
			return
		}
		res.Ways = append(res.Ways, wayLengthResponse(l))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *WayHandler) Length(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "way id must be a positive integer")
		return
	}

	l, err := services.WayLength(r.Context(), id, h.Repo, h.Cache)
	if errors.Is(err, ports.ErrWayNotFound) {
		writeError(w, r, http.StatusNotFound, "way not found")
		return
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Int64("way_id", id).Msg("way length failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if !finite(l.LengthMeters) {
		writeError(w, r, http.StatusUnprocessableEntity, "length is not a finite number")
		return
	}

	writeJSON(w, r, http.StatusOK, wayLengthResponse(l))
}

func wayLengthResponse(l services.WayLengthResult) dto.WayLengthResponse {
	return dto.WayLengthResponse{
		WayID:        l.WayID,
		Name:         l.Name,
		LengthMeters: l.LengthMeters,
		Cached:       l.Cached,
	}
}

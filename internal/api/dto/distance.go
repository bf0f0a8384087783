package dto

// Lon and Lat are pointers so a missing field can be told apart from 0.
type CoordinatesRequest struct {
	Lon *float64 `json:"lon"`
	Lat *float64 `json:"lat"`
}

type DistanceRequest struct {
	From  CoordinatesRequest `json:"from"`
	To    CoordinatesRequest `json:"to"`
	Clamp bool               `json:"clamp"`
}

type DistanceResponse struct {
	DistanceMeters float64 `json:"distance_meters"`
	Clamped        bool    `json:"clamped"`
}

type LengthResponse struct {
	LengthMeters float64 `json:"length_meters"`
	Points       int     `json:"points"`
}

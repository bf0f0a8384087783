package dto

type WayLengthResponse struct {
	WayID        int64   `json:"way_id"`
	Name         string  `json:"name,omitempty"`
	LengthMeters float64 `json:"length_meters"`
	Cached       bool    `json:"cached"`
}

type ListWaysResponse struct {
	Ways []WayLengthResponse `json:"ways"`
}

package dto

type WaypointRequest struct {
	Name string   `json:"name"`
	Lon  *float64 `json:"lon"`
	Lat  *float64 `json:"lat"`
}

type TourRequest struct {
	Start         WaypointRequest   `json:"start"`
	Stops         []WaypointRequest `json:"stops"`
	ReturnToStart bool              `json:"return_to_start"`
}

type TourStopResponse struct {
	Name      string  `json:"name"`
	Lon       float64 `json:"lon"`
	Lat       float64 `json:"lat"`
	LegMeters float64 `json:"leg_meters"`
}

type TourResponse struct {
	Start               TourStopResponse   `json:"start"`
	Stops               []TourStopResponse `json:"stops"`
	ReturnToStart       bool               `json:"return_to_start"`
	ReturnLegMeters     float64            `json:"return_leg_meters"`
	TotalDistanceMeters float64            `json:"total_distance_meters"`
	// Path is the visited route as [lon, lat] pairs, GeoJSON ordering.
	Path [][]float64 `json:"path"`
}

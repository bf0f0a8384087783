package domain

// A named place to visit.
type Waypoint struct {
	Name   string
	Coords Coordinates
}

func (w Waypoint) Location() Coordinates { return w.Coords }

// Represents a single visited stop in a tour.
// LegMeters is the distance travelled from the previous stop
// (or from the start for the first stop).
type TourStop struct {
	Waypoint  Waypoint
	LegMeters float64
}

// Represents the planned visiting order for a set of waypoints.
// A Tour is the output of a planning algorithm; it is immutable
// planning data and contains no side effects.
type Tour struct {
	Start               Waypoint
	Stops               []TourStop
	ReturnToStart       bool
	ReturnLegMeters     float64
	TotalDistanceMeters float64
}

// Path returns the visited locations in order, including the start
// and, when requested, the closing return to the start.
func (t *Tour) Path() []Coordinates {
	out := make([]Coordinates, 0, len(t.Stops)+2)
	out = append(out, t.Start.Coords)
	for _, s := range t.Stops {
		out = append(out, s.Waypoint.Coords)
	}
	if t.ReturnToStart && len(t.Stops) > 0 {
		out = append(out, t.Start.Coords)
	}
	return out
}

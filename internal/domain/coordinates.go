package domain

// Immutable geographic coordinates (longitude, latitude) in degrees.
// No range checks are applied; callers validate before handing values in.
type Coordinates struct {
	Lon float64
	Lat float64
}

// Located is anything that can report where it is.
type Located interface {
	Location() Coordinates
}

// Location lets a bare coordinate pair be used wherever a Located is expected.
func (c Coordinates) Location() Coordinates { return c }

// Return coordinates as [lon, lat] for GeoJSON compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

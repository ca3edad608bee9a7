package domain

// County is one of Kenya's 47 administrative regions.
type County struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Capital string `json:"capital"`

	// Bounding box in decimal degrees.
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// CountyLocator resolves WGS-84 coordinates to a county id.
type CountyLocator interface {
	// LocateCounty returns the county containing the point, or ok=false
	// when the point falls outside every known county.
	LocateCounty(lat, lon float64) (countyID int, ok bool)
}

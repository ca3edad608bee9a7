// Package counties resolves WGS-84 coordinates to Kenyan county ids using a
// static bounding-box table of all 47 counties.
package counties

import (
	"math"

	"github.com/savannawatch/climate-watch-api/internal/domain"
)

// Locator implements domain.CountyLocator over the static table below.
// Bounding boxes overlap near county borders; overlaps are broken by the
// nearest box center. No polygon containment is attempted.
type Locator struct{}

// NewLocator creates a Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// LocateCounty returns the county whose bounding box contains the point.
// When several boxes contain it, the one with the nearest center wins.
// Points outside every box return ok=false.
func (l *Locator) LocateCounty(lat, lon float64) (int, bool) {
	bestID := 0
	bestDist := math.MaxFloat64

	for _, c := range All {
		if lat > c.North || lat < c.South || lon > c.East || lon < c.West {
			continue
		}
		centerLat := (c.North + c.South) / 2
		centerLon := (c.East + c.West) / 2
		d := math.Hypot(lat-centerLat, lon-centerLon)
		if d < bestDist {
			bestDist = d
			bestID = c.ID
		}
	}

	return bestID, bestID != 0
}

// ByID returns the county with the given id.
func ByID(id int) (domain.County, bool) {
	for _, c := range All {
		if c.ID == id {
			return c, true
		}
	}
	return domain.County{}, false
}

// All lists Kenya's 47 counties with their bounding boxes in decimal degrees.
var All = []domain.County{
	{ID: 1, Name: "Nairobi", Capital: "Nairobi", North: -1.163, South: -1.444, East: 37.104, West: 36.752},
	{ID: 2, Name: "Kiambu", Capital: "Kiambu", North: -0.85, South: -1.45, East: 37.25, West: 36.55},
	{ID: 3, Name: "Murang'a", Capital: "Murang'a", North: -0.55, South: -1.15, East: 37.25, West: 36.75},
	{ID: 4, Name: "Nyeri", Capital: "Nyeri", North: -0.25, South: -0.95, East: 37.25, West: 36.65},
	{ID: 5, Name: "Kirinyaga", Capital: "Kerugoya", North: -0.35, South: -0.75, East: 37.55, West: 37.05},
	{ID: 6, Name: "Nyandarua", Capital: "Ol Kalou", North: -0.15, South: -0.75, East: 36.95, West: 36.25},
	{ID: 7, Name: "Mombasa", Capital: "Mombasa", North: -3.95, South: -4.3, East: 39.82, West: 39.52},
	{ID: 8, Name: "Kwale", Capital: "Kwale", North: -3.85, South: -4.75, East: 39.65, West: 39.15},
	{ID: 9, Name: "Kilifi", Capital: "Kilifi", North: -2.85, South: -4.05, East: 40.15, West: 39.65},
	{ID: 10, Name: "Tana River", Capital: "Hola", North: -0.85, South: -2.95, East: 40.35, West: 38.85},
	{ID: 11, Name: "Lamu", Capital: "Lamu", North: -1.85, South: -2.35, East: 41.05, West: 40.45},
	{ID: 12, Name: "Taita-Taveta", Capital: "Voi", North: -3.15, South: -4.25, East: 38.95, West: 37.65},
	{ID: 13, Name: "Garissa", Capital: "Garissa", North: 1.45, South: -1.65, East: 41.35, West: 38.85},
	{ID: 14, Name: "Wajir", Capital: "Wajir", North: 3.85, South: 1.45, East: 41.85, West: 39.85},
	{ID: 15, Name: "Mandera", Capital: "Mandera", North: 4.15, South: 2.85, East: 42.15, West: 40.85},
	{ID: 16, Name: "Marsabit", Capital: "Marsabit", North: 4.45, South: 1.85, East: 39.85, West: 36.85},
	{ID: 17, Name: "Isiolo", Capital: "Isiolo", North: 1.85, South: 0.35, East: 39.35, West: 37.35},
	{ID: 18, Name: "Meru", Capital: "Meru", North: 0.55, South: -0.25, East: 38.25, West: 37.25},
	{ID: 19, Name: "Tharaka-Nithi", Capital: "Chuka", North: 0.15, South: -0.45, East: 38.05, West: 37.45},
	{ID: 20, Name: "Embu", Capital: "Embu", North: -0.25, South: -0.85, East: 37.95, West: 37.25},
	{ID: 21, Name: "Kitui", Capital: "Kitui", North: -0.45, South: -1.95, East: 38.95, West: 37.45},
	{ID: 22, Name: "Machakos", Capital: "Machakos", North: -1.05, South: -1.85, East: 37.95, West: 36.85},
	{ID: 23, Name: "Makueni", Capital: "Wote", North: -1.65, South: -3.05, East: 38.45, West: 37.35},
	{ID: 24, Name: "Turkana", Capital: "Lodwar", North: 5.55, South: 1.55, East: 36.85, West: 34.85},
	{ID: 25, Name: "West Pokot", Capital: "Kapenguria", North: 3.55, South: 1.25, East: 35.85, West: 34.85},
	{ID: 26, Name: "Samburu", Capital: "Maralal", North: 2.85, South: 0.55, East: 38.25, West: 36.25},
	{ID: 27, Name: "Trans-Nzoia", Capital: "Kitale", North: 1.35, South: 0.65, East: 35.35, West: 34.65},
	{ID: 28, Name: "Uasin Gishu", Capital: "Eldoret", North: 1.15, South: 0.25, East: 35.85, West: 35.05},
	{ID: 29, Name: "Elgeyo-Marakwet", Capital: "Iten", North: 1.45, South: 0.55, East: 35.85, West: 35.25},
	{ID: 30, Name: "Nandi", Capital: "Kapsabet", North: 0.65, South: -0.15, East: 35.35, West: 34.85},
	{ID: 31, Name: "Baringo", Capital: "Kabarnet", North: 1.75, South: 0.15, East: 36.35, West: 35.35},
	{ID: 32, Name: "Laikipia", Capital: "Nanyuki", North: 0.75, South: -0.15, East: 37.35, West: 36.25},
	{ID: 33, Name: "Nakuru", Capital: "Nakuru", North: 0.25, South: -1.25, East: 36.45, West: 35.55},
	{ID: 34, Name: "Narok", Capital: "Narok", North: -0.85, South: -2.15, East: 36.85, West: 35.25},
	{ID: 35, Name: "Kajiado", Capital: "Kajiado", North: -1.25, South: -2.95, East: 37.95, West: 36.05},
	{ID: 36, Name: "Kericho", Capital: "Kericho", North: -0.15, South: -0.85, East: 35.65, West: 35.05},
	{ID: 37, Name: "Bomet", Capital: "Bomet", North: -0.45, South: -1.15, East: 35.45, West: 34.95},
	{ID: 38, Name: "Kakamega", Capital: "Kakamega", North: 0.95, South: -0.25, East: 35.05, West: 34.35},
	{ID: 39, Name: "Vihiga", Capital: "Vihiga", North: 0.15, South: -0.15, East: 34.85, West: 34.55},
	{ID: 40, Name: "Bungoma", Capital: "Bungoma", North: 1.05, South: 0.35, East: 35.05, West: 34.25},
	{ID: 41, Name: "Busia", Capital: "Busia", North: 0.85, South: 0.05, East: 34.45, West: 33.95},
	{ID: 42, Name: "Siaya", Capital: "Siaya", North: 0.45, South: -0.15, East: 34.55, West: 33.85},
	{ID: 43, Name: "Kisumu", Capital: "Kisumu", North: 0.15, South: -0.45, East: 35.15, West: 34.45},
	{ID: 44, Name: "Homa Bay", Capital: "Homa Bay", North: -0.15, South: -0.95, East: 34.85, West: 34.15},
	{ID: 45, Name: "Migori", Capital: "Migori", North: -0.65, South: -1.45, East: 34.85, West: 34.15},
	{ID: 46, Name: "Kisii", Capital: "Kisii", North: -0.45, South: -1.15, East: 35.05, West: 34.65},
	{ID: 47, Name: "Nyamira", Capital: "Nyamira", North: -0.55, South: -1.05, East: 35.05, West: 34.75},
}

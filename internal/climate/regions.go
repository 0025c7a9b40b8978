package climate

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const metersPerMile = 1609.34

// box builds an orb.Bound from latitude/longitude ranges. orb points are
// (lon, lat) ordered.
func box(minLat, maxLat, minLon, maxLon float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{minLon, minLat},
		Max: orb.Point{maxLon, maxLat},
	}
}

func point(lat, lon float64) orb.Point {
	return orb.Point{lon, lat}
}

// Geographic hazard regions. These approximate the published hazard maps;
// a full implementation would query the agency raster services.
var (
	californiaBound  = box(32, 42, -125, -114)
	pacificNWBound   = box(42, 49, -125, -116)
	southwestBound   = box(31, 42, -125, -102)
	mountainWest     = box(35, 49, -116, -102)
	westernLonBound  = box(-90, 90, -125, -102)
	caCoastBound     = box(32, 42, -125, -117)
	caInlandBound    = box(32, 42, -117, -114)
	nevadaUtahBound  = box(35, 42, -120, -109)
	newMadridBound   = box(35, 40, -92, -87)
	tornadoAlley     = box(33, 43, -103, -95)
	dixieAlley       = box(31, 37, -95, -84)
	midwestHigh      = box(36, 43, -95, -84)
	easternTornado   = box(30, 42, -84, -75)
	swDesertHeat     = box(32, 37, -117, -102)
	deepSouthHeat    = box(28, 35, -107, -80)
	southernPlains   = box(30, 37, -103, -93)
	westCoastMarine  = box(32, 42, -125, -115)
	northeastCoast   = box(38, 45, -80, -70)
	swDesertDrought  = box(32, 40, -120, -102)
	greatPlains      = box(35, 45, -103, -95)
	southeastDrought = box(30, 37, -95, -75)
	northeastHumid   = box(38, 47, -80, -67)
)

// Hurricane-exposed coastline reference points.
var hurricaneCoast = []orb.Point{
	point(25.8, -80.2), // Miami
	point(28.5, -81.4), // Orlando
	point(32.8, -79.9), // Charleston
	point(36.9, -76.2), // Norfolk
	point(40.7, -74.0), // New York
	point(42.4, -71.1), // Boston
	point(26.1, -81.8), // Naples
	point(27.9, -82.5), // Tampa
	point(30.4, -84.3), // Tallahassee
	point(30.4, -87.2), // Pensacola
	point(30.7, -88.0), // Mobile
	point(29.9, -90.1), // New Orleans
	point(29.3, -94.8), // Galveston
	point(27.8, -97.4), // Corpus Christi
}

// Sea-level-rise coastline reference points across all three coasts.
var seaLevelCoast = []orb.Point{
	point(25.8, -80.2),  // Miami
	point(32.8, -79.9),  // Charleston
	point(36.9, -76.2),  // Norfolk
	point(40.7, -74.0),  // New York
	point(42.4, -71.1),  // Boston
	point(29.9, -90.1),  // New Orleans
	point(29.7, -95.4),  // Houston
	point(27.9, -82.5),  // Tampa
	point(32.7, -117.2), // San Diego
	point(33.9, -118.2), // Los Angeles
	point(37.8, -122.4), // San Francisco
	point(47.6, -122.3), // Seattle
}

func inBound(lat, lon float64, b orb.Bound) bool {
	return b.Contains(orb.Point{lon, lat})
}

// distanceToNearestMiles returns the haversine distance from a location to
// the closest reference point, in miles.
func distanceToNearestMiles(lat, lon float64, points []orb.Point) float64 {
	from := orb.Point{lon, lat}
	min := -1.0
	for _, p := range points {
		d := geo.DistanceHaversine(from, p) / metersPerMile
		if min < 0 || d < min {
			min = d
		}
	}
	return min
}

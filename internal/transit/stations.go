package transit

import (
	"github.com/sells-group/cafe-scout/internal/geo"
	"github.com/sells-group/cafe-scout/internal/model"
)

// defaultStations is the built-in Manhattan station catalog, used when no
// catalog file is configured. Coordinates are station entrances from OSM.
var defaultStations = []model.SubwayStation{
	{ID: "times-sq-42", Name: "Times Sq-42 St", Coordinates: geo.Coordinate{Lat: 40.7553, Lng: -73.9869}, Lines: []string{"1", "2", "3", "7", "N", "Q", "R", "W", "S"}},
	{ID: "grand-central-42", Name: "Grand Central-42 St", Coordinates: geo.Coordinate{Lat: 40.7527, Lng: -73.9772}, Lines: []string{"4", "5", "6", "7", "S"}},
	{ID: "34-herald-sq", Name: "34 St-Herald Sq", Coordinates: geo.Coordinate{Lat: 40.7496, Lng: -73.9877}, Lines: []string{"B", "D", "F", "M", "N", "Q", "R", "W"}},
	{ID: "34-penn-station", Name: "34 St-Penn Station", Coordinates: geo.Coordinate{Lat: 40.7506, Lng: -73.9911}, Lines: []string{"1", "2", "3"}},
	{ID: "14-union-sq", Name: "14 St-Union Sq", Coordinates: geo.Coordinate{Lat: 40.7356, Lng: -73.9906}, Lines: []string{"4", "5", "6", "L", "N", "Q", "R", "W"}},
	{ID: "59-columbus-circle", Name: "59 St-Columbus Circle", Coordinates: geo.Coordinate{Lat: 40.7681, Lng: -73.9819}, Lines: []string{"1", "A", "B", "C", "D"}},
	{ID: "fulton-st", Name: "Fulton St", Coordinates: geo.Coordinate{Lat: 40.7102, Lng: -74.0079}, Lines: []string{"2", "3", "4", "5", "A", "C", "J", "Z"}},
	{ID: "canal-st", Name: "Canal St", Coordinates: geo.Coordinate{Lat: 40.7185, Lng: -74.0003}, Lines: []string{"6", "J", "N", "Q", "R", "W", "Z"}},
	{ID: "w-4-st", Name: "W 4 St-Wash Sq", Coordinates: geo.Coordinate{Lat: 40.7323, Lng: -74.0003}, Lines: []string{"A", "B", "C", "D", "E", "F", "M"}},
	{ID: "86-st-lex", Name: "86 St", Coordinates: geo.Coordinate{Lat: 40.7794, Lng: -73.9559}, Lines: []string{"4", "5", "6"}},
	{ID: "125-st-lex", Name: "125 St", Coordinates: geo.Coordinate{Lat: 40.8045, Lng: -73.9374}, Lines: []string{"4", "5", "6"}},
	{ID: "astor-pl", Name: "Astor Pl", Coordinates: geo.Coordinate{Lat: 40.7300, Lng: -73.9911}, Lines: []string{"6"}},
	{ID: "wall-st", Name: "Wall St", Coordinates: geo.Coordinate{Lat: 40.7069, Lng: -74.0091}, Lines: []string{"4", "5"}},
	{ID: "chambers-st", Name: "Chambers St", Coordinates: geo.Coordinate{Lat: 40.7143, Lng: -74.0085}, Lines: []string{"1", "2", "3"}},
}

// DefaultCatalog returns the built-in station catalog.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultStations)
}

package station

// Station is one fixed physical telemetry sensor site.
type Station struct {
	// ID is the canonical station identifier used across agos.
	ID string `json:"id"`

	Name string `json:"name"`

	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Elevation float64 `json:"elevation"`

	// FeedIDs are the identifiers this station reports under in the
	// upstream feed. Usually just the canonical id, but a replaced sensor
	// can keep reporting under its old id for a while.
	FeedIDs []string `json:"-"`
}

// Fleet is the fixed set of all tracked stations.
// The fleet size is independent of how many stations actually report.
type Fleet []Station

// DefaultFleet returns the tracked station network.
func DefaultFleet() Fleet {
	return Fleet{
		{ID: "St1", Name: "Binudegahan Station", Latitude: 13.3483, Longitude: 123.2609, Elevation: 14.7, FeedIDs: []string{"St1"}},
		{ID: "St2", Name: "Mangit Station", Latitude: 13.3464, Longitude: 123.2517, Elevation: 10.5, FeedIDs: []string{"St2"}},
		{ID: "St3", Name: "Laganac Station", Latitude: 13.3296, Longitude: 123.2481, Elevation: 18.1, FeedIDs: []string{"St3"}},
		{ID: "St4", Name: "MDRRMO Station", Latitude: 13.31639, Longitude: 123.24003, Elevation: 15.2, FeedIDs: []string{"St4"}},
		{ID: "St5", Name: "Luluasan Station", Latitude: 13.3235, Longitude: 123.2344, Elevation: 12.8, FeedIDs: []string{"St5"}},
	}
}

// ByID finds a station by its canonical id.
func (f Fleet) ByID(id string) (Station, bool) {
	for _, s := range f {
		if s.ID == id {
			return s, true
		}
	}
	return Station{}, false
}

// Name returns the display name for a station id, or the id itself for
// stations the fleet does not know.
func (f Fleet) Name(id string) string {
	if s, ok := f.ByID(id); ok {
		return s.Name
	}
	return id
}

// IDs returns the canonical ids in fleet order.
func (f Fleet) IDs() []string {
	ids := make([]string, len(f))
	for i, s := range f {
		ids[i] = s.ID
	}
	return ids
}

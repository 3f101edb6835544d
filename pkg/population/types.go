package population

// Province is a reference entry keyed by Key.
type Province struct {
	// Key uniquely identifies the province (e.g., "ON").
	Key string `json:"key"`

	// Name is the display name (e.g., "Ontario").
	Name string `json:"name"`
}

// City is a reference entry that points at its owning province by key.
type City struct {
	Name string `json:"name"`

	// ProvinceKey is a foreign key into Province.Key.
	ProvinceKey string `json:"province"`
}

// DetailRecord is the per-city supplementary data.
// A nil Population means the record exists but carries no value.
type DetailRecord struct {
	Population *float64 `json:"population,omitempty"`
}

// PopulationOrZero returns the population value, or 0 if the record is nil or
// carries no value.
func (d *DetailRecord) PopulationOrZero() float64 {
	if d == nil || d.Population == nil {
		return 0
	}
	return *d.Population
}

// PopulationRecord is one row of the final report.
type PopulationRecord struct {
	Province   string  `json:"province"`
	City       string  `json:"city"`
	Population float64 `json:"population"`
}

// Pair is a city joined with the province that owns it.
type Pair struct {
	Province Province
	City     City
}

package domain

// Range is one coefficient band of a leaser's grid.
type Range struct {
	ID          string  `json:"id"`
	LeaserID    string  `json:"leaser_id"`
	Min         int64   `json:"min"`
	Max         int64   `json:"max"`
	Coefficient float64 `json:"coefficient"`
}

// Leaser is a financing entity. At most one leaser is the default at a time;
// the repository enforces the swap in a single transaction.
type Leaser struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	IsDefault bool    `json:"is_default"`
	Ranges    []Range `json:"ranges,omitempty"`
}

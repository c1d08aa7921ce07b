package domain

// CommissionRate is one tier of a commission level. Rate is a percentage.
type CommissionRate struct {
	ID        string  `json:"id"`
	LevelID   string  `json:"level_id"`
	MinAmount int64   `json:"min_amount"`
	MaxAmount int64   `json:"max_amount"`
	Rate      float64 `json:"rate"`
}

// CommissionLevel owns an ordered, non-overlapping set of rate tiers for an
// introducing ambassador or partner.
type CommissionLevel struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Rates []CommissionRate `json:"rates,omitempty"`
}

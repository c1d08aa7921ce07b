package domain

import "time"

type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "active"
	ContractStatusExtended  ContractStatus = "extended"
	ContractStatusCompleted ContractStatus = "completed"
)

// DefaultContractDurationMonths applies when an accepted offer carries no
// explicit duration.
const DefaultContractDurationMonths = 36

// Contract is created once from an accepted offer. The equipment snapshot is
// copied at creation time and never follows later offer edits.
type Contract struct {
	ID                string         `json:"id"`
	OfferID           string         `json:"offer_id"`
	ClientID          string         `json:"client_id"`
	LeaserID          *string        `json:"leaser_id,omitempty"`
	MonthlyPayment    int64          `json:"monthly_payment"`
	EquipmentCost     int64          `json:"equipment_cost"`
	ContractStartDate *time.Time     `json:"contract_start_date,omitempty"`
	ContractDuration  int32          `json:"contract_duration"` // months
	Status            ContractStatus `json:"status"`
	TerminationReason string         `json:"termination_reason,omitempty"`
	Equipment         []EquipmentLine `json:"equipment,omitempty"`
	Version           int64          `json:"version"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// EndDate derives the contractual end from start date and duration.
func (c *Contract) EndDate() *time.Time {
	if c.ContractStartDate == nil {
		return nil
	}
	end := c.ContractStartDate.AddDate(0, int(c.ContractDuration), 0)
	return &end
}

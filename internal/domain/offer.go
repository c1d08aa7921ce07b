package domain

import "time"

type OfferType string

const (
	OfferTypeAdmin         OfferType = "admin_offer"
	OfferTypeClientRequest OfferType = "client_request"
	OfferTypeAmbassador    OfferType = "ambassador_offer"
	OfferTypePartner       OfferType = "partner_offer"
)

type WorkflowStatus string

const (
	StatusDraft          WorkflowStatus = "draft"
	StatusSent           WorkflowStatus = "sent"
	StatusInfoRequested  WorkflowStatus = "info_requested"
	StatusInfoReceived   WorkflowStatus = "info_received"
	StatusInternalReview WorkflowStatus = "internal_review"
	StatusLeaserReview   WorkflowStatus = "leaser_review"
	StatusApproved       WorkflowStatus = "approved"
	StatusAccepted       WorkflowStatus = "accepted"
	StatusContractSigned WorkflowStatus = "contract_signed"
	StatusInvoiced       WorkflowStatus = "invoiced"
	StatusRejected       WorkflowStatus = "rejected"
)

type Score string

const (
	ScoreA Score = "A"
	ScoreB Score = "B"
	ScoreC Score = "C"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// EquipmentLine is one financed item on an offer. Monetary fields are whole
// currency units.
type EquipmentLine struct {
	ID             string  `json:"id"`
	OfferID        string  `json:"offer_id"`
	Title          string  `json:"title"`
	PurchasePrice  int64   `json:"purchase_price"`
	Quantity       int32   `json:"quantity"`
	MarginPercent  float64 `json:"margin_percent"`
	MonthlyPayment int64   `json:"monthly_payment"`
	Position       int32   `json:"position"`
}

type Discount struct {
	Type  DiscountType `json:"type"`
	Value int64        `json:"value"`
	// Amount is the resolved monthly reduction, derived from Type and Value.
	Amount int64 `json:"amount"`
}

type Offer struct {
	ID           string    `json:"id"`
	Type         OfferType `json:"type"`
	ClientID     string    `json:"client_id"`
	ClientEmail  string    `json:"client_email"`
	UserID       string    `json:"user_id"`
	AmbassadorID *string   `json:"ambassador_id,omitempty"`
	LeaserID     *string   `json:"leaser_id,omitempty"`

	Equipment []EquipmentLine `json:"equipment,omitempty"`

	// Derived financial snapshot, recomputed on every status transition.
	Coefficient     float64   `json:"coefficient"`
	FinancedAmount  int64     `json:"financed_amount"`
	MonthlyPayment  int64     `json:"monthly_payment"`
	Margin          int64     `json:"margin"`
	Commission      int64     `json:"commission"`
	CommissionRate  float64   `json:"commission_rate"`
	FileFee         int64     `json:"file_fee"`
	AnnualInsurance int64     `json:"annual_insurance"`
	Discount        *Discount `json:"discount,omitempty"`

	WorkflowStatus WorkflowStatus `json:"workflow_status"`
	// StatusBeforeInfoRequest remembers where the pipeline was suspended so
	// review resumes there after info_received.
	StatusBeforeInfoRequest *WorkflowStatus `json:"status_before_info_request,omitempty"`
	Score                   *Score          `json:"score,omitempty"`
	ScoreReason             string          `json:"score_reason,omitempty"`

	// Version is the optimistic concurrency stamp; every persisted write
	// increments it.
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalMonthlyPayment sums the equipment lines' monthly payments.
func (o *Offer) TotalMonthlyPayment() int64 {
	var total int64
	for _, line := range o.Equipment {
		total += line.MonthlyPayment
	}
	return total
}

// TotalPurchaseCost sums purchase price x quantity across equipment lines.
func (o *Offer) TotalPurchaseCost() int64 {
	var total int64
	for _, line := range o.Equipment {
		total += line.PurchasePrice * int64(line.Quantity)
	}
	return total
}

// IsTerminal reports whether the offer can no longer re-enter any review
// state.
func (s WorkflowStatus) IsTerminal() bool {
	switch s {
	case StatusAccepted, StatusContractSigned, StatusInvoiced, StatusRejected:
		return true
	}
	return false
}

// IsReview reports whether the status is a human review stage.
func (s WorkflowStatus) IsReview() bool {
	return s == StatusInternalReview || s == StatusLeaserReview
}

package domain

import (
	"strings"
	"time"
)

// DocumentKind tags a requested document. The set is extensible: any value
// prefixed with "custom:" carries a free-text label.
type DocumentKind string

const (
	DocBalanceSheet  DocumentKind = "balance_sheet"
	DocIDCardFront   DocumentKind = "id_card_front"
	DocIDCardBack    DocumentKind = "id_card_back"
	DocBankStatement DocumentKind = "bank_statement"
	DocTaxNotice     DocumentKind = "tax_notice"
	DocKBIS          DocumentKind = "kbis"

	customKindPrefix = "custom:"
)

// CustomKind builds a free-text document kind.
func CustomKind(label string) DocumentKind {
	return DocumentKind(customKindPrefix + label)
}

// IsValid accepts known kinds and non-empty custom kinds.
func (k DocumentKind) IsValid() bool {
	switch k {
	case DocBalanceSheet, DocIDCardFront, DocIDCardBack, DocBankStatement, DocTaxNotice, DocKBIS:
		return true
	}
	return strings.HasPrefix(string(k), customKindPrefix) && len(k) > len(customKindPrefix)
}

type DocumentRequestStatus string

const (
	DocumentRequestOpen      DocumentRequestStatus = "open"
	DocumentRequestCompleted DocumentRequestStatus = "completed"
)

// DocumentRequest suspends an offer's pipeline at info_requested until every
// requested kind is fulfilled. PreviousStatus remembers where review resumes.
type DocumentRequest struct {
	ID             string                `json:"id"`
	OfferID        string                `json:"offer_id"`
	PreviousStatus WorkflowStatus        `json:"previous_status"`
	Requested      []DocumentKind        `json:"requested"`
	Fulfilled      []DocumentKind        `json:"fulfilled,omitempty"`
	CustomMessage  string                `json:"custom_message,omitempty"`
	Status         DocumentRequestStatus `json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
	CompletedAt    *time.Time            `json:"completed_at,omitempty"`
}

// Missing returns the requested kinds not yet fulfilled.
func (r *DocumentRequest) Missing() []DocumentKind {
	have := make(map[DocumentKind]bool, len(r.Fulfilled))
	for _, k := range r.Fulfilled {
		have[k] = true
	}
	var missing []DocumentKind
	for _, k := range r.Requested {
		if !have[k] {
			missing = append(missing, k)
		}
	}
	return missing
}

// UploadedDocument records a stored file fulfilling a requested kind.
type UploadedDocument struct {
	ID         string       `json:"id"`
	RequestID  string       `json:"request_id"`
	OfferID    string       `json:"offer_id"`
	Kind       DocumentKind `json:"kind"`
	FileName   string       `json:"file_name"`
	StorageKey string       `json:"storage_key"`
	FileSize   int64        `json:"file_size"`
	MimeType   string       `json:"mime_type"`
	CreatedAt  time.Time    `json:"created_at"`
}

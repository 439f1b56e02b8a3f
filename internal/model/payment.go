package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment proof status lifecycle: submitted -> approved | rejected.
const (
	ProofStatusSubmitted = "submitted"
	ProofStatusApproved  = "approved"
	ProofStatusRejected  = "rejected"
)

// PaymentProof is an uploaded bank-transfer receipt stored in the object
// bucket and referenced by exactly one order. AmountSAR is the amount the
// customer claims to have transferred; it is stored verbatim for the
// reviewer and never reconciled automatically.
type PaymentProof struct {
	ID        string           `json:"-"`
	OrderID   string           `json:"-"`
	FilePath  string           `json:"file_path"`
	AmountSAR *decimal.Decimal `json:"amount_sar"`
	Note      *string          `json:"note,omitempty"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"-"`
}

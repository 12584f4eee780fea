package models

import (
	"time"

	"github.com/shopspring/decimal"

	dErrors "inkind/pkg/domain-errors"
)

// MaterialDescriptor is the immutable description of pledged goods. It is
// written once at pledge time; no edit operation exists.
type MaterialDescriptor struct {
	ItemType       string          `json:"item_type"`
	Description    string          `json:"description"`
	Quantity       uint64          `json:"quantity"`
	Unit           string          `json:"unit"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	Location       string          `json:"location"`
	ImageRef       string          `json:"image_ref,omitempty"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"`
}

// Validate guards the pledge write so no ledger round trip is wasted on an
// unsatisfiable descriptor.
func (d MaterialDescriptor) Validate() error {
	if d.ItemType == "" {
		return dErrors.New(dErrors.CodeValidation, "item type is required")
	}
	if d.Quantity == 0 {
		return dErrors.New(dErrors.CodeValidation, "quantity must be positive")
	}
	if d.Unit == "" {
		return dErrors.New(dErrors.CodeValidation, "unit is required")
	}
	if d.EstimatedValue.IsNegative() {
		return dErrors.New(dErrors.CodeValidation, "estimated value cannot be negative")
	}
	return nil
}

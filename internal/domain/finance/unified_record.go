package finance

import (
	"fmt"

	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordSource tells where a unified record came from
type RecordSource string

const (
	RecordSourceEntry RecordSource = "ENTRY"
	RecordSourceSale  RecordSource = "SALE"
)

// IsValid checks if the source is a valid RecordSource
func (s RecordSource) IsValid() bool {
	switch s {
	case RecordSourceEntry, RecordSourceSale:
		return true
	}
	return false
}

// String returns the string representation of RecordSource
func (s RecordSource) String() string {
	return string(s)
}

// UnifiedRecord is one row of the combined transaction view: either a
// ledger entry as-is, or a synthetic income record derived from a
// completed sale. Synthetic records carry deterministic IDs so two runs
// over the same data produce identical rows.
type UnifiedRecord struct {
	ID            uuid.UUID                  `json:"id"`
	Source        RecordSource               `json:"source"`
	SourceID      uuid.UUID                  `json:"source_id"`
	Date          valueobject.Date           `json:"date"`
	Description   string                     `json:"description"`
	Amount        decimal.Decimal            `json:"amount"`
	Kind          ledger.EntryKind           `json:"kind"`
	Category      string                     `json:"category"`
	Branch        valueobject.Branch         `json:"branch"`
	PaymentMethod *valueobject.PaymentMethod `json:"payment_method"`
}

// saleRecordNamespace seeds the name-based UUIDs of synthetic sale
// records. Changing it would re-key every synthetic row, so it is fixed
// for the life of the system.
var saleRecordNamespace = uuid.MustParse("a6fb1f0a-8bfa-4f2d-9c56-3d8e41a6c7b1")

// SaleRecordID derives the stable ID for the single synthetic record of
// a sale paid with one method
func SaleRecordID(saleID uuid.UUID) uuid.UUID {
	return uuid.NewSHA1(saleRecordNamespace, []byte(saleID.String()))
}

// SaleSplitRecordID derives the stable ID for the synthetic record of
// one payment split of a split-paid sale
func SaleSplitRecordID(saleID uuid.UUID, splitIndex int) uuid.UUID {
	return uuid.NewSHA1(saleRecordNamespace, []byte(fmt.Sprintf("%s:%d", saleID, splitIndex)))
}

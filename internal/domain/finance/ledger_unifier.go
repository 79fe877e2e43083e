package finance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/retailbooks/backend/internal/domain/ledger"
	"github.com/retailbooks/backend/internal/domain/shared/valueobject"
	"github.com/retailbooks/backend/internal/domain/trade"
)

// LedgerUnifier merges manual ledger entries and completed sales into
// one ordered transaction view per branch. It is a pure transformation:
// it never persists anything and calling it twice over the same inputs
// yields identical output.
type LedgerUnifier struct{}

// NewLedgerUnifier creates a new LedgerUnifier
func NewLedgerUnifier() *LedgerUnifier {
	return &LedgerUnifier{}
}

// Unify builds the combined view for a branch filter and date range.
//
// Legacy income entries in the reserved sales category are dropped:
// their amounts already arrive through the sale records, and keeping
// both would double revenue. Completed sales become synthetic income
// records, one per payment split when split-paid, otherwise one per
// sale. Output is ordered by descending date, ties broken by
// descending ID, which is total: no two records ever compare equal.
func (u *LedgerUnifier) Unify(
	entries []ledger.Entry,
	sales []trade.Sale,
	branch valueobject.BranchFilter,
	dateRange valueobject.DateRange,
) []UnifiedRecord {
	records := make([]UnifiedRecord, 0, len(entries)+len(sales))

	for i := range entries {
		entry := &entries[i]
		if !branch.Matches(entry.Branch) || !dateRange.Contains(entry.Date) {
			continue
		}
		if entry.IsLegacySaleIncome() {
			continue
		}
		records = append(records, UnifiedRecord{
			ID:            entry.ID,
			Source:        RecordSourceEntry,
			SourceID:      entry.ID,
			Date:          entry.Date,
			Description:   entry.Description,
			Amount:        entry.Amount,
			Kind:          entry.Kind,
			Category:      entry.Category,
			Branch:        entry.Branch,
			PaymentMethod: entry.PaymentMethod,
		})
	}

	for i := range sales {
		sale := &sales[i]
		if !sale.IsCompleted() || !branch.Matches(sale.Branch) || !dateRange.Contains(sale.Date) {
			continue
		}
		records = append(records, saleRecords(sale)...)
	}

	sort.Slice(records, func(i, j int) bool {
		if cmp := records[i].Date.Compare(records[j].Date); cmp != 0 {
			return cmp > 0
		}
		return strings.Compare(records[i].ID.String(), records[j].ID.String()) > 0
	})

	return records
}

func saleRecords(sale *trade.Sale) []UnifiedRecord {
	description := "Venda"
	if sale.CustomerName != "" {
		description = fmt.Sprintf("Venda - %s", sale.CustomerName)
	}

	if len(sale.Payments) > 1 {
		records := make([]UnifiedRecord, 0, len(sale.Payments))
		for idx, split := range sale.Payments {
			method := split.Method
			records = append(records, UnifiedRecord{
				ID:            SaleSplitRecordID(sale.ID, idx),
				Source:        RecordSourceSale,
				SourceID:      sale.ID,
				Date:          sale.Date,
				Description:   fmt.Sprintf("%s (%s)", description, method),
				Amount:        split.Amount,
				Kind:          ledger.EntryKindIncome,
				Category:      ledger.ReservedSalesCategory,
				Branch:        sale.Branch,
				PaymentMethod: &method,
			})
		}
		return records
	}

	record := UnifiedRecord{
		ID:          SaleRecordID(sale.ID),
		Source:      RecordSourceSale,
		SourceID:    sale.ID,
		Date:        sale.Date,
		Description: description,
		Amount:      sale.Total,
		Kind:        ledger.EntryKindIncome,
		Category:    ledger.ReservedSalesCategory,
		Branch:      sale.Branch,
	}
	if len(sale.Payments) == 1 {
		method := sale.Payments[0].Method
		record.PaymentMethod = &method
	}
	return []UnifiedRecord{record}
}

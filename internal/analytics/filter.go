package analytics

import (
	"strings"

	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

// TransactionFilter narrows the transaction list view. Zero values match all.
type TransactionFilter struct {
	Search   string
	Type     transaction.Type
	Category string
}

// FilterTransactions keeps transactions whose description or category contains
// Search (case-insensitive) and whose type and category match when set.
func FilterTransactions(txs []*transaction.Transaction, f TransactionFilter) []*transaction.Transaction {
	term := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]*transaction.Transaction, 0, len(txs))

	for _, tx := range txs {
		if term != "" &&
			!strings.Contains(strings.ToLower(tx.Description), term) &&
			!strings.Contains(strings.ToLower(tx.Category), term) {
			continue
		}

		if f.Type != "" && tx.Type != f.Type {
			continue
		}

		if f.Category != "" && tx.Category != f.Category {
			continue
		}

		out = append(out, tx)
	}

	return out
}

// Categories lists the distinct categories in txs in first-seen order.
func Categories(txs []*transaction.Transaction) []string {
	seen := make(map[string]struct{})

	var out []string

	for _, tx := range txs {
		if _, ok := seen[tx.Category]; ok {
			continue
		}

		seen[tx.Category] = struct{}{}
		out = append(out, tx.Category)
	}

	return out
}

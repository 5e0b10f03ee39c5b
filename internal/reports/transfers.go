package reports

import (
	"regexp"

	"finlens/internal/core"
)

// personalName matches the short personal-name form used in transfer
// descriptions: one Cyrillic word, a space, a Cyrillic initial, a period
// ("Иван С.").
var personalName = regexp.MustCompile(`^\p{Cyrillic}+ \p{Cyrillic}\.$`)

// PersonalTransfers selects transfer-category transactions whose
// description matches the personal-name form, preserving input order.
// Transfer detection is advisory, so any panic while matching is
// recovered into an empty result instead of propagating.
func PersonalTransfers(rows []core.Transaction) (out []core.Transaction) {
	defer func() {
		if recover() != nil {
			out = []core.Transaction{}
		}
	}()

	out = []core.Transaction{}
	for _, tx := range rows {
		if tx.Category != categoryTransfers {
			continue
		}
		if personalName.MatchString(tx.Description) {
			out = append(out, tx)
		}
	}
	return out
}

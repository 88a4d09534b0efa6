package refuser

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
)

// OnNEP17Payment rejects every incoming NEP-17 transfer. The contract is
// deployed by tests as a payout recipient that cannot accept value.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	panic("refused")
}

func Verify() bool {
	return true
}

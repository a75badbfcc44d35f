package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/verifywire/verifywire-go/pkg/commitment"
)

// RailCommitments are the six field commitments a bank publishes for its
// short code, in the order the registry stores them.
type RailCommitments struct {
	WireRouting commitment.FieldCommitment `json:"wireRouting"`
	WireAccount commitment.FieldCommitment `json:"wireAccount"`
	AchRouting  commitment.FieldCommitment `json:"achRouting"`
	AchAccount  commitment.FieldCommitment `json:"achAccount"`
	IBAN        commitment.FieldCommitment `json:"iban"`
	BIC         commitment.FieldCommitment `json:"bic"`
}

// HasUS reports whether any US rail field is attested.
func (r RailCommitments) HasUS() bool {
	return !r.WireRouting.IsUnset() || !r.WireAccount.IsUnset() ||
		!r.AchRouting.IsUnset() || !r.AchAccount.IsUnset()
}

// HasInternational reports whether IBAN or BIC is attested.
func (r RailCommitments) HasInternational() bool {
	return !r.IBAN.IsUnset() || !r.BIC.IsUnset()
}

// OnChainRecord is the registry entry for one short code. A zero Owner means
// nothing has been published for the code.
type OnChainRecord struct {
	Owner     common.Address `json:"owner"`
	UpdatedAt uint64         `json:"updatedAt"`
	Version   uint32         `json:"version"`
	RailCommitments
}

func (r *OnChainRecord) HasAttestation() bool {
	return r != nil && r.Owner != (common.Address{})
}

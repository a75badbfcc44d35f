package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/verifywire/verifywire-go/pkg/commitment"
)

type Organization struct {
	ShortCode string `json:"shortCode"`
	LegalName string `json:"legalName"`
	BrandName string `json:"brandName"`
}

// PayloadRails holds only the enabled rails; disabled rails serialize as null.
type PayloadRails struct {
	ACH           *RailDetails `json:"ach"`
	Wire          *RailDetails `json:"wire"`
	International *IntlDetails `json:"international"`
}

type PayloadMeta struct {
	CreatedAt   int64  `json:"createdAt"`
	NetworkHint string `json:"networkHint"`
}

// AttestationPayload is the document a bank signs. Its canonical serialization
// is what the payload commitment is computed over.
type AttestationPayload struct {
	Schema       string       `json:"schema"`
	Organization Organization `json:"organization"`
	Rails        PayloadRails `json:"rails"`
	Meta         PayloadMeta  `json:"meta"`
}

type PublishStatus string

const (
	PublishStatusPublished             PublishStatus = "published"
	PublishStatusFailed                PublishStatus = "publish_failed"
	PublishStatusRegistryNotConfigured PublishStatus = "registry_not_configured"
)

// SignedAttestation is the receipt kept after signing. TransactionRef is only
// set once the rail commitments are confirmed on chain.
type SignedAttestation struct {
	Schema                string                       `json:"schema"`
	OrganizationShortCode string                       `json:"orgShortCode"`
	PayloadCommitment     commitment.PayloadCommitment `json:"hash"`
	Signature             hexutil.Bytes                `json:"signature"`
	SignerAddress         common.Address               `json:"signer"`
	SignedMessage         string                       `json:"signedMessage"`
	SignedAt              int64                        `json:"signedAt"`
	Payload               *AttestationPayload          `json:"payload"`
	CID                   string                       `json:"cid"`
	Network               string                       `json:"network"`
	Status                PublishStatus                `json:"status"`
	TransactionRef        *common.Hash                 `json:"txHash"`
}

func (s *SignedAttestation) Published() bool {
	return s != nil && s.TransactionRef != nil
}

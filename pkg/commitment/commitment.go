// Package commitment computes the one-way hashes that stand in for payment
// identifiers on chain and for the signed attestation payload.
//
// FieldCommitment and PayloadCommitment are deliberately distinct types: field
// commitments are keccak-256 of a single normalized identifier, payload
// commitments are SHA-256 of canonical payload bytes.
package commitment

import (
	"crypto/sha256"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/verifywire/verifywire-go/pkg/canonical"
	"golang.org/x/crypto/sha3"
)

const commitmentLength = 32

type FieldCommitment [commitmentLength]byte

type PayloadCommitment [commitmentLength]byte

var (
	// ZeroFieldCommitment is what the registry returns for a field never written.
	ZeroFieldCommitment FieldCommitment

	// EmptyFieldCommitment is keccak-256 of the empty string. Banks publish it
	// for rails they do not offer.
	EmptyFieldCommitment = HashField("")
)

// HashField returns keccak-256 over the UTF-8 bytes of an already normalized value.
func HashField(normalized string) FieldCommitment {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(normalized))

	var out FieldCommitment
	h.Sum(out[:0])
	return out
}

// IsUnset reports whether the commitment means "rail not attested": either the
// registry's zero value or the hash of the empty string.
func (c FieldCommitment) IsUnset() bool {
	return c == ZeroFieldCommitment || c == EmptyFieldCommitment
}

func (c FieldCommitment) Hex() string {
	return hexutil.Encode(c[:])
}

func (c FieldCommitment) String() string {
	return c.Hex()
}

func (c FieldCommitment) MarshalText() ([]byte, error) {
	return hexutil.Bytes(c[:]).MarshalText()
}

func (c *FieldCommitment) UnmarshalText(input []byte) error {
	return decodeFixed(c[:], input, "field commitment")
}

// FieldCommitmentFromHex parses a 0x-prefixed 32 byte hex string.
func FieldCommitmentFromHex(s string) (FieldCommitment, error) {
	var c FieldCommitment
	if err := c.UnmarshalText([]byte(s)); err != nil {
		return FieldCommitment{}, err
	}
	return c, nil
}

// HashPayload returns SHA-256 over canonical payload bytes.
func HashPayload(b canonical.Bytes) PayloadCommitment {
	return PayloadCommitment(sha256.Sum256(b))
}

func (p PayloadCommitment) Hex() string {
	return hexutil.Encode(p[:])
}

func (p PayloadCommitment) String() string {
	return p.Hex()
}

func (p PayloadCommitment) MarshalText() ([]byte, error) {
	return hexutil.Bytes(p[:]).MarshalText()
}

func (p *PayloadCommitment) UnmarshalText(input []byte) error {
	return decodeFixed(p[:], input, "payload commitment")
}

func PayloadCommitmentFromHex(s string) (PayloadCommitment, error) {
	var p PayloadCommitment
	if err := p.UnmarshalText([]byte(s)); err != nil {
		return PayloadCommitment{}, err
	}
	return p, nil
}

// PayloadCID returns the CIDv1 (raw codec, sha2-256) of canonical payload
// bytes, suitable for pinning the exported payload to content addressed storage.
func PayloadCID(b canonical.Bytes) (string, error) {
	sum, err := multihash.Sum(b, multihash.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("failed to compute payload multihash: %w", err)
	}
	return cid.NewCidV1(cid.Raw, sum).String(), nil
}

func decodeFixed(dst []byte, input []byte, name string) error {
	raw, err := hexutil.Decode(string(input))
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, string(input), err)
	}
	if len(raw) != len(dst) {
		return fmt.Errorf("invalid %s length: got %d bytes, want %d", name, len(raw), len(dst))
	}
	copy(dst, raw)
	return nil
}

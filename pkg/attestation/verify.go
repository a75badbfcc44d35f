package attestation

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/verifywire/verifywire-go/pkg/types"
)

// RecoverSigner returns the address that produced an EIP-191 personal_sign
// signature over message.
func RecoverSigner(message string, signature []byte) (common.Address, error) {
	if len(signature) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes, got %d", crypto.SignatureLength, len(signature))
	}

	sig := make([]byte, len(signature))
	copy(sig, signature)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// VerifyReceipt re-derives the commitment, CID and signed message from the
// receipt's payload and checks the signature was made by the recorded signer.
func VerifyReceipt(receipt *types.SignedAttestation) error {
	if receipt == nil || receipt.Payload == nil {
		return fmt.Errorf("receipt has no payload")
	}

	prepared, err := Prepare(receipt.Payload)
	if err != nil {
		return err
	}
	if prepared.Commitment != receipt.PayloadCommitment {
		return fmt.Errorf("payload commitment mismatch: receipt has %s, payload hashes to %s",
			receipt.PayloadCommitment.Hex(), prepared.Commitment.Hex())
	}
	if receipt.CID != "" && prepared.CID != receipt.CID {
		return fmt.Errorf("cid mismatch: receipt has %s, payload yields %s", receipt.CID, prepared.CID)
	}

	expected := BuildSignedMessage(receipt.OrganizationShortCode, prepared.Commitment, receipt.SignedAt, receipt.Network)
	if expected != receipt.SignedMessage {
		return fmt.Errorf("signed message does not match the receipt fields")
	}

	signer, err := RecoverSigner(receipt.SignedMessage, receipt.Signature)
	if err != nil {
		return err
	}
	if signer != receipt.SignerAddress {
		return fmt.Errorf("signature was made by %s, receipt names %s", signer.Hex(), receipt.SignerAddress.Hex())
	}
	return nil
}

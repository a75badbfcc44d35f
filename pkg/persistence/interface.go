package persistence

import "github.com/verifywire/verifywire-go/pkg/types"

// IDraftStore persists the local onboarding state of a bank operator.
// All implementations must be thread-safe.
//
// Every record is a single whole-value overwrite: concurrent saves of the
// same record resolve as last writer wins. Loads return nil, nil when the
// record has never been saved.
type IDraftStore interface {
	// Claim step

	// SaveClaimDraft overwrites the organization claim draft.
	SaveClaimDraft(draft *types.ClaimDraft) error

	// LoadClaimDraft returns the saved claim draft, or nil if none exists.
	LoadClaimDraft() (*types.ClaimDraft, error)

	// Rails step

	// SaveRailsDraft overwrites the rails draft.
	SaveRailsDraft(draft *types.RailsDraft) error

	// LoadRailsDraft returns the saved rails draft, or nil if none exists.
	LoadRailsDraft() (*types.RailsDraft, error)

	// Signed receipt

	// SaveReceipt overwrites the most recent signed attestation receipt.
	SaveReceipt(receipt *types.SignedAttestation) error

	// LoadReceipt returns the most recent receipt, or nil if nothing was signed yet.
	LoadReceipt() (*types.SignedAttestation, error)

	// Wallet identity

	// SaveWalletIdentity remembers the connected wallet address.
	SaveWalletIdentity(identity *types.WalletIdentity) error

	// LoadWalletIdentity returns the remembered wallet, or nil if none.
	LoadWalletIdentity() (*types.WalletIdentity, error)

	// ClearWalletIdentity forgets the wallet. Drafts and receipts are untouched.
	// Idempotent.
	ClearWalletIdentity() error

	// Lifecycle Management

	// Close cleanly shuts down the store.
	// Idempotent - safe to call multiple times.
	// After Close(), all other operations return errors.
	Close() error

	// HealthCheck verifies the store is operational.
	HealthCheck() error
}

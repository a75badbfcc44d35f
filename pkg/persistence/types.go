package persistence

import "errors"

// Record keys, shared by every backend. Backends may add their own namespace
// prefix in front of these.
const (
	KeyClaimDraft     = "draft:claim"
	KeyRailsDraft     = "draft:rails"
	KeyReceipt        = "receipt:latest"
	KeyWalletIdentity = "wallet:identity"
	KeySchemaVersion  = "metadata:schema_version"

	CurrentSchemaVersion = "v1"
)

var ErrClosed = errors.New("persistence layer is closed")

package attestation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verifywire/verifywire-go/pkg/canonical"
	"github.com/verifywire/verifywire-go/pkg/normalize"
	"github.com/verifywire/verifywire-go/pkg/types"
)

// PayloadFileName is "<shortCode>-v1.json", or "rails-v1.json" when the code
// is not a valid short code.
func PayloadFileName(shortCode string) string {
	return fileStem(shortCode, "rails") + "-v1.json"
}

// ReceiptFileName is "<shortCode>-receipt.json", or "verifywire-receipt.json"
// when the code is not a valid short code.
func ReceiptFileName(shortCode string) string {
	return fileStem(shortCode, "verifywire") + "-receipt.json"
}

// fileStem keeps stored short codes from naming paths outside the export dir.
func fileStem(shortCode, fallback string) string {
	code := normalize.NormalizeShortCode(shortCode)
	if !normalize.IsValidShortCode(code) {
		return fallback
	}
	return code
}

// ExportPayload writes the pretty canonical payload into dir and returns the
// file path.
func ExportPayload(dir string, payload *types.AttestationPayload) (string, error) {
	if payload == nil {
		return "", fmt.Errorf("payload cannot be nil")
	}
	data, err := canonical.MarshalIndent(payload)
	if err != nil {
		return "", fmt.Errorf("failed to format payload: %w", err)
	}
	return writeExport(dir, PayloadFileName(payload.Organization.ShortCode), data)
}

// ExportReceipt writes the receipt as indented JSON into dir and returns the
// file path.
func ExportReceipt(dir string, receipt *types.SignedAttestation) (string, error) {
	if receipt == nil {
		return "", fmt.Errorf("receipt cannot be nil")
	}
	data, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal receipt: %w", err)
	}
	return writeExport(dir, ReceiptFileName(receipt.OrganizationShortCode), data)
}

func writeExport(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

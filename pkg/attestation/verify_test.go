package attestation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verifywire/verifywire-go/pkg/types"
)

func signedReceipt(t *testing.T) (*harness, *types.SignedAttestation) {
	t.Helper()
	h := newHarness(t)
	h.seed(t)
	receipt, err := h.publisher.SignAndPublish(context.Background(), h.readyState())
	require.NoError(t, err)
	return h, receipt
}

func TestRecoverSigner(t *testing.T) {
	h := newHarness(t)
	sig, err := h.wallet.PersonalSign(context.Background(), "hello", h.wallet.Address())
	require.NoError(t, err)

	addr, err := RecoverSigner("hello", sig)
	require.NoError(t, err)
	assert.Equal(t, h.wallet.Address(), addr)

	addr, err = RecoverSigner("hello!", sig)
	require.NoError(t, err)
	assert.NotEqual(t, h.wallet.Address(), addr)

	_, err = RecoverSigner("hello", sig[:64])
	assert.Error(t, err)
}

func TestVerifyReceipt_DetectsTampering(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *types.SignedAttestation)
	}{
		{name: "payload edited", mutate: func(r *types.SignedAttestation) { r.Payload.Rails.Wire.Account = "999" }},
		{name: "cid edited", mutate: func(r *types.SignedAttestation) { r.CID = "bafkreiother" }},
		{name: "time edited", mutate: func(r *types.SignedAttestation) { r.SignedAt++ }},
		{name: "signer edited", mutate: func(r *types.SignedAttestation) {
			r.SignerAddress = common.HexToAddress("0x3333333333333333333333333333333333333333")
		}},
		{name: "signature truncated", mutate: func(r *types.SignedAttestation) { r.Signature = r.Signature[:10] }},
		{name: "payload missing", mutate: func(r *types.SignedAttestation) { r.Payload = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, receipt := signedReceipt(t)
			tt.mutate(receipt)
			assert.Error(t, VerifyReceipt(receipt))
		})
	}
}

func TestExport(t *testing.T) {
	_, receipt := signedReceipt(t)
	dir := filepath.Join(t.TempDir(), "out")

	payloadPath, err := ExportPayload(dir, receipt.Payload)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "boa-v1.json"), payloadPath)

	data, err := os.ReadFile(payloadPath)
	require.NoError(t, err)
	prepared, err := Prepare(receipt.Payload)
	require.NoError(t, err)
	assert.Equal(t, string(prepared.Pretty)+"\n", string(data))

	receiptPath, err := ExportReceipt(dir, receipt)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "boa-receipt.json"), receiptPath)

	data, err = os.ReadFile(receiptPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"orgShortCode": "boa"`)
	assert.Contains(t, string(data), `"status": "published"`)
}

func TestExportFileNames(t *testing.T) {
	tests := []struct {
		shortCode string
		payload   string
		receipt   string
	}{
		{shortCode: "", payload: "rails-v1.json", receipt: "verifywire-receipt.json"},
		{shortCode: "acme", payload: "acme-v1.json", receipt: "acme-receipt.json"},
		{shortCode: " ACME ", payload: "acme-v1.json", receipt: "acme-receipt.json"},
		{shortCode: "../../etc/passwd", payload: "rails-v1.json", receipt: "verifywire-receipt.json"},
		{shortCode: "a/b", payload: "rails-v1.json", receipt: "verifywire-receipt.json"},
		{shortCode: "..", payload: "rails-v1.json", receipt: "verifywire-receipt.json"},
	}

	for _, tt := range tests {
		t.Run(tt.shortCode, func(t *testing.T) {
			assert.Equal(t, tt.payload, PayloadFileName(tt.shortCode))
			assert.Equal(t, tt.receipt, ReceiptFileName(tt.shortCode))
		})
	}
}

func TestExportReceipt_StaysInsideDir(t *testing.T) {
	_, receipt := signedReceipt(t)
	receipt.OrganizationShortCode = "../escape"
	dir := filepath.Join(t.TempDir(), "out")

	path, err := ExportReceipt(dir, receipt)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "verifywire-receipt.json"), path)
}

package attestation

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/verifywire/verifywire-go/pkg/apperrors"
	"github.com/verifywire/verifywire-go/pkg/config"
	"github.com/verifywire/verifywire-go/pkg/contractCaller"
	"github.com/verifywire/verifywire-go/pkg/persistence"
	"github.com/verifywire/verifywire-go/pkg/types"
	"github.com/verifywire/verifywire-go/pkg/wallet"
	"go.uber.org/zap"
)

// Publisher signs the reviewed payload with the bank's wallet and publishes
// the rail commitments. Only one sign or publish runs at a time.
type Publisher struct {
	wallet   wallet.IWallet
	registry contractCaller.IContractCaller
	store    persistence.IDraftStore
	network  *config.NetworkConfig
	logger   *zap.Logger
	now      func() time.Time
	busy     atomic.Bool
}

// NewPublisher accepts a nil wallet (signing is refused) and a nil registry
// (receipts are kept with status registry_not_configured).
func NewPublisher(
	w wallet.IWallet,
	registry contractCaller.IContractCaller,
	store persistence.IDraftStore,
	network *config.NetworkConfig,
	logger *zap.Logger,
) *Publisher {
	return &Publisher{
		wallet:   w,
		registry: registry,
		store:    store,
		network:  network,
		logger:   logger,
		now:      time.Now,
	}
}

func (p *Publisher) networkName() string {
	return string(p.network.ChainName())
}

func (p *Publisher) registryReady() bool {
	return p.registry != nil && p.network.RegistryConfigured()
}

// Review loads the drafts and prepares them for signing.
func (p *Publisher) Review() (*Review, error) {
	claim, rails, err := p.loadDrafts()
	if err != nil {
		return nil, err
	}
	return BuildReview(claim, rails, p.now(), p.networkName())
}

func (p *Publisher) loadDrafts() (*types.ClaimDraft, *types.RailsDraft, error) {
	claim, err := p.store.LoadClaimDraft()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load claim draft: %w", err)
	}
	rails, err := p.store.LoadRailsDraft()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load rails draft: %w", err)
	}
	return claim, rails, nil
}

// CheckPreconditions refuses signing unless a rail is enabled and the wallet
// is available, connected, on the registry chain and a signer is stored.
func (p *Publisher) CheckPreconditions(rails *types.RailsDraft, st wallet.State) error {
	if !rails.AnyEnabled() {
		return apperrors.Input("Select at least one rail (Wires, ACH, or International) before publishing.", nil)
	}
	return p.checkWallet(st)
}

func (p *Publisher) checkWallet(st wallet.State) error {
	if p.wallet == nil || !st.Available {
		return apperrors.Network("No wallet is available.", nil).
			WithNextStep("Start a wallet and connect it with `vwire wallet connect`.")
	}
	if !st.Connected {
		return apperrors.Network("The wallet is not connected.", nil).
			WithNextStep("Reconnect with `vwire wallet connect`.")
	}
	if !st.OnChain(p.network.ChainID) {
		return apperrors.Network(
			fmt.Sprintf("The wallet is on chain %d, expected %s (%d).", st.ChainID, p.network.ChainName(), p.network.ChainID), nil).
			WithNextStep("Switch the wallet network, or reconnect to switch automatically.")
	}
	if st.StoredSigner == nil {
		return apperrors.Network("No signer address is stored.", nil).
			WithNextStep("Connect your wallet with `vwire wallet connect` before signing.")
	}
	return nil
}

func (p *Publisher) acquire() error {
	if !p.busy.CompareAndSwap(false, true) {
		return apperrors.ErrActionInProgress
	}
	return nil
}

func (p *Publisher) release() {
	p.busy.Store(false)
}

// SignAndPublish signs the current drafts and publishes the rail commitments.
//
// A failed publish does not undo the signature: the receipt is stored and
// returned together with a PublishPartial error. Without a configured
// registry the receipt is returned with a Configuration error.
func (p *Publisher) SignAndPublish(ctx context.Context, st wallet.State) (*types.SignedAttestation, error) {
	if err := p.acquire(); err != nil {
		return nil, err
	}
	defer p.release()

	claim, rails, err := p.loadDrafts()
	if err != nil {
		return nil, err
	}
	if err := p.CheckPreconditions(rails, st); err != nil {
		return nil, err
	}
	review, err := BuildReview(claim, rails, p.now(), p.networkName())
	if err != nil {
		return nil, err
	}

	signer := *st.StoredSigner
	signedAt := p.now().Unix()
	message := BuildSignedMessage(review.Organization.ShortCode, review.Commitment, signedAt, p.networkName())

	p.logger.Sugar().Infow("Requesting attestation signature",
		"shortCode", review.Organization.ShortCode,
		"hash", review.Commitment.Hex(),
		"signer", signer.Hex(),
	)

	signature, err := p.wallet.PersonalSign(ctx, message, signer)
	if err != nil {
		return nil, apperrors.Network("The wallet did not sign the attestation.", err).
			WithNextStep("Approve the signature request in your wallet and try again.")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	receipt := &types.SignedAttestation{
		Schema:                SchemaID,
		OrganizationShortCode: review.Organization.ShortCode,
		PayloadCommitment:     review.Commitment,
		Signature:             signature,
		SignerAddress:         signer,
		SignedMessage:         message,
		SignedAt:              signedAt,
		Payload:               review.Payload,
		CID:                   review.CID,
		Network:               p.networkName(),
	}

	return receipt, p.publish(ctx, receipt)
}

// Republish retries the on-chain publish for the stored receipt without
// signing again. An already published receipt is returned unchanged.
func (p *Publisher) Republish(ctx context.Context, st wallet.State) (*types.SignedAttestation, error) {
	if err := p.acquire(); err != nil {
		return nil, err
	}
	defer p.release()

	receipt, err := p.store.LoadReceipt()
	if err != nil {
		return nil, fmt.Errorf("failed to load receipt: %w", err)
	}
	if receipt == nil {
		return nil, apperrors.Input("No signed attestation found.", nil).
			WithNextStep("Review and sign with `vwire sign` first.")
	}
	if receipt.Published() {
		return receipt, nil
	}
	if receipt.Payload == nil {
		return nil, apperrors.Input("The stored receipt has no payload to publish.", nil).
			WithNextStep("Sign again with `vwire sign`.")
	}
	if err := p.checkWallet(st); err != nil {
		return nil, err
	}
	// The registry records the transaction sender as owner.
	if *st.StoredSigner != receipt.SignerAddress {
		return nil, apperrors.Network(
			fmt.Sprintf("The connected wallet %s did not sign this attestation (signer %s).",
				st.StoredSigner.Hex(), receipt.SignerAddress.Hex()), nil).
			WithNextStep("Switch the wallet to the signing account and reconnect with `vwire wallet connect`, or sign again with `vwire sign`.")
	}

	return receipt, p.publish(ctx, receipt)
}

// publish submits the rail commitments, records the outcome on receipt and
// stores it.
func (p *Publisher) publish(ctx context.Context, receipt *types.SignedAttestation) error {
	var publishErr error

	if !p.registryReady() {
		p.logger.Sugar().Warnw("Registry not configured, skipping on-chain publish", "shortCode", receipt.OrganizationShortCode)
		receipt.Status = types.PublishStatusRegistryNotConfigured
		publishErr = apperrors.Configuration("Signed, but the registry is not configured so nothing was published.", apperrors.ErrRegistryNotConfigured).
			WithNextStep("Set VWIRE_REGISTRY_ADDRESS, then run `vwire republish`.")
	} else {
		txReceipt, err := p.registry.PublishRails(ctx, receipt.OrganizationShortCode, RailCommitments(receipt.Payload))
		if err != nil {
			p.logger.Sugar().Errorw("Publish failed after signing", "shortCode", receipt.OrganizationShortCode, "error", err)
			receipt.Status = types.PublishStatusFailed
			publishErr = apperrors.PublishPartial("Signed, but publishing to the registry failed.", err).
				WithNextStep("Run `vwire republish` once the registry is reachable.")
		} else {
			txHash := txReceipt.TxHash
			receipt.TransactionRef = &txHash
			receipt.Status = types.PublishStatusPublished
			p.logger.Sugar().Infow("Attestation published",
				"shortCode", receipt.OrganizationShortCode,
				"txHash", txHash.Hex(),
			)
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := p.store.SaveReceipt(receipt); err != nil {
		return fmt.Errorf("failed to save receipt: %w", err)
	}
	return publishErr
}

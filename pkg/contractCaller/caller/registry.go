package caller

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/verifywire/verifywire-go/pkg/commitment"
	"github.com/verifywire/verifywire-go/pkg/normalize"
	"github.com/verifywire/verifywire-go/pkg/types"
)

func (cc *ContractCaller) GetRecord(ctx context.Context, shortCode string) (*types.OnChainRecord, error) {
	code := normalize.NormalizeShortCode(shortCode)

	rec, err := cc.registry.GetRecord(&bind.CallOpts{Context: ctx}, code)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get registry record for %q", code)
	}

	return &types.OnChainRecord{
		Owner:     rec.Owner,
		UpdatedAt: rec.UpdatedAt,
		Version:   rec.Version,
		RailCommitments: types.RailCommitments{
			WireRouting: commitment.FieldCommitment(rec.WireRouting),
			WireAccount: commitment.FieldCommitment(rec.WireAccount),
			AchRouting:  commitment.FieldCommitment(rec.AchRouting),
			AchAccount:  commitment.FieldCommitment(rec.AchAccount),
			IBAN:        commitment.FieldCommitment(rec.Iban),
			BIC:         commitment.FieldCommitment(rec.Bic),
		},
	}, nil
}

func (cc *ContractCaller) PublishRails(
	ctx context.Context,
	shortCode string,
	commitments types.RailCommitments,
) (*ethereumTypes.Receipt, error) {
	code := normalize.NormalizeShortCode(shortCode)

	txOpts, err := cc.transactOpts(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := cc.registry.Publish(txOpts, code,
		commitments.WireRouting,
		commitments.WireAccount,
		commitments.AchRouting,
		commitments.AchAccount,
		commitments.IBAN,
		commitments.BIC,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create publish transaction for %q", code)
	}

	cc.logger.Sugar().Infow("Publishing rail commitments",
		"shortCode", code,
		"hasUS", commitments.HasUS(),
		"hasInternational", commitments.HasInternational(),
	)

	return cc.sendAndConfirm(ctx, tx, "publish")
}

package usecases

import (
	"context"
	"time"

	"coursegate/internal/shared/errors"
	"coursegate/internal/shared/logger"
)

// AccessChecker answers whether a user may view content gated by a tag.
type AccessChecker interface {
	Execute(ctx context.Context, userID, accessTag string) (bool, error)
}

// TokenSigner mints a signed playback credential for one asset.
type TokenSigner interface {
	Sign(assetID string) (token string, expiresAt time.Time, err error)
}

type IssuePlaybackTokenCommand struct {
	UserID    string
	AssetID   string
	AccessTag string
}

type IssuePlaybackTokenResult struct {
	Token     string
	ExpiresAt time.Time
}

// IssuePlaybackTokenUseCase runs the access decision and, only on success,
// signs a bounded-lifetime playback credential. The signer is never reached
// without a passing access check.
type IssuePlaybackTokenUseCase struct {
	access AccessChecker
	signer TokenSigner
	logger logger.Interface
}

func NewIssuePlaybackTokenUseCase(access AccessChecker, signer TokenSigner, logger logger.Interface) *IssuePlaybackTokenUseCase {
	return &IssuePlaybackTokenUseCase{
		access: access,
		signer: signer,
		logger: logger,
	}
}

func (uc *IssuePlaybackTokenUseCase) Execute(ctx context.Context, cmd IssuePlaybackTokenCommand) (*IssuePlaybackTokenResult, error) {
	if cmd.AssetID == "" {
		return nil, errors.NewValidationError("asset id is required")
	}
	if cmd.AccessTag == "" {
		return nil, errors.NewValidationError("access tag is required")
	}

	allowed, err := uc.access.Execute(ctx, cmd.UserID, cmd.AccessTag)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errors.NewForbiddenError("no active entitlement for this content")
	}

	token, expiresAt, err := uc.signer.Sign(cmd.AssetID)
	if err != nil {
		if errors.IsConfigurationError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to sign playback token",
			"asset_id", cmd.AssetID, "error", err)
		return nil, errors.NewInternalError("failed to sign playback token")
	}

	return &IssuePlaybackTokenResult{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

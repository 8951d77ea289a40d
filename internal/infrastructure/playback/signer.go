package playback

import (
	"crypto/rsa"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"coursegate/internal/shared/config"
	"coursegate/internal/shared/errors"
	"coursegate/internal/shared/logger"
)

const defaultTokenTTL = time.Hour

// Signer mints short-lived RS256 tokens that the video delivery platform
// verifies before serving an asset. The private key is parsed once at
// construction; a misconfigured key surfaces on every Sign call rather than
// crashing startup, so the rest of the service stays usable.
type Signer struct {
	keyID      string
	privateKey *rsa.PrivateKey
	ttl        time.Duration
	now        func() time.Time
}

func NewSigner(cfg *config.PlaybackConfig, log logger.Interface) *Signer {
	s := &Signer{
		keyID: cfg.SigningKeyID,
		ttl:   defaultTokenTTL,
		now:   time.Now,
	}
	if cfg.TokenTTL > 0 {
		s.ttl = time.Duration(cfg.TokenTTL) * time.Minute
	}
	if cfg.PrivateKeyPEM != "" {
		key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.PrivateKeyPEM))
		if err != nil {
			// A corrupted key is an operator error, not an absent feature;
			// make it visible instead of looking like an unset key.
			log.Errorw("playback signing key is unparseable, token issuance disabled", "error", err)
		}
		s.privateKey = key
	}
	return s
}

// Configured reports whether a usable signing key is loaded.
func (s *Signer) Configured() bool {
	return s.privateKey != nil && s.keyID != ""
}

// Sign issues a playback token for one asset. The token names the asset as
// its subject so it cannot be replayed against a different asset, and expires
// after the configured TTL.
func (s *Signer) Sign(assetID string) (string, time.Time, error) {
	if !s.Configured() {
		return "", time.Time{}, errors.NewConfigurationError("playback signing key is not configured")
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   assetID,
		Issuer:    s.keyID,
		Audience:  jwt.ClaimStrings{"v"},
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = s.keyID

	signed, err := token.SignedString(s.privateKey)
	if err != nil {
		return "", time.Time{}, errors.NewInternalError("failed to sign playback token")
	}
	return signed, expiresAt, nil
}

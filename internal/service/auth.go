package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ledgermart/ledgermart/internal/dto"
	"github.com/ledgermart/ledgermart/internal/ledger"
)

// AuthService mints wallet-bearer tokens. In production deployments tokens
// come from the wallet-connect flow; the dev mint maps an arbitrary key to
// its wallet address so local clients can act as any wallet.
type AuthService struct {
	jwtSecret []byte
	jwtExpiry time.Duration
	devTokens bool
}

func NewAuthService(jwtSecret string, jwtExpiry time.Duration, devTokens bool) *AuthService {
	return &AuthService{jwtSecret: []byte(jwtSecret), jwtExpiry: jwtExpiry, devTokens: devTokens}
}

func (s *AuthService) DevToken(req dto.DevTokenRequest) (*dto.DevTokenResponse, error) {
	if !s.devTokens {
		return nil, ErrDevTokensDisabled
	}
	wallet := ledger.WalletAddress(req.WalletKey)
	token, err := s.generateToken(wallet)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &dto.DevTokenResponse{Token: token, Wallet: wallet.String()}, nil
}

func (s *AuthService) generateToken(wallet ledger.Address) (string, error) {
	claims := jwt.MapClaims{
		"sub": wallet.String(),
		"exp": time.Now().Add(s.jwtExpiry).Unix(),
		"iat": time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

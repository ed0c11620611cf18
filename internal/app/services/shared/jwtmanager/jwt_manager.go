package jwtmanager

import (
	"fmt"
	"time"

	"spendin-service/internal/app/config"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// JWTManager signs and verifies HS256 session tokens carrying the payer's
// wallet address. Session creation itself (wallet signature verification)
// happens outside this service.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	log    *zap.Logger
}

func NewJWTManager(internalConfig *config.InternalConfig, logger *zap.Logger) *JWTManager {
	return &JWTManager{
		secret: []byte(internalConfig.JWT.Secret),
		ttl:    time.Duration(internalConfig.JWT.ExpTimeInHour) * time.Hour,
		log:    logger,
	}
}

// CreateSessionToken issues a token bound to walletAddress.
func (m *JWTManager) CreateSessionToken(walletAddress string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"wallet": walletAddress,
		"exp":    time.Now().Add(m.ttl).Unix(),
		"iat":    time.Now().Unix(),
	})
	return token.SignedString(m.secret)
}

// VerifySessionToken validates the token and returns the wallet claim.
func (m *JWTManager) VerifySessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}

	wallet, _ := claims["wallet"].(string)
	if wallet == "" {
		return "", fmt.Errorf("token missing wallet claim")
	}
	return wallet, nil
}

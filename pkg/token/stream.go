// Package token 提供了用于生成和验证 JSON Web Tokens (JWT) 的功能。
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StreamTokenManager 负责为第三方实时音视频 SDK 签发短期令牌。
// 签名密钥来自配置，不允许在代码中内嵌常量。
type StreamTokenManager struct {
	apiSecret []byte
	tokenTTL  time.Duration
}

// StreamClaims 是实时音视频 SDK 约定的令牌负载：{user_id, iat, exp}。
type StreamClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// NewStreamTokenManager 创建一个新的 StreamTokenManager 实例。
// ttlHours 为 0 时默认 24 小时。
func NewStreamTokenManager(apiSecret string, ttlHours int) (*StreamTokenManager, error) {
	if apiSecret == "" {
		return nil, errors.New("stream api secret is not configured")
	}
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &StreamTokenManager{
		apiSecret: []byte(apiSecret),
		tokenTTL:  time.Duration(ttlHours) * time.Hour,
	}, nil
}

// Generate 为指定用户签发一个 HS256 令牌。
func (m *StreamTokenManager) Generate(userID string) (string, error) {
	now := time.Now()
	claims := StreamClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.apiSecret)
}

// Verify 解析并校验一个实时音视频令牌，主要用于测试与调试。
func (m *StreamTokenManager) Verify(tokenString string) (*StreamClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &StreamClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.apiSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*StreamClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// 未指定 ttl 时的默认有效期；登录/注册流程显式传 1 小时
const defaultTTL = 24 * time.Hour

// TokenService 签发与校验自包含的 JWT 访问令牌
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
}

// NewTokenService 算法与密钥为进程级配置，不识别的算法直接失败
func NewTokenService(secret, algorithm string) (*TokenService, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	return &TokenService{secret: []byte(secret), method: method}, nil
}

// Issue 签发携带 sub 与绝对过期时间的令牌；ttl 为零用默认一天
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = defaultTTL
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// Verify 校验签名与有效期并返回声明；过期与无效分别报错
func (s *TokenService) Verify(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

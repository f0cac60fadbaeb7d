package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"grocery-api/internal/domain/user"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrWrongPurpose = errors.New("token issued for a different purpose")
)

// Token purposes. Access tokens authenticate API calls; custom tokens are
// handed out after phone verification to bootstrap a session; reset
// tokens authorize a single password reset within a short window.
const (
	PurposeAccess        = "access"
	PurposeCustom        = "custom"
	PurposePasswordReset = "password_reset"
)

// ResetTokenDuration bounds how long a password reset token stays valid.
const ResetTokenDuration = 5 * time.Minute

type Claims struct {
	UserID  uuid.UUID `json:"user_id"`
	Role    string    `json:"role"`
	Phone   string    `json:"phone,omitempty"`
	Purpose string    `json:"purpose"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey           []byte
	accessTokenDuration time.Duration
}

func NewService(secretKey string, accessTokenDuration time.Duration) *Service {
	return &Service{
		secretKey:           []byte(secretKey),
		accessTokenDuration: accessTokenDuration,
	}
}

func (s *Service) GenerateAccessToken(userID uuid.UUID, role user.Role) (string, error) {
	return s.sign(Claims{
		UserID:  userID,
		Role:    role.String(),
		Purpose: PurposeAccess,
	}, s.accessTokenDuration)
}

// GenerateCustomToken is issued after successful registration
// verification; the client exchanges it for a session like an access
// token, so it carries the same claims under a distinct purpose.
func (s *Service) GenerateCustomToken(userID uuid.UUID, role user.Role, phone string) (string, error) {
	return s.sign(Claims{
		UserID:  userID,
		Role:    role.String(),
		Phone:   phone,
		Purpose: PurposeCustom,
	}, s.accessTokenDuration)
}

// GenerateResetToken is valid for five minutes and single use; the jti
// is tracked server-side so it cannot be replayed.
func (s *Service) GenerateResetToken(phone string) (token string, jti string, err error) {
	jti = uuid.NewString()
	token, err = s.sign(Claims{
		Phone:   phone,
		Purpose: PurposePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			ID: jti,
		},
	}, ResetTokenDuration)
	return token, jti, err
}

func (s *Service) sign(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateTokenWithPurpose additionally pins the purpose claim.
func (s *Service) ValidateTokenWithPurpose(tokenString, purpose string) (*Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}

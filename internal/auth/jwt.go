package auth

import (
	"errors"
	"time"

	"github.com/ThomasRolland/comptalib/internal/config"

	"github.com/dgrijalva/jwt-go"
)

// ErrInvalidToken covers every verification failure: malformed token,
// bad signature, expired claims. Callers cannot distinguish them.
var ErrInvalidToken = errors.New("oauth_token is invalid")

// TokenExpiry is how long an issued token stays valid.
const TokenExpiry = 48 * time.Hour

type Claims struct {
	UserID int `json:"id_user"`
	jwt.StandardClaims
}

// TokenService issues and verifies the signed identity tokens carried in
// the oauth_token header.
type TokenService struct {
	Config *config.Config
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{Config: cfg}
}

// Generate signs a token binding the given user id, valid for TokenExpiry.
func (s *TokenService) Generate(userID int) (string, error) {
	expirationTime := time.Now().Add(TokenExpiry)
	claims := &Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Config.JwtKey)
}

// Verify parses the token and returns the user id it asserts.
func (s *TokenService) Verify(tokenStr string) (int, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.Config.JwtKey, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

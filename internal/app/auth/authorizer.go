package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kishore-R45/HealthMate-AI-Backend/internal/domain/user"
)

var (
	ErrAccessTokenInvalid = errors.New("invalid access token")
	ErrAccessTokenExpired = fmt.Errorf("%w: token expired", ErrAccessTokenInvalid)
)

type Authorizer struct {
	Cost             int
	Secret           string
	AccessTokenTTL   time.Duration
	AuthorizationTTL time.Duration
}

func (a *Authorizer) Authorize(u *user.User, password string, dev user.Device) (*user.Authorization, error) {
	hashBytes, err := hex.DecodeString(u.PasswordHash)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(hashBytes, []byte(password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	authorization := &user.Authorization{
		ID:         uuid.NewString(),
		Secret:     a.generateSecret(),
		CreatedAt:  now,
		ValidUntil: now.Add(a.AuthorizationTTL),
		Device:     dev,
	}
	return authorization, nil
}

func (a *Authorizer) Hash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.Cost)
	if err != nil {
		panic(err)
	}
	return hex.EncodeToString(hash)
}

func (a *Authorizer) generateSecret() string {
	var bytes [16]byte
	if n, err := rand.Read(bytes[:]); n != len(bytes) || err != nil {
		panic("failed to generate authorization secret")
	}

	return hex.EncodeToString(bytes[:])
}

func (a *Authorizer) GenerateAccessToken(u *user.User, auth *user.Authorization) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"jti": auth.ID,
		"sub": u.UserID,
		"exp": now.Add(a.AccessTokenTTL).Unix(),
		"iat": now.Unix(),
	})
	return token.SignedString([]byte(a.Secret))
}

type AccessTokenData struct {
	Authorization string
	UserID        string
}

func (a *Authorizer) ValidateAccessToken(accessToken string) (*AccessTokenData, error) {
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(accessToken, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(a.Secret), nil
	}); err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrAccessTokenExpired
		}
		return nil, ErrAccessTokenInvalid
	}

	jti, ok := claims["jti"].(string)
	sub, subOK := claims["sub"].(string)
	if !ok || !subOK {
		return nil, ErrAccessTokenInvalid
	}

	return &AccessTokenData{
		Authorization: jti,
		UserID:        sub,
	}, nil
}

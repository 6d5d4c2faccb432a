package jwt

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/staff"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies and mints the engine's JWTs. Identity is established
// elsewhere; this service only encodes and reads the claims the engine
// cares about (staff_id, organization_id, role).
type Service interface {
	GenerateAccessToken(staffID string, email string, organizationID string, role staff.Role) (token string, expiresAt int64, err error)
	GenerateStreamToken(staffID string, organizationID string) (token string, expiresIn int, err error)
	ValidateStreamToken(tokenString string) (staffID string, organizationID string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(staffID string, email string, organizationID string, role staff.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"staff_id":        staffID,
		"email":           email,
		"organization_id": organizationID,
		"role":            string(role),
		"type":            "access",
		"exp":             expiresAt,
	})
	return tokenString, expiresAt, err
}

// GenerateStreamToken mints a short-lived token for the notification stream.
// EventSource cannot set an Authorization header, so the stream endpoint
// accepts this token as a query parameter instead.
func (j *JWTService) GenerateStreamToken(staffID string, organizationID string) (token string, expiresIn int, err error) {
	expiresIn = 300
	expiresAt := time.Now().Add(5 * time.Minute).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"staff_id":        staffID,
		"organization_id": organizationID,
		"type":            "stream",
		"exp":             expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateStreamToken decodes a stream token and returns its subject.
func (j *JWTService) ValidateStreamToken(tokenString string) (staffID string, organizationID string, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "stream" {
		return "", "", jwt.ErrInvalidJWT()
	}

	staffID, ok = stringClaim(token, "staff_id")
	if !ok {
		return "", "", jwt.ErrInvalidJWT()
	}
	organizationID, ok = stringClaim(token, "organization_id")
	if !ok {
		return "", "", jwt.ErrInvalidJWT()
	}

	return staffID, organizationID, nil
}

func stringClaim(token jwt.Token, name string) (string, bool) {
	val, ok := token.Get(name)
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

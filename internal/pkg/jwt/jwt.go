package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const TokenTypeAccess = "access"

type Service interface {
	GenerateAccessToken(userID string, businessID string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

// GenerateAccessToken signs a business-scoped access token. Login itself lives
// in the identity service; this is used by tooling and tests.
func (j *JWTService) GenerateAccessToken(userID string, businessID string, role user.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":     userID,
		"business_id": businessID,
		"role":        string(role),
		"type":        TokenTypeAccess,
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// PrincipalFromContext reads the verified claims placed on the context by
// jwtauth.Verifier.
func PrincipalFromContext(ctx context.Context) (user.Principal, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.Principal{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	businessID, ok := claims["business_id"].(string)
	if !ok || businessID == "" {
		return user.Principal{}, auth.ErrBusinessIDRequired
	}

	userID, _ := claims["user_id"].(string)
	roleStr, _ := claims["role"].(string)

	return user.Principal{
		UserID:     userID,
		BusinessID: businessID,
		Role:       user.Role(roleStr),
	}, nil
}

// ContextWithPrincipal places an unsigned token carrying p's claims on ctx,
// the same shape jwtauth.Verifier leaves behind. Used by background callers
// and tests that run services outside an HTTP request.
func ContextWithPrincipal(ctx context.Context, p user.Principal) context.Context {
	token := jwt.New()
	_ = token.Set("user_id", p.UserID)
	_ = token.Set("business_id", p.BusinessID)
	_ = token.Set("role", string(p.Role))
	_ = token.Set("type", TokenTypeAccess)
	return jwtauth.NewContext(ctx, token, nil)
}

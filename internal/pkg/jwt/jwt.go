package jwt

import (
	"context"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/peoplecore/hr-portal-go/internal/domain/staff"
)

type Service interface {
	GenerateAccessToken(employeeID string, role staff.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	ActorFromContext(ctx context.Context) (staff.Actor, error)
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

func (j *JWTService) GenerateAccessToken(employeeID string, role staff.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"role":        string(role),
		"type":        "access",
		"exp":         expiresAt,
	})
	return tokenString, expiresAt, err
}

// ActorFromContext extracts the authenticated actor from claims placed
// in the context by jwtauth.Verifier.
func (j *JWTService) ActorFromContext(ctx context.Context) (staff.Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return staff.Actor{}, err
	}

	tokenType, _ := claims["type"].(string)
	if tokenType != "access" {
		return staff.Actor{}, jwt.ErrInvalidJWT()
	}

	employeeID, _ := claims["employee_id"].(string)
	roleStr, _ := claims["role"].(string)
	if employeeID == "" || !staff.ValidRole(roleStr) {
		return staff.Actor{}, jwt.ErrInvalidJWT()
	}

	return staff.Actor{EmployeeID: employeeID, Role: staff.Role(roleStr)}, nil
}

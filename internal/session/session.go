package session

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleClient = "CLIENT"
	RoleSeller = "SELLER"
)

var (
	ErrEmptyToken = errors.New("access token is empty")
	ErrNoUserID   = errors.New("token carries no user id")
)

// Session is the authenticated-session object handed to every API-calling
// component. It is built once by this package, never reconstructed ad hoc
// from raw tokens at call sites.
type Session struct {
	UserID string
	Email  string
	Role   string
	Token  string
}

type tokenClaims struct {
	UserID string `json:"userID"`
	ID     string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// FromToken decodes the bearer token's claims without verifying the
// signature. The backend is the only party that validates tokens; the client
// just reads the claims to know which user to route requests for. Some
// tokens carry the user id as "userID", older ones as "id".
func FromToken(token string) (*Session, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}

	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, err
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.ID
	}
	if userID == "" {
		return nil, ErrNoUserID
	}

	return &Session{
		UserID: userID,
		Email:  claims.Email,
		Role:   claims.Role,
		Token:  token,
	}, nil
}

func (s *Session) IsClient() bool {
	return s.Role == RoleClient
}

func (s *Session) IsSeller() bool {
	return s.Role == RoleSeller
}

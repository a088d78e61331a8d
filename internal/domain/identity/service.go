package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// TokenIssuer signs an access token carrying the email claim.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

// ErrUnknownUser is returned by IssueToken for emails with no user
// record; the handler maps it to the empty-token 403 response.
var ErrUnknownUser = errors.New("unknown user")

type Service struct {
	users  Repository
	issuer TokenIssuer
}

func NewService(users Repository, issuer TokenIssuer) *Service {
	return &Service{users: users, issuer: issuer}
}

func (s *Service) Register(ctx context.Context, u *User) error {
	return s.users.Upsert(ctx, u)
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.users.List(ctx)
}

// IsAdmin satisfies the role gate's checker interface: a live lookup,
// never cached, so revocation takes effect on the next request.
func (s *Service) IsAdmin(ctx context.Context, email string) (bool, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.IsAdmin(), nil
}

func (s *Service) GrantAdmin(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.users.GrantAdmin(ctx, id)
}

// IssueToken signs a token for the email if a user with it exists.
func (s *Service) IssueToken(ctx context.Context, email string) (string, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return "", ErrUnknownUser
	}
	if err != nil {
		return "", err
	}
	return s.issuer.Issue(email)
}

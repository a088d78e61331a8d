package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockUserRepo struct {
	users map[string]*User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*User)}
}

func (m *mockUserRepo) Upsert(_ context.Context, u *User) error {
	if existing, ok := m.users[u.Email]; ok {
		existing.Name = u.Name
		u.ID = existing.ID
		u.Role = existing.Role
		return nil
	}
	u.ID = uuid.New()
	m.users[u.Email] = u
	return nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) List(_ context.Context) ([]*User, error) {
	var users []*User
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

func (m *mockUserRepo) GrantAdmin(_ context.Context, id uuid.UUID) (int64, error) {
	for _, u := range m.users {
		if u.ID == id {
			u.Role = RoleAdmin
			return 1, nil
		}
	}
	return 0, nil
}

type stubIssuer struct{}

func (stubIssuer) Issue(email string) (string, error) {
	return "token-for-" + email, nil
}

func newTestService() (*Service, *mockUserRepo) {
	repo := newMockUserRepo()
	return NewService(repo, stubIssuer{}), repo
}

// -- Tests --

func TestRegister_NewUser(t *testing.T) {
	svc, repo := newTestService()

	u := &User{Name: "Jane", Email: "jane@x.com"}
	if err := svc.Register(context.Background(), u); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if u.ID == uuid.Nil {
		t.Error("expected id assigned")
	}
	if len(repo.users) != 1 {
		t.Errorf("expected 1 user, got %d", len(repo.users))
	}
}

func TestRegister_ExistingKeepsRole(t *testing.T) {
	svc, repo := newTestService()

	repo.users["jane@x.com"] = &User{ID: uuid.New(), Name: "Jane", Email: "jane@x.com", Role: RoleAdmin}

	u := &User{Name: "Jane D.", Email: "jane@x.com"}
	if err := svc.Register(context.Background(), u); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if repo.users["jane@x.com"].Role != RoleAdmin {
		t.Error("re-registration must not strip the admin role")
	}
	if repo.users["jane@x.com"].Name != "Jane D." {
		t.Error("expected name refreshed on upsert")
	}
}

func TestIsAdmin(t *testing.T) {
	svc, repo := newTestService()
	repo.users["admin@x.com"] = &User{ID: uuid.New(), Email: "admin@x.com", Role: RoleAdmin}
	repo.users["patient@x.com"] = &User{ID: uuid.New(), Email: "patient@x.com"}

	cases := []struct {
		email string
		want  bool
	}{
		{"admin@x.com", true},
		{"patient@x.com", false},
		{"ghost@x.com", false},
	}
	for _, tc := range cases {
		got, err := svc.IsAdmin(context.Background(), tc.email)
		if err != nil {
			t.Fatalf("IsAdmin(%s) error: %v", tc.email, err)
		}
		if got != tc.want {
			t.Errorf("IsAdmin(%s) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestGrantAdmin(t *testing.T) {
	svc, repo := newTestService()
	u := &User{ID: uuid.New(), Email: "jane@x.com"}
	repo.users[u.Email] = u

	modified, err := svc.GrantAdmin(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GrantAdmin() error: %v", err)
	}
	if modified != 1 {
		t.Errorf("expected 1 row modified, got %d", modified)
	}
	if !u.IsAdmin() {
		t.Error("expected user promoted to admin")
	}
}

func TestGrantAdmin_UnknownID(t *testing.T) {
	svc, _ := newTestService()

	modified, err := svc.GrantAdmin(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GrantAdmin() error: %v", err)
	}
	if modified != 0 {
		t.Errorf("expected 0 rows modified, got %d", modified)
	}
}

func TestIssueToken_KnownUser(t *testing.T) {
	svc, repo := newTestService()
	repo.users["jane@x.com"] = &User{ID: uuid.New(), Email: "jane@x.com"}

	token, err := svc.IssueToken(context.Background(), "jane@x.com")
	if err != nil {
		t.Fatalf("IssueToken() error: %v", err)
	}
	if token != "token-for-jane@x.com" {
		t.Errorf("unexpected token %q", token)
	}
}

func TestIssueToken_UnknownUser(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.IssueToken(context.Background(), "ghost@x.com")
	if !errors.Is(err, ErrUnknownUser) {
		t.Errorf("expected ErrUnknownUser, got %v", err)
	}
}

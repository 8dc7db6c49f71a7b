package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"vitrin/internal/core/apperror"
)

type fakeUserRepo struct {
	users  map[string]*User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *User) error {
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, userID string) (*User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, apperror.NewNotFound("user", userID)
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, tenantID, email string) (*User, error) {
	for _, u := range f.users {
		if u.TenantID == tenantID && strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", email)
}

func (f *fakeUserRepo) Update(_ context.Context, u *User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) ListByTenant(_ context.Context, tenantID string) ([]*User, error) {
	var out []*User
	for _, u := range f.users {
		if u.TenantID == tenantID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Exists(ctx context.Context, tenantID, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, tenantID, email)
	return err == nil, nil
}

func newTestService() (*Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	cfg := DefaultServiceConfig()
	cfg.MaxLoginAttempts = 3
	svc := NewService(repo, NewJWTService(DefaultJWTConfig("test-secret")), cfg)
	return svc, repo
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	user, err := svc.Register(ctx, "t1", RegisterRequest{
		Email:    "Admin@Example.com",
		Password: "correct-horse",
		Roles:    []string{"TenantAdmin"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if user.Email != "admin@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash == "correct-horse" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}

	token, got, err := svc.Login(ctx, "t1", Credentials{Email: "admin@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != user.ID {
		t.Errorf("logged in as %s, want %s", got.ID, user.ID)
	}
	if token.AccessToken == "" || token.TokenType != "Bearer" {
		t.Errorf("bad token: %+v", token)
	}

	// Issued token round-trips through validation.
	uc, err := svc.jwtService.ValidateToken(token.AccessToken)
	if err != nil {
		t.Fatal(err)
	}
	if uc.UserID != user.ID || uc.TenantID != "t1" {
		t.Errorf("claims = %+v", uc)
	}
	if len(uc.Roles) != 1 || uc.Roles[0] != "TenantAdmin" {
		t.Errorf("roles = %v", uc.Roles)
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	tests := []struct {
		name string
		req  RegisterRequest
		code string
	}{
		{"short password", RegisterRequest{Email: "a@b.c", Password: "short", Roles: []string{"TenantStaff"}}, apperror.CodeValidation},
		{"no roles", RegisterRequest{Email: "a@b.c", Password: "long-enough"}, apperror.CodeValidation},
		{"unknown role", RegisterRequest{Email: "a@b.c", Password: "long-enough", Roles: []string{"Wizard"}}, apperror.CodeValidation},
		{"super admin in tenant", RegisterRequest{Email: "a@b.c", Password: "long-enough", Roles: []string{"SuperAdmin"}}, apperror.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, "t1", tt.req); !apperror.HasCode(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}

	t.Run("duplicate email", func(t *testing.T) {
		req := RegisterRequest{Email: "dup@example.com", Password: "long-enough", Roles: []string{"TenantStaff"}}
		if _, err := svc.Register(ctx, "t1", req); err != nil {
			t.Fatal(err)
		}
		if _, err := svc.Register(ctx, "t1", req); !apperror.HasCode(err, apperror.CodeConflict) {
			t.Errorf("got %v, want conflict", err)
		}
		// Same email under another tenant is fine.
		if _, err := svc.Register(ctx, "t2", req); err != nil {
			t.Errorf("same email in different tenant: %v", err)
		}
	})
}

func TestLoginLockout(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	user, err := svc.Register(ctx, "t1", RegisterRequest{
		Email:    "locked@example.com",
		Password: "correct-horse",
		Roles:    []string{"TenantStaff"},
	})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		_, _, err := svc.Login(ctx, "t1", Credentials{Email: user.Email, Password: "wrong"})
		if !apperror.HasCode(err, apperror.CodeUnauthorized) {
			t.Fatalf("attempt %d: got %v, want unauthorized", i, err)
		}
	}

	// Correct password no longer works while locked.
	_, _, err = svc.Login(ctx, "t1", Credentials{Email: user.Email, Password: "correct-horse"})
	if !apperror.HasCode(err, apperror.CodeForbidden) {
		t.Errorf("got %v, want forbidden while locked", err)
	}

	// Lock expires.
	past := time.Now().Add(-time.Minute)
	repo.users[user.ID].LockedUntil = &past
	if _, _, err := svc.Login(ctx, "t1", Credentials{Email: user.Email, Password: "correct-horse"}); err != nil {
		t.Errorf("login after lock expiry: %v", err)
	}
	if repo.users[user.ID].FailedLoginAttempts != 0 {
		t.Error("failed attempts not reset after successful login")
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	other := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := issuer.GenerateAccessToken("u1", "t1", "a@b.c", []string{"TenantStaff"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.ValidateToken(token); err == nil {
		t.Error("token signed with another secret accepted")
	}
	if _, err := issuer.ValidateToken(token + "x"); err == nil {
		t.Error("tampered token accepted")
	}
}

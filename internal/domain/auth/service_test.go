package auth

import (
	"context"
	"testing"
	"time"

	"billbook/internal/core/apperror"
	"billbook/internal/core/id"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	users map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*User)}
}

func (r *fakeRepo) Create(ctx context.Context, user *User) error {
	r.users[user.Username] = user
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	for _, u := range r.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", userID.String())
}

func (r *fakeRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, apperror.NewNotFound("user", username)
	}
	return u, nil
}

func (r *fakeRepo) Update(ctx context.Context, user *User) error {
	r.users[user.Username] = user
	return nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret-key"))
	return NewService(repo, jwtSvc, fakeTxManager{}), repo
}

func TestService_RegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "admin", "correct horse", true)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.PasswordHash == "correct horse" {
		t.Fatal("password must be hashed")
	}

	session, err := svc.Login(ctx, Credentials{Username: "admin", Password: "correct horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.AccessToken == "" || session.TokenType != "Bearer" {
		t.Errorf("bad session: %+v", session)
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Error("token must not be pre-expired")
	}
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "admin", "correct horse", false); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(ctx, Credentials{Username: "admin", Password: "wrong"})
	wrongPass, _ := apperror.AsAppError(err)

	_, err = svc.Login(ctx, Credentials{Username: "nobody", Password: "wrong"})
	noUser, _ := apperror.AsAppError(err)

	if wrongPass == nil || noUser == nil {
		t.Fatal("expected unauthorized errors")
	}
	// Same message either way: no username enumeration.
	if wrongPass.Message != noUser.Message {
		t.Errorf("messages differ: %q vs %q", wrongPass.Message, noUser.Message)
	}
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "admin", "correct horse", false); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Register(ctx, "admin", "other password", false)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeDuplicate {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestService_Register_ShortPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), "admin", "short", false)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestJWTService_RoundTrip(t *testing.T) {
	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret-key"))

	user, err := NewUser("admin", "correct horse")
	if err != nil {
		t.Fatalf("new user: %v", err)
	}
	user.IsAdmin = true

	token, _, err := jwtSvc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	uc, err := jwtSvc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if uc.UserID != user.ID.String() || uc.Username != "admin" || !uc.IsAdmin {
		t.Errorf("user context = %+v", uc)
	}
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret-key"))
	other := NewJWTService(DefaultJWTConfig("another-secret"))

	user, err := NewUser("admin", "correct horse")
	if err != nil {
		t.Fatalf("new user: %v", err)
	}

	token, _, err := other.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := jwtSvc.ValidateToken(token); err == nil {
		t.Error("token signed with a different secret must be rejected")
	}
}

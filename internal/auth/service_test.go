package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogapi/internal/apperr"
	"blogapi/internal/logging"
	"blogapi/internal/users"
)

type fakeUsersRepo struct {
	byEmail map[string]*users.User
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*users.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, user *users.User) (*users.User, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return nil, apperr.New(apperr.ErrConflict, "user already exists")
	}
	f.byEmail[user.Email] = user
	return user, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperr.New(apperr.ErrNotFound, "user not found")
	}
	return user, nil
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*users.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.New(apperr.ErrNotFound, "user not found")
}

type recordingNotifier struct {
	welcomed []string
}

func (r *recordingNotifier) WelcomeEmail(_ context.Context, _, email, _ string) error {
	r.welcomed = append(r.welcomed, email)
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const testSecret = "test-secret"

func newTestService(repo users.Repository, notifier Notifier) *Service {
	// MinCost keeps hashing fast in tests.
	return NewService(repo, testSecret, 4, notifier, testLogger())
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newTestService(newFakeUsersRepo(), notifier)
	ctx := context.Background()

	created, err := svc.Register(ctx, "Jane", "Doe", "Jane@Example.com", "s3cret", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", created.Email)
	assert.Equal(t, []string{"jane@example.com"}, notifier.welcomed)

	token, user, err := svc.Login(ctx, "jane@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	claims, err := ParseToken(token, []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
	assert.Equal(t, "Jane", claims.Firstname)
	assert.Equal(t, "Doe", claims.Lastname)
	assert.Equal(t, "jane@example.com", claims.Email)
}

func TestRegisterNeverSerializesPassword(t *testing.T) {
	svc := newTestService(newFakeUsersRepo(), nil)

	user, err := svc.Register(context.Background(), "Jane", "Doe", "jane@example.com", "s3cret", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, user.Password)

	b, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
	assert.NotContains(t, string(b), user.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(newFakeUsersRepo(), nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Jane", "Doe", "jane@example.com", "s3cret", "s3cret")
	require.NoError(t, err)

	// Same address in a different case still collides.
	_, err = svc.Register(ctx, "Janet", "Doe", "JANE@example.com", "other", "other")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := newTestService(repo, nil)

	_, err := svc.Register(context.Background(), "Jane", "Doe", "jane@example.com", "one", "two")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Empty(t, repo.byEmail)
}

func TestLoginInvalidCredentialsAreUniform(t *testing.T) {
	svc := newTestService(newFakeUsersRepo(), nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Jane", "Doe", "jane@example.com", "s3cret", "s3cret")
	require.NoError(t, err)

	// Unknown email and wrong password must be indistinguishable.
	_, _, unknownErr := svc.Login(ctx, "nobody@example.com", "s3cret")
	_, _, wrongErr := svc.Login(ctx, "jane@example.com", "wrong")

	assert.ErrorIs(t, unknownErr, apperr.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, apperr.ErrInvalidCredentials)
	assert.Equal(t, apperr.Message(unknownErr), apperr.Message(wrongErr))
}

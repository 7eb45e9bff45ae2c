package service

import (
	"context"
	"testing"
	"time"

	"dkovalev/workout-tracker/internal/domain"
	"dkovalev/workout-tracker/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if _, exists := f.byEmail[user.Email]; exists {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	stored := *user
	stored.ID = primitive.NewObjectID()
	f.byEmail[user.Email] = &stored
	return stored.ID, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

const testJWTSecret = "test-secret"

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes email and never returns the hash", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewAuthService(repo, testJWTSecret, time.Hour)

		user, err := svc.Register(ctx, "Jane", "  Jane@Example.COM ", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Empty(t, user.PasswordHash)
		assert.False(t, user.ID.IsZero())

		// The stored record keeps a bcrypt hash, not the raw password.
		stored := repo.byEmail["jane@example.com"]
		require.NotNil(t, stored)
		assert.NotEmpty(t, stored.PasswordHash)
		assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewAuthService(repo, testJWTSecret, time.Hour)

		_, err := svc.Register(ctx, "Jane", "jane@example.com", "s3cret-pass")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "Other Jane", "jane@example.com", "another-pass")
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("invalid email", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(), testJWTSecret, time.Hour)

		_, err := svc.Register(ctx, "Jane", "not-an-email", "s3cret-pass")
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T) (*fakeUserRepo, AuthService, *domain.User) {
		t.Helper()
		repo := newFakeUserRepo()
		svc := NewAuthService(repo, testJWTSecret, time.Hour)
		user, err := svc.Register(ctx, "Jane", "jane@example.com", "s3cret-pass")
		require.NoError(t, err)
		return repo, svc, user
	}

	t.Run("issues a token carrying the user id", func(t *testing.T) {
		_, svc, registered := register(t)

		token, user, err := svc.Login(ctx, "jane@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.Empty(t, user.PasswordHash)

		claims := &jwtClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(testJWTSecret), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, registered.ID.Hex(), claims.UserID)
		assert.Equal(t, "workout-tracker", claims.Issuer)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, svc, _ := register(t)

		_, _, err := svc.Login(ctx, "jane@example.com", "wrong-pass")
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})

	t.Run("unknown email reads the same as a wrong password", func(t *testing.T) {
		_, svc, _ := register(t)

		_, _, err := svc.Login(ctx, "nobody@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})
}

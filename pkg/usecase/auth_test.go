package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/gui-far/objectboard/pkg/repository/memory"
	"github.com/gui-far/objectboard/pkg/usecase"
)

func TestAuthUseCase_SigninRoundTrip(t *testing.T) {
	repo := memory.New()
	uc := usecase.NewAuthUseCase(repo, []byte("test-secret"),
		usecase.WithAdminEmails([]string{"admin@example.com"}),
	)
	ctx := context.Background()

	user, err := uc.Signup(ctx, "alice@example.com", "correct-horse")
	gt.NoError(t, err).Required()
	gt.Value(t, user.Email).Equal("alice@example.com")
	gt.Bool(t, user.IsAdmin).False()

	t.Run("admin email yields an administrator account", func(t *testing.T) {
		admin, err := uc.Signup(ctx, "admin@example.com", "correct-horse")
		gt.NoError(t, err).Required()
		gt.Bool(t, admin.IsAdmin).True()
	})

	t.Run("duplicate signup fails", func(t *testing.T) {
		_, err := uc.Signup(ctx, "alice@example.com", "correct-horse")
		gt.Error(t, err).Is(usecase.ErrValidation)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		_, err := uc.Signup(ctx, "bob@example.com", "short")
		gt.Error(t, err).Is(usecase.ErrValidation)
	})

	t.Run("signin issues a validatable token", func(t *testing.T) {
		signed, session, err := uc.Signin(ctx, "alice@example.com", "correct-horse")
		gt.NoError(t, err).Required()
		gt.Value(t, signed).NotEqual("")

		validated, err := uc.ValidateToken(ctx, signed)
		gt.NoError(t, err).Required()
		gt.Value(t, validated.ID).Equal(session.ID)
		gt.Value(t, validated.Sub).Equal(user.ID)
		gt.Value(t, validated.Email).Equal("alice@example.com")
	})

	t.Run("wrong password fails", func(t *testing.T) {
		_, _, err := uc.Signin(ctx, "alice@example.com", "wrong-password")
		gt.Error(t, err).Is(usecase.ErrInvalidCredentials)
	})

	t.Run("unknown email fails the same way", func(t *testing.T) {
		_, _, err := uc.Signin(ctx, "nobody@example.com", "correct-horse")
		gt.Error(t, err).Is(usecase.ErrInvalidCredentials)
	})

	t.Run("signout revokes the session", func(t *testing.T) {
		signed, session, err := uc.Signin(ctx, "alice@example.com", "correct-horse")
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.Signout(ctx, session.ID)).Required()

		_, err = uc.ValidateToken(ctx, signed)
		gt.Error(t, err).Is(usecase.ErrNotAuthorized)

		// Signing out twice is fine
		gt.NoError(t, uc.Signout(ctx, session.ID)).Required()
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := uc.ValidateToken(ctx, "not-a-jwt")
		gt.Error(t, err).Is(usecase.ErrNotAuthorized)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := usecase.NewAuthUseCase(repo, []byte("other-secret"))
		signed, _, err := uc.Signin(ctx, "alice@example.com", "correct-horse")
		gt.NoError(t, err).Required()

		_, err = other.ValidateToken(ctx, signed)
		gt.Error(t, err).Is(usecase.ErrNotAuthorized)
	})
}

func TestAuthUseCase_TokenExpiry(t *testing.T) {
	repo := memory.New()
	uc := usecase.NewAuthUseCase(repo, []byte("test-secret"),
		usecase.WithTokenTTL(-time.Minute),
	)
	ctx := context.Background()

	_, err := uc.Signup(ctx, "alice@example.com", "correct-horse")
	gt.NoError(t, err).Required()

	signed, _, err := uc.Signin(ctx, "alice@example.com", "correct-horse")
	gt.NoError(t, err).Required()

	_, err = uc.ValidateToken(ctx, signed)
	gt.Error(t, err).Is(usecase.ErrNotAuthorized)
}

func TestAuthUseCase_PasswordReset(t *testing.T) {
	repo := memory.New()
	uc := usecase.NewAuthUseCase(repo, []byte("test-secret"))
	ctx := context.Background()

	_, err := uc.Signup(ctx, "alice@example.com", "old-password")
	gt.NoError(t, err).Required()

	t.Run("reset for unknown email fails", func(t *testing.T) {
		_, err := uc.ForgotPassword(ctx, "nobody@example.com")
		gt.Error(t, err).Is(usecase.ErrUserNotFound)
	})

	t.Run("reset token swaps the password once", func(t *testing.T) {
		reset, err := uc.ForgotPassword(ctx, "alice@example.com")
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.ResetPassword(ctx, reset.Token, "new-password")).Required()

		_, _, err = uc.Signin(ctx, "alice@example.com", "old-password")
		gt.Error(t, err).Is(usecase.ErrInvalidCredentials)

		_, _, err = uc.Signin(ctx, "alice@example.com", "new-password")
		gt.NoError(t, err).Required()

		// A consumed token is gone
		err = uc.ResetPassword(ctx, reset.Token, "another-password")
		gt.Error(t, err).Is(usecase.ErrNotAuthorized)
	})

	t.Run("short replacement password is rejected", func(t *testing.T) {
		reset, err := uc.ForgotPassword(ctx, "alice@example.com")
		gt.NoError(t, err).Required()

		err = uc.ResetPassword(ctx, reset.Token, "tiny")
		gt.Error(t, err).Is(usecase.ErrValidation)
	})
}

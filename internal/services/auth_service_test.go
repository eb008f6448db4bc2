package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"setlist_backend/internal/appErrors"
	"setlist_backend/internal/services/dto"
)

func TestRegisterVerifyLogin(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.Auth.Register(&dto.RegisterRequest{
		Email:    "Alice@Example.com",
		Password: "secret123",
		Name:     "Alice",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.AccessToken, "registration must not authenticate")
	assert.False(t, resp.User.IsEmailVerified)
	assert.Equal(t, "alice@example.com", resp.User.Email, "emails are stored lowercased")

	// Unverified login fails with the dedicated error, not bad credentials.
	_, err = env.Auth.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, appErrors.ErrEmailNotVerified)

	verified, err := env.Auth.VerifyEmail(&dto.VerifyEmailRequest{
		Token: env.Mail.lastVerificationToken(t),
	})
	require.NoError(t, err)
	assert.True(t, verified.User.IsEmailVerified)
	assert.NotEmpty(t, verified.AccessToken, "verification doubles as first login")
	assert.NotEmpty(t, env.Mail.Welcomes, "welcome email follows verification")

	login, err := env.Auth.Login(&dto.LoginRequest{Email: "ALICE@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.registerVerified(t, "alice@example.com", "Alice")

	_, err := env.Auth.Register(&dto.RegisterRequest{
		Email:    "ALICE@example.com",
		Password: "secret123",
		Name:     "Imposter",
	})
	assert.ErrorIs(t, err, appErrors.ErrEmailAlreadyExists)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	env.registerVerified(t, "alice@example.com", "Alice")

	_, unknownErr := env.Auth.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	_, wrongErr := env.Auth.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "wrong-password"})

	assert.ErrorIs(t, unknownErr, appErrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, appErrors.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestVerifyEmailTokenIsSingleUse(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Auth.Register(&dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "secret123",
		Name:     "Alice",
	})
	require.NoError(t, err)

	token := env.Mail.lastVerificationToken(t)
	_, err = env.Auth.VerifyEmail(&dto.VerifyEmailRequest{Token: token})
	require.NoError(t, err)

	_, err = env.Auth.VerifyEmail(&dto.VerifyEmailRequest{Token: token})
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestVerifyEmailUnknownToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Auth.VerifyEmail(&dto.VerifyEmailRequest{Token: "does-not-exist"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestResendVerificationInvalidatesOldToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Auth.Register(&dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "secret123",
		Name:     "Alice",
	})
	require.NoError(t, err)
	first := env.Mail.lastVerificationToken(t)

	resp, err := env.Auth.ResendVerification(&dto.ResendVerificationRequest{Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, msgVerificationSent, resp.Message)

	second := env.Mail.lastVerificationToken(t)
	require.NotEqual(t, first, second)

	_, err = env.Auth.VerifyEmail(&dto.VerifyEmailRequest{Token: first})
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken, "reissue invalidates the previous token")

	_, err = env.Auth.VerifyEmail(&dto.VerifyEmailRequest{Token: second})
	assert.NoError(t, err)
}

func TestResendVerificationDoesNotRevealAccounts(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Auth.Register(&dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "secret123",
		Name:     "Alice",
	})
	require.NoError(t, err)

	existing, err := env.Auth.ResendVerification(&dto.ResendVerificationRequest{Email: "alice@example.com"})
	require.NoError(t, err)
	missing, err := env.Auth.ResendVerification(&dto.ResendVerificationRequest{Email: "ghost@example.com"})
	require.NoError(t, err)

	assert.Equal(t, existing, missing, "responses must be byte-identical")
}

func TestResendVerificationAlreadyVerified(t *testing.T) {
	env := newTestEnv(t)
	env.registerVerified(t, "alice@example.com", "Alice")

	_, err := env.Auth.ResendVerification(&dto.ResendVerificationRequest{Email: "alice@example.com"})
	assert.ErrorIs(t, err, appErrors.ErrEmailAlreadyVerified)
}

func TestForgotPasswordDoesNotRevealAccounts(t *testing.T) {
	env := newTestEnv(t)
	env.registerVerified(t, "alice@example.com", "Alice")

	existing, err := env.Auth.ForgotPassword(&dto.ForgotPasswordRequest{Email: "alice@example.com"})
	require.NoError(t, err)
	missing, err := env.Auth.ForgotPassword(&dto.ForgotPasswordRequest{Email: "ghost@example.com"})
	require.NoError(t, err)

	assert.Equal(t, existing, missing, "responses must be byte-identical")
	assert.Len(t, env.Mail.Resets, 1, "only the existing account gets an email")
}

func TestResetPasswordFlow(t *testing.T) {
	env := newTestEnv(t)
	env.registerVerified(t, "alice@example.com", "Alice")

	_, err := env.Auth.ForgotPassword(&dto.ForgotPasswordRequest{Email: "alice@example.com"})
	require.NoError(t, err)
	token := env.Mail.lastResetToken(t)

	_, err = env.Auth.ResetPassword(&dto.ResetPasswordRequest{Token: token, NewPassword: "brand-new-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, env.Mail.Changed, "password changed notice is sent")

	// Old password no longer works, new one does.
	_, err = env.Auth.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	_, err = env.Auth.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "brand-new-pass"})
	assert.NoError(t, err)

	// The token was consumed.
	_, err = env.Auth.ResetPassword(&dto.ResetPasswordRequest{Token: token, NewPassword: "another-pass"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestResetPasswordInvalidatesAllResetTokens(t *testing.T) {
	env := newTestEnv(t)
	env.registerVerified(t, "alice@example.com", "Alice")

	_, err := env.Auth.ForgotPassword(&dto.ForgotPasswordRequest{Email: "alice@example.com"})
	require.NoError(t, err)
	first := env.Mail.lastResetToken(t)

	_, err = env.Auth.ForgotPassword(&dto.ForgotPasswordRequest{Email: "alice@example.com"})
	require.NoError(t, err)
	second := env.Mail.lastResetToken(t)
	require.NotEqual(t, first, second)

	// A reissue invalidated the first token already.
	_, err = env.Auth.ResetPassword(&dto.ResetPasswordRequest{Token: first, NewPassword: "brand-new-pass"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	_, err = env.Auth.ResetPassword(&dto.ResetPasswordRequest{Token: second, NewPassword: "brand-new-pass"})
	assert.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	userID := env.registerVerified(t, "alice@example.com", "Alice")

	_, err := env.Auth.ChangePassword(userID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong-password",
		NewPassword:     "brand-new-pass",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = env.Auth.ChangePassword(userID, &dto.ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "brand-new-pass",
	})
	require.NoError(t, err)

	_, err = env.Auth.Login(&dto.LoginRequest{Email: "alice@example.com", Password: "brand-new-pass"})
	assert.NoError(t, err)
}

func TestCheckEmailExists(t *testing.T) {
	env := newTestEnv(t)
	env.registerVerified(t, "alice@example.com", "Alice")

	resp, err := env.Auth.CheckEmailExists("alice@example.com")
	require.NoError(t, err)
	assert.True(t, resp.Exists)

	resp, err = env.Auth.CheckEmailExists("ghost@example.com")
	require.NoError(t, err)
	assert.False(t, resp.Exists)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Auth.Register(&dto.RegisterRequest{
		Email:    "not-an-email",
		Password: "short",
		Name:     "",
	})
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.True(t, appErrors.As(err, &appErr))
	assert.Equal(t, appErrors.CodeValidationFailed, appErr.Code)
}

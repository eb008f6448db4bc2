package services

import (
	"setlist_backend/internal/appErrors"
	"setlist_backend/internal/auth"
	"setlist_backend/internal/email"
	"setlist_backend/internal/logger"
	"setlist_backend/internal/models"
	"setlist_backend/internal/repositories"
	"setlist_backend/internal/services/dto"
)

// Enumeration-resistant responses. The exists and not-exists paths of resend
// and forgot-password return these exact bytes; do not branch on existence
// anywhere the caller could observe.
const (
	msgVerificationSent  = "If the email exists, a verification link has been sent"
	msgPasswordResetSent = "If the email exists, a password reset link has been sent"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	VerifyEmail(req *dto.VerifyEmailRequest) (*dto.AuthResponse, error)
	ResendVerification(req *dto.ResendVerificationRequest) (*dto.MessageResponse, error)
	ForgotPassword(req *dto.ForgotPasswordRequest) (*dto.MessageResponse, error)
	ResetPassword(req *dto.ResetPasswordRequest) (*dto.MessageResponse, error)
	ChangePassword(userID string, req *dto.ChangePasswordRequest) (*dto.MessageResponse, error)
	CheckEmailExists(emailAddr string) (*dto.EmailExistsResponse, error)
	ValidateUser(userID string) (*dto.UserResponse, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	tokens        TokenLedger
	emailProvider email.Provider
	sessions      *auth.TokenManager
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens TokenLedger,
	emailProvider email.Provider,
	sessions *auth.TokenManager,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		tokens:        tokens,
		emailProvider: emailProvider,
		sessions:      sessions,
	}
}

// Register creates an unverified user and sends the verification email.
// No session credential is returned: registration alone never authenticates.
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, validationError(err)
	}

	// Equality lookup, not a store constraint: concurrent registrations with
	// the same email can race (accepted weakness).
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, appErrors.ErrEmailAlreadyExists
	} else if !appErrors.Is(err, repositories.ErrUserNotFound) {
		return nil, appErrors.InternalError(err)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	user := &models.User{
		Email:           req.Email,
		PasswordHash:    hashedPassword,
		Name:            req.Name,
		IsEmailVerified: false,
	}
	user, err = s.userRepo.Create(user)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	token, err := s.tokens.Issue(user.ID, models.TokenKindEmailVerification, EmailVerificationTTL)
	if err != nil {
		return nil, err
	}
	s.writeInlineVerification(user, token)

	s.sendEmail("verification", func() error {
		return s.emailProvider.SendVerification(user.Email, user.Name, token.Token)
	})

	return &dto.AuthResponse{
		User:    toUserResponse(user),
		Message: "Registration successful. Check your email to verify your account",
	}, nil
}

// Login authenticates a verified user and returns a session credential.
// Unknown email and wrong password yield the same credentials error; a
// correct password on an unverified account yields a distinct
// verification-required error.
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, appErrors.ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		return nil, appErrors.ErrEmailNotVerified
	}

	accessToken, err := s.sessions.Generate(user.ID, user.Email)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	return &dto.AuthResponse{
		User:        toUserResponse(user),
		AccessToken: accessToken,
	}, nil
}

// VerifyEmail consumes a verification token, flips the verified flag and
// issues a session credential so verification doubles as first login.
// Double verification is rejected, not a no-op.
func (s *AuthServiceImpl) VerifyEmail(req *dto.VerifyEmailRequest) (*dto.AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, validationError(err)
	}

	token, err := s.tokens.FindValid(req.Token, models.TokenKindEmailVerification)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(token.UserID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if user.IsEmailVerified {
		return nil, appErrors.ErrEmailAlreadyVerified
	}

	user.IsEmailVerified = true
	user.EmailVerificationToken = ""
	user.EmailVerificationExpires = nil
	if user, err = s.userRepo.Update(user); err != nil {
		return nil, appErrors.InternalError(err)
	}

	if err := s.tokens.Invalidate(token.ID); err != nil {
		return nil, err
	}

	s.sendEmail("welcome", func() error {
		return s.emailProvider.SendWelcome(user.Email, user.Name)
	})

	accessToken, err := s.sessions.Generate(user.ID, user.Email)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	return &dto.AuthResponse{
		User:        toUserResponse(user),
		AccessToken: accessToken,
		Message:     "Email verified successfully",
	}, nil
}

// ResendVerification invalidates prior verification tokens and issues a new
// one. The response does not reveal whether the email exists.
func (s *AuthServiceImpl) ResendVerification(req *dto.ResendVerificationRequest) (*dto.MessageResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, validationError(err)
	}

	resp := &dto.MessageResponse{Message: msgVerificationSent}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return resp, nil
		}
		return nil, appErrors.InternalError(err)
	}

	if user.IsEmailVerified {
		return nil, appErrors.ErrEmailAlreadyVerified
	}

	if err := s.tokens.InvalidateAllOfKind(user.ID, models.TokenKindEmailVerification); err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(user.ID, models.TokenKindEmailVerification, EmailVerificationTTL)
	if err != nil {
		return nil, err
	}
	s.writeInlineVerification(user, token)

	s.sendEmail("verification", func() error {
		return s.emailProvider.SendVerification(user.Email, user.Name, token.Token)
	})

	return resp, nil
}

// ForgotPassword issues a password-reset token. The response does not reveal
// whether the email exists.
func (s *AuthServiceImpl) ForgotPassword(req *dto.ForgotPasswordRequest) (*dto.MessageResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, validationError(err)
	}

	resp := &dto.MessageResponse{Message: msgPasswordResetSent}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return resp, nil
		}
		return nil, appErrors.InternalError(err)
	}

	if err := s.tokens.InvalidateAllOfKind(user.ID, models.TokenKindPasswordReset); err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(user.ID, models.TokenKindPasswordReset, PasswordResetTTL)
	if err != nil {
		return nil, err
	}
	s.writeInlineReset(user, token)

	s.sendEmail("password reset", func() error {
		return s.emailProvider.SendPasswordReset(user.Email, user.Name, token.Token)
	})

	return resp, nil
}

// ResetPassword consumes a reset token and stores a new password hash. The
// old password is not required: this is the forgot path.
func (s *AuthServiceImpl) ResetPassword(req *dto.ResetPasswordRequest) (*dto.MessageResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, validationError(err)
	}

	token, err := s.tokens.FindValid(req.Token, models.TokenKindPasswordReset)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(token.UserID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	user.PasswordHash = hashedPassword
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil
	if _, err := s.userRepo.Update(user); err != nil {
		return nil, appErrors.InternalError(err)
	}

	if err := s.tokens.Invalidate(token.ID); err != nil {
		return nil, err
	}
	// Any other live reset token dies with this one.
	if err := s.tokens.InvalidateAllOfKind(user.ID, models.TokenKindPasswordReset); err != nil {
		return nil, err
	}

	s.sendEmail("password changed", func() error {
		return s.emailProvider.SendPasswordChanged(user.Email, user.Name)
	})

	return &dto.MessageResponse{Message: "Password reset successfully"}, nil
}

// ChangePassword rotates the password for an authenticated user who knows the
// current one. No token involved.
func (s *AuthServiceImpl) ChangePassword(userID string, req *dto.ChangePasswordRequest) (*dto.MessageResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return nil, appErrors.ErrInvalidCredentials
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	user.PasswordHash = hashedPassword
	if _, err := s.userRepo.Update(user); err != nil {
		return nil, appErrors.InternalError(err)
	}

	s.sendEmail("password changed", func() error {
		return s.emailProvider.SendPasswordChanged(user.Email, user.Name)
	})

	return &dto.MessageResponse{Message: "Password changed successfully"}, nil
}

// CheckEmailExists reveals whether an account exists. This is the one
// deliberate disclosure point; every other flow stays enumeration-resistant.
func (s *AuthServiceImpl) CheckEmailExists(emailAddr string) (*dto.EmailExistsResponse, error) {
	_, err := s.userRepo.FindByEmail(emailAddr)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return &dto.EmailExistsResponse{Exists: false}, nil
		}
		return nil, appErrors.InternalError(err)
	}
	return &dto.EmailExistsResponse{Exists: true}, nil
}

// ValidateUser resolves a session subject to its user. Used by the auth
// middleware.
func (s *AuthServiceImpl) ValidateUser(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUnauthorized
		}
		return nil, appErrors.InternalError(err)
	}
	return toUserResponse(user), nil
}

// --- Helpers ---

// writeInlineVerification mirrors the active verification token into the
// legacy inline user fields. Failures here are logged, not surfaced: the
// auth_tokens collection is authoritative.
func (s *AuthServiceImpl) writeInlineVerification(user *models.User, token *models.AuthToken) {
	user.EmailVerificationToken = token.Token
	expires := token.ExpiresAt
	user.EmailVerificationExpires = &expires
	if _, err := s.userRepo.Update(user); err != nil {
		logger.Warn("failed to write inline verification token", "user_id", user.ID, "error", err)
	}
}

func (s *AuthServiceImpl) writeInlineReset(user *models.User, token *models.AuthToken) {
	user.PasswordResetToken = token.Token
	expires := token.ExpiresAt
	user.PasswordResetExpires = &expires
	if _, err := s.userRepo.Update(user); err != nil {
		logger.Warn("failed to write inline reset token", "user_id", user.ID, "error", err)
	}
}

// sendEmail delivers best-effort: failures are logged and never propagated.
func (s *AuthServiceImpl) sendEmail(kind string, send func() error) {
	if s.emailProvider == nil {
		return
	}
	if err := send(); err != nil {
		logger.Error("failed to send email", "kind", kind, "error", err)
	}
}

func toUserResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		IsEmailVerified: user.IsEmailVerified,
		CreatedAt:       user.CreatedAt,
	}
}

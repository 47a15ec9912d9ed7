package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"holdco-backend/internal/forms"
	"holdco-backend/internal/mail"
	"holdco-backend/internal/model"
)

var (
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrWeakPassword       = errors.New("auth: password does not meet strength rules")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrNotVerified        = errors.New("auth: email not verified")
	ErrInvalidToken       = errors.New("auth: invalid or expired token")
)

// Service implements the account flows: signup with email verification,
// login, change password, forgot/reset password.
type Service struct {
	store  *Store
	mailer *mail.Client
}

func NewService(store *Store, mailer *mail.Client) *Service {
	return &Service{store: store, mailer: mailer}
}

// Signup creates an unverified account and emails the verification link.
func (s *Service) Signup(ctx context.Context, req model.SignupRequest) error {
	if !forms.CheckPassword(req.Password, req.ConfirmPassword).Strong() {
		return ErrWeakPassword
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.store.UserByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	u, err := s.store.CreateUser(ctx, email, req.FirstName, req.LastName, string(hash))
	if err != nil {
		return err
	}

	token, err := s.store.CreateToken(ctx, u.ID, PurposeVerify)
	if err != nil {
		return err
	}
	if err := s.mailer.SendVerification(ctx, u.Email, u.ID, token); err != nil {
		// The account exists; the user can request a new link.
		log.Printf("auth: verification mail to %s failed: %v", u.Email, err)
	}
	return nil
}

// Verify consumes the uid+token pair from the emailed link.
func (s *Service) Verify(ctx context.Context, req model.VerifyRequest) error {
	err := s.store.ConsumeToken(ctx, req.UID, req.Token, PurposeVerify)
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrTokenConsumed) {
		return ErrInvalidToken
	}
	if err != nil {
		return err
	}
	return s.store.MarkVerified(ctx, req.UID)
}

// Login checks credentials and mints a session token. Unverified accounts
// cannot log in.
func (s *Service) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	u, err := s.store.UserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.Verified {
		return nil, ErrNotVerified
	}

	token, err := MintToken(u)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{
		Token: token,
		Profile: model.Profile{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		},
	}, nil
}

// ChangePassword re-checks the current password before accepting the new
// one. Caller identity comes from the bearer token.
func (s *Service) ChangePassword(ctx context.Context, userID string, req model.ChangePasswordRequest) error {
	u, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrInvalidCredentials
	}
	if !forms.CheckPassword(req.NewPassword, req.ConfirmPassword).Strong() {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.SetPasswordHash(ctx, u.ID, string(hash))
}

// ForgotPassword emails a reset link. The response is identical whether
// or not the address has an account, so the endpoint cannot be used to
// enumerate accounts.
func (s *Service) ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error {
	u, err := s.store.UserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, ErrNotFound) {
		log.Printf("auth: reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	token, err := s.store.CreateToken(ctx, u.ID, PurposeReset)
	if err != nil {
		return err
	}
	if err := s.mailer.SendPasswordReset(ctx, u.Email, u.ID, token); err != nil {
		log.Printf("auth: reset mail to %s failed: %v", u.Email, err)
	}
	return nil
}

// ResetPassword consumes the reset token and installs the new password.
func (s *Service) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error {
	if !forms.CheckPassword(req.NewPassword, req.ConfirmPassword).Strong() {
		return ErrWeakPassword
	}

	err := s.store.ConsumeToken(ctx, req.UID, req.Token, PurposeReset)
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrTokenConsumed) {
		return ErrInvalidToken
	}
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.SetPasswordHash(ctx, req.UID, string(hash))
}

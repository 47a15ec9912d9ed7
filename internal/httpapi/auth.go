package httpapi

import (
	"errors"
	"log"
	"net/http"

	"holdco-backend/internal/auth"
	"holdco-backend/internal/forms"
	"holdco-backend/internal/model"
)

func (s *Server) signupHandler(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if payload := s.decodeForm(w, r, "signup", &req); payload == nil {
		return
	}

	err := s.Auth.Signup(r.Context(), req)
	switch {
	case errors.Is(err, auth.ErrWeakPassword):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":    "password too weak",
			"strength": forms.CheckPassword(req.Password, req.ConfirmPassword),
		})
	case errors.Is(err, auth.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email already registered")
	case err != nil:
		log.Printf("signup error: %v", err)
		writeError(w, http.StatusInternalServerError, "something went wrong, try again")
	default:
		writeJSON(w, http.StatusCreated, map[string]string{"status": "verification email sent"})
	}
}

func (s *Server) verifyHandler(w http.ResponseWriter, r *http.Request) {
	var req model.VerifyRequest
	if payload := s.decodeForm(w, r, "verify", &req); payload == nil {
		return
	}

	err := s.Auth.Verify(r.Context(), req)
	switch {
	case errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusBadRequest, "invalid or expired verification link")
	case err != nil:
		log.Printf("verify error: %v", err)
		writeError(w, http.StatusInternalServerError, "something went wrong, try again")
	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": "verified"})
	}
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if payload := s.decodeForm(w, r, "login", &req); payload == nil {
		return
	}

	resp, err := s.Auth.Login(r.Context(), req)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, auth.ErrNotVerified):
		writeError(w, http.StatusForbidden, "email not verified")
	case err != nil:
		log.Printf("login error: %v", err)
		writeError(w, http.StatusInternalServerError, "something went wrong, try again")
	default:
		// Anonymous favorites follow the account once it logs in.
		if dev := r.Header.Get("X-Device-ID"); dev != "" && s.Saved != nil {
			for _, kind := range model.Kinds {
				if err := s.Saved.Merge(r.Context(), kind, "device:"+dev, "user:"+resp.Profile.ID); err != nil {
					log.Printf("saved merge error for %s: %v", kind, err)
				}
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) changePasswordHandler(w http.ResponseWriter, r *http.Request) {
	p := auth.FromContext(r.Context())

	var req model.ChangePasswordRequest
	if payload := s.decodeForm(w, r, "change_password", &req); payload == nil {
		return
	}

	err := s.Auth.ChangePassword(r.Context(), p.UserID, req)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusForbidden, "current password is incorrect")
	case errors.Is(err, auth.ErrWeakPassword):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":    "password too weak",
			"strength": forms.CheckPassword(req.NewPassword, req.ConfirmPassword),
		})
	case err != nil:
		log.Printf("change password error: %v", err)
		writeError(w, http.StatusInternalServerError, "something went wrong, try again")
	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
	}
}

// forgotPasswordHandler always answers the same way so the endpoint
// cannot be used to probe which emails have accounts.
func (s *Server) forgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req model.ForgotPasswordRequest
	if payload := s.decodeForm(w, r, "forgot_password", &req); payload == nil {
		return
	}

	if err := s.Auth.ForgotPassword(r.Context(), req); err != nil {
		log.Printf("forgot password error: %v", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "if the address has an account, a reset link has been sent",
	})
}

func (s *Server) resetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req model.ResetPasswordRequest
	if payload := s.decodeForm(w, r, "reset_password", &req); payload == nil {
		return
	}

	err := s.Auth.ResetPassword(r.Context(), req)
	switch {
	case errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusBadRequest, "invalid or expired reset link")
	case errors.Is(err, auth.ErrWeakPassword):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":    "password too weak",
			"strength": forms.CheckPassword(req.NewPassword, req.ConfirmPassword),
		})
	case err != nil:
		log.Printf("reset password error: %v", err)
		writeError(w, http.StatusInternalServerError, "something went wrong, try again")
	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": "password reset"})
	}
}

// passwordStrengthHandler lets the client render live strength indicators
// from the same predicate the server enforces.
func (s *Server) passwordStrengthHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
		Confirm  string `json:"confirm"`
	}
	if payload := s.decodeForm(w, r, "password_strength", &req); payload == nil {
		return
	}
	writeJSON(w, http.StatusOK, forms.CheckPassword(req.Password, req.Confirm))
}

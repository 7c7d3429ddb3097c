package http

import (
	"encoding/json"
	"net/http"
	"net/mail"

	"github.com/fieldworks/auth-core/internal/core/domain"
)

// authPayload is the data section for login and refresh responses.
// The refresh token rides here for separate transport; it is never part
// of the sanitized account object.
type authPayload struct {
	User         *domain.AccountSummary `json:"user"`
	AccessToken  string                 `json:"accessToken"`
	RefreshToken string                 `json:"refreshToken,omitempty"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, http.StatusOK, "ok", nil)
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks the database connection)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  Envelope
// @Failure      503  {object}  Envelope  "Database unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeEnvelope(w, http.StatusServiceUnavailable, "database unreachable", nil)
			return
		}
	}
	writeEnvelope(w, http.StatusOK, "ready", nil)
}

// handleVersion godoc
// @Summary      Get API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, http.StatusOK, "ok", map[string]string{"version": s.version})
}

// Auth endpoints

// handleRegister godoc
// @Summary      Register account
// @Description  Create an account with email, name and password. No tokens are issued.
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RegisterRequest  true  "Registration details"
// @Success      201      {object}  Envelope
// @Failure      400      {object}  Envelope  "Invalid request body or field shape"
// @Failure      409      {object}  Envelope  "Email already registered"
// @Router       /auth/register [post]
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "invalid email address", nil)
		return
	}
	if len(req.Password) < 8 {
		writeEnvelope(w, http.StatusBadRequest, "password must be at least 8 characters", nil)
		return
	}

	account, err := s.sessions.Register(r.Context(), req)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeEnvelope(w, http.StatusCreated, "account registered successfully", map[string]interface{}{"user": account})
}

// handleLogin godoc
// @Summary      Login
// @Description  Authenticate with email and password to receive an access and refresh token pair
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  Envelope
// @Failure      400      {object}  Envelope  "Invalid request body"
// @Failure      401      {object}  Envelope  "Invalid credentials"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	result, err := s.sessions.Login(r.Context(), req)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, "logged in successfully", authPayload{
		User:         result.Account,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	})
}

// handleRefresh godoc
// @Summary      Refresh tokens
// @Description  Exchange the currently stored refresh token for a rotated access and refresh pair
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RefreshRequest  true  "Refresh token"
// @Success      200      {object}  Envelope
// @Failure      400      {object}  Envelope  "Invalid request body"
// @Failure      401      {object}  Envelope  "Invalid, expired or superseded refresh token"
// @Router       /auth/refresh [post]
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	result, err := s.sessions.Refresh(r.Context(), req)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, "token refreshed successfully", authPayload{
		User:         result.Account,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	})
}

// handleLogout godoc
// @Summary      Logout
// @Description  Clear the stored refresh token for the authenticated account
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope
// @Failure      401  {object}  Envelope  "Unauthorized"
// @Router       /auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeErr(w, domain.ErrNoToken)
		return
	}

	if err := s.sessions.Logout(r.Context(), authCtx.AccountID); err != nil {
		writeErr(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, "logged out successfully", nil)
}

// Account endpoints

// handleGetMe godoc
// @Summary      Get current account
// @Tags         Accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope
// @Failure      401  {object}  Envelope  "Unauthorized"
// @Router       /me [get]
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeErr(w, domain.ErrNoToken)
		return
	}

	account, err := s.sessions.GetByID(r.Context(), authCtx.AccountID)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, "ok", map[string]interface{}{"user": account})
}

// handleListAccounts godoc
// @Summary      List accounts
// @Tags         Accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope
// @Failure      403  {object}  Envelope  "Admin access required"
// @Router       /accounts [get]
func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.sessions.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, "ok", map[string]interface{}{"users": accounts})
}

// handleGetAccount godoc
// @Summary      Get account by ID
// @Tags         Accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope  "Account not found"
// @Router       /accounts/{id} [get]
func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := s.sessions.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeErr(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, "ok", map[string]interface{}{"user": account})
}

// handleUpdateAccount godoc
// @Summary      Update account
// @Description  Apply a partial patch. A patched password is re-hashed before persisting.
// @Tags         Accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                true  "Account ID"
// @Param        request  body      domain.UpdateRequest  true  "Fields to update"
// @Success      200      {object}  Envelope
// @Failure      404      {object}  Envelope  "Account not found"
// @Failure      409      {object}  Envelope  "Email claimed by another account"
// @Router       /accounts/{id} [put]
func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if req.Email != nil {
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			writeEnvelope(w, http.StatusBadRequest, "invalid email address", nil)
			return
		}
	}

	account, err := s.sessions.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, "account updated successfully", map[string]interface{}{"user": account})
}

// handleDeleteAccount godoc
// @Summary      Delete account
// @Tags         Accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope  "Account not found"
// @Router       /accounts/{id} [delete]
func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeErr(w, err)
		return
	}

	writeEnvelope(w, http.StatusOK, "account deleted successfully", nil)
}

package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/gourmoire/authkit"
	"github.com/gourmoire/authkit/middleware"
)

type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Username == "" || body.Password == "" {
		writeFailure(w, http.StatusBadRequest, "Username and password are required", authkit.CodeInvalidCredentials)
		return
	}

	result, aerr := s.engine.Login(r.Context(), body.Username, body.Password, body.RememberMe)
	if aerr != nil {
		s.logFailure("login", aerr)
		writeAuthError(w, aerr)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		User: userPayload{
			ID:       result.User.ID,
			Username: result.User.Username,
			Email:    result.User.Email,
		},
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
		Message:      "Login successful",
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	credential, ok := middleware.RefreshTokenFromContext(r.Context())
	if !ok {
		writeFailure(w, http.StatusBadRequest, "Refresh token is required", authkit.CodeTokenInvalid)
		return
	}

	result, aerr := s.engine.Refresh(r.Context(), credential)
	if aerr != nil {
		s.logFailure("refresh", aerr)
		writeAuthError(w, aerr)
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{
		Success:      true,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	// The refresh credential is optional; a missing or malformed body means
	// only the access credential and the watermark are written.
	var body logoutRequest
	_ = json.NewDecoder(r.Body).Decode(&body)

	if aerr := s.engine.Logout(r.Context(), identity, body.RefreshToken); aerr != nil {
		s.logFailure("logout", aerr)
		writeAuthError(w, aerr)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Successfully logged out",
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "Authentication required", authkit.CodeUnauthorized)
		return
	}

	user, err := s.users.FindByUsername(r.Context(), identity.Username)
	if err != nil {
		writeFailure(w, http.StatusNotFound, "User not found", authkit.CodeUserNotFound)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool        `json:"success"`
		User    userPayload `json:"user"`
	}{
		Success: true,
		User: userPayload{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
	}{Status: "ok"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeFailure(w, http.StatusNotFound, "Endpoint not found", authkit.Code("NOT_FOUND"))
}

func (s *Server) logFailure(op string, aerr *authkit.Error) {
	if aerr.Status < http.StatusInternalServerError {
		return
	}
	s.log.Error("request failed",
		zap.String("op", op),
		zap.String("code", string(aerr.Code)),
		zap.String("message", aerr.Message),
	)
}

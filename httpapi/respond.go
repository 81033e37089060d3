package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gourmoire/authkit"
)

type userPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type loginResponse struct {
	Success      bool        `json:"success"`
	User         userPayload `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresIn    int64       `json:"expiresIn"`
	Message      string      `json:"message"`
}

type refreshResponse struct {
	Success      bool   `json:"success"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeFailure(w http.ResponseWriter, status int, message string, code authkit.Code) {
	writeJSON(w, status, failureResponse{
		Success: false,
		Message: message,
		Code:    string(code),
	})
}

func writeAuthError(w http.ResponseWriter, aerr *authkit.Error) {
	writeFailure(w, aerr.Status, aerr.Message, aerr.Code)
}

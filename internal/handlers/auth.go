package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/minhquy1903/snapchat/internal/logging"
	"github.com/minhquy1903/snapchat/internal/models"
	"github.com/minhquy1903/snapchat/internal/services"
)

// SessionIssuer creates and revokes sessions. Credential verification itself
// happens at the external identity provider; this service only exchanges an
// already-authenticated identity for a bearer token.
type SessionIssuer interface {
	Issue(ctx context.Context, user *models.UserRecord) (string, error)
	Revoke(ctx context.Context, token string) error
}

type AuthHandler struct {
	userService services.UserServiceInterface
	sessions    SessionIssuer
	logger      *logrus.Entry
}

func NewAuthHandler(userService services.UserServiceInterface, sessions SessionIssuer) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
		logger:      logging.Log.WithField("component", "auth-handler"),
	}
}

type RegisterRequest struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	Avatar   string `json:"avatar"`
}

type LoginRequest struct {
	ID string `json:"id"`
}

type SessionResponse struct {
	Token string             `json:"token"`
	User  *models.UserRecord `json:"user"`
}

type UserResponse struct {
	User *models.UserRecord `json:"user"`
}

// Register creates the user record and mirrors the account to the messaging
// platform, then opens a session.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Fullname) == "" {
		writeError(w, http.StatusBadRequest, "Please input your full name")
		return
	}

	user, err := h.userService.Create(r.Context(), models.CreateUserParams{
		ID:       req.ID,
		Email:    req.Email,
		Fullname: req.Fullname,
		Avatar:   req.Avatar,
	})
	if errors.Is(err, services.ErrUserExists) {
		writeError(w, http.StatusConflict, "Fail to create your account, your account might be existed")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("registration failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.sessions.Issue(r.Context(), user)
	if err != nil {
		h.logger.WithError(err).Error("issuing session failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, SessionResponse{Token: token, User: user})
}

// Login opens a session for an identity already verified upstream.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.GetByID(r.Context(), req.ID)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("login failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.sessions.Issue(r.Context(), user)
	if err != nil {
		h.logger.WithError(err).Error("issuing session failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{Token: token, User: user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		writeError(w, http.StatusBadRequest, "Missing bearer token")
		return
	}

	if err := h.sessions.Revoke(r.Context(), strings.TrimSpace(token)); err != nil {
		h.logger.WithError(err).Error("revoking session failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Logged out"})
}

// Me returns the current record of the session user, re-read from the store.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.userService.GetByID(r.Context(), sess.UserID)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("loading user failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{User: user})
}

package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/PrivatePlace/PP-Backend/internal/common"
	"github.com/PrivatePlace/PP-Backend/internal/middleware"
	"github.com/PrivatePlace/PP-Backend/internal/utils"
)

type Handler struct {
	svc       *Service
	sessions  *middleware.SessionManager
	donateURL string
}

func NewHandler(svc *Service, sessions *middleware.SessionManager, donateURL string) *Handler {
	return &Handler{svc: svc, sessions: sessions, donateURL: donateURL}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	user, err := h.svc.Register(r.Context(), req)
	if err != nil {
		var ve *common.ValidationError
		switch {
		case errors.As(err, &ve) && ve.Field == "username":
			http.Error(w, ve.Message, http.StatusConflict)
		case errors.As(err, &ve):
			http.Error(w, ve.Message, http.StatusBadRequest)
		default:
			log.Printf("[auth] register %q: %v", req.Username, err)
			http.Error(w, "Failed to register user", http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]string{
		"username": user.Username,
		"message":  "Registration successful! Please login.",
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Data", http.StatusBadRequest)
		return
	}

	user, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Printf("[auth] login %q: %v", req.Username, err)
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}

	// Rotate the session id on privilege change.
	current, _ := utils.GetSessionFromContext(r.Context())
	current.Username = user.Username
	if _, err := h.sessions.Start(r.Context(), w, current); err != nil {
		log.Printf("[auth] start session for %q: %v", user.Username, err)
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, MeResponse{
		Username: user.Username,
		Name:     user.Name,
		Role:     user.Role,
		IsAdmin:  user.IsAdmin(),
	})
}

// Logout drops the login but keeps the visitor past the age gate.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	current, _ := utils.GetSessionFromContext(r.Context())
	anon := utils.SessionData{SessionID: current.SessionID, AgeVerified: current.AgeVerified}
	if _, err := h.sessions.Start(r.Context(), w, anon); err != nil {
		log.Printf("[auth] logout: %v", err)
		http.Error(w, "Logout failed", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	username, _ := utils.GetUsernameFromContext(r.Context())

	user, err := h.svc.User(r.Context(), username)
	if errors.Is(err, common.ErrNotFound) {
		http.Error(w, "Couldn't find user", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Couldn't load user", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, MeResponse{
		Username: user.Username,
		Name:     user.Name,
		Role:     user.Role,
		IsAdmin:  user.IsAdmin(),
	})
}

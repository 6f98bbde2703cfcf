package auth

import (
	"log"
	"net/http"

	"github.com/PrivatePlace/PP-Backend/internal/utils"
)

const (
	ViewAgeGate  = "age_gate"
	ViewBrowse   = "browse"
	ViewLogin    = "login"
	ViewRegister = "register"
	ViewPost     = "post"
	ViewMyAds    = "my_ads"
	ViewAdmin    = "admin"
)

// NavView is everything the client needs to draw the navigation chrome.
type NavView struct {
	AgeVerified bool     `json:"age_verified"`
	LoggedIn    bool     `json:"logged_in"`
	Username    string   `json:"username,omitempty"`
	IsAdmin     bool     `json:"is_admin"`
	Views       []string `json:"views"`
	DonateURL   string   `json:"donate_url"`
}

func (h *Handler) navView(r *http.Request, s utils.SessionData) NavView {
	nav := NavView{
		AgeVerified: s.AgeVerified,
		LoggedIn:    s.LoggedIn(),
		Username:    s.Username,
		DonateURL:   h.donateURL,
	}

	switch {
	case !s.AgeVerified:
		nav.Views = []string{ViewAgeGate}
	case !s.LoggedIn():
		nav.Views = []string{ViewBrowse, ViewLogin, ViewRegister}
	case h.svc.IsAdmin(r.Context(), s.Username):
		nav.IsAdmin = true
		nav.Views = []string{ViewBrowse, ViewPost, ViewAdmin}
	default:
		nav.Views = []string{ViewBrowse, ViewPost, ViewMyAds}
	}
	return nav
}

func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	s, _ := utils.GetSessionFromContext(r.Context())
	utils.WriteJSON(w, http.StatusOK, h.navView(r, s))
}

// VerifyAge records that the visitor confirmed they are 18 or older.
func (h *Handler) VerifyAge(w http.ResponseWriter, r *http.Request) {
	s, _ := utils.GetSessionFromContext(r.Context())
	s.AgeVerified = true
	if err := h.sessions.Update(r.Context(), s); err != nil {
		log.Printf("[auth] age verification: %v", err)
		http.Error(w, "Couldn't update session", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.navView(r, s))
}

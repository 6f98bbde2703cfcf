package ads

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/PrivatePlace/PP-Backend/internal/auth"
	"github.com/PrivatePlace/PP-Backend/internal/common"
	"github.com/PrivatePlace/PP-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

// ProfileLookup supplies the values used to prefill the ad form.
type ProfileLookup interface {
	Defaults(ctx context.Context, username string) (auth.PostDefaults, error)
}

type Handler struct {
	svc       *Service
	profiles  ProfileLookup
	maxUpload int64
}

func NewHandler(svc *Service, profiles ProfileLookup, maxUpload int64) *Handler {
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	return &Handler{svc: svc, profiles: profiles, maxUpload: maxUpload}
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		http.Error(w, ve.Message, http.StatusBadRequest)
	case errors.Is(err, common.ErrNotFound):
		http.Error(w, "Ad not found", http.StatusNotFound)
	default:
		log.Printf("[ads] %s: %v", fallback, err)
		http.Error(w, fallback, http.StatusInternalServerError)
	}
}

func (h *Handler) Browse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.svc.Browse(r.Context(), BrowseFilter{Query: q.Get("q"), Location: q.Get("location")})
	if err != nil {
		writeError(w, err, "Couldn't load ads")
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) Defaults(w http.ResponseWriter, r *http.Request) {
	username, _ := utils.GetUsernameFromContext(r.Context())
	d, err := h.profiles.Defaults(r.Context(), username)
	if err != nil {
		writeError(w, err, "Couldn't load profile")
		return
	}
	utils.WriteJSON(w, http.StatusOK, d)
}

// Submit accepts either a JSON body or a multipart form with an optional
// "photo" file part.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	username, _ := utils.GetUsernameFromContext(r.Context())

	var (
		req   SubmitRequest
		photo []byte
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
		if err := r.ParseMultipartForm(h.maxUpload); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				http.Error(w, "Upload too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "Invalid Request Format", http.StatusBadRequest)
			return
		}
		req = SubmitRequest{
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Location:    r.FormValue("location"),
			Contact:     r.FormValue("contact"),
		}
		if v := r.FormValue("age"); v != "" {
			age, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "Age must be a number", http.StatusBadRequest)
				return
			}
			req.Age = age
		}

		if f, _, err := r.FormFile("photo"); err == nil {
			photo, err = io.ReadAll(f)
			f.Close()
			if err != nil {
				http.Error(w, "Couldn't read photo", http.StatusBadRequest)
				return
			}
		} else if !errors.Is(err, http.ErrMissingFile) {
			http.Error(w, "Invalid Request Format", http.StatusBadRequest)
			return
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	res, err := h.svc.Submit(r.Context(), username, req, photo)
	if err != nil {
		writeError(w, err, "Failed to submit ad")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	username, _ := utils.GetUsernameFromContext(r.Context())
	v, err := h.svc.MyAds(r.Context(), username)
	if err != nil {
		writeError(w, err, "Couldn't load your ads")
		return
	}
	utils.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ModerationQueue(r.Context())
	if err != nil {
		writeError(w, err, "Couldn't load moderation queue")
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) moderate(to Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		reviewer, _ := utils.GetUsernameFromContext(r.Context())

		entry, err := h.svc.Moderate(r.Context(), id, reviewer, to)
		if err != nil {
			writeError(w, err, "Couldn't update ad")
			return
		}
		utils.WriteJSON(w, http.StatusOK, entry)
	}
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) { h.moderate(StatusApproved)(w, r) }

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) { h.moderate(StatusRejected)(w, r) }

func (h *Handler) Reviews(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Reviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "Couldn't load reviews")
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

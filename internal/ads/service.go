package ads

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/PrivatePlace/PP-Backend/internal/common"
	"github.com/google/uuid"
)

const (
	MinAge = 18
	MaxAge = 120
)

// ErrAdNotFound is returned for moderation on an id that doesn't exist.
var ErrAdNotFound = fmt.Errorf("ad %w", common.ErrNotFound)

const (
	msgMissingFields = "Please fill in all fields including contact information"
	msgNoAds         = "No ads available yet. Be the first to post!"
	msgNoMatches     = "No ads match your search criteria"
	msgPhotoFailed   = "Photo upload failed; your ad was saved without a photo"
)

// Uploader stores an ad photo and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, adID string) (string, error)
}

type SubmitRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Contact     string `json:"contact"`
	Age         int    `json:"age"`
}

type SubmitResult struct {
	Ad      *Ad    `json:"ad"`
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}

type BrowseResult struct {
	Ads     []Ad   `json:"ads"`
	Message string `json:"message,omitempty"`
}

// MyAdsView splits an owner's ads by moderation status.
type MyAdsView struct {
	Approved      []Ad `json:"approved"`
	Pending       []Ad `json:"pending"`
	Rejected      []Ad `json:"rejected"`
	ApprovedCount int  `json:"approved_count"`
	PendingCount  int  `json:"pending_count"`
	RejectedCount int  `json:"rejected_count"`
}

type Service struct {
	store    Store
	uploader Uploader
	now      func() time.Time
	newID    func() string
}

// NewService wires the ad workflow. uploader may be nil, in which case photos
// are ignored with a warning.
func NewService(store Store, uploader Uploader) *Service {
	return &Service{
		store:    store,
		uploader: uploader,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

func validateSubmission(req SubmitRequest) error {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" ||
		strings.TrimSpace(req.Location) == "" || strings.TrimSpace(req.Contact) == "" {
		return common.Invalid("", msgMissingFields)
	}
	if req.Age < MinAge {
		return common.Invalid("age", "You must be 18 or older")
	}
	if req.Age > MaxAge {
		return common.Invalid("age", "Age must be 120 or less")
	}
	return nil
}

// Submit stores a new pending ad. A photo that fails to upload doesn't block
// the ad; the result carries a warning instead.
func (s *Service) Submit(ctx context.Context, owner string, req SubmitRequest, photo []byte) (*SubmitResult, error) {
	if owner == "" {
		return nil, common.Invalid("owner", "Login required")
	}
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	ad := &Ad{
		ID:          s.newID(),
		Owner:       owner,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Contact:     req.Contact,
		Age:         req.Age,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res := &SubmitResult{Ad: ad, Message: "Ad submitted! It will be visible once approved by a moderator."}
	if len(photo) > 0 {
		if s.uploader == nil {
			res.Warning = msgPhotoFailed
		} else if url, err := s.uploader.Upload(ctx, photo, ad.ID); err != nil {
			log.Printf("[ads] photo upload for %s: %v", ad.ID, err)
			res.Warning = msgPhotoFailed
		} else {
			ad.PhotoURL = url
		}
	}

	if err := s.store.CreateAd(ctx, ad); err != nil {
		return nil, fmt.Errorf("save ad: %w", err)
	}
	return res, nil
}

func newestFirst(list []Ad) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
}

// Browse lists approved ads matching the filter, newest first.
func (s *Service) Browse(ctx context.Context, f BrowseFilter) (*BrowseResult, error) {
	approved, err := s.store.ListByStatus(ctx, StatusApproved)
	if err != nil {
		return nil, err
	}
	newestFirst(approved)

	res := &BrowseResult{Ads: f.Apply(approved)}
	switch {
	case len(approved) == 0:
		res.Message = msgNoAds
	case len(res.Ads) == 0:
		res.Message = msgNoMatches
	}
	if res.Ads == nil {
		res.Ads = []Ad{}
	}
	return res, nil
}

func (s *Service) MyAds(ctx context.Context, owner string) (*MyAdsView, error) {
	mine, err := s.store.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	newestFirst(mine)

	v := &MyAdsView{Approved: []Ad{}, Pending: []Ad{}, Rejected: []Ad{}}
	for _, ad := range mine {
		switch ad.Status {
		case StatusApproved:
			v.Approved = append(v.Approved, ad)
		case StatusRejected:
			v.Rejected = append(v.Rejected, ad)
		default:
			v.Pending = append(v.Pending, ad)
		}
	}
	v.ApprovedCount = len(v.Approved)
	v.PendingCount = len(v.Pending)
	v.RejectedCount = len(v.Rejected)
	return v, nil
}

// ModerationQueue returns pending ads, oldest first.
func (s *Service) ModerationQueue(ctx context.Context) ([]Ad, error) {
	pending, err := s.store.ListByStatus(ctx, StatusPending)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].CreatedAt.Before(pending[j].CreatedAt) })
	if pending == nil {
		pending = []Ad{}
	}
	return pending, nil
}

func (s *Service) Approve(ctx context.Context, id, reviewer string) (*ReviewLog, error) {
	return s.Moderate(ctx, id, reviewer, StatusApproved)
}

func (s *Service) Reject(ctx context.Context, id, reviewer string) (*ReviewLog, error) {
	return s.Moderate(ctx, id, reviewer, StatusRejected)
}

// Moderate moves an ad to the given status and records who did it.
func (s *Service) Moderate(ctx context.Context, id, reviewer string, to Status) (*ReviewLog, error) {
	if to != StatusApproved && to != StatusRejected {
		return nil, common.Invalid("status", fmt.Sprintf("cannot move ad to %q", to))
	}

	entry := &ReviewLog{
		ID:        s.newID(),
		AdID:      id,
		Reviewer:  reviewer,
		ToStatus:  to,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.UpdateStatus(ctx, entry); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}
	log.Printf("[ads] %s moved %s from %s to %s", reviewer, id, entry.FromStatus, entry.ToStatus)
	return entry, nil
}

func (s *Service) Reviews(ctx context.Context, id string) ([]ReviewLog, error) {
	if _, err := s.store.GetAd(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}
	out, err := s.store.ListReviews(ctx, id)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []ReviewLog{}
	}
	return out, nil
}

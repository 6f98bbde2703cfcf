// Package filestore keeps users, ads and review logs in flat YAML files under
// one directory. It is meant for single-instance deployments and local
// development; every write rewrites the whole file through a temp file and
// rename.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/PrivatePlace/PP-Backend/internal/ads"
	"github.com/PrivatePlace/PP-Backend/internal/auth"
	"github.com/PrivatePlace/PP-Backend/internal/common"
	"github.com/goccy/go-yaml"
)

const (
	usersFile   = "users.yaml"
	adsFile     = "ads.yaml"
	reviewsFile = "reviews.yaml"
)

type Store struct {
	mu  sync.RWMutex
	dir string

	users   []auth.User
	ads     []ads.Ad
	reviews []ads.ReviewLog
}

var (
	_ auth.UserStore = (*Store)(nil)
	_ ads.Store      = (*Store)(nil)
)

// Open loads the files in dir, creating the directory if needed. Missing
// files are treated as empty.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	s := &Store{dir: dir}
	if err := s.load(usersFile, &s.users); err != nil {
		return nil, err
	}
	if err := s.load(adsFile, &s.ads); err != nil {
		return nil, err
	}
	if err := s.load(reviewsFile, &s.reviews); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(name string, v any) error {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// save must be called with mu held for writing.
func (s *Store) save(name string, v any) error {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, u *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return common.ErrAlreadyExists
		}
	}
	s.users = append(s.users, *u)
	if err := s.save(usersFile, s.users); err != nil {
		s.users = s.users[:len(s.users)-1]
		return err
	}
	return nil
}

func (s *Store) FindUser(ctx context.Context, username string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *Store) SetRole(ctx context.Context, username, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Username != username {
			continue
		}
		prev := s.users[i].Role
		s.users[i].Role = role
		if err := s.save(usersFile, s.users); err != nil {
			s.users[i].Role = prev
			return err
		}
		return nil
	}
	return common.ErrNotFound
}

func (s *Store) CreateAd(ctx context.Context, ad *ads.Ad) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOfAd(ad.ID) >= 0 {
		return common.ErrAlreadyExists
	}
	s.ads = append(s.ads, *ad)
	if err := s.save(adsFile, s.ads); err != nil {
		s.ads = s.ads[:len(s.ads)-1]
		return err
	}
	return nil
}

func (s *Store) indexOfAd(id string) int {
	for i := range s.ads {
		if s.ads[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) GetAd(ctx context.Context, id string) (*ads.Ad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOfAd(id)
	if i < 0 {
		return nil, common.ErrNotFound
	}
	out := s.ads[i]
	return &out, nil
}

func (s *Store) filterAds(keep func(ads.Ad) bool) []ads.Ad {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []ads.Ad
	for _, ad := range s.ads {
		if keep(ad) {
			out = append(out, ad)
		}
	}
	return out
}

func (s *Store) ListByStatus(ctx context.Context, status ads.Status) ([]ads.Ad, error) {
	return s.filterAds(func(ad ads.Ad) bool { return ad.Status == status }), nil
}

func (s *Store) ListByOwner(ctx context.Context, owner string) ([]ads.Ad, error) {
	return s.filterAds(func(ad ads.Ad) bool { return ad.Owner == owner }), nil
}

// UpdateStatus appends the review entry first, then rewrites the ad.
func (s *Store) UpdateStatus(ctx context.Context, entry *ads.ReviewLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOfAd(entry.AdID)
	if i < 0 {
		return common.ErrNotFound
	}
	if err := ads.CanTransition(s.ads[i].Status, entry.ToStatus); err != nil {
		return err
	}
	entry.FromStatus = s.ads[i].Status

	s.reviews = append(s.reviews, *entry)
	if err := s.save(reviewsFile, s.reviews); err != nil {
		s.reviews = s.reviews[:len(s.reviews)-1]
		return err
	}

	prev := s.ads[i]
	s.ads[i].Status = entry.ToStatus
	s.ads[i].UpdatedAt = entry.CreatedAt
	if err := s.save(adsFile, s.ads); err != nil {
		s.ads[i] = prev
		return err
	}
	return nil
}

func (s *Store) ListReviews(ctx context.Context, adID string) ([]ads.ReviewLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []ads.ReviewLog
	for _, r := range s.reviews {
		if r.AdID == adID {
			out = append(out, r)
		}
	}
	return out, nil
}

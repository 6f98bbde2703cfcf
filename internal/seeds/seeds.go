// Package seeds loads demo users and ads from a YAML file. Running it twice
// is harmless: existing users and ads are left alone.
package seeds

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/PrivatePlace/PP-Backend/internal/ads"
	"github.com/PrivatePlace/PP-Backend/internal/auth"
	"github.com/PrivatePlace/PP-Backend/internal/common"
	"github.com/goccy/go-yaml"
)

type File struct {
	Users []auth.RegisterRequest `yaml:"users"`
	Ads   []SeedAd               `yaml:"ads"`
}

type SeedAd struct {
	ID          string     `yaml:"id"`
	Owner       string     `yaml:"owner"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Location    string     `yaml:"location"`
	Contact     string     `yaml:"contact"`
	Age         int        `yaml:"age"`
	Status      ads.Status `yaml:"status"`
	// AgeHours backdates created_at so the browse order is stable.
	AgeHours int `yaml:"age_hours"`
}

type Counts struct {
	Users, SkippedUsers int
	Ads, SkippedAds     int
}

func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &f, nil
}

// SeedAll registers every user through the auth service and writes ads
// straight to the store with their listed status.
func SeedAll(ctx context.Context, f *File, users *auth.Service, store ads.Store) (Counts, error) {
	var c Counts

	for _, u := range f.Users {
		if u.ConfirmPassword == "" {
			u.ConfirmPassword = u.Password
		}
		_, err := users.Register(ctx, u)
		var ve *common.ValidationError
		switch {
		case err == nil:
			c.Users++
		case errors.As(err, &ve) && ve.Field == "username":
			c.SkippedUsers++
		default:
			return c, fmt.Errorf("seed user %q: %w", u.Username, err)
		}
	}

	now := time.Now().UTC()
	for _, a := range f.Ads {
		if _, err := store.GetAd(ctx, a.ID); err == nil {
			c.SkippedAds++
			continue
		} else if !errors.Is(err, common.ErrNotFound) {
			return c, err
		}

		status := a.Status
		if status == "" {
			status = ads.StatusPending
		}
		if !status.Valid() {
			return c, fmt.Errorf("seed ad %q: unknown status %q", a.ID, status)
		}

		created := now.Add(-time.Duration(a.AgeHours) * time.Hour)
		ad := &ads.Ad{
			ID:          a.ID,
			Owner:       a.Owner,
			Title:       a.Title,
			Description: a.Description,
			Location:    a.Location,
			Contact:     a.Contact,
			Age:         a.Age,
			Status:      status,
			CreatedAt:   created,
			UpdatedAt:   created,
		}
		if err := store.CreateAd(ctx, ad); err != nil {
			return c, fmt.Errorf("seed ad %q: %w", a.ID, err)
		}
		c.Ads++
	}

	log.Printf("[seeds] users: %d created, %d existing; ads: %d created, %d existing",
		c.Users, c.SkippedUsers, c.Ads, c.SkippedAds)
	return c, nil
}

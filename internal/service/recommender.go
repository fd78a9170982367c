package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/trelix/recommender/internal/domain"
)

// Bounds for the requested recommendation count.
const (
	MinLimit     = 1
	MaxLimit     = 50
	DefaultLimit = 10
)

// ErrInvalidLimit reports a result-count bound outside [MinLimit, MaxLimit].
// It is a caller mistake and is never retried.
var ErrInvalidLimit = fmt.Errorf("limit must be between %d and %d", MinLimit, MaxLimit)

// ErrDataUnavailable wraps any failure reading the external store, including
// malformed documents rejected at the repository boundary.
var ErrDataUnavailable = errors.New("store data unavailable")

// CatalogRepository is the read-only storage contract required by the recommender.
type CatalogRepository interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListPreferences(ctx context.Context) ([]domain.Preference, error)
	ListCourses(ctx context.Context) ([]domain.Course, error)
}

// RecommenderService resolves a user's content-type preferences against the
// course catalog. Each call works on a snapshot loaded fresh from the store;
// the service itself holds no mutable state.
type RecommenderService struct {
	repo CatalogRepository
}

// NewRecommenderService constructs a RecommenderService over the given repository.
func NewRecommenderService(repo CatalogRepository) *RecommenderService {
	return &RecommenderService{repo: repo}
}

// GetRecommendations returns up to limit courses whose normalized resource
// type matches one of the user's stored preferences, in catalog order. An
// unknown user is a valid empty state, not an error.
func (s *RecommenderService) GetRecommendations(ctx context.Context, userID string, limit int) (domain.Recommendation, error) {
	if limit < MinLimit || limit > MaxLimit {
		return domain.Recommendation{}, ErrInvalidLimit
	}

	prefs, catalog, err := s.loadSnapshot(ctx)
	if err != nil {
		return domain.Recommendation{}, err
	}

	resolved := resolvePreferences(userID, prefs)

	return domain.Recommendation{
		UserID:      userID,
		Preferences: distinctLabels(resolved),
		Courses:     matchCourses(resolved, catalog, limit),
	}, nil
}

// loadSnapshot reads the three collections for this request. The users
// collection carries nothing the matcher needs, but scanning it keeps the
// request honest about store health: a broken users collection fails loudly
// instead of surfacing as a silently empty response later.
func (s *RecommenderService) loadSnapshot(ctx context.Context) ([]domain.Preference, []domain.Course, error) {
	if _, err := s.repo.ListUsers(ctx); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	prefs, err := s.repo.ListPreferences(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	catalog, err := s.repo.ListCourses(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	return prefs, normalizeCatalog(catalog), nil
}

// normalizeCatalog returns a request-local copy of the catalog with every
// resource type normalized. The normalized label is also what the API echoes
// back; id, title, level and price pass through untouched.
func normalizeCatalog(catalog []domain.Course) []domain.Course {
	normalized := make([]domain.Course, len(catalog))
	for i, course := range catalog {
		course.ResourceType = normalizeResourceType(course.ResourceType)
		normalized[i] = course
	}
	return normalized
}

// resolvePreferences returns the normalized resource types preferred by the
// given user, preserving stored order. Duplicates pass through unchanged;
// matching downstream uses set semantics so they cannot affect selection.
func resolvePreferences(userID string, prefs []domain.Preference) []string {
	resolved := make([]string, 0, len(prefs))
	for _, pref := range prefs {
		if pref.UserID != userID {
			continue
		}
		resolved = append(resolved, normalizeResourceType(pref.ResourceType))
	}
	return resolved
}

// matchCourses retains catalog courses whose resource type is one of the
// preferred labels, in catalog order, truncated to the first limit matches.
// Catalog order is the only ranking; there is no secondary sort key.
func matchCourses(preferences []string, catalog []domain.Course, limit int) []domain.Course {
	matched := make([]domain.Course, 0, limit)

	// A user with zero preferences gets zero recommendations regardless of
	// catalog contents.
	if len(preferences) == 0 {
		return matched
	}

	preferred := make(map[string]struct{}, len(preferences))
	for _, label := range preferences {
		preferred[label] = struct{}{}
	}

	for _, course := range catalog {
		if _, ok := preferred[course.ResourceType]; !ok {
			continue
		}
		matched = append(matched, course)
		if len(matched) == limit {
			break
		}
	}
	return matched
}

// distinctLabels deduplicates the echoed preference list, keeping the first
// occurrence of each label in place.
func distinctLabels(labels []string) []string {
	distinct := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		distinct = append(distinct, label)
	}
	return distinct
}

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/trelix/recommender/internal/domain"
)

type stubRepository struct {
	users       []domain.User
	preferences []domain.Preference
	courses     []domain.Course

	usersErr       error
	preferencesErr error
	coursesErr     error

	usersScanned bool
}

func (s *stubRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	if s.usersErr != nil {
		return nil, s.usersErr
	}
	s.usersScanned = true
	return s.users, nil
}

func (s *stubRepository) ListPreferences(ctx context.Context) ([]domain.Preference, error) {
	if s.preferencesErr != nil {
		return nil, s.preferencesErr
	}
	return s.preferences, nil
}

func (s *stubRepository) ListCourses(ctx context.Context) ([]domain.Course, error) {
	if s.coursesErr != nil {
		return nil, s.coursesErr
	}
	return s.courses, nil
}

func TestGetRecommendations_MatchesNormalizedPreference(t *testing.T) {
	repo := &stubRepository{
		preferences: []domain.Preference{
			{UserID: "u1", ResourceType: " Video "},
		},
		courses: []domain.Course{
			{ID: "c1", Title: "Go Basics", ResourceType: "video", Level: "beginner", Price: 10},
			{ID: "c2", Title: "Go Quiz", ResourceType: "quiz", Level: "beginner", Price: 5},
		},
	}
	svc := NewRecommenderService(repo)

	result, err := svc.GetRecommendations(context.Background(), "u1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Courses) != 1 || result.Courses[0].ID != "c1" {
		t.Fatalf("expected exactly course c1, got %+v", result.Courses)
	}
	if len(result.Preferences) != 1 || result.Preferences[0] != "video" {
		t.Fatalf("expected normalized preference [video], got %v", result.Preferences)
	}
	if !repo.usersScanned {
		t.Fatal("expected users collection to be scanned with the snapshot")
	}
}

func TestGetRecommendations_VariantSpellingMatches(t *testing.T) {
	repo := &stubRepository{
		preferences: []domain.Preference{
			{UserID: "u1", ResourceType: " interactive exercice"},
		},
		courses: []domain.Course{
			{ID: "c1", ResourceType: "interactive exercice"},
		},
	}
	svc := NewRecommenderService(repo)

	result, err := svc.GetRecommendations(context.Background(), "u1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Courses) != 1 || result.Courses[0].ID != "c1" {
		t.Fatalf("expected course c1 to match, got %+v", result.Courses)
	}
}

func TestGetRecommendations_LimitBounds(t *testing.T) {
	repo := &stubRepository{}
	svc := NewRecommenderService(repo)

	for _, limit := range []int{0, 51, -1} {
		_, err := svc.GetRecommendations(context.Background(), "u1", limit)
		if !errors.Is(err, ErrInvalidLimit) {
			t.Fatalf("limit %d: expected ErrInvalidLimit, got %v", limit, err)
		}
	}

	for _, limit := range []int{1, 50} {
		if _, err := svc.GetRecommendations(context.Background(), "u1", limit); err != nil {
			t.Fatalf("limit %d: unexpected error: %v", limit, err)
		}
	}
}

func TestGetRecommendations_TruncatesToLimit(t *testing.T) {
	repo := &stubRepository{
		preferences: []domain.Preference{
			{UserID: "u1", ResourceType: "video"},
		},
	}
	for i := 0; i < 20; i++ {
		repo.courses = append(repo.courses, domain.Course{
			ID:           fmt.Sprintf("c%d", i+1),
			ResourceType: "video",
		})
	}
	svc := NewRecommenderService(repo)

	result, err := svc.GetRecommendations(context.Background(), "u1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Courses) != 5 {
		t.Fatalf("expected 5 courses, got %d", len(result.Courses))
	}
	// Catalog order is the only ranking.
	for i, course := range result.Courses {
		want := fmt.Sprintf("c%d", i+1)
		if course.ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, course.ID)
		}
	}
}

func TestGetRecommendations_PreservesCatalogOrderAcrossTypes(t *testing.T) {
	repo := &stubRepository{
		preferences: []domain.Preference{
			{UserID: "u1", ResourceType: "quiz"},
			{UserID: "u1", ResourceType: "video"},
		},
		courses: []domain.Course{
			{ID: "c1", ResourceType: "video"},
			{ID: "c2", ResourceType: "article"},
			{ID: "c3", ResourceType: "quiz"},
			{ID: "c4", ResourceType: "video"},
		},
	}
	svc := NewRecommenderService(repo)

	result, err := svc.GetRecommendations(context.Background(), "u1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := make([]string, 0, len(result.Courses))
	for _, c := range result.Courses {
		got = append(got, c.ID)
	}
	want := []string{"c1", "c3", "c4"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestGetRecommendations_UnknownUserIsEmptyNotError(t *testing.T) {
	repo := &stubRepository{
		preferences: []domain.Preference{
			{UserID: "u1", ResourceType: "video"},
		},
		courses: []domain.Course{
			{ID: "c1", ResourceType: "video"},
		},
	}
	svc := NewRecommenderService(repo)

	result, err := svc.GetRecommendations(context.Background(), "ghost", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Preferences) != 0 {
		t.Fatalf("expected no preferences, got %v", result.Preferences)
	}
	if len(result.Courses) != 0 {
		t.Fatalf("expected no courses, got %+v", result.Courses)
	}
}

func TestGetRecommendations_EveryResultTypeIsPreferred(t *testing.T) {
	repo := &stubRepository{
		preferences: []domain.Preference{
			{UserID: "u1", ResourceType: "Video"},
			{UserID: "u1", ResourceType: "PODCAST "},
			{UserID: "u2", ResourceType: "quiz"},
		},
		courses: []domain.Course{
			{ID: "c1", ResourceType: "video"},
			{ID: "c2", ResourceType: "quiz"},
			{ID: "c3", ResourceType: "Podcast"},
			{ID: "c4"},
		},
	}
	svc := NewRecommenderService(repo)

	result, err := svc.GetRecommendations(context.Background(), "u1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	preferred := make(map[string]struct{}, len(result.Preferences))
	for _, label := range result.Preferences {
		preferred[label] = struct{}{}
	}
	for _, course := range result.Courses {
		if _, ok := preferred[course.ResourceType]; !ok {
			t.Fatalf("course %s has resource type %q outside preferences %v",
				course.ID, course.ResourceType, result.Preferences)
		}
	}
	if len(result.Courses) != 2 {
		t.Fatalf("expected c1 and c3, got %+v", result.Courses)
	}
}

func TestGetRecommendations_DeduplicatesEchoedPreferences(t *testing.T) {
	repo := &stubRepository{
		preferences: []domain.Preference{
			{UserID: "u1", ResourceType: "Video"},
			{UserID: "u1", ResourceType: "quiz"},
			{UserID: "u1", ResourceType: " video "},
		},
	}
	svc := NewRecommenderService(repo)

	result, err := svc.GetRecommendations(context.Background(), "u1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"video", "quiz"}
	if len(result.Preferences) != len(want) {
		t.Fatalf("expected %v, got %v", want, result.Preferences)
	}
	for i := range want {
		if result.Preferences[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, result.Preferences)
		}
	}
}

func TestGetRecommendations_StoreFailureIsDataUnavailable(t *testing.T) {
	storeErr := errors.New("connection refused")

	for name, repo := range map[string]*stubRepository{
		"users":       {usersErr: storeErr},
		"preferences": {preferencesErr: storeErr},
		"courses":     {coursesErr: storeErr},
	} {
		_, err := NewRecommenderService(repo).GetRecommendations(context.Background(), "u1", 10)
		if !errors.Is(err, ErrDataUnavailable) {
			t.Fatalf("%s failure: expected ErrDataUnavailable, got %v", name, err)
		}
	}
}

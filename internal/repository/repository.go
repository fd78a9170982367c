package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trelix/recommender/internal/domain"
	"github.com/trelix/recommender/internal/store"
)

// Collection names inside the Trelix database.
const (
	CollectionUsers       = "users"
	CollectionPreferences = "preferences"
	CollectionCourses     = "courses"
)

// Mongo field names follow the original platform schema.
const (
	fieldID           = "_id"
	fieldUser         = "user"
	fieldResourceType = "typeRessource"
	fieldTitle        = "title"
	fieldLevel        = "level"
	fieldPrice        = "price"
	fieldFullName     = "fullName"
	fieldEmail        = "email"
)

// MissingResourceType is the literal category assigned to a course whose
// document carries no resource-type label.
const MissingResourceType = "other"

// ErrMalformedRecord indicates a stored document is missing a required field
// or carries a field of an unusable type.
var ErrMalformedRecord = errors.New("malformed store record")

// Repository reads the three Trelix collections and decodes them into typed
// domain records, validating document shape at the boundary.
type Repository struct {
	client store.Client
}

// New instantiates a Repository backed by the supplied store client.
func New(client store.Client) *Repository {
	return &Repository{client: client}
}

// ListPreferences scans the preferences collection. Both the user identifier
// and the resource-type label are required; a document lacking either fails
// the whole scan rather than being silently skipped.
func (r *Repository) ListPreferences(ctx context.Context) ([]domain.Preference, error) {
	records, err := r.client.FindAll(ctx, CollectionPreferences)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}

	prefs := make([]domain.Preference, 0, len(records))
	for i, record := range records {
		userID, ok := idToString(record[fieldUser])
		if !ok || userID == "" {
			return nil, fmt.Errorf("%w: preference %d has no user identifier", ErrMalformedRecord, i)
		}
		label, ok := toString(record[fieldResourceType])
		if !ok || label == "" {
			return nil, fmt.Errorf("%w: preference %d has no resource type", ErrMalformedRecord, i)
		}
		prefs = append(prefs, domain.Preference{
			UserID:       userID,
			ResourceType: label,
		})
	}
	return prefs, nil
}

// ListCourses scans the courses collection in stored order. A missing
// resource-type label maps to the "other" category; a missing ID or a
// negative price is a malformed record.
func (r *Repository) ListCourses(ctx context.Context) ([]domain.Course, error) {
	records, err := r.client.FindAll(ctx, CollectionCourses)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	courses := make([]domain.Course, 0, len(records))
	for i, record := range records {
		id, ok := idToString(record[fieldID])
		if !ok || id == "" {
			return nil, fmt.Errorf("%w: course %d has no id", ErrMalformedRecord, i)
		}

		label := MissingResourceType
		if raw, present := record[fieldResourceType]; present && raw != nil {
			value, ok := toString(raw)
			if !ok {
				return nil, fmt.Errorf("%w: course %s has a non-string resource type", ErrMalformedRecord, id)
			}
			if value != "" {
				label = value
			}
		}

		price := 0.0
		if raw, present := record[fieldPrice]; present && raw != nil {
			value, ok := toFloat64(raw)
			if !ok {
				return nil, fmt.Errorf("%w: course %s has a non-numeric price", ErrMalformedRecord, id)
			}
			if value < 0 {
				return nil, fmt.Errorf("%w: course %s has a negative price", ErrMalformedRecord, id)
			}
			price = value
		}

		title, _ := toString(record[fieldTitle])
		level, _ := toString(record[fieldLevel])

		courses = append(courses, domain.Course{
			ID:           id,
			Title:        title,
			ResourceType: label,
			Level:        level,
			Price:        price,
		})
	}
	return courses, nil
}

// ListUsers scans the users collection. The recommender loads it alongside
// the other collections so a broken users collection fails the request at
// the boundary instead of going unnoticed.
func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	records, err := r.client.FindAll(ctx, CollectionUsers)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0, len(records))
	for i, record := range records {
		id, ok := idToString(record[fieldID])
		if !ok || id == "" {
			return nil, fmt.Errorf("%w: user %d has no id", ErrMalformedRecord, i)
		}
		fullName, _ := toString(record[fieldFullName])
		email, _ := toString(record[fieldEmail])
		users = append(users, domain.User{
			ID:       id,
			FullName: fullName,
			Email:    email,
		})
	}
	return users, nil
}

// idToString coerces stored identifiers to their string form. Mongo object
// IDs become their hex representation; numeric IDs from legacy records are
// rendered in decimal so they still compare equal to path parameters.
func idToString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case primitive.ObjectID:
		return v.Hex(), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

func toString(value any) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

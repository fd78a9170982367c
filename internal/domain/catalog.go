package domain

// Course is the canonical representation of a catalog item. ResourceType is
// the category label the matcher compares against user preferences; the
// remaining fields pass through to API responses untouched.
type Course struct {
	ID           string
	Title        string
	ResourceType string
	Level        string
	Price        float64
}

// Preference links a user to a preferred resource type. User IDs are opaque
// strings; preferences from different stores are always compared as strings.
type Preference struct {
	UserID       string
	ResourceType string
}

// User holds the fields of a stored platform user. The recommender scans the
// users collection for snapshot parity but never inspects individual users.
type User struct {
	ID       string
	FullName string
	Email    string
}

// Recommendation is the per-request result shape: the resolved preference
// labels (distinct, normalized) and the matched courses in catalog order.
// It is derived fresh for every request and never persisted.
type Recommendation struct {
	UserID      string
	Preferences []string
	Courses     []Course
}

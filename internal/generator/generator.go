package generator

import (
	"fmt"
	"math/rand"
	"time"
)

// Dataset contains the generated users, preferences and courses. Field names
// mirror the Trelix collections so the files can be ingested verbatim.
type Dataset struct {
	Users       []UserDoc       `json:"users"`
	Preferences []PreferenceDoc `json:"preferences"`
	Courses     []CourseDoc     `json:"courses"`
}

// UserDoc is a stored platform user.
type UserDoc struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// PreferenceDoc links a user to a preferred resource type. Labels are emitted
// with the messy casing and spacing real preference data carries.
type PreferenceDoc struct {
	User         string `json:"user"`
	ResourceType string `json:"typeRessource"`
}

// CourseDoc is a catalog course. ResourceType is omitted on a fraction of
// courses to exercise the "other" fallback downstream.
type CourseDoc struct {
	ID           string  `json:"_id"`
	Title        string  `json:"title"`
	ResourceType string  `json:"typeRessource,omitempty"`
	Level        string  `json:"level"`
	Price        float64 `json:"price"`
}

var resourceTypes = []string{
	"video",
	"quiz",
	"article",
	"podcast",
	"interactive exercice",
	"other",
}

var levels = []string{"beginner", "intermediate", "advanced"}

var topicFragments = []string{
	"Go", "Python", "JavaScript", "Databases", "Networking", "Security",
	"Machine Learning", "Web Development", "Cloud", "Data Structures",
}

var titleFragments = []string{
	"Introduction to", "Mastering", "Practical", "Advanced", "Fundamentals of",
	"Hands-on", "Crash Course:", "Deep Dive into",
}

// messyFormats render a clean label the way user-entered preference data
// actually arrives: stray whitespace, mixed case, variant spellings.
var messyFormats = []func(string) string{
	func(s string) string { return s },
	func(s string) string { return " " + s },
	func(s string) string { return s + " " },
	func(s string) string { return titleCase(s) },
	func(s string) string { return upper(s) },
}

// Generator produces a synthetic dataset aligned with the recommender schema.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.NumUsers <= 0 {
		cfg.NumUsers = def.NumUsers
	}
	if cfg.NumCourses <= 0 {
		cfg.NumCourses = def.NumCourses
	}
	if cfg.PreferencesPerUser <= 0 {
		cfg.PreferencesPerUser = def.PreferencesPerUser
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Generate synthesises users, preferences and courses deterministically for
// the configured seed.
func (g *Generator) Generate() Dataset {
	users := make([]UserDoc, g.cfg.NumUsers)
	prefs := make([]PreferenceDoc, 0, g.cfg.NumUsers*g.cfg.PreferencesPerUser)

	for i := range users {
		id := fmt.Sprintf("user-%04d", i+1)
		users[i] = UserDoc{
			ID:       id,
			FullName: fmt.Sprintf("Learner %04d", i+1),
			Email:    fmt.Sprintf("learner%04d@trelix.dev", i+1),
		}

		for j := 0; j < g.cfg.PreferencesPerUser; j++ {
			label := resourceTypes[g.rand.Intn(len(resourceTypes))]
			format := messyFormats[g.rand.Intn(len(messyFormats))]
			prefs = append(prefs, PreferenceDoc{
				User:         id,
				ResourceType: format(label),
			})
		}
	}

	courses := make([]CourseDoc, g.cfg.NumCourses)
	for i := range courses {
		course := CourseDoc{
			ID: fmt.Sprintf("course-%04d", i+1),
			Title: fmt.Sprintf("%s %s",
				titleFragments[g.rand.Intn(len(titleFragments))],
				topicFragments[g.rand.Intn(len(topicFragments))]),
			Level: levels[g.rand.Intn(len(levels))],
			Price: float64(g.rand.Intn(200)) / 2,
		}
		// Roughly one course in ten ships without a label.
		if g.rand.Intn(10) != 0 {
			course.ResourceType = resourceTypes[g.rand.Intn(len(resourceTypes))]
		}
		courses[i] = course
	}

	return Dataset{
		Users:       users,
		Preferences: prefs,
		Courses:     courses,
	}
}

func titleCase(s string) string {
	out := []rune(s)
	upperNext := true
	for i, r := range out {
		if r == ' ' {
			upperNext = true
			continue
		}
		if upperNext && r >= 'a' && r <= 'z' {
			out[i] = r - ('a' - 'A')
		}
		upperNext = false
	}
	return string(out)
}

func upper(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'a' && r <= 'z' {
			out[i] = r - ('a' - 'A')
		}
	}
	return string(out)
}

package generator

// Config controls the size and determinism of the generated dataset.
type Config struct {
	NumUsers           int
	NumCourses         int
	PreferencesPerUser int
	Seed               int64
}

// DefaultConfig returns the generation defaults used by cmd/datagen.
func DefaultConfig() Config {
	return Config{
		NumUsers:           50,
		NumCourses:         200,
		PreferencesPerUser: 2,
		Seed:               1,
	}
}

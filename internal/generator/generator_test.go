package generator

import "testing"

func TestGenerate_Deterministic(t *testing.T) {
	cfg := Config{NumUsers: 10, NumCourses: 30, PreferencesPerUser: 2, Seed: 7}

	first := New(cfg).Generate()
	second := New(cfg).Generate()

	if len(first.Users) != 10 || len(first.Courses) != 30 || len(first.Preferences) != 20 {
		t.Fatalf("unexpected dataset sizes: %d users, %d prefs, %d courses",
			len(first.Users), len(first.Preferences), len(first.Courses))
	}
	for i := range first.Preferences {
		if first.Preferences[i] != second.Preferences[i] {
			t.Fatalf("generation not deterministic at preference %d: %+v vs %+v",
				i, first.Preferences[i], second.Preferences[i])
		}
	}
	for i := range first.Courses {
		if first.Courses[i] != second.Courses[i] {
			t.Fatalf("generation not deterministic at course %d", i)
		}
	}
}

func TestGenerate_PreferencesReferenceGeneratedUsers(t *testing.T) {
	dataset := New(Config{NumUsers: 5, NumCourses: 10, PreferencesPerUser: 3, Seed: 3}).Generate()

	userIDs := make(map[string]struct{}, len(dataset.Users))
	for _, u := range dataset.Users {
		userIDs[u.ID] = struct{}{}
	}
	for _, pref := range dataset.Preferences {
		if _, ok := userIDs[pref.User]; !ok {
			t.Fatalf("preference references unknown user %q", pref.User)
		}
		if pref.ResourceType == "" {
			t.Fatal("preference generated without a label")
		}
	}
}

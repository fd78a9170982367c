package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/trelix/recommender/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		users       = flag.Int("users", cfg.NumUsers, "number of users to generate")
		courses     = flag.Int("courses", cfg.NumCourses, "number of catalog courses to generate")
		prefsPer    = flag.Int("prefs-per-user", cfg.PreferencesPerUser, "preference entries per user")
		seed        = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir   = flag.String("output-dir", "seed-data", "directory to write users.json, preferences.json and courses.json")
		writeStdout = flag.Bool("stdout", false, "write combined dataset to stdout instead of files")
	)
	flag.Parse()

	gen := generator.New(generator.Config{
		NumUsers:           *users,
		NumCourses:         *courses,
		PreferencesPerUser: *prefsPer,
		Seed:               *seed,
	})
	dataset := gen.Generate()

	if *writeStdout {
		if err := json.NewEncoder(os.Stdout).Encode(dataset); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write dataset to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d users, %d preferences and %d courses into %s\n",
		len(dataset.Users), len(dataset.Preferences), len(dataset.Courses), *outputDir)
}

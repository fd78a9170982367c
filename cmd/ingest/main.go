package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/trelix/recommender/internal/config"
	"github.com/trelix/recommender/internal/generator"
	"github.com/trelix/recommender/internal/logging"
	"github.com/trelix/recommender/internal/repository"
	"github.com/trelix/recommender/internal/store"
)

var errMissingDataset = errors.New("dataset not found")

func main() {
	var (
		datasetDir  = flag.String("dataset-dir", "./seed-data", "Directory containing users.json, preferences.json and courses.json")
		usersPath   = flag.String("users", "", "Path to users.json (overrides dataset-dir)")
		prefsPath   = flag.String("preferences", "", "Path to preferences.json (overrides dataset-dir)")
		coursesPath = flag.String("courses", "", "Path to courses.json (overrides dataset-dir)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "ingest")

	userFile, prefFile, courseFile, err := resolveDatasetPaths(*datasetDir, *usersPath, *prefsPath, *coursesPath)
	if err != nil {
		logger.Error("dataset resolution failed", "error", err)
		os.Exit(1)
	}

	var (
		users   []generator.UserDoc
		prefs   []generator.PreferenceDoc
		courses []generator.CourseDoc
	)
	if err := loadJSON(userFile, &users); err != nil {
		logger.Error("failed to load users", "error", err, "path", userFile)
		os.Exit(1)
	}
	if err := loadJSON(prefFile, &prefs); err != nil {
		logger.Error("failed to load preferences", "error", err, "path", prefFile)
		os.Exit(1)
	}
	if err := loadJSON(courseFile, &courses); err != nil {
		logger.Error("failed to load courses", "error", err, "path", courseFile)
		os.Exit(1)
	}
	if len(users) == 0 || len(prefs) == 0 || len(courses) == 0 {
		logger.Error("dataset is incomplete",
			"users", len(users), "preferences", len(prefs), "courses", len(courses))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := buildStoreClient(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to create store client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("closing store client failed", "error", err)
		}
	}()

	start := time.Now()
	if err := client.InsertMany(ctx, repository.CollectionUsers, userRecords(users)); err != nil {
		logger.Error("user ingestion failed", "error", err)
		os.Exit(1)
	}
	if err := client.InsertMany(ctx, repository.CollectionPreferences, preferenceRecords(prefs)); err != nil {
		logger.Error("preference ingestion failed", "error", err)
		os.Exit(1)
	}
	if err := client.InsertMany(ctx, repository.CollectionCourses, courseRecords(courses)); err != nil {
		logger.Error("course ingestion failed", "error", err)
		os.Exit(1)
	}

	logger.Info("ingestion complete",
		"duration", time.Since(start).String(),
		"users", len(users),
		"preferences", len(prefs),
		"courses", len(courses))
}

func resolveDatasetPaths(baseDir, usersPath, prefsPath, coursesPath string) (string, string, string, error) {
	resolve := func(explicitPath, fallbackFile string) (string, error) {
		if explicitPath != "" {
			if _, err := os.Stat(explicitPath); err != nil {
				return "", fmt.Errorf("stat %s: %w", explicitPath, err)
			}
			return explicitPath, nil
		}
		path := filepath.Join(baseDir, fallbackFile)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", errMissingDataset, path)
		}
		return path, nil
	}

	userFile, err := resolve(usersPath, "users.json")
	if err != nil {
		return "", "", "", err
	}
	prefFile, err := resolve(prefsPath, "preferences.json")
	if err != nil {
		return "", "", "", err
	}
	courseFile, err := resolve(coursesPath, "courses.json")
	if err != nil {
		return "", "", "", err
	}
	return userFile, prefFile, courseFile, nil
}

func loadJSON(path string, target any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func userRecords(users []generator.UserDoc) []store.Record {
	records := make([]store.Record, 0, len(users))
	for _, u := range users {
		records = append(records, store.Record{
			"_id":      u.ID,
			"fullName": u.FullName,
			"email":    u.Email,
		})
	}
	return records
}

func preferenceRecords(prefs []generator.PreferenceDoc) []store.Record {
	records := make([]store.Record, 0, len(prefs))
	for _, p := range prefs {
		records = append(records, store.Record{
			"user":          p.User,
			"typeRessource": p.ResourceType,
		})
	}
	return records
}

func courseRecords(courses []generator.CourseDoc) []store.Record {
	records := make([]store.Record, 0, len(courses))
	for _, c := range courses {
		record := store.Record{
			"_id":   c.ID,
			"title": c.Title,
			"level": c.Level,
			"price": c.Price,
		}
		// Unlabelled courses stay unlabelled so the "other" fallback is
		// exercised end to end.
		if c.ResourceType != "" {
			record["typeRessource"] = c.ResourceType
		}
		records = append(records, record)
	}
	return records
}

func buildStoreClient(ctx context.Context, logger *slog.Logger, cfg config.Config) (store.Client, error) {
	if cfg.Store.URI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required for ingestion")
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Store.ConnectTimeout)
	defer cancel()

	client, err := store.NewMongoClient(connectCtx, store.Options{
		URI:         cfg.Store.URI,
		Database:    cfg.Store.Database,
		MaxPoolSize: cfg.Store.MaxPoolSize,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("connected to document store", "database", cfg.Store.Database)
	return client, nil
}

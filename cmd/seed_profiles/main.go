package main

import (
	"context"
	"errors"
	"log"
	"log/slog"

	"github.com/pageza/devfolio/backend/config"
	"github.com/pageza/devfolio/backend/internal/database"
	"github.com/pageza/devfolio/backend/internal/logging"
	"github.com/pageza/devfolio/backend/internal/models"
	"github.com/pageza/devfolio/backend/internal/service"
	"github.com/pageza/devfolio/backend/internal/types"
)

const seedPassword = "testpassword123"

type seedProfile struct {
	username     string
	name         string
	surname      string
	intro        string
	location     string
	main         map[string]string
	tags         []string
	projectTitle string
}

var seedProfiles = []seedProfile{
	{
		username: "johndoe", name: "John", surname: "Doe",
		intro: "Backend developer", location: "Warsaw",
		main:         map[string]string{"Go": "Services and CLIs", "PostgreSQL": "Schema design"},
		tags:         []string{"Docker", "Redis"},
		projectTitle: "Ledger API",
	},
	{
		username: "janesmith", name: "Jane", surname: "Smith",
		intro: "Frontend engineer", location: "Krakow",
		main:         map[string]string{"TypeScript": "Large SPAs"},
		tags:         []string{"React", "CSS"},
		projectTitle: "Design system",
	},
	{
		username: "bobwilson", name: "Bob", surname: "Wilson",
		intro: "Data engineer", location: "Gdansk",
		main:         map[string]string{"Python": "ETL pipelines"},
		tags:         []string{"Airflow"},
		projectTitle: "Warehouse loader",
	},
	{
		username: "alicecooper", name: "Alice", surname: "Cooper",
		intro: "DevOps", location: "Remote",
		tags:         []string{"Kubernetes", "Terraform", "Go"},
		projectTitle: "Cluster bootstrap",
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Setup(config.GetEnvironment(), cfg.LogLevel)

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db, cfg.MigrationDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	sync := service.NewProfileSync(service.SyncOptions{})
	auth := service.NewAuthService(db, sync, nil, cfg.JWTSecret, cfg.TokenTTL)
	profiles := service.NewProfileService(db, sync, nil)
	technologies := service.NewTechnologyService(db)

	slog.Info("seeding profiles", "count", len(seedProfiles))

	for _, seed := range seedProfiles {
		email := seed.username + "@example.com"
		user, _, err := auth.Register(ctx, &types.RegisterRequest{
			Username:        seed.username,
			Email:           email,
			FirstName:       seed.name,
			Password:        seedPassword,
			PasswordConfirm: seedPassword,
		})
		if errors.Is(err, service.ErrUserExists) {
			slog.Info("profile already exists, skipping", "username", seed.username)
			continue
		}
		if err != nil {
			log.Fatalf("Failed to register %s: %v", seed.username, err)
		}

		profile, err := profiles.UpdateProfile(ctx, user.ID, &types.UpdateProfileRequest{
			Nickname:   seed.username,
			Email:      email,
			Name:       seed.name,
			Surname:    seed.surname,
			ShortIntro: seed.intro,
			Location:   seed.location,
		}, nil)
		if err != nil {
			log.Fatalf("Failed to fill profile %s: %v", seed.username, err)
		}

		for name, description := range seed.main {
			if _, err := technologies.Create(ctx, user.ID, &types.TechnologyRequest{Name: name, Description: description}); err != nil {
				log.Fatalf("Failed to add technology %s: %v", name, err)
			}
		}
		for _, name := range seed.tags {
			if _, err := technologies.Create(ctx, user.ID, &types.TechnologyRequest{Name: name}); err != nil {
				log.Fatalf("Failed to add tag %s: %v", name, err)
			}
		}

		project := &models.Project{OwnerID: profile.ID, Title: seed.projectTitle}
		if err := db.WithContext(ctx).Create(project).Error; err != nil {
			log.Fatalf("Failed to add project for %s: %v", seed.username, err)
		}

		slog.Info("seeded profile", "username", seed.username, "profile_id", profile.ID)
	}

	slog.Info("seeding complete", "password", seedPassword)
}

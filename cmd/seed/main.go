package main

import (
	"context"
	"flag"
	"time"

	"github.com/joho/godotenv"

	"github.com/roomly/rental-system/internal/core/domain"
	"github.com/roomly/rental-system/internal/core/ports"
	"github.com/roomly/rental-system/internal/core/service"
	"github.com/roomly/rental-system/internal/infrastructure/config"
	mongodb "github.com/roomly/rental-system/internal/infrastructure/db/mongo"
	"github.com/roomly/rental-system/internal/infrastructure/session"
	"github.com/roomly/rental-system/pkg/logger"
)

// Seeds a demo data set: three accounts, two listings, one pending request
// and one accepted request with its active rental.
func main() {
	withAdmin := flag.Bool("admin", false, "also create an admin account")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer mongoClient.Disconnect(context.Background())

	if err := mongodb.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("schema setup failed")
	}

	users := mongodb.NewUserRepository(db)
	rooms := mongodb.NewRoomRepository(db)
	requests := mongodb.NewRequestRepository(db)
	rentals := mongodb.NewRentalRepository(db)

	locks := service.NewRoomLocks()
	auth := service.NewAuthService(users, session.NewMemoryStore(), cfg.JWTSecret, cfg.TokenTTL, log)
	roomSvc := service.NewRoomService(rooms, users, requests, rentals, locks, nil, log)
	requestSvc := service.NewRequestService(requests, rooms, rentals, locks, log)

	accounts := []ports.RegisterInput{
		{Name: "Marta Owner", Email: "marta@example.com", Password: "demo-password"},
		{Name: "Pablo Tenant", Email: "pablo@example.com", Password: "demo-password"},
		{Name: "Lucia Tenant", Email: "lucia@example.com", Password: "demo-password"},
	}
	if *withAdmin {
		accounts = append(accounts, ports.RegisterInput{
			Name:     "Admin",
			Email:    "admin@example.com",
			Password: "demo-password",
			Role:     domain.RoleAdmin,
		})
	}

	for _, in := range accounts {
		if _, err := auth.Register(ctx, in); err != nil {
			log.Warn().Err(err).Str("email", in.Email).Msg("skipping account")
		}
	}

	centro, err := roomSvc.Create(ctx, ports.CreateRoomInput{
		Address:    "Calle Mayor 12",
		City:       "Madrid",
		Lat:        40.4168,
		Lon:        -3.7038,
		Price:      450,
		OwnerEmail: "marta@example.com",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seeding rooms failed")
	}

	granvia, err := roomSvc.Create(ctx, ports.CreateRoomInput{
		Address:    "Gran Via 8",
		City:       "Madrid",
		Price:      520,
		OwnerEmail: "marta@example.com",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seeding rooms failed")
	}

	accepted, err := requestSvc.Create(ctx, centro.ID, "pablo@example.com")
	if err != nil {
		log.Fatal().Err(err).Msg("seeding requests failed")
	}
	if _, err := requestSvc.Create(ctx, granvia.ID, "lucia@example.com"); err != nil {
		log.Fatal().Err(err).Msg("seeding requests failed")
	}

	rental, err := requestSvc.Accept(ctx, accepted.ID, "marta@example.com")
	if err != nil {
		log.Fatal().Err(err).Msg("accepting seed request failed")
	}

	log.Info().
		Str("room", centro.ID).
		Str("rental", rental.ID).
		Msg("seed complete")
}

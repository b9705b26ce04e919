package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/pawsuite/grooming-booking/internal/booking"
	"github.com/pawsuite/grooming-booking/internal/config"
	"github.com/pawsuite/grooming-booking/internal/db"
	"github.com/pawsuite/grooming-booking/internal/storage"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	demo := flag.Int("demo", 0, "also create this many demo bookings under a demo session")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, closeStore, err := connectStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store connection error: %v", err)
	}
	defer closeStore()

	catalog := booking.NewCatalog(store)
	if err := catalog.EnsureSeeded(ctx); err != nil {
		log.Fatalf("seed catalog: %v", err)
	}
	log.Println("catalog seeded")

	if *demo > 0 {
		if err := seedDemoBookings(ctx, store, catalog, cfg, *demo); err != nil {
			log.Fatalf("seed demo bookings: %v", err)
		}
	}

	log.Println("seed complete")
}

// seedDemoBookings logs a fake user in and books count appointments through
// the real workflow, so demo data obeys the same rules as live bookings.
func seedDemoBookings(ctx context.Context, store storage.Store, catalog *booking.Catalog, cfg config.Config, count int) error {
	gofakeit.Seed(time.Now().UnixNano())

	hours := booking.Hours{
		OpenHour:      cfg.OpenHour,
		CloseHour:     cfg.CloseHour,
		ClosedWeekday: cfg.ClosedWeekday,
	}
	sessions := booking.NewSessions(store)
	workflow := booking.NewWorkflow(catalog, booking.NewRecorder(store), hours)

	user := booking.User{Name: gofakeit.Name(), Email: gofakeit.Email()}
	if err := sessions.Login(ctx, user); err != nil {
		return fmt.Errorf("demo login: %w", err)
	}
	log.Printf("demo session for %s", user.DisplayName())

	services, err := catalog.ListServices(ctx)
	if err != nil {
		return err
	}

	petTypes := []string{"Dog", "Cat", "Rabbit", "Bird"}
	payments := []string{"Cash", "Card", "GCash"}

	slot := nextOpenDay(time.Now(), hours)
	for i := 0; i < count; i++ {
		svc := services[gofakeit.Number(0, len(services)-1)]

		form := booking.FormValues{
			OwnerName:     user.Name,
			OwnerEmail:    user.Email,
			PetName:       gofakeit.PetName(),
			PetType:       petTypes[gofakeit.Number(0, len(petTypes)-1)],
			ServiceID:     svc.ID,
			Date:          slot.Format("2006-01-02"),
			Time:          fmt.Sprintf("%02d:00", cfg.OpenHour+gofakeit.Number(0, cfg.CloseHour-cfg.OpenHour-1)),
			PaymentMethod: payments[gofakeit.Number(0, len(payments)-1)],
			Notes:         gofakeit.Sentence(6),
		}

		intent, err := workflow.Prepare(ctx, form)
		if err != nil {
			return fmt.Errorf("prepare demo booking %d: %w", i+1, err)
		}
		rec, err := workflow.Confirm(ctx, intent)
		if err != nil {
			return fmt.Errorf("confirm demo booking %d: %w", i+1, err)
		}
		log.Printf("booked %s for %s on %s %s (%s)", rec.ServiceName, rec.PetName, rec.Date, rec.Time, rec.ID)

		slot = nextOpenDay(slot, hours)
	}

	return nil
}

// nextOpenDay returns the day after from, skipping the closed weekday.
func nextOpenDay(from time.Time, hours booking.Hours) time.Time {
	day := from.AddDate(0, 0, 1)
	for day.Weekday() == hours.ClosedWeekday {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

func connectStore(ctx context.Context, cfg config.Config) (storage.Store, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		pool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		store := storage.NewPgStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	default:
		rdb, err := storage.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedisStore(rdb), func() { _ = rdb.Close() }, nil
	}
}

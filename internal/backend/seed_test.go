package backend_test

import (
	"context"
	"testing"
	"time"

	mem "myvet/internal/adapters/storage/memory"
	"myvet/internal/backend"
	"myvet/internal/ports/auth"
)

func TestSeed_Deterministic(t *testing.T) {
	run := func() (backend.SeedResult, *backend.Service) {
		svc := backend.NewService(backend.Options{
			Repos: mem.NewRepositories(),
			Now:   func() time.Time { return baseNow },
		})
		res, err := backend.Seed(context.Background(), svc, backend.SeedOptions{
			Owners:     2,
			Seed:       42,
			DemoUserID: "demo",
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		return res, svc
	}

	a, svc := run()
	b, _ := run()

	if len(a.UserIDs) != 3 || a.UserIDs[0] != "demo" {
		t.Fatalf("expected demo + 2 owners, got %v", a.UserIDs)
	}
	if len(a.VeterinarianIDs) != 6 {
		t.Fatalf("expected 3 vets per clinic, got %d", len(a.VeterinarianIDs))
	}
	if len(a.PetIDs) < len(a.UserIDs) {
		t.Fatalf("every owner gets at least one pet, got %d pets", len(a.PetIDs))
	}
	for i := range a.VeterinarianIDs {
		if a.VeterinarianIDs[i] != b.VeterinarianIDs[i] {
			t.Fatalf("same seed must give the same vets")
		}
	}

	ctx := context.Background()
	demo := auth.Claims{UserID: "demo", Role: auth.RoleOwner}
	u, err := svc.GetUser(ctx, demo, "demo")
	if err != nil {
		t.Fatalf("get demo user: %v", err)
	}
	if u.Email == "" || u.CreatedAt.IsZero() {
		t.Fatalf("seeded user incomplete: %+v", u)
	}
	ps, err := svc.ListPets(ctx, demo, "demo")
	if err != nil || len(ps) == 0 {
		t.Fatalf("demo pets: %v %v", ps, err)
	}

	vets, err := svc.ListVeterinarians(ctx, "clinic-norte")
	if err != nil {
		t.Fatalf("list vets: %v", err)
	}
	if len(vets) != 3 {
		t.Fatalf("expected 3 vets in clinic-norte, got %d", len(vets))
	}
}

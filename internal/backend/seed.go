package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"myvet/internal/domain/pets"
	"myvet/internal/domain/users"
	"myvet/internal/domain/veterinarians"
	"myvet/internal/ports/auth"
)

var (
	seedClinics = []string{"clinic-central", "clinic-norte"}

	seedSpecialties = []string{
		"General Practice",
		"Dermatology",
		"Cardiology",
		"Surgery",
		"Dentistry",
		"Ophthalmology",
		"Exotic Animals",
	}

	seedPetTypes = []string{pets.TypeDog, pets.TypeCat, pets.TypeRabbit, pets.TypeBird}
)

type SeedOptions struct {
	Owners        int
	VetsPerClinic int
	MaxPets       int // por dueño, al menos 1
	Seed          uint64

	// DemoUserID, si viene, se crea como uno más de los dueños con ese id fijo.
	DemoUserID string
}

type SeedResult struct {
	UserIDs         []string
	VeterinarianIDs []string
	PetIDs          []string
}

// Seed carga datos de prueba. Con el mismo Seed genera los mismos usuarios y veterinarios.
func Seed(ctx context.Context, svc *Service, opts SeedOptions) (SeedResult, error) {
	if opts.VetsPerClinic <= 0 {
		opts.VetsPerClinic = 3
	}
	if opts.MaxPets <= 0 {
		opts.MaxPets = 3
	}
	f := gofakeit.New(opts.Seed)
	staff := auth.Claims{UserID: "seed", Role: auth.RoleStaff}

	var res SeedResult

	for _, clinic := range seedClinics {
		for i := 0; i < opts.VetsPerClinic; i++ {
			bio := f.Phrase()
			v := veterinarians.Veterinarian{
				ID:                f.UUID(),
				FirstName:         f.FirstName(),
				LastName:          f.LastName(),
				LicenseNumber:     f.Numerify("MV-#####"),
				Specializations:   pickSpecialties(f),
				ClinicID:          clinic,
				Email:             f.Email(),
				PhoneNumber:       f.Phone(),
				Bio:               &bio,
				YearsOfExperience: f.Number(1, 30),
				Rating:            float64(f.Number(30, 50)) / 10,
				ReviewCount:       f.Number(0, 400),
			}
			if err := svc.PutVeterinarian(ctx, v); err != nil {
				return SeedResult{}, fmt.Errorf("seed veterinarian: %w", err)
			}
			res.VeterinarianIDs = append(res.VeterinarianIDs, v.ID)
		}
	}

	owners := make([]string, 0, opts.Owners+1)
	if opts.DemoUserID != "" {
		owners = append(owners, opts.DemoUserID)
	}
	for i := 0; i < opts.Owners; i++ {
		owners = append(owners, f.UUID())
	}

	for _, id := range owners {
		u := users.User{
			ID:          id,
			FirstName:   f.FirstName(),
			LastName:    f.LastName(),
			Email:       f.Email(),
			PhoneNumber: f.Phone(),
			Address: users.Address{
				Street:  f.Street(),
				City:    f.City(),
				State:   f.State(),
				ZipCode: f.Zip(),
				Country: f.Country(),
			},
		}
		if err := svc.PutUser(ctx, u); err != nil {
			return SeedResult{}, fmt.Errorf("seed user: %w", err)
		}
		res.UserIDs = append(res.UserIDs, id)

		for n := f.Number(1, opts.MaxPets); n > 0; n-- {
			age := f.Number(0, 15)
			dob := svc.now().UTC().AddDate(-age, -f.Number(0, 11), 0).Truncate(24 * time.Hour)
			p, err := svc.CreatePet(ctx, staff, id, pets.CreateInput{
				Name:        f.PetName(),
				Type:        f.RandomString(seedPetTypes),
				Breed:       f.Word(),
				Age:         age,
				Weight:      float64(f.Number(10, 400)) / 10,
				DateOfBirth: &dob,
			})
			if err != nil {
				return SeedResult{}, fmt.Errorf("seed pet: %w", err)
			}
			res.PetIDs = append(res.PetIDs, p.ID)
		}
	}

	svc.log.Info("seed complete", map[string]any{
		"users":         len(res.UserIDs),
		"veterinarians": len(res.VeterinarianIDs),
		"pets":          len(res.PetIDs),
	})
	return res, nil
}

func pickSpecialties(f *gofakeit.Faker) []string {
	n := f.Number(1, 3)
	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		s := f.RandomString(seedSpecialties)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

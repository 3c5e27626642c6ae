package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"myvet/internal/adapters/auth/jwtauth"
	"myvet/internal/domain/appointments"
	"myvet/internal/domain/dashboard"
	"myvet/internal/domain/pets"
	"myvet/internal/ports/auth"
)

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// userFlag agrega -user con default MYVET_USER_ID.
func userFlag(fs *flag.FlagSet, a *app) *string {
	return fs.String("user", a.cfg.UserID, "user id (default MYVET_USER_ID)")
}

func requireUser(id string) error {
	if id == "" {
		return errors.New("user id required: pass -user or set MYVET_USER_ID")
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(appointments.SlotDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}

func cmdPets(ctx context.Context, a *app, args []string) error {
	fs := newFlags("pets")
	user := userFlag(fs, a)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireUser(*user); err != nil {
		return err
	}
	items, err := a.pets.ListByOwner(ctx, *user)
	if err != nil {
		return err
	}
	return printJSON(a.out, items)
}

func cmdPet(ctx context.Context, a *app, args []string) error {
	id, err := oneArg(args, "pet id")
	if err != nil {
		return err
	}
	p, err := a.pets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(a.out, p)
}

func cmdPetCreate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("pet-create")
	user := userFlag(fs, a)
	name := fs.String("name", "", "")
	typ := fs.String("type", "", "dog, cat, rabbit, bird, other")
	breed := fs.String("breed", "", "")
	age := fs.Int("age", 0, "years")
	weight := fs.Float64("weight", 0, "kg")
	dob := fs.String("dob", "", "YYYY-MM-DD")
	chip := fs.String("microchip", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireUser(*user); err != nil {
		return err
	}

	in := pets.CreateInput{Name: *name, Type: *typ, Breed: *breed, Age: *age, Weight: *weight}
	if *dob != "" {
		d, err := parseDate(*dob)
		if err != nil {
			return err
		}
		in.DateOfBirth = &d
	}
	if *chip != "" {
		in.MicrochipID = chip
	}

	p, err := a.pets.Create(ctx, *user, in)
	if err != nil {
		return err
	}
	return printJSON(a.out, p)
}

func cmdPetDelete(ctx context.Context, a *app, args []string) error {
	id, err := oneArg(args, "pet id")
	if err != nil {
		return err
	}
	if err := a.pets.Delete(ctx, id); err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "deleted pet %s\n", id)
	return err
}

func cmdRecords(ctx context.Context, a *app, args []string) error {
	id, err := oneArg(args, "pet id")
	if err != nil {
		return err
	}
	items, err := a.pets.ListMedicalRecords(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(a.out, items)
}

func cmdRecordAdd(ctx context.Context, a *app, args []string) error {
	fs := newFlags("record-add")
	petID := fs.String("pet", "", "")
	date := fs.String("date", "", "YYYY-MM-DD (default today)")
	diagnosis := fs.String("diagnosis", "", "")
	treatment := fs.String("treatment", "", "")
	vet := fs.String("vet", "", "veterinarian name")
	notes := fs.String("notes", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := pets.MedicalRecordInput{
		Date:         time.Now().UTC().Truncate(24 * time.Hour),
		Diagnosis:    *diagnosis,
		Treatment:    *treatment,
		Veterinarian: *vet,
	}
	if *date != "" {
		d, err := parseDate(*date)
		if err != nil {
			return err
		}
		in.Date = d
	}
	if *notes != "" {
		in.Notes = notes
	}

	m, err := a.pets.AddMedicalRecord(ctx, *petID, in)
	if err != nil {
		return err
	}
	return printJSON(a.out, m)
}

func cmdAppointments(ctx context.Context, a *app, args []string) error {
	fs := newFlags("appointments")
	user := userFlag(fs, a)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireUser(*user); err != nil {
		return err
	}
	items, err := a.appts.ListByUser(ctx, *user)
	if err != nil {
		return err
	}
	return printJSON(a.out, items)
}

func cmdAppointment(ctx context.Context, a *app, args []string) error {
	id, err := oneArg(args, "appointment id")
	if err != nil {
		return err
	}
	ap, err := a.appts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(a.out, ap)
}

func cmdBook(ctx context.Context, a *app, args []string) error {
	fs := newFlags("book")
	petID := fs.String("pet", "", "")
	vetID := fs.String("vet", "", "")
	clinicID := fs.String("clinic", "", "")
	at := fs.String("at", "", "RFC3339, e.g. 2025-03-01T10:00:00Z")
	duration := fs.Int("duration", 30, "minutes")
	service := fs.String("service", appointments.ServiceCheckup, "")
	notes := fs.String("notes", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}

	when, err := time.Parse(time.RFC3339, *at)
	if err != nil {
		return fmt.Errorf("invalid -at %q: %w", *at, err)
	}
	in := appointments.CreateInput{
		PetID:          *petID,
		VeterinarianID: *vetID,
		ClinicID:       *clinicID,
		DateTime:       when,
		Duration:       *duration,
		ServiceType:    *service,
	}
	if *notes != "" {
		in.Notes = notes
	}

	ap, err := a.appts.Create(ctx, in)
	if err != nil {
		return err
	}
	return printJSON(a.out, ap)
}

func cmdCancel(ctx context.Context, a *app, args []string) error {
	id, err := oneArg(args, "appointment id")
	if err != nil {
		return err
	}
	if err := a.appts.Cancel(ctx, id); err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "cancelled appointment %s\n", id)
	return err
}

func cmdSlots(ctx context.Context, a *app, args []string) error {
	fs := newFlags("slots")
	vetID := fs.String("vet", "", "")
	date := fs.String("date", "", "YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}
	d, err := parseDate(*date)
	if err != nil {
		return err
	}
	slots, err := a.appts.ListAvailableSlots(ctx, *vetID, d)
	if err != nil {
		return err
	}
	return printJSON(a.out, slots)
}

func cmdVets(ctx context.Context, a *app, args []string) error {
	fs := newFlags("vets")
	clinic := fs.String("clinic", "", "only this clinic")
	if err := fs.Parse(args); err != nil {
		return err
	}
	items, err := a.vets.List(ctx, *clinic)
	if err != nil {
		return err
	}
	return printJSON(a.out, items)
}

func cmdProfile(ctx context.Context, a *app, args []string) error {
	fs := newFlags("profile")
	user := userFlag(fs, a)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireUser(*user); err != nil {
		return err
	}
	u, err := a.users.GetByID(ctx, *user)
	if err != nil {
		return err
	}
	return printJSON(a.out, u)
}

func cmdDashboard(ctx context.Context, a *app, args []string) error {
	fs := newFlags("dashboard")
	user := userFlag(fs, a)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireUser(*user); err != nil {
		return err
	}
	sum, err := dashboard.NewService(a.appts, a.pets).Load(ctx, *user)
	if err != nil {
		return err
	}
	return printJSON(a.out, sum)
}

// cmdToken firma un JWT local con JWT_SECRET, el mismo secreto que usa vetapi.
func cmdToken(_ context.Context, a *app, args []string) error {
	fs := newFlags("token")
	user := userFlag(fs, a)
	email := fs.String("email", "", "")
	role := fs.String("role", auth.RoleOwner, "owner or staff")
	ttl := fs.Duration("ttl", 24*time.Hour, "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireUser(*user); err != nil {
		return err
	}
	if *role != auth.RoleOwner && *role != auth.RoleStaff {
		return fmt.Errorf("invalid role %q", *role)
	}

	var issuer auth.TokenIssuer = jwtauth.New(os.Getenv("JWT_SECRET"), *ttl)
	token, err := issuer.Issue(auth.Claims{UserID: *user, Email: *email, Role: *role})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, token)
	return err
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"myvet/internal/config"
	"myvet/internal/domain/appointments"
	"myvet/internal/domain/pets"
	"myvet/internal/domain/users"
	"myvet/internal/domain/veterinarians"
	"myvet/internal/middleware"
	"myvet/internal/platform/httpclient"
	"myvet/internal/platform/logger"
)

// app agrupa los servicios tipados que usan los comandos.
type app struct {
	cfg config.Client
	out io.Writer

	pets  *pets.Service
	appts *appointments.Service
	vets  *veterinarians.Service
	users *users.Service
}

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"pets":         {"pets [-user ID]", cmdPets},
	"pet":          {"pet ID", cmdPet},
	"pet-create":   {"pet-create -name N -type T [-breed B -age A -weight W -dob YYYY-MM-DD -microchip C]", cmdPetCreate},
	"pet-delete":   {"pet-delete ID", cmdPetDelete},
	"records":      {"records PET_ID", cmdRecords},
	"record-add":   {"record-add -pet ID -diagnosis D -treatment T -vet NAME [-date YYYY-MM-DD -notes N]", cmdRecordAdd},
	"appointments": {"appointments [-user ID]", cmdAppointments},
	"appointment":  {"appointment ID", cmdAppointment},
	"book":         {"book -pet ID -vet ID -clinic ID -at RFC3339 [-duration MIN -service S -notes N]", cmdBook},
	"cancel":       {"cancel ID", cmdCancel},
	"slots":        {"slots -vet ID -date YYYY-MM-DD", cmdSlots},
	"vets":         {"vets [-clinic ID]", cmdVets},
	"profile":      {"profile [-user ID]", cmdProfile},
	"dashboard":    {"dashboard [-user ID]", cmdDashboard},
	"token":        {"token -user ID [-email E -role owner|staff]  (requiere JWT_SECRET)", cmdToken},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" {
		usage(stderr)
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	log := logger.NewWriter(stderr, logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    "myvet",
	})

	c := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Logger:  log,
	})
	a := &app{
		cfg:   cfg,
		out:   stdout,
		pets:  pets.NewService(c),
		appts: appointments.NewService(c),
		vets:  veterinarians.NewService(c),
		users: users.NewService(c),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = httpclient.ContextWithHeaders(ctx, authHeaders(cfg))

	if err := cmd.run(ctx, a, args[1:]); err != nil {
		reportError(stderr, err)
		return 1
	}
	return 0
}

// authHeaders: token si hay; si no, identidad de dev para un backend sin JWT.
func authHeaders(cfg config.Client) map[string]string {
	if cfg.Token != "" {
		return httpclient.BearerAuth(cfg.Token)
	}
	if cfg.UserID != "" {
		return map[string]string{middleware.DebugUserHeader: cfg.UserID}
	}
	return nil
}

func reportError(w io.Writer, err error) {
	kind := httpclient.KindOf(err)
	if kind == 0 {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	if status, ok := httpclient.StatusCode(err); ok {
		fmt.Fprintf(w, "error (%s %d): %v\n", kind, status, err)
		return
	}
	fmt.Fprintf(w, "error (%s): %v\n", kind, err)
	if errors.Is(err, httpclient.ErrNetwork) {
		fmt.Fprintln(w, "hint: check MYVET_BASE_URL and that the server is running")
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: myvet <command> [flags]")
	fmt.Fprintln(w)
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "env: MYVET_BASE_URL, MYVET_TOKEN, MYVET_USER_ID, MYVET_TIMEOUT, LOG_LEVEL, LOG_FORMAT")
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func oneArg(args []string, what string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("expected exactly one %s", what)
	}
	return args[0], nil
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"myvet/internal/domain/pets"
	"myvet/internal/domain/users"
	"myvet/internal/ports/auth"
	"myvet/internal/router"
)

func startBackend(t *testing.T) string {
	t.Helper()
	svc := router.NewService(router.Options{})
	if err := svc.PutUser(context.Background(), users.User{ID: "owner-1", Email: "o@myvet.app"}); err != nil {
		t.Fatalf("put user: %v", err)
	}
	if _, err := svc.CreatePet(context.Background(), auth.Claims{UserID: "owner-1"}, "owner-1", pets.CreateInput{Name: "Max", Type: pets.TypeDog}); err != nil {
		t.Fatalf("create pet: %v", err)
	}
	ts := httptest.NewServer(router.NewRouter(router.Options{Service: svc}))
	t.Cleanup(ts.Close)
	return ts.URL + "/v1"
}

func TestRun_UnknownCommand(t *testing.T) {
	var out, errb bytes.Buffer
	if code := run([]string{"nope"}, &out, &errb); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(errb.String(), "usage: myvet") {
		t.Fatalf("expected usage, got %q", errb.String())
	}
}

func TestRun_Pets(t *testing.T) {
	t.Setenv("MYVET_BASE_URL", startBackend(t))
	t.Setenv("MYVET_USER_ID", "owner-1")
	t.Setenv("MYVET_TOKEN", "")

	var out, errb bytes.Buffer
	if code := run([]string{"pets"}, &out, &errb); code != 0 {
		t.Fatalf("exit %d: %s", code, errb.String())
	}
	var got []map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(got) != 1 || got[0]["name"] != "Max" {
		t.Fatalf("unexpected pets: %v", got)
	}
}

func TestRun_ReportsErrorKind(t *testing.T) {
	t.Setenv("MYVET_BASE_URL", startBackend(t))
	t.Setenv("MYVET_USER_ID", "owner-2")
	t.Setenv("MYVET_TOKEN", "")

	var out, errb bytes.Buffer
	if code := run([]string{"pets", "-user", "owner-1"}, &out, &errb); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(errb.String(), "HttpError 403") {
		t.Fatalf("expected HttpError 403, got %q", errb.String())
	}
}

func TestRun_TokenNeedsSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MYVET_BASE_URL", "http://localhost:8080/v1")

	var out, errb bytes.Buffer
	if code := run([]string{"token", "-user", "owner-1"}, &out, &errb); code != 1 {
		t.Fatalf("expected exit 1 without secret, got %d", code)
	}

	t.Setenv("JWT_SECRET", "s3cret")
	out.Reset()
	if code := run([]string{"token", "-user", "owner-1", "-role", "staff"}, &out, &errb); code != 0 {
		t.Fatalf("exit %d: %s", code, errb.String())
	}
	if strings.Count(strings.TrimSpace(out.String()), ".") != 2 {
		t.Fatalf("expected a JWT, got %q", out.String())
	}
}

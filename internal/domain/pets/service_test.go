package pets_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"myvet/internal/domain/pets"
	"myvet/internal/platform/httpclient"
)

func newService(t *testing.T, h http.HandlerFunc) *pets.Service {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return pets.NewService(httpclient.New(httpclient.Config{BaseURL: ts.URL + "/v1"}))
}

func TestCreate_EchoesInputWithGeneratedID(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/users/u1/pets" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		body["id"] = "p-123"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(body)
	})

	in := pets.CreateInput{Name: "Max", Type: pets.TypeDog, Breed: "Labrador", Age: 3, Weight: 28.5}
	p, err := svc.Create(context.Background(), "u1", in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected generated id")
	}
	if p.Name != in.Name || p.Type != in.Type || p.Breed != in.Breed || p.Age != in.Age || p.Weight != in.Weight {
		t.Fatalf("fields differ from input: %+v", p)
	}
	if p.DateOfBirth != nil || p.MicrochipID != nil || len(p.MedicalHistory) != 0 {
		t.Fatalf("expected optional fields empty: %+v", p)
	}
}

func TestCreate_InvalidInputSendsNoRequest(t *testing.T) {
	var calls atomic.Int32
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) { calls.Add(1) })
	ctx := context.Background()

	if _, err := svc.Create(ctx, "u1", pets.CreateInput{Type: pets.TypeCat}); !errors.Is(err, pets.ErrInvalidInput) {
		t.Fatalf("expected invalid input for missing name, got %v", err)
	}
	if _, err := svc.Create(ctx, "u1", pets.CreateInput{Name: "Mia", Type: pets.TypeCat, Weight: -1}); !errors.Is(err, pets.ErrInvalidInput) {
		t.Fatalf("expected invalid input for negative weight, got %v", err)
	}
	if _, err := svc.Create(ctx, "", pets.CreateInput{Name: "Mia", Type: pets.TypeCat}); !errors.Is(err, pets.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank owner, got %v", err)
	}
	if _, err := svc.AddMedicalRecord(ctx, "p1", pets.MedicalRecordInput{Diagnosis: "otitis"}); !errors.Is(err, pets.ErrInvalidInput) {
		t.Fatalf("expected invalid input for incomplete record, got %v", err)
	}
	if n := calls.Load(); n != 0 {
		t.Fatalf("expected no requests, got %d", n)
	}
}

func TestGetByID_NegativeAgeIsDecodingError(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"p1","name":"Max","type":"dog","breed":"","age":-1,"weight":10,"microchip_id":null}`))
	})

	if _, err := svc.GetByID(context.Background(), "p1"); !errors.Is(err, httpclient.ErrDecoding) {
		t.Fatalf("expected decoding error, got %v", err)
	}
}

func TestGetByID_NestedRecordMissingFieldIsDecodingError(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"p1","name":"Max","type":"dog","breed":"","age":1,"weight":10,"microchip_id":null,
			"medical_history":[{"id":"m1","pet_id":"p1","date":"2025-01-01T00:00:00Z","treatment":"x","veterinarian":"Dr. A","notes":null}]}`))
	})

	if _, err := svc.GetByID(context.Background(), "p1"); !errors.Is(err, httpclient.ErrDecoding) {
		t.Fatalf("expected decoding error, got %v", err)
	}
}

func TestPet_RoundTrip(t *testing.T) {
	dob := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	chip := "985112003456789"
	notes := "control en 15 días"
	in := pets.Pet{
		ID:          "p1",
		Name:        "Max",
		Type:        pets.TypeDog,
		Breed:       "Labrador",
		Age:         3,
		Weight:      28.5,
		DateOfBirth: &dob,
		MicrochipID: &chip,
		MedicalHistory: []pets.MedicalRecord{{
			ID:           "m1",
			PetID:        "p1",
			Date:         time.Date(2025, 1, 10, 9, 30, 0, 500_000_000, time.UTC),
			Diagnosis:    "otitis",
			Treatment:    "gotas",
			Veterinarian: "Dra. Pérez",
			Notes:        &notes,
		}},
	}

	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out pets.Pet
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", in, out)
	}
}

func TestPet_EmptyHistorySurvivesRoundTrip(t *testing.T) {
	in := pets.Pet{ID: "p1", Name: "Luna", Type: pets.TypeCat, MedicalHistory: []pets.MedicalRecord{}}

	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"medical_history":[]`) {
		t.Fatalf("expected empty history on the wire, got %s", b)
	}
	var out pets.Pet
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n%#v\n%#v", in, out)
	}

	// nil se omite y vuelve nil.
	b, err = json.Marshal(pets.Pet{ID: "p2", Name: "Rex", Type: pets.TypeDog})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "medical_history") {
		t.Fatalf("expected nil history omitted, got %s", b)
	}
}

func TestMedicalRecords(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/pets/p1/medical-records" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`[{"id":"m1","pet_id":"p1","date":"2025-01-10T09:30:00Z","diagnosis":"otitis","treatment":"gotas","veterinarian":"Dra. Pérez","notes":null}]`))
		case http.MethodPost:
			raw, _ := io.ReadAll(r.Body)
			var body map[string]any
			_ = json.Unmarshal(raw, &body)
			if body["diagnosis"] != "vacuna anual" {
				t.Errorf("unexpected body %s", raw)
			}
			body["id"] = "m2"
			body["pet_id"] = "p1"
			body["notes"] = nil
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(body)
		}
	})
	ctx := context.Background()

	records, err := svc.ListMedicalRecords(ctx, "p1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].Diagnosis != "otitis" || records[0].Notes != nil {
		t.Fatalf("unexpected records: %+v", records)
	}

	rec, err := svc.AddMedicalRecord(ctx, "p1", pets.MedicalRecordInput{
		Date:         time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC),
		Diagnosis:    "vacuna anual",
		Treatment:    "rabia",
		Veterinarian: "Dr. Soto",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if rec.ID != "m2" || rec.PetID != "p1" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestRoster_RemoveOnlyAfterSuccess(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`[
				{"id":"p1","name":"Max","type":"dog","breed":"Labrador","age":3,"weight":28.5,"microchip_id":null},
				{"id":"p2","name":"Mia","type":"cat","breed":"","age":1,"weight":4,"microchip_id":null}
			]`))
		case r.Method == http.MethodDelete && r.URL.Path == "/v1/pets/p1":
			if fail.Load() {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	roster := pets.NewRoster(svc, "u1")
	if err := roster.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	err := roster.Remove(context.Background(), "p1")
	if !httpclient.IsRetryable(err) {
		t.Fatalf("expected retryable 500, got %v", err)
	}
	if len(roster.Items()) != 2 {
		t.Fatalf("expected roster unchanged after failure")
	}

	fail.Store(false)
	if err := roster.Remove(context.Background(), "p1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	items := roster.Items()
	if len(items) != 1 || items[0].ID != "p2" {
		t.Fatalf("unexpected roster: %+v", items)
	}
}

func TestUpdate_PartialBody(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		if r.Method != http.MethodPut || len(body) != 1 || body["weight"] != 30.0 {
			t.Errorf("unexpected request %s %s", r.Method, raw)
		}
		_, _ = w.Write([]byte(`{"id":"p1","name":"Max","type":"dog","breed":"Labrador","age":3,"weight":30,"microchip_id":null}`))
	})

	w := 30.0
	p, err := svc.Update(context.Background(), "p1", pets.UpdateInput{Weight: &w})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Weight != 30 {
		t.Fatalf("unexpected weight %v", p.Weight)
	}
}

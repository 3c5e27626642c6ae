package backend

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"myvet/internal/domain/appointments"
	"myvet/internal/domain/pets"
	"myvet/internal/domain/users"
	"myvet/internal/middleware"
	"myvet/internal/platform/logger"
	"myvet/internal/ports/auth"
)

const maxRequestBody = 1 << 20

// ErrorResponse es el body de toda respuesta no-2xx.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RegisterRoutes monta el API sobre r (normalmente el subrouter /v1).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/users/{userID}", func(ur chi.Router) {
		ur.Get("/", getUserHandler(svc))
		ur.Put("/", updateUserHandler(svc))
		ur.Get("/pets", listPetsHandler(svc))
		ur.Post("/pets", createPetHandler(svc))
		ur.Get("/appointments", listAppointmentsHandler(svc))
	})

	r.Route("/pets/{petID}", func(pr chi.Router) {
		pr.Get("/", getPetHandler(svc))
		pr.Put("/", updatePetHandler(svc))
		pr.Delete("/", deletePetHandler(svc))
		pr.Get("/medical-records", listRecordsHandler(svc))
		pr.Post("/medical-records", addRecordHandler(svc))
	})

	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", createAppointmentHandler(svc))
		ar.Get("/{appointmentID}", getAppointmentHandler(svc))
		ar.Put("/{appointmentID}", updateAppointmentHandler(svc))
		ar.Post("/{appointmentID}/cancel", transitionHandler(svc, appointments.StatusCancelled))
		ar.Post("/{appointmentID}/confirm", transitionHandler(svc, appointments.StatusConfirmed))
		ar.Post("/{appointmentID}/complete", transitionHandler(svc, appointments.StatusCompleted))
		ar.Post("/{appointmentID}/no-show", transitionHandler(svc, appointments.StatusNoShow))
	})

	r.Route("/veterinarians", func(vr chi.Router) {
		vr.Get("/", listVeterinariansHandler(svc))
		vr.Get("/{vetID}", getVeterinarianHandler(svc))
		vr.Get("/{vetID}/available-slots", availableSlotsHandler(svc))
	})
}

func claimsFrom(r *http.Request) auth.Claims {
	c, _ := middleware.GetClaims(r.Context())
	return c
}

// -------------------------
// Users
// -------------------------

// getUserHandler godoc
// @Summary  Get a user profile
// @Tags     users
// @Produce  json
// @Param    userID path string true "User ID"
// @Success  200 {object} users.User
// @Failure  401,403,404 {object} ErrorResponse
// @Router   /users/{userID} [get]
func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetUser(r.Context(), claimsFrom(r), chi.URLParam(r, "userID"))
		if err != nil {
			writeServiceError(w, svc.log, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// updateUserHandler godoc
// @Summary  Update the caller's profile
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    userID path string true "User ID"
// @Param    body body users.UpdateProfileInput true "Fields to change"
// @Success  200 {object} users.User
// @Failure  400,401,403,404 {object} ErrorResponse
// @Router   /users/{userID} [put]
func updateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in users.UpdateProfileInput
		if !decodeJSON(w, r, &in) {
			return
		}
		u, err := svc.UpdateUser(r.Context(), claimsFrom(r), chi.URLParam(r, "userID"), in)
		if err != nil {
			writeServiceError(w, svc.log, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// -------------------------
// Pets
// -------------------------

// listPetsHandler godoc
// @Summary  List a user's pets
// @Tags     pets
// @Produce  json
// @Param    userID path string true "Owner ID"
// @Success  200 {array} pets.Pet
// @Failure  401,403 {object} ErrorResponse
// @Router   /users/{userID}/pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListPets(r.Context(), claimsFrom(r), chi.URLParam(r, "userID"))
		if err != nil {
			writeServiceError(w, svc.log, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// createPetHandler godoc
// @Summary  Register a pet
// @Tags     pets
// @Accept   json
// @Produce  json
// @Param    userID path string true "Owner ID"
// @Param    body body pets.CreateInput true "Pet"
// @Success  201 {object} pets.Pet
// @Failure  400,401,403 {object} ErrorResponse
// @Router   /users/{userID}/pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in pets.CreateInput
		if !decodeJSON(w, r, &in) {
			return
		}
		p, err := svc.CreatePet(r.Context(), claimsFrom(r), chi.URLParam(r, "userID"), in)
		if err != nil {
			writeServiceError(w, svc.log, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

// getPetHandler godoc
// @Summary  Get a pet with its medical history
// @Tags     pets
// @Produce  json
// @Param    petID path string true "Pet ID"
// @Success  200 {object} pets.Pet
// @Failure  401,403,404 {object} ErrorResponse
// @Router   /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetPet(r.Context(), claimsFrom(r), chi.URLParam(r, "petID"))
		if err != nil {
			writeServiceError(w, svc.log, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// updatePetHandler godoc
// @Summary  Update a pet
// @Tags     pets
// @Accept   json
// @Produce  json
// @Param    petID path string true "Pet ID"
// @Param    body body pets.UpdateInput true "Fields to change"
// @Success  200 {object} pets.Pet
// @Failure  400,401,403,404 {object} ErrorResponse
// @Router   /pets/{petID} [put]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in pets.UpdateInput
		if !decodeJSON(w, r, &in) {
			return
		}
		p, err := svc.UpdatePet(r.Context(), claimsFrom(r), chi.URLParam(r, "petID"), in)
		if err != nil {
			writeServiceError(w, svc.log, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// deletePetHandler godoc
// @Summary  Delete a pet and its medical history
// @Tags     pets
// @Param    petID path string true "Pet ID"
// @Success  204
// @Failure  401,403,404 {object} ErrorResponse
// @Router   /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeletePet(r.Context(), claimsFrom(r), chi.URLParam(r, "petID")); err != nil {
			writeServiceError(w, svc.log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// listRecordsHandler godoc
// @Summary  List a pet's medical records
// @Tags     pets
// @Produce  json
// @Param    petID path string true "Pet ID"
// @Success  200 {array} pets.MedicalRecord
// @Failure  401,403,404 {object} ErrorResponse
// @Router   /pets/{petID}/medical-records [get]
func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListMedicalRecords(r.Context(), claimsFrom(r), chi.URLParam(r, "petID"))
		if err != nil {
			writeServiceError(w, svc.log, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// addRecordHandler godoc
// @Summary  Add a medical record
// @Tags     pets
// @Accept   json
// @Produce  json
// @Param    petID path string true "Pet ID"
// @Param    body body pets.MedicalRecordInput true "Record"
// @Success  201 {object} pets.MedicalRecord
// @Failure  400,401,403,404 {object} ErrorResponse
// @Router   /pets/{petID}/medical-records [post]
func addRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in pets.MedicalRecordInput
		if !decodeJSON(w, r, &in) {
			return
		}
		m, err := svc.AddMedicalRecord(r.Context(), claimsFrom(r), chi.URLParam(r, "petID"), in)
		if err != nil {
			writeServiceError(w, svc.log, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

// -------------------------
// Appointments
// -------------------------

// listAppointmentsHandler godoc
// @Summary  List a user's appointments
// @Tags     appointments
// @Produce  json
// @Param    userID path string true "Owner ID"
// @Success  200 {array} appointments.Appointment
// @Failure  401,403 {object} ErrorResponse
// @Router   /users/{userID}/appointments [get]
func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAppointments(r.Context(), claimsFrom(r), chi.URLParam(r, "userID"))
		if err != nil {
			writeServiceError(w, svc.log, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// createAppointmentHandler godoc
// @Summary  Book an appointment
// @Tags     appointments
// @Accept   json
// @Produce  json
// @Param    body body appointments.CreateInput true "Booking"
// @Success  201 {object} appointments.Appointment
// @Failure  400,401,403,404,409 {object} ErrorResponse
// @Router   /appointments [post]
func createAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in appointments.CreateInput
		if !decodeJSON(w, r, &in) {
			return
		}
		a, err := svc.CreateAppointment(r.Context(), claimsFrom(r), in)
		if err != nil {
			writeServiceError(w, svc.log, err)
			return
		}
		writeJSON(w, http.StatusCreated, a)
	}
}

// getAppointmentHandler godoc
// @Summary  Get an appointment
// @Tags     appointments
// @Produce  json
// @Param    appointmentID path string true "Appointment ID"
// @Success  200 {object} appointments.Appointment
// @Failure  401,403,404 {object} ErrorResponse
// @Router   /appointments/{appointmentID} [get]
func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetAppointment(r.Context(), claimsFrom(r), chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeServiceError(w, svc.log, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// updateAppointmentHandler godoc
// @Summary  Reschedule or edit an active appointment
// @Tags     appointments
// @Accept   json
// @Produce  json
// @Param    appointmentID path string true "Appointment ID"
// @Param    body body appointments.UpdateInput true "Fields to change"
// @Success  200 {object} appointments.Appointment
// @Failure  400,401,403,404,409 {object} ErrorResponse
// @Router   /appointments/{appointmentID} [put]
func updateAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in appointments.UpdateInput
		if !decodeJSON(w, r, &in) {
			return
		}
		a, err := svc.UpdateAppointment(r.Context(), claimsFrom(r), chi.URLParam(r, "appointmentID"), in)
		if err != nil {
			writeServiceError(w, svc.log, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// transitionHandler godoc
// @Summary  Change an appointment's status (cancel | confirm | complete | no-show)
// @Tags     appointments
// @Produce  json
// @Param    appointmentID path string true "Appointment ID"
// @Success  200 {object} appointments.Appointment
// @Success  204 "cancelled"
// @Failure  401,403,404,409 {object} ErrorResponse
// @Router   /appointments/{appointmentID}/cancel [post]
// @Router   /appointments/{appointmentID}/confirm [post]
// @Router   /appointments/{appointmentID}/complete [post]
// @Router   /appointments/{appointmentID}/no-show [post]
func transitionHandler(svc *Service, next appointments.Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Transition(r.Context(), claimsFrom(r), chi.URLParam(r, "appointmentID"), next)
		if err != nil {
			writeServiceError(w, svc.log, err)
			return
		}
		if next == appointments.StatusCancelled {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// -------------------------
// Veterinarians
// -------------------------

// listVeterinariansHandler godoc
// @Summary  List veterinarians
// @Tags     veterinarians
// @Produce  json
// @Param    clinic_id query string false "Only this clinic"
// @Success  200 {array} veterinarians.Veterinarian
// @Router   /veterinarians [get]
func listVeterinariansHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListVeterinarians(r.Context(), r.URL.Query().Get("clinic_id"))
		if err != nil {
			writeServiceError(w, svc.log, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// getVeterinarianHandler godoc
// @Summary  Get a veterinarian
// @Tags     veterinarians
// @Produce  json
// @Param    vetID path string true "Veterinarian ID"
// @Success  200 {object} veterinarians.Veterinarian
// @Failure  404 {object} ErrorResponse
// @Router   /veterinarians/{vetID} [get]
func getVeterinarianHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.GetVeterinarian(r.Context(), chi.URLParam(r, "vetID"))
		if err != nil {
			writeServiceError(w, svc.log, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// availableSlotsHandler godoc
// @Summary  List a veterinarian's slots for one day
// @Tags     veterinarians
// @Produce  json
// @Param    vetID path string true "Veterinarian ID"
// @Param    date query string true "Day as YYYY-MM-DD (RFC 3339 also accepted)"
// @Success  200 {array} appointments.TimeSlot
// @Failure  400,404 {object} ErrorResponse
// @Router   /veterinarians/{vetID}/available-slots [get]
func availableSlotsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day, err := parseDay(r.URL.Query().Get("date"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
			return
		}
		slots, err := svc.AvailableSlots(r.Context(), chi.URLParam(r, "vetID"), day)
		if err != nil {
			writeServiceError(w, svc.log, err)
			return
		}
		writeJSON(w, http.StatusOK, slots)
	}
}

func parseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(appointments.SlotDateLayout, s); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, s)
}

// -------------------------
// helpers
// -------------------------

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", err.Error())
		return false
	}
	return true
}

func writeServiceError(w http.ResponseWriter, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	case errors.Is(err, ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "not allowed for this user")
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ErrSlotTaken):
		writeError(w, http.StatusConflict, "slot_already_booked", err.Error())
	case errors.Is(err, ErrSlotBusy):
		writeError(w, http.StatusConflict, "slot_being_booked", err.Error())
	case errors.Is(err, ErrConflict):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	default:
		log.Error("request failed", map[string]any{"error": err})
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package backend

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")

	// ErrSlotTaken: se solapa con una cita activa del mismo veterinario.
	ErrSlotTaken = errors.New("slot already booked")
	// ErrSlotBusy: otro request tiene el lock de la agenda.
	ErrSlotBusy = errors.New("slot is being booked, retry shortly")
)

package appointments

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"myvet/internal/platform/codec"
	"myvet/internal/platform/httpclient"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// SlotDateLayout es el formato del query param date de available-slots:
// fecha de calendario, no instante.
const SlotDateLayout = "2006-01-02"

// Service es una fachada tipada sobre el transporte. No guarda estado,
// no reintenta y propaga los errores del transporte sin cambios.
type Service struct {
	r httpclient.Requester
}

func NewService(r httpclient.Requester) *Service {
	return &Service{r: r}
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Appointment, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return httpclient.Request[[]Appointment](ctx, s.r, httpclient.Call{
		Endpoint: "/users/" + url.PathEscape(userID) + "/appointments",
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	if strings.TrimSpace(id) == "" {
		return Appointment{}, ErrInvalidInput
	}
	return httpclient.Request[Appointment](ctx, s.r, httpclient.Call{
		Endpoint: appointmentPath(id),
	})
}

// Create devuelve la cita tal como la registró el servidor (con su id).
func (s *Service) Create(ctx context.Context, in CreateInput) (Appointment, error) {
	if err := codec.Validate(in); err != nil {
		return Appointment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return httpclient.Request[Appointment](ctx, s.r, httpclient.Call{
		Endpoint: "/appointments",
		Method:   httpclient.MethodPost,
		Params:   in,
	})
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Appointment, error) {
	if strings.TrimSpace(id) == "" || in.IsEmpty() {
		return Appointment{}, ErrInvalidInput
	}
	if err := codec.Validate(in); err != nil {
		return Appointment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return httpclient.Request[Appointment](ctx, s.r, httpclient.Call{
		Endpoint: appointmentPath(id),
		Method:   httpclient.MethodPut,
		Params:   in,
	})
}

// Cancel pide la transición a cancelled; el body de respuesta se ignora.
func (s *Service) Cancel(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	_, err := httpclient.Request[httpclient.Empty](ctx, s.r, httpclient.Call{
		Endpoint: appointmentPath(id) + "/cancel",
		Method:   httpclient.MethodPost,
	})
	return err
}

// ListAvailableSlots envía date como YYYY-MM-DD en la zona horaria de date.
func (s *Service) ListAvailableSlots(ctx context.Context, veterinarianID string, date time.Time) ([]TimeSlot, error) {
	if strings.TrimSpace(veterinarianID) == "" || date.IsZero() {
		return nil, ErrInvalidInput
	}
	q := url.Values{}
	q.Set("date", date.Format(SlotDateLayout))

	return httpclient.Request[[]TimeSlot](ctx, s.r, httpclient.Call{
		Endpoint: "/veterinarians/" + url.PathEscape(veterinarianID) + "/available-slots?" + q.Encode(),
	})
}

func appointmentPath(id string) string {
	return "/appointments/" + url.PathEscape(id)
}

package veterinarians

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"myvet/internal/platform/httpclient"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Service es de solo lectura: los veterinarios se administran del lado del servidor.
type Service struct {
	r httpclient.Requester
}

func NewService(r httpclient.Requester) *Service {
	return &Service{r: r}
}

// List devuelve todos los veterinarios, o solo los de clinicID si no es vacío.
func (s *Service) List(ctx context.Context, clinicID string) ([]Veterinarian, error) {
	endpoint := "/veterinarians"
	if clinicID = strings.TrimSpace(clinicID); clinicID != "" {
		endpoint += "?" + url.Values{"clinic_id": {clinicID}}.Encode()
	}
	return httpclient.Request[[]Veterinarian](ctx, s.r, httpclient.Call{Endpoint: endpoint})
}

func (s *Service) GetByID(ctx context.Context, id string) (Veterinarian, error) {
	if strings.TrimSpace(id) == "" {
		return Veterinarian{}, ErrInvalidInput
	}
	return httpclient.Request[Veterinarian](ctx, s.r, httpclient.Call{
		Endpoint: "/veterinarians/" + url.PathEscape(id),
	})
}

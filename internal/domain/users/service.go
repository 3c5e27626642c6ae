package users

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"myvet/internal/platform/codec"
	"myvet/internal/platform/httpclient"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// UpdateProfileInput: el email no se cambia desde el perfil.
type UpdateProfileInput struct {
	FirstName   *string  `json:"first_name,omitempty" validate:"omitnil,min=1"`
	LastName    *string  `json:"last_name,omitempty" validate:"omitnil,min=1"`
	PhoneNumber *string  `json:"phone_number,omitempty"`
	Address     *Address `json:"address,omitempty"`
}

func (in UpdateProfileInput) IsEmpty() bool {
	return in.FirstName == nil && in.LastName == nil && in.PhoneNumber == nil && in.Address == nil
}

type Service struct {
	r httpclient.Requester
}

func NewService(r httpclient.Requester) *Service {
	return &Service{r: r}
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	if strings.TrimSpace(id) == "" {
		return User{}, ErrInvalidInput
	}
	return httpclient.Request[User](ctx, s.r, httpclient.Call{
		Endpoint: "/users/" + url.PathEscape(id),
	})
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (User, error) {
	if strings.TrimSpace(id) == "" || in.IsEmpty() {
		return User{}, ErrInvalidInput
	}
	if err := codec.Validate(in); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return httpclient.Request[User](ctx, s.r, httpclient.Call{
		Endpoint: "/users/" + url.PathEscape(id),
		Method:   httpclient.MethodPut,
		Params:   in,
	})
}

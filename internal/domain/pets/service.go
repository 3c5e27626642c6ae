package pets

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

type Service struct {
	r httpclient.Requester
}

func NewService(r httpclient.Requester) *Service {
	return &Service{r: r}
}

func (s *Service) ListByOwner(ctx context.Context, userID string) ([]Pet, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return httpclient.Request[[]Pet](ctx, s.r, httpclient.Call{
		Endpoint: userPetsPath(userID),
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	if strings.TrimSpace(id) == "" {
		return Pet{}, ErrInvalidInput
	}
	return httpclient.Request[Pet](ctx, s.r, httpclient.Call{
		Endpoint: petPath(id),
	})
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(userID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if err := codec.Validate(in); err != nil {
		return Pet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return httpclient.Request[Pet](ctx, s.r, httpclient.Call{
		Endpoint: userPetsPath(userID),
		Method:   httpclient.MethodPost,
		Params:   in,
	})
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	if strings.TrimSpace(id) == "" || in.IsEmpty() {
		return Pet{}, ErrInvalidInput
	}
	if err := codec.Validate(in); err != nil {
		return Pet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return httpclient.Request[Pet](ctx, s.r, httpclient.Call{
		Endpoint: petPath(id),
		Method:   httpclient.MethodPut,
		Params:   in,
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	_, err := httpclient.Request[httpclient.Empty](ctx, s.r, httpclient.Call{
		Endpoint: petPath(id),
		Method:   httpclient.MethodDelete,
	})
	return err
}

func (s *Service) ListMedicalRecords(ctx context.Context, petID string) ([]MedicalRecord, error) {
	if strings.TrimSpace(petID) == "" {
		return nil, ErrInvalidInput
	}
	return httpclient.Request[[]MedicalRecord](ctx, s.r, httpclient.Call{
		Endpoint: petPath(petID) + "/medical-records",
	})
}

func (s *Service) AddMedicalRecord(ctx context.Context, petID string, in MedicalRecordInput) (MedicalRecord, error) {
	if strings.TrimSpace(petID) == "" {
		return MedicalRecord{}, ErrInvalidInput
	}
	if err := codec.Validate(in); err != nil {
		return MedicalRecord{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return httpclient.Request[MedicalRecord](ctx, s.r, httpclient.Call{
		Endpoint: petPath(petID) + "/medical-records",
		Method:   httpclient.MethodPost,
		Params:   in,
	})
}

func petPath(id string) string {
	return "/pets/" + url.PathEscape(id)
}

func userPetsPath(userID string) string {
	return "/users/" + url.PathEscape(userID) + "/pets"
}

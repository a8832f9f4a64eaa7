package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/attendo/internal/client/api"
	"github.com/dmitrijs2005/attendo/internal/client/models"
	"github.com/dmitrijs2005/attendo/internal/client/session"
	"github.com/dmitrijs2005/attendo/internal/common"
	"github.com/go-playground/validator/v10"
)

// profileEdit carries the editable profile fields through validation.
type profileEdit struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Phone string `validate:"omitempty,e164"`
}

// ProfileService reads and updates the user profile. The session store owns
// the authoritative cached copy; updates go through the backend first and
// only then reconcile the cache.
type ProfileService interface {
	Get(ctx context.Context) (*models.UserRecord, error)
	Update(ctx context.Context, u models.UserRecord) (*models.UserRecord, error)
}

type profileService struct {
	client   api.Client
	session  *session.Manager
	validate *validator.Validate
}

func NewProfileService(client api.Client, sm *session.Manager) ProfileService {
	return &profileService{client: client, session: sm, validate: validator.New()}
}

func (p *profileService) Get(ctx context.Context) (*models.UserRecord, error) {
	return p.client.GetProfile(ctx)
}

func (p *profileService) Update(ctx context.Context, u models.UserRecord) (*models.UserRecord, error) {
	edit := profileEdit{Name: u.Name, Email: u.Email, Phone: u.Phone}
	if err := p.validate.Struct(edit); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	updated, err := p.client.UpdateProfile(ctx, u)
	if err != nil {
		return nil, err
	}

	if err := p.session.UpdateUser(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

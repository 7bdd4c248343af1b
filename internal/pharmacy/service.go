// Package pharmacy serves the storefront profile shown on the pharmacy
// landing page and lets the dashboard update it.
package pharmacy

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wellway-health/wellway-backend/pkg/db/models"
	pkgerrors "github.com/wellway-health/wellway-backend/pkg/errors"
	"github.com/wellway-health/wellway-backend/pkg/logger"
)

// UpdateProfileInput carries the editable profile fields. Nil pointers leave
// the stored value untouched.
type UpdateProfileInput struct {
	Name             *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description      *string `json:"description,omitempty"`
	Address          *string `json:"address,omitempty"`
	Phone            *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email"`
	OperatingHours   *string `json:"operating_hours,omitempty"`
	EmergencyContact *string `json:"emergency_contact,omitempty"`
	Website          *string `json:"website,omitempty" validate:"omitempty,url"`
	SpecialServices  *string `json:"special_services,omitempty"`
}

// Service exposes the storefront profile.
type Service interface {
	GetProfile(ctx context.Context) (*models.PharmacyProfile, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*models.PharmacyProfile, error)
}

type service struct {
	repo *Repository
	log  *logger.Logger
}

// NewService wires the profile service.
func NewService(repo *Repository, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy: repository is required")
	}
	if log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy: logger is required")
	}
	return &service{repo: repo, log: log}, nil
}

func (s *service) GetProfile(ctx context.Context) (*models.PharmacyProfile, error) {
	profile, err := s.repo.FindActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pharmacy profile not configured")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading pharmacy profile")
	}
	return profile, nil
}

func (s *service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*models.PharmacyProfile, error) {
	profile, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	applyUpdate(profile, input)
	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving pharmacy profile")
	}

	s.log.Info(s.log.WithField(ctx, "profile_id", profile.ID), "pharmacy profile updated")
	return profile, nil
}

func applyUpdate(profile *models.PharmacyProfile, input UpdateProfileInput) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&profile.Name, input.Name)
	set(&profile.Description, input.Description)
	set(&profile.Address, input.Address)
	set(&profile.Phone, input.Phone)
	set(&profile.Email, input.Email)
	set(&profile.OperatingHours, input.OperatingHours)
	set(&profile.EmergencyContact, input.EmergencyContact)
	set(&profile.Website, input.Website)
	set(&profile.SpecialServices, input.SpecialServices)
}

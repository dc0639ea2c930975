package services

import (
	"context"
	"net/mail"
	"strings"

	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/analytics"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/audit"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/events"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/models"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/repositories"
)

type ProfileService struct {
	profileRepo repositories.ProfileRepo
	events      events.Publisher
	activity    ActivityRecorder
}

func NewProfileService(profileRepo repositories.ProfileRepo, publisher events.Publisher) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, events: publisher}
}

// SetActivityRecorder enables the activity trail for profile updates
func (s *ProfileService) SetActivityRecorder(rec ActivityRecorder) {
	s.activity = rec
}

func (s *ProfileService) Get(ctx context.Context) (models.Profile, error) {
	return s.profileRepo.Get(ctx)
}

// Update replaces the stored profile
func (s *ProfileService) Update(ctx context.Context, p models.Profile) (models.Profile, error) {
	p.Currency = strings.ToUpper(strings.TrimSpace(p.Currency))
	if p.Currency != "" && !analytics.SupportedCurrency(p.Currency) {
		return p, invalid("currency", "unsupported currency %q", p.Currency)
	}
	for field, addr := range map[string]string{"email": p.Email, "companyEmail": p.CompanyEmail} {
		if strings.TrimSpace(addr) == "" {
			continue
		}
		if _, err := mail.ParseAddress(addr); err != nil {
			return p, invalid(field, "invalid email address")
		}
	}

	if err := s.profileRepo.Save(ctx, p); err != nil {
		return p, err
	}
	s.events.Publish(events.ProfileUpdated)
	recordActivity(ctx, s.activity, audit.ActionUpdated, "profile", "user", "Business profile updated", nil)
	return p, nil
}

// Currency returns the profile currency, or fallback when none is set
func (s *ProfileService) Currency(ctx context.Context, fallback string) string {
	p, err := s.profileRepo.Get(ctx)
	if err != nil || p.Currency == "" {
		return fallback
	}
	return p.Currency
}

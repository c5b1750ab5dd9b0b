package services

import (
	"fmt"
	"strings"

	"github.com/goldtrust/wallet/internal/ledger"
	"github.com/goldtrust/wallet/internal/models"
	"github.com/goldtrust/wallet/internal/store"
)

// ProfileService owns the registered user record and session onboarding flags.
type ProfileService struct {
	s     store.Store
	ldg   *ledger.Ledger
	audit *Audit
}

func NewProfileService(s store.Store, ldg *ledger.Ledger, audit *Audit) *ProfileService {
	return &ProfileService{s: s, ldg: ldg, audit: audit}
}

// Register stores the profile and seeds the wallet: balance zero, empty
// ledger. A second registration within the same store is rejected.
func (s *ProfileService) Register(fullName, phone, email, referral string) (models.UserProfile, error) {
	var existing models.UserProfile
	if s.s.Get(store.KeyUser, &existing) {
		return models.UserProfile{}, ErrProfileExists
	}
	u := models.UserProfile{
		FullName: strings.TrimSpace(fullName),
		Phone:    models.DigitsOnly(phone),
		Email:    strings.TrimSpace(email),
		Plan:     models.DefaultPlan,
		Referral: strings.TrimSpace(referral),
	}
	if err := u.Validate(); err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	s.s.Set(store.KeyUser, u)
	s.ldg.SetBalance(0)
	s.ldg.ReplaceAll(nil)
	s.audit.Record("registered", map[string]any{"phone": u.Phone})
	return u, nil
}

// Login matches the supplied phone against the stored profile.
func (s *ProfileService) Login(phone string) (models.UserProfile, error) {
	var u models.UserProfile
	if !s.s.Get(store.KeyUser, &u) {
		return models.UserProfile{}, ErrNoProfile
	}
	if models.DigitsOnly(phone) == "" || models.DigitsOnly(phone) != u.Phone {
		return models.UserProfile{}, ErrInvalidInput
	}
	return u, nil
}

func (s *ProfileService) Profile() (models.UserProfile, bool) {
	var u models.UserProfile
	ok := s.s.Get(store.KeyUser, &u)
	return u, ok
}

// Update edits the profile in place. The plan is kept unless the caller sets
// a new one.
func (s *ProfileService) Update(p models.UserProfile) (models.UserProfile, error) {
	current, ok := s.Profile()
	if !ok {
		return models.UserProfile{}, ErrNoProfile
	}
	p.FullName = strings.TrimSpace(p.FullName)
	p.Phone = models.DigitsOnly(p.Phone)
	p.Email = strings.TrimSpace(p.Email)
	if p.Plan == "" {
		p.Plan = current.Plan
	}
	if err := p.Validate(); err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	s.s.Set(store.KeyUser, p)
	s.audit.Record("profile_updated", nil)
	return p, nil
}

// Onboarding reports whether the intro and welcome overlays were already
// shown and latches both flags, so each fires once per store.
func (s *ProfileService) Onboarding() (introSeen, welcomeSeen bool) {
	s.s.Get(store.FlagSeenIntro, &introSeen)
	s.s.Get(store.FlagSeenWelcome, &welcomeSeen)
	if !introSeen {
		s.s.Set(store.FlagSeenIntro, true)
	}
	if !welcomeSeen {
		s.s.Set(store.FlagSeenWelcome, true)
	}
	return introSeen, welcomeSeen
}

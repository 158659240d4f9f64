package service

import (
	"context"

	"github.com/scward0/SaveHaven/internal/apperr"
	"github.com/scward0/SaveHaven/internal/auth"
	"github.com/scward0/SaveHaven/internal/store"
)

// Preference keys. All flags default to on until the user turns them off.
const (
	PrefWeeklySummary      = "weekly_summary"
	PrefHabitNotifications = "habit_notifications"
	PrefDailyReminders     = "daily_reminders"
	PrefEducationFacts     = "education_facts"
)

var defaultPreferences = map[string]bool{
	PrefWeeklySummary:      true,
	PrefHabitNotifications: true,
	PrefDailyReminders:     true,
	PrefEducationFacts:     true,
}

// PreferenceService reads and writes per-user boolean settings.
type PreferenceService struct {
	store store.Store
}

// NewPreferenceService creates a new PreferenceService.
func NewPreferenceService(store store.Store) *PreferenceService {
	return &PreferenceService{store: store}
}

// Get returns the caller's preference flags, with defaults filled in for any
// key the user has never touched.
func (s *PreferenceService) Get(ctx context.Context) (map[string]bool, error) {
	claims, err := auth.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	stored, err := s.store.GetPreferences(ctx, claims.UID)
	if err != nil {
		return nil, apperr.Backend("get preferences", err)
	}

	prefs := make(map[string]bool, len(defaultPreferences))
	for key, def := range defaultPreferences {
		if v, ok := stored[key]; ok {
			prefs[key] = v
		} else {
			prefs[key] = def
		}
	}
	return prefs, nil
}

// Set stores one flag for the caller. Unknown keys are rejected so typos
// don't silently accumulate in the preferences document.
func (s *PreferenceService) Set(ctx context.Context, key string, value bool) error {
	claims, err := auth.RequireAuth(ctx)
	if err != nil {
		return err
	}

	if _, ok := defaultPreferences[key]; !ok {
		return apperr.InvalidArgument("unknown preference key: " + key)
	}

	if err := s.store.SetPreference(ctx, claims.UID, key, value); err != nil {
		return apperr.Backend("set preference", err)
	}
	return nil
}

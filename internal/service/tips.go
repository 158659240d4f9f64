package service

import (
	"context"
	"time"
)

// financialTips is the rotating pool of educational one-liners shown on the
// dashboard when the education_facts preference is on.
var financialTips = []string{
	"Pay yourself first: move a slice of every paycheck into savings before spending.",
	"Track every expense for a month - small recurring costs add up faster than big purchases.",
	"An emergency fund of 3-6 months of expenses keeps one bad surprise from becoming debt.",
	"Needs before wants: cover rent, food, and transport before entertainment.",
	"Review your subscriptions quarterly and cancel the ones you forgot you had.",
	"Paying more than the minimum on a loan shortens the term and cuts total interest.",
	"Set a weekly spending limit for eating out - it is the easiest category to overshoot.",
	"Compare your net savings month over month, not day over day.",
	"A budget is not a restriction, it is a plan for where your money goes.",
	"Windfalls like gifts are easiest to save - you never budgeted to spend them.",
}

// TipOfTheDay returns today's financial tip for the caller, honoring the
// education_facts preference. When the user has turned tips off, ok is false
// and no tip is returned.
func (s *PreferenceService) TipOfTheDay(ctx context.Context) (tip string, ok bool, err error) {
	prefs, err := s.Get(ctx)
	if err != nil {
		return "", false, err
	}
	if !prefs[PrefEducationFacts] {
		return "", false, nil
	}

	// Deterministic daily rotation.
	day := time.Now().YearDay()
	return financialTips[day%len(financialTips)], true, nil
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pocketledger/pocketledger/internal/database/repository"
)

// maxGeneratedPerTemplate bounds backlog generation for a single template.
// A template missed for longer than this under-generates silently; the cap
// exists to break loops on malformed templates, not to report them.
const maxGeneratedPerTemplate = 365

// expandRecurringLocked materializes every occurrence a recurring template
// missed up to now. The anchor is the template's latest generated instance,
// or the template itself when none exist yet, which is what makes repeated
// runs idempotent: a second run finds the instances the first one wrote and
// generates nothing. New instances get their balance effects applied and
// both collections are persisted. Returns the number generated.
func (l *LedgerService) expandRecurringLocked(ctx context.Context, now time.Time) (int, error) {
	var generated []repository.Transaction

	for _, tmpl := range l.transactions {
		if !tmpl.IsRecurring || tmpl.Recurrence == "" {
			continue
		}

		anchor := tmpl.Date
		for _, t := range l.transactions {
			if t.ParentID == tmpl.ID && t.Date.After(anchor) {
				anchor = t.Date
			}
		}

		for count := 0; count < maxGeneratedPerTemplate; count++ {
			next, ok := nextOccurrence(anchor, tmpl.Recurrence)
			if !ok || next.After(now) {
				break
			}
			inst := tmpl
			inst.ID = uuid.NewString()
			inst.Date = next
			inst.CreatedAt = now
			inst.ParentID = tmpl.ID
			inst.IsRecurring = false
			generated = append(generated, inst)
			anchor = next
		}
	}

	if len(generated) == 0 {
		return 0, nil
	}

	applyEffects(l.accounts, generated, false)
	l.transactions = append(generated, l.transactions...)
	sortTransactions(l.transactions)

	if err := l.store.SaveTransactions(ctx, l.transactions); err != nil {
		return len(generated), err
	}
	if err := l.store.SaveAccounts(ctx, l.accounts); err != nil {
		return len(generated), err
	}
	return len(generated), nil
}

func nextOccurrence(after time.Time, rule repository.RecurrenceRule) (time.Time, bool) {
	switch rule {
	case repository.RecurDaily:
		return after.AddDate(0, 0, 1), true
	case repository.RecurWeekly:
		return after.AddDate(0, 0, 7), true
	case repository.RecurMonthly:
		return after.AddDate(0, 1, 0), true
	}
	return time.Time{}, false
}

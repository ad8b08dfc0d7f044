package service

import (
	"context"
	"time"

	"github.com/pocketledger/pocketledger/internal/daterange"
)

const dayFormat = "2006-01-02"

// checkStreakIntegrityLocked zeroes the current count when the last log is
// neither today nor yesterday. LastLogDate is left alone; the reset only
// kills the counter, it does not erase history. Runs once at boot.
func (l *LedgerService) checkStreakIntegrityLocked(ctx context.Context) error {
	if l.streak.LastLogDate == "" {
		return nil
	}
	today := l.now()
	todayStr := today.Format(dayFormat)
	if l.streak.LastLogDate == todayStr {
		return nil
	}
	lastLog, err := time.ParseInLocation(dayFormat, l.streak.LastLogDate, today.Location())
	if err != nil {
		// Unparseable stored date: treat as broken streak.
		l.streak.CurrentCount = 0
		return l.store.SaveStreak(ctx, l.streak)
	}
	if daterange.CalendarDaysBetween(lastLog, today) > 1 {
		l.streak.CurrentCount = 0
		return l.store.SaveStreak(ctx, l.streak)
	}
	return nil
}

// logStreakLocked advances the streak for a transaction dated txDate. Only
// transactions logged for today's calendar day count, and only the first
// one per day moves the counter. Returns the reward signal (first log of
// today) and whether the stored streak changed.
func (l *LedgerService) logStreakLocked(txDate, today time.Time) (reward, changed bool) {
	if !daterange.SameDay(txDate, today) {
		return false, false
	}
	todayStr := today.Format(dayFormat)
	if l.streak.LastLogDate == todayStr {
		return false, false
	}

	newCount := 1
	if l.streak.LastLogDate != "" {
		if lastLog, err := time.ParseInLocation(dayFormat, l.streak.LastLogDate, today.Location()); err == nil {
			switch daterange.CalendarDaysBetween(lastLog, today) {
			case 1:
				newCount = l.streak.CurrentCount + 1
			case 0:
				newCount = l.streak.CurrentCount
			}
		}
	}

	l.streak.CurrentCount = newCount
	if newCount > l.streak.LongestCount {
		l.streak.LongestCount = newCount
	}
	l.streak.LastLogDate = todayStr
	return true, true
}

package ops

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/streakhq/internal/domain"
)

type LedgerInput struct {
	Type       domain.LedgerType `json:"type"`
	EuroAmount float64           `json:"euroAmount"`
	DateISO    string            `json:"dateISO,omitempty"`
	Notes      string            `json:"notes,omitempty"`
}

// PostXPToBank converts all pending XP into an Earn entry at the current
// rate. totalXp is a lifetime counter and is left alone.
func PostXPToBank(s domain.Snapshot, now time.Time) (Result, error) {
	if s.PendingXP <= 0 {
		return Result{}, ErrNoPendingXP
	}
	today := domain.Today(now)
	amount := roundCents(float64(s.PendingXP) * s.Settings.XPToEuroRate)

	r := begin(s)
	out := &r.Snapshot
	prependEntry(out, domain.RewardLedgerEntry{
		ID:            newID(),
		DateISO:       today,
		Type:          domain.LedgerEarn,
		EuroAmount:    amount,
		Source:        domain.SourceXPPost,
		SourceDateISO: today,
		Notes:         fmt.Sprintf("XP Earned: %d", s.PendingXP),
	})
	out.PendingXP = 0
	r.effect(domain.EffectGeneral, "", s.PendingXP)
	r.notice("Posted €%.2f to the bank", amount)
	return *r, nil
}

// AddLedgerEntry records a manual Earn or Spend. Spending is refused while
// the spend gate is locked.
func AddLedgerEntry(s domain.Snapshot, in LedgerInput, now time.Time) (Result, error) {
	if in.Type != domain.LedgerEarn && in.Type != domain.LedgerSpend {
		return Result{}, ErrInvalidLedgerType
	}
	if math.IsNaN(in.EuroAmount) || math.IsInf(in.EuroAmount, 0) || in.EuroAmount < 0 {
		return Result{}, ErrInvalidAmount
	}
	today := domain.Today(now)
	date := domain.CoalesceStr(in.DateISO, today)
	if _, err := domain.ParseDate(date); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if in.Type == domain.LedgerSpend && !domain.SpendAllowed(s, today) {
		return Result{}, fmt.Errorf("%w: %d of %d categories done today",
			ErrSpendGateLocked, domain.CategoriesDoneToday(s, today), s.Settings.SpendGateThreshold)
	}

	r := begin(s)
	prependEntry(&r.Snapshot, domain.RewardLedgerEntry{
		ID:         newID(),
		DateISO:    date,
		Type:       in.Type,
		EuroAmount: roundCents(in.EuroAmount),
		Source:     domain.SourceManual,
		Notes:      strings.TrimSpace(in.Notes),
	})
	r.notice("%s of €%.2f recorded", in.Type, in.EuroAmount)
	return *r, nil
}

// BuyShield adds one shield to a category. The price is ShieldCostXP at the
// current rate, recorded as a Spend; XP balances are not touched.
func BuyShield(s domain.Snapshot, category string, now time.Time) (Result, error) {
	if _, ok := s.Category(category); !ok {
		return Result{}, fmt.Errorf("buying shield for %q: %w", category, ErrCategoryNotFound)
	}
	r := begin(s)
	out := &r.Snapshot
	prependEntry(out, domain.RewardLedgerEntry{
		ID:         newID(),
		DateISO:    domain.Today(now),
		Type:       domain.LedgerSpend,
		EuroAmount: roundCents(domain.ShieldCostXP * s.Settings.XPToEuroRate),
		Source:     domain.SourceManual,
		Notes:      fmt.Sprintf("Bought Streak Shield (%d XP)", domain.ShieldCostXP),
	})
	if out.Shields == nil {
		out.Shields = map[string]int{}
	}
	out.Shields[category]++
	r.effect(domain.EffectShield, category, 1)
	r.notice("Shield added to %s (%d left)", category, out.Shields[category])
	return *r, nil
}

func prependEntry(s *domain.Snapshot, e domain.RewardLedgerEntry) {
	s.Ledger = append([]domain.RewardLedgerEntry{e}, s.Ledger...)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

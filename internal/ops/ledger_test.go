package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/streakhq/internal/domain"
	"github.com/alexanderramin/streakhq/internal/testutil"
)

func TestPostXPToBank(t *testing.T) {
	s := testutil.NewTestSnapshot(testutil.At("2026-05-10"),
		testutil.WithXP(300, 80),
		testutil.WithSettings(func(st *domain.Settings) { st.XPToEuroRate = 0.5 }),
		testutil.WithLedger(domain.RewardLedgerEntry{ID: "old", DateISO: "2026-05-01", Type: domain.LedgerEarn, EuroAmount: 5, Source: domain.SourceManual}),
	)

	res, err := PostXPToBank(s, testutil.At("2026-05-10"))
	require.NoError(t, err)
	out := res.Snapshot
	require.Len(t, out.Ledger, 2)
	e := out.Ledger[0]
	assert.Equal(t, domain.LedgerEarn, e.Type)
	assert.InDelta(t, 40.0, e.EuroAmount, 0.001)
	assert.Equal(t, domain.SourceXPPost, e.Source)
	assert.Equal(t, "2026-05-10", e.SourceDateISO)
	assert.Equal(t, "XP Earned: 80", e.Notes)
	assert.Zero(t, out.PendingXP)
	assert.Equal(t, 300, out.TotalXP)
	assert.Equal(t, "old", out.Ledger[1].ID)
}

func TestPostXPToBank_NothingPending(t *testing.T) {
	s := testutil.NewTestSnapshot(testutil.At("2026-05-10"), testutil.WithXP(300, 0))
	_, err := PostXPToBank(s, testutil.At("2026-05-10"))
	assert.ErrorIs(t, err, ErrNoPendingXP)
}

func TestAddLedgerEntry_SpendGate(t *testing.T) {
	now := testutil.At("2026-05-10")
	today := "2026-05-10"
	opts := []testutil.SnapshotOption{
		testutil.WithCategories("A", "B", "C", "D", "E", "F"),
		testutil.WithSettings(func(st *domain.Settings) {
			st.SpendGateEnabled = true
			st.SpendGateThreshold = 5
		}),
	}
	for _, c := range []string{"A", "B", "C", "D"} {
		opts = append(opts, testutil.WithCheckIn(c, today))
	}
	s := testutil.NewTestSnapshot(now, opts...)
	spend := LedgerInput{Type: domain.LedgerSpend, EuroAmount: 12, Notes: "Book"}

	_, err := AddLedgerEntry(s, spend, now)
	assert.ErrorIs(t, err, ErrSpendGateLocked)

	fifth, err := ToggleMiniTask(s, "E", today, "")
	require.NoError(t, err)
	res, err := AddLedgerEntry(fifth.Snapshot, spend, now)
	require.NoError(t, err)
	e := res.Snapshot.Ledger[0]
	assert.Equal(t, domain.LedgerSpend, e.Type)
	assert.Equal(t, domain.SourceManual, e.Source)
	assert.Equal(t, today, e.DateISO)
	assert.Equal(t, "Book", e.Notes)
}

func TestAddLedgerEntry_EarnIgnoresGate(t *testing.T) {
	now := testutil.At("2026-05-10")
	s := testutil.NewTestSnapshot(now)
	res, err := AddLedgerEntry(s, LedgerInput{Type: domain.LedgerEarn, EuroAmount: 3.5}, now)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, domain.Balance(res.Snapshot), 0.001)
}

func TestAddLedgerEntry_Validation(t *testing.T) {
	now := testutil.At("2026-05-10")
	s := testutil.NewTestSnapshot(now)

	_, err := AddLedgerEntry(s, LedgerInput{Type: "Gift", EuroAmount: 1}, now)
	assert.ErrorIs(t, err, ErrInvalidLedgerType)

	_, err = AddLedgerEntry(s, LedgerInput{Type: domain.LedgerEarn, EuroAmount: -1}, now)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = AddLedgerEntry(s, LedgerInput{Type: domain.LedgerEarn, EuroAmount: 1, DateISO: "soon"}, now)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestBuyShield(t *testing.T) {
	now := testutil.At("2026-05-10")
	s := testutil.NewTestSnapshot(now,
		testutil.WithCategories("Health"),
		testutil.WithXP(500, 120),
		testutil.WithSettings(func(st *domain.Settings) { st.XPToEuroRate = 0.2 }),
	)

	res, err := BuyShield(s, "Health", now)
	require.NoError(t, err)
	out := res.Snapshot
	assert.Equal(t, 3, out.Shields["Health"])
	require.Len(t, out.Ledger, 1)
	assert.Equal(t, domain.LedgerSpend, out.Ledger[0].Type)
	assert.InDelta(t, 10.0, out.Ledger[0].EuroAmount, 0.001)
	assert.Equal(t, "Bought Streak Shield (50 XP)", out.Ledger[0].Notes)
	assert.Equal(t, 120, out.PendingXP)
	assert.Equal(t, 500, out.TotalXP)
	assert.Equal(t, []domain.Effect{{Kind: domain.EffectShield, Category: "Health", Amount: 1}}, res.Effects)

	_, err = BuyShield(s, "Chess", now)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestUpdateSettings(t *testing.T) {
	s := testutil.NewTestSnapshot(testutil.At("2026-05-10"))
	next := s.Settings
	next.XPToEuroRate = 0.25
	next.SpendGateEnabled = false

	res, err := UpdateSettings(s, next)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, res.Snapshot.Settings.XPToEuroRate, 0.0001)
	assert.False(t, res.Snapshot.Settings.SpendGateEnabled)
	assert.True(t, s.Settings.SpendGateEnabled)

	next.XPToEuroRate = -1
	_, err = UpdateSettings(s, next)
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

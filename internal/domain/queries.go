package domain

// StreakCount counts consecutive active days for a category ending today,
// or ending yesterday when today has no active entry yet.
func StreakCount(s Snapshot, category, today string) int {
	active := make(map[string]bool)
	for _, c := range s.Streaks {
		if c.Category == category && c.Active() {
			active[c.DateISO] = true
		}
	}

	day := today
	if !active[day] {
		day = AddDays(today, -1)
	}
	count := 0
	for active[day] {
		count++
		day = AddDays(day, -1)
	}
	return count
}

// HistoryDay is one cell of a category's recent history.
type HistoryDay struct {
	DateISO string
	Done    bool
	Shield  bool
}

// History returns the last n days for a category, oldest first, ending today.
func History(s Snapshot, category, today string, n int) []HistoryDay {
	out := make([]HistoryDay, 0, n)
	for i := n - 1; i >= 0; i-- {
		d := AddDays(today, -i)
		day := HistoryDay{DateISO: d}
		if c, ok := s.CheckIn(category, d); ok {
			day.Done = c.MiniTaskDone
			day.Shield = c.IsShield
		}
		out = append(out, day)
	}
	return out
}

// CategoriesDoneToday counts categories with a genuine check-in on today.
// Shield days do not count.
func CategoriesDoneToday(s Snapshot, today string) int {
	seen := make(map[string]bool)
	for _, c := range s.Streaks {
		if c.DateISO == today && c.Genuine() {
			seen[c.Category] = true
		}
	}
	return len(seen)
}

// SpendAllowed evaluates the spend gate for today.
func SpendAllowed(s Snapshot, today string) bool {
	if !s.Settings.SpendGateEnabled {
		return true
	}
	return CategoriesDoneToday(s, today) >= s.Settings.SpendGateThreshold
}

// Balance returns total earned minus total spent.
func Balance(s Snapshot) float64 {
	var bal float64
	for _, e := range s.Ledger {
		switch e.Type {
		case LedgerEarn:
			bal += e.EuroAmount
		case LedgerSpend:
			bal -= e.EuroAmount
		}
	}
	return bal
}

// PostedToday reports whether XP was already posted to the bank today.
func PostedToday(s Snapshot, today string) bool {
	for _, e := range s.Ledger {
		if e.Source == SourceXPPost && e.DateISO == today {
			return true
		}
	}
	return false
}

// XPEarnedToday sums the XP of tasks completed today.
func XPEarnedToday(s Snapshot, today string) int {
	sum := 0
	for _, t := range s.Tasks {
		if t.Done && t.Status == TaskDone && t.DateISO == today {
			sum += t.XP
		}
	}
	return sum
}

// ShieldCount returns the category's shield counter.
func ShieldCount(s Snapshot, category string) int {
	return s.Shields[category]
}

package domain

import (
	"maps"
	"slices"
)

// CategoryDef is a life area tracked with its own streak. The ID doubles as
// the display key, so renaming a category changes its ID.
type CategoryDef struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Icon            string `json:"icon,omitempty"`
	ColorTheme      string `json:"colorTheme"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
}

// StreakCheckIn records one category's activity on one calendar day.
type StreakCheckIn struct {
	ID           string        `json:"id"`
	Category     string        `json:"category"`
	DateISO      string        `json:"dateISO"`
	MiniTaskDone bool          `json:"miniTaskDone"`
	IsShield     bool          `json:"isShield,omitempty"`
	Source       CheckInSource `json:"source,omitempty"`
	Note         string        `json:"note,omitempty"`
}

// Active reports whether the day keeps the streak alive.
func (c StreakCheckIn) Active() bool {
	return c.MiniTaskDone || c.IsShield
}

// Genuine reports whether the day was actually worked rather than shielded.
func (c StreakCheckIn) Genuine() bool {
	return c.MiniTaskDone && !c.IsShield
}

type XpTask struct {
	ID                   string          `json:"id"`
	Title                string          `json:"title"`
	Category             string          `json:"category"`
	ProjectID            string          `json:"projectId,omitempty"`
	Status               TaskStatus      `json:"status"`
	DurationMinutes      int             `json:"durationMinutes"`
	XP                   int             `json:"xp"`
	Done                 bool            `json:"done"`
	DateISO              string          `json:"dateISO,omitempty"`
	Notes                string          `json:"notes,omitempty"`
	RepeatFrequency      RepeatFrequency `json:"repeatFrequency,omitempty"`
	LastCompletedDateISO string          `json:"lastCompletedDateISO,omitempty"`
	Streak               int             `json:"streak"`
}

// Repeating reports whether the task recurs on a daily, weekly or monthly cycle.
func (t XpTask) Repeating() bool {
	return t.RepeatFrequency != RepeatNone
}

type Project struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Category     string        `json:"category"`
	Status       ProjectStatus `json:"status"`
	CreatedAtISO string        `json:"createdAtISO"`
	WorkDates    []string      `json:"workDates"`
}

// RewardLedgerEntry is an append-only money movement. Entries are stored
// most-recent-first.
type RewardLedgerEntry struct {
	ID            string       `json:"id"`
	DateISO       string       `json:"dateISO"`
	Type          LedgerType   `json:"type"`
	EuroAmount    float64      `json:"euroAmount"`
	Source        LedgerSource `json:"source"`
	SourceDateISO string       `json:"sourceDateISO,omitempty"`
	Notes         string       `json:"notes,omitempty"`
}

type Settings struct {
	XPToEuroRate               float64             `json:"xpToEuroRate"`
	SpendGateEnabled           bool                `json:"spendGateEnabled"`
	SpendGateThreshold         int                 `json:"spendGateThreshold"`
	DefaultMiniTasksByCategory map[string][]string `json:"defaultMiniTasksByCategory"`
	GeminiAPIKey               string              `json:"geminiApiKey,omitempty"`
}

// Snapshot is the whole application state. Operations never mutate a
// Snapshot in place; they return a replacement built from Clone.
type Snapshot struct {
	Categories       []CategoryDef       `json:"categories"`
	Streaks          []StreakCheckIn     `json:"streaks"`
	Tasks            []XpTask            `json:"tasks"`
	Projects         []Project           `json:"projects"`
	Ledger           []RewardLedgerEntry `json:"ledger"`
	Settings         Settings            `json:"settings"`
	Shields          map[string]int      `json:"shields"`
	LastShieldRefill string              `json:"lastShieldRefill"`
	LastVisitDate    string              `json:"lastVisitDate"`
	TotalXP          int                 `json:"totalXp"`
	PendingXP        int                 `json:"pendingXp"`
}

// Clone returns a deep copy that shares no slices or maps with s.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Categories = slices.Clone(s.Categories)
	out.Streaks = slices.Clone(s.Streaks)
	out.Tasks = slices.Clone(s.Tasks)
	out.Ledger = slices.Clone(s.Ledger)
	out.Projects = slices.Clone(s.Projects)
	for i := range out.Projects {
		out.Projects[i].WorkDates = slices.Clone(s.Projects[i].WorkDates)
	}
	out.Shields = maps.Clone(s.Shields)
	out.Settings.DefaultMiniTasksByCategory = maps.Clone(s.Settings.DefaultMiniTasksByCategory)
	for k, v := range out.Settings.DefaultMiniTasksByCategory {
		out.Settings.DefaultMiniTasksByCategory[k] = slices.Clone(v)
	}
	return out
}

// Category returns the category with the given id.
func (s Snapshot) Category(id string) (CategoryDef, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return CategoryDef{}, false
}

// CheckIn returns the check-in for (category, date), if any.
func (s Snapshot) CheckIn(category, dateISO string) (StreakCheckIn, bool) {
	for _, c := range s.Streaks {
		if c.Category == category && c.DateISO == dateISO {
			return c, true
		}
	}
	return StreakCheckIn{}, false
}

// TaskIndex returns the position of the task with id, or -1.
func (s Snapshot) TaskIndex(id string) int {
	for i, t := range s.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// ProjectIndex returns the position of the project with id, or -1.
func (s Snapshot) ProjectIndex(id string) int {
	for i, p := range s.Projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// ProjectTasks returns the tasks linked to projectID, in snapshot order.
func (s Snapshot) ProjectTasks(projectID string) []XpTask {
	var out []XpTask
	for _, t := range s.Tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

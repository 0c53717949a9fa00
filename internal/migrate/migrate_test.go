package migrate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/streakhq/internal/domain"
)

var now = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func assertInvariants(t *testing.T, s domain.Snapshot) {
	t.Helper()
	ids := map[string]bool{}
	for _, c := range s.Categories {
		assert.False(t, ids[c.ID], "duplicate category %q", c.ID)
		ids[c.ID] = true
	}
	days := map[string]bool{}
	for _, c := range s.Streaks {
		k := c.Category + "|" + c.DateISO
		assert.False(t, days[k], "duplicate check-in %q", k)
		days[k] = true
	}
	for _, task := range s.Tasks {
		if task.Done {
			assert.Equal(t, domain.TaskDone, task.Status, "task %s", task.ID)
			assert.NotEmpty(t, task.DateISO, "task %s", task.ID)
		}
	}
	for _, p := range s.Projects {
		assert.NotNil(t, p.WorkDates)
	}
	for k, v := range s.Shields {
		assert.GreaterOrEqual(t, v, 0, "shields %s", k)
	}
	assert.NotNil(t, s.Streaks)
	assert.NotNil(t, s.Tasks)
	assert.NotNil(t, s.Ledger)
}

func TestMigrate_LegacyShapes(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		check func(t *testing.T, s domain.Snapshot)
	}{
		{
			name: "missing categories",
			raw:  `{"tasks":[],"settings":{}}`,
			check: func(t *testing.T, s domain.Snapshot) {
				assert.Len(t, s.Categories, len(domain.SeedCategories))
				assert.Equal(t, domain.InitialShields, s.Shields["Health"])
			},
		},
		{
			name: "empty categories",
			raw:  `{"categories":[],"tasks":[]}`,
			check: func(t *testing.T, s domain.Snapshot) {
				assert.Len(t, s.Categories, len(domain.SeedCategories))
			},
		},
		{
			name: "project without work dates",
			raw:  `{"projects":[{"id":"p1","title":"Paper","category":"Research","status":"Active","createdAtISO":"2026-01-01"}]}`,
			check: func(t *testing.T, s domain.Snapshot) {
				require.Len(t, s.Projects, 1)
				assert.Empty(t, s.Projects[0].WorkDates)
				assert.NotNil(t, s.Projects[0].WorkDates)
			},
		},
		{
			name: "missing shields uses persisted categories",
			raw:  `{"categories":[{"id":"Chess","name":"Chess","colorTheme":"lime"}]}`,
			check: func(t *testing.T, s domain.Snapshot) {
				assert.Equal(t, map[string]int{"Chess": 2}, s.Shields)
			},
		},
		{
			name: "existing shields untouched",
			raw:  `{"shields":{"Health":7}}`,
			check: func(t *testing.T, s domain.Snapshot) {
				assert.Equal(t, map[string]int{"Health": 7}, s.Shields)
			},
		},
		{
			name: "missing scalars",
			raw:  `{}`,
			check: func(t *testing.T, s domain.Snapshot) {
				assert.Equal(t, "2026-05", s.LastShieldRefill)
				assert.Equal(t, "2026-05-10", s.LastVisitDate)
				assert.Zero(t, s.TotalXP)
				assert.Zero(t, s.PendingXP)
			},
		},
		{
			name: "persisted scalars kept",
			raw:  `{"lastShieldRefill":"2025-11","lastVisitDate":"2025-11-20","totalXp":340,"pendingXp":15}`,
			check: func(t *testing.T, s domain.Snapshot) {
				assert.Equal(t, "2025-11", s.LastShieldRefill)
				assert.Equal(t, "2025-11-20", s.LastVisitDate)
				assert.Equal(t, 340, s.TotalXP)
				assert.Equal(t, 15, s.PendingXP)
			},
		},
		{
			name: "boolean repeatable",
			raw:  `{"tasks":[{"id":"t1","title":"Stretch","category":"Health","xp":5,"done":false,"repeatable":true},{"id":"t2","title":"Once","category":"Health","xp":5,"done":false,"repeatable":false}]}`,
			check: func(t *testing.T, s domain.Snapshot) {
				require.Len(t, s.Tasks, 2)
				assert.Equal(t, domain.RepeatDaily, s.Tasks[0].RepeatFrequency)
				assert.Equal(t, domain.TaskBacklog, s.Tasks[0].Status)
				assert.Zero(t, s.Tasks[0].Streak)
				assert.Equal(t, domain.RepeatNone, s.Tasks[1].RepeatFrequency)
			},
		},
		{
			name: "legacy mini-task strings",
			raw:  `{"settings":{"defaultMiniTasksByCategory":{"Health":"2 min mobility OR 10 squats","Chess":"Solve 1 puzzle","Finance":"Pay rent"}}}`,
			check: func(t *testing.T, s domain.Snapshot) {
				mini := s.Settings.DefaultMiniTasksByCategory
				assert.Equal(t, domain.DefaultMiniTasks["Health"], mini["Health"])
				assert.Equal(t, []string{"Solve 1 puzzle"}, mini["Chess"])
				// A known category without the legacy marker is only wrapped.
				assert.Equal(t, []string{"Pay rent"}, mini["Finance"])
			},
		},
		{
			name: "partial settings merged over defaults",
			raw:  `{"settings":{"xpToEuroRate":0.5,"geminiApiKey":"k"}}`,
			check: func(t *testing.T, s domain.Snapshot) {
				assert.InDelta(t, 0.5, s.Settings.XPToEuroRate, 0.0001)
				assert.True(t, s.Settings.SpendGateEnabled)
				assert.Equal(t, 5, s.Settings.SpendGateThreshold)
				assert.Equal(t, "k", s.Settings.GeminiAPIKey)
				assert.NotEmpty(t, s.Settings.DefaultMiniTasksByCategory)
			},
		},
		{
			name: "persisted false overrides default true",
			raw:  `{"settings":{"spendGateEnabled":false,"spendGateThreshold":0}}`,
			check: func(t *testing.T, s domain.Snapshot) {
				assert.False(t, s.Settings.SpendGateEnabled)
				assert.Zero(t, s.Settings.SpendGateThreshold)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Migrate([]byte(tt.raw), now)
			require.NoError(t, err)
			assertInvariants(t, s)
			tt.check(t, s)
		})
	}
}

func TestMigrate_RepairsInvariants(t *testing.T) {
	raw := `{
		"categories":[{"id":"Health","name":"Health","colorTheme":"rose"},{"id":"Health","name":"Dup","colorTheme":"lime"}],
		"streaks":[
			{"id":"a","category":"Health","dateISO":"2026-05-09","miniTaskDone":false,"isShield":true},
			{"id":"b","category":"Health","dateISO":"2026-05-09","miniTaskDone":true}
		],
		"tasks":[{"id":"t1","title":"Done","category":"Health","xp":10,"done":true,"status":"Today","lastCompletedDateISO":"2026-05-08"}],
		"shields":{"Health":-3},
		"lastVisitDate":"2026-05-09"
	}`
	s, err := Migrate([]byte(raw), now)
	require.NoError(t, err)
	assertInvariants(t, s)

	require.Len(t, s.Categories, 1)
	assert.Equal(t, "Health", s.Categories[0].Name)
	require.Len(t, s.Streaks, 1)
	assert.Equal(t, "b", s.Streaks[0].ID)
	assert.Equal(t, domain.TaskDone, s.Tasks[0].Status)
	assert.Equal(t, "2026-05-08", s.Tasks[0].DateISO)
	assert.Zero(t, s.Shields["Health"])
}

func TestMigrate_CurrentShapeRoundTrips(t *testing.T) {
	raw := `{"categories":[{"id":"Health","name":"Health","icon":"Heart","colorTheme":"rose"}],"streaks":[],"tasks":[],"projects":[],"ledger":[],"shields":{"Health":4},"lastShieldRefill":"2026-05","lastVisitDate":"2026-05-10","totalXp":120,"pendingXp":0,"settings":{"xpToEuroRate":1,"spendGateEnabled":true,"spendGateThreshold":5,"defaultMiniTasksByCategory":{"Health":["Stretch"]}}}`

	s, err := Migrate([]byte(raw), now)
	require.NoError(t, err)
	assert.Equal(t, 120, s.TotalXP)
	assert.Equal(t, 4, s.Shields["Health"])
	assert.Equal(t, map[string][]string{"Health": {"Stretch"}}, s.Settings.DefaultMiniTasksByCategory)
}

func TestMigrate_CoercesMistypedNumbers(t *testing.T) {
	raw := `{"categories":[{"id":"Health","name":"Health"}],"shields":{"Health":2.0},"totalXp":10.4,"pendingXp":"7",` +
		`"tasks":[{"id":"t1","title":"Plan","category":"Health","xp":12.6,"durationMinutes":"25","streak":true,"status":"Backlog","done":false,"dateISO":"2026-05-10"}],` +
		`"settings":{"spendGateThreshold":"lots"}}`

	s, err := Migrate([]byte(raw), now)
	require.NoError(t, err)
	assert.Equal(t, 10, s.TotalXP)
	assert.Equal(t, 7, s.PendingXP)
	assert.Equal(t, 2, s.Shields["Health"])
	require.Len(t, s.Tasks, 1)
	assert.Equal(t, 13, s.Tasks[0].XP)
	assert.Equal(t, 25, s.Tasks[0].DurationMinutes)
	assert.Equal(t, 0, s.Tasks[0].Streak)
	assert.Equal(t, domain.DefaultSettings().SpendGateThreshold, s.Settings.SpendGateThreshold)
	assertInvariants(t, s)
}

func TestMigrate_RejectsUndecodable(t *testing.T) {
	_, err := Migrate([]byte(`{not json`), now)
	assert.Error(t, err)

	_, err = Migrate([]byte(`null`), now)
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = Migrate([]byte(`[1,2]`), now)
	assert.Error(t, err)
}

package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/streakhq/internal/teatest"
)

func openDashboard(t *testing.T) *teatest.Driver {
	t.Helper()
	app := testApp(t)
	_, err := app.Store.Open(context.Background())
	require.NoError(t, err)
	return teatest.New(t, newDashboardModel(app.Store), teatest.WithSize(100, 30))
}

func dashboard(d *teatest.Driver) dashboardModel {
	return d.Model.(dashboardModel)
}

func stripView(d *teatest.Driver) string {
	return ansiPattern.ReplaceAllString(d.View(), "")
}

func TestDashboard_ToggleSelectedCategory(t *testing.T) {
	d := openDashboard(t)

	d.PressSpace()

	m := dashboard(d)
	_, ok := m.snap.CheckIn("Health", testToday)
	assert.True(t, ok)
	assert.Contains(t, m.status, "Streak secured for Health!")
	assert.False(t, m.isErr)
	assert.Contains(t, stripView(d), "✔ Health")
}

func TestDashboard_CursorAndShield(t *testing.T) {
	d := openDashboard(t)

	d.PressKey('j')
	d.PressDown()
	assert.Equal(t, 1, dashboard(d).cursor, "cursor stops at the last category")

	d.PressKey('b')
	m := dashboard(d)
	assert.Equal(t, 3, m.snap.Shields["Work"])
	assert.Equal(t, 2, m.snap.Shields["Health"])

	d.PressKey('k')
	assert.Equal(t, 0, dashboard(d).cursor)
}

func TestDashboard_PostWithoutXPShowsError(t *testing.T) {
	d := openDashboard(t)

	d.PressKey('p')

	m := dashboard(d)
	assert.True(t, m.isErr)
	assert.Contains(t, m.status, "no pending XP")
}

func TestDashboard_ReconcileAndQuit(t *testing.T) {
	d := openDashboard(t)

	d.PressKey('r')
	assert.Empty(t, dashboard(d).status, "nothing changes on an up-to-date snapshot")

	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestDashboard_ViewShowsHelp(t *testing.T) {
	d := openDashboard(t)

	view := stripView(d)
	assert.Contains(t, view, "STREAKHQ · 2026-05-10")
	assert.Contains(t, view, "b buy shield")
	assert.Contains(t, view, "[░░░░░] 0/5")
}

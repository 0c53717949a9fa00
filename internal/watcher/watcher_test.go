package watcher

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/streakhq/internal/reconcile"
)

type countingReconciler struct {
	calls  atomic.Int64
	err    error
	report reconcile.Report
}

func (c *countingReconciler) Reconcile(context.Context) (reconcile.Report, error) {
	c.calls.Add(1)
	return c.report, c.err
}

func TestNew_RejectsBadSchedule(t *testing.T) {
	_, err := New(&countingReconciler{}, "every now and then")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid watch schedule")
}

func TestNew_DefaultSchedule(t *testing.T) {
	w, err := New(&countingReconciler{}, "")
	require.NoError(t, err)
	assert.Len(t, w.cron.Entries(), 2)
}

func TestTrigger_LogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	rec := &countingReconciler{report: reconcile.Report{VisitAdvanced: true, TasksReopened: []string{"a", "b"}}}
	w, err := New(rec, "", WithLogger(logger))
	require.NoError(t, err)

	w.Trigger(context.Background(), "manual")
	assert.EqualValues(t, 1, rec.calls.Load())
	assert.Contains(t, buf.String(), "tasks_reopened=2")

	rec.err = errors.New("store is not open")
	w.Trigger(context.Background(), "manual")
	assert.Contains(t, buf.String(), "scheduled reconcile failed")
	assert.EqualValues(t, 2, w.Runs())
}

func TestRun_ReconcilesOnStartAndOnSchedule(t *testing.T) {
	rec := &countingReconciler{}
	w, err := New(rec, "@every 1s", WithLocation(time.UTC))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return rec.calls.Load() >= 1 }, time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool { return rec.calls.Load() >= 2 }, 3*time.Second, 50*time.Millisecond)
	assert.False(t, w.Next().IsZero())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

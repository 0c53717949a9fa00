package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/streakhq/internal/auth"
	"github.com/alexanderramin/streakhq/internal/domain"
	"github.com/alexanderramin/streakhq/internal/importer"
	"github.com/alexanderramin/streakhq/internal/intelligence"
	"github.com/alexanderramin/streakhq/internal/ops"
	"github.com/alexanderramin/streakhq/internal/reconcile"
	"github.com/alexanderramin/streakhq/internal/repository"
)

// GenerateProjectTasks asks the suggestion service for tasks for a project
// and adds them to its backlog. An empty suggestion list is not an error:
// the result carries the service's message and the snapshot is unchanged.
func (s *Store) GenerateProjectTasks(ctx context.Context, projectID, feedback, imageBase64 string) (ops.Result, error) {
	snap, err := s.openSnapshot()
	if err != nil {
		return ops.Result{}, err
	}
	i := snap.ProjectIndex(projectID)
	if i < 0 {
		return ops.Result{}, fmt.Errorf("project %q: %w", projectID, ops.ErrProjectNotFound)
	}
	project := snap.Projects[i]
	current := make([]intelligence.SuggestedTask, 0)
	for _, t := range snap.ProjectTasks(projectID) {
		current = append(current, intelligence.SuggestedTask{Title: t.Title, DurationMinutes: t.DurationMinutes, XP: t.XP})
	}

	resp := s.suggester.SuggestProjectTasks(ctx, intelligence.SuggestRequest{
		ProjectTitle: project.Title,
		CategoryName: categoryLabel(snap, project.Category),
		CurrentTasks: current,
		Feedback:     feedback,
		APIKey:       snap.Settings.GeminiAPIKey,
		ImageBase64:  imageBase64,
	})
	if len(resp.Tasks) == 0 {
		return ops.Result{Snapshot: snap, Effects: []domain.Effect{}, Notices: []string{resp.Message}}, nil
	}

	inputs := make([]ops.TaskInput, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		inputs = append(inputs, ops.TaskInput{
			Title:           t.Title,
			Category:        project.Category,
			ProjectID:       project.ID,
			Status:          domain.TaskBacklog,
			DurationMinutes: t.DurationMinutes,
			XP:              t.XP,
		})
	}
	fields := map[string]any{"project": projectID, "suggested": len(inputs)}
	return s.apply(ctx, "generate-project-tasks", fields, func(cur domain.Snapshot, _ time.Time) (ops.Result, error) {
		// The project may have been deleted while the model was thinking.
		if cur.ProjectIndex(projectID) < 0 {
			return ops.Result{}, fmt.Errorf("project %q: %w", projectID, ops.ErrProjectNotFound)
		}
		res, err := ops.AddTasks(cur, inputs)
		if err != nil {
			return ops.Result{}, err
		}
		if resp.Message != "" {
			res.Notices = append(res.Notices, resp.Message)
		}
		return res, nil
	})
}

// SuggestMiniTasks proposes quick daily actions for a category based on its
// active projects and open tasks.
func (s *Store) SuggestMiniTasks(ctx context.Context, category string) ([]string, error) {
	snap, err := s.openSnapshot()
	if err != nil {
		return nil, err
	}
	if _, ok := snap.Category(category); !ok {
		return nil, fmt.Errorf("category %q: %w", category, ops.ErrCategoryNotFound)
	}
	var projects, tasks []string
	for _, p := range snap.Projects {
		if p.Category == category && p.Status == domain.ProjectActive {
			projects = append(projects, p.Title)
		}
	}
	for _, t := range snap.Tasks {
		if t.Category == category && !t.Done {
			tasks = append(tasks, t.Title)
		}
	}
	return s.suggester.SuggestMiniTasks(ctx, categoryLabel(snap, category), projects, tasks, snap.Settings.GeminiAPIKey), nil
}

// Reset replaces all data with a fresh seed. The previous snapshot is kept
// as a backup.
func (s *Store) Reset(ctx context.Context) (ops.Result, error) {
	return s.replace(ctx, "reset", func(_ domain.Snapshot, now time.Time) (ops.Result, error) {
		return ops.Result{
			Snapshot: domain.NewSeed(now),
			Effects:  []domain.Effect{},
			Notices:  []string{"All data has been reset"},
		}, nil
	})
}

// Import replaces all data with the contents of a backup file. Nothing
// changes when the file is invalid.
func (s *Store) Import(ctx context.Context, data []byte) (ops.Result, error) {
	return s.replace(ctx, "import", func(_ domain.Snapshot, now time.Time) (ops.Result, error) {
		imported, err := importer.Import(data, now)
		if err != nil {
			return ops.Result{}, err
		}
		next, report := reconcile.Run(imported, now)
		notices := append([]string{"Data imported successfully"}, reconcileNotices(report)...)
		return ops.Result{
			Snapshot: next,
			Effects:  []domain.Effect{{Kind: domain.EffectGeneral}},
			Notices:  notices,
		}, nil
	})
}

// Backups lists the snapshots archived by Reset and Import, newest first.
func (s *Store) Backups(ctx context.Context, limit int) ([]repository.Backup, error) {
	return s.persist.Backups(ctx, limit)
}

// Export renders the current snapshot as a backup file and suggests a file
// name for it.
func (s *Store) Export() (data []byte, name string, err error) {
	snap, err := s.openSnapshot()
	if err != nil {
		return nil, "", err
	}
	now := s.now()
	data, err = importer.MarshalExport(snap, now)
	if err != nil {
		return nil, "", fmt.Errorf("exporting: %w", err)
	}
	return data, importer.ExportFileName(now), nil
}

// PullCloud replaces local data with the signed-in user's cloud snapshot,
// keeping local settings that are set. It reports false when there is
// nothing to pull.
func (s *Store) PullCloud(ctx context.Context) (found bool, err error) {
	started := time.Now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "pull-cloud", started, fields, err) }()

	local, err := s.openSnapshot()
	if err != nil {
		return false, err
	}
	now := s.now()
	remote, found, err := s.persist.LoadCloud(ctx, local, now)
	fields["found"] = found
	if err != nil || !found {
		return false, err
	}
	next, report := reconcile.Run(remote, now)

	s.mu.Lock()
	s.snap = next
	saveErr := s.persist.SaveLocal(ctx, next)
	s.publishLocked("pull-cloud", ops.Result{
		Snapshot: next,
		Effects:  []domain.Effect{},
		Notices:  append([]string{"Loaded data from the cloud"}, reconcileNotices(report)...),
	})
	if saveErr != nil {
		return true, fmt.Errorf("saving pulled snapshot: %w", saveErr)
	}
	return true, nil
}

// PushCloud saves the current snapshot to the cloud immediately.
func (s *Store) PushCloud(ctx context.Context) (err error) {
	started := time.Now()
	defer func() { s.observe(ctx, "push-cloud", started, map[string]any{}, err) }()

	snap, err := s.openSnapshot()
	if err != nil {
		return err
	}
	return s.persist.PushCloud(ctx, snap)
}

// WatchSessions pulls the cloud snapshot whenever a user signs in. The
// returned func stops watching.
func (s *Store) WatchSessions(n SessionNotifier) func() {
	return n.Subscribe(func(sess *auth.Session) {
		if sess == nil {
			return
		}
		if _, err := s.PullCloud(context.Background()); err != nil {
			s.logger.Warn("cloud pull after sign-in failed", "user", sess.UserID, "error", err)
		}
	})
}

// replace swaps the whole snapshot through the persister's archive-and-save
// transaction. The in-memory state only changes once that succeeds.
func (s *Store) replace(ctx context.Context, name string, build func(domain.Snapshot, time.Time) (ops.Result, error)) (res ops.Result, err error) {
	started := time.Now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, name, started, fields, err) }()

	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return ops.Result{}, ErrNotOpen
	}
	res, err = build(s.snap, s.now())
	if err != nil {
		s.mu.Unlock()
		return ops.Result{}, err
	}
	if err := s.persist.Replace(ctx, s.snap, res.Snapshot, name); err != nil {
		s.mu.Unlock()
		return ops.Result{}, fmt.Errorf("replacing data: %w", err)
	}
	s.snap = res.Snapshot
	s.persist.ScheduleCloudSave(s.snap)
	fields["categories"] = len(res.Snapshot.Categories)
	fields["tasks"] = len(res.Snapshot.Tasks)
	return s.publishLocked(name, res), nil
}

func (s *Store) openSnapshot() (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return domain.Snapshot{}, ErrNotOpen
	}
	return s.snap.Clone(), nil
}

// categoryLabel is the display name for a category id, falling back to the
// id itself for dangling references.
func categoryLabel(snap domain.Snapshot, id string) string {
	if c, ok := snap.Category(id); ok && strings.TrimSpace(c.Name) != "" {
		return c.Name
	}
	return id
}

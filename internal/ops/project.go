package ops

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/streakhq/internal/domain"
)

type ProjectInput struct {
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Category    string               `json:"category"`
	Status      domain.ProjectStatus `json:"status,omitempty"`
}

// AddProject creates an Active project unless another status is given.
func AddProject(s domain.Snapshot, in ProjectInput, now time.Time) (Result, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Result{}, ErrEmptyName
	}
	if _, ok := s.Category(in.Category); !ok {
		return Result{}, fmt.Errorf("project %q: %w", title, ErrCategoryNotFound)
	}
	status := in.Status
	if status == "" {
		status = domain.ProjectActive
	}
	if !validProjectStatus(status) {
		return Result{}, fmt.Errorf("%w: unknown status %q", ErrInvalidProjectInfo, status)
	}

	r := begin(s)
	r.Snapshot.Projects = append(r.Snapshot.Projects, domain.Project{
		ID:           newID(),
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		Category:     in.Category,
		Status:       status,
		CreatedAtISO: domain.Today(now),
		WorkDates:    []string{},
	})
	r.notice("Project %q created", title)
	return *r, nil
}

// SetProjectStatus moves a project between Active, On Hold and Completed.
func SetProjectStatus(s domain.Snapshot, id string, status domain.ProjectStatus) (Result, error) {
	i := s.ProjectIndex(id)
	if i < 0 {
		return Result{}, fmt.Errorf("updating project %q: %w", id, ErrProjectNotFound)
	}
	if !validProjectStatus(status) {
		return Result{}, fmt.Errorf("%w: unknown status %q", ErrInvalidProjectInfo, status)
	}
	r := begin(s)
	r.Snapshot.Projects[i].Status = status
	return *r, nil
}

// DeleteProject removes a project. Its tasks are kept and unlinked.
func DeleteProject(s domain.Snapshot, id string) (Result, error) {
	i := s.ProjectIndex(id)
	if i < 0 {
		return Result{}, fmt.Errorf("deleting project %q: %w", id, ErrProjectNotFound)
	}
	r := begin(s)
	out := &r.Snapshot
	title := out.Projects[i].Title
	out.Projects = append(out.Projects[:i], out.Projects[i+1:]...)
	for j := range out.Tasks {
		if out.Tasks[j].ProjectID == id {
			out.Tasks[j].ProjectID = ""
		}
	}
	r.notice("Project %q deleted", title)
	return *r, nil
}

func validProjectStatus(st domain.ProjectStatus) bool {
	switch st {
	case domain.ProjectActive, domain.ProjectCompleted, domain.ProjectOnHold:
		return true
	}
	return false
}

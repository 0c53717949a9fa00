package ops

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/streakhq/internal/domain"
)

// AddCategory creates a category whose id is its trimmed name.
func AddCategory(s domain.Snapshot, name string) (Result, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Result{}, ErrEmptyName
	}
	if _, exists := s.Category(name); exists {
		return Result{}, fmt.Errorf("adding %q: %w", name, ErrCategoryExists)
	}

	r := begin(s)
	out := &r.Snapshot
	out.Categories = append(out.Categories, domain.CategoryDef{
		ID:         name,
		Name:       name,
		Icon:       domain.NewCategoryIcon,
		ColorTheme: domain.ColorThemes[len(s.Categories)%len(domain.ColorThemes)],
	})
	if out.Shields == nil {
		out.Shields = map[string]int{}
	}
	out.Shields[name] = domain.InitialShields
	if out.Settings.DefaultMiniTasksByCategory == nil {
		out.Settings.DefaultMiniTasksByCategory = map[string][]string{}
	}
	out.Settings.DefaultMiniTasksByCategory[name] = []string{domain.NewCategoryMiniTask}
	r.notice("Category %q added", name)
	return *r, nil
}

// RenameCategory changes a category's id and rewrites every reference to it
// in one step.
func RenameCategory(s domain.Snapshot, oldID, newName string) (Result, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return Result{}, ErrEmptyName
	}
	if _, ok := s.Category(oldID); !ok {
		return Result{}, fmt.Errorf("renaming %q: %w", oldID, ErrCategoryNotFound)
	}
	if newName == oldID {
		return *begin(s), nil
	}
	if _, exists := s.Category(newName); exists {
		return Result{}, fmt.Errorf("renaming %q to %q: %w", oldID, newName, ErrCategoryExists)
	}

	r := begin(s)
	out := &r.Snapshot
	for i := range out.Categories {
		if out.Categories[i].ID == oldID {
			out.Categories[i].ID = newName
			out.Categories[i].Name = newName
		}
	}
	for i := range out.Tasks {
		if out.Tasks[i].Category == oldID {
			out.Tasks[i].Category = newName
		}
	}
	for i := range out.Projects {
		if out.Projects[i].Category == oldID {
			out.Projects[i].Category = newName
		}
	}
	for i := range out.Streaks {
		if out.Streaks[i].Category == oldID {
			out.Streaks[i].Category = newName
		}
	}
	if n, ok := out.Shields[oldID]; ok {
		delete(out.Shields, oldID)
		out.Shields[newName] = n
	}
	if mini, ok := out.Settings.DefaultMiniTasksByCategory[oldID]; ok {
		delete(out.Settings.DefaultMiniTasksByCategory, oldID)
		out.Settings.DefaultMiniTasksByCategory[newName] = mini
	}
	r.notice("Category renamed to %q", newName)
	return *r, nil
}

// DeleteCategory removes a category and everything filed under it: tasks,
// projects, check-ins, its shield counter and its mini-task list. Tasks of
// other categories that pointed at a removed project are unlinked.
func DeleteCategory(s domain.Snapshot, id string) (Result, error) {
	if _, ok := s.Category(id); !ok {
		return Result{}, fmt.Errorf("deleting %q: %w", id, ErrCategoryNotFound)
	}

	r := begin(s)
	out := &r.Snapshot

	removedProjects := map[string]bool{}
	projects := out.Projects[:0]
	for _, p := range out.Projects {
		if p.Category == id {
			removedProjects[p.ID] = true
			continue
		}
		projects = append(projects, p)
	}
	out.Projects = projects

	tasks := out.Tasks[:0]
	for _, t := range out.Tasks {
		if t.Category == id {
			continue
		}
		if removedProjects[t.ProjectID] {
			t.ProjectID = ""
		}
		tasks = append(tasks, t)
	}
	out.Tasks = tasks

	streaks := out.Streaks[:0]
	for _, c := range out.Streaks {
		if c.Category != id {
			streaks = append(streaks, c)
		}
	}
	out.Streaks = streaks

	categories := out.Categories[:0]
	for _, c := range out.Categories {
		if c.ID != id {
			categories = append(categories, c)
		}
	}
	out.Categories = categories

	delete(out.Shields, id)
	delete(out.Settings.DefaultMiniTasksByCategory, id)
	r.notice("Category %q deleted", id)
	return *r, nil
}

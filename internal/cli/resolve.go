package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/streakhq/internal/domain"
	"github.com/alexanderramin/streakhq/internal/ops"
)

// resolveCategory matches input against category ids: exact, then
// case-insensitive, then a unique case-insensitive prefix.
func resolveCategory(s domain.Snapshot, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", fmt.Errorf("category is required")
	}
	for _, c := range s.Categories {
		if c.ID == input {
			return c.ID, nil
		}
	}
	for _, c := range s.Categories {
		if strings.EqualFold(c.ID, input) {
			return c.ID, nil
		}
	}

	lower := strings.ToLower(input)
	var matches []string
	for _, c := range s.Categories {
		if strings.HasPrefix(strings.ToLower(c.ID), lower) {
			matches = append(matches, c.ID)
		}
	}
	return pickMatch("category", input, matches, ops.ErrCategoryNotFound)
}

func resolveTaskID(s domain.Snapshot, input string) (string, error) {
	ids := make([]string, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		ids = append(ids, t.ID)
	}
	return resolveID("task", input, ids, ops.ErrTaskNotFound)
}

func resolveProjectID(s domain.Snapshot, input string) (string, error) {
	ids := make([]string, 0, len(s.Projects))
	for _, p := range s.Projects {
		ids = append(ids, p.ID)
	}
	return resolveID("project", input, ids, ops.ErrProjectNotFound)
}

// resolveID accepts a full id or a unique prefix, as printed by list
// commands.
func resolveID(kind, input string, ids []string, notFound error) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	var matches []string
	for _, id := range ids {
		if id == input {
			return id, nil
		}
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	return pickMatch(kind+" ID", input, matches, notFound)
}

func pickMatch(kind, input string, matches []string, notFound error) (string, error) {
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%q: %w", input, notFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

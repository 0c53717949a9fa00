package importer

import (
	"fmt"
)

// listFields must be JSON arrays when present.
var listFields = []string{"streaks", "ledger", "categories", "projects"}

// ValidateExportFile checks a decoded backup document before import and
// returns every problem found. settings must be an object and tasks must be
// a list; everything else is optional.
func ValidateExportFile(doc map[string]any) []error {
	var errs []error

	switch v := doc["settings"].(type) {
	case nil:
		errs = append(errs, fmt.Errorf("settings is required"))
	case map[string]any:
	default:
		errs = append(errs, fmt.Errorf("settings: expected object, got %s", jsonKind(v)))
	}

	switch v := doc["tasks"].(type) {
	case nil:
		errs = append(errs, fmt.Errorf("tasks is required"))
	case []any:
		errs = append(errs, validateTasks(v)...)
	default:
		errs = append(errs, fmt.Errorf("tasks: expected list, got %s", jsonKind(v)))
	}

	for _, field := range listFields {
		v, ok := doc[field]
		if !ok || v == nil {
			continue
		}
		if _, ok := v.([]any); !ok {
			errs = append(errs, fmt.Errorf("%s: expected list, got %s", field, jsonKind(v)))
		}
	}

	if v, ok := doc["shields"]; ok && v != nil {
		if _, ok := v.(map[string]any); !ok {
			errs = append(errs, fmt.Errorf("shields: expected object, got %s", jsonKind(v)))
		}
	}

	if v, ok := doc["version"]; ok && v != nil {
		n, isNum := v.(float64)
		switch {
		case !isNum:
			errs = append(errs, fmt.Errorf("version: expected number, got %s", jsonKind(v)))
		case int(n) > ExportVersion:
			errs = append(errs, fmt.Errorf("version %d is newer than supported version %d", int(n), ExportVersion))
		}
	}

	return errs
}

func validateTasks(tasks []any) []error {
	var errs []error
	for i, item := range tasks {
		t, ok := item.(map[string]any)
		if !ok {
			errs = append(errs, fmt.Errorf("tasks[%d]: expected object, got %s", i, jsonKind(item)))
			continue
		}
		if title, _ := t["title"].(string); title == "" {
			errs = append(errs, fmt.Errorf("tasks[%d].title is required", i))
		}
	}
	return errs
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

// Package migrate upgrades persisted snapshots of any historical shape to the
// current schema.
package migrate

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/streakhq/internal/domain"
)

// ErrNotObject is returned when the document is valid JSON but not an object.
var ErrNotObject = errors.New("snapshot document is not a JSON object")

// legacyMiniTaskMarkers identifies the single-string mini-task prompts that
// older versions stored. A match is replaced by the category's current list.
var legacyMiniTaskMarkers = map[string]string{
	"Ophthalmology":     "Read 1 page OR",
	"Research":          "Write 1 sentence OR",
	"Physics":           "Review 1 formula +",
	"Clinic & Business": "Add 1 clinic idea",
	"Finance":           "Check balance/portfolio +",
	"Admin":             "Send 1 message/email OR",
	"Health":            "2 min mobility OR",
	"Family & Baby":     "5 mins present",
	"Languages":         "5 min Lingoda/",
	"Household & Home":  "10-min reset",
}

type document = map[string]any

type rule func(doc document, seed domain.Snapshot)

// rules run in order; later rules may rely on fields earlier ones filled in.
var rules = []rule{
	ensureCategories,
	ensureProjects,
	ensureShields,
	ensureScalars,
	upgradeTasks,
	coerceNumbers,
	upgradeMiniTasks,
	mergeSettings,
	ensureLists,
}

// Migrate decodes raw and brings it to the current schema. Missing fields are
// filled from a fresh seed built for now. An error means raw could not be
// decoded at all and the caller should fall back to another source.
func Migrate(raw []byte, now time.Time) (domain.Snapshot, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	if doc == nil {
		return domain.Snapshot{}, ErrNotObject
	}
	return MigrateDocument(doc, now)
}

// MigrateDocument is Migrate over an already decoded document. doc is
// modified in place.
func MigrateDocument(doc map[string]any, now time.Time) (domain.Snapshot, error) {
	seed := domain.NewSeed(now)
	for _, r := range rules {
		r(doc, seed)
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("encoding migrated snapshot: %w", err)
	}
	var s domain.Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decoding migrated snapshot: %w", err)
	}
	return Normalize(s, now), nil
}

func ensureCategories(doc document, seed domain.Snapshot) {
	if list, ok := doc["categories"].([]any); ok && len(list) > 0 {
		return
	}
	doc["categories"] = toJSONValue(seed.Categories)
}

func ensureProjects(doc document, _ domain.Snapshot) {
	list, ok := doc["projects"].([]any)
	if !ok {
		doc["projects"] = []any{}
		return
	}
	for _, item := range list {
		p, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := p["workDates"].([]any); !ok {
			p["workDates"] = []any{}
		}
	}
}

func ensureShields(doc document, _ domain.Snapshot) {
	if _, ok := doc["shields"].(map[string]any); ok {
		return
	}
	shields := map[string]any{}
	for _, id := range categoryIDs(doc) {
		shields[id] = domain.InitialShields
	}
	doc["shields"] = shields
}

func ensureScalars(doc document, seed domain.Snapshot) {
	setDefault(doc, "lastShieldRefill", seed.LastShieldRefill)
	setDefault(doc, "lastVisitDate", seed.LastVisitDate)
	setDefault(doc, "totalXp", 0)
	setDefault(doc, "pendingXp", 0)
}

func upgradeTasks(doc document, _ domain.Snapshot) {
	list, ok := doc["tasks"].([]any)
	if !ok {
		return
	}
	for _, item := range list {
		t, ok := item.(map[string]any)
		if !ok {
			continue
		}
		freq, _ := t["repeatFrequency"].(string)
		if repeatable, _ := t["repeatable"].(bool); repeatable && freq == "" {
			t["repeatFrequency"] = string(domain.RepeatDaily)
		}
		delete(t, "repeatable")
		setDefault(t, "status", string(domain.TaskBacklog))
		setDefault(t, "streak", 0)
	}
}

func upgradeMiniTasks(doc document, _ domain.Snapshot) {
	settings, ok := doc["settings"].(map[string]any)
	if !ok {
		return
	}
	mini, ok := settings["defaultMiniTasksByCategory"].(map[string]any)
	if !ok {
		return
	}
	for id, v := range mini {
		str, ok := v.(string)
		if !ok {
			continue
		}
		if marker, legacy := legacyMiniTaskMarkers[id]; legacy && strings.Contains(str, marker) {
			mini[id] = toJSONValue(domain.DefaultMiniTasks[id])
			continue
		}
		mini[id] = []any{str}
	}
}

func mergeSettings(doc document, seed domain.Snapshot) {
	merged, _ := toJSONValue(seed.Settings).(map[string]any)
	if persisted, ok := doc["settings"].(map[string]any); ok {
		for k, v := range persisted {
			merged[k] = v
		}
	}
	doc["settings"] = merged
}

// coerceNumbers repairs integer fields that were written as fractions or
// strings, so one bad value does not make the whole snapshot undecodable.
func coerceNumbers(doc document, _ domain.Snapshot) {
	coerceInt(doc, "totalXp")
	coerceInt(doc, "pendingXp")
	if shields, ok := doc["shields"].(map[string]any); ok {
		for id := range shields {
			coerceInt(shields, id)
		}
	}
	if settings, ok := doc["settings"].(map[string]any); ok {
		coerceInt(settings, "spendGateThreshold")
	}
	list, _ := doc["tasks"].([]any)
	for _, item := range list {
		t, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for _, key := range []string{"durationMinutes", "xp", "streak"} {
			coerceInt(t, key)
		}
	}
}

// coerceInt rounds m[key] to a whole number. Values that cannot be read as
// a number are dropped, so a later default or zero takes their place.
func coerceInt(m map[string]any, key string) {
	var f float64
	switch v := m[key].(type) {
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			delete(m, key)
			return
		}
		f = parsed
	case bool, map[string]any, []any:
		delete(m, key)
		return
	default:
		return
	}
	f = math.Round(f)
	if math.IsNaN(f) || f > math.MaxInt32 || f < math.MinInt32 {
		delete(m, key)
		return
	}
	m[key] = f
}

func ensureLists(doc document, _ domain.Snapshot) {
	for _, key := range []string{"streaks", "tasks", "ledger"} {
		if _, ok := doc[key].([]any); !ok {
			doc[key] = []any{}
		}
	}
}

func setDefault(m map[string]any, key string, v any) {
	if cur, ok := m[key]; !ok || cur == nil {
		m[key] = v
	}
}

func categoryIDs(doc document) []string {
	list, _ := doc["categories"].([]any)
	ids := make([]string, 0, len(list))
	for _, item := range list {
		c, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := c["id"].(string); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// toJSONValue converts a typed value to its generic JSON form so it can sit
// inside a decoded document.
func toJSONValue(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}

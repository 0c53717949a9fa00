package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/streakhq/internal/domain"
)

// ExportVersion is written to every export and is the newest version Import
// accepts.
const ExportVersion = 1

// ExportFile is the top-level JSON structure of a backup file. Projects,
// shields and XP totals are optional on import; older exports lack them.
type ExportFile struct {
	Settings   domain.Settings            `json:"settings"`
	Streaks    []domain.StreakCheckIn     `json:"streaks"`
	Tasks      []domain.XpTask            `json:"tasks"`
	Ledger     []domain.RewardLedgerEntry `json:"ledger"`
	Categories []domain.CategoryDef       `json:"categories"`
	Projects   []domain.Project           `json:"projects,omitempty"`
	Shields    map[string]int             `json:"shields,omitempty"`
	TotalXP    int                        `json:"totalXp,omitempty"`
	PendingXP  int                        `json:"pendingXp,omitempty"`
	ExportDate string                     `json:"exportDate"`
	Version    int                        `json:"version"`
}

// Export builds the backup document for s.
func Export(s domain.Snapshot, now time.Time) ExportFile {
	s = s.Clone()
	return ExportFile{
		Settings:   s.Settings,
		Streaks:    s.Streaks,
		Tasks:      s.Tasks,
		Ledger:     s.Ledger,
		Categories: s.Categories,
		Projects:   s.Projects,
		Shields:    s.Shields,
		TotalXP:    s.TotalXP,
		PendingXP:  s.PendingXP,
		ExportDate: now.UTC().Format(time.RFC3339),
		Version:    ExportVersion,
	}
}

// MarshalExport renders the backup document with two-space indentation.
func MarshalExport(s domain.Snapshot, now time.Time) ([]byte, error) {
	data, err := json.MarshalIndent(Export(s, now), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return data, nil
}

// ExportFileName is the suggested file name for a backup taken at now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("streakhq-backup-%s.json", domain.Today(now))
}

// LoadExportFile reads a backup file and returns it as an undecoded
// document for ValidateExportFile and Import.
func LoadExportFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	return data, nil
}

package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/streakhq/internal/domain"
	"github.com/alexanderramin/streakhq/internal/migrate"
)

// ErrInvalidFormat is returned when data is not a usable backup file.
var ErrInvalidFormat = errors.New("invalid JSON file format")

// Import decodes and validates a backup file and returns the snapshot it
// describes, upgraded to the current schema. Validation failures are joined
// under ErrInvalidFormat.
func Import(data []byte, now time.Time) (domain.Snapshot, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if doc == nil {
		return domain.Snapshot{}, fmt.Errorf("%w: not a JSON object", ErrInvalidFormat)
	}
	if errs := ValidateExportFile(doc); len(errs) > 0 {
		return domain.Snapshot{}, errors.Join(append([]error{ErrInvalidFormat}, errs...)...)
	}

	delete(doc, "exportDate")
	delete(doc, "version")
	s, err := migrate.MigrateDocument(doc, now)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return s, nil
}

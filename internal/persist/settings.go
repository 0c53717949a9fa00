package persist

import (
	"encoding/json"

	"github.com/alexanderramin/streakhq/internal/domain"
)

// MergeSettings overlays local onto cloud key by key. A local key wins unless
// it is blank (empty string, empty map or list), in which case the cloud
// value is kept.
func MergeSettings(local, cloud domain.Settings) domain.Settings {
	cloudMap, err := toMap(cloud)
	if err != nil {
		return local
	}
	localMap, err := toMap(local)
	if err != nil {
		return cloud
	}
	for k, v := range localMap {
		if blank(v) {
			continue
		}
		cloudMap[k] = v
	}

	b, err := json.Marshal(cloudMap)
	if err != nil {
		return local
	}
	var merged domain.Settings
	if err := json.Unmarshal(b, &merged); err != nil {
		return local
	}
	return merged
}

func toMap(s domain.Settings) (map[string]any, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func blank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case map[string]any:
		return len(x) == 0
	case []any:
		return len(x) == 0
	}
	return false
}

package convert

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"flowercoco/types"
)

// LoadLabelMap reads a labelmap.json file
func LoadLabelMap(path string) ([]types.LabelMapEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read labelmap %s: %v", path, err)
	}

	var entries []types.LabelMapEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("cannot parse labelmap %s: %v", path, err)
	}

	return entries, nil
}

// ObjectNames returns the non-background object names in ascending
// object id order. Object id 0 is the background class and excluded.
func ObjectNames(entries []types.LabelMapEntry) []string {
	sorted := append([]types.LabelMapEntry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ObjectID < sorted[j].ObjectID
	})

	var names []string
	for _, entry := range sorted {
		if entry.ObjectID == 0 {
			continue
		}
		names = append(names, entry.ObjectName)
	}

	return names
}

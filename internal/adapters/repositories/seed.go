package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type NodeSeed struct {
	NodeID int64   `json:"node_id"`
	Lon    float64 `json:"lon"`
	Lat    float64 `json:"lat"`
}

type WaySeed struct {
	WayID int64      `json:"way_id"`
	Name  string     `json:"name"`
	Nodes []NodeSeed `json:"nodes"`
}

// Read and validate way seeds from a JSON file.
func LoadSeeds(jsonPath string) ([]WaySeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed ways: read %q: %w", jsonPath, err)
	}

	var data []WaySeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed ways: parse json: %w", err)
	}

	rows := make([]WaySeed, 0, len(data))
	for i, item := range data {
		if item.WayID <= 0 {
			return nil, fmt.Errorf("seed ways: invalid way_id at index %d: %d", i+1, item.WayID)
		}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("seed ways: item name at index %d: name cannot be empty", i+1)
		}
		rows = append(rows, WaySeed{WayID: item.WayID, Name: name, Nodes: item.Nodes})
	}

	return rows, nil
}

package models

// GridCell is the rendering view of one spatial grid cell
type GridCell struct {
	// Grid identification
	GridID string `json:"grid_id"` // Format: "{lat}_{lng}"
	X      int    `json:"x"`       // longitude index
	Y      int    `json:"y"`       // latitude index

	// Bounding box
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`

	Center   Position `json:"center"`
	Centroid Position `json:"centroid"` // mean position of the entries inside
	AreaM2   float64  `json:"area_m2"`  // surface area of the bounding box

	// Progress
	Count     int      `json:"count"`
	Completed bool     `json:"completed"`
	Tier      string   `json:"tier"`     // full, near_complete, in_progress, started
	Progress  float64  `json:"progress"` // percent of the completion threshold, capped at 100
	EntryIDs  []string `json:"entry_ids,omitempty"`
}

package grid

// Default tuning values
const (
	DefaultCellSizeMeters      = 1000.0
	DefaultCompletionThreshold = 20
	DefaultPointsPerCell       = 100
	DefaultMinSpacingDegrees   = 0.00003 // about 3.3 m at the equator
	DefaultPlacementAttempts   = 8
	DefaultTopCells            = 5
)

// Badge is a milestone on the completed-cell ladder
type Badge struct {
	Key       string `json:"key" toml:"key"`
	Name      string `json:"name" toml:"name"`
	Icon      string `json:"icon" toml:"icon"`
	Threshold int    `json:"threshold" toml:"threshold"` // completed cells needed
	Points    int    `json:"points" toml:"points"`
}

// DefaultBadges is the stock ladder, lowest threshold first
var DefaultBadges = []Badge{
	{Key: "explorer", Name: "Urban Explorer", Icon: "🗺️", Threshold: 5, Points: 500},
	{Key: "adventurer", Name: "Adventurer", Icon: "🎒", Threshold: 10, Points: 1000},
	{Key: "conqueror", Name: "City Conqueror", Icon: "👑", Threshold: 20, Points: 2000},
	{Key: "nomad", Name: "Nomad", Icon: "🌍", Threshold: 50, Points: 5000},
}

// Config tunes the grid engine
type Config struct {
	CellSizeMeters      float64 `toml:"cell_size_meters"`
	CompletionThreshold int     `toml:"completion_threshold"`
	PointsPerCell       int     `toml:"points_per_cell"`
	MinSpacingDegrees   float64 `toml:"min_spacing_degrees"`
	PlacementAttempts   int     `toml:"placement_attempts"`
	Badges              []Badge `toml:"badges"`
}

// DefaultConfig returns the stock configuration
func DefaultConfig() Config {
	badges := make([]Badge, len(DefaultBadges))
	copy(badges, DefaultBadges)
	return Config{
		CellSizeMeters:      DefaultCellSizeMeters,
		CompletionThreshold: DefaultCompletionThreshold,
		PointsPerCell:       DefaultPointsPerCell,
		MinSpacingDegrees:   DefaultMinSpacingDegrees,
		PlacementAttempts:   DefaultPlacementAttempts,
		Badges:              badges,
	}
}

// withDefaults fills zero fields from DefaultConfig
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.CellSizeMeters <= 0 {
		c.CellSizeMeters = d.CellSizeMeters
	}
	if c.CompletionThreshold <= 0 {
		c.CompletionThreshold = d.CompletionThreshold
	}
	if c.PointsPerCell <= 0 {
		c.PointsPerCell = d.PointsPerCell
	}
	if c.MinSpacingDegrees <= 0 {
		c.MinSpacingDegrees = d.MinSpacingDegrees
	}
	if c.PlacementAttempts <= 0 {
		c.PlacementAttempts = d.PlacementAttempts
	}
	if len(c.Badges) == 0 {
		c.Badges = d.Badges
	}
	return c
}

// Package grid turns positioned entries into a uniform spatial grid and
// derives the exploration progress (completed cells, points, badges) from it.
//
// Every query recomputes from the entry slice it is given; the engine keeps
// no state besides its configuration.
package grid

import (
	"math"
	"sort"

	"github.com/jengzang/pawtrack-backend-go/internal/models"
	"github.com/jengzang/pawtrack-backend-go/internal/spatial"
)

// Cell holds the entries that fall inside one grid cell
type Cell struct {
	ID        spatial.CellID
	Count     int
	Completed bool
	EntryIDs  []string
	Positions []models.Position
}

// Grid maps cell ids to their buckets. Cells with no entries are absent.
type Grid map[spatial.CellID]*Cell

// CompletedCount returns the number of completed cells
func (g Grid) CompletedCount() int {
	n := 0
	for _, c := range g {
		if c.Completed {
			n++
		}
	}
	return n
}

// Engine computes grids and progress under a fixed configuration
type Engine struct {
	cfg    Config
	grid   spatial.Grid
	badges []Badge // ascending threshold
}

// NewEngine creates an engine. Zero config fields take their defaults.
func NewEngine(cfg Config) *Engine {
	cfg = cfg.withDefaults()

	badges := make([]Badge, len(cfg.Badges))
	copy(badges, cfg.Badges)
	sort.SliceStable(badges, func(i, j int) bool {
		return badges[i].Threshold < badges[j].Threshold
	})

	return &Engine{
		cfg:    cfg,
		grid:   spatial.NewGrid(cfg.CellSizeMeters),
		badges: badges,
	}
}

// Config returns the effective configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// CellFor returns the cell containing the coordinate. Out-of-range or
// non-finite input fails with models.ErrInvalidCoordinate.
func (e *Engine) CellFor(lat, lng float64) (spatial.CellID, error) {
	return e.grid.CellFor(lat, lng)
}

// Bounds returns the box covered by a cell
func (e *Engine) Bounds(id spatial.CellID) spatial.Bounds {
	return e.grid.Bounds(id)
}

// Center returns the midpoint of a cell
func (e *Engine) Center(id spatial.CellID) models.Position {
	return e.grid.Center(id)
}

// Compute buckets every positioned entry into its cell. Manual entries are
// skipped: they never count toward spatial progress.
func (e *Engine) Compute(entries []models.Entry) Grid {
	g := make(Grid)
	for _, entry := range entries {
		if !entry.HasPosition() {
			continue
		}
		id, err := e.grid.CellFor(entry.Position.Lat, entry.Position.Lng)
		if err != nil {
			// validated entries never get here
			continue
		}

		cell, ok := g[id]
		if !ok {
			cell = &Cell{ID: id}
			g[id] = cell
		}
		cell.Count++
		cell.EntryIDs = append(cell.EntryIDs, entry.ID)
		cell.Positions = append(cell.Positions, *entry.Position)
		if cell.Count >= e.cfg.CompletionThreshold {
			cell.Completed = true
		}
	}
	return g
}

// TotalPoints sums the per-cell reward over completed cells
func (e *Engine) TotalPoints(g Grid) int {
	return g.CompletedCount() * e.cfg.PointsPerCell
}

// Progress returns how far a count is toward completion, as a percentage capped at 100
func (e *Engine) Progress(count int) float64 {
	return math.Min(100, float64(count)/float64(e.cfg.CompletionThreshold)*100)
}

// View converts a cell into its rendering form
func (e *Engine) View(c *Cell, withEntries bool) models.GridCell {
	b := e.grid.Bounds(c.ID)
	view := models.GridCell{
		GridID:    c.ID.String(),
		X:         c.ID.Lng,
		Y:         c.ID.Lat,
		MinLat:    b.South,
		MaxLat:    b.North,
		MinLon:    b.West,
		MaxLon:    b.East,
		Center:    b.Center(),
		Centroid:  spatial.Centroid(c.Positions),
		AreaM2:    b.AreaSquareMeters(),
		Count:     c.Count,
		Completed: c.Completed,
		Tier:      string(e.Tier(c.Count)),
		Progress:  e.Progress(c.Count),
	}
	if withEntries {
		view.EntryIDs = append([]string(nil), c.EntryIDs...)
	}
	return view
}

// Cells lists every cell, busiest first; ties are ordered by id
func (e *Engine) Cells(g Grid, withEntries bool) []models.GridCell {
	cells := sortedCells(g)
	views := make([]models.GridCell, 0, len(cells))
	for _, c := range cells {
		views = append(views, e.View(c, withEntries))
	}
	return views
}

func sortedCells(g Grid) []*Cell {
	cells := make([]*Cell, 0, len(g))
	for _, c := range g {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Count != cells[j].Count {
			return cells[i].Count > cells[j].Count
		}
		if cells[i].ID.Lat != cells[j].ID.Lat {
			return cells[i].ID.Lat < cells[j].ID.Lat
		}
		return cells[i].ID.Lng < cells[j].ID.Lng
	})
	return cells
}

// Achievements is the full exploration summary
type Achievements struct {
	TotalPoints    int               `json:"total_points"`
	TotalCells     int               `json:"total_cells"`
	CompletedCells int               `json:"completed_cells"`
	CompletionRate int               `json:"completion_rate"` // percent, rounded
	Badges         []Badge           `json:"badges"` // the whole ladder
	UnlockedBadges []Badge           `json:"unlocked_badges"`
	NextBadge      *BadgeProgress    `json:"next_badge"`
	TopCells       []models.GridCell `json:"top_cells"`

	// Extent covers every positioned entry; nil before the first one
	Extent *spatial.Bounds `json:"extent,omitempty"`
}

// Summary computes the grid and every derived progress figure in one pass
func (e *Engine) Summary(entries []models.Entry) Achievements {
	g := e.Compute(entries)
	completed := g.CompletedCount()

	a := Achievements{
		TotalPoints:    e.TotalPoints(g),
		TotalCells:     len(g),
		CompletedCells: completed,
		Badges:         e.Badges(),
		UnlockedBadges: e.UnlockedBadges(completed),
		TopCells:       []models.GridCell{},
	}
	if len(g) > 0 {
		a.CompletionRate = int(math.Round(float64(completed) / float64(len(g)) * 100))
	}
	if next, ok := e.NextBadge(completed); ok {
		a.NextBadge = &next
	}

	var positions []models.Position
	for i, c := range sortedCells(g) {
		if i < DefaultTopCells {
			a.TopCells = append(a.TopCells, e.View(c, false))
		}
		positions = append(positions, c.Positions...)
	}
	if extent, ok := spatial.Extent(positions); ok {
		a.Extent = &extent
	}
	return a
}

package services

import (
	"fmt"
	"strings"

	"github.com/jordisipkens/spiral-race/models"
)

// TileState is what the board view renders for one tile.
type TileState string

const (
	TileLocked    TileState = "locked"
	TileActive    TileState = "active"
	TileCompleted TileState = "completed"
)

// BoardProgress is the derived unlock state of one board for one team.
// Paths holds the highest fully-completed ring per path (0 = nothing done).
type BoardProgress struct {
	Paths           [models.NumPaths]int `json:"paths"`
	CenterCompleted bool                 `json:"center_completed"`
}

// DeriveProgress rebuilds per-board state from scratch out of the progress
// rows. Each row must carry its Tile. The derivation is a pure fold: it can
// be re-run at any time and never trusts previously computed state.
func DeriveProgress(records []models.Progress) map[models.BoardType]*BoardProgress {
	result := make(map[models.BoardType]*BoardProgress, len(models.Boards))
	for _, board := range models.Boards {
		result[board] = &BoardProgress{}
	}

	for _, rec := range records {
		tile := rec.Tile
		if tile == nil {
			continue
		}
		bp, ok := result[tile.Board]
		if !ok {
			continue
		}
		if tile.IsCenter {
			bp.CenterCompleted = true
			continue
		}
		if tile.Path < 0 || tile.Path >= models.NumPaths {
			continue
		}
		if tile.Ring > bp.Paths[tile.Path] {
			bp.Paths[tile.Path] = tile.Ring
		}
	}

	return result
}

// ActiveRing is the lowest ring any path still has open, plus one. A ring
// only opens for the next one once all three paths have cleared it, so a
// path that runs ahead waits on its siblings. Returns NumRings+1 when the
// whole board is cleared.
func (bp *BoardProgress) ActiveRing() int {
	minRing := bp.Paths[0]
	for _, r := range bp.Paths[1:] {
		if r < minRing {
			minRing = r
		}
	}
	return minRing + 1
}

// AllPathsCleared reports whether every path has finished every ring,
// which is the unlock condition for the center tile.
func (bp *BoardProgress) AllPathsCleared() bool {
	for _, r := range bp.Paths {
		if r < models.NumRings {
			return false
		}
	}
	return true
}

// TileState classifies a tile under the ring-gated model.
func (bp *BoardProgress) TileState(tile models.Tile) TileState {
	if tile.IsCenter {
		if bp.CenterCompleted {
			return TileCompleted
		}
		if bp.AllPathsCleared() {
			return TileActive
		}
		return TileLocked
	}

	if tile.Ring <= bp.Paths[tile.Path] {
		return TileCompleted
	}
	if tile.Ring == bp.ActiveRing() {
		return TileActive
	}
	return TileLocked
}

// RequiredCount is the number of approved submissions that satisfies a
// tile: its configured count for multi-item tiles, otherwise one.
func RequiredCount(tile models.Tile) int {
	if tile.IsMultiItem && tile.RequiredSubmissions > 1 {
		return tile.RequiredSubmissions
	}
	return 1
}

// TotalPoints sums the points of every completed tile across all boards:
// each path contributes the tiles of rings 1..Paths[path], plus the center
// tile once completed.
func TotalPoints(tiles []models.Tile, progress map[models.BoardType]*BoardProgress) int {
	type key struct {
		board models.BoardType
		ring  int
		path  int
	}
	regular := make(map[key]int, len(tiles))
	center := make(map[models.BoardType]int, len(models.Boards))
	for _, t := range tiles {
		if t.IsCenter {
			center[t.Board] = t.Points
		} else {
			regular[key{t.Board, t.Ring, t.Path}] = t.Points
		}
	}

	total := 0
	for board, bp := range progress {
		for path, completedRing := range bp.Paths {
			for ring := 1; ring <= completedRing; ring++ {
				total += regular[key{board, ring, path}]
			}
		}
		if bp.CenterCompleted {
			total += center[board]
		}
	}
	return total
}

// Default point values per board tier (the ring scheme the tile generator
// has always written).
func defaultTilePoints(board models.BoardType) int {
	switch board {
	case models.BoardEasy:
		return 10
	case models.BoardMedium:
		return 25
	default:
		return 50
	}
}

func defaultCenterPoints(board models.BoardType) int {
	switch board {
	case models.BoardEasy:
		return 100
	case models.BoardMedium:
		return 200
	default:
		return 500
	}
}

func boardTitle(board models.BoardType) string {
	s := string(board)
	return strings.ToUpper(s[:1]) + s[1:]
}

// GenerateMissingTiles returns the tiles a board is still missing: every
// (ring, path) slot without a regular tile, and the center if absent.
// Existing tiles are never touched, so re-running generation is a no-op on
// a full board.
func GenerateMissingTiles(board models.BoardType, existing []models.Tile) []models.Tile {
	type slot struct {
		ring int
		path int
	}
	taken := make(map[slot]bool, len(existing))
	hasCenter := false
	for _, t := range existing {
		if t.Board != board {
			continue
		}
		if t.IsCenter {
			hasCenter = true
		} else {
			taken[slot{t.Ring, t.Path}] = true
		}
	}

	var missing []models.Tile
	for ring := 1; ring <= models.NumRings; ring++ {
		for path := 0; path < models.NumPaths; path++ {
			if taken[slot{ring, path}] {
				continue
			}
			missing = append(missing, models.Tile{
				Board:               board,
				Ring:                ring,
				Path:                path,
				Title:               fmt.Sprintf("%s R%dP%d", boardTitle(board), ring, path+1),
				Points:              defaultTilePoints(board),
				RequiredSubmissions: 1,
			})
		}
	}

	if !hasCenter {
		missing = append(missing, models.Tile{
			Board:               board,
			Ring:                1,
			Path:                0,
			IsCenter:            true,
			Title:               fmt.Sprintf("%s Center", boardTitle(board)),
			Description:         "Complete all tiles to unlock this!",
			Points:              defaultCenterPoints(board),
			RequiredSubmissions: 1,
		})
	}

	return missing
}

// Package view derives the denormalized projections the client renders: the
// all-boards grid and the sidebar's navigation destinations. Projections are
// recomputed eagerly after every mutation rather than maintained
// incrementally.
package view

import "trolli/internal/model"

// BoardSummary is one tile of the all-boards grid.
type BoardSummary struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ListCount int    `json:"list_count"`
	ItemCount int    `json:"item_count"`
}

// Destination is one entry of the sidebar's board rail. Index is the position
// used by the board-view route.
type Destination struct {
	Index   int    `json:"index"`
	BoardID int    `json:"board_id"`
	Label   string `json:"label"`
}

// Summaries projects the all-boards grid from the user's boards, in board
// order.
func Summaries(boards []model.Board) []BoardSummary {
	out := make([]BoardSummary, len(boards))
	for i, b := range boards {
		items := 0
		for _, l := range b.Lists {
			items += len(l.Items)
		}
		out[i] = BoardSummary{
			ID:        b.ID,
			Name:      b.Name,
			ListCount: len(b.Lists),
			ItemCount: items,
		}
	}
	return out
}

// Destinations projects the sidebar rail entries, one per board.
func Destinations(boards []model.Board) []Destination {
	out := make([]Destination, len(boards))
	for i, b := range boards {
		out[i] = Destination{Index: i, BoardID: b.ID, Label: b.Name}
	}
	return out
}

// Refresh bundles both projections; it is what mutation handlers broadcast so
// connected clients can rehydrate the grid and the rail in one message.
type Refresh struct {
	Summaries    []BoardSummary `json:"summaries"`
	Destinations []Destination  `json:"destinations"`
}

func NewRefresh(boards []model.Board) Refresh {
	return Refresh{
		Summaries:    Summaries(boards),
		Destinations: Destinations(boards),
	}
}

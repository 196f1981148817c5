package handler

import (
	"context"
	"log"

	"trolli/internal/store"
	"trolli/internal/view"
	"trolli/internal/ws"
)

// Refresher is the view-synchronization trigger: every mutation handler calls
// it after persisting, and it pushes the recomputed board projections to the
// user's connected sessions.
type Refresher struct {
	store *store.Store
	hub   *ws.Hub
}

func NewRefresher(st *store.Store, hub *ws.Hub) *Refresher {
	return &Refresher{store: st, hub: hub}
}

// BoardsChanged recomputes the all-boards and sidebar projections and
// broadcasts them. Failures are logged, never surfaced: the mutation itself
// already succeeded.
func (r *Refresher) BoardsChanged(ctx context.Context, username string) {
	if r == nil || r.hub == nil {
		return
	}
	boards, err := r.store.GetBoards(ctx, username)
	if err != nil {
		log.Printf("refresh projections for %s: %v", username, err)
		return
	}
	r.hub.Notify(username, ws.Event{Type: "views/refresh", Data: view.NewRefresh(boards)})
}

package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trolli/internal/board"
	"trolli/internal/model"
	"trolli/internal/store"
)

func openTestStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := store.Open(path)
	require.NoError(t, err)
	return s, path
}

func seedUser(t *testing.T, s *store.Store, name string) {
	t.Helper()
	require.NoError(t, s.AddUser(context.Background(), name, "secret"))
}

func TestOpen_MissingFileStartsEmpty(t *testing.T) {
	s, _ := openTestStore(t)

	assert.Empty(t, s.GetUsers(context.Background()))
}

func TestOpen_RejectsMalformedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users": [{"name": "eva"}]}`), 0o644))

	_, err := store.Open(path)

	assert.Error(t, err)
}

func TestAddUser(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	err := s.AddUser(ctx, "eva", "secret")

	assert.NoError(t, err)
	u, err := s.GetUser(ctx, "eva")
	assert.NoError(t, err)
	assert.Equal(t, "eva", u.Name)
	assert.Equal(t, "secret", u.Password)
	assert.Empty(t, u.Boards)
}

func TestAddUser_Duplicate(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "eva")

	err := s.AddUser(ctx, "eva", "other")

	assert.ErrorIs(t, err, store.ErrUserExists)
}

func TestAddUser_EmptyName(t *testing.T) {
	s, _ := openTestStore(t)

	err := s.AddUser(context.Background(), "   ", "secret")

	assert.ErrorIs(t, err, store.ErrEmptyName)
}

func TestAddUser_EmptyPassword(t *testing.T) {
	s, _ := openTestStore(t)

	err := s.AddUser(context.Background(), "eva", "")

	assert.ErrorIs(t, err, store.ErrEmptyPassword)
}

func TestRemoveUser(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "eva")

	err := s.RemoveUser(ctx, "eva")

	assert.NoError(t, err)
	_, err = s.GetUser(ctx, "eva")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestRemoveUser_AdminIsProtected(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	seedUser(t, s, model.AdminName)

	err := s.RemoveUser(ctx, model.AdminName)

	assert.ErrorIs(t, err, store.ErrAdminProtected)
	_, err = s.GetUser(ctx, model.AdminName)
	assert.NoError(t, err)
}

func TestAddBoard_AssignsSequentialIDs(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "eva")

	first, err := s.AddBoard(ctx, "eva", "Alpha")
	require.NoError(t, err)
	second, err := s.AddBoard(ctx, "eva", "Beta")
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
}

func TestAddBoard_ReusesGapAfterRemoval(t *testing.T) {
	// ids follow max+1, so removing the highest board frees its id
	s, _ := openTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "eva")
	_, err := s.AddBoard(ctx, "eva", "Alpha")
	require.NoError(t, err)
	b, err := s.AddBoard(ctx, "eva", "Beta")
	require.NoError(t, err)
	require.NoError(t, s.RemoveBoard(ctx, "eva", b.ID))

	next, err := s.AddBoard(ctx, "eva", "Gamma")

	assert.NoError(t, err)
	assert.Equal(t, 2, next.ID)
}

func TestAddBoard_UnknownUser(t *testing.T) {
	s, _ := openTestStore(t)

	_, err := s.AddBoard(context.Background(), "ghost", "Alpha")

	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestGetBoardByIndex(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "eva")
	_, err := s.AddBoard(ctx, "eva", "Alpha")
	require.NoError(t, err)
	_, err = s.AddBoard(ctx, "eva", "Beta")
	require.NoError(t, err)

	b, err := s.GetBoardByIndex(ctx, "eva", 1)

	assert.NoError(t, err)
	assert.Equal(t, "Beta", b.Name)

	_, err = s.GetBoardByIndex(ctx, "eva", 2)
	assert.ErrorIs(t, err, store.ErrBoardNotFound)
}

func TestRemoveBoard_CascadesListsAndItems(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "eva")
	b, err := s.AddBoard(ctx, "eva", "Alpha")
	require.NoError(t, err)
	l, err := s.AddList(ctx, "eva", b.ID, "To Do", "BLUE")
	require.NoError(t, err)
	item, err := model.NewItem("task", model.PriorityLow, "", nil, false)
	require.NoError(t, err)
	_, err = s.AddItem(ctx, "eva", b.ID, l.ID, item)
	require.NoError(t, err)

	err = s.RemoveBoard(ctx, "eva", b.ID)

	assert.NoError(t, err)
	boards, err := s.GetBoards(ctx, "eva")
	assert.NoError(t, err)
	assert.Empty(t, boards)
}

func TestAddItem_AllocatesIDsPerList(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "eva")
	b, err := s.AddBoard(ctx, "eva", "Alpha")
	require.NoError(t, err)
	l1, err := s.AddList(ctx, "eva", b.ID, "To Do", "BLUE")
	require.NoError(t, err)
	l2, err := s.AddList(ctx, "eva", b.ID, "Done", "GREEN")
	require.NoError(t, err)

	item := model.Item{Text: "task", Priority: model.PriorityLow}
	a, err := s.AddItem(ctx, "eva", b.ID, l1.ID, item)
	require.NoError(t, err)
	bItem, err := s.AddItem(ctx, "eva", b.ID, l1.ID, item)
	require.NoError(t, err)
	c, err := s.AddItem(ctx, "eva", b.ID, l2.ID, item)
	require.NoError(t, err)

	// counters are per list, so both lists start at 1
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, bItem.ID)
	assert.Equal(t, 1, c.ID)
}

func TestAddItem_IDNotReusedAfterRemoval(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "eva")
	b, err := s.AddBoard(ctx, "eva", "Alpha")
	require.NoError(t, err)
	l, err := s.AddList(ctx, "eva", b.ID, "To Do", "BLUE")
	require.NoError(t, err)

	item := model.Item{Text: "task", Priority: model.PriorityLow}
	first, err := s.AddItem(ctx, "eva", b.ID, l.ID, item)
	require.NoError(t, err)
	require.NoError(t, s.RemoveItem(ctx, "eva", b.ID, l.ID, first.ID))

	second, err := s.AddItem(ctx, "eva", b.ID, l.ID, item)

	assert.NoError(t, err)
	assert.Equal(t, first.ID+1, second.ID)
}

func TestUpdateItem_UnknownItem(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "eva")
	b, err := s.AddBoard(ctx, "eva", "Alpha")
	require.NoError(t, err)
	l, err := s.AddList(ctx, "eva", b.ID, "To Do", "BLUE")
	require.NoError(t, err)

	_, err = s.UpdateItem(ctx, "eva", b.ID, l.ID, model.Item{ID: 42, Text: "x", Priority: model.PriorityLow})

	assert.ErrorIs(t, err, store.ErrItemNotFound)
}

func TestReplaceBoard_PersistsDropResult(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "eva")
	b, err := s.AddBoard(ctx, "eva", "Alpha")
	require.NoError(t, err)
	l1, err := s.AddList(ctx, "eva", b.ID, "To Do", "BLUE")
	require.NoError(t, err)
	l2, err := s.AddList(ctx, "eva", b.ID, "Done", "GREEN")
	require.NoError(t, err)
	moved, err := s.AddItem(ctx, "eva", b.ID, l1.ID, model.Item{Text: "task", Priority: model.PriorityHigh})
	require.NoError(t, err)

	// the drag engine works on a read copy and writes it back whole
	copyB, err := s.GetBoard(ctx, "eva", b.ID)
	require.NoError(t, err)
	res, err := board.DropOnEnd(&copyB, l1.ID, moved.ID, l2.ID)
	require.NoError(t, err)
	require.Equal(t, board.DropTransfer, res.Kind)

	err = s.ReplaceBoard(ctx, "eva", copyB)

	assert.NoError(t, err)
	after, err := s.GetBoard(ctx, "eva", b.ID)
	assert.NoError(t, err)
	assert.Empty(t, after.Lists[0].Items)
	assert.Len(t, after.Lists[1].Items, 1)
	assert.Equal(t, "task", after.Lists[1].Items[0].Text)
	assert.Equal(t, res.NewItemID, after.Lists[1].Items[0].ID)
}

func TestStore_RoundTripsThroughFile(t *testing.T) {
	s, path := openTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "eva")
	b, err := s.AddBoard(ctx, "eva", "Alpha")
	require.NoError(t, err)
	l, err := s.AddList(ctx, "eva", b.ID, "To Do", "BLUE")
	require.NoError(t, err)
	item, err := model.NewItem("water plants", model.PriorityMedium, "back garden", []string{"home", "garden"}, false)
	require.NoError(t, err)
	_, err = s.AddItem(ctx, "eva", b.ID, l.ID, item)
	require.NoError(t, err)

	reopened, err := store.Open(path)

	require.NoError(t, err)
	want, err := s.GetUser(ctx, "eva")
	require.NoError(t, err)
	got, err := reopened.GetUser(ctx, "eva")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_PersistsLocalizedPriorityTokens(t *testing.T) {
	s, path := openTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "eva")
	b, err := s.AddBoard(ctx, "eva", "Alpha")
	require.NoError(t, err)
	l, err := s.AddList(ctx, "eva", b.ID, "To Do", "BLUE")
	require.NoError(t, err)
	_, err = s.AddItem(ctx, "eva", b.ID, l.ID, model.Item{Text: "task", Priority: model.PriorityHigh})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)

	require.NoError(t, err)
	assert.Contains(t, string(raw), `"priority": "Alta"`)
}

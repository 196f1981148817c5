// Package store is the persistence gateway: the whole board document is kept
// as one JSON file, loaded into memory on open and rewritten in full on every
// mutation. A process-wide mutex serializes mutations, the file is replaced
// atomically (temp file + rename) so a crash mid-write cannot truncate it,
// and an advisory file lock guards against a second process on the same file.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"trolli/internal/model"
)

const lockRetryDelay = 50 * time.Millisecond

type Store struct {
	path string
	mu   sync.Mutex
	fl   *flock.Flock
	data model.Snapshot
}

// Open loads the document at path, validating it against the snapshot schema.
// A missing file starts an empty store; the file is created on first save.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		fl:   flock.New(path + ".lock"),
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse data file: %w", err)
	}
	if err := validateSnapshot(doc); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("decode data file: %w", err)
	}
	return s, nil
}

// save rewrites the whole document. Callers hold s.mu.
func (s *Store) save(ctx context.Context) error {
	locked, err := s.fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock data file: %w", err)
	}
	if !locked {
		return errors.New("data file is locked by another process")
	}
	defer s.fl.Unlock()

	raw, err := json.MarshalIndent(&s.data, "", "    ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

// user resolves the named user. Callers hold s.mu.
func (s *Store) user(username string) (*model.User, error) {
	u := s.data.FindUser(username)
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// --- users ---

func (s *Store) AddUser(ctx context.Context, name, password string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if password == "" {
		return ErrEmptyPassword
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.FindUser(name) != nil {
		return ErrUserExists
	}
	s.data.Users = append(s.data.Users, model.User{
		Name:     name,
		Password: password,
		Boards:   []model.Board{},
	})
	return s.save(ctx)
}

func (s *Store) GetUser(ctx context.Context, name string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(name)
	if err != nil {
		return model.User{}, err
	}
	return cloneUser(*u), nil
}

func (s *Store) GetUsers(ctx context.Context) []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]model.User, len(s.data.Users))
	for i, u := range s.data.Users {
		users[i] = cloneUser(u)
	}
	return users
}

func (s *Store) RemoveUser(ctx context.Context, name string) error {
	if name == model.AdminName {
		return ErrAdminProtected
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.data.Users {
		if u.Name == name {
			s.data.Users = append(s.data.Users[:i], s.data.Users[i+1:]...)
			return s.save(ctx)
		}
	}
	return ErrUserNotFound
}

// --- boards ---

func (s *Store) AddBoard(ctx context.Context, username, name string) (model.Board, error) {
	if strings.TrimSpace(name) == "" {
		return model.Board{}, ErrEmptyName
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(username)
	if err != nil {
		return model.Board{}, err
	}
	b := model.Board{
		ID:    u.NextBoardID(),
		Name:  name,
		Lists: []model.List{},
	}
	u.Boards = append(u.Boards, b)
	if err := s.save(ctx); err != nil {
		return model.Board{}, err
	}
	return cloneBoard(b), nil
}

func (s *Store) GetBoards(ctx context.Context, username string) ([]model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(username)
	if err != nil {
		return nil, err
	}
	boards := make([]model.Board, len(u.Boards))
	for i, b := range u.Boards {
		boards[i] = cloneBoard(b)
	}
	return boards, nil
}

func (s *Store) GetBoard(ctx context.Context, username string, boardID int) (model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(username)
	if err != nil {
		return model.Board{}, err
	}
	b := u.FindBoard(boardID)
	if b == nil {
		return model.Board{}, ErrBoardNotFound
	}
	return cloneBoard(*b), nil
}

// GetBoardByIndex resolves a board by its position in the user's sequence,
// the addressing the navigation rail uses. Out-of-range indexes return
// ErrBoardNotFound so the caller can fall back to the all-boards view.
func (s *Store) GetBoardByIndex(ctx context.Context, username string, index int) (model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(username)
	if err != nil {
		return model.Board{}, err
	}
	if index < 0 || index >= len(u.Boards) {
		return model.Board{}, ErrBoardNotFound
	}
	return cloneBoard(u.Boards[index]), nil
}

func (s *Store) UpdateBoard(ctx context.Context, username string, boardID int, name string) (model.Board, error) {
	if strings.TrimSpace(name) == "" {
		return model.Board{}, ErrEmptyName
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(username)
	if err != nil {
		return model.Board{}, err
	}
	b := u.FindBoard(boardID)
	if b == nil {
		return model.Board{}, ErrBoardNotFound
	}
	b.Name = name
	if err := s.save(ctx); err != nil {
		return model.Board{}, err
	}
	return cloneBoard(*b), nil
}

// RemoveBoard deletes a board, cascading to its lists and items.
func (s *Store) RemoveBoard(ctx context.Context, username string, boardID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(username)
	if err != nil {
		return err
	}
	idx := u.BoardIndex(boardID)
	if idx < 0 {
		return ErrBoardNotFound
	}
	u.Boards = append(u.Boards[:idx], u.Boards[idx+1:]...)
	return s.save(ctx)
}

// ReplaceBoard writes back a board mutated outside the store (the
// drag-and-drop engine works on a copy). The whole drop lands in one save, so
// a cross-list transfer cannot persist half-done.
func (s *Store) ReplaceBoard(ctx context.Context, username string, b model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(username)
	if err != nil {
		return err
	}
	idx := u.BoardIndex(b.ID)
	if idx < 0 {
		return ErrBoardNotFound
	}
	u.Boards[idx] = cloneBoard(b)
	return s.save(ctx)
}

// --- lists ---

func (s *Store) AddList(ctx context.Context, username string, boardID int, title, color string) (model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(username)
	if err != nil {
		return model.List{}, err
	}
	b := u.FindBoard(boardID)
	if b == nil {
		return model.List{}, ErrBoardNotFound
	}
	l := model.List{
		ID:    b.AllocListID(),
		Title: title,
		Color: color,
		Items: []model.Item{},
	}
	b.Lists = append(b.Lists, l)
	if err := s.save(ctx); err != nil {
		return model.List{}, err
	}
	return cloneList(l), nil
}

func (s *Store) UpdateList(ctx context.Context, username string, boardID, listID int, title, color string) (model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.findList(username, boardID, listID)
	if err != nil {
		return model.List{}, err
	}
	if strings.TrimSpace(title) != "" {
		l.Title = title
	}
	l.Color = color
	if err := s.save(ctx); err != nil {
		return model.List{}, err
	}
	return cloneList(*l), nil
}

func (s *Store) RemoveList(ctx context.Context, username string, boardID, listID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.user(username)
	if err != nil {
		return err
	}
	b := u.FindBoard(boardID)
	if b == nil {
		return ErrBoardNotFound
	}
	if !b.RemoveList(listID) {
		return ErrListNotFound
	}
	return s.save(ctx)
}

// --- items ---

// AddItem appends the item to the list, assigning a fresh id from the list's
// counter.
func (s *Store) AddItem(ctx context.Context, username string, boardID, listID int, item model.Item) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.findList(username, boardID, listID)
	if err != nil {
		return model.Item{}, err
	}
	item.ID = l.AllocItemID()
	l.Items = append(l.Items, item)
	if err := s.save(ctx); err != nil {
		return model.Item{}, err
	}
	return item.Clone(), nil
}

func (s *Store) UpdateItem(ctx context.Context, username string, boardID, listID int, item model.Item) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.findList(username, boardID, listID)
	if err != nil {
		return model.Item{}, err
	}
	idx := l.ItemIndex(item.ID)
	if idx < 0 {
		return model.Item{}, ErrItemNotFound
	}
	l.Items[idx] = item.Clone()
	if err := s.save(ctx); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

func (s *Store) RemoveItem(ctx context.Context, username string, boardID, listID, itemID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.findList(username, boardID, listID)
	if err != nil {
		return err
	}
	if !l.RemoveItem(itemID) {
		return ErrItemNotFound
	}
	return s.save(ctx)
}

// findList resolves user/board/list. Callers hold s.mu.
func (s *Store) findList(username string, boardID, listID int) (*model.List, error) {
	u, err := s.user(username)
	if err != nil {
		return nil, err
	}
	b := u.FindBoard(boardID)
	if b == nil {
		return nil, ErrBoardNotFound
	}
	l := b.FindList(listID)
	if l == nil {
		return nil, ErrListNotFound
	}
	return l, nil
}

// --- copies ---

// The store never hands out pointers into its own snapshot; reads are value
// copies so the drag engine can mutate them freely before ReplaceBoard.

func cloneUser(u model.User) model.User {
	c := u
	c.Boards = make([]model.Board, len(u.Boards))
	for i, b := range u.Boards {
		c.Boards[i] = cloneBoard(b)
	}
	return c
}

func cloneBoard(b model.Board) model.Board {
	c := b
	c.Lists = make([]model.List, len(b.Lists))
	for i, l := range b.Lists {
		c.Lists[i] = cloneList(l)
	}
	return c
}

func cloneList(l model.List) model.List {
	c := l
	c.Items = make([]model.Item, len(l.Items))
	for i, it := range l.Items {
		c.Items[i] = it.Clone()
	}
	return c
}

package model

// AdminName is the distinguished account that gates member management and can
// never be removed.
const AdminName = "admin"

// User owns an ordered sequence of boards. The name is the primary key.
// Passwords are stored as given; the persisted document format predates any
// hashing and must round-trip unchanged.
type User struct {
	Name     string  `json:"name"`
	Password string  `json:"password"`
	Boards   []Board `json:"boards"`
}

// NextBoardID assigns max(existing)+1, starting at 1.
func (u *User) NextBoardID() int {
	next := 1
	for _, b := range u.Boards {
		if b.ID >= next {
			next = b.ID + 1
		}
	}
	return next
}

// BoardIndex returns the position of the board with the given id, or -1.
func (u *User) BoardIndex(boardID int) int {
	for i, b := range u.Boards {
		if b.ID == boardID {
			return i
		}
	}
	return -1
}

// FindBoard returns a pointer into the user's board slice, or nil.
func (u *User) FindBoard(boardID int) *Board {
	if idx := u.BoardIndex(boardID); idx >= 0 {
		return &u.Boards[idx]
	}
	return nil
}

// Snapshot is the whole persisted document: every user with every board.
type Snapshot struct {
	Users []User `json:"users"`
}

// FindUser returns a pointer into the snapshot's user slice, or nil.
func (s *Snapshot) FindUser(name string) *User {
	for i := range s.Users {
		if s.Users[i].Name == name {
			return &s.Users[i]
		}
	}
	return nil
}

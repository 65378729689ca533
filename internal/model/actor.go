package model

// Actor is the authenticated identity a request runs as. The zero value is a guest.
type Actor struct {
	ID    uint
	Admin bool
}

func (a Actor) Guest() bool {
	return a.ID == 0
}

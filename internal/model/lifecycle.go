package model

type State int

const (
	StateUnconfirmed State = iota
	StateConfirmed
	StateTrashed
)

func (s State) String() string {
	switch s {
	case StateUnconfirmed:
		return "unconfirmed"
	case StateConfirmed:
		return "confirmed"
	case StateTrashed:
		return "trashed"
	}
	return "unknown"
}

type Action string

const (
	ActionConfirm     Action = "confirm"
	ActionEdit        Action = "edit"
	ActionSoftDelete  Action = "soft_delete"
	ActionRestore     Action = "restore"
	ActionForceDelete Action = "force_delete"
)

// transitions lists the states each action may start from.
var transitions = map[Action][]State{
	ActionConfirm:     {StateUnconfirmed, StateConfirmed},
	ActionEdit:        {StateUnconfirmed, StateConfirmed},
	ActionSoftDelete:  {StateUnconfirmed, StateConfirmed},
	ActionRestore:     {StateTrashed},
	ActionForceDelete: {StateTrashed},
}

// State derives the lifecycle state. A trashed article reports StateTrashed whatever its
// confirmed flag; restoring it brings the flag back into effect.
func (a *Article) State() State {
	switch {
	case a.Trashed():
		return StateTrashed
	case a.Confirmed:
		return StateConfirmed
	default:
		return StateUnconfirmed
	}
}

// Permits reports whether action is a legal transition from the article's current state.
func (a *Article) Permits(action Action) bool {
	current := a.State()
	for _, from := range transitions[action] {
		if from == current {
			return true
		}
	}
	return false
}

// Published reports whether the article is visible to everyone.
func (a *Article) Published() bool {
	return a.State() == StateConfirmed
}

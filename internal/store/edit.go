package store

import "github.com/templui/goaltracker/internal/validation"

// EditSession is a rename in progress: the goal being edited and the draft title
type EditSession struct {
	GoalID int64  `json:"goalId"`
	Draft  string `json:"draft"`
}

// StartEdit opens a session seeded with the goal's current title
func StartEdit(s State, id int64) State {
	g, ok := s.Goal(id)
	if !ok {
		return s
	}
	s.Edit = &EditSession{GoalID: id, Draft: g.Title}
	return s
}

func SetEditDraft(s State, draft string) State {
	if s.Edit == nil {
		return s
	}
	s.Edit = &EditSession{GoalID: s.Edit.GoalID, Draft: draft}
	return s
}

// SaveEdit renames the goal from the draft and closes the session.
// A blank draft leaves both the goal and the session as they are.
func SaveEdit(s State) State {
	if s.Edit == nil {
		return s
	}

	if _, err := validation.ValidateTitle(s.Edit.Draft); err != nil {
		return s
	}

	next := RenameGoal(s, s.Edit.GoalID, s.Edit.Draft)
	next.Edit = nil
	return next
}

func CancelEdit(s State) State {
	s.Edit = nil
	return s
}

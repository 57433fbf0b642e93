package chat

import "github.com/suPer8Hu/gopherchat/internal/api"

// View renders controller state. Implementations must not call back into
// the controller.
type View interface {
	ShowUser(u api.User)
	Append(e Entry)
	// Update re-renders an entry already shown, after a status change.
	Update(e Entry)
	ClearInput()
	ScrollBottom()
}

package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/suPer8Hu/gopherchat/internal/api"
	"github.com/suPer8Hu/gopherchat/internal/common"
	"github.com/suPer8Hu/gopherchat/internal/logging"
	"github.com/suPer8Hu/gopherchat/internal/nav"
)

var (
	ErrUnauthenticated = errors.New("chat: not logged in")
	ErrNotReady        = errors.New("chat: history not loaded")
	ErrSendInFlight    = errors.New("chat: a message is already being sent")
)

const MsgLoginRequired = "Not logged in or login expired, please log in again"

type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
	StateReady
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateReady:
		return "ready"
	default:
		return "unauthenticated"
	}
}

// API is the part of api.Client the chat page needs.
type API interface {
	Profile(ctx context.Context) (api.Result[*api.User], error)
	History(ctx context.Context) (api.Result[[]api.Message], error)
	SendChat(ctx context.Context, content string) (api.Result[api.Message], error)
	Logout(ctx context.Context) error
}

// TokenState is satisfied by *session.Session.
type TokenState interface {
	Expired(now time.Time) bool
}

// Controller drives the chat page: profile check, history, sending.
type Controller struct {
	API  API
	View View
	Nav  nav.Navigator
	// Token, when set, lets Start skip the profile call for an expired JWT.
	Token TokenState
	Now   func() time.Time
	Log   zerolog.Logger

	list    *List
	user    *api.User
	state   State
	sending atomic.Bool
}

func NewController(client API, view View, navigator nav.Navigator) *Controller {
	return &Controller{
		API:  client,
		View: view,
		Nav:  navigator,
		Now:  time.Now,
		Log:  logging.L(),
		list: NewList(),
	}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) User() (api.User, bool) {
	if c.user == nil {
		return api.User{}, false
	}
	return *c.user, true
}

func (c *Controller) Entries() []Entry { return c.list.Entries() }

// Start checks the login and loads history. When no user is logged in it
// alerts, redirects to the login page and returns ErrUnauthenticated; the
// view is left untouched in that case.
func (c *Controller) Start(ctx context.Context) error {
	if c.Token != nil && c.Token.Expired(c.Now()) {
		return c.unauthenticated(&common.AuthError{Op: "start", Reason: "token expired"})
	}

	r, err := c.API.Profile(ctx)
	if err != nil {
		var authErr *common.AuthError
		if errors.As(err, &authErr) {
			return c.unauthenticated(err)
		}
		return err
	}
	if r.Data == nil || r.Data.LoginID == "" {
		return c.unauthenticated(nil)
	}

	c.user = r.Data
	c.state = StateAuthenticated
	c.View.ShowUser(*c.user)
	c.Log.Debug().Str(logging.FieldLoginID, c.user.LoginID).Msg("chat page ready for history")

	return c.LoadHistory(ctx)
}

// LoadHistory replaces the list with the server's history.
func (c *Controller) LoadHistory(ctx context.Context) error {
	if c.state == StateUnauthenticated {
		return ErrUnauthenticated
	}

	r, err := c.API.History(ctx)
	if err != nil {
		return c.checkAuth(err)
	}
	if err := r.Err(); err != nil {
		return err
	}

	c.list.Reset()
	for _, m := range r.Data {
		e, err := c.list.Append(m, StatusSent)
		if err != nil {
			return err
		}
		c.View.Append(e)
		c.View.ScrollBottom()
	}
	c.state = StateReady
	return nil
}

// Submit sends input as a chat message. Blank input is ignored without any
// request or view change. The outgoing message is shown before the server
// answers; if the send fails it stays in the list marked failed.
func (c *Controller) Submit(ctx context.Context, input string) error {
	content := strings.TrimSpace(input)
	if content == "" {
		return nil
	}
	if c.state != StateReady {
		return ErrNotReady
	}
	if !c.sending.CompareAndSwap(false, true) {
		return ErrSendInFlight
	}
	defer c.sending.Store(false)

	loginID := c.user.LoginID
	pending, err := c.list.Append(api.Message{
		Content:   content,
		CreatedAt: api.At(c.Now()),
		From:      &loginID,
		To:        nil,
	}, StatusPending)
	if err != nil {
		return err
	}
	c.View.Append(pending)
	c.View.ClearInput()
	c.View.ScrollBottom()

	r, err := c.API.SendChat(ctx, content)
	if err == nil {
		err = r.Err()
	}
	if err != nil {
		if failed, ok := c.list.SetStatus(pending.ID, StatusFailed); ok {
			c.View.Update(failed)
		}
		c.Log.Warn().Str(logging.FieldEntryID, pending.ID).Err(err).Msg("send failed")
		return c.checkAuth(err)
	}

	if sent, ok := c.list.SetStatus(pending.ID, StatusSent); ok {
		c.View.Update(sent)
	}

	reply := r.Data
	if !reply.HasTo() {
		to := loginID
		reply.To = &to
	}
	if reply.CreatedAt.IsZero() {
		reply.CreatedAt = api.At(c.Now())
	}
	e, err := c.list.Append(reply, StatusSent)
	if err != nil {
		return err
	}
	c.View.Append(e)
	c.View.ScrollBottom()
	return nil
}

// Logout forgets the token and leaves for the login page.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.API.Logout(ctx); err != nil {
		return err
	}
	c.state = StateUnauthenticated
	c.user = nil
	c.Nav.Redirect(nav.PageLogin)
	return nil
}

func (c *Controller) unauthenticated(cause error) error {
	c.state = StateUnauthenticated
	c.user = nil
	c.Nav.Alert(MsgLoginRequired)
	c.Nav.Redirect(nav.PageLogin)
	if cause != nil {
		return fmt.Errorf("%w: %w", ErrUnauthenticated, cause)
	}
	return ErrUnauthenticated
}

// checkAuth turns an AuthError seen mid-session into the login redirect.
func (c *Controller) checkAuth(err error) error {
	var authErr *common.AuthError
	if errors.As(err, &authErr) {
		return c.unauthenticated(err)
	}
	return err
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/suPer8Hu/gopherchat/internal/api"
	"github.com/suPer8Hu/gopherchat/internal/chat"
	"github.com/suPer8Hu/gopherchat/internal/common"
	"github.com/suPer8Hu/gopherchat/internal/config"
	"github.com/suPer8Hu/gopherchat/internal/form"
	"github.com/suPer8Hu/gopherchat/internal/logging"
	"github.com/suPer8Hu/gopherchat/internal/nav"
	"github.com/suPer8Hu/gopherchat/internal/session"
	"github.com/suPer8Hu/gopherchat/internal/ui"
)

var errQuit = errors.New("quit")

type app struct {
	sess   *session.Session
	client *api.Client
	view   *ui.TerminalView
	nav    *ui.Navigator
	prompt *ui.Prompter
	out    io.Writer
	log    zerolog.Logger
}

func newApp(ctx context.Context, cfg config.Config, store session.Store, in io.Reader, out io.Writer) (*app, error) {
	sess := session.New(store, cfg.TokenKey)
	sess.Log = logging.Ctx(ctx)
	if err := sess.Init(ctx); err != nil {
		return nil, err
	}
	return &app{
		sess:   sess,
		client: api.NewClient(cfg.BaseURL, sess, cfg.HTTPTimeout),
		view:   ui.NewTerminalView(out),
		nav:    ui.NewNavigator(out),
		prompt: ui.NewPrompter(in, out),
		out:    out,
		log:    logging.Ctx(ctx),
	}, nil
}

func (a *app) run(ctx context.Context, args []string) error {
	cmd := "repl"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}
	log := a.log.With().Str("command", cmd).Logger()
	ctx = logging.WithLogger(ctx, log)
	log.Debug().Msg("run")

	switch cmd {
	case "repl":
		return a.repl(ctx, nav.PageIndex)
	case "register":
		return a.quiet(a.registerPage(ctx))
	case "login":
		return a.quiet(a.loginPage(ctx))
	case "logout":
		return a.client.Logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "history":
		_, err := a.startChat(ctx, a.view)
		return err
	case "send":
		return a.send(ctx, strings.Join(args, " "))
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// repl runs pages until one quits or input ends. Each page leaves by
// redirecting; the loop follows the last redirect.
func (a *app) repl(ctx context.Context, page nav.Page) error {
	for {
		var err error
		switch page {
		case nav.PageLogin:
			err = a.loginPage(ctx)
		case nav.PageRegister:
			err = a.registerPage(ctx)
		default:
			err = a.indexPage(ctx)
		}
		if err != nil {
			return a.quiet(err)
		}
		if ctx.Err() != nil {
			return nil
		}

		next, ok := a.nav.Next()
		if !ok {
			return nil
		}
		log := logging.Ctx(ctx)
		log.Debug().Str(logging.FieldPage, string(next)).Msg("redirect")
		page = next
	}
}

// quiet swallows the ways a user ends a session on purpose.
func (a *app) quiet(err error) error {
	if errors.Is(err, errQuit) || errors.Is(err, ui.ErrClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *app) startChat(ctx context.Context, view chat.View) (*chat.Controller, error) {
	c := chat.NewController(a.client, view, a.nav)
	c.Token = a.sess
	if err := c.Start(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (a *app) indexPage(ctx context.Context) error {
	c, err := a.startChat(ctx, a.view)
	for err != nil && !errors.Is(err, chat.ErrUnauthenticated) {
		a.report(err, nil)
		line, perr := a.prompt.Line("press enter to retry, /quit to leave: ")
		if perr != nil {
			return perr
		}
		if line == "/quit" {
			return errQuit
		}
		c, err = a.startChat(ctx, a.view)
	}
	if err != nil {
		return nil
	}
	fmt.Fprintln(a.out, "type a message, /history, /logout or /quit")

	for {
		line, err := a.prompt.Line("> ")
		if err != nil {
			return err
		}
		switch line {
		case "/quit":
			return errQuit
		case "/logout":
			return c.Logout(ctx)
		case "/history":
			err = c.LoadHistory(ctx)
		default:
			err = c.Submit(ctx, line)
		}
		if errors.Is(err, chat.ErrUnauthenticated) {
			return nil
		}
		if err != nil {
			a.report(err, nil)
		}
	}
}

func (a *app) loginPage(ctx context.Context) error {
	l := form.NewLogin(a.client, a.nav)
	fmt.Fprintln(a.out, "log in (/register to create an account, /quit to leave)")

	for {
		id, err := a.prompt.Line("login id: ")
		if err != nil {
			return err
		}
		switch id {
		case "/quit":
			return errQuit
		case "/register":
			a.nav.Redirect(nav.PageRegister)
			return nil
		}
		pwd, err := a.prompt.Password("password: ")
		if err != nil {
			return err
		}

		err = l.Submit(ctx, form.Values{form.FieldLoginID: id, form.FieldLoginPwd: pwd})
		if err == nil {
			return nil
		}
		a.report(err, []string{form.FieldLoginID, form.FieldLoginPwd})
	}
}

var registrationOrder = []string{
	form.FieldLoginID,
	form.FieldNickname,
	form.FieldLoginPwd,
	form.FieldLoginPwdConfirm,
}

func (a *app) registerPage(ctx context.Context) error {
	r := form.NewRegistration(a.client, a.nav)
	fmt.Fprintln(a.out, "register (/login to go back, /quit to leave)")

	for {
		values := form.Values{}
		for _, field := range registrationOrder {
			v, err := a.ask(field)
			if err != nil {
				return err
			}
			switch v {
			case "/quit":
				return errQuit
			case "/login":
				a.nav.Redirect(nav.PageLogin)
				return nil
			}
			values[field] = v

			// blur check, so a taken id is reported before the rest is typed
			if field == form.FieldLoginID {
				msg, err := r.ValidateField(ctx, field, values)
				if err != nil {
					a.report(err, nil)
				} else if msg != "" {
					a.prompt.Fields(registrationOrder, map[string]string{field: msg})
				}
			}
		}

		err := r.Submit(ctx, values)
		if err == nil {
			return nil
		}
		a.report(err, registrationOrder)
	}
}

func (a *app) ask(field string) (string, error) {
	switch field {
	case form.FieldLoginPwd:
		return a.prompt.Password("password: ")
	case form.FieldLoginPwdConfirm:
		return a.prompt.Password("confirm password: ")
	case form.FieldNickname:
		return a.prompt.Line("nickname: ")
	default:
		return a.prompt.Line("login id: ")
	}
}

func (a *app) whoami(ctx context.Context) error {
	r, err := a.client.Profile(ctx)
	if err != nil {
		return err
	}
	if r.Data == nil || r.Data.LoginID == "" {
		fmt.Fprintln(a.out, "not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s)\n", r.Data.Nickname, r.Data.LoginID)
	if c, ok := session.ParseClaims(a.sess.Token()); ok && !c.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "token expires %s\n", c.ExpiresAt.Local().Format(ui.TimeLayout))
	}
	return nil
}

// send prints only the new exchange, not the whole history.
func (a *app) send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("send: message is empty")
	}
	c, err := a.startChat(ctx, discardView{})
	if err != nil {
		return err
	}
	c.View = a.view
	return c.Submit(ctx, text)
}

func (a *app) report(err error, fields []string) {
	var ve *common.ValidationError
	if common.Classify(err) == common.SurfaceInline && errors.As(err, &ve) {
		a.prompt.Fields(fields, ve.Fields)
		return
	}
	var se *common.ServerError
	if errors.As(err, &se) && se.Message != "" {
		a.prompt.Errorf("%s", se.Message)
		return
	}
	a.prompt.Errorf("%v", err)
}

type discardView struct{}

func (discardView) ShowUser(api.User) {}
func (discardView) Append(chat.Entry) {}
func (discardView) Update(chat.Entry) {}
func (discardView) ClearInput()       {}
func (discardView) ScrollBottom()     {}

package form

import (
	"context"

	"github.com/suPer8Hu/gopherchat/internal/api"
	"github.com/suPer8Hu/gopherchat/internal/common"
	"github.com/suPer8Hu/gopherchat/internal/nav"
)

type LoginAPI interface {
	Login(ctx context.Context, cred api.Credentials) (api.Result[*api.User], error)
}

type Login struct {
	API        LoginAPI
	Nav        nav.Navigator
	Validators []Validator
}

func NewLogin(client LoginAPI, navigator nav.Navigator) *Login {
	return &Login{
		API: client,
		Nav: navigator,
		Validators: []Validator{
			Required(FieldLoginID, MsgLoginIDRequired),
			Required(FieldLoginPwd, MsgPwdRequired),
		},
	}
}

// Submit logs in and moves to the chat page. A rejected login comes back as
// a *common.ServerError carrying the server's message.
func (l *Login) Submit(ctx context.Context, values Values) error {
	errs, err := Validate(ctx, values, l.Validators...)
	if err != nil {
		return err
	}
	if !errs.OK() {
		return &common.ValidationError{Fields: errs}
	}

	res, err := l.API.Login(ctx, api.Credentials{
		LoginID:  values[FieldLoginID],
		LoginPwd: values[FieldLoginPwd],
	})
	if err != nil {
		return err
	}
	if err := res.Err(); err != nil {
		return err
	}
	l.Nav.Redirect(nav.PageIndex)
	return nil
}

package form

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/suPer8Hu/gopherchat/internal/api"
	"github.com/suPer8Hu/gopherchat/internal/common"
	"github.com/suPer8Hu/gopherchat/internal/logging"
	"github.com/suPer8Hu/gopherchat/internal/nav"
)

const (
	FieldLoginID         = "loginId"
	FieldNickname        = "nickname"
	FieldLoginPwd        = "loginPwd"
	FieldLoginPwdConfirm = "loginPwdConfirm"
)

const (
	MsgLoginIDRequired  = "Please enter a login id"
	MsgLoginIDTaken     = "This login id is already taken, please choose another"
	MsgNicknameRequired = "Please enter a nickname"
	MsgPwdRequired      = "Please enter a password"
	MsgConfirmRequired  = "Please confirm the password"
	MsgPwdMismatch      = "The two passwords do not match"
	MsgRegistered       = "Registration succeeded, continue to log in"
)

// RegistrationAPI is the part of api.Client the registration page needs.
type RegistrationAPI interface {
	Exists(ctx context.Context, loginID string) (api.Result[bool], error)
	Register(ctx context.Context, in api.RegisterInput) (api.Result[json.RawMessage], error)
}

// RegistrationValidators returns the page's field checks. The login id check
// asks the server whether the id is taken.
func RegistrationValidators(client RegistrationAPI) []Validator {
	return []Validator{
		{Field: FieldLoginID, Check: func(ctx context.Context, v Values) (string, error) {
			id := v[FieldLoginID]
			if id == "" {
				return MsgLoginIDRequired, nil
			}
			r, err := client.Exists(ctx, id)
			if err != nil {
				return "", err
			}
			if err := r.Err(); err != nil {
				return "", err
			}
			if r.Data {
				return MsgLoginIDTaken, nil
			}
			return "", nil
		}},
		Required(FieldNickname, MsgNicknameRequired),
		Required(FieldLoginPwd, MsgPwdRequired),
		{Field: FieldLoginPwdConfirm, Check: func(_ context.Context, v Values) (string, error) {
			confirm := v[FieldLoginPwdConfirm]
			if confirm == "" {
				return MsgConfirmRequired, nil
			}
			if confirm != v[FieldLoginPwd] {
				return MsgPwdMismatch, nil
			}
			return "", nil
		}},
	}
}

type Registration struct {
	API        RegistrationAPI
	Nav        nav.Navigator
	Validators []Validator
	Log        zerolog.Logger
}

func NewRegistration(client RegistrationAPI, navigator nav.Navigator) *Registration {
	return &Registration{
		API:        client,
		Nav:        navigator,
		Validators: RegistrationValidators(client),
		Log:        logging.L(),
	}
}

// ValidateField checks one input.
func (r *Registration) ValidateField(ctx context.Context, field string, values Values) (string, error) {
	return ValidateField(ctx, field, values, r.Validators...)
}

// Submit registers the account only if every field passes. On success it
// alerts and redirects to the login page.
func (r *Registration) Submit(ctx context.Context, values Values) error {
	errs, err := Validate(ctx, values, r.Validators...)
	if err != nil {
		return err
	}
	if !errs.OK() {
		return &common.ValidationError{Fields: errs}
	}

	res, err := r.API.Register(ctx, api.RegisterInput{
		LoginID:  values[FieldLoginID],
		Nickname: values[FieldNickname],
		LoginPwd: values[FieldLoginPwd],
	})
	if err != nil {
		return err
	}
	if err := res.Err(); err != nil {
		return err
	}

	r.Log.Info().Str(logging.FieldLoginID, values[FieldLoginID]).Msg("registered")
	r.Nav.Alert(MsgRegistered)
	r.Nav.Redirect(nav.PageLogin)
	return nil
}

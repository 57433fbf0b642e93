package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/suPer8Hu/gopherchat/internal/common"
)

// Result is a decoded {code, message, data} envelope. OK is true iff code is 0.
type Result[T any] struct {
	OK      bool
	Code    int
	Message string
	Data    T

	op         string
	httpStatus int
}

// Err returns nil for a successful result and a *common.ServerError otherwise.
func (r Result[T]) Err() error {
	if r.OK {
		return nil
	}
	return &common.ServerError{Op: r.op, Code: r.Code, Message: r.Message, HTTPStatus: r.httpStatus}
}

type envelope struct {
	Code    *int            `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeResult[T any](op string, status int, body []byte) (Result[T], error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || env.Code == nil {
		return Result[T]{}, &common.ServerError{
			Op:         op,
			Code:       -1,
			Message:    fmt.Sprintf("unexpected response body (status %d)", status),
			HTTPStatus: status,
		}
	}

	r := Result[T]{
		OK:         *env.Code == 0,
		Code:       *env.Code,
		Message:    env.Message,
		op:         op,
		httpStatus: status,
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return r, nil
	}
	if err := json.Unmarshal(data, &r.Data); err != nil {
		// data shape is only guaranteed for successful results
		if !r.OK {
			return r, nil
		}
		return Result[T]{}, &common.ServerError{
			Op:         op,
			Code:       r.Code,
			Message:    fmt.Sprintf("decode data: %v", err),
			HTTPStatus: status,
		}
	}
	return r, nil
}

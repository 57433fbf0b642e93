package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type User struct {
	LoginID  string `json:"loginId"`
	Nickname string `json:"nickname"`
}

type Credentials struct {
	LoginID  string `json:"loginId"`
	LoginPwd string `json:"loginPwd"`
}

type RegisterInput struct {
	LoginID  string `json:"loginId"`
	Nickname string `json:"nickname"`
	LoginPwd string `json:"loginPwd"`
}

// Message is one chat record. A nil From means the bot wrote it.
type Message struct {
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"createdAt"`
	From      *string   `json:"from"`
	To        *string   `json:"to"`

	// toSent is set when decoded JSON carried a "to" key, even as null.
	toSent bool
}

func (m Message) FromBot() bool {
	return m.From == nil || *m.From == ""
}

// HasTo reports whether the recipient was given, including an explicit null.
func (m Message) HasTo() bool {
	return m.To != nil || m.toSent
}

func (m *Message) UnmarshalJSON(b []byte) error {
	type plain Message
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(b, &keys); err != nil {
		return err
	}
	_, p.toSent = keys["to"]
	*m = Message(p)
	return nil
}

type sendChatReq struct {
	Content string `json:"content"`
}

// Timestamp is a wall-clock instant carried as epoch milliseconds. The server
// has been seen sending both 1715078173965 and "1715078173965"; RFC3339
// strings are accepted too.
type Timestamp struct {
	time.Time
}

func At(t time.Time) Timestamp { return Timestamp{Time: t} }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	raw := string(b)
	if b[0] == '"' {
		s, err := strconv.Unquote(raw)
		if err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			t.Time = time.Time{}
			return nil
		}
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			t.Time = ts
			return nil
		}
	}

	ms := json.Number(raw)
	n, err := ms.Int64()
	if err != nil {
		f, ferr := ms.Float64()
		if ferr != nil {
			return fmt.Errorf("timestamp: unsupported value %s", string(b))
		}
		n = int64(f)
	}
	t.Time = time.UnixMilli(n)
	return nil
}

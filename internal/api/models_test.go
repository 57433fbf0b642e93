package api

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampAcceptsServerShapes(t *testing.T) {
	want := time.UnixMilli(1715078173965)
	inputs := []string{
		`{"content":"a","createdAt":1715078173965}`,
		`{"content":"a","createdAt":"1715078173965"}`,
		`{"content":"a","createdAt":"` + want.UTC().Format(time.RFC3339Nano) + `"}`,
	}
	for _, in := range inputs {
		var m Message
		if err := json.Unmarshal([]byte(in), &m); err != nil {
			t.Fatalf("unmarshal %s: %v", in, err)
		}
		if !m.CreatedAt.Equal(want) {
			t.Fatalf("%s: expected %v, got %v", in, want, m.CreatedAt.Time)
		}
	}
}

func TestTimestampNullIsZero(t *testing.T) {
	var m Message
	if err := json.Unmarshal([]byte(`{"content":"a","createdAt":null,"from":null}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !m.CreatedAt.IsZero() || !m.FromBot() {
		t.Fatalf("unexpected message %+v", m)
	}
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var m Message
	if err := json.Unmarshal([]byte(`{"createdAt":"yesterday"}`), &m); err == nil {
		t.Fatalf("expected error")
	}
}

func TestTimestampMarshalsMillis(t *testing.T) {
	b, err := json.Marshal(At(time.UnixMilli(42)))
	if err != nil || string(b) != "42" {
		t.Fatalf("expected 42, got %s err=%v", b, err)
	}
}

func TestDecodeResultNullData(t *testing.T) {
	r, err := decodeResult[*User]("profile", 200, []byte(`{"code":0,"data":null}`))
	if err != nil || !r.OK || r.Data != nil {
		t.Fatalf("unexpected %+v err=%v", r, err)
	}
}

func TestDecodeResultMissingCode(t *testing.T) {
	if _, err := decodeResult[*User]("profile", 200, []byte(`{"data":{}}`)); err == nil {
		t.Fatalf("expected error for envelope without code")
	}
}

func TestDecodeResultFailureIgnoresDataShape(t *testing.T) {
	r, err := decodeResult[[]Message]("history", 200, []byte(`{"code":7,"message":"nope","data":"oops"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.OK || r.Code != 7 || r.Err() == nil {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestMessageTracksExplicitTo(t *testing.T) {
	cases := map[string]bool{
		`{"content":"a"}`:              false,
		`{"content":"a","to":null}`:    true,
		`{"content":"a","to":"tom"}`:   true,
		`{"content":"a","from":"tom"}`: false,
	}
	for in, want := range cases {
		var m Message
		if err := json.Unmarshal([]byte(in), &m); err != nil {
			t.Fatalf("unmarshal %s: %v", in, err)
		}
		if m.HasTo() != want {
			t.Fatalf("%s: HasTo=%v, want %v", in, m.HasTo(), want)
		}
	}
}

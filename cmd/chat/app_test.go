package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/suPer8Hu/gopherchat/internal/chat"
	"github.com/suPer8Hu/gopherchat/internal/config"
	"github.com/suPer8Hu/gopherchat/internal/form"
	"github.com/suPer8Hu/gopherchat/internal/httpapi"
	"github.com/suPer8Hu/gopherchat/internal/httpapi/handlers"
	"github.com/suPer8Hu/gopherchat/internal/session"
)

func newTestApp(t *testing.T, stub *httpapi.Stub, store session.Store, input string) (*app, *bytes.Buffer) {
	t.Helper()
	cfg := config.Config{BaseURL: stub.URL, HTTPTimeout: 5 * time.Second, TokenKey: "token"}
	var out bytes.Buffer
	a, err := newApp(context.Background(), cfg, store, strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	return a, &out
}

func TestReplRegisterLoginChat(t *testing.T) {
	stub := httpapi.NewStub(handlers.Config{})
	defer stub.Close()

	input := strings.Join([]string{
		"/register",
		"tom", "Tom", "secret", "secret",
		"tom", "secret",
		"hi",
		"/quit",
	}, "\n") + "\n"

	store := session.NewMemoryStore()
	a, out := newTestApp(t, stub, store, input)
	if err := a.run(context.Background(), nil); err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}

	got := out.String()
	for _, want := range []string{
		"! " + chat.MsgLoginRequired,
		"! " + form.MsgRegistered,
		"logged in as Tom (tom)",
		"me: hi",
		"bot: You said: hi",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "me: hi") > strings.Index(got, "bot: You said: hi") {
		t.Fatalf("reply printed before the message:\n%s", got)
	}
	if tok, err := store.Get(context.Background(), "token"); err != nil || tok == "" {
		t.Fatalf("token not stored: %v", err)
	}
}

func TestReplRegisterReportsTakenID(t *testing.T) {
	stub := httpapi.NewStub(handlers.Config{})
	defer stub.Close()
	if err := stub.Handler.Seed("tom", "Tom", "secret"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	a, out := newTestApp(t, stub, session.NewMemoryStore(), "tom\n/quit\n")
	if err := a.run(context.Background(), []string{"register"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), form.MsgLoginIDTaken) {
		t.Fatalf("expected taken message:\n%s", out)
	}
	if stub.Hits.Count("/api/user/reg") != 0 {
		t.Fatalf("register endpoint must not be hit")
	}
}

func TestLogoutAndWhoami(t *testing.T) {
	stub := httpapi.NewStub(handlers.Config{})
	defer stub.Close()
	if err := stub.Handler.Seed("tom", "Tom", "secret"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	tok, err := stub.Handler.IssueToken("tom")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	store := session.NewMemoryStore()
	if err := store.Set(context.Background(), "token", tok); err != nil {
		t.Fatalf("set: %v", err)
	}

	a, out := newTestApp(t, stub, store, "")
	if err := a.run(context.Background(), []string{"whoami"}); err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(out.String(), "Tom (tom)") {
		t.Fatalf("unexpected whoami output %q", out)
	}

	hits := stub.Hits.Total()
	if err := a.run(context.Background(), []string{"logout"}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if stub.Hits.Total() != hits {
		t.Fatalf("logout must not call the server")
	}
	if _, err := store.Get(context.Background(), "token"); err == nil {
		t.Fatalf("token should be gone")
	}

	out.Reset()
	if err := a.run(context.Background(), []string{"whoami"}); err != nil {
		t.Fatalf("whoami after logout: %v", err)
	}
	if !strings.Contains(out.String(), "not logged in") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestSendPrintsOnlyNewExchange(t *testing.T) {
	stub := httpapi.NewStub(handlers.Config{})
	defer stub.Close()
	_ = stub.Handler.Seed("tom", "Tom", "secret")
	tok, _ := stub.Handler.IssueToken("tom")
	store := session.NewMemoryStore()
	_ = store.Set(context.Background(), "token", tok)

	a, out := newTestApp(t, stub, store, "")
	if err := a.run(context.Background(), []string{"send", "first"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	out.Reset()
	if err := a.run(context.Background(), []string{"send", "second", "one"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	got := out.String()
	if strings.Contains(got, "first") || !strings.Contains(got, "me: second one") {
		t.Fatalf("unexpected send output:\n%s", got)
	}
}

func TestUnknownCommand(t *testing.T) {
	stub := httpapi.NewStub(handlers.Config{})
	defer stub.Close()
	a, _ := newTestApp(t, stub, session.NewMemoryStore(), "")
	if err := a.run(context.Background(), []string{"dance"}); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}

func TestIndexPageStaysOnNetworkError(t *testing.T) {
	stub := httpapi.NewStub(handlers.Config{})
	a, out := newTestApp(t, stub, session.NewMemoryStore(), "\n/quit\n")
	stub.Close()

	if err := a.run(context.Background(), nil); err != nil {
		t.Fatalf("network error must not end the session: %v", err)
	}
	if n := strings.Count(out.String(), "error: "); n != 2 {
		t.Fatalf("expected an error line per attempt, got %d:\n%s", n, out)
	}
	if !strings.Contains(out.String(), "press enter to retry") {
		t.Fatalf("expected retry prompt:\n%s", out)
	}
}

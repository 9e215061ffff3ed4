package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	guest    bool
	sendErr  error

	calls []string
}

func (f *fakeExec) canChat() bool         { return f.loggedIn || f.guest }
func (f *fakeExec) isAuthenticated() bool { return f.loggedIn }

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return nil
}

func (f *fakeExec) Login(ctx context.Context, userID string) error {
	f.loggedIn = true
	return f.record("login:" + userID)
}
func (f *fakeExec) Guest(ctx context.Context) error {
	f.guest = true
	return f.record("guest")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn, f.guest = false, false
	return f.record("logout")
}
func (f *fakeExec) Chats(ctx context.Context, filter string) error { return f.record("chats:" + filter) }
func (f *fakeExec) Open(ctx context.Context, id string) error      { return f.record("open:" + id) }
func (f *fakeExec) New(ctx context.Context) error                  { return f.record("new") }
func (f *fakeExec) Delete(ctx context.Context, id string) error    { return f.record("delete:" + id) }
func (f *fakeExec) Resume(ctx context.Context) error               { return f.record("resume") }
func (f *fakeExec) History(ctx context.Context) error              { return f.record("history") }
func (f *fakeExec) Forget(ctx context.Context) error               { return f.record("forget") }
func (f *fakeExec) Send(ctx context.Context, text string) error {
	f.calls = append(f.calls, "send:"+text)
	return f.sendErr
}

func runWith(exec execIface, status, input string) string {
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return status }, rdr(input), &out, newRenderer(&out))
	return out.String()
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	input := strings.Join([]string{
		"hello before login",
		"/help",
		"/login demo",
		"/help",
		"",
		"/chats work notes",
		"/open abc",
		"/open",
		"/new",
		"/delete abc",
		"/delete",
		"/resume",
		"/history",
		"/forget",
		"How are you?",
		"/bogus",
		"/logout",
		"/guest",
		"/help",
		"/exit",
		"never read",
	}, "\n")

	exec := &fakeExec{}
	joined := runWith(exec, "(status)", input)

	assert.Equal(t, []string{
		"login:demo",
		"chats:work notes",
		"open:abc",
		"new",
		"delete:abc",
		"resume",
		"history",
		"forget",
		"send:How are you?",
		"logout",
		"guest",
	}, exec.calls)

	assert.Contains(t, joined, "Please /login or continue as /guest first.")
	assert.Contains(t, joined, helpLoggedOut)
	assert.Contains(t, joined, helpUser)
	assert.Contains(t, joined, helpGuest)
	assert.Contains(t, joined, "Usage: /open <id>")
	assert.Contains(t, joined, "Usage: /delete <id>")
	assert.Contains(t, joined, "Unknown command: /bogus")
	assert.Contains(t, joined, "chat (status)> ")
	assert.Contains(t, joined, "Bye!")
}

func TestRunREPL_ReportsErrorsAndStopsOnEOF(t *testing.T) {
	exec := &fakeExec{guest: true, sendErr: errors.New("backend down")}
	out := runWith(exec, "", "hi\n/quit-not\nlast")

	assert.Equal(t, []string{"send:hi", "send:last"}, exec.calls)
	assert.Contains(t, out, "error: backend down")
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	canChat() bool
	isAuthenticated() bool
	Login(ctx context.Context, userID string) error
	Guest(ctx context.Context) error
	Logout(ctx context.Context) error
	Chats(ctx context.Context, filter string) error
	Open(ctx context.Context, chatID string) error
	New(ctx context.Context) error
	Delete(ctx context.Context, chatID string) error
	Resume(ctx context.Context) error
	History(ctx context.Context) error
	Forget(ctx context.Context) error
	Send(ctx context.Context, text string) error
}

const (
	helpLoggedOut = "Commands: /login [id], /guest, /forget, /help, /exit"
	helpGuest     = "Type a message to chat. Commands: /new, /resume, /history, /login [id], /logout, /forget, /help, /exit"
	helpUser      = "Type a message to chat. Commands: /chats [filter], /open <id>, /new, /delete <id>, /resume, /history, /logout, /forget, /help, /exit"
)

// runREPL starts the read–eval–print loop of the chat client.
//
// Lines starting with '/' are commands; any other non-blank line is sent as a
// chat message. The prompt shows statusFn(). The loop exits on EOF or when
// the user types /exit or /quit. Everything is written to w.
//
//	Logged out:
//	  - /login [id]     — log in (asks for the password)
//	  - /guest          — chat without an account
//	  - /forget         — log out and wipe the local session store
//
//	Guest or logged in:
//	  - /new            — start a new chat with the next message
//	  - /resume         — reopen the last active session
//	  - /history        — print the visible transcript
//	  - /logout         — forget the stored login
//
//	Logged in only:
//	  - /chats [filter] — list chats, optionally filtered by title
//	  - /open <id>      — open a chat and load its messages
//	  - /delete <id>    — delete a chat after confirmation
//
// Errors returned by command handlers are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer, r *renderer) {
	say := func(args ...any) { fmt.Fprintln(w, args...) }
	report := func(err error) {
		if err != nil {
			say(r.err(err))
		}
	}

	for {
		fmt.Fprintf(w, "chat %s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				report(err)
			}
			return
		}
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, "/") {
			if !a.canChat() {
				say("Please /login or continue as /guest first.")
				continue
			}
			report(a.Send(ctx, line))
			continue
		}

		parts := strings.Fields(line)
		cmd, args := parts[0], parts[1:]
		arg := strings.Join(args, " ")

		switch cmd {
		case "/help":
			switch {
			case a.isAuthenticated():
				say(helpUser)
			case a.canChat():
				say(helpGuest)
			default:
				say(helpLoggedOut)
			}

		case "/login":
			report(a.Login(ctx, arg))

		case "/guest":
			report(a.Guest(ctx))

		case "/logout":
			report(a.Logout(ctx))

		case "/chats":
			report(a.Chats(ctx, arg))

		case "/open":
			if arg == "" {
				say("Usage: /open <id>")
				continue
			}
			report(a.Open(ctx, arg))

		case "/new":
			report(a.New(ctx))

		case "/delete":
			if arg == "" {
				say("Usage: /delete <id>")
				continue
			}
			report(a.Delete(ctx, arg))

		case "/resume":
			report(a.Resume(ctx))

		case "/history":
			report(a.History(ctx))

		case "/forget":
			report(a.Forget(ctx))

		case "/exit", "/quit":
			say("Bye!")
			return

		default:
			say("Unknown command:", cmd)
		}
	}
}

// Package cli provides the interactive gophchat command-line client.
//
// It wires configuration, the local session store, the backend client and
// the chat services, then runs a line-oriented REPL. Typical flow: restore
// the stored login, otherwise /login or continue as /guest, then type
// messages. The first message of a new chat creates it on the backend and
// makes it the active session, which /resume reopens after a restart.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

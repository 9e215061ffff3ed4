package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophchat/internal/client/services"
	"github.com/dmitrijs2005/gophchat/internal/common"
)

var errAlreadyLoggedIn = errors.New("already logged in, /logout first")

func (a *App) Login(ctx context.Context, userID string) error {
	if a.isAuthenticated() {
		return errAlreadyLoggedIn
	}

	if userID == "" {
		id, err := GetSimpleText(a.reader, "Enter user id", a.out)
		if err != nil {
			return err
		}
		userID = id
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, userID, string(password)); err != nil {
		return err
	}

	a.conversation.Reset()
	a.directory.Invalidate()
	a.println(a.render.info("Logged in as " + userID))
	return nil
}

func (a *App) Guest(ctx context.Context) error {
	if a.isAuthenticated() {
		return errAlreadyLoggedIn
	}
	a.auth.ContinueAsGuest()
	a.println(a.render.info("Chatting as guest."))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.auth.Logout(ctx)
	a.conversation.Reset()
	a.directory.Invalidate()
	a.println(a.render.info("Logged out."))
	return err
}

// Forget logs out and wipes everything in the local session store.
func (a *App) Forget(ctx context.Context) error {
	n, err := a.store.Forget(ctx)
	if err != nil {
		return err
	}
	if err := a.auth.Logout(ctx); err != nil {
		a.logger.Warn(ctx, "logout after forget failed", "error", err)
	}
	a.conversation.Reset()
	a.directory.Invalidate()
	a.println(a.render.info(fmt.Sprintf("Forgot %d local entries.", n)))
	return nil
}

// Chats prints the user's chats, most recent first, filtered by title.
func (a *App) Chats(ctx context.Context, filter string) error {
	if !a.isAuthenticated() {
		return services.ErrNotAuthenticated
	}

	list, err := a.directory.Listing(ctx, a.auth.State().UserID())
	if err != nil {
		return err
	}

	list = services.Filter(list, filter)
	if len(list) == 0 {
		a.println(a.render.info("No chats."))
		return nil
	}

	selected := a.conversation.SelectedChatID()
	for _, c := range list {
		a.println(a.render.chat(c, c.ID == selected))
	}
	return nil
}

func (a *App) Open(ctx context.Context, chatID string) error {
	if !a.canChat() {
		return services.ErrNotAuthenticated
	}
	if err := a.conversation.Select(ctx, chatID); err != nil {
		return err
	}
	return a.History(ctx)
}

func (a *App) New(ctx context.Context) error {
	if !a.canChat() {
		return services.ErrNotAuthenticated
	}
	a.conversation.NewChat()
	a.println(a.render.info("New chat: your next message starts it."))
	return nil
}

// Delete removes a chat after the user confirms.
func (a *App) Delete(ctx context.Context, chatID string) error {
	if !a.isAuthenticated() {
		return services.ErrNotAuthenticated
	}

	label := chatID
	if list, err := a.directory.Listing(ctx, a.auth.State().UserID()); err == nil {
		for _, c := range list {
			if c.ID == chatID {
				label = fmt.Sprintf("%q (%s)", c.Title, c.ID)
				break
			}
		}
	}

	ok, err := Confirm(a.reader, "Delete chat "+label+"?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println(a.render.info("Cancelled."))
		return nil
	}

	if err := a.conversation.DeleteChat(ctx, chatID); err != nil {
		return err
	}
	a.println(a.render.info("Deleted " + chatID + "."))
	return nil
}

func (a *App) Resume(ctx context.Context) error {
	if !a.canChat() {
		return services.ErrNotAuthenticated
	}

	id, err := a.conversation.Resume(ctx)
	if errors.Is(err, services.ErrNoActiveSession) {
		a.println(a.render.info("No session to resume."))
		return nil
	}
	if err != nil {
		return err
	}

	a.println(a.render.info("Resumed " + id + "."))
	return a.History(ctx)
}

// History prints the visible transcript.
func (a *App) History(ctx context.Context) error {
	msgs := a.conversation.Messages()
	if len(msgs) == 0 {
		a.println(a.render.info("(no messages)"))
		return nil
	}
	for _, m := range msgs {
		a.println(a.render.message(m))
	}
	return nil
}

func (a *App) Send(ctx context.Context, text string) error {
	reply, err := a.conversation.Send(ctx, text)
	if errors.Is(err, services.ErrEmptyMessage) {
		return nil
	}
	if err != nil {
		return err
	}
	a.println(a.render.message(*reply))
	return nil
}

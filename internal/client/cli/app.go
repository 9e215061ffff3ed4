package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophchat/internal/client/client"
	"github.com/dmitrijs2005/gophchat/internal/client/config"
	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophchat/internal/client/services"
	"github.com/dmitrijs2005/gophchat/internal/filex"
	"github.com/dmitrijs2005/gophchat/internal/logging"
	redis "github.com/redis/go-redis/v9"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	client       client.Client
	store        *services.SessionStore
	auth         *services.AuthService
	directory    *services.ChatDirectory
	conversation *services.Conversation
	bus          *services.EventBus
	reader       *bufio.Reader
	out          io.Writer
	render       *renderer
	closers      []func() error
	unsubscribe  []func()
}

// NewApp opens the session store and the backend client named by c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	repo, closeStore, err := openStore(ctx, c)
	if err != nil {
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	return newApp(c, logger, repo, apiClient, os.Stdin, os.Stdout, closeStore), nil
}

func newApp(c *config.Config, logger logging.Logger, repo metadata.Repository, apiClient client.Client,
	in io.Reader, out io.Writer, closers ...func() error) *App {

	store := services.NewSessionStore(repo)
	auth := services.NewAuthService(apiClient, store, logger)
	directory := services.NewChatDirectory(apiClient, logger)
	bus := services.NewEventBus()
	conversation := services.NewConversation(apiClient, directory, store, auth, bus, logger)

	a := &App{
		config:       c,
		logger:       logger.With("module", "cli"),
		client:       apiClient,
		store:        store,
		auth:         auth,
		directory:    directory,
		conversation: conversation,
		bus:          bus,
		reader:       bufio.NewReader(in),
		out:          out,
		render:       newRenderer(out),
		closers:      closers,
	}

	a.unsubscribe = append(a.unsubscribe,
		directory.Subscribe(bus),
		bus.Subscribe(func(e services.Event) {
			a.logger.Debug(context.Background(), "event", "kind", e.Kind.String(), "chat_id", e.ChatID)
		}),
	)
	return a
}

// openStore opens the session store backend selected in c and returns it
// together with its close function.
func openStore(ctx context.Context, c *config.Config) (metadata.Repository, func() error, error) {
	switch c.StoreBackend {
	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("%w: redis %s: %w", client.ErrLocalDataNotAvailable, c.RedisAddr, err)
		}
		return metadata.NewRedisRepository(rdb, metadata.DefaultRedisPrefix), rdb.Close, nil

	default:
		path, err := filex.EnsureParentDir(c.StorePath)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", client.ErrLocalDataNotAvailable, err)
		}
		db, err := client.InitDatabase(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return metadata.NewSQLiteRepository(db), db.Close, nil
	}
}

// Run restores the previous login and serves the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)

	a.println(a.render.info("Welcome to gophchat (type /help for commands)"))

	state := a.auth.Restore(ctx)
	if state.Status() == models.AuthAuthenticated {
		a.println(a.render.info("Logged in as " + state.User.ID))
	} else {
		a.println(a.render.info("Log in with /login or chat as /guest."))
	}

	runREPL(ctx, a, a.status, a.reader, a.out, a.render)
}

// Close tears the session down and releases the client and the store.
func (a *App) Close(ctx context.Context) {
	for _, unsub := range a.unsubscribe {
		unsub()
	}
	a.conversation.Reset()
	a.auth.Reset()

	if err := a.client.Close(); err != nil {
		a.logger.Warn(ctx, "client close error", "error", err)
	}
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.logger.Warn(ctx, "store close error", "error", err)
		}
	}
}

func (a *App) status() string {
	state := a.auth.State()

	var s string
	switch state.Status() {
	case models.AuthAuthenticated:
		s = state.User.ID
	case models.AuthGuest:
		s = models.GuestUserID
	default:
		s = "logged out"
	}
	if id := a.conversation.SelectedChatID(); id != "" {
		s += " @ " + id
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) canChat() bool {
	return a.auth.State().Usable()
}

func (a *App) isAuthenticated() bool {
	return a.auth.State().IsAuthenticated
}

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}

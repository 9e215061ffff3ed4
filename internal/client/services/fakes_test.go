package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/logging"
)

var errStore = errors.New("store failure")

// ---- fake metadata repository ----

type memRepo struct {
	mu      sync.Mutex
	data    map[string][]byte
	GetErr  error
	SetErr  error
	DelErr  error
	ListErr error
}

func newMemRepo() *memRepo {
	return &memRepo{data: make(map[string][]byte)}
}

func (r *memRepo) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	v, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (r *memRepo) Set(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SetErr != nil {
		return r.SetErr
	}
	r.data[key] = append([]byte(nil), value...)
	return nil
}

func (r *memRepo) Delete(ctx context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.DelErr != nil {
		return r.DelErr
	}
	for _, k := range keys {
		delete(r.data, k)
	}
	return nil
}

func (r *memRepo) List(ctx context.Context) (map[string][]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	out := make(map[string][]byte, len(r.data))
	for k, v := range r.data {
		out[k] = append([]byte(nil), v...)
	}
	return out, nil
}

func (r *memRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = make(map[string][]byte)
	return nil
}

func (r *memRepo) raw(key string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[key]
	return string(v), ok
}

// ---- fake backend client ----

type fakeClient struct {
	mu sync.Mutex

	LoginRet *models.User
	LoginErr error

	VerifyRet bool
	VerifyErr error

	// SendFn overrides the canned reply when set.
	SendFn    func(ctx context.Context, req models.ChatRequest) (*models.ChatReply, error)
	SendReply *models.ChatReply
	SendErr   error

	ChatsRet []models.Chat
	ChatsErr error

	ChatRet []models.Message
	ChatErr error

	CreateID  string
	CreateErr error

	// CreateNoID makes CreateChat return a chat without an id.
	CreateNoID bool

	DeleteErr error

	// recorded calls
	LastVerifyUser, LastVerifyToken string
	SendCalls                       []models.ChatRequest
	CreateCalls                     []createCall
	DeleteCalls                     []string
	GetChatsCalls                   int
}

type createCall struct {
	UserID string
	Title  string
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Login(ctx context.Context, userID string, password string) (*models.User, error) {
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) VerifyLogin(ctx context.Context, userID string, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastVerifyUser, f.LastVerifyToken = userID, token
	return f.VerifyRet, f.VerifyErr
}

func (f *fakeClient) SendMessage(ctx context.Context, req models.ChatRequest) (*models.ChatReply, error) {
	f.mu.Lock()
	f.SendCalls = append(f.SendCalls, req)
	fn, reply, err := f.SendFn, f.SendReply, f.SendErr
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	if err != nil {
		return nil, err
	}
	if reply == nil {
		return &models.ChatReply{Reply: "ok"}, nil
	}
	r := *reply
	return &r, nil
}

func (f *fakeClient) GetChats(ctx context.Context, userID string) ([]models.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetChatsCalls++
	return f.ChatsRet, f.ChatsErr
}

func (f *fakeClient) GetChat(ctx context.Context, chatID string) ([]models.Message, error) {
	return f.ChatRet, f.ChatErr
}

func (f *fakeClient) CreateChat(ctx context.Context, userID string, title string) (*models.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls = append(f.CreateCalls, createCall{UserID: userID, Title: title})
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	id := f.CreateID
	if id == "" && !f.CreateNoID {
		id = "chat-1"
	}
	return &models.Chat{ID: id, UserID: userID, Title: title}, nil
}

func (f *fakeClient) DeleteChat(ctx context.Context, chatID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls = append(f.DeleteCalls, chatID)
	return f.DeleteErr
}

// ---- fixed auth state ----

type staticAuth struct{ state models.AuthState }

func (s staticAuth) State() models.AuthState { return s.state }

var (
	guestAuth  = staticAuth{state: models.AuthState{IsGuest: true}}
	aliceAuth  = staticAuth{state: models.AuthState{User: &models.User{ID: "alice", Token: "tok"}, IsAuthenticated: true}}
	testLogger = logging.NewDiscard()
)

// ---- event recorder ----

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func record(bus *EventBus) *recorder {
	r := &recorder{}
	bus.Subscribe(func(e Event) {
		r.mu.Lock()
		r.events = append(r.events, e)
		r.mu.Unlock()
	})
	return r
}

func (r *recorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func (r *recorder) last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return Event{}
	}
	return r.events[len(r.events)-1]
}

package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/config"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/model"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/ports/adapter"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/ports/repository"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/infra/logging"
)

func testLogger() *zerolog.Logger {
	return logging.New(config.LogConfig{Level: "error", Format: "console"}, true)
}

// ---- Fake transaction manager ----

type fakeTxManager struct{}

var _ repository.TransactionManager = (*fakeTxManager)(nil)

func (fakeTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, repository.NoTX)
}

// ---- In-memory user repo ----

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

var _ repository.UserRepository = (*memUserRepo)(nil)

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*model.User{}}
}

func (m *memUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.users[id]; u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) FindByIdentifier(ctx context.Context, tx repository.Tx, identifier string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == identifier || u.Username == identifier {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) ExistsByEmailOrUsername(ctx context.Context, tx repository.Tx, email, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserRepo) SetPro(ctx context.Context, tx repository.Tx, id string, pro bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[id]
	if u == nil {
		return domain.ErrNotFound
	}
	u.IsPro = pro
	return nil
}

func (m *memUserRepo) ConsumeCredit(ctx context.Context, tx repository.Tx, id string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[id]
	if u == nil {
		return 0, domain.ErrNotFound
	}
	if u.Credits <= 0 {
		return 0, domain.ErrInsufficientCredits
	}
	u.Credits--
	return u.Credits, nil
}

func (m *memUserRepo) GrantCredits(ctx context.Context, tx repository.Tx, id string, amount int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[id]
	if u == nil {
		return 0, domain.ErrNotFound
	}
	u.Credits += amount
	u.TotalCreditsPurchased += amount
	return u.Credits, nil
}

func (m *memUserRepo) credits(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.users[id]; u != nil {
		return u.Credits
	}
	return -1
}

// ---- In-memory session repo ----

type memSessionRepo struct {
	mu   sync.Mutex
	byID map[string]*model.TherapySession
}

var _ repository.TherapySessionRepository = (*memSessionRepo)(nil)

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{byID: map[string]*model.TherapySession{}}
}

func (m *memSessionRepo) Save(ctx context.Context, qx any, s *model.TherapySession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.byID[s.ID] = &cp
	return nil
}

func (m *memSessionRepo) FindByID(ctx context.Context, qx any, id string) (*model.TherapySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s := m.byID[id]; s != nil {
		cp := *s
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memSessionRepo) FindByIDForUser(ctx context.Context, qx any, id, userID string) (*model.TherapySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s := m.byID[id]; s != nil && s.UserID == userID {
		cp := *s
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memSessionRepo) FindAllByUser(ctx context.Context, qx any, userID string, limit int) ([]*model.TherapySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.TherapySession
	for _, s := range m.byID {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memSessionRepo) CloseActiveByUser(ctx context.Context, qx any, userID string, endedAt time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, s := range m.byID {
		if s.UserID == userID && s.IsActive {
			s.End(endedAt)
			n++
		}
	}
	return n, nil
}

func (m *memSessionRepo) activeCount(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.byID {
		if s.UserID == userID && s.IsActive {
			n++
		}
	}
	return n
}

// ---- In-memory message repo ----

type memMessageRepo struct {
	mu         sync.Mutex
	bySession  map[string][]*model.TherapyMessage
	saveErr    error
	savedCount int
}

var _ repository.TherapyMessageRepository = (*memMessageRepo)(nil)

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{bySession: map[string][]*model.TherapyMessage{}}
}

func (m *memMessageRepo) Save(ctx context.Context, qx any, msg *model.TherapyMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *msg
	m.bySession[msg.SessionID] = append(m.bySession[msg.SessionID], &cp)
	m.savedCount++
	return nil
}

func (m *memMessageRepo) FindBySession(ctx context.Context, qx any, sessionID string, limit int) ([]*model.TherapyMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := m.bySession[sessionID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	out := make([]*model.TherapyMessage, len(msgs))
	for i, msg := range msgs {
		cp := *msg
		out[i] = &cp
	}
	return out, nil
}

func (m *memMessageRepo) FindRecentBySession(ctx context.Context, qx any, sessionID string, limit int) ([]*model.TherapyMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := m.bySession[sessionID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]*model.TherapyMessage, len(msgs))
	for i, msg := range msgs {
		cp := *msg
		out[i] = &cp
	}
	return out, nil
}

func (m *memMessageRepo) CountBySession(ctx context.Context, qx any, sessionID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bySession[sessionID]), nil
}

// ---- In-memory contact repo ----

type memContactRepo struct {
	mu    sync.Mutex
	saved []*model.ContactMessage
}

var _ repository.ContactRepository = (*memContactRepo)(nil)

func (m *memContactRepo) Save(ctx context.Context, qx any, c *model.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, c)
	return nil
}

// ---- Fake AI adapter ----

type fakeAI struct {
	mu       sync.Mutex
	ChatFunc func(ctx context.Context, model string, msgs []adapter.Message) (string, error)
	lastMsgs []adapter.Message
	calls    int
}

var _ adapter.AIServiceAdapter = (*fakeAI)(nil)

func (f *fakeAI) ListModels(ctx context.Context) ([]string, error) {
	return []string{"llama-3.3-70b-versatile"}, nil
}

func (f *fakeAI) GetModelInfo(modelName string) (adapter.ModelInfo, error) {
	return adapter.ModelInfo{Name: modelName}, nil
}

func (f *fakeAI) CountTokens(ctx context.Context, modelName string, msgs []adapter.Message) (int, error) {
	n := 0
	for _, m := range msgs {
		n += len(m.Content)
	}
	return n, nil
}

func (f *fakeAI) Chat(ctx context.Context, modelName string, msgs []adapter.Message) (string, error) {
	f.mu.Lock()
	f.lastMsgs = append([]adapter.Message(nil), msgs...)
	f.calls++
	f.mu.Unlock()
	if f.ChatFunc != nil {
		return f.ChatFunc(ctx, modelName, msgs)
	}
	return "I'm here for you.", nil
}

func (f *fakeAI) chatCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeAI) last() []adapter.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastMsgs
}

// ---- Fake dashboard cache / invalidator ----

type fakeDashboardCache struct {
	mu          sync.Mutex
	stored      map[string]any
	invalidated []string
}

func newFakeDashboardCache() *fakeDashboardCache {
	return &fakeDashboardCache{stored: map[string]any{}}
}

func (f *fakeDashboardCache) Store(ctx context.Context, userID string, v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored[userID] = v
	return nil
}

func (f *fakeDashboardCache) Load(ctx context.Context, userID string, out any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.stored[userID]
	if !ok {
		return false, nil
	}
	if d, okOut := out.(*Dashboard); okOut {
		if src, okSrc := v.(*Dashboard); okSrc {
			*d = *src
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDashboardCache) Invalidate(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.stored, userID)
	f.invalidated = append(f.invalidated, userID)
	return nil
}

// ---- Common fixtures ----

func proUser(credits int) *model.User {
	u, _ := model.NewUser("", "Asha", "asha@example.com", "asha_k", "$2a$10$hash")
	u.Credits = credits
	u.IsPro = true
	return u
}

func freeUser(credits int) *model.User {
	u, _ := model.NewUser("", "Ravi", "ravi@example.com", "ravi_m", "$2a$10$hash")
	u.Credits = credits
	return u
}

func strptr(s string) *string { return &s }

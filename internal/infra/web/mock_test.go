//go:build !integration

package web

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/config"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/model"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/infra/logging"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/usecase"
)

func testLogger() *zerolog.Logger {
	return logging.New(config.LogConfig{Level: "error", Format: "console"}, true)
}

// --- Stub use cases ---

type stubAuthUC struct {
	usecase.AuthUseCase // Embed interface for forward compatibility
	RegisterFunc        func(ctx context.Context, name, email, username, password string) (*model.User, error)
	LoginFunc           func(ctx context.Context, identifier, password string) (*model.User, error)
	GetByIDFunc         func(ctx context.Context, userID string) (*model.User, error)
	UpgradeFunc         func(ctx context.Context, userID string) error
}

func (s *stubAuthUC) Register(ctx context.Context, name, email, username, password string) (*model.User, error) {
	return s.RegisterFunc(ctx, name, email, username, password)
}

func (s *stubAuthUC) Login(ctx context.Context, identifier, password string) (*model.User, error) {
	return s.LoginFunc(ctx, identifier, password)
}

func (s *stubAuthUC) GetByID(ctx context.Context, userID string) (*model.User, error) {
	if s.GetByIDFunc != nil {
		return s.GetByIDFunc(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (s *stubAuthUC) UpgradeToPro(ctx context.Context, userID string) error {
	return s.UpgradeFunc(ctx, userID)
}

type stubCreditUC struct {
	usecase.CreditLedgerUseCase
	ConsumeFunc func(ctx context.Context, userID string) (int, error)
	GrantFunc   func(ctx context.Context, userID string, amount int) (int, error)
}

func (s *stubCreditUC) Consume(ctx context.Context, userID string) (int, error) {
	return s.ConsumeFunc(ctx, userID)
}

func (s *stubCreditUC) Grant(ctx context.Context, userID string, amount int) (int, error) {
	return s.GrantFunc(ctx, userID, amount)
}

type stubSessionUC struct {
	usecase.SessionUseCase
	StartFunc    func(ctx context.Context, user *model.User, category model.Category, title string) (*model.TherapySession, error)
	EndFunc      func(ctx context.Context, userID, sessionID string) error
	ListFunc     func(ctx context.Context, userID string) ([]*usecase.SessionSummary, error)
	MessagesFunc func(ctx context.Context, userID, sessionID string) (*model.TherapySession, []*model.TherapyMessage, error)
}

func (s *stubSessionUC) Start(ctx context.Context, user *model.User, category model.Category, title string) (*model.TherapySession, error) {
	return s.StartFunc(ctx, user, category, title)
}

func (s *stubSessionUC) End(ctx context.Context, userID, sessionID string) error {
	return s.EndFunc(ctx, userID, sessionID)
}

func (s *stubSessionUC) List(ctx context.Context, userID string) ([]*usecase.SessionSummary, error) {
	return s.ListFunc(ctx, userID)
}

func (s *stubSessionUC) Messages(ctx context.Context, userID, sessionID string) (*model.TherapySession, []*model.TherapyMessage, error) {
	return s.MessagesFunc(ctx, userID, sessionID)
}

type stubChatUC struct {
	HandleTurnFunc func(ctx context.Context, user *model.User, in usecase.TurnInput) (string, error)
}

func (s *stubChatUC) HandleTurn(ctx context.Context, user *model.User, in usecase.TurnInput) (string, error) {
	return s.HandleTurnFunc(ctx, user, in)
}

type stubAnalyticsUC struct {
	usecase.AnalyticsUseCase
	DashboardFunc   func(ctx context.Context, user *model.User) (*usecase.Dashboard, error)
	MoodHistoryFunc func(ctx context.Context, userID string) ([]*usecase.MoodSession, error)
}

func (s *stubAnalyticsUC) Dashboard(ctx context.Context, user *model.User) (*usecase.Dashboard, error) {
	return s.DashboardFunc(ctx, user)
}

func (s *stubAnalyticsUC) MoodHistory(ctx context.Context, userID string) ([]*usecase.MoodSession, error) {
	return s.MoodHistoryFunc(ctx, userID)
}

type stubContactUC struct {
	SubmitFunc func(ctx context.Context, email, message string) error
}

func (s *stubContactUC) Submit(ctx context.Context, email, message string) error {
	return s.SubmitFunc(ctx, email, message)
}

type stubSpeech struct {
	SynthesizeFunc func(ctx context.Context, text string) ([]byte, error)
}

func (s *stubSpeech) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return s.SynthesizeFunc(ctx, text)
}

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allow, s.err
}

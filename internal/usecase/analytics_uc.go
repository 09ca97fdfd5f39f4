// File: internal/usecase/analytics_uc.go
package usecase

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/model"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/ports/repository"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/infra/logging"
)

// Compile-time check
var _ AnalyticsUseCase = (*analyticsUC)(nil)

const (
	moodHistorySessions = 20
	moodPreviewMessages = 5
	dashboardRecent     = 10
)

// EmotionCount is one slice of the emotion distribution.
type EmotionCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// SessionStat summarizes one session for the dashboard.
type SessionStat struct {
	Date            string `json:"date"`
	DurationMinutes int    `json:"duration"`
	Messages        int    `json:"messages"`
	Category        string `json:"category"`
	SessionID       string `json:"session_id"`
	StartedAt       string `json:"started_at"`
}

// Dashboard aggregates a user's activity for the dashboard page.
type Dashboard struct {
	TotalSessions         int            `json:"total_sessions"`
	TotalMessages         int            `json:"total_messages"`
	AvgDurationMinutes    int            `json:"avg_session_duration"`
	Credits               int            `json:"credits"`
	TotalCreditsPurchased int            `json:"total_credits_purchased"`
	IsPro                 bool           `json:"is_pro"`
	WellnessScore         int            `json:"wellness_score"`
	MostFrequentEmotion   string         `json:"most_frequent_emotion"`
	EmotionDistribution   []EmotionCount `json:"emotion_distribution"`
	SessionDurations      []SessionStat  `json:"session_durations"`
	CategoryCounts        map[string]int `json:"category_counts"`
}

// MoodSession is one entry of the mood-history view, carrying only a
// short message preview.
type MoodSession struct {
	ID              string                  `json:"id"`
	Title           string                  `json:"session_title"`
	Category        string                  `json:"category"`
	StartedAt       time.Time               `json:"started_at"`
	EndedAt         *time.Time              `json:"ended_at"`
	DurationMinutes int                     `json:"duration"`
	IsActive        bool                    `json:"is_active"`
	MessageCount    int                     `json:"message_count"`
	Messages        []*model.TherapyMessage `json:"messages"`
}

// AnalyticsUseCase derives read-only views over sessions and messages.
type AnalyticsUseCase interface {
	Dashboard(ctx context.Context, user *model.User) (*Dashboard, error)
	MoodHistory(ctx context.Context, userID string) ([]*MoodSession, error)
}

// DashboardCacheStore is the optional read-through cache for dashboards.
type DashboardCacheStore interface {
	Store(ctx context.Context, userID string, v any) error
	Load(ctx context.Context, userID string, out any) (bool, error)
}

type analyticsUC struct {
	sessions repository.TherapySessionRepository
	messages repository.TherapyMessageRepository
	cache    DashboardCacheStore
	log      *zerolog.Logger
}

func NewAnalyticsUseCase(
	sessions repository.TherapySessionRepository,
	messages repository.TherapyMessageRepository,
	cache DashboardCacheStore,
	logger *zerolog.Logger,
) *analyticsUC {
	return &analyticsUC{sessions: sessions, messages: messages, cache: cache, log: logger}
}

func (a *analyticsUC) Dashboard(ctx context.Context, user *model.User) (*Dashboard, error) {
	defer logging.TraceDuration(a.log, "AnalyticsUC.Dashboard")()

	if a.cache != nil {
		var cached Dashboard
		if ok, err := a.cache.Load(ctx, user.ID, &cached); err == nil && ok {
			// Balance and tier come from the live user record, not the cache.
			cached.Credits = user.Credits
			cached.TotalCreditsPurchased = user.TotalCreditsPurchased
			cached.IsPro = user.IsPro
			return &cached, nil
		}
	}

	sessions, err := a.sessions.FindAllByUser(ctx, repository.NoTX, user.ID, 0)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		TotalSessions:         len(sessions),
		Credits:               user.Credits,
		TotalCreditsPurchased: user.TotalCreditsPurchased,
		IsPro:                 user.IsPro,
		MostFrequentEmotion:   "N/A",
		CategoryCounts:        map[string]int{},
	}

	emotionCounts := map[string]int{}
	totalDuration := 0
	var stats []SessionStat

	// FindAllByUser returns newest first; walk oldest->newest so the
	// recent-sessions window keeps chronological order.
	for i := len(sessions) - 1; i >= 0; i-- {
		s := sessions[i]
		msgs, err := a.messages.FindBySession(ctx, repository.NoTX, s.ID, 0)
		if err != nil {
			return nil, err
		}
		d.TotalMessages += len(msgs)

		for _, m := range msgs {
			if m.Emotion != nil && *m.Emotion != "" {
				emotionCounts[strings.ToLower(*m.Emotion)]++
			}
		}

		dur := s.DurationMinutes()
		totalDuration += dur
		category := s.Category()
		d.CategoryCounts[category]++
		stats = append(stats, SessionStat{
			Date:            s.StartedAt.Format("Jan 02"),
			DurationMinutes: dur,
			Messages:        len(msgs),
			Category:        category,
			SessionID:       s.ID,
			StartedAt:       s.StartedAt.Format(time.RFC3339),
		})
	}

	if len(sessions) > 0 {
		d.AvgDurationMinutes = roundHalfUp(float64(totalDuration) / float64(len(sessions)))
	}
	if len(stats) > dashboardRecent {
		stats = stats[len(stats)-dashboardRecent:]
	}
	d.SessionDurations = stats

	d.WellnessScore = wellnessScore(emotionCounts)
	d.EmotionDistribution = emotionDistribution(emotionCounts)
	if e, ok := mostFrequentEmotion(emotionCounts); ok {
		d.MostFrequentEmotion = e
	}

	if a.cache != nil {
		if err := a.cache.Store(ctx, user.ID, d); err != nil {
			a.log.Debug().Err(err).Msg("dashboard cache store failed")
		}
	}
	return d, nil
}

func (a *analyticsUC) MoodHistory(ctx context.Context, userID string) ([]*MoodSession, error) {
	defer logging.TraceDuration(a.log, "AnalyticsUC.MoodHistory")()

	sessions, err := a.sessions.FindAllByUser(ctx, repository.NoTX, userID, moodHistorySessions)
	if err != nil {
		return nil, err
	}

	out := make([]*MoodSession, 0, len(sessions))
	for _, s := range sessions {
		msgs, err := a.messages.FindBySession(ctx, repository.NoTX, s.ID, 0)
		if err != nil {
			return nil, err
		}
		preview := msgs
		if len(preview) > moodPreviewMessages {
			preview = preview[:moodPreviewMessages]
		}
		out = append(out, &MoodSession{
			ID:              s.ID,
			Title:           s.Title,
			Category:        s.Category(),
			StartedAt:       s.StartedAt,
			EndedAt:         s.EndedAt,
			DurationMinutes: s.DurationMinutes(),
			IsActive:        s.IsActive,
			MessageCount:    len(msgs),
			Messages:        preview,
		})
	}
	return out, nil
}

// wellnessScore weighs happy twice, neutral and surprised once, against
// double the emotion-tagged total; 0 when nothing is tagged. Half values
// round up (round-half-away-from-zero), so {happy:2, neutral:1, sad:1}
// scores 63.
func wellnessScore(counts map[string]int) int {
	total := 0
	for _, v := range counts {
		total += v
	}
	if total == 0 {
		return 0
	}
	positive := counts["happy"]
	neutral := counts["neutral"] + counts["surprised"]
	return roundHalfUp(float64(positive*2+neutral) / float64(total*2) * 100)
}

// mostFrequentEmotion resolves ties to the lexicographically smallest
// name so the result is deterministic.
func mostFrequentEmotion(counts map[string]int) (string, bool) {
	best, bestCount := "", 0
	for e, n := range counts {
		if n > bestCount || (n == bestCount && (best == "" || e < best)) {
			best, bestCount = e, n
		}
	}
	return best, bestCount > 0
}

func emotionDistribution(counts map[string]int) []EmotionCount {
	out := make([]EmotionCount, 0, len(counts))
	for e, n := range counts {
		out = append(out, EmotionCount{Name: e, Value: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func roundHalfUp(v float64) int { return int(math.Round(v)) }

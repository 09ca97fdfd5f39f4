package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/model"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/infra/redis"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps domain sentinels onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrInsufficientCredits), errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

type authResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *Server) handleRegister() http.HandlerFunc {
	type request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		user, err := s.authUC.Register(r.Context(), req.Name, req.Email, req.Username, req.Password)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		token, err := s.tokens.Mint(user.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to issue token")
			return
		}
		writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
	}
}

func (s *Server) handleLogin() http.HandlerFunc {
	type request struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		user, err := s.authUC.Login(r.Context(), req.Identifier, req.Password)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		token, err := s.tokens.Mint(user.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to issue token")
			return
		}
		writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
	}
}

func (s *Server) handleContact() http.HandlerFunc {
	type request struct {
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := s.contactUC.Submit(r.Context(), req.Email, req.Message); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"message": "thanks, we'll get back to you"})
	}
}

func (s *Server) handleTextToSpeech() http.HandlerFunc {
	type request struct {
		Text string `json:"text"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if s.speech == nil {
			writeError(w, http.StatusServiceUnavailable, "text-to-speech is not configured")
			return
		}
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}
		audio, err := s.speech.Synthesize(r.Context(), req.Text)
		if err != nil {
			s.log.Warn().Err(err).Msg("speech synthesis failed")
			writeError(w, http.StatusBadGateway, "speech synthesis failed")
			return
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(audio)
	}
}

func (s *Server) handleGetCredits() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r.Context())
		writeJSON(w, http.StatusOK, map[string]any{
			"credits":                 user.Credits,
			"total_credits_purchased": user.TotalCreditsPurchased,
			"is_pro":                  user.IsPro,
		})
	}
}

func (s *Server) handleUseCredit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r.Context())
		remaining, err := s.creditUC.Consume(r.Context(), user.ID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"credits": remaining})
	}
}

func (s *Server) handleBuyCredits() http.HandlerFunc {
	type request struct {
		Amount int `json:"amount"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r.Context())
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		balance, err := s.creditUC.Grant(r.Context(), user.ID, req.Amount)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"credits": balance})
	}
}

func (s *Server) handleUpgrade() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r.Context())
		if err := s.authUC.UpgradeToPro(r.Context(), user.ID); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"is_pro": true})
	}
}

func (s *Server) handleSessionCreate() http.HandlerFunc {
	type request struct {
		Category string `json:"category"`
		Title    string `json:"title"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r.Context())
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		category, _ := model.ParseCategory(req.Category)
		sess, err := s.sessionUC.Start(r.Context(), user, category, req.Title)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if sess == nil {
			// Free tier: the turn proceeds sessionless.
			writeJSON(w, http.StatusOK, map[string]any{"session": nil})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"session": sess})
	}
}

func (s *Server) handleSessionEnd() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r.Context())
		sessionID := chi.URLParam(r, "sessionID")
		if err := s.sessionUC.End(r.Context(), user.ID, sessionID); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ended": true})
	}
}

func (s *Server) handleChatTurn() http.HandlerFunc {
	type request struct {
		Category  string               `json:"category"`
		SessionID string               `json:"session_id"`
		History   []usecase.ClientTurn `json:"history"`
		Message   string               `json:"message"`
		Emotion   *string              `json:"emotion"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r.Context())

		if s.limiter != nil && s.ratePerMinute > 0 {
			ok, err := s.limiter.Allow(r.Context(), redis.ChatTurnKey(user.ID), s.ratePerMinute, time.Minute)
			if err != nil {
				s.log.Warn().Err(err).Msg("rate limiter unavailable, allowing turn")
			} else if !ok {
				writeError(w, http.StatusTooManyRequests, "too many messages, slow down")
				return
			}
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		reply, err := s.chatUC.HandleTurn(r.Context(), user, usecase.TurnInput{
			Category:      req.Category,
			SessionID:     req.SessionID,
			ClientHistory: req.History,
			Message:       req.Message,
			Emotion:       req.Emotion,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"response": reply})
	}
}

func (s *Server) handleSessionList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r.Context())
		sessions, err := s.sessionUC.List(r.Context(), user.ID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": sessions})
	}
}

func (s *Server) handleSessionMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r.Context())
		sessionID := chi.URLParam(r, "sessionID")
		sess, msgs, err := s.sessionUC.Messages(r.Context(), user.ID, sessionID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"session": sess, "messages": msgs})
	}
}

func (s *Server) handleDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r.Context())
		d, err := s.statsUC.Dashboard(r.Context(), user)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, d)
	}
}

func (s *Server) handleMoodHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r.Context())
		hist, err := s.statsUC.MoodHistory(r.Context(), user.ID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"sessions": hist})
	}
}

//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/model"
)

func seedSession(t *testing.T, userID string) *model.TherapySession {
	t.Helper()
	s := model.NewTherapySession("", userID, "Mental Health Session")
	if err := NewSessionRepo(testPool).Save(context.Background(), nil, s); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return s
}

func TestMessageRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	repo := NewMessageRepo(testPool)
	ctx := context.Background()

	t.Run("should append and read back in creation order", func(t *testing.T) {
		cleanup(t)
		u := seedUser(t, "m1@example.com", "m1_user")
		sess := seedSession(t, u.ID)

		for i := 0; i < 6; i++ {
			sender := model.SenderUser
			if i%2 == 1 {
				sender = model.SenderAssistant
			}
			msg := model.NewTherapyMessage(sess.ID, sender, fmt.Sprintf("m%d", i), nil)
			if err := repo.Save(ctx, nil, msg); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
		}

		msgs, err := repo.FindBySession(ctx, nil, sess.ID, 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(msgs) != 6 {
			t.Fatalf("expected 6 messages, got %d", len(msgs))
		}
		for i, m := range msgs {
			if m.Text != fmt.Sprintf("m%d", i) {
				t.Fatalf("message %d out of order: %q", i, m.Text)
			}
		}

		count, err := repo.CountBySession(ctx, nil, sess.ID)
		if err != nil || count != 6 {
			t.Fatalf("count = %d, err = %v", count, err)
		}
	})

	t.Run("should keep the emotion tag", func(t *testing.T) {
		cleanup(t)
		u := seedUser(t, "m2@example.com", "m2_user")
		sess := seedSession(t, u.ID)

		emotion := "happy"
		msg := model.NewTherapyMessage(sess.ID, model.SenderUser, "great day", &emotion)
		if err := repo.Save(ctx, nil, msg); err != nil {
			t.Fatal(err)
		}

		msgs, err := repo.FindBySession(ctx, nil, sess.ID, 0)
		if err != nil {
			t.Fatal(err)
		}
		if msgs[0].Emotion == nil || *msgs[0].Emotion != "happy" {
			t.Fatalf("emotion not round-tripped: %+v", msgs[0].Emotion)
		}
	})

	t.Run("should window to the most recent messages", func(t *testing.T) {
		cleanup(t)
		u := seedUser(t, "m3@example.com", "m3_user")
		sess := seedSession(t, u.ID)

		for i := 0; i < 40; i++ {
			msg := model.NewTherapyMessage(sess.ID, model.SenderUser, fmt.Sprintf("m%02d", i), nil)
			if err := repo.Save(ctx, nil, msg); err != nil {
				t.Fatal(err)
			}
		}

		recent, err := repo.FindRecentBySession(ctx, nil, sess.ID, 30)
		if err != nil {
			t.Fatal(err)
		}
		if len(recent) != 30 {
			t.Fatalf("expected a 30-message window, got %d", len(recent))
		}
		if recent[0].Text != "m10" || recent[29].Text != "m39" {
			t.Fatalf("window must be the most recent tail in order: first=%q last=%q", recent[0].Text, recent[29].Text)
		}
	})
}

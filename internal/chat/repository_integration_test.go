//go:build integration

package chat_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ferdiebergado/devlink/internal/chat"
	"github.com/ferdiebergado/devlink/internal/platform/db"
	"github.com/google/go-cmp/cmp"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func messageIDs(messages []chat.Message) []int64 {
	ids := make([]int64, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestIntegrationRepository_ListMessages(t *testing.T) {
	t.Parallel()

	conn, tx := db.Setup(t)
	ctx := db.NewContextWithTx(context.Background(), tx)
	repo := chat.NewRepository(conn)

	alice := db.CreateUser(t, tx, "alice", nil)
	bob := db.CreateUser(t, tx, "bob", nil)

	conv, err := repo.CreateConversation(ctx, alice, bob)
	if err != nil {
		t.Fatalf("repo.CreateConversation() = %v", err)
	}

	again, err := repo.CreateConversation(ctx, alice, bob)
	if err != nil {
		t.Fatalf("repo.CreateConversation(again) = %v", err)
	}
	if again.ID != conv.ID {
		t.Errorf("repo.CreateConversation(again).ID = %d, want: %d", again.ID, conv.ID)
	}

	const total = 7
	ids := make([]int64, 0, total)
	for i := range total {
		sender, receiver := alice, bob
		if i%2 == 1 {
			sender, receiver = bob, alice
		}
		msg, err := repo.CreateMessage(ctx, &chat.Message{
			ConversationID: conv.ID,
			SenderID:       sender,
			ReceiverID:     receiver,
			Type:           chat.Text,
			Content:        []byte("hello"),
		})
		if err != nil {
			t.Fatalf("repo.CreateMessage() = %v", err)
		}
		ids = append(ids, msg.ID)
	}

	tests := []struct {
		name   string
		cursor int64
		limit  int
		want   []int64
	}{
		{"Newest page", 0, 3, ids[4:]},
		{"Negative cursor reads from the newest", -1, 3, ids[4:]},
		{"Older page", ids[4], 3, ids[1:4]},
		{"Last short page", ids[1], 3, ids[:1]},
		{"Past the oldest", ids[0], 3, []int64{}},
		{"Limit above the count", 0, 20, ids},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := repo.ListMessages(ctx, conv.ID, tt.cursor, tt.limit)
			if err != nil {
				t.Fatalf("repo.ListMessages() = %v", err)
			}
			if diff := cmp.Diff(tt.want, messageIDs(page)); diff != "" {
				t.Errorf("repo.ListMessages() ids mismatch (-want +got):\n%s", diff)
			}
		})
	}

	first, err := repo.FindMessage(ctx, ids[0])
	if err != nil {
		t.Fatalf("repo.FindMessage() = %v", err)
	}
	if first.SenderNick != "alice" || first.ReceiverNick != "bob" || string(first.Content) != "hello" {
		t.Errorf("repo.FindMessage() = %+v, want: alice to bob saying hello", first)
	}
}

func TestIntegrationRepository_Unread(t *testing.T) {
	t.Parallel()

	conn, tx := db.Setup(t)
	ctx := db.NewContextWithTx(context.Background(), tx)
	repo := chat.NewRepository(conn)

	alice := db.CreateUser(t, tx, "alice", nil)
	bob := db.CreateUser(t, tx, "bob", nil)

	conv, err := repo.CreateConversation(ctx, alice, bob)
	if err != nil {
		t.Fatalf("repo.CreateConversation() = %v", err)
	}

	var last *chat.Message
	for range 2 {
		last, err = repo.CreateMessage(ctx, &chat.Message{
			ConversationID: conv.ID,
			SenderID:       alice,
			ReceiverID:     bob,
			Type:           chat.Link,
			Content:        []byte("https://example.com"),
		})
		if err != nil {
			t.Fatalf("repo.CreateMessage() = %v", err)
		}
	}

	if err := repo.MarkRead(ctx, last.ID); err != nil {
		t.Fatalf("repo.MarkRead() = %v", err)
	}
	if err := repo.MarkRead(ctx, last.ID+1000); !errors.Is(err, chat.ErrMessageNotFound) {
		t.Errorf("repo.MarkRead(missing) = %v, want: %v", err, chat.ErrMessageNotFound)
	}

	n, err := repo.CountUnread(ctx, bob)
	if err != nil {
		t.Fatalf("repo.CountUnread() = %v", err)
	}
	if n != 1 {
		t.Errorf("repo.CountUnread(bob) = %d, want: %d", n, 1)
	}

	summaries, err := repo.ListSummaries(ctx, bob)
	if err != nil {
		t.Fatalf("repo.ListSummaries() = %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("len(repo.ListSummaries()) = %d, want: %d", len(summaries), 1)
	}

	got := summaries[0]
	if got.OtherUserID != alice || got.OtherUserNick != "alice" || got.UnreadCount != 1 || got.LastMessageAt == nil {
		t.Errorf("repo.ListSummaries()[0] = %+v, want: alice with 1 unread and a last message time", got)
	}
}

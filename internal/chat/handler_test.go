package chat_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/devlink/internal/chat"
	"github.com/ferdiebergado/devlink/internal/config"
	"github.com/ferdiebergado/devlink/internal/pkg/message"
	"github.com/ferdiebergado/devlink/internal/pkg/web"
	"github.com/ferdiebergado/devlink/internal/user"
	"github.com/google/go-cmp/cmp"
)

var chatCfg = &config.Chat{DefaultPageSize: 3, MaxPageSize: 5, MaxFramesPerSecond: 50, MaxFrameBytes: 4096}

func TestHandler_ListMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		available  int
		code       int
		wantPage   chat.Page
		wantCursor int64
	}{
		{"Full default page", "", 10, http.StatusOK, chat.Page{Limit: 3}, 8},
		{"Short page", "?cursor=3", 2, http.StatusOK, chat.Page{Cursor: 3, Limit: 3}, 0},
		{"Limit capped", "?limit=100", 10, http.StatusOK, chat.Page{Limit: 5}, 6},
		{"Bad cursor", "?cursor=abc", 10, http.StatusBadRequest, chat.Page{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotPage chat.Page
			svc := &chat.StubService{
				MessagesFunc: func(_ context.Context, _, conversationID int64, page chat.Page) ([]chat.Message, error) {
					gotPage = page
					n := min(page.Limit, tt.available)
					// ids 11-n .. 10 in ascending order
					messages := make([]chat.Message, 0, n)
					for id := int64(11 - n); id <= 10; id++ {
						messages = append(messages, chat.Message{ID: id, ConversationID: conversationID})
					}
					return messages, nil
				},
			}
			h := chat.NewHandler(svc, chatCfg)

			ctx := user.NewContextWithID(context.Background(), 2)
			req := httptest.NewRequestWithContext(ctx, http.MethodGet, "/conversations/7/messages"+tt.query, nil)
			req.SetPathValue("id", "7")
			rec := httptest.NewRecorder()
			h.ListMessages(rec, req)

			if rec.Code != tt.code {
				t.Fatalf(message.FmtErrStatusCode, rec.Code, tt.code)
			}
			if tt.code != http.StatusOK {
				return
			}

			if gotPage != tt.wantPage {
				t.Errorf("page = %+v, want: %+v", gotPage, tt.wantPage)
			}

			var res web.OKResponse[chat.MessagesResponse]
			if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
				t.Fatal(err)
			}
			if res.Data.NextCursor != tt.wantCursor {
				t.Errorf("next_cursor = %d, want: %d", res.Data.NextCursor, tt.wantCursor)
			}
		})
	}
}

func TestHandler_SendMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"Sent", nil, http.StatusCreated},
		{"Outsider", chat.ErrNotParticipant, http.StatusForbidden},
		{"Missing conversation", chat.ErrConversationNotFound, http.StatusNotFound},
		{"Bad base64", chat.ErrInvalidContent, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotParams chat.SendMessageParams
			svc := &chat.StubService{
				SendMessageFunc: func(_ context.Context, senderID, conversationID int64, params chat.SendMessageParams) (*chat.Message, error) {
					gotParams = params
					if tt.err != nil {
						return nil, tt.err
					}
					return &chat.Message{ID: 1, ConversationID: conversationID, SenderID: senderID, Type: params.Type, Content: []byte(params.Content)}, nil
				},
			}
			h := chat.NewHandler(svc, chatCfg)

			ctx := user.NewContextWithID(context.Background(), 2)
			ctx = web.NewContextWithParams(ctx, chat.SendMessageRequest{MessageType: "link", Content: "https://go.dev"})
			req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/conversations/7/messages", nil)
			req.SetPathValue("id", "7")
			rec := httptest.NewRecorder()
			h.SendMessage(rec, req)

			if rec.Code != tt.code {
				t.Errorf(message.FmtErrStatusCode, rec.Code, tt.code)
			}

			want := chat.SendMessageParams{Type: chat.Link, Content: "https://go.dev"}
			if diff := cmp.Diff(want, gotParams); diff != "" {
				t.Errorf("params mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandler_DirectConversation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		pathID string
		err    error
		code   int
	}{
		{"Opened", "5", nil, http.StatusOK},
		{"Self", "2", chat.ErrSelfConversation, http.StatusBadRequest},
		{"Not friends", "5", chat.ErrNotFriends, http.StatusBadRequest},
		{"Blocked", "5", chat.ErrBlocked, http.StatusBadRequest},
		{"Bad id", "me", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &chat.StubService{
				DirectConversationFunc: func(_ context.Context, _, otherUserID int64) (*chat.Summary, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &chat.Summary{ID: 7, OtherUserID: otherUserID}, nil
				},
			}
			h := chat.NewHandler(svc, chatCfg)

			ctx := user.NewContextWithID(context.Background(), 2)
			req := httptest.NewRequestWithContext(ctx, http.MethodPut, "/conversations/direct/"+tt.pathID, nil)
			req.SetPathValue("otherUserID", tt.pathID)
			rec := httptest.NewRecorder()
			h.DirectConversation(rec, req)

			if rec.Code != tt.code {
				t.Errorf(message.FmtErrStatusCode, rec.Code, tt.code)
			}
		})
	}
}

func TestHandler_MessageMutations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"Done", nil, http.StatusNoContent},
		{"Missing", chat.ErrMessageNotFound, http.StatusNotFound},
		{"Not sender", chat.ErrNotSender, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &chat.StubService{
				DeleteMessageFunc: func(_ context.Context, _, _ int64) error { return tt.err },
				MarkReadFunc:      func(_ context.Context, _, _ int64) error { return tt.err },
			}
			h := chat.NewHandler(svc, chatCfg)
			ctx := user.NewContextWithID(context.Background(), 2)

			for name, fn := range map[string]http.HandlerFunc{"delete": h.DeleteMessage, "read": h.MarkRead} {
				req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/messages/100", nil)
				req.SetPathValue("id", "100")
				rec := httptest.NewRecorder()
				fn(rec, req)

				if rec.Code != tt.code {
					t.Errorf("%s: "+message.FmtErrStatusCode, name, rec.Code, tt.code)
				}
			}
		})
	}
}

func TestHandler_EditMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"Edited", nil, http.StatusOK},
		{"Not text", chat.ErrNotEditable, http.StatusBadRequest},
		{"Not sender", chat.ErrNotSender, http.StatusForbidden},
		{"Missing", chat.ErrMessageNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &chat.StubService{
				EditMessageFunc: func(_ context.Context, _, messageID int64, content string) (*chat.Message, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &chat.Message{ID: messageID, Content: []byte(content)}, nil
				},
			}
			h := chat.NewHandler(svc, chatCfg)

			ctx := user.NewContextWithID(context.Background(), 2)
			ctx = web.NewContextWithParams(ctx, chat.EditMessageRequest{Content: "fixed typo"})
			req := httptest.NewRequestWithContext(ctx, http.MethodPatch, "/messages/100", nil)
			req.SetPathValue("id", "100")
			rec := httptest.NewRecorder()
			h.EditMessage(rec, req)

			if rec.Code != tt.code {
				t.Errorf(message.FmtErrStatusCode, rec.Code, tt.code)
			}
		})
	}
}

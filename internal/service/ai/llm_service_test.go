package ai

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/synthpanel/focusgroup/internal/model/conversation"
)

// stubChatModel returns a canned reply and records the messages it was
// invoked with.
type stubChatModel struct {
	reply     string
	err       error
	lastInput []*schema.Message
}

func (m *stubChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.lastInput = input
	if m.err != nil {
		return nil, m.err
	}
	return schema.AssistantMessage(m.reply, nil), nil
}

func (m *stubChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported by stub")
}

func (m *stubChatModel) BindTools(_ []*schema.ToolInfo) error { return nil }

func newTestService(t *testing.T, replyModel, selectModel model.ChatModel) *Service {
	t.Helper()
	svc, err := NewServiceWithModels(context.Background(), replyModel, selectModel)
	if err != nil {
		t.Fatalf("NewServiceWithModels err: %v", err)
	}
	return svc
}

func TestGenerateReplyBuildsSystemAndQuery(t *testing.T) {
	replyModel := &stubChatModel{reply: "  Honestly, it's the snap.  "}
	svc := newTestService(t, replyModel, &stubChatModel{})

	transcript := []conversation.Entry{
		{Role: conversation.RoleModerator, Text: "What matters most?"},
	}

	got, err := svc.GenerateReply(context.Background(), marcus, "premium chocolate", []string{"earlier remark"}, transcript, "What matters most?")
	if err != nil {
		t.Fatalf("GenerateReply err: %v", err)
	}
	if got != "Honestly, it's the snap." {
		t.Fatalf("reply not trimmed: %q", got)
	}

	if len(replyModel.lastInput) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(replyModel.lastInput))
	}
	system := replyModel.lastInput[0]
	if system.Role != schema.System || !strings.Contains(system.Content, "You ARE Marcus Webb.") {
		t.Fatalf("unexpected system message: %+v", system)
	}
	if !strings.Contains(system.Content, `"earlier remark"`) {
		t.Fatal("system message missing restated prior statement")
	}
	user := replyModel.lastInput[1]
	if user.Role != schema.User || !strings.Contains(user.Content, "Moderator's current question: What matters most?") {
		t.Fatalf("unexpected user message: %+v", user)
	}
}

func TestGenerateReplyPropagatesModelFailure(t *testing.T) {
	svc := newTestService(t, &stubChatModel{err: errors.New("capacity exhausted")}, &stubChatModel{})

	_, err := svc.GenerateReply(context.Background(), marcus, "premium chocolate", nil, nil, "Q")
	if err == nil {
		t.Fatal("expected error from failing model")
	}
}

func TestSelectRespondersParsesNames(t *testing.T) {
	selectModel := &stubChatModel{reply: `["David", "Marcus Webb"]`}
	svc := newTestService(t, &stubChatModel{}, selectModel)

	ids, err := svc.SelectResponders(context.Background(), "Q", panel(), nil, conversation.Memory{})
	if err != nil {
		t.Fatalf("SelectResponders err: %v", err)
	}
	if !reflect.DeepEqual(ids, []int{3, 1}) {
		t.Fatalf("unexpected ids: %v", ids)
	}

	if len(selectModel.lastInput) != 1 || selectModel.lastInput[0].Role != schema.User {
		t.Fatalf("selection call should be a single user message, got %+v", selectModel.lastInput)
	}
	if !strings.Contains(selectModel.lastInput[0].Content, "Return ONLY a JSON array") {
		t.Fatal("selection prompt missing output instruction")
	}
}

func TestSelectRespondersFallsBackOnGarbage(t *testing.T) {
	svc := newTestService(t, &stubChatModel{}, &stubChatModel{reply: "I'd rather not pick anyone."})

	ids, err := svc.SelectResponders(context.Background(), "Q", panel(), nil, conversation.Memory{})
	if err != nil {
		t.Fatalf("SelectResponders err: %v", err)
	}
	if !reflect.DeepEqual(ids, []int{1, 2, 3}) {
		t.Fatalf("expected first-3 fallback, got %v", ids)
	}
}

func TestSelectRespondersPropagatesModelFailure(t *testing.T) {
	svc := newTestService(t, &stubChatModel{}, &stubChatModel{err: errors.New("timeout")})

	if _, err := svc.SelectResponders(context.Background(), "Q", panel(), nil, conversation.Memory{}); err == nil {
		t.Fatal("expected error from failing selection model")
	}
}

package service

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/models"
	"github.com/mindstep-labs/mindstep-api/internal/repository"
	"github.com/mindstep-labs/mindstep-api/pkg/ai"
)

type echoResponder struct {
	calls []string
}

func (r *echoResponder) Respond(ctx context.Context, question string) (string, error) {
	r.calls = append(r.calls, question)
	return "echo: " + question, nil
}

func newMentorFixture(t *testing.T, dsn string, responder ai.Responder) (*mentorService, *miniredis.Miniredis) {
	t.Helper()

	mini, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mini.Close)

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.MentorMessage{}))

	svc := NewMentorService(
		repository.NewMentorRepository(db),
		responder,
		redisClient,
		"mindstep:test",
		nil,
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
		0,
	)
	return svc.(*mentorService), mini
}

func TestMentorAskStoresBothTurns(t *testing.T) {
	responder := &echoResponder{}
	svc, mini := newMentorFixture(t, "file:mentor_ask?mode=memory&cache=shared", responder)
	ctx := context.Background()

	reply, err := svc.Ask(ctx, 1, dto.MentorAskRequest{Message: "How do I become a data scientist?"})
	require.NoError(t, err)
	require.Equal(t, models.MentorRoleMentor, reply.Role)
	require.Equal(t, "echo: How do I become a data scientist?", reply.Content)
	require.Equal(t, []string{"How do I become a data scientist?"}, responder.calls)

	history, err := svc.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	require.Equal(t, models.MentorRoleUser, history.Messages[0].Role)
	require.Equal(t, models.MentorRoleMentor, history.Messages[1].Role)

	// The reply lands in the last-message cache.
	require.True(t, mini.Exists("mindstep:test:mentor:last:1"))
}

func TestMentorAskSanitizesMarkup(t *testing.T) {
	responder := &echoResponder{}
	svc, _ := newMentorFixture(t, "file:mentor_sanitize?mode=memory&cache=shared", responder)

	_, err := svc.Ask(context.Background(), 1, dto.MentorAskRequest{
		Message: "<script>alert(1)</script>tell me about react",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"tell me about react"}, responder.calls)
}

func TestMentorAskRejectsMarkupOnlyMessage(t *testing.T) {
	svc, _ := newMentorFixture(t, "file:mentor_empty?mode=memory&cache=shared", &echoResponder{})

	_, err := svc.Ask(context.Background(), 1, dto.MentorAskRequest{Message: "<b></b>"})
	require.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestMentorHistorySeedsGreeting(t *testing.T) {
	svc, _ := newMentorFixture(t, "file:mentor_greeting?mode=memory&cache=shared", &echoResponder{})
	ctx := context.Background()

	history, err := svc.History(ctx, 7)
	require.NoError(t, err)
	require.Len(t, history.Messages, 1)
	require.Equal(t, models.MentorRoleMentor, history.Messages[0].Role)
	require.Equal(t, ai.GreetingMessage, history.Messages[0].Content)

	// The greeting is persisted, not regenerated.
	again, err := svc.History(ctx, 7)
	require.NoError(t, err)
	require.Len(t, again.Messages, 1)
}

func TestMentorClearResetsConversation(t *testing.T) {
	svc, _ := newMentorFixture(t, "file:mentor_clear?mode=memory&cache=shared", &echoResponder{})
	ctx := context.Background()

	_, err := svc.Ask(ctx, 1, dto.MentorAskRequest{Message: "hello"})
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, 1))

	history, err := svc.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history.Messages, 1)
	require.Equal(t, ai.GreetingMessage, history.Messages[0].Content)
}

func TestMentorEventsIgnoreOwnNode(t *testing.T) {
	svc, _ := newMentorFixture(t, "file:mentor_node?mode=memory&cache=shared", &echoResponder{})

	received := make(chan dto.MentorMessageResponse, 1)
	client := &mentorClient{
		send:    received,
		options: MentorConnectionOptions{UserID: 3},
		service: svc,
		closed:  make(chan struct{}),
	}
	svc.hub.register(client)
	defer svc.hub.unregister(client)

	own := []byte(`{"source":"` + svc.nodeID + `","user_id":3,"message":{"role":"mentor","content":"dup"}}`)
	svc.handleEvent(own)
	require.Empty(t, received)

	remote := []byte(`{"source":"other-node","user_id":3,"message":{"role":"mentor","content":"fanout"}}`)
	svc.handleEvent(remote)
	require.Len(t, received, 1)
	require.Equal(t, "fanout", (<-received).Content)
}

func TestCannedResponderKeywordOrder(t *testing.T) {
	responder := ai.NewCannedResponder()
	ctx := context.Background()

	for _, tc := range []struct {
		question string
		contains string
	}{
		{"How do I get into Data Science?", "data science"},
		{"prep for coding interviews please", "interview"},
		{"should I learn React?", "React"},
		{"roadmap for an AI ML Engineer", "AI/ML"},
	} {
		reply, err := responder.Respond(ctx, tc.question)
		require.NoError(t, err)
		require.NotEmpty(t, reply, tc.question)
	}

	fallback, err := responder.Respond(ctx, "what is the meaning of life")
	require.NoError(t, err)
	require.NotEmpty(t, fallback)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mindstep-labs/mindstep-api/internal/dto"
	"github.com/mindstep-labs/mindstep-api/internal/models"
	"github.com/mindstep-labs/mindstep-api/internal/observability"
	"github.com/mindstep-labs/mindstep-api/internal/repository"
	"github.com/mindstep-labs/mindstep-api/pkg/ai"
)

const (
	mentorRedisTTL       = 30 * time.Minute
	mentorSendBufferSize = 32
	mentorHistoryLimit   = 200
)

// ErrEmptyQuestion indicates the message was empty after sanitization.
var ErrEmptyQuestion = errors.New("message empty after sanitization")

// MentorConnectionOptions wraps metadata extracted during the HTTP upgrade.
type MentorConnectionOptions struct {
	UserID        uint
	CorrelationID string
	Context       context.Context
}

// MentorService manages mentor conversations over websocket and REST.
type MentorService interface {
	ServeConnection(conn *websocket.Conn, opts MentorConnectionOptions)
	Ask(ctx context.Context, userID uint, payload dto.MentorAskRequest) (dto.MentorMessageResponse, error)
	History(ctx context.Context, userID uint) (dto.MentorHistoryResponse, error)
	Clear(ctx context.Context, userID uint) error
	Start(ctx context.Context)
}

type mentorService struct {
	repo        repository.MentorRepository
	responder   ai.Responder
	redis       *redis.Client
	redisStream string
	redisCache  string
	nats        *nats.Conn
	natsSubject string
	validator   *validator.Validate
	logger      zerolog.Logger
	sanitizer   *bluemonday.Policy
	hub         *mentorHub
	nodeID      string
	typingDelay time.Duration
	now         func() time.Time
}

// mentorHub tracks active websocket clients per user and fans replies out.
type mentorHub struct {
	mu    sync.RWMutex
	users map[uint]map[*mentorClient]struct{}
	log   zerolog.Logger
}

type mentorClient struct {
	conn    *websocket.Conn
	send    chan dto.MentorMessageResponse
	options MentorConnectionOptions
	service *mentorService
	closed  chan struct{}
	once    sync.Once
	baseCtx context.Context
}

type mentorEvent struct {
	Source  string                    `json:"source"`
	UserID  uint                      `json:"user_id"`
	Message dto.MentorMessageResponse `json:"message"`
	SentAt  time.Time                 `json:"sent_at"`
}

// NewMentorService creates a websocket mentor service instance.
func NewMentorService(repo repository.MentorRepository, responder ai.Responder, redisClient *redis.Client, channelBase string, natsConn *nats.Conn, validate *validator.Validate, logger zerolog.Logger, typingDelay time.Duration) MentorService {
	sanitizer := bluemonday.StrictPolicy()

	hub := &mentorHub{
		users: make(map[uint]map[*mentorClient]struct{}),
		log:   logger.With().Str("component", "mentor_hub").Logger(),
	}

	streamChannel := ""
	cachePrefix := ""
	natsSubject := ""
	if channelBase != "" {
		streamChannel = channelBase + ":mentor"
		cachePrefix = channelBase + ":mentor:last"
		natsSubject = strings.ReplaceAll(channelBase, ":", ".") + ".mentor"
	}

	return &mentorService{
		repo:        repo,
		responder:   responder,
		redis:       redisClient,
		redisStream: streamChannel,
		redisCache:  cachePrefix,
		nats:        natsConn,
		natsSubject: natsSubject,
		validator:   validate,
		logger:      logger.With().Str("component", "mentor_service").Logger(),
		sanitizer:   sanitizer,
		hub:         hub,
		nodeID:      uuid.NewString(),
		typingDelay: typingDelay,
		now:         time.Now,
	}
}

func (s *mentorService) Start(ctx context.Context) {
	if s.redis != nil && s.redisStream != "" {
		go s.consumeRedis(ctx)
	}
	if s.nats != nil && s.natsSubject != "" {
		go s.consumeNATS(ctx)
	}
}

func (s *mentorService) ServeConnection(conn *websocket.Conn, opts MentorConnectionOptions) {
	baseCtx := opts.Context
	if baseCtx == nil {
		baseCtx = context.Background()
	}

	client := &mentorClient{
		conn:    conn,
		send:    make(chan dto.MentorMessageResponse, mentorSendBufferSize),
		options: opts,
		service: s,
		closed:  make(chan struct{}),
		baseCtx: baseCtx,
	}

	s.hub.register(client)
	observability.MentorConnectionsTotal().Inc()

	if last := s.fetchLastMessage(baseCtx, opts.UserID); last != nil {
		select {
		case client.send <- *last:
		default:
			s.logger.Debug().Uint("user_id", opts.UserID).Msg("dropping cached mentor message due to slow consumer")
		}
	}

	go client.writer()
	client.reader()
}

// Ask stores the question, produces a reply after the typing delay and
// stores and broadcasts it.
func (s *mentorService) Ask(ctx context.Context, userID uint, payload dto.MentorAskRequest) (dto.MentorMessageResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MentorMessageResponse{}, err
	}

	clean := strings.TrimSpace(s.sanitizer.Sanitize(payload.Message))
	if clean == "" {
		return dto.MentorMessageResponse{}, ErrEmptyQuestion
	}

	question := models.MentorMessage{
		UserID:    userID,
		Role:      models.MentorRoleUser,
		Content:   clean,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, &question); err != nil {
		return dto.MentorMessageResponse{}, err
	}
	s.broadcast(userID, dto.NewMentorMessageResponse(question))

	if s.typingDelay > 0 {
		select {
		case <-time.After(s.typingDelay):
		case <-ctx.Done():
			return dto.MentorMessageResponse{}, ctx.Err()
		}
	}

	answer, err := s.responder.Respond(ctx, clean)
	if err != nil {
		return dto.MentorMessageResponse{}, err
	}

	reply := models.MentorMessage{
		UserID:    userID,
		Role:      models.MentorRoleMentor,
		Content:   answer,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, &reply); err != nil {
		return dto.MentorMessageResponse{}, err
	}

	response := dto.NewMentorMessageResponse(reply)
	s.cacheLastMessage(ctx, userID, response)
	s.broadcast(userID, response)
	if err := s.publish(ctx, userID, response); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish mentor event")
	}

	observability.MentorMessagesSent().WithLabelValues(models.MentorRoleMentor).Inc()

	return response, nil
}

// History returns the stored conversation, opening with the greeting when
// the user has never talked to the mentor.
func (s *mentorService) History(ctx context.Context, userID uint) (dto.MentorHistoryResponse, error) {
	messages, err := s.repo.ListByUserID(ctx, userID, mentorHistoryLimit)
	if err != nil {
		return dto.MentorHistoryResponse{}, err
	}

	if len(messages) == 0 {
		greeting := models.MentorMessage{
			UserID:    userID,
			Role:      models.MentorRoleMentor,
			Content:   ai.GreetingMessage,
			CreatedAt: s.now(),
		}
		if err := s.repo.Create(ctx, &greeting); err != nil {
			return dto.MentorHistoryResponse{}, err
		}
		messages = []models.MentorMessage{greeting}
	}

	return dto.NewMentorHistoryResponse(messages), nil
}

func (s *mentorService) Clear(ctx context.Context, userID uint) error {
	return s.repo.DeleteByUserID(ctx, userID)
}

func (s *mentorService) cacheLastMessage(ctx context.Context, userID uint, message dto.MentorMessageResponse) {
	if s.redis == nil || s.redisCache == "" {
		return
	}

	payload, err := json.Marshal(message)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to marshal mentor message for cache")
		return
	}

	key := fmt.Sprintf("%s:%d", s.redisCache, userID)
	if err := s.redis.Set(ctx, key, payload, mentorRedisTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache mentor message")
	}
}

func (s *mentorService) fetchLastMessage(ctx context.Context, userID uint) *dto.MentorMessageResponse {
	if s.redis == nil || s.redisCache == "" {
		return nil
	}

	key := fmt.Sprintf("%s:%d", s.redisCache, userID)
	result, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		return nil
	}

	var message dto.MentorMessageResponse
	if err := json.Unmarshal([]byte(result), &message); err != nil {
		s.logger.Warn().Err(err).Msg("failed to unmarshal cached mentor message")
		return nil
	}

	return &message
}

func (s *mentorService) broadcast(userID uint, message dto.MentorMessageResponse) {
	s.hub.broadcast(userID, message)
}

func (s *mentorService) publish(ctx context.Context, userID uint, message dto.MentorMessageResponse) error {
	event := mentorEvent{
		Source:  s.nodeID,
		UserID:  userID,
		Message: message,
		SentAt:  time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if s.redis != nil && s.redisStream != "" {
		if err := s.redis.Publish(ctx, s.redisStream, payload).Err(); err != nil {
			return err
		}
	}

	if s.nats != nil && s.natsSubject != "" {
		if err := s.nats.Publish(s.natsSubject, payload); err != nil {
			return err
		}
	}

	return nil
}

func (s *mentorService) consumeRedis(ctx context.Context) {
	pubsub := s.redis.Subscribe(ctx, s.redisStream)
	defer func() {
		_ = pubsub.Close()
	}()
	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			s.logger.Error().Err(err).Msg("mentor redis subscription closed")
			return
		}
		s.handleEvent([]byte(msg.Payload))
	}
}

func (s *mentorService) consumeNATS(ctx context.Context) {
	sub, err := s.nats.QueueSubscribe(s.natsSubject, "mindstep-mentor", func(msg *nats.Msg) {
		s.handleEvent(msg.Data)
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to subscribe to nats mentor subject")
		return
	}
	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to drain mentor nats subscription")
		}
	}()
}

func (s *mentorService) handleEvent(data []byte) {
	var event mentorEvent
	if err := json.Unmarshal(data, &event); err != nil {
		s.logger.Warn().Err(err).Msg("invalid mentor event")
		return
	}

	if event.Source == s.nodeID {
		return
	}

	observability.MentorMessagesSent().WithLabelValues(event.Message.Role).Inc()
	s.broadcast(event.UserID, event.Message)
}

func (h *mentorHub) register(client *mentorClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := client.options.UserID
	if _, exists := h.users[userID]; !exists {
		h.users[userID] = make(map[*mentorClient]struct{})
	}
	h.users[userID][client] = struct{}{}
	h.log.Debug().Uint("user_id", userID).Msg("mentor client connected")
}

func (h *mentorHub) unregister(client *mentorClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID := client.options.UserID
	if clients, ok := h.users[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.users, userID)
		}
	}
	h.log.Debug().Uint("user_id", userID).Msg("mentor client disconnected")
}

func (h *mentorHub) broadcast(userID uint, message dto.MentorMessageResponse) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.users[userID] {
		select {
		case client.send <- message:
		default:
			h.log.Warn().Uint("user_id", userID).Msg("dropping mentor message for slow client")
		}
	}
}

func (c *mentorClient) reader() {
	defer c.close()

	connCtx := c.baseCtx
	if connCtx == nil {
		connCtx = context.Background()
	}

	for {
		var payload dto.MentorAskRequest
		if err := c.conn.ReadJSON(&payload); err != nil {
			c.service.logger.Debug().Err(err).Msg("mentor read loop ended")
			return
		}

		if _, err := c.service.Ask(connCtx, c.options.UserID, payload); err != nil {
			c.service.logger.Warn().Err(err).Msg("failed to process mentor question")
			continue
		}
	}
}

func (c *mentorClient) writer() {
	defer c.close()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				c.service.logger.Debug().Err(err).Msg("mentor write loop terminated")
				return
			}
		case <-time.After(30 * time.Second):
			if err := c.conn.WriteMessage(websocket.PingMessage, []byte("keepalive")); err != nil {
				c.service.logger.Debug().Err(err).Msg("mentor ping failed")
				return
			}
		case <-c.closed:
			return
		}
	}
}

func (c *mentorClient) close() {
	c.once.Do(func() {
		close(c.closed)
		c.service.hub.unregister(c)
		_ = c.conn.Close()
	})
}

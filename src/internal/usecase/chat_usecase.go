package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"
	"marketplace-service/src/internal/model/converter"
	"marketplace-service/src/internal/repository"
	httpError "marketplace-service/src/pkg/http-error"
	"marketplace-service/src/pkg/log"
	"marketplace-service/src/pkg/metrics"
	"marketplace-service/src/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultHistoryLimit = 50
	lastMessageTTL      = 24 * time.Hour
)

type ChatUseCase struct {
	Log            log.Log
	Validate       *validator.Validate
	ChatRepository repository.ChatStore
	Redis          redis.UniversalClient
	Metrics        *metrics.Metrics
}

func NewChatUseCase(
	logger log.Log,
	validate *validator.Validate,
	chatRepository repository.ChatStore,
	redisClient redis.UniversalClient,
	m *metrics.Metrics,
) *ChatUseCase {
	return &ChatUseCase{
		Log:            logger,
		Validate:       validate,
		ChatRepository: chatRepository,
		Redis:          redisClient,
		Metrics:        m,
	}
}

// RoomID is deterministic: both participants compute the same room without a
// server-assigned id.
func RoomID(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return ids[0] + "_" + ids[1]
}

func (c *ChatUseCase) SendMessage(ctx context.Context, request *model.SendMessageRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		c.Log.Error("chat-usecase", errObj.Message, "SendMessage", utils.ConvertString(err))
		return result
	}

	if strings.TrimSpace(request.Body) == "" {
		errObj := httpError.NewBadRequest()
		errObj.Message = "message body must not be blank"
		result.Error = errObj
		return result
	}

	if request.SenderID == request.RecipientID {
		errObj := httpError.NewBadRequest()
		errObj.Message = "cannot send a message to yourself"
		result.Error = errObj
		return result
	}

	msg := &entity.ChatMessage{
		MessageID: uuid.NewString(),
		RoomID:    RoomID(request.SenderID, request.RecipientID),
		SenderID:  request.SenderID,
		Body:      request.Body,
		CreatedAt: time.Now(),
	}

	if err := c.ChatRepository.Insert(ctx, msg); err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to send message"
		result.Error = errObj
		c.Metrics.Errors.WithLabelValues("chat").Inc()
		c.Log.Error("chat-usecase", fmt.Sprintf("Error insert message: %v", err), "SendMessage", utils.ConvertString(err))
		return result
	}
	c.Metrics.ChatMessages.Inc()

	response := converter.MessageToResponse(msg)

	if c.Redis != nil {
		key := fmt.Sprintf("CHAT:HISTORY:%s", msg.RoomID)
		if err := c.Redis.Del(ctx, key).Err(); err != nil {
			c.Log.Error("chat-usecase", fmt.Sprintf("Failed invalidate history cache: %v", err), "SendMessage", "")
		}
		if payload, err := json.Marshal(response); err == nil {
			lastKey := fmt.Sprintf("CHAT:LASTMSG:%s", msg.RoomID)
			if redisErr := c.Redis.Set(ctx, lastKey, payload, lastMessageTTL).Err(); redisErr != nil {
				c.Log.Error("chat-usecase", fmt.Sprintf("Failed refresh last message: %v", redisErr), "SendMessage", "")
			}
		}
	}

	result.Data = response
	return result
}

// LastMessage serves the room preview line: the most recent message between
// the two participants, from the key refreshed on every send, falling back to
// storage when the key expired.
func (c *ChatUseCase) LastMessage(ctx context.Context, request *model.LastMessageRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	roomID := RoomID(request.UserID, request.OtherID)
	key := fmt.Sprintf("CHAT:LASTMSG:%s", roomID)

	if c.Redis != nil {
		if cached, err := c.Redis.Get(ctx, key).Result(); err == nil && cached != "" {
			var message model.ChatMessageResponse
			if err := json.Unmarshal([]byte(cached), &message); err == nil {
				result.Data = model.LastMessageResponse{RoomID: roomID, Message: &message}
				return result
			}
		}
	}

	history, err := c.ChatRepository.History(ctx, roomID, 1)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to load last message"
		result.Error = errObj
		c.Metrics.Errors.WithLabelValues("chat").Inc()
		c.Log.Error("chat-usecase", fmt.Sprintf("Error load last message: %v", err), "LastMessage", utils.ConvertString(err))
		return result
	}

	response := model.LastMessageResponse{RoomID: roomID}
	if len(history) > 0 {
		message := converter.MessageToResponse(&history[len(history)-1])
		response.Message = &message

		if c.Redis != nil {
			if payload, err := json.Marshal(message); err == nil {
				if redisErr := c.Redis.Set(ctx, key, payload, lastMessageTTL).Err(); redisErr != nil {
					c.Log.Error("chat-usecase", fmt.Sprintf("Failed cache last message: %v", redisErr), "LastMessage", "")
				}
			}
		}
	}

	result.Data = response
	return result
}

func (c *ChatUseCase) History(ctx context.Context, request *model.ChatHistoryRequest) utils.Result {
	var result utils.Result

	if err := c.Validate.Struct(request); err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = fmt.Sprintf("validation error: %v", err.Error())
		result.Error = errObj
		return result
	}

	limit := request.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	roomID := RoomID(request.UserID, request.OtherID)
	key := fmt.Sprintf("CHAT:HISTORY:%s", roomID)

	if c.Redis != nil {
		if cached, err := c.Redis.Get(ctx, key).Result(); err == nil && cached != "" {
			var messages []model.ChatMessageResponse
			if err := json.Unmarshal([]byte(cached), &messages); err == nil {
				result.Data = model.ChatHistoryResponse{RoomID: roomID, Messages: messages}
				return result
			}
		}
	}

	history, err := c.ChatRepository.History(ctx, roomID, limit)
	if err != nil {
		errObj := httpError.NewInternalServerError()
		errObj.Message = "Failed to load chat history"
		result.Error = errObj
		c.Metrics.Errors.WithLabelValues("chat").Inc()
		c.Log.Error("chat-usecase", fmt.Sprintf("Error load history: %v", err), "History", utils.ConvertString(err))
		return result
	}

	messages := make([]model.ChatMessageResponse, 0, len(history))
	for i := range history {
		messages = append(messages, converter.MessageToResponse(&history[i]))
	}

	if c.Redis != nil {
		if payload, err := json.Marshal(messages); err == nil {
			if redisErr := c.Redis.Set(ctx, key, payload, 5*time.Minute).Err(); redisErr != nil {
				c.Log.Error("chat-usecase", fmt.Sprintf("Failed cache history: %v", redisErr), "History", "")
			}
		}
	}

	result.Data = model.ChatHistoryResponse{RoomID: roomID, Messages: messages}
	return result
}

package booking

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"holdco-backend/internal/model"
)

// draftTTL bounds how long a step-one draft survives without step two.
// No reservation hold is taken during the window; the receiving backend
// resolves conflicting bookings for the same slot.
const draftTTL = 30 * time.Minute

var ErrDraftNotFound = errors.New("booking: draft not found or expired")

// Stepper stores the state between the two booking steps in Redis.
type Stepper struct {
	rdb *redis.Client
}

func NewStepper(rdb *redis.Client) *Stepper {
	return &Stepper{rdb: rdb}
}

// Begin stores the step-one draft and returns its ID for step two.
func (s *Stepper) Begin(ctx context.Context, req model.BookingRequest) (*model.BookingDraft, error) {
	draft := &model.BookingDraft{
		ID:        uuid.NewString(),
		Request:   req,
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	// redis/go-redis/v9: Set with TTL; abandoned drafts expire on their own.
	if err := s.rdb.Set(ctx, "booking:draft:"+draft.ID, data, draftTTL).Err(); err != nil {
		return nil, err
	}
	return draft, nil
}

// Complete consumes the draft for step two and returns it. The draft is
// deleted first, so two concurrent payment submissions for the same draft
// cannot both complete.
func (s *Stepper) Complete(ctx context.Context, draftID string) (*model.BookingDraft, error) {
	key := "booking:draft:" + draftID

	// redis/go-redis/v9: GetDel reads and removes atomically.
	data, err := s.rdb.GetDel(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}

	var draft model.BookingDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

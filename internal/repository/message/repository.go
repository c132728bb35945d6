package message

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis"
	"github.com/xpanvictor/linguabridge/internal/types"
	"github.com/xpanvictor/linguabridge/pkg/Logger"
	"gorm.io/gorm"
)

// GormMessageRepo persists messages in MySQL and mirrors the most recent
// ones per room into a redis sorted set (scored by timestamp) so history
// reads normally skip the database. The database stays the source of truth;
// the cache is best-effort on both write and read.
type GormMessageRepo struct {
	db         *gorm.DB
	rc         *redis.Client
	cacheLimit int
	logger     *Logger.Logger
}

func NewGormMessageRepo(db *gorm.DB, rc *redis.Client, cacheLimit int, logger *Logger.Logger) *GormMessageRepo {
	if cacheLimit <= 0 {
		cacheLimit = 20
	}
	return &GormMessageRepo{db: db, rc: rc, cacheLimit: cacheLimit, logger: logger}
}

func roomMsgListKey(roomID string) string {
	return fmt.Sprintf("room:%s:msgs", roomID)
}

// CreateMessage appends the message and refreshes the room's recent cache.
func (g *GormMessageRepo) CreateMessage(ctx context.Context, msg types.Message) (*types.Message, error) {
	var entity MessageEntity
	entity.FromDomain(msg)

	if err := g.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return nil, fmt.Errorf("storing message: %w", err)
	}

	if g.rc != nil {
		g.cacheMessage(entity)
	}

	saved := entity.ToDomain()
	return &saved, nil
}

func (g *GormMessageRepo) cacheMessage(entity MessageEntity) {
	data, err := json.Marshal(entity)
	if err != nil {
		g.logger.Errorf("marshal message %s for cache: %v", entity.ID, err)
		return
	}
	key := roomMsgListKey(entity.RoomID)
	if err := g.rc.ZAdd(key, redis.Z{
		Score:  float64(entity.CreatedAt.UnixNano()),
		Member: string(data),
	}).Err(); err != nil {
		g.logger.Errorf("cache message %s: %v", entity.ID, err)
		return
	}
	// Trim to the newest cacheLimit entries.
	if err := g.rc.ZRemRangeByRank(key, 0, int64(-(g.cacheLimit + 1))).Err(); err != nil {
		g.logger.Errorf("trim cache for room %s: %v", entity.RoomID, err)
	}
}

// ListRoomMessages returns up to limit most recent messages for the room,
// oldest first.
func (g *GormMessageRepo) ListRoomMessages(ctx context.Context, roomID string, limit int) ([]types.Message, error) {
	if limit <= 0 {
		limit = g.cacheLimit
	}

	if g.rc != nil && limit <= g.cacheLimit {
		if msgs, ok := g.listFromCache(roomID, limit); ok {
			return msgs, nil
		}
	}

	var entities []MessageEntity
	err := g.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entities).Error
	if err != nil {
		return nil, fmt.Errorf("loading room history: %w", err)
	}

	return chronological(entities), nil
}

func (g *GormMessageRepo) listFromCache(roomID string, limit int) ([]types.Message, bool) {
	members, err := g.rc.ZRange(roomMsgListKey(roomID), int64(-limit), -1).Result()
	if err != nil || len(members) == 0 {
		return nil, false
	}
	msgs := make([]types.Message, 0, len(members))
	for _, m := range members {
		var entity MessageEntity
		if err := json.Unmarshal([]byte(m), &entity); err != nil {
			g.logger.Errorf("decode cached message for room %s: %v", roomID, err)
			return nil, false
		}
		msgs = append(msgs, entity.ToDomain())
	}
	return msgs, true
}

// chronological flips a newest-first query result into oldest-first order.
func chronological(entities []MessageEntity) []types.Message {
	msgs := make([]types.Message, len(entities))
	for i, e := range entities {
		msgs[len(entities)-1-i] = e.ToDomain()
	}
	return msgs
}

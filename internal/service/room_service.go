package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/hostel-portal-api/internal/dto"
	"github.com/noah-isme/hostel-portal-api/internal/models"
	appErrors "github.com/noah-isme/hostel-portal-api/pkg/errors"
)

const (
	roomsCacheKey  = "hostel:rooms"
	blocksCacheKey = "hostel:blocks"
)

type roomClient interface {
	Rooms(ctx context.Context) ([]models.Room, error)
	Blocks(ctx context.Context) ([]models.Block, error)
	CreateRoom(ctx context.Context, fields map[string]interface{}) (*models.Room, error)
	UpdateRoom(ctx context.Context, roomID string, fields map[string]interface{}) (*models.Room, error)
	DeleteRoom(ctx context.Context, roomID string) error
}

type roomCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

type cacheObserver interface {
	RecordCacheOperation(hit bool)
}

// RoomService manages the room inventory. Reads go through a short-lived
// cache since the inventory only changes through admin writes, which
// invalidate it.
type RoomService struct {
	client   roomClient
	cache    roomCache
	metrics  cacheObserver
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewRoomService constructs the service.
func NewRoomService(client roomClient, cache roomCache, metrics cacheObserver, cacheTTL time.Duration, logger *zap.Logger) *RoomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &RoomService{client: client, cache: cache, metrics: metrics, cacheTTL: cacheTTL, logger: logger}
}

// Rooms lists the full inventory, cache-first.
func (s *RoomService) Rooms(ctx context.Context) ([]models.Room, error) {
	if s.cache != nil {
		var cached []models.Room
		if err := s.cache.Get(ctx, roomsCacheKey, &cached); err == nil {
			s.recordCache(true)
			return cached, nil
		}
		s.recordCache(false)
	}

	rooms, err := s.client.Rooms(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, roomsCacheKey, rooms)
	return rooms, nil
}

// Blocks lists block-level capacity summaries, cache-first.
func (s *RoomService) Blocks(ctx context.Context) ([]models.Block, error) {
	if s.cache != nil {
		var cached []models.Block
		if err := s.cache.Get(ctx, blocksCacheKey, &cached); err == nil {
			s.recordCache(true)
			return cached, nil
		}
		s.recordCache(false)
	}

	blocks, err := s.client.Blocks(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, blocksCacheKey, blocks)
	return blocks, nil
}

// Create registers a new room and invalidates the inventory cache.
func (s *RoomService) Create(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error) {
	fields := map[string]interface{}{
		"block":      req.Block,
		"roomNumber": req.RoomNumber,
		"capacity":   req.Capacity,
	}
	if req.Gender != "" {
		fields["gender"] = req.Gender
	}
	room, err := s.client.CreateRoom(ctx, fields)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return room, nil
}

// Update patches room attributes; only the provided fields travel upstream.
func (s *RoomService) Update(ctx context.Context, roomID string, req dto.UpdateRoomRequest) (*models.Room, error) {
	fields := map[string]interface{}{}
	if req.Block != nil {
		fields["block"] = *req.Block
	}
	if req.RoomNumber != nil {
		fields["roomNumber"] = *req.RoomNumber
	}
	if req.Capacity != nil {
		fields["capacity"] = *req.Capacity
	}
	if req.Gender != nil {
		fields["gender"] = *req.Gender
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}
	if len(fields) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}

	room, err := s.client.UpdateRoom(ctx, roomID, fields)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return room, nil
}

// Delete removes a room and invalidates the inventory cache.
func (s *RoomService) Delete(ctx context.Context, roomID string) error {
	if err := s.client.DeleteRoom(ctx, roomID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *RoomService) recordCache(hit bool) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit)
	}
}

func (s *RoomService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Sugar().Warnw("cache write failed", "key", key, "error", err)
	}
}

func (s *RoomService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, roomsCacheKey, blocksCacheKey); err != nil {
		s.logger.Sugar().Warnw("cache invalidation failed", "error", err)
	}
}

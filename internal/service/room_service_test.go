package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hostel-portal-api/internal/dto"
	"github.com/noah-isme/hostel-portal-api/internal/models"
	appErrors "github.com/noah-isme/hostel-portal-api/pkg/errors"
)

type fakeRoomClient struct {
	rooms       []models.Room
	blocks      []models.Block
	roomsCalls  int
	blocksCalls int
}

func (f *fakeRoomClient) Rooms(ctx context.Context) ([]models.Room, error) {
	f.roomsCalls++
	return f.rooms, nil
}

func (f *fakeRoomClient) Blocks(ctx context.Context) ([]models.Block, error) {
	f.blocksCalls++
	return f.blocks, nil
}

func (f *fakeRoomClient) CreateRoom(ctx context.Context, fields map[string]interface{}) (*models.Room, error) {
	return &models.Room{ID: "r-new"}, nil
}

func (f *fakeRoomClient) UpdateRoom(ctx context.Context, roomID string, fields map[string]interface{}) (*models.Room, error) {
	return &models.Room{ID: roomID}, nil
}

func (f *fakeRoomClient) DeleteRoom(ctx context.Context, roomID string) error {
	return nil
}

type fakeRoomCache struct {
	store map[string][]byte
}

func newFakeRoomCache() *fakeRoomCache {
	return &fakeRoomCache{store: map[string][]byte{}}
}

func (f *fakeRoomCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := f.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeRoomCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = raw
	return nil
}

func (f *fakeRoomCache) Invalidate(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.store, key)
	}
	return nil
}

type cacheOpsRecorder struct {
	hits   int
	misses int
}

func (r *cacheOpsRecorder) RecordCacheOperation(hit bool) {
	if hit {
		r.hits++
	} else {
		r.misses++
	}
}

func TestRoomServiceCacheMissFetchesUpstream(t *testing.T) {
	client := &fakeRoomClient{rooms: []models.Room{{ID: "r1", Block: "A", Capacity: 4}}}
	recorder := &cacheOpsRecorder{}
	svc := NewRoomService(client, newFakeRoomCache(), recorder, time.Minute, nil)

	rooms, err := svc.Rooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, 1, client.roomsCalls)
	assert.Equal(t, 0, recorder.hits)
	assert.Equal(t, 1, recorder.misses)
}

func TestRoomServiceCacheHitSkipsUpstream(t *testing.T) {
	client := &fakeRoomClient{rooms: []models.Room{{ID: "r1"}}}
	recorder := &cacheOpsRecorder{}
	svc := NewRoomService(client, newFakeRoomCache(), recorder, time.Minute, nil)

	_, err := svc.Rooms(context.Background())
	require.NoError(t, err)

	rooms, err := svc.Rooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, 1, client.roomsCalls)
	assert.Equal(t, 1, recorder.hits)
	assert.Equal(t, 1, recorder.misses)
}

func TestRoomServiceWriteInvalidatesCache(t *testing.T) {
	client := &fakeRoomClient{blocks: []models.Block{{Name: "A", TotalRooms: 10}}}
	svc := NewRoomService(client, newFakeRoomCache(), nil, time.Minute, nil)

	_, err := svc.Blocks(context.Background())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.CreateRoomRequest{Block: "A", RoomNumber: "A-12", Capacity: 4})
	require.NoError(t, err)

	_, err = svc.Blocks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, client.blocksCalls)
}

func TestRoomServiceUpdateRequiresFields(t *testing.T) {
	svc := NewRoomService(&fakeRoomClient{}, nil, nil, time.Minute, nil)

	_, err := svc.Update(context.Background(), "r1", dto.UpdateRoomRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

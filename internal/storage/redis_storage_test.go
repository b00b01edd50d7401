package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charging-platform/ochp-roaming/internal/config"
)

type tariff struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
}

func newMockStore(t *testing.T) (*RedisStore[tariff], redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	return NewRedisStore[tariff](db, "test", "tariffs"), mock
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient(config.RedisConfig{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}

func TestRedisStore_Keys(t *testing.T) {
	s := NewRedisStore[tariff](nil, "", "tariffs")
	assert.Equal(t, "ochp:tariffs", s.hash)
	assert.Equal(t, "ochp:tariffs:ts", s.index)
}

func TestRedisStore_Put(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	value := tariff{ID: "T1", Price: 0.39}

	raw, err := s.encode(value, t0)
	require.NoError(t, err)

	mock.ExpectEvalSha(putScript.Hash(), []string{"test:tariffs", "test:tariffs:ts"}, "T1", raw, t0.UnixMicro()).
		SetVal(int64(1))
	ok, err := s.Put(ctx, "T1", value, t0)
	require.NoError(t, err)
	assert.True(t, ok)

	// 已有更晚的记录
	mock.ExpectEvalSha(putScript.Hash(), []string{"test:tariffs", "test:tariffs:ts"}, "T1", raw, t0.UnixMicro()).
		SetVal(int64(0))
	ok, err = s.Put(ctx, "T1", value, t0)
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectEvalSha(putScript.Hash(), []string{"test:tariffs", "test:tariffs:ts"}, "T1", raw, t0.UnixMicro()).
		SetErr(errors.New("connection reset"))
	_, err = s.Put(ctx, "T1", value, t0)
	assert.ErrorContains(t, err, "connection reset")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_Get(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	value := tariff{ID: "T1", Price: 0.39}
	raw, err := s.encode(value, t0)
	require.NoError(t, err)

	mock.ExpectHGet("test:tariffs", "T1").SetVal(raw)
	record, err := s.Get(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, "T1", record.Key)
	assert.Equal(t, value, record.Value)
	assert.True(t, t0.Equal(record.Timestamp))

	mock.ExpectHGet("test:tariffs", "T2").SetErr(redis.Nil)
	_, err = s.Get(ctx, "T2")
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectHGet("test:tariffs", "T3").SetVal("{broken")
	_, err = s.Get(ctx, "T3")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_List(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	rawB, _ := s.encode(tariff{ID: "B"}, t0)
	rawA, _ := s.encode(tariff{ID: "A"}, t0.Add(time.Hour))

	mock.ExpectHGetAll("test:tariffs").SetVal(map[string]string{"B": rawB, "A": rawA})
	records, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, keys(records))
	assert.Equal(t, "A", records[0].Value.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_ListSince(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	since := t0.Add(time.Minute)

	rawC, _ := s.encode(tariff{ID: "C"}, since)
	mock.ExpectZRangeByScore("test:tariffs:ts", &redis.ZRangeBy{
		Min: "1772366460000000",
		Max: "+inf",
	}).SetVal([]string{"C", "gone"})
	mock.ExpectHMGet("test:tariffs", "C", "gone").SetVal([]interface{}{rawC, nil})

	records, err := s.ListSince(ctx, since)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "C", records[0].Key)

	mock.ExpectZRangeByScore("test:tariffs:ts", &redis.ZRangeBy{
		Min: "1772366460000000",
		Max: "+inf",
	}).SetVal([]string{})
	records, err = s.ListSince(ctx, since)
	require.NoError(t, err)
	assert.Empty(t, records)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_ReplaceDeleteClearLen(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	keysArg := []string{"test:tariffs", "test:tariffs:ts"}

	later := t0.Add(time.Hour)
	rawLate, _ := s.encode(tariff{ID: "A", Price: 2}, later)
	mock.ExpectEvalSha(replaceScript.Hash(), keysArg, "A", rawLate, later.UnixMicro()).SetVal(int64(1))
	require.NoError(t, s.Replace(ctx, []Record[tariff]{
		{Key: "A", Value: tariff{ID: "A", Price: 1}, Timestamp: t0},
		{Key: "A", Value: tariff{ID: "A", Price: 2}, Timestamp: later},
	}))

	mock.ExpectEvalSha(deleteScript.Hash(), keysArg, "A").SetVal(int64(1))
	require.NoError(t, s.Delete(ctx, "A"))

	mock.ExpectHLen("test:tariffs").SetVal(3)
	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	mock.ExpectDel("test:tariffs", "test:tariffs:ts").SetVal(2)
	require.NoError(t, s.Clear(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

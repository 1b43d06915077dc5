package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"salary-predictor/internal/models"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisClient_GetErrors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	rc := &RedisClient{Client: client}
	ctx := context.Background()

	mock.ExpectGet("salary:prediction:k").SetErr(errors.New("READONLY"))

	_, found, err := rc.Get(ctx, "salary:prediction:k")
	require.Error(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClient_SetWithTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	rc := &RedisClient{Client: client}

	mock.ExpectSet("k", "v", 5*time.Minute).SetVal("OK")
	mock.ExpectDel("k").SetVal(1)

	require.NoError(t, rc.Set(context.Background(), "k", "v", 5*time.Minute))
	require.NoError(t, rc.Del(context.Background(), "k"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClient_PingFailure(t *testing.T) {
	client, mock := redismock.NewClientMock()
	rc := &RedisClient{Client: client}

	mock.ExpectPing().SetErr(errors.New("connection refused"))

	err := rc.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPredictionCache_GetDecodesStoredScore(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewPredictionCache(&RedisClient{Client: client}, "salary:prediction", time.Hour)

	mock.ExpectGet("salary:prediction:abc").SetVal(`{"raw":61163.49,"model_type":"LinearRegression"}`)
	mock.ExpectGet("salary:prediction:missing").RedisNil()

	score, found, err := cache.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, &models.CachedScore{Raw: 61163.49, ModelType: "LinearRegression"}, score)

	score, found, err = cache.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, score)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPredictionCache_EvictsUndecodableEntry(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewPredictionCache(&RedisClient{Client: client}, "salary:prediction", time.Hour)

	mock.ExpectGet("salary:prediction:abc").SetVal("not json")
	mock.ExpectDel("salary:prediction:abc").SetVal(1)

	_, found, err := cache.Get(context.Background(), "abc")
	require.Error(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPredictionCache_SetError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewPredictionCache(&RedisClient{Client: client}, "salary:prediction", time.Hour)

	mock.Regexp().ExpectSet("salary:prediction:abc", `.*`, time.Hour).SetErr(errors.New("OOM"))

	err := cache.Set(context.Background(), "abc", models.CachedScore{Raw: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set abc")
}

package advice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskdeck/internal/models"
)

const goodAdvice = `{
  "success": true,
  "advice": {
    "status_prediction": "Done",
    "confidence_score": 0.9,
    "priority_recommendation": {"level": "Low", "message": "No rush", "estimated_days": 2},
    "actionable_suggestions": ["Start early"],
    "risk_factors": [],
    "optimization_tips": [],
    "next_steps": ["Draft"]
  },
  "metadata": {"generated_at": "2026-03-01T12:00:00Z", "model_version": "1.2"}
}`

var sampleRequest = models.TaskAdviceRequest{TaskID: 7, Name: "Write report", Status: models.StatusNotDone, BoardID: 3}

// adviceServer answers /predict/advice with status and body and counts calls.
func adviceServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/predict/advice":
			calls.Add(1)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		case "/health":
			w.WriteHeader(status)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestGetTaskAdvice_Success(t *testing.T) {
	srv, _ := adviceServer(t, http.StatusOK, goodAdvice)
	c := NewClient(srv.URL)

	resp := c.GetTaskAdvice(context.Background(), sampleRequest)

	require.True(t, resp.Success)
	require.NotNil(t, resp.Advice)
	assert.Equal(t, models.PriorityLow, resp.Advice.PriorityRecommendation.Level)
	assert.Equal(t, "1.2", resp.Metadata.ModelVersion)
}

func TestGetTaskAdvice_FailuresAreValues(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server error", http.StatusInternalServerError, "boom", "AI service error: Internal Server Error"},
		{"not json", http.StatusOK, "<html>", msgMalformed},
		{"confidence out of range", http.StatusOK, `{"success":true,"advice":{"confidence_score":1.5,"priority_recommendation":{"level":"Low"}}}`, msgMalformed},
		{"unknown priority", http.StatusOK, `{"success":true,"advice":{"confidence_score":0.5,"priority_recommendation":{"level":"Urgent"}}}`, msgMalformed},
		{"advice missing", http.StatusOK, `{"success":true}`, msgMalformed},
		{"service declined", http.StatusOK, `{"success":false,"error":"model not loaded"}`, "model not loaded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := adviceServer(t, tt.status, tt.body)
			resp := NewClient(srv.URL).GetTaskAdvice(context.Background(), sampleRequest)

			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
			assert.Contains(t, resp.Error, tt.wantErr)
		})
	}
}

func TestGetTaskAdvice_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	resp := NewClient(url).GetTaskAdvice(context.Background(), sampleRequest)

	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestHealthAndConnection(t *testing.T) {
	ok, _ := adviceServer(t, http.StatusOK, "")
	down, _ := adviceServer(t, http.StatusServiceUnavailable, "")
	ctx := context.Background()

	assert.True(t, NewClient(ok.URL).Health(ctx))
	assert.False(t, NewClient(down.URL).Health(ctx))

	assert.Equal(t, ConnectionStatus{Connected: true, Message: "AI service is available and healthy"}, NewClient(ok.URL).TestConnection(ctx))
	assert.False(t, NewClient(down.URL).TestConnection(ctx).Connected)
}

func TestServiceInfo(t *testing.T) {
	assert.Equal(t, Info{BaseURL: DefaultBaseURL, Configured: false}, NewClient("").ServiceInfo())
	assert.Equal(t, Info{BaseURL: "http://ai:9000", Configured: true}, NewClient("http://ai:9000/").ServiceInfo())
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCache_HitAvoidsSecondCall(t *testing.T) {
	mr, rdb := newRedis(t)
	srv, calls := adviceServer(t, http.StatusOK, goodAdvice)
	c := NewClient(srv.URL, WithCache(NewRedisCache(rdb, time.Minute, nil)))
	ctx := context.Background()

	first := c.GetTaskAdvice(ctx, sampleRequest)
	second := c.GetTaskAdvice(ctx, sampleRequest)

	require.True(t, first.Success)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, mr.Exists(CacheKey(sampleRequest)))
	assert.Equal(t, time.Minute, mr.TTL(CacheKey(sampleRequest)))

	other := sampleRequest
	other.Description = "changed"
	c.GetTaskAdvice(ctx, other)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCache_FailuresNotCached(t *testing.T) {
	mr, rdb := newRedis(t)
	srv, calls := adviceServer(t, http.StatusBadGateway, "")
	c := NewClient(srv.URL, WithCache(NewRedisCache(rdb, time.Minute, nil)))
	ctx := context.Background()

	c.GetTaskAdvice(ctx, sampleRequest)
	c.GetTaskAdvice(ctx, sampleRequest)

	assert.Equal(t, int32(2), calls.Load())
	assert.False(t, mr.Exists(CacheKey(sampleRequest)))
}

func TestCache_RedisDownFallsThrough(t *testing.T) {
	mr, rdb := newRedis(t)
	srv, calls := adviceServer(t, http.StatusOK, goodAdvice)
	c := NewClient(srv.URL, WithCache(NewRedisCache(rdb, time.Minute, nil)))
	mr.Close()

	resp := c.GetTaskAdvice(context.Background(), sampleRequest)

	assert.True(t, resp.Success)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCacheKeyStable(t *testing.T) {
	assert.Equal(t, CacheKey(sampleRequest), CacheKey(sampleRequest))
	other := sampleRequest
	other.Status = models.StatusDone
	assert.NotEqual(t, CacheKey(sampleRequest), CacheKey(other))
}

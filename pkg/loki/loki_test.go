package loki

import (
	"compress/gzip"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type recordingReporter struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingReporter) Error(msg string, _ ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

type lokiStub struct {
	mu       sync.Mutex
	requests []pushRequest
	headers  []http.Header
	status   int
}

func newLokiStub(t *testing.T, status int) (*lokiStub, *httptest.Server) {
	stub := &lokiStub{status: status}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gz, err := gzip.NewReader(r.Body)
		require.NoError(t, err)

		var req pushRequest
		require.NoError(t, json.NewDecoder(gz).Decode(&req))

		stub.mu.Lock()
		stub.requests = append(stub.requests, req)
		stub.headers = append(stub.headers, r.Header.Clone())
		stub.mu.Unlock()
		w.WriteHeader(stub.status)
	}))
	t.Cleanup(server.Close)
	return stub, server
}

func Test_New_MissingURL_ReturnsError(t *testing.T) {
	_, err := New(Config{}, nil)
	assert.Error(t, err)
}

func Test_New_AppliesDefaults(t *testing.T) {
	pusher, err := New(Config{URL: "http://localhost:3100/loki/api/v1/push"}, nil)
	require.NoError(t, err)
	defer pusher.Stop()

	assert.Equal(t, 500, pusher.cfg.BatchSize)
	assert.Equal(t, 3*time.Second, pusher.cfg.BatchWait)
	assert.NotNil(t, pusher.cfg.Labels)
}

func Test_Stop_GroupsQueuedEntriesByLevel(t *testing.T) {
	stub, server := newLokiStub(t, http.StatusNoContent)

	pusher, err := New(Config{
		URL:       server.URL,
		TenantID:  "recruiting",
		BatchWait: time.Hour,
		Labels:    map[string]string{"app": "selectflow"},
	}, nil)
	require.NoError(t, err)

	at := time.Unix(1700000000, 0)
	require.NoError(t, pusher.Push(Entry{Time: at, Level: "error", Message: "db down", Fields: map[string]any{"error_type": "db"}}))
	require.NoError(t, pusher.Push(Entry{Time: at, Level: "info", Message: "request handled"}))
	require.NoError(t, pusher.Push(Entry{Time: at, Level: "error", Message: "storage down"}))
	pusher.Stop()

	stub.mu.Lock()
	defer stub.mu.Unlock()
	require.Len(t, stub.requests, 1)
	assert.Equal(t, "recruiting", stub.headers[0].Get(tenantHeader))

	streams := stub.requests[0].Streams
	require.Len(t, streams, 2)
	assert.Equal(t, map[string]string{"app": "selectflow", "level": "error"}, streams[0].Stream)
	require.Len(t, streams[0].Values, 2)
	assert.Equal(t, "1700000000000000000", streams[0].Values[0][0])
	assert.JSONEq(t, `{"msg":"db down","error_type":"db"}`, streams[0].Values[0][1])
	assert.Equal(t, "info", streams[1].Stream["level"])
}

func Test_Flush_BatchSizeReached_SendsWithoutWaiting(t *testing.T) {
	stub, server := newLokiStub(t, http.StatusNoContent)

	pusher, err := New(Config{URL: server.URL, BatchSize: 2, BatchWait: time.Hour}, nil)
	require.NoError(t, err)
	defer pusher.Stop()

	require.NoError(t, pusher.Push(Entry{Level: "info", Message: "one"}))
	require.NoError(t, pusher.Push(Entry{Level: "info", Message: "two"}))

	assert.Eventually(t, func() bool {
		stub.mu.Lock()
		defer stub.mu.Unlock()
		return len(stub.requests) == 1
	}, time.Second, 10*time.Millisecond)
}

func Test_Flush_ServerError_Reported(t *testing.T) {
	_, server := newLokiStub(t, http.StatusInternalServerError)
	reporter := &recordingReporter{}

	pusher, err := New(Config{URL: server.URL, BatchWait: time.Hour}, reporter)
	require.NoError(t, err)

	require.NoError(t, pusher.Push(Entry{Level: "warning", Message: "slow"}))
	pusher.Stop()

	reporter.mu.Lock()
	defer reporter.mu.Unlock()
	assert.Len(t, reporter.messages, 1)
}

func Test_Push_BufferFull_DropsAndCounts(t *testing.T) {
	p := &Pusher{entries: make(chan Entry, 1)}

	assert.NoError(t, p.Push(Entry{Message: "one"}))
	assert.ErrorIs(t, p.Push(Entry{Message: "two"}), ErrBufferFull)
	assert.Equal(t, uint64(1), p.Dropped())
}

package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notes-service/internal/domain"
	"notes-service/internal/infrastructure"
	"notes-service/internal/logger"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, to string) error {
	return m.Called(ctx, to).Error(0)
}

type recorder struct {
	mu   sync.Mutex
	jobs []EmailJob
	done chan struct{}
}

func newRecorder(n int) *recorder {
	return &recorder{done: make(chan struct{}, n)}
}

func (r *recorder) handle(_ context.Context, job EmailJob) error {
	r.mu.Lock()
	r.jobs = append(r.jobs, job)
	r.mu.Unlock()
	r.done <- struct{}{}
	return nil
}

func TestLocalQueue_RunsJobs(t *testing.T) {
	rec := newRecorder(3)
	q := NewLocalQueue(2, 10, rec.handle, logger.Discard())

	ids := map[string]bool{}
	for _, email := range []string{"a@x.io", "b@x.io", "c@x.io"} {
		id, err := q.Submit(context.Background(), email)
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		ids[id] = true
	}
	require.NoError(t, q.Close())

	assert.Len(t, rec.jobs, 3)
	for _, job := range rec.jobs {
		assert.True(t, ids[job.ID])
	}
}

func TestLocalQueue_Full(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	blocking := func(ctx context.Context, job EmailJob) error {
		started <- struct{}{}
		<-release
		return nil
	}
	q := NewLocalQueue(1, 1, blocking, logger.Discard())

	_, err := q.Submit(context.Background(), "a@x.io")
	require.NoError(t, err)
	<-started // worker holds the first job

	_, err = q.Submit(context.Background(), "b@x.io")
	require.NoError(t, err)
	_, err = q.Submit(context.Background(), "c@x.io")
	assert.ErrorIs(t, err, domain.ErrQueueFull)

	close(release)
	require.NoError(t, q.Close())

	_, err = q.Submit(context.Background(), "d@x.io")
	assert.ErrorIs(t, err, ErrQueueClosed)
	assert.NoError(t, q.Close())
}

func TestEmailHandler(t *testing.T) {
	sender := new(mockSender)
	sender.On("Send", mock.Anything, "ok@x.io").Return(nil).Once()
	sender.On("Send", mock.Anything, "bad@x.io").Return(errors.New("smtp down")).Once()

	metrics := infrastructure.NewMetrics(prometheus.NewRegistry())
	handle := NewEmailHandler(sender, metrics, logger.Discard())

	assert.NoError(t, handle(context.Background(), NewEmailJob("ok@x.io")))
	assert.Error(t, handle(context.Background(), NewEmailJob("bad@x.io")))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.EmailJobs.WithLabelValues("sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.EmailJobs.WithLabelValues("failed")))
	sender.AssertExpectations(t)
}

func TestNatsWorker_HandleMsg(t *testing.T) {
	rec := newRecorder(1)
	w := NewNatsWorker(nil, rec.handle, logger.Discard())

	w.handleMsg(&nats.Msg{Subject: EmailSubject, Data: []byte("{not json")})
	w.handleMsg(&nats.Msg{Subject: EmailSubject, Data: []byte(`{"id":"","email":"a@x.io"}`)})
	assert.Empty(t, rec.jobs)

	job := NewEmailJob("a@x.io")
	data, err := json.Marshal(job)
	require.NoError(t, err)
	w.handleMsg(&nats.Msg{Subject: EmailSubject, Data: data})

	select {
	case <-rec.done:
	case <-time.After(time.Second):
		t.Fatal("job not handled")
	}
	require.Len(t, rec.jobs, 1)
	assert.Equal(t, job.ID, rec.jobs[0].ID)
	assert.Equal(t, "a@x.io", rec.jobs[0].Email)
}

func TestNatsQueue_Closed(t *testing.T) {
	q := NewNatsQueue(nil)
	_, err := q.Submit(context.Background(), "a@x.io")
	assert.ErrorIs(t, err, nats.ErrConnectionClosed)
	assert.NoError(t, q.Close())
}

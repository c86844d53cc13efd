package convert

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfredjeanlab/edgebin/internal/edge"
	"github.com/alfredjeanlab/edgebin/internal/events"
	"github.com/alfredjeanlab/edgebin/internal/model"
)

type published struct {
	topic string
	event any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{topic: topic, event: event})
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type memLedger struct {
	runs []*model.Run
	err  error
}

func (m *memLedger) RecordRun(_ context.Context, run *model.Run) error {
	if m.err != nil {
		return m.err
	}
	cp := *run
	m.runs = append(m.runs, &cp)
	return nil
}

func (m *memLedger) GetRun(context.Context, string) (*model.Run, error) { return nil, nil }

func (m *memLedger) ListRuns(context.Context, model.RunFilter) ([]*model.Run, error) {
	return m.runs, nil
}

func (m *memLedger) Close() error { return nil }

type memDestination struct {
	name string
	data []byte
	err  error
}

func (d *memDestination) Put(_ context.Context, name string, r io.Reader, _ int64) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	d.name, d.data = name, data
	return "mem://" + name, nil
}

func TestRunner_Success(t *testing.T) {
	pub := &recordingPublisher{}
	store := &memLedger{}
	r := NewRunner(NewConverter(Options{}, nil), nil, WithPublisher(pub), WithLedger(store))

	input := writeInput(t, "graph.txt", "# c\n1 2\n3 4\n")
	run, err := r.Run(context.Background(), input, false)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(run.ID, "cv-"))
	assert.Equal(t, model.RunSucceeded, run.Status)
	assert.Equal(t, 2, run.Records)
	assert.Equal(t, 1, run.Comments)
	assert.Equal(t, int64(16), run.Bytes)
	assert.Equal(t, "native", run.ByteOrder)
	assert.Empty(t, run.Error)
	assert.False(t, run.FinishedAt.Before(run.StartedAt))

	require.Len(t, store.runs, 1)
	assert.Equal(t, run.ID, store.runs[0].ID)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TopicConvertCompleted, pub.events[0].topic)
	assert.Equal(t, events.ConvertCompleted{Run: run}, pub.events[0].event)
}

func TestRunner_FormatError(t *testing.T) {
	pub := &recordingPublisher{}
	store := &memLedger{}
	r := NewRunner(NewConverter(Options{}, nil), nil, WithPublisher(pub), WithLedger(store))

	input := writeInput(t, "graph.txt", "7 8 9\n")
	run, err := r.Run(context.Background(), input, false)
	require.ErrorIs(t, err, edge.ErrFormat)

	require.NotNil(t, run)
	assert.Equal(t, model.RunFailed, run.Status)
	assert.Contains(t, run.Error, "line 1")
	assert.Equal(t, strings.TrimSuffix(input, ".txt")+".bin", run.Output)

	require.Len(t, store.runs, 1)
	assert.Equal(t, model.RunFailed, store.runs[0].Status)
	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TopicConvertFailed, pub.events[0].topic)
}

func TestRunner_IntegrationFailuresAreNotFatal(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("nats down")}
	store := &memLedger{err: errors.New("db down")}
	r := NewRunner(NewConverter(Options{}, nil), nil, WithPublisher(pub), WithLedger(store))

	run, err := r.Run(context.Background(), writeInput(t, "graph.txt", "1 2\n"), false)
	require.NoError(t, err)
	assert.Equal(t, model.RunSucceeded, run.Status)
}

func TestRunner_Upload(t *testing.T) {
	pub := &recordingPublisher{}
	dest := &memDestination{}
	r := NewRunner(NewConverter(Options{}, nil), nil, WithPublisher(pub), WithDestination(dest))

	run, err := r.Run(context.Background(), writeInput(t, "graph.txt", "1 2\n"), true)
	require.NoError(t, err)

	assert.Equal(t, "graph.bin", dest.name)
	assert.Len(t, dest.data, edge.RecordSize)
	assert.Equal(t, "mem://graph.bin", run.UploadURI)

	require.Len(t, pub.events, 2)
	assert.Equal(t, events.TopicUploadCompleted, pub.events[0].topic)
	assert.Equal(t, events.TopicConvertCompleted, pub.events[1].topic)
}

func TestRunner_UploadWithoutDestination(t *testing.T) {
	r := NewRunner(NewConverter(Options{}, nil), nil)

	run, err := r.Run(context.Background(), writeInput(t, "graph.txt", "1 2\n"), true)
	require.ErrorIs(t, err, ErrNoDestination)
	assert.Equal(t, model.RunFailed, run.Status)
	assert.Equal(t, 1, run.Records, "the conversion itself succeeded")
}

func TestRunner_UploadFailure(t *testing.T) {
	boom := errors.New("access denied")
	r := NewRunner(NewConverter(Options{}, nil), nil, WithDestination(&memDestination{err: boom}))

	run, err := r.Run(context.Background(), writeInput(t, "graph.txt", "1 2\n"), true)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, model.RunFailed, run.Status)
	assert.Empty(t, run.UploadURI)
}

func TestByteOrderName(t *testing.T) {
	for _, tc := range []string{"native", "little", "big"} {
		order, err := edge.ParseByteOrder(tc)
		require.NoError(t, err)
		assert.Equal(t, tc, ByteOrderName(order))
	}
}

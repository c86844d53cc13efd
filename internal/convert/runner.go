package convert

import (
	"context"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/alfredjeanlab/edgebin/internal/events"
	"github.com/alfredjeanlab/edgebin/internal/idgen"
	"github.com/alfredjeanlab/edgebin/internal/ledger"
	"github.com/alfredjeanlab/edgebin/internal/model"
	"github.com/alfredjeanlab/edgebin/internal/upload"
)

// ErrNoDestination is returned when an upload is requested but no
// destination is configured.
var ErrNoDestination = errors.New("no upload destination configured")

// Runner performs conversions as tracked runs: each run gets an ID, is
// optionally uploaded, recorded in the ledger and announced on the bus.
type Runner struct {
	conv      *Converter
	publisher events.Publisher
	store     ledger.Store
	dest      upload.Destination
	logger    *slog.Logger
	now       func() time.Time
}

// RunnerOption configures optional Runner integrations.
type RunnerOption func(*Runner)

// WithPublisher announces finished runs on p.
func WithPublisher(p events.Publisher) RunnerOption {
	return func(r *Runner) { r.publisher = p }
}

// WithLedger records finished runs in s.
func WithLedger(s ledger.Store) RunnerOption {
	return func(r *Runner) { r.store = s }
}

// WithDestination sets where outputs are uploaded on request.
func WithDestination(d upload.Destination) RunnerOption {
	return func(r *Runner) { r.dest = d }
}

// NewRunner returns a Runner around conv.
func NewRunner(conv *Converter, logger *slog.Logger, opts ...RunnerOption) *Runner {
	r := &Runner{
		conv:      conv,
		publisher: &events.NoopPublisher{},
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = conv.logger
	}
	return r
}

// Run converts input and, when push is set, uploads the output. The
// returned Run describes the outcome even when err is non-nil.
func (r *Runner) Run(ctx context.Context, input string, push bool) (*model.Run, error) {
	id, err := idgen.NewRunID()
	if err != nil {
		return nil, err
	}
	opts := r.conv.Options()
	run := &model.Run{
		ID:         id,
		Input:      input,
		ByteOrder:  ByteOrderName(opts.ByteOrder),
		Undirected: opts.Undirected,
		StartedAt:  r.now().UTC(),
	}
	run.Output, _ = r.conv.OutputPath(input)

	res, err := r.conv.Convert(ctx, input)
	if err == nil {
		run.Records = res.Records
		run.Comments = res.Comments
		run.Duplicates = res.Duplicates
		run.Bytes = res.Bytes
		if push {
			err = r.upload(ctx, run)
		}
	}

	run.FinishedAt = r.now().UTC()
	if err != nil {
		run.Status = model.RunFailed
		run.Error = err.Error()
	} else {
		run.Status = model.RunSucceeded
	}

	r.record(ctx, run)
	return run, err
}

func (r *Runner) upload(ctx context.Context, run *model.Run) error {
	if r.dest == nil {
		return ErrNoDestination
	}
	uri, size, err := upload.File(ctx, r.dest, run.Output)
	if err != nil {
		return err
	}
	run.UploadURI = uri
	r.logger.Info("output uploaded", "run", run.ID, "uri", uri, "bytes", size)
	if err := r.publisher.Publish(ctx, events.TopicUploadCompleted, events.UploadCompleted{
		RunID: run.ID,
		URI:   uri,
		Bytes: size,
	}); err != nil {
		r.logger.Warn("failed to publish event", "topic", events.TopicUploadCompleted, "run", run.ID, "error", err)
	}
	return nil
}

// record persists the run and publishes it. Both are best-effort; failures
// are logged and never change the run's outcome.
func (r *Runner) record(ctx context.Context, run *model.Run) {
	if r.store != nil {
		if err := r.store.RecordRun(ctx, run); err != nil {
			r.logger.Warn("failed to record run", "run", run.ID, "error", err)
		}
	}
	topic := events.TopicFor(run)
	if err := r.publisher.Publish(ctx, topic, events.EventFor(run)); err != nil {
		r.logger.Warn("failed to publish event", "topic", topic, "run", run.ID, "error", err)
	}
}

// ByteOrderName returns the config name of order.
func ByteOrderName(order binary.ByteOrder) string {
	switch order {
	case binary.LittleEndian:
		return "little"
	case binary.BigEndian:
		return "big"
	default:
		return "native"
	}
}

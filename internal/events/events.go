// Package events publishes conversion run events to the event bus.
package events

import (
	"context"

	"github.com/alfredjeanlab/edgebin/internal/model"
)

// Event topic constants
const (
	TopicConvertCompleted = "edgebin.convert.completed"
	TopicConvertFailed    = "edgebin.convert.failed"
	TopicUploadCompleted  = "edgebin.upload.completed"

	// TopicAll matches every edgebin topic.
	TopicAll = "edgebin.>"
)

// Event types

type ConvertCompleted struct {
	Run *model.Run `json:"run"`
}

type ConvertFailed struct {
	Run *model.Run `json:"run"`
}

type UploadCompleted struct {
	RunID string `json:"run_id"`
	URI   string `json:"uri"`
	Bytes int64  `json:"bytes"`
}

// TopicFor returns the topic a finished run is published on.
func TopicFor(run *model.Run) string {
	if run.Status == model.RunSucceeded {
		return TopicConvertCompleted
	}
	return TopicConvertFailed
}

// EventFor returns the event payload for a finished run.
func EventFor(run *model.Run) any {
	if run.Status == model.RunSucceeded {
		return ConvertCompleted{Run: run}
	}
	return ConvertFailed{Run: run}
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

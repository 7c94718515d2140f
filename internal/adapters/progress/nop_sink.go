package progress

import (
	"context"

	"github.com/bluetoken/bluedeploy/internal/usecase"
)

// NopSink is a no-op implementation of ProgressSink, used for machine
// readable output where progress lines would corrupt stdout.
type NopSink struct{}

// NewNopSink creates a new no-op progress sink
func NewNopSink() usecase.ProgressSink {
	return &NopSink{}
}

func (n *NopSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {}

func (n *NopSink) Info(message string) {}

func (n *NopSink) Error(message string) {}

var _ usecase.ProgressSink = (*NopSink)(nil)

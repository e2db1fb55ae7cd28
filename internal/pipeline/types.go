package pipeline

import "time"

// Stage describes a high-level phase of a manifest job.
type Stage string

const (
	// StageLoad reads manifest bytes and parses or restores them.
	StageLoad Stage = "load"
	// StageResolve validates declarations and builds the class table.
	StageResolve Stage = "resolve"
	// StageCheck runs the [[check]] battery.
	StageCheck Stage = "check"
	// StageEmit hands the result to the emit callback.
	StageEmit Stage = "emit"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the job is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is currently running.
	StatusWorking Status = "working"
	// StatusDone indicates the stage finished.
	StatusDone Status = "done"
	// StatusError indicates the stage produced error diagnostics.
	StatusError Status = "error"
)

// Event reports progress for one manifest, or for the whole run when
// Manifest is empty.
type Event struct {
	Manifest string
	Stage    Stage
	Status   Status
	Err      error
	Elapsed  time.Duration
}

// Sink consumes progress events. Implementations must be safe for
// concurrent use; jobs report from their own goroutines.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

package declare

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageParse is file parsing (driven by the caller, before the pipeline).
	StageParse Stage = "parse"
	// StageTypes is the type-declaration pass.
	StageTypes Stage = "types"
	// StageMembers is the member-declaration pass.
	StageMembers Stage = "members"
	// StageBodies is the deferred body-compilation pass.
	StageBodies Stage = "bodies"
	// StagePersist is output image serialization (driven by the caller).
	StagePersist Stage = "persist"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the work item is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the work item is being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the work item finished.
	StatusDone Status = "done"
	// StatusError indicates the work item failed.
	StatusError Status = "error"
)

// Event reports progress for a file (or the whole pipeline when File is
// empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
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

func notify(sink ProgressSink, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

// Timings holds per-stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] = dur
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	return t.stages[stage]
}

// Sum returns the total of the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}

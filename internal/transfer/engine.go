package transfer

import (
	"context"
	"fmt"
	"log/slog"
)

// Result is what a Transferer reports for a whole batch
type Result struct {
	// Code is the SHFileOperationW status, 0 on success
	Code uint32

	// Aborted is set when any part of the batch was cancelled by the user
	Aborted bool

	// Err is set when the transfer could not be attempted at all
	Err error
}

// Transferer performs one bulk copy or move of sources into dest
type Transferer interface {
	Transfer(ctx context.Context, sources []string, dest string, op Operation) Result
}

// Recorder receives audit records
type Recorder interface {
	Record(text string)
}

type nopRecorder struct{}

func (nopRecorder) Record(string) {}

// Engine dispatches a request to its Transferer in one call and turns the
// result into an Outcome
type Engine struct {
	transferer Transferer
	recorder   Recorder
}

type Option func(*Engine)

func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

func NewEngine(t Transferer, opts ...Option) *Engine {
	e := &Engine{
		transferer: t,
		recorder:   nopRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs req. The error return is only for an invalid request;
// transfer failures are reported through the Outcome.
func (e *Engine) Execute(ctx context.Context, req Request) (Outcome, error) {
	if err := req.validate(); err != nil {
		return Outcome{}, err
	}

	e.recorder.Record(req.describe())
	slog.Debug("dispatch bulk transfer",
		"op", req.Operation,
		"sources", len(req.Sources),
		"dest", req.Destination)

	res := e.transferer.Transfer(ctx, req.Sources, req.Destination, req.Operation)
	outcome := interpret(res)

	slog.Debug("bulk transfer finished",
		"status", outcome.Status,
		"code", fmt.Sprintf("0x%08x", res.Code))

	if outcome.Status == Failed {
		e.recorder.Record(outcome.Message)
	}
	return outcome, nil
}

func interpret(res Result) Outcome {
	switch {
	case res.Aborted:
		return Outcome{Status: AbortedByUser}
	case res.Code != 0:
		return Outcome{
			Status:  Failed,
			Code:    res.Code,
			Message: fmt.Sprintf("bulk transfer failed: 0x%08x (%s)", res.Code, Describe(res.Code)),
		}
	case res.Err != nil:
		return Outcome{
			Status:  Failed,
			Message: fmt.Sprintf("bulk transfer failed: %v", res.Err),
		}
	default:
		return Outcome{Status: Completed}
	}
}

// Package transfer submits a batch of sources to one destination as a
// single bulk copy or move.
package transfer

import (
	"errors"
	"strings"
)

// ErrNoSources is returned for a request without sources
var ErrNoSources = errors.New("no source specified")

// ErrNoDestination is returned for a request with an empty destination
var ErrNoDestination = errors.New("no destination specified")

type Operation int

const (
	Copy Operation = iota
	Move
)

func (o Operation) String() string {
	switch o {
	case Copy:
		return "COPY"
	case Move:
		return "MOVE"
	default:
		return "UNKNOWN"
	}
}

// Request is one batch. Sources keep their order and duplicates; the
// destination is not checked for existence.
type Request struct {
	Sources     []string
	Destination string
	Operation   Operation
}

func (r Request) validate() error {
	if len(r.Sources) == 0 {
		return ErrNoSources
	}
	if strings.TrimSpace(r.Destination) == "" {
		return ErrNoDestination
	}
	return nil
}

// describe renders the request the way it is audited:
//
//	COPY: "a.txt; b.txt" --> "D:\backup"
func (r Request) describe() string {
	return r.Operation.String() + `: "` + strings.Join(r.Sources, "; ") + `" --> "` + r.Destination + `"`
}

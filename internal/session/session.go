// Package session runs the interactive recycle-bin command loop.
package session

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/babarot/xcom/internal/recyclebin"
	"github.com/babarot/xcom/internal/selection"
	"github.com/samber/lo"
)

type State int

const (
	Listing State = iota
	AwaitingCommand
	Restoring
	Purging
	Clearing
	Searching
	Terminated
)

func (s State) String() string {
	return [...]string{
		"listing",
		"awaiting-command",
		"restoring",
		"purging",
		"clearing",
		"searching",
		"terminated",
	}[s]
}

// Catalog is the part of recyclebin.Catalog the session drives
type Catalog interface {
	List(ctx context.Context) ([]recyclebin.Item, error)
	Clear(ctx context.Context) error
	RestoreAll(ctx context.Context, items []recyclebin.Item, indices []int) []recyclebin.Result
	PurgeAll(ctx context.Context, items []recyclebin.Item, indices []int) []recyclebin.Result
}

// View shows snapshots and outcomes. *ui.Printer implements it.
type View interface {
	Items(items []recyclebin.Item)
	Matches(items []recyclebin.Item, indices []int)
	Restored(item recyclebin.Item)
	Purged(item recyclebin.Item)
	Failed(action string, item recyclebin.Item, err error)
	InvalidSelection()
	Cleared()
	ClearFailed(err error)
	Error(err error)
	Prompt()
}

// Session reads one command per line. Indices typed by the user refer to
// the snapshot last shown; it is replaced after every mutation.
type Session struct {
	catalog Catalog
	view    View
	in      io.Reader

	state State
	items []recyclebin.Item
}

func New(catalog Catalog, view View, in io.Reader) *Session {
	return &Session{
		catalog: catalog,
		view:    view,
		in:      in,
		state:   Listing,
	}
}

// State returns where the session currently is
func (s *Session) State() State {
	return s.state
}

// Run lists the store and then processes commands until the user quits,
// input ends or the store becomes empty after a mutation. It only returns
// an error if the first listing fails or input cannot be read.
func (s *Session) Run(ctx context.Context) error {
	s.transition(Listing)
	items, err := s.catalog.List(ctx)
	if err != nil {
		s.transition(Terminated)
		return err
	}
	s.view.Items(items)
	if len(items) == 0 {
		s.transition(Terminated)
		return nil
	}
	s.items = items

	scanner := bufio.NewScanner(s.in)
	for s.state != Terminated {
		if err := ctx.Err(); err != nil {
			s.transition(Terminated)
			return err
		}

		s.transition(AwaitingCommand)
		s.view.Prompt()
		if !scanner.Scan() {
			s.transition(Terminated)
			return scanner.Err()
		}
		s.dispatch(ctx, strings.ToLower(strings.TrimSpace(scanner.Text())))
	}
	return nil
}

func (s *Session) dispatch(ctx context.Context, cmd string) {
	switch {
	case cmd == "":
		s.refresh(ctx)

	case lo.Contains([]string{"q", "x", "exit", "quit"}, cmd):
		s.transition(Terminated)

	case cmd == "c":
		s.clear(ctx)

	case strings.HasSuffix(cmd, "r"), strings.HasSuffix(cmd, "d"):
		s.mutate(ctx, cmd[len(cmd)-1], cmd[:len(cmd)-1])

	default:
		s.search(cmd)
	}
}

func (s *Session) clear(ctx context.Context) {
	s.transition(Clearing)
	if err := s.catalog.Clear(ctx); err != nil {
		s.view.ClearFailed(err)
		return
	}
	s.view.Cleared()
	s.refreshOrTerminate(ctx)
}

func (s *Session) mutate(ctx context.Context, action byte, token string) {
	indices := selection.Parse(token, len(s.items))
	if len(indices) == 0 {
		s.view.InvalidSelection()
		return
	}

	if action == 'r' {
		s.transition(Restoring)
		for _, r := range s.catalog.RestoreAll(ctx, s.items, indices) {
			if r.Err != nil {
				s.view.Failed("restore", r.Item, r.Err)
				continue
			}
			s.view.Restored(r.Item)
		}
	} else {
		s.transition(Purging)
		for _, r := range s.catalog.PurgeAll(ctx, s.items, indices) {
			if r.Err != nil {
				s.view.Failed("delete", r.Item, r.Err)
				continue
			}
			s.view.Purged(r.Item)
		}
	}
	s.refreshOrTerminate(ctx)
}

// search matches against the snapshot already shown, without listing again
func (s *Session) search(query string) {
	s.transition(Searching)
	var hits []int
	for i, item := range s.items {
		if strings.Contains(strings.ToLower(item.Name), query) {
			hits = append(hits, i)
		}
	}
	s.view.Matches(s.items, hits)
}

// refresh replaces the snapshot. When listing fails the old snapshot is
// dropped so its indices can no longer be used.
func (s *Session) refresh(ctx context.Context) bool {
	s.transition(Listing)
	items, err := s.catalog.List(ctx)
	if err != nil {
		s.items = nil
		s.view.Error(err)
		return false
	}
	s.items = items
	s.view.Items(items)
	return true
}

func (s *Session) refreshOrTerminate(ctx context.Context) {
	if s.refresh(ctx) && len(s.items) == 0 {
		s.transition(Terminated)
	}
}

func (s *Session) transition(to State) {
	if s.state != to {
		slog.Debug("session state", "from", s.state, "to", to)
	}
	s.state = to
}

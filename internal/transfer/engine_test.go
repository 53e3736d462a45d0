package transfer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransferer struct {
	result Result
	calls  int
	got    []string
	dest   string
	op     Operation
}

func (f *fakeTransferer) Transfer(ctx context.Context, sources []string, dest string, op Operation) Result {
	f.calls++
	f.got = sources
	f.dest = dest
	f.op = op
	return f.result
}

type records []string

func (r *records) Record(text string) { *r = append(*r, text) }

func TestEngineExecute(t *testing.T) {
	tests := []struct {
		name    string
		result  Result
		status  Status
		code    uint32
		records int
	}{
		{"completed", Result{}, Completed, 0, 1},
		{"aborted", Result{Aborted: true}, AbortedByUser, 0, 1},
		{"aborted wins over code", Result{Aborted: true, Code: 0x75}, AbortedByUser, 0, 1},
		{"failed", Result{Code: 0x7C}, Failed, 0x7C, 2},
		{"not attempted", Result{Err: errors.New("shell32.dll missing")}, Failed, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTransferer{result: tt.result}
			var rec records
			engine := NewEngine(fake, WithRecorder(&rec))

			req := Request{
				Sources:     []string{"a.txt", "b.txt", "a.txt"},
				Destination: "backup",
				Operation:   Copy,
			}
			outcome, err := engine.Execute(context.Background(), req)
			require.NoError(t, err)

			assert.Equal(t, 1, fake.calls, "one bulk call per request")
			assert.Equal(t, req.Sources, fake.got, "duplicates are passed through")
			assert.Equal(t, tt.status, outcome.Status)
			assert.Equal(t, tt.code, outcome.Code)
			require.Len(t, rec, tt.records)
			assert.Equal(t, `COPY: "a.txt; b.txt; a.txt" --> "backup"`, rec[0])

			if tt.status == Failed {
				var terr *Error
				require.ErrorAs(t, outcome.Err(), &terr)
				assert.Equal(t, tt.code, terr.Code)
				assert.Equal(t, outcome.Message, rec[1])
			} else {
				assert.NoError(t, outcome.Err())
			}
		})
	}
}

func TestEngineFailureMessage(t *testing.T) {
	fake := &fakeTransferer{result: Result{Code: 0x78}}
	outcome, err := NewEngine(fake).Execute(context.Background(), Request{
		Sources:     []string{"secret"},
		Destination: "out",
		Operation:   Move,
	})
	require.NoError(t, err)
	assert.Equal(t, "bulk transfer failed: 0x00000078 (security settings denied access to the source)", outcome.Message)
	assert.Equal(t, outcome.Message, outcome.Err().Error())
	assert.Equal(t, Move, fake.op)
}

func TestEngineInvalidRequest(t *testing.T) {
	fake := &fakeTransferer{}
	var rec records
	engine := NewEngine(fake, WithRecorder(&rec))

	_, err := engine.Execute(context.Background(), Request{Destination: "out"})
	assert.ErrorIs(t, err, ErrNoSources)

	_, err = engine.Execute(context.Background(), Request{Sources: []string{"a"}, Destination: " "})
	assert.ErrorIs(t, err, ErrNoDestination)

	assert.Zero(t, fake.calls)
	assert.Empty(t, rec)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "the destination is a subtree of the source", Describe(0x76))
	assert.Equal(t, "an unknown error occurred", Describe(0x402))
	assert.Equal(t, "unknown error", Describe(0xDEAD))
}

func TestOperationString(t *testing.T) {
	assert.Equal(t, "COPY", Copy.String())
	assert.Equal(t, "MOVE", Move.String())
	assert.Equal(t, "failed", Failed.String())
}

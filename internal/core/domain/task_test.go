package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    TaskStatus
		wantErr bool
	}{
		{in: "TODO", want: StatusTodo},
		{in: "todo", want: StatusTodo},
		{in: "  done  ", want: StatusDone},
		{in: "IN_PROGRESS", want: StatusInProgress},
		{in: "in progress", want: StatusInProgress},
		{in: "IN-PROGRESS", want: StatusInProgress},
		{in: "inprogress", want: StatusInProgress},
		{in: "In Progress", want: StatusInProgress},
		{in: "bogus", wantErr: true},
		{in: "", wantErr: true},
		{in: "DONE!", wantErr: true},
	}

	for _, tt := range tests {
		got, err := NormalizeStatus(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidStatus, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestDefaultStatus(t *testing.T) {
	got, err := DefaultStatus("")
	require.NoError(t, err)
	assert.Equal(t, StatusTodo, got)

	got, err = DefaultStatus("   ")
	require.NoError(t, err)
	assert.Equal(t, StatusTodo, got)

	got, err = DefaultStatus("in-progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, got)

	_, err = DefaultStatus("bogus")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestNormalizeSubject(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeSubject("  A@X.Com "))
	assert.Equal(t, "a@x.com", NormalizeSubject("a@x.com"))
}

package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewUploadSweepTask(t *testing.T) {
	task, opts := NewUploadSweepTask(15 * time.Minute)
	require.Equal(t, TypeUploadSweep, task.Type())
	require.Empty(t, task.Payload())
	require.Len(t, opts, 3)
}

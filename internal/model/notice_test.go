package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotice(t *testing.T) {
	before := time.Now().Unix()
	n := NewNotice(NoticeSuccess, "done")

	assert.Len(t, n.ID, 26)
	assert.Equal(t, NoticeSuccess, n.Kind)
	assert.Equal(t, "done", n.Message)
	assert.GreaterOrEqual(t, n.Timestamp, before)
	assert.False(t, n.IsError())
}

func TestNoticeKindString(t *testing.T) {
	assert.Equal(t, "success", NoticeSuccess.String())
	assert.Equal(t, "error", NoticeError.String())
	assert.Equal(t, "unknown", NoticeKind(9).String())
}

func TestNoticeRelativeTime(t *testing.T) {
	n := Notice{Timestamp: time.Now().Add(-3 * time.Hour).Unix()}
	assert.Equal(t, "3 hours ago", n.RelativeTime())
}

func TestNoticeLog(t *testing.T) {
	log := NewNoticeLog()

	_, ok := log.Last()
	assert.False(t, ok)

	log.OnSuccess("first")
	log.OnError("second")
	log.OnSuccess("third")

	require.Equal(t, 3, log.Len())
	assert.Len(t, log.Successes(), 2)
	require.Len(t, log.Errors(), 1)
	assert.Equal(t, "second", log.Errors()[0].Message)
	assert.True(t, log.Errors()[0].IsError())

	last, ok := log.Last()
	require.True(t, ok)
	assert.Equal(t, "third", last.Message)

	all := log.All()
	all[0].Message = "changed"
	assert.Equal(t, "first", log.All()[0].Message)

	log.Reset()
	assert.Equal(t, 0, log.Len())
}

package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContextWithTestDeadline_HasDeadline(t *testing.T) {
	fallback := 100 * time.Millisecond
	ctx, cancel := ContextWithTestDeadline(t, fallback)
	defer cancel()

	deadline, ok := ctx.Deadline()
	assert.True(t, ok, "context should have deadline")
	assert.Greater(t, time.Until(deadline), time.Duration(0))
	assert.LessOrEqual(t, time.Until(deadline), fallback)
}

func TestRunContext(t *testing.T) {
	ctx, cancel := RunContext(t)
	defer cancel()

	_, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.NoError(t, ctx.Err())
}

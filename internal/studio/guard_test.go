package studio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_AcquireRelease(t *testing.T) {
	g := NewGuard()
	g.SetInput("old text")

	release, err := g.Acquire(true)
	require.NoError(t, err)

	c := g.Controls()
	assert.True(t, g.Held())
	assert.Empty(t, c.InputText)
	assert.Equal(t, GeneratingPromptText, c.Placeholder)
	assert.True(t, c.InputDisabled)
	assert.True(t, c.GeneratePromptDisabled)
	assert.True(t, c.GenerateImagesDisabled)
	assert.True(t, c.AspectRatioDisabled)
	assert.True(t, c.ImageCountDisabled)

	release()

	c = g.Controls()
	assert.False(t, g.Held())
	assert.Equal(t, DefaultPlaceholder, c.Placeholder)
	assert.False(t, c.InputDisabled)
	assert.False(t, c.GeneratePromptDisabled)
	assert.False(t, c.GenerateImagesDisabled)
	assert.False(t, c.AspectRatioDisabled)
	assert.False(t, c.ImageCountDisabled)
}

func TestGuard_GenericBusyKeepsPlaceholder(t *testing.T) {
	g := NewGuard()

	release, err := g.Acquire(false)
	require.NoError(t, err)
	defer release()

	assert.Equal(t, DefaultPlaceholder, g.Controls().Placeholder)
	assert.True(t, g.Controls().InputDisabled)
}

func TestGuard_SecondAcquireIsBusy(t *testing.T) {
	g := NewGuard()

	release, err := g.Acquire(false)
	require.NoError(t, err)

	_, err = g.Acquire(true)
	assert.ErrorIs(t, err, ErrBusy)

	release()
	release2, err := g.Acquire(true)
	require.NoError(t, err)
	release2()
}

func TestGuard_ReleaseRunsOnce(t *testing.T) {
	g := NewGuard()

	first, err := g.Acquire(false)
	require.NoError(t, err)
	first()

	second, err := g.Acquire(true)
	require.NoError(t, err)

	// A stale release must not unlock the new holder.
	first()
	assert.True(t, g.Held())
	assert.True(t, g.Controls().InputDisabled)

	second()
	assert.False(t, g.Held())
}

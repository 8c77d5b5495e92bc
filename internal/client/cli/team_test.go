package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_PrintsTable(t *testing.T) {
	app, _, _, out := newTestApp("")

	require.NoError(t, app.List(context.Background()))
	assert.Contains(t, out.String(), "ID")
	assert.Contains(t, out.String(), "Ana Souza")
	assert.Contains(t, out.String(), "Fisioterapeuta")
}

func TestList_FailureShowsNeutralFallback(t *testing.T) {
	app, _, team, out := newTestApp("")
	team.err = errors.New("fetch failed: 500")

	err := app.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, out.String(), noDataMessage)
	assert.NotContains(t, out.String(), "500")
}

func TestList_Empty(t *testing.T) {
	app, _, team, out := newTestApp("")
	team.items = nil

	require.NoError(t, app.List(context.Background()))
	assert.Contains(t, out.String(), "(empty)")
}

func TestShow(t *testing.T) {
	app, _, _, out := newTestApp("")
	ctx := context.Background()

	require.NoError(t, app.Show(ctx, []string{"1"}))
	assert.Contains(t, out.String(), "#1 Ana Souza")
	assert.Contains(t, out.String(), "image: https://cms.test/assets/img-1")

	out.Reset()
	require.NoError(t, app.Show(ctx, []string{"42"}))
	assert.Contains(t, out.String(), "Not found")

	out.Reset()
	require.Error(t, app.Show(ctx, []string{"abc"}))
	assert.Contains(t, out.String(), `Invalid id "abc"`)

	out.Reset()
	require.ErrorIs(t, app.Show(ctx, nil), errUsage)
	assert.Contains(t, out.String(), "Usage: show <id>")
}

func TestFind_JoinsArgs(t *testing.T) {
	app, _, _, out := newTestApp("")

	require.NoError(t, app.Find(context.Background(), []string{"bruno", "lima"}))
	assert.Contains(t, out.String(), "#2 Bruno Lima")

	require.ErrorIs(t, app.Find(context.Background(), nil), errUsage)
}

func TestImage(t *testing.T) {
	app, _, _, out := newTestApp("")

	require.NoError(t, app.Image(context.Background(), []string{"abc123"}))
	assert.Equal(t, "https://cms.test/assets/abc123\n", out.String())
}

func TestRefreshAndClear(t *testing.T) {
	app, _, team, out := newTestApp("")
	ctx := context.Background()

	require.NoError(t, app.Refresh(ctx))
	assert.Equal(t, 1, team.refreshed)
	assert.Contains(t, out.String(), "Refreshed, 2 members")

	require.NoError(t, app.Clear(ctx))
	assert.Equal(t, 1, team.cleared)
}

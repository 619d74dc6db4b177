package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abrezinsky/mastersboard/internal/app"
	"github.com/abrezinsky/mastersboard/internal/browser"
	"github.com/abrezinsky/mastersboard/internal/config"
	"github.com/abrezinsky/mastersboard/internal/logger"
	"github.com/abrezinsky/mastersboard/internal/services"
	"github.com/abrezinsky/mastersboard/internal/testutil"
	"github.com/abrezinsky/mastersboard/pkg/scoresapi"
	"github.com/abrezinsky/mastersboard/web"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	printBanner(&buf)

	assert.Contains(t, buf.String(), "leaderboard "+version)
	assert.Contains(t, buf.String(), "╔")
}

func TestExportCommand(t *testing.T) {
	server := testutil.NewScoresServer(t)
	out := filepath.Join(t.TempDir(), "board.xlsx")

	var stdout bytes.Buffer
	err := newCLI(&stdout, io.Discard).Run([]string{"mastersboard", "--scores-api", server.URL, "export", "--out", out})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), out)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{services.ScoresSheet, services.TeamsSheet}, f.GetSheetList())

	name, err := f.GetCellValue(services.ScoresSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Scottie Scheffler", name)
}

func TestExportCommand_UpstreamFailure(t *testing.T) {
	server := testutil.NewScoresServer(t)
	server.Respond(scoresapi.ScoresPath, http.StatusInternalServerError, `{"success":false,"error":"db down"}`)
	out := filepath.Join(t.TempDir(), "board.xlsx")

	err := newCLI(io.Discard, io.Discard).Run([]string{"mastersboard", "--scores-api", server.URL, "export", "--out", out})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "expected partial file to be removed")
}

func TestExportCommand_BadConfig(t *testing.T) {
	err := newCLI(io.Discard, io.Discard).Run([]string{"mastersboard", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "export"})
	assert.Error(t, err)
}

// fakeCommander records browser launches
type fakeCommander struct {
	args []string
}

func (f *fakeCommander) Start(name string, args ...string) error {
	f.args = append(f.args, args...)
	return nil
}

func newTestKeyboard(t *testing.T) (*keyboard, *scoresapi.MockClient, *fakeCommander, *bytes.Buffer, *bool) {
	t.Helper()

	log := logger.NewWithOptions(logger.Options{Level: slog.LevelInfo, Output: io.Discard})
	client := scoresapi.NewMockClient()
	cfg := config.Default()
	cfg.Server.BaseURL = "http://192.168.1.50:8080"

	a, err := app.New(cfg, log, client, web.GetTemplatesFS(), web.GetStaticFS())
	require.NoError(t, err)

	cmd := &fakeCommander{}
	var out bytes.Buffer
	quit := false
	k := &keyboard{
		app:      a,
		log:      log,
		launcher: browser.NewLauncherWithCommander(log, cmd, "linux"),
		out:      &out,
		quit:     func() { quit = true },
	}
	return k, client, cmd, &out, &quit
}

func TestKeyboard_ToggleHTTPLogging(t *testing.T) {
	k, _, _, out, _ := newTestKeyboard(t)
	ctx := context.Background()

	assert.True(t, k.handle(ctx, 'h'))
	assert.True(t, k.log.IsHTTPLoggingEnabled())
	assert.True(t, k.handle(ctx, 'h'))
	assert.False(t, k.log.IsHTTPLoggingEnabled())
	assert.Contains(t, out.String(), "HTTP logging disabled")
}

func TestKeyboard_CycleLogLevel(t *testing.T) {
	k, _, _, _, _ := newTestKeyboard(t)
	ctx := context.Background()

	want := []slog.Level{slog.LevelWarn, slog.LevelError, slog.LevelDebug, slog.LevelInfo}
	for _, level := range want {
		k.handle(ctx, 'l')
		assert.Equal(t, level, k.log.GetLevel())
	}
}

func TestKeyboard_OpenBoards(t *testing.T) {
	k, _, cmd, _, _ := newTestKeyboard(t)
	ctx := context.Background()

	k.handle(ctx, 'o')
	k.handle(ctx, 't')

	assert.Equal(t, []string{"http://192.168.1.50:8080/", "http://192.168.1.50:8080/teams"}, cmd.args)
}

func TestKeyboard_ReportsAndReload(t *testing.T) {
	k, client, _, _, _ := newTestKeyboard(t)
	ctx := context.Background()

	k.handle(ctx, 'r')
	k.handle(ctx, 'u')
	k.wg.Wait()
	k.handle(ctx, 'g')
	k.wg.Wait()

	assert.Equal(t, 2, client.ReportCalls())
	assert.Equal(t, 1, client.ScoreCalls())
	assert.Equal(t, 1, client.TeamCalls())
}

func TestKeyboard_Quit(t *testing.T) {
	k, _, _, out, quit := newTestKeyboard(t)

	assert.False(t, k.handle(context.Background(), 'q'))
	assert.True(t, *quit)
	assert.Contains(t, out.String(), "Shutting down")
}

func TestReadKeys_StopsOnQuit(t *testing.T) {
	k, _, _, out, quit := newTestKeyboard(t)

	readKeys(context.Background(), k, strings.NewReader("?qh"))

	assert.True(t, *quit)
	assert.Contains(t, out.String(), "Keyboard shortcuts")
	assert.False(t, k.log.IsHTTPLoggingEnabled(), "keys after quit are not handled")
}

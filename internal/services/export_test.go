package services_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/abrezinsky/mastersboard/internal/errors"
	"github.com/abrezinsky/mastersboard/internal/logger"
	"github.com/abrezinsky/mastersboard/internal/services"
	"github.com/abrezinsky/mastersboard/pkg/scoresapi"
)

func TestExportFileName(t *testing.T) {
	ts := time.Date(2025, 4, 13, 18, 5, 9, 0, time.UTC)
	assert.Equal(t, "masters_scores_20250413_180509.xlsx", services.ExportFileName(ts))
}

func TestBuildWorkbook_Sheets(t *testing.T) {
	f, err := services.BuildWorkbook(scoresapi.DefaultMockPlayers(), scoresapi.DefaultMockTeams())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{services.ScoresSheet, services.TeamsSheet}, f.GetSheetList())

	rows, err := f.GetRows(services.ScoresSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Position", "Player Name", "Total Score", "Round 1", "Round 2", "Round 3", "Round 4"}, rows[0])
	assert.Equal(t, []string{"1", "Scottie Scheffler", "-7", "66", "72", "-1", "-"}, rows[1])

	teams, err := f.GetRows(services.TeamsSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rank", "Team", "Score", "Player", "Tier", "Rd1", "Rd2", "Rd3", "Rd4", "Total"}, teams[0])
	assert.Equal(t, []string{"1", "Amen Corner", "-14"}, teams[1])
	assert.Equal(t, "Scottie Scheffler", teams[2][3])
}

func TestBuildWorkbook_HeaderStyleAndWidths(t *testing.T) {
	f, err := services.BuildWorkbook(scoresapi.DefaultMockPlayers(), nil)
	require.NoError(t, err)
	defer f.Close()

	styleID, err := f.GetCellStyle(services.ScoresSheet, "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
	require.NotNil(t, style.Alignment)
	assert.Equal(t, "center", style.Alignment.Horizontal)

	width, err := f.GetColWidth(services.ScoresSheet, "B")
	require.NoError(t, err)
	assert.Equal(t, float64(len("Scottie Scheffler")+2), width)
}

func TestExporter_Write(t *testing.T) {
	exp := services.NewExporter(logger.Nop(), scoresapi.NewMockClient())

	var buf bytes.Buffer
	require.NoError(t, exp.Write(context.Background(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 2)
}

func TestExporter_WriteFetchError(t *testing.T) {
	client := scoresapi.NewMockClient(scoresapi.WithTeamsError(apperrors.Upstream("db down")))
	exp := services.NewExporter(logger.Nop(), client)

	var buf bytes.Buffer
	err := exp.Write(context.Background(), &buf)
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
	assert.Zero(t, buf.Len())
}

package testutil_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/abrezinsky/mastersboard/internal/errors"
	"github.com/abrezinsky/mastersboard/internal/logger"
	"github.com/abrezinsky/mastersboard/internal/testutil"
	"github.com/abrezinsky/mastersboard/pkg/scoresapi"
)

func TestScoresServer_CannedBodiesDecode(t *testing.T) {
	server := testutil.NewScoresServer(t)
	client := scoresapi.NewHTTPClient(server.URL, logger.Nop(), scoresapi.Options{})
	ctx := context.Background()

	players, err := client.FetchScores(ctx)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, 2, players[1].Position.Int())

	teams, err := client.FetchTeamScores(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Nil(t, teams[1].Score)

	result, err := client.GenerateReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/reports/masters.xlsx", result.FilePath)

	assert.Equal(t, 1, server.Hits(scoresapi.ScoresPath))
	assert.Equal(t, 1, server.Hits(scoresapi.GenerateReportPath))
}

func TestScoresServer_Respond(t *testing.T) {
	server := testutil.NewScoresServer(t)
	server.Respond(scoresapi.TeamScoresPath, http.StatusInternalServerError, `{"success":false,"error":"db down"}`)

	client := scoresapi.NewHTTPClient(server.URL, logger.Nop(), scoresapi.Options{})
	_, err := client.FetchTeamScores(context.Background())

	require.Error(t, err)
	assert.Equal(t, "db down", apperrors.UserMessage(err))
}

package tabroom

import (
	"context"
	"testing"
	"time"

	devenv "tabroomapi/dev/env"

	"github.com/stretchr/testify/require"
)

func liveClient(t *testing.T) (*Client, devenv.TabroomTestConfig) {
	config, err := devenv.ReadTabroomTestConfig()
	if err != nil || config.Username == "" {
		t.Skipf("no live account configured in dev/.state/%s", devenv.TabroomTestConfigFile)
	}
	if testing.Short() {
		t.Skip("skipping live test in short mode")
	}

	client, err := NewClient(Options{
		BaseUrl:        config.BaseUrl,
		MaxConcurrency: 4,
	})
	require.Nil(t, err)
	t.Cleanup(client.Close)
	return client, config
}

func TestLiveSession(t *testing.T) {
	client, config := liveClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	ok, err := client.Login(ctx, config.Username, config.Password)
	require.Nil(t, err)
	require.True(t, ok)
	defer client.Logout(ctx)

	user, err := client.GetCurrentUser(ctx)
	require.Nil(t, err)
	require.NotEmpty(t, user.Email)

	sessions, err := client.GetCurrentSessions(ctx)
	require.Nil(t, err)
	require.NotEmpty(t, sessions)

	if config.JudgeId > 0 {
		paradigm, err := client.GetJudgeParadigm(ctx, config.JudgeId)
		require.Nil(t, err)
		require.NotEmpty(t, paradigm)
	}

	history, err := client.GetEntryHistory(ctx, 1)
	require.Nil(t, err)
	for _, entry := range history {
		require.NotEmpty(t, entry.Tournament.Name)
	}
}

func TestLiveTournament(t *testing.T) {
	client, config := liveClient(t)
	if config.TournamentId <= 0 {
		t.Skip("no tournament_id configured")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	tourney, err := client.GetTournament(ctx, config.TournamentId)
	require.Nil(t, err)
	require.NotEmpty(t, tourney.Name)
	require.NotEmpty(t, tourney.Events)
}

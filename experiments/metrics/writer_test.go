package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "cutoff")
	require.NoError(t, err)
	require.Equal(t, "cutoff", filepath.Base(filepath.Dir(w.Dir())))

	t.Run("agent configs", func(t *testing.T) {
		require.NoError(t, w.WriteAgentConfigs([]AgentConfig{
			{ID: 1, Kind: "mcts", Goroutines: 4, Duration: 10 * time.Millisecond, Cutoff: 50},
			{ID: 2, Kind: "alphabeta", Depth: 3},
		}))

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, []string{"1", "mcts", "4", "10ms", "0", "50", "0"}, rows[1])
		require.Equal(t, []string{"2", "alphabeta", "0", "0s", "0", "0", "3"}, rows[2])
	})

	t.Run("game records", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, w.WriteGameRecords([]GameRecord{{
			ID: 1, Agent1: 1, Agent2: 2,
			GameMetric: GameMetric{StartingPlayer: 1, Winner: "Player2", Reason: "few pieces", StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, TotalMoves: 40},
		}}))

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, "winner", rows[0][4])
		require.Equal(t, []string{"1", "1", "2", "1", "Player2", "few pieces", "2024-01-01T00:00:00Z", "2024-01-01T00:00:01Z", "1s", "40"}, rows[1])
	})

	t.Run("move records", func(t *testing.T) {
		require.NoError(t, w.WriteMoveRecords([]MoveRecord{
			{Game: 1, MoveMetric: MoveMetric{Step: 1, Player: 1, SearchMetric: SearchMetric{Episodes: 100, FullPlayouts: 3, IsTreeReset: true}}},
			{Game: 1, MoveMetric: MoveMetric{Step: 2, Player: 2, SearchMetric: SearchMetric{Depth: 3, Nodes: 812}}},
		}))

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, []string{"1", "1", "1", "0s", "100", "3", "true", "0", "0"}, rows[1])
		require.Equal(t, "812", rows[2][8])
	})
}

func TestCollector(t *testing.T) {
	t.Run("counts episodes and playouts", func(t *testing.T) {
		c := NewCollector()
		c.Start(4, 50)
		c.SetTreeReset(true)
		for i := 0; i < 5; i++ {
			c.AddEpisode()
		}
		c.AddFullPlayout()

		got := c.Complete()
		require.Equal(t, 4, got.Goroutines)
		require.Equal(t, 50, got.Cutoff)
		require.Equal(t, 5, got.Episodes)
		require.Equal(t, 1, got.FullPlayouts)
		require.True(t, got.IsTreeReset)
	})

	t.Run("start clears the previous search", func(t *testing.T) {
		c := NewCollector()
		c.Start(1, 10)
		c.AddEpisode()
		c.Start(1, 10)

		require.Zero(t, c.Complete().Episodes)
	})

	t.Run("dummy collector reports nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(4, 50)
		c.AddEpisode()

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

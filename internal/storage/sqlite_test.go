package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, s *Store, gameID string, score, lines int) {
	t.Helper()
	_, err := s.SaveScore(ScoreEntry{GameID: gameID, Score: score, Lines: lines, Width: 10, Height: 20})
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	save(t, store, "blockfall", 7, 7)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("blockfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 7 {
		t.Errorf("HighScore() = %d, want 7", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveScore(ScoreEntry{
		GameID: "blockfall",
		Player: "alice",
		Score:  12,
		Lines:  12,
		Pieces: 48,
		Width:  10,
		Height: 20,
	})
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveScore() id = %d, want positive", id)
	}
	save(t, store, "blockfall", 3, 3)
	save(t, store, "blockfall", 20, 20)
	save(t, store, "blockfall_mini", 5, 5)

	scores, err := store.TopScores("blockfall", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("TopScores() returned %d entries, want 3", len(scores))
	}

	want := []int{20, 12, 3}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d].Score = %d, want %d", i, scores[i].Score, w)
		}
	}

	alice := scores[1]
	if alice.Player != "alice" || alice.Pieces != 48 || alice.Width != 10 || alice.Height != 20 {
		t.Errorf("round-tripped entry = %+v", alice)
	}
	if alice.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}

	mini, err := store.TopScores("blockfall_mini", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(mini) != 1 {
		t.Errorf("Expected 1 mini score, got %d", len(mini))
	}
}

func TestStoreSaveRejectsEmptyGame(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore(ScoreEntry{Score: 1}); err == nil {
		t.Error("SaveScore() with empty game id should fail")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		save(t, store, "test", (i+1)*10, i+1)
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"explicit limit", 3, 3},
		{"default limit", 0, 5},
		{"limit above count", 50, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scores, err := store.TopScores("test", tc.limit)
			if err != nil {
				t.Fatalf("TopScores() failed: %v", err)
			}
			if len(scores) != tc.want {
				t.Errorf("TopScores(%d) returned %d entries, want %d", tc.limit, len(scores), tc.want)
			}
			if scores[0].Score != 50 {
				t.Errorf("top score = %d, want 50", scores[0].Score)
			}
		})
	}
}

func TestStoreTiesFavorEarlierGame(t *testing.T) {
	store := openTestStore(t)

	first, _ := store.SaveScore(ScoreEntry{GameID: "blockfall", Player: "first", Score: 4})
	store.SaveScore(ScoreEntry{GameID: "blockfall", Player: "second", Score: 4})

	scores, err := store.TopScores("blockfall", 1)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].ID != first {
		t.Errorf("tie should go to the earlier game, got %+v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("blockfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	save(t, store, "blockfall", 10, 10)
	save(t, store, "blockfall", 30, 30)
	save(t, store, "blockfall", 20, 20)

	high, err = store.HighScore("blockfall")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 30 {
		t.Errorf("Expected high score of 30, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "blockfall", 1, 1)
	save(t, store, "blockfall", 2, 2)
	save(t, store, "blockfall_mini", 3, 3)

	if err := store.ClearScores("blockfall"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("blockfall", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}

	mini, _ := store.TopScores("blockfall_mini", 10)
	if len(mini) != 1 {
		t.Errorf("Mini scores should not be affected by clearing blockfall")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		save(t, store, "test", i, i)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("blockfall")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("stats for unplayed game = %+v", empty)
	}

	save(t, store, "blockfall", 2, 2)
	save(t, store, "blockfall", 4, 4)
	save(t, store, "blockfall_mini", 9, 9)

	stats, err := store.GetGameStats("blockfall")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 4 || stats.AvgScore != 3 || stats.TotalLines != 6 {
		t.Errorf("GetGameStats() = %+v", stats)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("GetAllGamesStats() returned %d games, want 2", len(all))
	}
	if all["blockfall_mini"].HighScore != 9 {
		t.Errorf("mini high score = %d, want 9", all["blockfall_mini"].HighScore)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	records := []EpisodeRecord{
		{RunID: "run-1", Policy: "greedy", Episode: 0, Seed: 10, Score: 1000, Reward: 1500.5, Steps: 120, MaxTile: 128},
		{RunID: "run-1", Policy: "greedy", Episode: 1, Seed: 11, Score: 500, Reward: 700, Steps: 80, MaxTile: 64},
		{RunID: "run-1", Policy: "greedy", Episode: 2, Seed: 12, Score: 2000, Reward: 2600, Steps: 200, MaxTile: 256},
		{RunID: "run-2", Policy: "random", Episode: 0, Seed: 1, Score: 300, Reward: 400, Steps: 60, MaxTile: 32},
	}
	for _, rec := range records {
		if _, err := store.SaveEpisode(rec); err != nil {
			t.Fatalf("SaveEpisode() failed: %v", err)
		}
	}

	top, err := store.TopEpisodes("greedy", 10)
	if err != nil {
		t.Fatalf("TopEpisodes() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 greedy episodes, got %d", len(top))
	}

	// Should be sorted descending by score
	if top[0].Score != 2000 || top[1].Score != 1000 || top[2].Score != 500 {
		t.Errorf("Episodes not in expected order: %v", top)
	}
	if top[1].Reward != 1500.5 || top[1].Steps != 120 || top[1].MaxTile != 128 || top[1].Seed != 10 {
		t.Errorf("Episode fields not round-tripped: %+v", top[1])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	randomTop, err := store.TopEpisodes("random", 10)
	if err != nil {
		t.Fatalf("TopEpisodes() failed: %v", err)
	}
	if len(randomTop) != 1 {
		t.Errorf("Expected 1 random episode, got %d", len(randomTop))
	}
}

func TestStoreTopEpisodesLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveEpisode(EpisodeRecord{RunID: "r", Policy: "test", Episode: i, Score: (i + 1) * 100})
	}

	top, err := store.TopEpisodes("test", 3)
	if err != nil {
		t.Fatalf("TopEpisodes() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 episodes with limit, got %d", len(top))
	}
	if top[0].Score != 500 || top[1].Score != 400 || top[2].Score != 300 {
		t.Errorf("Episodes not in expected order: %v", top)
	}
}

func TestStoreSaveEpisodesBatch(t *testing.T) {
	store := openTestStore(t)

	batch := []EpisodeRecord{
		{RunID: "batch", Policy: "lookahead", Episode: 2, Score: 30, MaxTile: 16},
		{RunID: "batch", Policy: "lookahead", Episode: 0, Score: 10, MaxTile: 8},
		{RunID: "batch", Policy: "lookahead", Episode: 1, Score: 20, MaxTile: 32},
	}
	if err := store.SaveEpisodes(batch); err != nil {
		t.Fatalf("SaveEpisodes() failed: %v", err)
	}

	run, err := store.RunEpisodes("batch")
	if err != nil {
		t.Fatalf("RunEpisodes() failed: %v", err)
	}
	if len(run) != 3 {
		t.Fatalf("Expected 3 episodes in run, got %d", len(run))
	}
	for i, r := range run {
		if r.Episode != i {
			t.Errorf("RunEpisodes()[%d].Episode = %d, want %d", i, r.Episode, i)
		}
	}
}

func TestStoreBestTile(t *testing.T) {
	store := openTestStore(t)

	// No episodes yet
	best, err := store.BestTile("greedy")
	if err != nil {
		t.Fatalf("BestTile() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best tile of 0 for empty policy, got %d", best)
	}

	store.SaveEpisode(EpisodeRecord{RunID: "r", Policy: "greedy", MaxTile: 256})
	store.SaveEpisode(EpisodeRecord{RunID: "r", Policy: "greedy", MaxTile: 1024})
	store.SaveEpisode(EpisodeRecord{RunID: "r", Policy: "random", MaxTile: 2048})

	best, err = store.BestTile("greedy")
	if err != nil {
		t.Fatalf("BestTile() failed: %v", err)
	}
	if best != 1024 {
		t.Errorf("Expected best tile 1024, got %d", best)
	}
}

func TestStoreClearEpisodes(t *testing.T) {
	store := openTestStore(t)

	store.SaveEpisode(EpisodeRecord{RunID: "r", Policy: "greedy", Score: 100})
	store.SaveEpisode(EpisodeRecord{RunID: "r", Policy: "random", Score: 200})

	if err := store.ClearEpisodes("greedy"); err != nil {
		t.Fatalf("ClearEpisodes() failed: %v", err)
	}

	greedy, _ := store.TopEpisodes("greedy", 10)
	if len(greedy) != 0 {
		t.Errorf("Expected no greedy episodes after clear, got %d", len(greedy))
	}

	random, _ := store.TopEpisodes("random", 10)
	if len(random) != 1 {
		t.Errorf("Clear should not affect other policies, got %d random episodes", len(random))
	}
}

package engine

import (
	"context"
	"testing"

	"github.com/ecoledger/ecoledger/internal/domain"
)

func TestComposeLeaderboard(t *testing.T) {
	comparison := []domain.LeaderboardEntry{
		{Name: "A", Tokens: 500},
		{Name: "B", Tokens: 300},
		{Name: "C", Tokens: 100},
	}

	ranked := ComposeLeaderboard(comparison, "Me", 350.4, 5)

	if len(ranked) != 4 {
		t.Fatalf("rows = %d, want 4", len(ranked))
	}
	wantOrder := []string{"A", "Me", "B", "C"}
	for i, name := range wantOrder {
		if ranked[i].Name != name {
			t.Errorf("rank %d = %q, want %q", i+1, ranked[i].Name, name)
		}
		if ranked[i].Rank != i+1 {
			t.Errorf("Rank field = %d, want %d", ranked[i].Rank, i+1)
		}
	}

	if ranked[1].Tokens != 350 {
		t.Errorf("local tokens = %d, want 350 (rounded to int)", ranked[1].Tokens)
	}
	if !ranked[1].You {
		t.Error("local row not flagged")
	}
}

func TestComposeLeaderboard_TruncatesToSize(t *testing.T) {
	comparison := []domain.LeaderboardEntry{
		{Name: "A", Tokens: 900},
		{Name: "B", Tokens: 800},
		{Name: "C", Tokens: 700},
		{Name: "D", Tokens: 600},
		{Name: "E", Tokens: 500},
	}

	ranked := ComposeLeaderboard(comparison, "Me", 10, 5)
	if len(ranked) != 5 {
		t.Fatalf("rows = %d, want 5", len(ranked))
	}
	// The local user (10 tokens) fell off the top five.
	for _, r := range ranked {
		if r.You {
			t.Error("local user should have been truncated out")
		}
	}
}

func TestComposeLeaderboard_DefaultName(t *testing.T) {
	ranked := ComposeLeaderboard(nil, "", 50, 5)
	if len(ranked) != 1 {
		t.Fatalf("rows = %d, want 1", len(ranked))
	}
	if ranked[0].Name != domain.DefaultDisplayName {
		t.Errorf("name = %q, want default", ranked[0].Name)
	}
}

func TestStaticComparisonSource(t *testing.T) {
	set := StaticComparisonSource{}.FetchComparisonSet(context.Background())
	if len(set) == 0 {
		t.Fatal("comparison set is empty")
	}
	for _, e := range set {
		if e.Name == "" || e.Tokens <= 0 {
			t.Errorf("implausible comparison row %+v", e)
		}
	}
}

func TestEngineLeaderboard_LocalUserRanked(t *testing.T) {
	eng, store, _ := newTestEngine(t, "2024-01-01")
	ctx := context.Background()

	ranked := eng.Leaderboard(ctx)
	if len(ranked) != 5 {
		t.Fatalf("rows = %d, want 5", len(ranked))
	}
	// Local user at 0 tokens ranks last of five.
	if !ranked[4].You {
		t.Errorf("expected local user last, got %+v", ranked[4])
	}

	// The composed view rides along as a display cache on the next save.
	if _, err := eng.RecordReduction(ctx, Reduction{CurrentTonnes: 0.010, Date: "2024-01-01"}); err != nil {
		t.Fatal(err)
	}
	if len(store.state.LeaderboardCache) != 5 {
		t.Errorf("persisted cache rows = %d, want 5", len(store.state.LeaderboardCache))
	}
}

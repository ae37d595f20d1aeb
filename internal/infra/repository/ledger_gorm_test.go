package repository

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/service-booking/internal/testfixtures"
)

func TestLedger_Accumulates(t *testing.T) {
	repo := NewLedgerGormRepository(testfixtures.NewSQLite(t))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := repo.AddContributionPoints(ctx, testfixtures.WorkerID, 10); err != nil {
			t.Fatalf("add points: %v", err)
		}
	}
	points, err := repo.ContributionPoints(ctx, testfixtures.WorkerID)
	if err != nil || points != 20 {
		t.Fatalf("expected 20 points, got %d %v", points, err)
	}

	for i := 0; i < 3; i++ {
		if err := repo.IncrementCancellationCount(ctx, testfixtures.CustomerID, "2025-01"); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}
	if err := repo.IncrementCancellationCount(ctx, testfixtures.CustomerID, "2025-02"); err != nil {
		t.Fatalf("increment: %v", err)
	}

	jan, _ := repo.CancellationCount(ctx, testfixtures.CustomerID, "2025-01")
	feb, _ := repo.CancellationCount(ctx, testfixtures.CustomerID, "2025-02")
	if jan != 3 || feb != 1 {
		t.Fatalf("expected 3 and 1, got %d and %d", jan, feb)
	}
}

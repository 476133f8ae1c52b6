package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/claimlens/claimlens/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleReport(id string) *model.FactCheckReport {
	return &model.FactCheckReport{
		ID:           id,
		OriginalText: "the moon is made of cheese",
		FinalVerdict: model.VerdictFalse,
		FinalScore:   12,
		Reasoning:    "No source supports the claim.",
		Metadata: model.ReportMetadata{
			MethodUsed: model.MethodStatistical,
		},
	}
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, sampleReport("r-1")); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "r-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.FinalVerdict != model.VerdictFalse || got.FinalScore != 12 {
		t.Errorf("got %+v, want the saved report", got)
	}
	if got.Metadata.MethodUsed != model.MethodStatistical {
		t.Error("nested metadata should round-trip")
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, sampleReport("r-1")); err != nil {
		t.Fatal(err)
	}

	updated := sampleReport("r-1")
	updated.FinalScore = 40
	if err := s.Save(ctx, updated); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "r-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.FinalScore != 40 {
		t.Errorf("FinalScore = %d, want the replaced value 40", got.FinalScore)
	}

	list, err := s.List(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("len(list) = %d, want 1 after replace", len(list))
	}
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"r-1", "r-2", "r-3"} {
		if err := s.Save(ctx, sampleReport(id)); err != nil {
			t.Fatal(err)
		}
	}

	list, err := s.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want the limit 2", len(list))
	}
	for _, row := range list {
		if row.OriginalText == "" || row.Verdict == "" {
			t.Errorf("summary row incomplete: %+v", row)
		}
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, sampleReport("r-1")); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "r-1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "r-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

package roster

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func boolPtr(v bool) *bool { return &v }

func newTestService() *Service {
	svc := NewService(NewMemoryRepo())
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	svc.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}
	return svc
}

func TestSetRaisedImpliesOwned(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	mark, err := svc.Set(ctx, "u1", "silverash", MarkUpdate{Raised: boolPtr(true)})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !mark.Raised || !mark.Owned {
		t.Fatalf("raised mark must imply owned, got %+v", mark)
	}

	changes, err := svc.Changelog(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("Changelog: %v", err)
	}
	if len(changes) != 2 {
		t.Fatalf("expected raised and owned changelog entries, got %d", len(changes))
	}
}

func TestSetNoChangeWritesNothing(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Set(ctx, "u1", "kroos", MarkUpdate{Owned: boolPtr(true)}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	first, _ := svc.Changelog(ctx, "u1", 0)

	if _, err := svc.Set(ctx, "u1", "kroos", MarkUpdate{Owned: boolPtr(true)}); err != nil {
		t.Fatalf("repeat Set: %v", err)
	}
	second, _ := svc.Changelog(ctx, "u1", 0)

	if len(second) != len(first) {
		t.Fatalf("idempotent update appended changelog entries: %d -> %d", len(first), len(second))
	}
}

func TestSetRejectsEmptyOperatorID(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Set(context.Background(), "u1", "", MarkUpdate{Owned: boolPtr(true)}); err == nil {
		t.Fatal("expected error for empty operatorId")
	}
}

func TestImportCountsOnlyNewOwnership(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Set(ctx, "u1", "exusiai", MarkUpdate{Owned: boolPtr(true)}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	changed, err := svc.Import(ctx, "u1", []string{"exusiai", "texas", "texas", "", "lappland"})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if changed != 2 {
		t.Fatalf("imported = %d, want 2", changed)
	}

	ids, err := svc.OwnedOperatorIDs(ctx, "u1")
	if err != nil {
		t.Fatalf("OwnedOperatorIDs: %v", err)
	}
	want := []string{"exusiai", "lappland", "texas"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("owned ids = %v, want %v", ids, want)
	}
}

func TestIDFiltersSelectTheRightMarks(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Set(ctx, "u1", "saria", MarkUpdate{Owned: boolPtr(true), WantToUse: boolPtr(true)}); err != nil {
		t.Fatalf("Set saria: %v", err)
	}
	if _, err := svc.Set(ctx, "u1", "surtr", MarkUpdate{Raised: boolPtr(true)}); err != nil {
		t.Fatalf("Set surtr: %v", err)
	}

	raised, _ := svc.RaisedOperatorIDs(ctx, "u1")
	if !reflect.DeepEqual(raised, []string{"surtr"}) {
		t.Fatalf("raised = %v, want [surtr]", raised)
	}
	wantToUse, _ := svc.WantToUseOperatorIDs(ctx, "u1")
	if !reflect.DeepEqual(wantToUse, []string{"saria"}) {
		t.Fatalf("wantToUse = %v, want [saria]", wantToUse)
	}
	owned, _ := svc.OwnedOperatorIDs(ctx, "u1")
	if !reflect.DeepEqual(owned, []string{"saria", "surtr"}) {
		t.Fatalf("owned = %v, want [saria surtr]", owned)
	}
}

func TestChangelogNewestFirst(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Set(ctx, "u1", "first", MarkUpdate{Owned: boolPtr(true)}); err != nil {
		t.Fatalf("Set first: %v", err)
	}
	if _, err := svc.Set(ctx, "u1", "second", MarkUpdate{Owned: boolPtr(true)}); err != nil {
		t.Fatalf("Set second: %v", err)
	}

	changes, err := svc.Changelog(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("Changelog: %v", err)
	}
	if len(changes) != 1 || changes[0].OperatorID != "second" {
		t.Fatalf("expected newest entry for second, got %+v", changes)
	}
}

func TestKnownOperatorGuard(t *testing.T) {
	svc := newTestService()
	svc.KnownOperator = func(id string) bool { return id == "kroos" }
	ctx := context.Background()

	if _, err := svc.Set(ctx, "u1", "nonexistent", MarkUpdate{Owned: boolPtr(true)}); err != ErrUnknownOperator {
		t.Fatalf("expected ErrUnknownOperator, got %v", err)
	}

	changed, err := svc.Import(ctx, "u1", []string{"kroos", "nonexistent"})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if changed != 1 {
		t.Fatalf("import should skip unknown ids, changed = %d", changed)
	}
	ids, err := svc.OwnedOperatorIDs(ctx, "u1")
	if err != nil {
		t.Fatalf("OwnedOperatorIDs: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"kroos"}) {
		t.Fatalf("owned ids = %v", ids)
	}
}

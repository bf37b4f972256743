package gamedata

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	operators := `[
  {"id": "gavial", "name": "Gavial", "rarity": 4, "class": "Medic", "global": true},
  {"id": "mudrock", "name": "Mudrock", "rarity": 6, "class": "Defender", "global": true}
]`
	if err := os.WriteFile(filepath.Join(dir, "operators.json"), []byte(operators), 0o644); err != nil {
		t.Fatalf("write operators: %v", err)
	}

	if err := os.MkdirAll(filepath.Join(dir, "niches"), 0o755); err != nil {
		t.Fatalf("mkdir niches: %v", err)
	}
	healing := `{
  "name": "Healing",
  "description": "Operators that restore HP.",
  "tiers": {
    "S": {"gavial": "strong single-target healing"},
    "A": {"mudrock": ["self-sustain only", "E2"]}
  }
}`
	if err := os.WriteFile(filepath.Join(dir, "niches", "healing.json"), []byte(healing), 0o644); err != nil {
		t.Fatalf("write niche: %v", err)
	}
	return dir
}

func TestStoreLoadNormalizesEntries(t *testing.T) {
	store, err := NewStore(writeDataDir(t))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	snapshot := store.Snapshot()
	niche, ok := snapshot.Niche("healing")
	if !ok {
		t.Fatalf("expected healing niche")
	}

	sTier := niche.Tiers[TierS]
	if len(sTier) != 1 || sTier[0].OperatorID != "gavial" || sTier[0].Level != "" {
		t.Fatalf("bare-string entry not normalized: %+v", sTier)
	}
	aTier := niche.Tiers[TierA]
	if len(aTier) != 1 || aTier[0].Level != "E2" || aTier[0].Note != "self-sustain only" {
		t.Fatalf("pair entry not normalized: %+v", aTier)
	}
}

func TestStoreReloadKeepsOldSnapshotOnError(t *testing.T) {
	dir := writeDataDir(t)
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	before := store.Snapshot()

	if err := os.WriteFile(filepath.Join(dir, "operators.json"), []byte("{broken"), 0o644); err != nil {
		t.Fatalf("corrupt operators: %v", err)
	}
	if err := store.Reload(); err == nil {
		t.Fatalf("expected reload error for corrupt data")
	}
	if store.Snapshot() != before {
		t.Fatalf("snapshot must stay on reload failure")
	}
}

func TestStoreRejectsBadRarity(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "operators.json"),
		[]byte(`[{"id": "x", "rarity": 9, "class": "Guard"}]`), 0o644); err != nil {
		t.Fatalf("write operators: %v", err)
	}
	if _, err := NewStore(dir); err == nil {
		t.Fatalf("expected error for out-of-range rarity")
	}
}

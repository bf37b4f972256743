package advisor

import (
	"strings"
	"testing"

	"arknights-backend/internal/gamedata"
)

func snapshotWith(niches []gamedata.Niche, operators ...gamedata.Operator) *gamedata.Snapshot {
	return gamedata.NewSnapshot(operators, niches)
}

func nicheOf(code string, ids ...string) gamedata.Niche {
	entries := make([]gamedata.Entry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, gamedata.Entry{OperatorID: id})
	}
	return gamedata.Niche{Code: code, Tiers: map[gamedata.Tier][]gamedata.Entry{gamedata.TierA: entries}}
}

func TestRecommendNextEmptyPool(t *testing.T) {
	snapshot := snapshotWith(nil, gamedata.Operator{ID: "kroos", Rarity: 3, Class: gamedata.ClassSniper})

	rec := RecommendNext(snapshot, []string{"kroos"}, nil, []string{gamedata.ClassMedic}, "")

	if rec.Operator != nil {
		t.Fatalf("expected nil operator, got %+v", rec.Operator)
	}
	if rec.Reasoning == "" {
		t.Fatal("expected an explanation for the empty result")
	}
	if rec.Score != 0 {
		t.Fatalf("expected score 0, got %v", rec.Score)
	}
}

func TestRecommendNextPrefersMissingRequiredNiche(t *testing.T) {
	ops := []gamedata.Operator{
		{ID: "shining", Name: "Shining", Rarity: 6, Class: gamedata.ClassMedic},
		{ID: "nightingale", Name: "Nightingale", Rarity: 6, Class: gamedata.ClassMedic},
	}
	niches := []gamedata.Niche{
		nicheOf("healing", "shining", "nightingale"),
		nicheOf("buffing", "nightingale"),
	}
	snapshot := snapshotWith(niches, ops...)

	// Team already has no healer; both candidates fill it, but nightingale
	// also adds buffing and must win on the multi-niche bonus.
	rec := RecommendNext(snapshot, []string{"shining", "nightingale"}, nil, []string{gamedata.ClassMedic}, "")

	if rec.Operator == nil || rec.Operator.ID != "nightingale" {
		t.Fatalf("expected nightingale, got %+v", rec.Operator)
	}
	if !strings.Contains(rec.Reasoning, "healing") {
		t.Fatalf("reasoning should mention healing: %q", rec.Reasoning)
	}
}

func TestRecommendNextSkipsTeamMembers(t *testing.T) {
	ops := []gamedata.Operator{
		{ID: "saria", Name: "Saria", Rarity: 6, Class: gamedata.ClassDefender},
		{ID: "cuora", Name: "Cuora", Rarity: 4, Class: gamedata.ClassDefender},
	}
	snapshot := snapshotWith([]gamedata.Niche{nicheOf("tanking", "saria", "cuora")}, ops...)

	rec := RecommendNext(snapshot, []string{"saria", "cuora"}, []string{"saria"}, []string{gamedata.ClassDefender}, "")

	if rec.Operator == nil || rec.Operator.ID != "cuora" {
		t.Fatalf("expected cuora, got %+v", rec.Operator)
	}
}

func TestRecommendNextExtraIDActsAsRaised(t *testing.T) {
	ops := []gamedata.Operator{
		{ID: "surtr", Name: "Surtr", Rarity: 6, Class: gamedata.ClassGuard},
	}
	snapshot := snapshotWith([]gamedata.Niche{nicheOf("arts-dps", "surtr")}, ops...)

	rec := RecommendNext(snapshot, nil, nil, []string{gamedata.ClassGuard}, "surtr")

	if rec.Operator == nil || rec.Operator.ID != "surtr" {
		t.Fatalf("expected surtr via extraId, got %+v", rec.Operator)
	}
}

func TestRecommendNextSaturationPenalty(t *testing.T) {
	ops := []gamedata.Operator{
		{ID: "h1", Rarity: 4, Class: gamedata.ClassMedic},
		{ID: "h2", Rarity: 4, Class: gamedata.ClassMedic},
		{ID: "h3", Rarity: 4, Class: gamedata.ClassMedic},
		{ID: "h4", Rarity: 4, Class: gamedata.ClassMedic},
		{ID: "cc", Rarity: 4, Class: gamedata.ClassSupporter},
	}
	niches := []gamedata.Niche{
		nicheOf("healing", "h1", "h2", "h3", "h4"),
		nicheOf("crowd-control", "cc"),
	}
	snapshot := snapshotWith(niches, ops...)

	// Three healers already on the team saturate healing; a fourth healer
	// scores 40 + 10 - 20 = 30 while the crowd-control pick scores
	// 40 + 75 = 115.
	rec := RecommendNext(snapshot, []string{"h4", "cc"}, []string{"h1", "h2", "h3"}, nil, "")

	if rec.Operator == nil || rec.Operator.ID != "cc" {
		t.Fatalf("expected cc, got %+v", rec.Operator)
	}
	if rec.Score != 115 {
		t.Fatalf("score = %v, want 115", rec.Score)
	}
}

func TestRecommendNextStrengthensUnderfilledNiche(t *testing.T) {
	ops := []gamedata.Operator{
		{ID: "h1", Rarity: 4, Class: gamedata.ClassMedic},
		{ID: "h2", Name: "Ptilopsis", Rarity: 4, Class: gamedata.ClassMedic},
	}
	snapshot := snapshotWith([]gamedata.Niche{nicheOf("healing", "h1", "h2")}, ops...)

	// One healer on a team that wants up to two: a second healer earns the
	// strengthen credit, 40 rarity + 50, not the over-cover 10.
	rec := RecommendNext(snapshot, []string{"h2"}, []string{"h1"}, nil, "")

	if rec.Operator == nil || rec.Operator.ID != "h2" {
		t.Fatalf("expected h2, got %+v", rec.Operator)
	}
	if rec.Score != 90 {
		t.Fatalf("score = %v, want 90", rec.Score)
	}
	if !strings.Contains(rec.Reasoning, "strengthens healing") {
		t.Fatalf("reasoning should mention strengthening: %q", rec.Reasoning)
	}
}

func TestRecommendNextStrengthensUnderfilledPreferredNiche(t *testing.T) {
	ops := []gamedata.Operator{
		{ID: "b1", Rarity: 4, Class: gamedata.ClassSupporter},
		{ID: "b2", Rarity: 4, Class: gamedata.ClassSupporter},
		{ID: "fr1", Rarity: 4, Class: gamedata.ClassSpecialist},
		{ID: "fr2", Rarity: 4, Class: gamedata.ClassSpecialist},
	}
	niches := []gamedata.Niche{
		nicheOf("buffing", "b1", "b2"),
		nicheOf("fast-redeploy", "fr1", "fr2"),
	}
	snapshot := snapshotWith(niches, ops...)

	// buffing wants up to two, so a second buffer strengthens it for +30.
	// fast-redeploy caps at one; a second one only over-covers for +5.
	rec := RecommendNext(snapshot, []string{"b2", "fr2"}, []string{"b1", "fr1"}, nil, "")

	if rec.Operator == nil || rec.Operator.ID != "b2" {
		t.Fatalf("expected b2, got %+v", rec.Operator)
	}
	if rec.Score != 70 {
		t.Fatalf("score = %v, want 70", rec.Score)
	}
}

func TestRecommendNextExcludedNichesIgnored(t *testing.T) {
	ops := []gamedata.Operator{
		{ID: "plain", Rarity: 5, Class: gamedata.ClassGuard},
		{ID: "gimmick", Rarity: 5, Class: gamedata.ClassGuard},
	}
	niches := []gamedata.Niche{
		nicheOf("free", "gimmick"),
		nicheOf("sleep", "gimmick"),
		nicheOf("global-range", "gimmick"),
	}
	snapshot := snapshotWith(niches, ops...)

	// gimmick's excluded niches contribute nothing, so both score on
	// rarity alone and the earlier candidate wins.
	rec := RecommendNext(snapshot, []string{"plain", "gimmick"}, nil, nil, "")

	if rec.Operator == nil || rec.Operator.ID != "plain" {
		t.Fatalf("expected plain on tie, got %+v", rec.Operator)
	}
	if rec.Score != 50 {
		t.Fatalf("score = %v, want rarity-only 50", rec.Score)
	}
}

func TestRecommendNextVarietyBonusForUnknownNiche(t *testing.T) {
	ops := []gamedata.Operator{
		{ID: "quirky", Rarity: 3, Class: gamedata.ClassSpecialist},
	}
	snapshot := snapshotWith([]gamedata.Niche{nicheOf("shift", "quirky")}, ops...)

	rec := RecommendNext(snapshot, []string{"quirky"}, nil, nil, "")

	if rec.Score != 45 {
		t.Fatalf("score = %v, want 30 rarity + 15 variety", rec.Score)
	}
}

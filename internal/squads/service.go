package squads

import (
	"context"
	"errors"
	"fmt"
)

// Service reads and updates squad presets, falling back to the compiled-in
// defaults for mode ids that ship with the game.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// PresetsFor returns the presets configured for an IS mode. Unknown modes
// return ErrNotFound; callers map that to a null recommendation, not a
// failure.
func (s *Service) PresetsFor(ctx context.Context, isID string) ([]Preset, error) {
	if s != nil && s.Repo != nil {
		presets, err := s.Repo.ListByIS(ctx, isID)
		if err == nil {
			return presets, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	if presets, ok := defaultPresets()[isID]; ok {
		return presets, nil
	}
	return nil, ErrNotFound
}

// Update validates and persists presets for a mode.
func (s *Service) Update(ctx context.Context, isID string, presets []Preset) error {
	if s == nil || s.Repo == nil {
		return errors.New("squads service not configured")
	}
	if isID == "" {
		return errors.New("is id is required")
	}
	seen := make(map[string]struct{}, len(presets))
	for i, preset := range presets {
		if preset.SquadID == "" {
			return fmt.Errorf("presets[%d]: squadId is required", i)
		}
		if _, dup := seen[preset.SquadID]; dup {
			return fmt.Errorf("duplicate squadId %q", preset.SquadID)
		}
		seen[preset.SquadID] = struct{}{}
	}
	return s.Repo.SaveForIS(ctx, isID, presets)
}

// defaultPresets ships a baseline configuration for the current IS mode so
// a fresh deployment recommends something sensible before any admin edit.
func defaultPresets() map[string][]Preset {
	return map[string][]Preset{
		"is4": {
			{
				ISID:    "is4",
				SquadID: "leader",
				Name:    "Leader Squad",
				HopeCost: map[int]map[string]int{
					6: {"Vanguard": 4, "Guard": 4, "Defender": 6, "Sniper": 6, "Caster": 6, "Medic": 6, "Supporter": 6, "Specialist": 6},
				},
				AutoPromoted: []string{"Vanguard", "Guard"},
			},
			{
				ISID:    "is4",
				SquadID: "gathering",
				Name:    "Gathering Squad",
				HopeCost: map[int]map[string]int{
					6: {"Vanguard": 6, "Guard": 6, "Defender": 4, "Sniper": 6, "Caster": 6, "Medic": 6, "Supporter": 4, "Specialist": 6},
				},
				AutoPromoted: []string{"Defender", "Supporter"},
			},
			{
				ISID:    "is4",
				SquadID: "spearhead",
				Name:    "Spearhead Squad",
				HopeCost: map[int]map[string]int{
					6: {"Vanguard": 6, "Guard": 6, "Defender": 6, "Sniper": 4, "Caster": 4, "Medic": 6, "Supporter": 6, "Specialist": 6},
				},
				AutoPromoted: []string{"Sniper", "Caster"},
			},
		},
	}
}

package storage

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/watersort/internal/games/watersort"
)

// Setting keys.
const (
	KeyUnlockedLevels = "UnlockedLevels"
	KeyMusicOn        = "MusicOn"
	KeySfxOn          = "SfxOn"
)

// Profile is the persisted state of one player.
type Profile struct {
	store  *Store
	player string
}

// Player returns the profile's player name.
func (p *Profile) Player() string {
	return p.player
}

// GetInt returns an integer setting, or def when unset or unparsable.
func (p *Profile) GetInt(key string, def int) (int, error) {
	v, ok, err := p.store.getSetting(p.player, key)
	if err != nil || !ok {
		return def, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, nil
	}
	return n, nil
}

// SetInt stores an integer setting.
func (p *Profile) SetInt(key string, value int) error {
	return p.store.setSetting(p.player, key, strconv.Itoa(value))
}

// GetBool returns a boolean setting, or def when unset or unparsable.
func (p *Profile) GetBool(key string, def bool) (bool, error) {
	v, ok, err := p.store.getSetting(p.player, key)
	if err != nil || !ok {
		return def, err
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, nil
	}
	return b, nil
}

// SetBool stores a boolean setting.
func (p *Profile) SetBool(key string, value bool) error {
	return p.store.setSetting(p.player, key, strconv.FormatBool(value))
}

// DeleteKey removes a setting.
func (p *Profile) DeleteKey(key string) error {
	return p.store.deleteSetting(p.player, key)
}

// UnlockedLevels returns how many levels the player may start. Always at least 1.
func (p *Profile) UnlockedLevels() (int, error) {
	n, err := p.GetInt(KeyUnlockedLevels, 1)
	return max(n, 1), err
}

// UnlockUpTo raises the unlocked count to at least n and returns the stored count.
// The count is never lowered.
func (p *Profile) UnlockUpTo(n int) (int, error) {
	_, err := p.store.db.Exec(
		`INSERT INTO settings (player, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(player, key) DO UPDATE SET
			value = CAST(MAX(CAST(settings.value AS INTEGER), CAST(excluded.value AS INTEGER)) AS TEXT),
			updated_at = CURRENT_TIMESTAMP`,
		p.player, KeyUnlockedLevels, strconv.Itoa(max(n, 1)),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot unlock levels: %w", err)
	}
	return p.UnlockedLevels()
}

// UnlockAll opens every level.
func (p *Profile) UnlockAll(levelCount int) error {
	return p.SetInt(KeyUnlockedLevels, max(levelCount, 1))
}

// ResetProgress locks every level but the first. Level results are
// deleted too when clearResults is set.
func (p *Profile) ResetProgress(clearResults bool) error {
	if err := p.DeleteKey(KeyUnlockedLevels); err != nil {
		return err
	}
	if !clearResults {
		return nil
	}
	if _, err := p.store.db.Exec("DELETE FROM level_results WHERE player = ?", p.player); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// AudioSettings returns the music and sound effect flags, defaulting to the given values.
func (p *Profile) AudioSettings(musicDef, sfxDef bool) (music, sfx bool, err error) {
	if music, err = p.GetBool(KeyMusicOn, musicDef); err != nil {
		return musicDef, sfxDef, err
	}
	if sfx, err = p.GetBool(KeySfxOn, sfxDef); err != nil {
		return music, sfxDef, err
	}
	return music, sfx, nil
}

// RecordSolve implements watersort.Progress.
// This adapter lets the game save results without a direct storage dependency.
func (p *Profile) RecordSolve(rec watersort.SolveRecord) error {
	_, err := p.store.SaveResult(LevelResult{
		RunID:      rec.RunID.String(),
		Player:     p.player,
		LevelID:    rec.LevelID,
		LevelIndex: rec.LevelIndex,
		Moves:      rec.Moves,
		Undos:      rec.Undos,
		Hints:      rec.Hints,
		Duration:   rec.Duration,
	})
	return err
}

// Best returns the player's best result for a level, or nil when it was never solved.
func (p *Profile) Best(levelID string) (*LevelResult, error) {
	return p.store.BestResult(p.player, levelID)
}

// BestMoves implements watersort.BestMoves.
func (p *Profile) BestMoves(levelID string) (int, error) {
	r, err := p.Best(levelID)
	if err != nil || r == nil {
		return 0, err
	}
	return r.Moves, nil
}

// Ensure Profile implements Progress
var (
	_ watersort.Progress  = (*Profile)(nil)
	_ watersort.BestMoves = (*Profile)(nil)
)

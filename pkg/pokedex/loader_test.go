package pokedex

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func setupTestData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeDataFile(t, dir, "pokemon_base.json", `[
		{"pokedex_number": 150, "name_en": "Mewtwo", "name_ko": "뮤츠",
		 "types": ["psychic"], "base_attack": 300, "base_defense": 182, "base_stamina": 214},
		{"pokedex_number": 6, "name_en": "Charizard", "name_ko": "리자몽",
		 "types": ["fire", "flying"], "base_attack": 223, "base_defense": 173, "base_stamina": 186}
	]`)
	writeDataFile(t, dir, "moves.json", `[
		{"move_id": "psycho_cut", "name_en": "Psycho Cut", "name_ko": "사이코커터", "type": "psychic", "move_type": "fast"},
		{"move_id": "psystrike", "name_en": "Psystrike", "name_ko": "사이코브레이크", "type": "psychic", "power": 90, "move_type": "charged", "is_legacy": true}
	]`)
	writeDataFile(t, dir, "pokemon_moves.json", `[
		{"pokemon_id": 150, "move_id": "psycho_cut", "category": "fast"},
		{"pokemon_id": 150, "move_id": "psystrike", "category": "charged"}
	]`)
	writeDataFile(t, dir, "seasonal_tiers.json", `[
		{"season_id": "2026-s1", "start_date": "2026-01-01", "end_date": "2026-03-31",
		 "pokemon_id": 150, "raid_attack_tier": "S", "gbl_master_tier": "A"}
	]`)
	writeDataFile(t, dir, "raid_counters.json", `[
		{"boss_pokemon_id": 150, "recommended_teams": [
			{"name_ko": "범용 공략팀", "members": [
				{"pokemon_id": 6, "fast_move_id": "psycho_cut", "charged_move_id": "psystrike", "role_ko": "딜러"}
			]}
		]},
		{"boss_pokemon_id": 150, "season_id": "2026-s1", "recommended_teams": [
			{"name_ko": "시즌 공략팀", "members": [
				{"pokemon_id": 6, "fast_move_id": "psycho_cut", "charged_move_id": "psystrike"}
			]}
		]}
	]`)
	writeDataFile(t, dir, "pvp_party_rankings.json", `[
		{"league": "Great", "rankings": [
			{"rank": 1, "team": [{"pokemon_id": 6, "fast_move_id": "psycho_cut", "charged_move_id": "psystrike"}], "estimated_rating": 92.5},
			{"rank": 2, "team": [{"pokemon_id": 150, "fast_move_id": "psycho_cut", "charged_move_id": "psystrike"}], "estimated_rating": 90.1},
			{"rank": 3, "team": [{"pokemon_id": 6, "fast_move_id": "psycho_cut", "charged_move_id": "psystrike"}], "estimated_rating": 88.0}
		]}
	]`)

	return dir
}

func TestService_Lookups(t *testing.T) {
	svc := NewService(setupTestData(t))

	t.Run("by number", func(t *testing.T) {
		p, ok := svc.ByNumber(150)
		require.True(t, ok)
		assert.Equal(t, "뮤츠", p.NameKo)
		assert.Equal(t, 300, p.BaseAttack)

		_, ok = svc.ByNumber(999)
		assert.False(t, ok)
	})

	t.Run("search korean and english", func(t *testing.T) {
		assert.Len(t, svc.Search("뮤츠"), 1)
		assert.Len(t, svc.Search("char"), 1)
		assert.Empty(t, svc.Search("pikachu"))
		assert.Empty(t, svc.Search("  "))
	})

	t.Run("moves grouped by category", func(t *testing.T) {
		set := svc.MovesFor(150)
		require.Len(t, set.Fast, 1)
		require.Len(t, set.Charged, 1)
		assert.Equal(t, "사이코커터", set.Fast[0].NameKo)
		assert.True(t, set.Charged[0].IsLegacy)

		assert.Empty(t, svc.MovesFor(6).Fast, "no move links for this pokemon")
	})

	t.Run("move by id", func(t *testing.T) {
		m, ok := svc.MoveByID("psystrike")
		require.True(t, ok)
		assert.Equal(t, "사이코브레이크", m.NameKo)

		_, ok = svc.MoveByID("hyper_beam")
		assert.False(t, ok)
	})

	t.Run("stats", func(t *testing.T) {
		stats := svc.Stats()
		assert.Equal(t, 2, stats["pokemon_base"])
		assert.Equal(t, 2, stats["moves"])
		assert.Equal(t, 1, stats["seasonal_tiers"])
		assert.Equal(t, 2, stats["raid_counters"])
		assert.Equal(t, 1, stats["pvp_party_rankings"])
	})
}

func TestService_RaidCounters(t *testing.T) {
	svc := NewService(setupTestData(t))

	t.Run("seasonal set wins during season", func(t *testing.T) {
		svc.now = func() time.Time { return time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC) }
		set, ok := svc.RaidCountersFor(150)
		require.True(t, ok)
		require.Len(t, set.RecommendedTeams, 1)
		assert.Equal(t, "시즌 공략팀", set.RecommendedTeams[0].NameKo)
	})

	t.Run("general set outside season", func(t *testing.T) {
		svc.now = func() time.Time { return time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC) }
		set, ok := svc.RaidCountersFor(150)
		require.True(t, ok)
		require.Len(t, set.RecommendedTeams, 1)
		assert.Equal(t, "범용 공략팀", set.RecommendedTeams[0].NameKo)
		assert.Equal(t, "딜러", set.RecommendedTeams[0].Members[0].RoleKo)
	})

	t.Run("unknown boss", func(t *testing.T) {
		_, ok := svc.RaidCountersFor(999)
		assert.False(t, ok)
	})
}

func TestService_PvPRankings(t *testing.T) {
	svc := NewService(setupTestData(t))
	svc.now = func() time.Time { return time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC) }

	t.Run("general rankings fall through season scoping", func(t *testing.T) {
		lr, ok := svc.PvPRankings("Great", 20)
		require.True(t, ok)
		require.Len(t, lr.Rankings, 3)
		assert.Equal(t, 1, lr.Rankings[0].Rank)
		assert.InDelta(t, 92.5, lr.Rankings[0].EstimatedRating, 0.001)
	})

	t.Run("limit caps rankings", func(t *testing.T) {
		lr, ok := svc.PvPRankings("Great", 2)
		require.True(t, ok)
		assert.Len(t, lr.Rankings, 2)
	})

	t.Run("league without data", func(t *testing.T) {
		_, ok := svc.PvPRankings("Master", 20)
		assert.False(t, ok)
	})
}

func TestService_Seasons(t *testing.T) {
	svc := NewService(setupTestData(t))

	t.Run("date inside season", func(t *testing.T) {
		svc.now = func() time.Time { return time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC) }
		assert.Equal(t, "2026-s1", svc.CurrentSeason())

		tier, ok := svc.TierFor(150, "")
		require.True(t, ok)
		assert.Equal(t, "S", tier.RaidAttackTier)
	})

	t.Run("date outside all seasons", func(t *testing.T) {
		svc.now = func() time.Time { return time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC) }
		assert.Empty(t, svc.CurrentSeason())

		_, ok := svc.TierFor(150, "")
		assert.False(t, ok)
	})

	t.Run("explicit season id", func(t *testing.T) {
		tier, ok := svc.TierFor(150, "2026-s1")
		require.True(t, ok)
		assert.Equal(t, "A", tier.GBLMasterTier)
	})
}

func TestService_MissingAndReload(t *testing.T) {
	t.Run("missing files load empty", func(t *testing.T) {
		svc := NewService(t.TempDir())
		assert.Empty(t, svc.All())
		assert.Equal(t, 0, svc.Stats()["pokemon_base"])
	})

	t.Run("reload picks up new files", func(t *testing.T) {
		dir := t.TempDir()
		svc := NewService(dir)
		assert.Empty(t, svc.All())

		writeDataFile(t, dir, "pokemon_base.json",
			`[{"pokedex_number": 25, "name_en": "Pikachu", "name_ko": "피카츄",
			   "types": ["electric"], "base_attack": 112, "base_defense": 96, "base_stamina": 111}]`)
		svc.Reload()

		require.Len(t, svc.All(), 1)
		assert.Equal(t, "피카츄", svc.All()[0].NameKo)
	})

	t.Run("malformed file loads empty", func(t *testing.T) {
		dir := t.TempDir()
		writeDataFile(t, dir, "pokemon_base.json", `{not json`)
		svc := NewService(dir)
		assert.Empty(t, svc.All())
	})
}

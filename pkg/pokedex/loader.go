package pokedex

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

// Service holds the loaded reference data. Reads take a shared lock so
// Reload can swap everything atomically while the API keeps serving.
type Service struct {
	dataDir string
	now     func() time.Time

	mu              sync.RWMutex
	pokemonBase     []Pokemon
	moves           []Move
	pokemonMoves    []PokemonMove
	seasonalTiers   []SeasonalTier
	raidCounters    []RaidCounterSet
	pvpPartyRatings []PvPLeagueRankings
}

// NewService creates the data service and loads all files. Missing files
// are logged and served as empty sets, startup never fails on data.
func NewService(dataDir string) *Service {
	s := &Service{dataDir: dataDir, now: time.Now}
	s.load()
	return s
}

// Reload re-reads all data files from disk
func (s *Service) Reload() {
	s.load()
}

func (s *Service) load() {
	var pokemonBase []Pokemon
	var moves []Move
	var pokemonMoves []PokemonMove
	var seasonalTiers []SeasonalTier
	var raidCounters []RaidCounterSet
	var pvpPartyRatings []PvPLeagueRankings

	loadJSON(filepath.Join(s.dataDir, "pokemon_base.json"), &pokemonBase)
	loadJSON(filepath.Join(s.dataDir, "moves.json"), &moves)
	loadJSON(filepath.Join(s.dataDir, "pokemon_moves.json"), &pokemonMoves)
	loadJSON(filepath.Join(s.dataDir, "seasonal_tiers.json"), &seasonalTiers)
	loadJSON(filepath.Join(s.dataDir, "raid_counters.json"), &raidCounters)
	loadJSON(filepath.Join(s.dataDir, "pvp_party_rankings.json"), &pvpPartyRatings)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pokemonBase = pokemonBase
	s.moves = moves
	s.pokemonMoves = pokemonMoves
	s.seasonalTiers = seasonalTiers
	s.raidCounters = raidCounters
	s.pvpPartyRatings = pvpPartyRatings

	lgr.Printf("[INFO] pokedex data loaded: %d pokemon, %d moves, %d move links, %d tiers, %d raid counter sets, %d pvp rankings",
		len(pokemonBase), len(moves), len(pokemonMoves), len(seasonalTiers), len(raidCounters), len(pvpPartyRatings))
}

func loadJSON(path string, target interface{}) {
	data, err := os.ReadFile(path) //nolint:gosec // path built from configured data dir
	if err != nil {
		lgr.Printf("[WARN] pokedex data file %s not loaded: %v", path, err)
		return
	}
	if err := json.Unmarshal(data, target); err != nil {
		lgr.Printf("[WARN] pokedex data file %s is malformed: %v", path, err)
	}
}

// All returns every known pokemon
func (s *Service) All() []Pokemon {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Pokemon, len(s.pokemonBase))
	copy(out, s.pokemonBase)
	return out
}

// ByNumber looks up a pokemon by pokedex number
func (s *Service) ByNumber(number int) (Pokemon, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.pokemonBase {
		if p.PokedexNumber == number {
			return p, true
		}
	}
	return Pokemon{}, false
}

// Search matches pokemon by Korean or English name, case-insensitive substring
func (s *Service) Search(query string) []Pokemon {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []Pokemon
	for _, p := range s.pokemonBase {
		if strings.Contains(strings.ToLower(p.NameEn), query) ||
			strings.Contains(strings.ToLower(p.NameKo), query) {
			results = append(results, p)
		}
	}
	return results
}

// MovesFor returns the learnable moves for a pokemon, grouped by category
func (s *Service) MovesFor(pokemonID int) MoveSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := make(map[string]Move, len(s.moves))
	for _, m := range s.moves {
		byID[m.MoveID] = m
	}

	var set MoveSet
	for _, pm := range s.pokemonMoves {
		if pm.PokemonID != pokemonID {
			continue
		}
		move, ok := byID[pm.MoveID]
		if !ok {
			continue
		}
		switch pm.Category {
		case "fast":
			set.Fast = append(set.Fast, move)
		case "charged":
			set.Charged = append(set.Charged, move)
		}
	}
	return set
}

// CurrentSeason resolves the season covering today's date, empty when none
func (s *Service) CurrentSeason() string {
	today := s.now().Format("2006-01-02")

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tier := range s.seasonalTiers {
		if tier.StartDate == "" || tier.EndDate == "" {
			continue
		}
		if tier.StartDate <= today && today <= tier.EndDate {
			return tier.SeasonID
		}
	}
	return ""
}

// TierFor returns the seasonal tier entry for a pokemon, current season
// when seasonID is empty
func (s *Service) TierFor(pokemonID int, seasonID string) (SeasonalTier, bool) {
	if seasonID == "" {
		seasonID = s.CurrentSeason()
	}
	if seasonID == "" {
		return SeasonalTier{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tier := range s.seasonalTiers {
		if tier.SeasonID == seasonID && tier.PokemonID == pokemonID {
			return tier, true
		}
	}
	return SeasonalTier{}, false
}

// MoveByID resolves a move by its identifier
func (s *Service) MoveByID(moveID string) (Move, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.moves {
		if m.MoveID == moveID {
			return m, true
		}
	}
	return Move{}, false
}

// RaidCountersFor returns the recommended counter teams for a raid boss.
// A set scoped to the current season wins over a general one.
func (s *Service) RaidCountersFor(bossID int) (RaidCounterSet, bool) {
	season := s.CurrentSeason()

	s.mu.RLock()
	defer s.mu.RUnlock()
	var general RaidCounterSet
	var haveGeneral bool
	for _, set := range s.raidCounters {
		if set.BossPokemonID != bossID {
			continue
		}
		if season != "" && set.SeasonID == season {
			return set, true
		}
		if set.SeasonID == "" {
			general, haveGeneral = set, true
		}
	}
	return general, haveGeneral
}

// PvPRankings returns party rankings for a league, capped at limit.
// A ranking scoped to the current season wins over a general one.
func (s *Service) PvPRankings(league string, limit int) (PvPLeagueRankings, bool) {
	season := s.CurrentSeason()

	s.mu.RLock()
	defer s.mu.RUnlock()
	var general PvPLeagueRankings
	var haveGeneral bool
	for _, lr := range s.pvpPartyRatings {
		if lr.League != league {
			continue
		}
		if season != "" && lr.SeasonID == season {
			return capRankings(lr, limit), true
		}
		if lr.SeasonID == "" {
			general, haveGeneral = lr, true
		}
	}
	if haveGeneral {
		return capRankings(general, limit), true
	}
	return PvPLeagueRankings{}, false
}

func capRankings(lr PvPLeagueRankings, limit int) PvPLeagueRankings {
	if limit > 0 && len(lr.Rankings) > limit {
		lr.Rankings = lr.Rankings[:limit]
	}
	return lr
}

// Stats reports loaded record counts per data set
func (s *Service) Stats() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]int{
		"pokemon_base":       len(s.pokemonBase),
		"moves":              len(s.moves),
		"pokemon_moves":      len(s.pokemonMoves),
		"seasonal_tiers":     len(s.seasonalTiers),
		"raid_counters":      len(s.raidCounters),
		"pvp_party_rankings": len(s.pvpPartyRatings),
	}
}

// DataDir returns the configured data directory, used in status reporting
func (s *Service) DataDir() string {
	if abs, err := filepath.Abs(s.dataDir); err == nil {
		return abs
	}
	return s.dataDir
}

// String implements fmt.Stringer for logging
func (s *Service) String() string {
	stats := s.Stats()
	return fmt.Sprintf("pokedex data from %s (%d pokemon)", s.dataDir, stats["pokemon_base"])
}

// Package pokedex loads Pokemon GO reference data from JSON files and
// provides lookups plus a deterministic IV analyzer for manually entered
// CP/HP readings.
package pokedex

// Pokemon is one pokemon_base.json entry
type Pokemon struct {
	PokedexNumber int      `json:"pokedex_number"`
	NameEn        string   `json:"name_en"`
	NameKo        string   `json:"name_ko"`
	Types         []string `json:"types"`
	BaseAttack    int      `json:"base_attack"`
	BaseDefense   int      `json:"base_defense"`
	BaseStamina   int      `json:"base_stamina"`
	ImageURL      string   `json:"image_url,omitempty"`
}

// Move is one moves.json entry
type Move struct {
	MoveID   string `json:"move_id"`
	NameEn   string `json:"name_en"`
	NameKo   string `json:"name_ko"`
	Type     string `json:"type"`
	Power    int    `json:"power,omitempty"`
	Energy   int    `json:"energy,omitempty"`
	MoveType string `json:"move_type"` // "fast" or "charged"
	IsLegacy bool   `json:"is_legacy,omitempty"`
}

// PokemonMove links a pokemon to a move it can learn
type PokemonMove struct {
	PokemonID int    `json:"pokemon_id"`
	MoveID    string `json:"move_id"`
	Category  string `json:"category"` // "fast" or "charged"
}

// SeasonalTier is a per-season ranking entry for one pokemon
type SeasonalTier struct {
	SeasonID       string `json:"season_id"`
	SeasonNameKo   string `json:"season_name_ko,omitempty"`
	StartDate      string `json:"start_date,omitempty"`
	EndDate        string `json:"end_date,omitempty"`
	PokemonID      int    `json:"pokemon_id"`
	RaidTier       string `json:"raid_tier,omitempty"`
	RaidAttackTier string `json:"raid_attack_tier,omitempty"`
	GBLGreatTier   string `json:"gbl_great_tier,omitempty"`
	GBLUltraTier   string `json:"gbl_ultra_tier,omitempty"`
	GBLMasterTier  string `json:"gbl_master_tier,omitempty"`
	RaidRoleKo     string `json:"raid_role_ko,omitempty"`
}

// MoveSet groups a pokemon's learnable moves by category
type MoveSet struct {
	Fast    []Move `json:"fast"`
	Charged []Move `json:"charged"`
}

// TeamMember is one pokemon slot in a recommended raid or pvp team
type TeamMember struct {
	PokemonID     int    `json:"pokemon_id"`
	FastMoveID    string `json:"fast_move_id"`
	ChargedMoveID string `json:"charged_move_id"`
	RoleKo        string `json:"role_ko,omitempty"`
}

// RaidTeam is one recommended counter team for a raid boss
type RaidTeam struct {
	NameKo        string       `json:"name_ko"`
	DescriptionKo string       `json:"description_ko,omitempty"`
	Members       []TeamMember `json:"members"`
}

// RaidCounterSet is one raid_counters.json entry. An empty season id
// marks a general entry valid in any season.
type RaidCounterSet struct {
	BossPokemonID    int        `json:"boss_pokemon_id"`
	SeasonID         string     `json:"season_id,omitempty"`
	RecommendedTeams []RaidTeam `json:"recommended_teams"`
}

// PvPPartyRanking is one ranked team in a league
type PvPPartyRanking struct {
	Rank            int          `json:"rank"`
	Team            []TeamMember `json:"team"`
	EstimatedRating float64      `json:"estimated_rating"`
	NotesKo         string       `json:"notes_ko,omitempty"`
}

// PvPLeagueRankings is one pvp_party_rankings.json entry. An empty season
// id marks a general entry valid in any season.
type PvPLeagueRankings struct {
	League   string            `json:"league"` // "Great", "Ultra" or "Master"
	SeasonID string            `json:"season_id,omitempty"`
	Rankings []PvPPartyRanking `json:"rankings"`
}

package domain

import "time"

// Analysis is a stored IV estimation result for manually entered stats
type Analysis struct {
	ID           int64     `json:"id"`
	PokemonName  string    `json:"pokemon_name"`
	CP           int       `json:"cp"`
	HP           int       `json:"hp"`
	Level        float64   `json:"level"`
	IVPercentage float64   `json:"iv_percentage"`
	AttackIV     int       `json:"attack_iv"`
	DefenseIV    int       `json:"defense_iv"`
	StaminaIV    int       `json:"stamina_iv"`
	BattleRating string    `json:"battle_rating,omitempty"`
	RaidRating   string    `json:"raid_rating,omitempty"`
	Notes        []string  `json:"notes,omitempty"`
	BestUseCase  string    `json:"best_use_case,omitempty"`
	AnalyzedAt   time.Time `json:"analyzed_at"`
}

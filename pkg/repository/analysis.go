package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/treehi/pogo-tracker/pkg/domain"
)

// AnalysisRepository stores IV estimation results
type AnalysisRepository struct {
	db *sqlx.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *sqlx.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

type analysisRow struct {
	ID           int64      `db:"id"`
	PokemonName  string     `db:"pokemon_name"`
	CP           int        `db:"cp"`
	HP           int        `db:"hp"`
	Level        float64    `db:"level"`
	IVPercentage float64    `db:"iv_percentage"`
	AttackIV     int        `db:"attack_iv"`
	DefenseIV    int        `db:"defense_iv"`
	StaminaIV    int        `db:"stamina_iv"`
	BattleRating string     `db:"battle_rating"`
	RaidRating   string     `db:"raid_rating"`
	Notes        stringList `db:"notes"`
	BestUseCase  string     `db:"best_use_case"`
	AnalyzedAt   time.Time  `db:"analyzed_at"`
}

func (r *analysisRow) toDomain() domain.Analysis {
	return domain.Analysis{
		ID:           r.ID,
		PokemonName:  r.PokemonName,
		CP:           r.CP,
		HP:           r.HP,
		Level:        r.Level,
		IVPercentage: r.IVPercentage,
		AttackIV:     r.AttackIV,
		DefenseIV:    r.DefenseIV,
		StaminaIV:    r.StaminaIV,
		BattleRating: r.BattleRating,
		RaidRating:   r.RaidRating,
		Notes:        r.Notes,
		BestUseCase:  r.BestUseCase,
		AnalyzedAt:   r.AnalyzedAt,
	}
}

// Create stores an analysis result and assigns its id
func (a *AnalysisRepository) Create(ctx context.Context, analysis *domain.Analysis) error {
	return withRetry(ctx, func() error {
		query := `
			INSERT INTO analyses (
				pokemon_name, cp, hp, level, iv_percentage,
				attack_iv, defense_iv, stamina_iv,
				battle_rating, raid_rating, notes, best_use_case, analyzed_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		res, err := a.db.ExecContext(ctx, query,
			analysis.PokemonName, analysis.CP, analysis.HP, analysis.Level, analysis.IVPercentage,
			analysis.AttackIV, analysis.DefenseIV, analysis.StaminaIV,
			analysis.BattleRating, analysis.RaidRating, stringList(analysis.Notes),
			analysis.BestUseCase, analysis.AnalyzedAt)
		if err != nil {
			return fmt.Errorf("create analysis: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert id: %w", err)
		}
		analysis.ID = id
		return nil
	})
}

// List retrieves stored analyses newest first, up to limit
func (a *AnalysisRepository) List(ctx context.Context, limit int) ([]domain.Analysis, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []analysisRow
	err := a.db.SelectContext(ctx, &rows,
		"SELECT * FROM analyses ORDER BY analyzed_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}

	analyses := make([]domain.Analysis, len(rows))
	for i := range rows {
		analyses[i] = rows[i].toDomain()
	}
	return analyses, nil
}

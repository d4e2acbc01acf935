package pokedex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCP(t *testing.T) {
	// mewtwo 15/15/15 at level 20: cpm 0.59740001
	cp := computeCP(315, 197, 229, 0.59740001)
	assert.Equal(t, 2387, cp)

	// floor below the minimum clamps to 10
	assert.Equal(t, 10, computeCP(10, 10, 10, 0.094))
}

func TestComputeHP(t *testing.T) {
	assert.Equal(t, 136, computeHP(229, 0.59740001))
	assert.Equal(t, 10, computeHP(20, 0.094), "minimum hp is 10")
}

func TestAnalyzer_Analyze(t *testing.T) {
	svc := NewService(setupTestData(t))
	analyzer := NewAnalyzer(svc)

	t.Run("known pokemon with consistent readings", func(t *testing.T) {
		// readings generated from mewtwo 15/15/15 at level 20
		analysis, err := analyzer.Analyze("뮤츠", 2387, 136)
		require.NoError(t, err)

		assert.Equal(t, "뮤츠", analysis.PokemonName)
		assert.Equal(t, 2387, analysis.CP)
		assert.Equal(t, 136, analysis.HP)
		assert.InDelta(t, 20, analysis.Level, 3, "nearby levels can produce the same readings")
		assert.GreaterOrEqual(t, analysis.AttackIV, 0)
		assert.LessOrEqual(t, analysis.AttackIV, 15)
		assert.Greater(t, analysis.IVPercentage, 50.0, "generated from a perfect roll, average of matches stays high")
		assert.LessOrEqual(t, analysis.IVPercentage, 100.0)
		assert.NotEmpty(t, analysis.BattleRating)
		assert.NotEmpty(t, analysis.RaidRating)
		assert.NotEmpty(t, analysis.Notes)
		assert.NotEmpty(t, analysis.BestUseCase)
		assert.False(t, analysis.AnalyzedAt.IsZero())
	})

	t.Run("impossible readings", func(t *testing.T) {
		_, err := analyzer.Analyze("뮤츠", 99999, 136)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no IV combination")
	})

	t.Run("unknown pokemon uses fallback stats", func(t *testing.T) {
		// fallback base 200/180/180, 15/15/15 at level 20:
		// hp = floor(195*0.5974) = 116
		// cp = floor(215*sqrt(195)*sqrt(195)*0.5974^2/10) = floor(215*195*0.35689/10)
		analysis, err := analyzer.Analyze("모르는포켓몬", computeCP(215, 195, 195, 0.59740001), computeHP(195, 0.59740001))
		require.NoError(t, err)
		assert.Contains(t, analysis.Notes, "도감에 없는 포켓몬이라 평균 종족값으로 추정했습니다.")
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := analyzer.Analyze("뮤츠", 0, 136)
		require.Error(t, err)
		_, err = analyzer.Analyze("뮤츠", 2387, -1)
		require.Error(t, err)
	})
}

func TestRatings(t *testing.T) {
	t.Run("battle rating thresholds", func(t *testing.T) {
		assert.Equal(t, "A+", battleRating(95))
		assert.Equal(t, "A", battleRating(90))
		assert.Equal(t, "B+", battleRating(82))
		assert.Equal(t, "B", battleRating(75))
		assert.Equal(t, "C", battleRating(74.9))
	})

	t.Run("raid rating weighs attack", func(t *testing.T) {
		assert.Equal(t, "A+", raidRating(14, 90))
		assert.Equal(t, "A", raidRating(13, 85))
		assert.Equal(t, "B+", raidRating(12, 50))
		assert.Equal(t, "B", raidRating(10, 40))
		assert.Equal(t, "C", raidRating(9, 95), "low attack caps the rating")
	})
}

func TestBestUseCase(t *testing.T) {
	assert.Equal(t, "PvP 배틀(GO 배틀리그)에 적합", bestUseCase("A", "C"))
	assert.Equal(t, "레이드 및 체육관 전투에 우수", bestUseCase("B", "A+"))
	assert.Equal(t, "일반 게임플레이에 적합", bestUseCase("B", "B"))
}

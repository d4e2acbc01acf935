package pokedex

import (
	"fmt"
	"math"
	"time"

	"github.com/treehi/pogo-tracker/pkg/domain"
)

// fallback stats for species missing from the data set, roughly an
// average fully-evolved pokemon
var fallbackStats = Pokemon{BaseAttack: 200, BaseDefense: 180, BaseStamina: 180}

// Analyzer estimates IVs from observed CP and HP by brute-forcing every
// IV combination against the game's CP formula. Where several
// combinations produce the same readings, the estimate averages them.
type Analyzer struct {
	data *Service
	now  func() time.Time
}

// NewAnalyzer creates an analyzer backed by the data service
func NewAnalyzer(data *Service) *Analyzer {
	return &Analyzer{data: data, now: time.Now}
}

// ivCandidate is one IV combination matching the observed stats
type ivCandidate struct {
	level                    float64
	attack, defense, stamina int
}

// Analyze estimates IVs for a pokemon given its observed CP and HP.
// Unknown species fall back to average base stats with a note; readings
// no IV combination can produce are an error.
func (a *Analyzer) Analyze(name string, cp, hp int) (domain.Analysis, error) {
	if cp <= 0 || hp <= 0 {
		return domain.Analysis{}, fmt.Errorf("cp and hp must be positive")
	}

	base, known := a.lookup(name)
	if !known {
		base = fallbackStats
	}

	candidates := matchIVs(base, cp, hp)
	if len(candidates) == 0 {
		return domain.Analysis{}, fmt.Errorf("no IV combination produces CP %d / HP %d for %s", cp, hp, name)
	}

	var levelSum float64
	var atkSum, defSum, staSum int
	for _, c := range candidates {
		levelSum += c.level
		atkSum += c.attack
		defSum += c.defense
		staSum += c.stamina
	}
	n := len(candidates)
	atk := int(math.Round(float64(atkSum) / float64(n)))
	def := int(math.Round(float64(defSum) / float64(n)))
	sta := int(math.Round(float64(staSum) / float64(n)))
	ivPct := math.Round(float64(atk+def+sta)/45*10000) / 100

	analysis := domain.Analysis{
		PokemonName:  name,
		CP:           cp,
		HP:           hp,
		Level:        math.Round(levelSum/float64(n)*2) / 2,
		IVPercentage: ivPct,
		AttackIV:     atk,
		DefenseIV:    def,
		StaminaIV:    sta,
		BattleRating: battleRating(ivPct),
		RaidRating:   raidRating(atk, ivPct),
		AnalyzedAt:   a.now(),
	}
	analysis.Notes = buildNotes(ivPct, known, len(candidates))
	analysis.BestUseCase = bestUseCase(analysis.BattleRating, analysis.RaidRating)
	return analysis, nil
}

// lookup finds base stats by Korean or English name, exact match first
func (a *Analyzer) lookup(name string) (Pokemon, bool) {
	for _, p := range a.data.Search(name) {
		if p.NameKo == name || p.NameEn == name {
			return p, true
		}
	}
	if results := a.data.Search(name); len(results) == 1 {
		return results[0], true
	}
	return Pokemon{}, false
}

// matchIVs brute-forces all IV combinations over half-levels
func matchIVs(base Pokemon, cp, hp int) []ivCandidate {
	var out []ivCandidate
	for i, cpm := range cpMultipliers {
		for ivS := 0; ivS <= 15; ivS++ {
			if computeHP(base.BaseStamina+ivS, cpm) != hp {
				continue
			}
			for ivA := 0; ivA <= 15; ivA++ {
				for ivD := 0; ivD <= 15; ivD++ {
					if computeCP(base.BaseAttack+ivA, base.BaseDefense+ivD, base.BaseStamina+ivS, cpm) == cp {
						out = append(out, ivCandidate{
							level:   levelAt(i),
							attack:  ivA,
							defense: ivD,
							stamina: ivS,
						})
					}
				}
			}
		}
	}
	return out
}

// computeCP applies the game's CP formula, floored to a minimum of 10
func computeCP(attack, defense, stamina int, cpm float64) int {
	cp := int(math.Floor(float64(attack) * math.Sqrt(float64(defense)) * math.Sqrt(float64(stamina)) * cpm * cpm / 10))
	if cp < 10 {
		return 10
	}
	return cp
}

// computeHP floors stamina times the multiplier, minimum 10
func computeHP(stamina int, cpm float64) int {
	hp := int(math.Floor(float64(stamina) * cpm))
	if hp < 10 {
		return 10
	}
	return hp
}

func battleRating(ivPct float64) string {
	switch {
	case ivPct >= 95:
		return "A+"
	case ivPct >= 90:
		return "A"
	case ivPct >= 82:
		return "B+"
	case ivPct >= 75:
		return "B"
	default:
		return "C"
	}
}

// raidRating weighs the attack IV more heavily, raids reward damage output
func raidRating(attackIV int, ivPct float64) string {
	switch {
	case attackIV >= 14 && ivPct >= 90:
		return "A+"
	case attackIV >= 13 && ivPct >= 85:
		return "A"
	case attackIV >= 12:
		return "B+"
	case attackIV >= 10:
		return "B"
	default:
		return "C"
	}
}

func buildNotes(ivPct float64, known bool, matches int) []string {
	var notes []string
	switch {
	case ivPct >= 90:
		notes = append(notes, "우수한 개체값! 별가루 투자 가치가 있습니다.")
	case ivPct >= 82:
		notes = append(notes, "좋은 개체값입니다. 특정 용도로 강화를 고려하세요.")
	default:
		notes = append(notes, "평균 이하 개체값입니다. 더 좋은 개체를 기다리는 것을 권장합니다.")
	}
	if !known {
		notes = append(notes, "도감에 없는 포켓몬이라 평균 종족값으로 추정했습니다.")
	}
	if matches > 1 {
		notes = append(notes, fmt.Sprintf("가능한 개체값 조합 %d개의 평균입니다.", matches))
	}
	return notes
}

func bestUseCase(battle, raid string) string {
	switch {
	case battle == "A+" || battle == "A":
		return "PvP 배틀(GO 배틀리그)에 적합"
	case raid == "A+" || raid == "A":
		return "레이드 및 체육관 전투에 우수"
	default:
		return "일반 게임플레이에 적합"
	}
}

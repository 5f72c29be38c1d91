package commission

// Tier は獲得手数料の達成度に応じた表示用ランクです。
type Tier string

const (
	TierBronze   Tier = "Bronze"
	TierSilver   Tier = "Silver"
	TierGold     Tier = "Gold"
	TierPlatinum Tier = "Platinum"
)

// Progress は見込み手数料に対する獲得手数料の割合 (%) を返します。
func Progress(earned, potential float64) float64 {
	if !isFinite(earned) || !isFinite(potential) || potential <= 0 || earned <= 0 {
		return 0
	}
	return earned / potential * 100
}

// TierFor は達成度からランクを決定します。
func TierFor(progress float64) Tier {
	switch {
	case progress >= 75:
		return TierPlatinum
	case progress >= 50:
		return TierGold
	case progress >= 25:
		return TierSilver
	default:
		return TierBronze
	}
}

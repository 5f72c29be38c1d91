package kpi

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// KPI は週次で計測するリクルーター活動指標の名前です。
type KPI string

const (
	CVsSourced           KPI = "cvsSourced"
	ScreeningsConducted  KPI = "screeningsConducted"
	SubmissionsToClients KPI = "submissionsToClients"
	InHouseInterviews    KPI = "inHouseInterviews"
	ClientInterviews     KPI = "clientInterviews"
	PlacementsMade       KPI = "placementsMade"
	TimeToFill           KPI = "timeToFill"
)

// SuggestionThreshold を下回る達成率 (%) の KPI には改善提案が出力されます。
const SuggestionThreshold = 70.0

// All は KPI の表示順を定義します。
var All = []KPI{
	CVsSourced,
	ScreeningsConducted,
	SubmissionsToClients,
	InHouseInterviews,
	ClientInterviews,
	PlacementsMade,
	TimeToFill,
}

var targets = map[KPI]float64{
	CVsSourced:           50,
	ScreeningsConducted:  25,
	SubmissionsToClients: 15,
	InHouseInterviews:    10,
	ClientInterviews:     5,
	PlacementsMade:       2,
	TimeToFill:           30,
}

// Target は KPI の週次目標値を返します。
func Target(k KPI) (float64, bool) {
	t, ok := targets[k]
	return t, ok
}

// Actuals は KPI ごとの実績値です。欠落した KPI は 0 として扱います。
type Actuals map[KPI]float64

// Suggestion は目標未達 KPI への改善提案です。
type Suggestion struct {
	KPI     KPI
	Label   string
	Deficit int
	Target  float64
	Message string
}

// Result は KPI スコアリングの結果です。
type Result struct {
	PerKPI      map[KPI]float64
	Overall     float64
	Suggestions []Suggestion
	Achieved    map[KPI]bool
}

// Score は実績値を目標値と比較し、達成率・総合スコア・改善提案を算出します。
func Score(actual Actuals) Result {
	res := Result{
		PerKPI:      make(map[KPI]float64, len(All)),
		Achieved:    make(map[KPI]bool, len(All)),
		Suggestions: []Suggestion{},
	}

	var sum float64
	for _, k := range All {
		target := targets[k]
		value := sanitize(actual[k])
		raw := value * 100 / target

		capped := math.Min(raw, 100)
		res.PerKPI[k] = capped
		res.Achieved[k] = Achieved(k, value)
		sum += capped

		if raw < SuggestionThreshold {
			deficit := int(math.Ceil(target - value))
			label := Readable(k)
			res.Suggestions = append(res.Suggestions, Suggestion{
				KPI:     k,
				Label:   label,
				Deficit: deficit,
				Target:  target,
				Message: fmt.Sprintf("Increase %s by %d to meet the target of %s.", label, deficit, formatNumber(target)),
			})
		}
	}
	res.Overall = sum / float64(len(All))

	return res
}

// Achieved は実績値が目標値以上かどうかを判定します。上限による丸めは行いません。
func Achieved(k KPI, actual float64) bool {
	target, ok := targets[k]
	if !ok {
		return false
	}
	return sanitize(actual) >= target
}

// Readable は KPI 名を表示用の文に変換します (例: cvsSourced -> "Cvs sourced")。
func Readable(k KPI) string {
	var b strings.Builder
	for i, r := range string(k) {
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

package rating

import "math"

const (
	// DefaultRating 新玩家起始分
	DefaultRating = 1500
	// KFactor Elo K 值，兩兩比較時均攤到各對手
	KFactor = 32
)

// expectedScore ra 對上 rb 的期望勝率
func expectedScore(ra, rb int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(rb-ra)/400.0))
}

// applyMatch 依一場對局的名次積分計算新分數。
//
// 每對玩家按積分高低視為一勝一負，同分為和，
// K 值除以對手數使多人對局的波動與兩人對局相當。
func applyMatch(ratings, points []int) []int {
	n := len(ratings)
	updated := make([]int, n)

	for i := 0; i < n; i++ {
		delta := 0.0
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			actual := 0.5
			switch {
			case points[i] > points[j]:
				actual = 1.0
			case points[i] < points[j]:
				actual = 0.0
			}
			delta += KFactor / float64(n-1) * (actual - expectedScore(ratings[i], ratings[j]))
		}
		updated[i] = ratings[i] + int(math.Round(delta))
	}
	return updated
}

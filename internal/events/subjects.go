// Package events 對局事件：牌局生命週期透過 NATS 對外廣播。
package events

// NATS Subject 常量定義
const (
	// SubjectMatchPrefix 對局事件前綴
	// 完整格式: mahjong.match.{match_id}.hand.{started|action|ended}
	SubjectMatchPrefix = "mahjong.match."

	SubjectHandStartedSuffix = ".hand.started"
	SubjectHandActionSuffix  = ".hand.action"
	SubjectHandEndedSuffix   = ".hand.ended"

	// SubjectAllHandEvents 訂閱全部對局的牌局事件
	SubjectAllHandEvents = "mahjong.match.*.hand.>"
)

// BuildHandStartedSubject 構建開局事件 Subject
func BuildHandStartedSubject(matchID string) string {
	return SubjectMatchPrefix + matchID + SubjectHandStartedSuffix
}

// BuildHandActionSubject 構建行牌事件 Subject
func BuildHandActionSubject(matchID string) string {
	return SubjectMatchPrefix + matchID + SubjectHandActionSuffix
}

// BuildHandEndedSubject 構建終局事件 Subject
func BuildHandEndedSubject(matchID string) string {
	return SubjectMatchPrefix + matchID + SubjectHandEndedSuffix
}

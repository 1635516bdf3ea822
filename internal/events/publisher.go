package events

import (
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"

	"sudooom.mahjong.engine/internal/mahjong/session"
	"sudooom.mahjong.engine/internal/match"
)

// HandStarted 開局事件
type HandStarted struct {
	MatchID      string `json:"matchId"`
	HandNumber   int    `json:"handNumber"`
	DealerSeat   int    `json:"dealerSeat"`
	RoundWind    int    `json:"roundWind"`
	DealerStreak int    `json:"dealerStreak"`
}

// HandAction 行牌事件，Frame 內含局數與回合序號
type HandAction struct {
	MatchID string      `json:"matchId"`
	Frame   match.Frame `json:"frame"`
}

// HandEnded 終局事件，Points 為整場累計分
type HandEnded struct {
	MatchID string           `json:"matchId"`
	Outcome *session.Outcome `json:"outcome"`
	Points  [4]int           `json:"points"`
}

// Publisher 對局事件發佈器
type Publisher struct {
	nc     *nats.Conn
	logger *slog.Logger
}

// NewPublisher 建立事件發佈器
func NewPublisher(nc *nats.Conn) *Publisher {
	return &Publisher{
		nc:     nc,
		logger: slog.Default(),
	}
}

// PublishHandStarted 發佈開局事件
func (p *Publisher) PublishHandStarted(evt *HandStarted) error {
	data, err := json.Marshal(evt)
	if err != nil {
		p.logger.Error("Failed to marshal hand started event", "matchId", evt.MatchID, "error", err)
		return err
	}

	subject := BuildHandStartedSubject(evt.MatchID)
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("Failed to publish hand started event", "matchId", evt.MatchID, "error", err)
		return err
	}

	p.logger.Debug("Published hand started event", "matchId", evt.MatchID, "subject", subject)
	return nil
}

// PublishHandAction 發佈行牌事件
func (p *Publisher) PublishHandAction(evt *HandAction) error {
	data, err := json.Marshal(evt)
	if err != nil {
		p.logger.Error("Failed to marshal hand action event", "matchId", evt.MatchID, "error", err)
		return err
	}

	subject := BuildHandActionSubject(evt.MatchID)
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("Failed to publish hand action event", "matchId", evt.MatchID, "error", err)
		return err
	}

	p.logger.Debug("Published hand action event", "matchId", evt.MatchID, "turn", evt.Frame.Turn)
	return nil
}

// PublishHandEnded 發佈終局事件
func (p *Publisher) PublishHandEnded(evt *HandEnded) error {
	data, err := json.Marshal(evt)
	if err != nil {
		p.logger.Error("Failed to marshal hand ended event", "matchId", evt.MatchID, "error", err)
		return err
	}

	subject := BuildHandEndedSubject(evt.MatchID)
	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("Failed to publish hand ended event", "matchId", evt.MatchID, "error", err)
		return err
	}

	p.logger.Debug("Published hand ended event", "matchId", evt.MatchID, "subject", subject)
	return nil
}

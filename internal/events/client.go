package events

import (
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"sudooom.mahjong.engine/internal/config"
)

// Client NATS 客戶端封裝
type Client struct {
	conn   *nats.Conn
	logger *slog.Logger
}

// NewClient 建立 NATS 客戶端
func NewClient(cfg config.NATSConfig) (*Client, error) {
	opts := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			slog.Warn("Disconnected from NATS", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.Info("Reconnected to NATS", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			slog.Info("NATS connection closed")
		}),
		nats.Timeout(10 * time.Second),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		conn:   conn,
		logger: slog.Default(),
	}, nil
}

// Conn 返回底層 NATS 連線
func (c *Client) Conn() *nats.Conn {
	return c.conn
}

// Close 排空待送事件後關閉連線
func (c *Client) Close() {
	if c.conn == nil {
		return
	}
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
	}
}

// IsConnected 檢查連線狀態
func (c *Client) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}

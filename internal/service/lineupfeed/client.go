package lineupfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"DugoutEdge/internal/domain/models"
	drepo "DugoutEdge/internal/domain/repository"
	"DugoutEdge/pkg/logger"

	"github.com/gorilla/websocket"
)

// Client implements a LineupStream backed by the lineup feed WebSocket.
// Each frame of type "lineups" carries a full snapshot of today's starting
// lineups; consumers keep only the latest one.
type Client struct {
	apiKey         string
	websocketURL   string
	reconnectDelay time.Duration
	pingInterval   time.Duration
	log            *logger.Logger

	conn      *websocket.Conn
	snapshots chan *models.LineupFeed
	connected bool
}

// New creates a lineup feed stream.
func New(apiKey, websocketURL string, reconnectDelay, pingInterval time.Duration, log *logger.Logger) drepo.LineupStream {
	return &Client{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
		log:            log,
		snapshots:      make(chan *models.LineupFeed, 8),
	}
}

// Connect establishes the WebSocket connection and starts the read and
// ping loops.
func (c *Client) Connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", c.websocketURL, c.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("lineup feed connect: %w", err)
	}
	c.conn = conn
	c.connected = true
	if c.log != nil {
		c.log.Info("lineup feed connected")
	}

	go c.pingLoop(ctx)
	go c.readLoop(ctx)
	return nil
}

// Subscribe narrows the feed to the given team abbreviations. An empty
// list subscribes to the whole slate.
func (c *Client) Subscribe(teams []string) error {
	if c.conn == nil || !c.connected {
		return fmt.Errorf("lineup feed not connected")
	}
	if len(teams) == 0 {
		teams = []string{"*"}
	}
	for _, team := range teams {
		msg := map[string]string{"type": "subscribe", "team": team}
		if err := c.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", team, err)
		}
	}
	return nil
}

// Snapshots delivers lineup snapshots. The channel closes when the
// connection drops.
func (c *Client) Snapshots() <-chan *models.LineupFeed {
	return c.snapshots
}

type feedFrame struct {
	Type  string               `json:"type"`
	Games []models.LooseRecord `json:"games"`
}

func (c *Client) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.conn != nil {
				_ = c.conn.WriteMessage(websocket.PingMessage, nil)
			}
		}
	}
}

func (c *Client) readLoop(ctx context.Context) {
	defer close(c.snapshots)
	for {
		select {
		case <-ctx.Done():
			return
		default:
			if c.conn == nil {
				return
			}
			_, b, err := c.conn.ReadMessage()
			if err != nil {
				if c.log != nil && c.connected {
					c.log.Warn("lineup feed read failed", logger.Error(err))
				}
				return
			}
			var frame feedFrame
			if err := json.Unmarshal(b, &frame); err != nil {
				// ignore non-JSON frames
				continue
			}
			if frame.Type != "lineups" {
				continue
			}
			snapshot := &models.LineupFeed{Games: frame.Games}
			select {
			case c.snapshots <- snapshot:
			default:
				// drop on backpressure; only the latest snapshot matters
			}
		}
	}
}

// Close closes the WebSocket connection.
func (c *Client) Close() error {
	c.connected = false
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

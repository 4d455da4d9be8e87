// Package arena plays matches against a remote arena server over WebSocket.
//
// The server drives the match: it sends one "turn" event per turn carrying
// the state in the text wire format, and the client answers with the bot's
// orders for that turn. A "match_end" event closes the exchange.
package arena

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"pwbot/engine"
	"pwbot/game"
)

// Config holds arena client configuration.
type Config struct {
	NumWorkers     int
	ArenaURL       string // WebSocket URL template, match ID substituted in
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		NumWorkers:     2,
		ArenaURL:       "wss://arena.planetwars.dev/matches/%s/play",
		ConnectTimeout: 10 * time.Second,
		ReadTimeout:    60 * time.Second,
	}
}

// Stats holds match statistics.
type Stats struct {
	MatchesPlayed int64
	MatchesWon    int64
	MatchesFailed int64
	TurnsTotal    int64
}

// Result summarizes one completed remote match.
type Result struct {
	MatchID string
	Won     bool
	Turns   int
}

// event is the envelope for every server message.
type event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type matchInfo struct {
	MatchID  string `json:"match_id"`
	MaxTurns int    `json:"max_turns"`
}

type turnData struct {
	Turn  int    `json:"turn"`
	State string `json:"state"`
}

type matchEnd struct {
	Winner int `json:"winner"` // 1 = us, 2 = opponent, 0 = draw
	Turns  int `json:"turns"`
}

type ordersMessage struct {
	Type   string      `json:"type"`
	Turn   int         `json:"turn"`
	Orders []orderData `json:"orders"`
}

type orderData struct {
	Src   int `json:"src"`
	Dst   int `json:"dst"`
	Ships int `json:"ships"`
}

// Client plays arena matches with a pool of workers sharing one bot factory.
// Each worker gets its own bot instance so bots need not be safe for
// concurrent use.
type Client struct {
	config Config
	newBot func() engine.Bot
	stats  Stats
}

// NewClient creates an arena client. newBot is called once per worker.
func NewClient(config Config, newBot func() engine.Bot) *Client {
	return &Client{config: config, newBot: newBot}
}

// Start plays every match ID from the channel and closes done when the
// channel drains.
func (c *Client) Start(matchIDs <-chan string, done chan<- struct{}) {
	var wg sync.WaitGroup

	for i := 0; i < c.config.NumWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			c.worker(workerID, matchIDs)
		}(i)
	}

	wg.Wait()
	close(done)
}

func (c *Client) worker(id int, matchIDs <-chan string) {
	bot := c.newBot()
	for matchID := range matchIDs {
		res, err := c.PlayMatch(matchID, bot)
		if err != nil {
			log.Printf("[Worker %d] Match %s failed: %v", id, matchID, err)
			atomic.AddInt64(&c.stats.MatchesFailed, 1)
			continue
		}

		atomic.AddInt64(&c.stats.MatchesPlayed, 1)
		atomic.AddInt64(&c.stats.TurnsTotal, int64(res.Turns))
		if res.Won {
			atomic.AddInt64(&c.stats.MatchesWon, 1)
		}
		log.Printf("[Worker %d] Match %s done: %d turns, won: %v", id, matchID, res.Turns, res.Won)
	}
}

// PlayMatch connects to one match and plays it to completion.
func (c *Client) PlayMatch(matchID string, bot engine.Bot) (Result, error) {
	url := fmt.Sprintf(c.config.ArenaURL, matchID)

	dialer := websocket.Dialer{
		HandshakeTimeout: c.config.ConnectTimeout,
	}

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	res := Result{MatchID: matchID}

	for {
		conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))

		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return res, nil
			}
			return Result{}, fmt.Errorf("read error: %w", err)
		}

		var ev event
		if err := json.Unmarshal(message, &ev); err != nil {
			log.Printf("Failed to parse event: %v", err)
			continue
		}

		switch ev.Type {
		case "match_info":
			var info matchInfo
			if err := json.Unmarshal(ev.Data, &info); err != nil {
				log.Printf("Failed to parse match_info: %v", err)
			}

		case "turn":
			var td turnData
			if err := json.Unmarshal(ev.Data, &td); err != nil {
				return Result{}, fmt.Errorf("parse turn: %w", err)
			}
			if err := c.respond(conn, bot, td); err != nil {
				return Result{}, err
			}
			res.Turns = td.Turn

		case "match_end":
			var end matchEnd
			if err := json.Unmarshal(ev.Data, &end); err != nil {
				return Result{}, fmt.Errorf("parse match_end: %w", err)
			}
			res.Won = end.Winner == int(game.OwnerMe)
			res.Turns = end.Turns
			return res, nil
		}
	}
}

func (c *Client) respond(conn *websocket.Conn, bot engine.Bot, td turnData) error {
	s, err := game.ParseState(td.Turn, td.State)
	if err != nil {
		return fmt.Errorf("parse state at turn %d: %w", td.Turn, err)
	}

	msg := ordersMessage{Type: "orders", Turn: td.Turn, Orders: []orderData{}}
	for _, ord := range bot.Act(s) {
		msg.Orders = append(msg.Orders, orderData{Src: ord.Src, Dst: ord.Dst, Ships: ord.Ships})
	}
	if err := conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("send orders: %w", err)
	}
	return nil
}

// GetStats returns current statistics.
func (c *Client) GetStats() Stats {
	return Stats{
		MatchesPlayed: atomic.LoadInt64(&c.stats.MatchesPlayed),
		MatchesWon:    atomic.LoadInt64(&c.stats.MatchesWon),
		MatchesFailed: atomic.LoadInt64(&c.stats.MatchesFailed),
		TurnsTotal:    atomic.LoadInt64(&c.stats.TurnsTotal),
	}
}

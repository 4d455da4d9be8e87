// Package main implements an HTTP Planet Wars bot server.
//
// Arena frontends that speak JSON instead of the stdin protocol POST the
// current state to /move and get the turn's orders back.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"pwbot/bt"
	"pwbot/game"
	"pwbot/strategy"
)

type InfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Policy  string `json:"policy"`
}

type MoveRequest struct {
	MatchID string `json:"match_id"`
	Turn    int    `json:"turn"`
	State   string `json:"state"`
}

type MoveResponse struct {
	Orders []OrderJSON `json:"orders"`
}

type OrderJSON struct {
	Src   int `json:"src"`
	Dst   int `json:"dst"`
	Ships int `json:"ships"`
}

type EndRequest struct {
	MatchID string `json:"match_id"`
	Turn    int    `json:"turn"`
	Winner  int    `json:"winner"`
}

// Server evaluates the behavior tree per request. The tree is stateless so
// one instance serves concurrent matches.
type Server struct {
	tree bt.Node
}

func NewServer(tree bt.Node) *Server {
	return &Server{tree: tree}
}

// handleIndex describes the bot.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	response := InfoResponse{
		Name:    "pwbot",
		Version: "1.0.0",
		Policy:  bt.String(s.tree),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleMove evaluates one turn.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := game.ParseState(req.Turn, req.State)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sink := &bt.Orders{}
	s.tree.Tick(state, sink)

	response := MoveResponse{Orders: []OrderJSON{}}
	for _, ord := range sink.Issued() {
		response.Orders = append(response.Orders, OrderJSON{Src: ord.Src, Dst: ord.Dst, Ships: ord.Ships})
	}

	log.Printf("Match %s turn %d: %d orders, %v", req.MatchID, req.Turn, len(response.Orders), time.Since(startTime))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleEnd is called when a match ends.
func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	var req EndRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := "lost"
	switch game.Owner(req.Winner) {
	case game.OwnerMe:
		result = "won"
	case game.OwnerNeutral:
		result = "draw"
	}
	log.Printf("Match %s ended on turn %d: %s", req.MatchID, req.Turn, result)
	w.WriteHeader(http.StatusOK)
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	listen := fs.String("listen", ":8080", "HTTP listen address")
	configPath := fs.String("config", "", "Path to YAML weights file (defaults when empty)")

	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("flag parse: %v", err)
	}

	cfg := strategy.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = strategy.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}

	server := NewServer(strategy.BuildTree(cfg))

	mux := http.NewServeMux()
	mux.HandleFunc("/", server.handleIndex)
	mux.HandleFunc("/move", server.handleMove)
	mux.HandleFunc("/end", server.handleEnd)

	srv := &http.Server{
		Addr:              *listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("pwbot server listening on http://%s", *listen)
	log.Fatal(srv.ListenAndServe())
}

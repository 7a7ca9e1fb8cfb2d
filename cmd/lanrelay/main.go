// lanrelay is the LAN WebSocket relay for two browsers sharing a game:
// it pairs peers into rooms by game id, assigns colours, validates each
// incoming move against a server-side rules engine and forwards it to the
// peer together with the resulting FEN for opportunistic resync.
package main

import (
	"flag"
	"log"
	"net/http"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/toddllm/lan-3d-chess-sub000/internal/game"
	"github.com/toddllm/lan-3d-chess-sub000/internal/wire"
)

var addr = flag.String("http", ":8000", "http listen address")

// player is one connected browser. Writes to the connection come from both
// the player's own handler and the peer's, so they are serialized by mu.
type player struct {
	conn   *websocket.Conn
	colour string // "w" or "b"
	mu     sync.Mutex
}

func (p *player) send(msg wire.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := websocket.JSON.Send(p.conn, msg); err != nil {
		log.Printf("send failed: %v", err)
	}
}

func (p *player) sendError(text string) {
	p.send(wire.Message{Type: wire.TypeError, Text: text})
}

// room holds up to two peers and the authoritative game state. All room
// state is guarded by mu; the engine itself is synchronous and only ever
// touched under the lock.
type room struct {
	mu      sync.Mutex
	id      string
	game    *game.Game
	players []*player
}

// hub tracks the open rooms.
type hub struct {
	mu    sync.Mutex
	rooms map[string]*room
}

func newHub() *hub {
	return &hub{rooms: make(map[string]*room)}
}

// join finds or creates the room and seats the connection. The first peer
// plays white, the second black; a full room refuses further peers.
func (h *hub) join(gameID string, conn *websocket.Conn) (*room, *player, bool) {
	h.mu.Lock()
	r, ok := h.rooms[gameID]
	if !ok {
		r = &room{id: gameID, game: game.New()}
		h.rooms[gameID] = r
	}
	h.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.players) >= 2 {
		return nil, nil, false
	}
	colour := "w"
	if len(r.players) == 1 {
		colour = "b"
	}
	p := &player{conn: conn, colour: colour}
	r.players = append(r.players, p)
	return r, p, true
}

// leave removes a connection from its room, dropping the room when empty.
func (h *hub) leave(r *room, p *player) {
	r.mu.Lock()
	for i, other := range r.players {
		if other == p {
			r.players = append(r.players[:i], r.players[i+1:]...)
			break
		}
	}
	empty := len(r.players) == 0
	r.mu.Unlock()

	if empty {
		h.mu.Lock()
		delete(h.rooms, r.id)
		h.mu.Unlock()
	}
}

// peerOf returns the other seated player, if any. Caller holds r.mu.
func (r *room) peerOf(p *player) *player {
	for _, other := range r.players {
		if other != p {
			return other
		}
	}
	return nil
}

// serve handles one WebSocket connection for its whole lifetime.
func (h *hub) serve(conn *websocket.Conn) {
	defer conn.Close()

	var msg wire.Message
	if err := websocket.JSON.Receive(conn, &msg); err != nil {
		return
	}
	if msg.Type != wire.TypeJoin || msg.Validate() != nil {
		sendError(conn, "expected a join message")
		return
	}

	r, p, ok := h.join(msg.GameID, conn)
	if !ok {
		sendError(conn, "game room is full")
		return
	}
	defer h.leave(r, p)
	log.Printf("game %s: peer joined as %s", r.id, p.colour)

	r.mu.Lock()
	fen := r.game.FEN()
	r.mu.Unlock()
	p.send(wire.Message{Type: wire.TypeAssign, GameID: r.id, Colour: p.colour, FEN: fen})

	for {
		var msg wire.Message
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			log.Printf("game %s: peer %s disconnected", r.id, p.colour)
			return
		}
		if err := msg.Validate(); err != nil {
			p.sendError(err.Error())
			continue
		}
		switch msg.Type {
		case wire.TypeMove:
			h.relayMove(r, p, msg)
		case wire.TypeState:
			// Forward the resync payload untouched; peers own recovery.
			r.mu.Lock()
			peer := r.peerOf(p)
			r.mu.Unlock()
			if peer != nil {
				peer.send(wire.Message{Type: wire.TypeState, GameID: r.id, FEN: msg.FEN})
			}
		default:
			p.sendError("unexpected message type " + msg.Type)
		}
	}
}

// relayMove validates a move against the room's engine and forwards it,
// with the authoritative resulting FEN, to the peer.
func (h *hub) relayMove(r *room, p *player, msg wire.Message) {
	r.mu.Lock()
	if r.game.Turn().Char() != p.colour[0] {
		r.mu.Unlock()
		p.sendError("not your turn")
		return
	}
	played, err := r.game.MoveCoords(msg.Move.From, msg.Move.To, msg.Move.Promotion)
	if err != nil {
		r.mu.Unlock()
		p.sendError(err.Error())
		return
	}
	fen := r.game.FEN()
	peer := r.peerOf(p)
	r.mu.Unlock()

	log.Printf("game %s: %s plays %s", r.id, p.colour, played.SAN)
	if peer != nil {
		peer.send(wire.Message{
			Type:   wire.TypeMove,
			GameID: r.id,
			Move:   msg.Move,
			FEN:    fen,
		})
	}
}

// sendError writes to a connection that is not yet seated in a room, so
// only the handler's own goroutine can reach it.
func sendError(conn *websocket.Conn, text string) {
	if err := websocket.JSON.Send(conn, wire.Message{Type: wire.TypeError, Text: text}); err != nil {
		log.Printf("send failed: %v", err)
	}
}

func main() {
	flag.Parse()

	h := newHub()
	http.Handle("/ws", websocket.Handler(h.serve))

	log.Printf("lanrelay listening on %s", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatal(err)
	}
}

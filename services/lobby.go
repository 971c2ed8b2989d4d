package services

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/tsmarsh/family-bingo/game"
	"github.com/tsmarsh/family-bingo/utils/logger"
)

// Lobby is the live room for one event: every connected player gets roster
// updates and winner announcements, and their own card state after each
// toggle. Cards themselves stay per-player; the lobby never shares one
// player's grid with another.
type Lobby struct {
	EventID string
	clients map[string]*Client // key = client id
	mu      sync.RWMutex
	store   *Store
}

var (
	Lobbies    = make(map[string]*Lobby)
	LobbiesMu  sync.Mutex
	lobbyStore *Store
)

// InitLobbyService wires the shared store used by websocket lobbies.
func InitLobbyService(store *Store) {
	lobbyStore = store
	logger.Info("lobby service initialized")
}

// GetLobby returns the lobby for an event, creating it on first use.
func GetLobby(eventID string) *Lobby {
	LobbiesMu.Lock()
	defer LobbiesMu.Unlock()

	lobby, ok := Lobbies[eventID]
	if !ok {
		lobby = &Lobby{
			EventID: eventID,
			clients: make(map[string]*Client),
			store:   lobbyStore,
		}
		Lobbies[eventID] = lobby
	}
	return lobby
}

// -------------------- Client management --------------------

func (l *Lobby) addClient(c *Client) {
	l.mu.Lock()
	l.clients[c.id] = c
	l.mu.Unlock()

	go c.writePump()
	go c.readPump()

	logger.Infof("[Lobby %s] player %s connected (total=%d)", l.EventID, c.player, l.clientCount())
	l.broadcastState()
	l.sendCard(c)
}

func (l *Lobby) removeClient(id string) {
	l.mu.Lock()
	client, ok := l.clients[id]
	if ok {
		delete(l.clients, id)
		client.Close()
	}
	l.mu.Unlock()

	if ok {
		logger.Infof("[Lobby %s] player %s disconnected", l.EventID, client.player)
		l.broadcastState()
	}
}

func (l *Lobby) clientCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.clients)
}

// -------------------- Broadcast --------------------

type lobbyState struct {
	Type    string         `json:"type"`
	EventID string         `json:"event_id"`
	Players []string       `json:"players"`
	Winners []winnerNotice `json:"winners"`
}

type winnerNotice struct {
	PlayerName string `json:"player_name"`
	Timestamp  int64  `json:"timestamp"`
}

type cardState struct {
	Type  string    `json:"type"`
	Card  game.Card `json:"card"`
	Bingo bool      `json:"bingo"`
	Line  []int     `json:"line,omitempty"`
}

// broadcastState pushes the roster and the winner list to every client.
func (l *Lobby) broadcastState() {
	winners, err := l.store.Winners(l.EventID)
	if err != nil {
		logger.Errorf("[Lobby %s] failed to load winners: %v", l.EventID, err)
	}
	notices := make([]winnerNotice, 0, len(winners))
	for _, w := range winners {
		notices = append(notices, winnerNotice{PlayerName: w.PlayerName, Timestamp: w.Timestamp})
	}

	l.mu.RLock()
	players := make([]string, 0, len(l.clients))
	clients := make([]*Client, 0, len(l.clients))
	for _, c := range l.clients {
		players = append(players, c.player)
		clients = append(clients, c)
	}
	l.mu.RUnlock()
	sort.Strings(players)

	state := lobbyState{
		Type:    "lobby",
		EventID: l.EventID,
		Players: players,
		Winners: notices,
	}
	b, _ := json.Marshal(state)
	for _, c := range clients {
		l.trySend(c, b)
	}
}

// trySend delivers without blocking; a concurrent Close makes the channel
// send panic, which is swallowed the same way a full buffer is skipped.
func (l *Lobby) trySend(c *Client, b []byte) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warnf("[Lobby %s] recovered send to %s: %v", l.EventID, c.player, r)
		}
	}()
	select {
	case c.send <- b:
	default:
		logger.Warnf("[Lobby %s] dropping message to %s", l.EventID, c.player)
	}
}

// sendCard pushes one client's current card, with the winning line when the
// grid holds a bingo so the UI can highlight it.
func (l *Lobby) sendCard(c *Client) {
	_, card, err := l.store.GetOrGenerateCard(l.EventID, c.player)
	if err != nil {
		logger.Errorf("[Lobby %s] failed to load card for %s: %v", l.EventID, c.player, err)
		return
	}
	l.pushCard(c, card)
}

func (l *Lobby) pushCard(c *Client, card game.Card) {
	line := game.WinningLine(card.Cells, card.Rows, card.Cols)
	state := cardState{
		Type:  "card",
		Card:  card,
		Bingo: line != nil,
		Line:  line,
	}
	b, _ := json.Marshal(state)
	l.trySend(c, b)
}

package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

type roomManager interface {
	RegisterPlayer(ctx context.Context) (*entity.Player, error)

	CreateRoom(ctx context.Context, hostID string) (*entity.Room, error)
	JoinRoom(ctx context.Context, roomID, joinerID string) (*entity.Room, error)

	MakeMove(ctx context.Context, roomID, playerID string, x, y int) (*entity.Room, error)
	Resign(ctx context.Context, roomID, playerID string) (*entity.Room, error)

	RoomIDOf(ctx context.Context, playerID string) (string, error)
	Disconnect(ctx context.Context, playerID string) (*entity.Room, error)
}

// client is one connected session. Writes to a gorilla connection must not
// interleave, so every send goes through the client's mutex.
type client struct {
	id   string
	conn *websocket.Conn

	writeMutex sync.Mutex
}

func (that *client) write(msg *Message) error {
	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	if err := that.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

type Server struct {
	logger  *slog.Logger
	manager roomManager

	upgrader websocket.Upgrader

	handlers map[string]func(ctx context.Context, cl *client, msg *Message) error

	connectionsMutex sync.RWMutex
	connections      map[string]*client

	roomLocks *keyedMutex
}

func New(logger *slog.Logger, manager roomManager) *Server {
	server := &Server{
		logger:  logger,
		manager: manager,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The session id is server-issued per connection, so any
			// origin may open a socket.
			CheckOrigin: func(_ *http.Request) bool { return true },
		},

		handlers: make(map[string]func(context.Context, *client, *Message) error),

		connections: make(map[string]*client),

		roomLocks: newKeyedMutex(),
	}

	server.handlers[actionCreateRoom] = server.handleCreateRoom
	server.handlers[actionJoinRoom] = server.handleJoinRoom
	server.handlers[actionMove] = server.handleMove
	server.handlers[actionResign] = server.handleResign

	return server
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection - upgrades the connection, issues a session identity and
// pumps messages until the peer goes away.
func (that *Server) serveConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	player, err := that.manager.RegisterPlayer(ctx)
	if err != nil {
		log.Error("failed to register player", "error", err)
		return
	}

	cl := &client{id: player.ID, conn: conn}

	that.connectionsMutex.Lock()
	that.connections[cl.id] = cl
	that.connectionsMutex.Unlock()

	log = log.With("playerID", cl.id)
	log.Info("WebSocket connection established")

	if err = that.sendMessage(cl, actionConnect, ConnectPayload{Player: player}); err != nil {
		log.Error("failed to send connect message", "error", err)
	}

	that.handleMessages(ctx, cl)
	that.handleDisconnect(ctx, cl)
}

// handleMessages - processes messages from the client until the connection
// drops. Events from one connection are applied in arrival order.
func (that *Server) handleMessages(ctx context.Context, cl *client) {
	log := that.logger.With("method", "handleMessages", "playerID", cl.id)

	for {
		_, reqBody, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			continue
		}

		if err = handler(ctx, cl, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// handleDisconnect - removes the connection and tears down the room the
// session occupied, notifying the remaining member.
func (that *Server) handleDisconnect(ctx context.Context, cl *client) {
	log := that.logger.With("method", "handleDisconnect", "playerID", cl.id)

	that.connectionsMutex.Lock()
	delete(that.connections, cl.id)
	that.connectionsMutex.Unlock()

	roomID, err := that.manager.RoomIDOf(ctx, cl.id)
	if err != nil {
		// without the room id a teardown would run outside the room lock
		// and without the broadcast, so leave the registry alone
		log.Error("failed to resolve room", "error", err)
		return
	}

	if roomID == "" {
		if _, err = that.manager.Disconnect(ctx, cl.id); err != nil {
			log.Error("failed to drop session", "error", err)
		}
		log.Info("player disconnected")
		return
	}

	unlock := that.roomLocks.Lock(roomID)
	defer unlock()

	room, err := that.manager.Disconnect(ctx, cl.id)
	if err != nil {
		log.Error("failed to tear down room", "roomID", roomID, "error", err)
		return
	}

	if room != nil {
		that.broadcast(room.MemberIDs(), actionOpponentDisconnected, struct{}{})
	}

	log.Info("player disconnected", "roomID", roomID)
}

func (that *Server) sendMessage(cl *client, action string, payload any) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := &Message{
		Action:  action,
		Payload: payloadBytes,
	}

	if err = cl.write(message); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// broadcast - sends the same event to every listed session that still has a
// live connection. A member without a connection is skipped, not an error.
func (that *Server) broadcast(memberIDs []string, action string, payload any) {
	log := that.logger.With("method", "broadcast", "action", action)

	for _, memberID := range memberIDs {
		that.connectionsMutex.RLock()
		cl, ok := that.connections[memberID]
		that.connectionsMutex.RUnlock()

		if !ok {
			log.Debug("connection not found for player", "playerID", memberID)
			continue
		}

		if err := that.sendMessage(cl, action, payload); err != nil {
			log.Error("failed to send message", "playerID", memberID, "error", err)
		}
	}
}

func (that *Server) unicast(playerID, action string, payload any) {
	that.broadcast([]string{playerID}, action, payload)
}

func (that *Server) sendErrorResponse(cl *client, errorMsg string) error {
	if err := that.sendMessage(cl, actionError, ErrorPayload{Message: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

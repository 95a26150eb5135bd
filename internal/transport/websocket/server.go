package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/pkg"
)

const (
	sessionCookie   = "user_session"
	shutdownTimeout = 5 * time.Second
)

type uGame interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	GetOrCreateGame(ctx context.Context, playerID string, settings *entity.Settings) (*entity.Game, error)
	GetGame(ctx context.Context, playerID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error)
	SetControl(ctx context.Context, playerID string, mark entity.Mark, control entity.Control) (*entity.Game, error)
	ResetGame(ctx context.Context, playerID string) (*entity.Game, error)
	LeaveGame(ctx context.Context, playerID string) (*entity.Player, error)
}

// session is the state of one client connection.
type session struct {
	conn      *websocket.Conn
	sessionID string
	playerID  string
}

type handlerFunc func(ctx context.Context, sess *session, payload *Payload) error

type Server struct {
	logger *slog.Logger
	uGame  uGame

	handlers map[string]handlerFunc

	// hijacked connections are not tracked by http.Server.Shutdown
	sessions sync.WaitGroup
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
	}

	server.handlers = map[string]handlerFunc{
		actionConnect:   server.handleConnect,
		actionGameNew:   server.handleNewGame,
		actionGameTurn:  server.handleGameTurn,
		actionControl:   server.handleControl,
		actionGameReset: server.handleReset,
		actionGameLeave: server.handleLeave,
	}

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
// It returns after every open session has ended.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	err := <-shutdownErr

	// sessions read with a context derived from ctx, so they are already closing
	that.sessions.Wait()

	if err != nil {
		that.logger.Error("failed to shutdown server", "error", err)
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// serveWS - upgrades the connection to WebSocket and serves its messages.
func (that *Server) serveWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	that.sessions.Add(1)
	defer that.sessions.Done()

	sessionID, err := that.setSessionCookie(writer, req)
	if err != nil {
		log.Error("failed to create session", "error", err)
		http.Error(writer, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	conn, err := websocket.Accept(writer, req, nil)
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}

	defer conn.Close(websocket.StatusInternalError, "unexpected close")

	log.Info("WebSocket connection established")

	sess := &session{conn: conn, sessionID: sessionID}
	if err = that.handleMessages(req.Context(), sess); err != nil {
		log.Error("error handling messages", "error", err)
		return
	}

	conn.Close(websocket.StatusNormalClosure, "")
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, sess *session) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, body, err := sess.conn.Read(ctx)
		if err != nil {
			if isClosed(err) {
				log.Info("client disconnected", "playerID", sess.playerID)
				return nil
			}

			if ctx.Err() != nil {
				log.Info("server is shutting down", "playerID", sess.playerID)
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(body, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)

			if err = that.sendError(ctx, sess, actionError, errBadMessage); err != nil {
				return err
			}

			continue
		}

		if err = that.dispatch(ctx, sess, &message); err != nil {
			return err
		}
	}
}

func (that *Server) dispatch(ctx context.Context, sess *session, message *Message) error {
	log := that.logger.With("method", "dispatch", "action", message.Action)

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Warn("unknown action")
		return that.sendError(ctx, sess, message.Action, errUnknownAction)
	}

	var payload Payload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			log.Warn("failed to unmarshal payload", "error", err)
			return that.sendError(ctx, sess, message.Action, errBadMessage)
		}
	}

	if message.Action != actionConnect && sess.playerID == "" {
		return that.sendError(ctx, sess, message.Action, errNotConnected)
	}

	if err := handler(ctx, sess, &payload); err != nil {
		log.Error("error processing message", "playerID", sess.playerID, "error", err)
		return that.sendError(ctx, sess, message.Action, err)
	}

	return nil
}

func (that *Server) sendMessage(ctx context.Context, sess *session, action string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = wsjson.Write(ctx, sess.conn, Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(ctx context.Context, sess *session, action string, err error) error {
	return that.sendMessage(ctx, sess, action, Payload{Error: errorMessage(err)})
}

// setSessionCookie - returns the client's session id, issuing a new cookie if needed.
func (that *Server) setSessionCookie(writer http.ResponseWriter, req *http.Request) (string, error) {
	cookie, err := req.Cookie(sessionCookie)
	if err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	sessionID, err := pkg.GenerateNewSessionID()
	if err != nil {
		return "", err
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     sessionCookie,
		Value:    sessionID,
		Expires:  time.Now().Add(24 * time.Hour),
		Path:     "/ws",
		HttpOnly: true,
	})

	that.logger.Debug("session cookie not found, new one created")

	return sessionID, nil
}

func isClosed(err error) bool {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	default:
		return false
	}
}

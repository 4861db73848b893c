package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/Yasheenyash33/StacklyHub-main-main/internal/auth"
	"go.uber.org/zap"
	"golang.org/x/net/websocket"
)

// connObserver оборачивает websocket-соединение. Encoder защищён мьютексом:
// ping из фоновой проверки и доменная рассылка могут писать одновременно.
type connObserver struct {
	mu   sync.Mutex
	conn *websocket.Conn
	enc  *json.Encoder
}

func newConnObserver(conn *websocket.Conn) *connObserver {
	return &connObserver{conn: conn, enc: json.NewEncoder(conn)}
}

func (o *connObserver) Send(event Event) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.enc.Encode(event)
}

func (o *connObserver) Close() error {
	return o.conn.Close()
}

// Server отдаёт websocket-эндпоинт для наблюдателей.
// Токен проверяется до апгрейда соединения.
type Server struct {
	hub    *Hub
	tokens *auth.TokenManager
	logger *zap.Logger
}

func NewServer(hub *Hub, tokens *auth.TokenManager, logger *zap.Logger) *Server {
	return &Server{hub: hub, tokens: tokens, logger: logger}
}

// Handler возвращает http-обработчик эндпоинта /ws
func (s *Server) Handler() http.Handler {
	wsHandler := websocket.Handler(s.handleConn)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			s.logger.Warn("Websocket connection without token", zap.String("remote", r.RemoteAddr))
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}

		username, err := s.tokens.Verify(token)
		if err != nil {
			s.logger.Warn("Websocket token rejected", zap.String("remote", r.RemoteAddr))
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}

		s.logger.Info("Websocket observer authenticated", zap.String("username", username))
		wsHandler.ServeHTTP(w, r)
	})
}

// handleConn регистрирует наблюдателя и читает входящие кадры до разрыва.
// Входящие сообщения наблюдателей не несут смысла и отбрасываются.
func (s *Server) handleConn(conn *websocket.Conn) {
	observer := newConnObserver(conn)
	s.hub.Register(observer)
	defer func() {
		s.hub.Deregister(observer)
		_ = conn.Close()
	}()

	for {
		var msg string
		if err := websocket.Message.Receive(conn, &msg); err != nil {
			return
		}
	}
}

package control

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/zeusync/behave/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Handler accepts a websocket and feeds every JSON Input frame into a Latest.
// Invalid frames are answered with an error frame and otherwise ignored.
type Handler struct {
	target *Latest
	logger log.Log
}

func NewHandler(target *Latest, logger log.Log) *Handler {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Handler{target: target, logger: logger.Named("control")}
}

type ack struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	remote := conn.RemoteAddr().String()
	h.logger.Info("control client connected", log.String("remote", remote))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("control client read failed", log.String("remote", remote), log.Error(err))
			}
			break
		}

		in, err := Decode(data)
		reply := ack{OK: err == nil}
		if err != nil {
			reply.Error = err.Error()
		} else {
			h.target.Set(in)
		}
		if err := conn.WriteJSON(reply); err != nil {
			h.logger.Warn("control client write failed", log.String("remote", remote), log.Error(err))
			break
		}
	}
	// a disconnected pilot must not keep thrusting
	h.target.Set(Input{})
	h.logger.Info("control client disconnected", log.String("remote", remote))
}

// Decode parses one JSON input frame.
func Decode(data []byte) (Input, error) {
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return Input{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !in.Stick.IsFinite() {
		return Input{}, fmt.Errorf("%w: stick must be finite", ErrInvalidInput)
	}
	return in, nil
}

package net

import (
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// maxMessageSize bounds one inbound client message.
const maxMessageSize = 4096

// ReadFrame reads one text message from conn. Binary frames are rejected.
func ReadFrame(conn *websocket.Conn, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(timeout))
	}
	kind, data, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}
	if kind != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected frame kind %d", kind)
	}
	return data, nil
}

// WriteFrame writes data to conn as one text message.
func WriteFrame(conn *websocket.Conn, data []byte, timeout time.Duration) error {
	if timeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(timeout))
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// closeFrame sends a close control message with reason.
func closeFrame(conn *websocket.Conn, code int, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(time.Second))
}

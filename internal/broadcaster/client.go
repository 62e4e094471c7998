package broadcaster

import (
	"time"

	"github.com/gorilla/websocket"
)

// writeWait is the time allowed to write a message to a subscriber.
const writeWait = 10 * time.Second

// Client is a subscriber connection managed by the Hub.
type Client interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

// websocketClient wraps a gorilla/websocket connection.
type websocketClient struct {
	conn *websocket.Conn
}

// NewWebsocketClient creates a new client that wraps the given connection.
func NewWebsocketClient(conn *websocket.Conn) Client {
	return &websocketClient{conn: conn}
}

func (c *websocketClient) WriteMessage(messageType int, data []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}

func (c *websocketClient) ReadMessage() (int, []byte, error) {
	return c.conn.ReadMessage()
}

func (c *websocketClient) Close() error {
	return c.conn.Close()
}

package stream

import "golang.org/x/net/websocket"

// DialWebsocket connects to a websocket bridge exposing the serial link,
// e.g. a ser2net style gateway. Frames are exchanged as binary messages.
func DialWebsocket(url, origin string) (*websocket.Conn, error) {
	conn, err := websocket.Dial(url, "", origin)
	if err != nil {
		return nil, err
	}
	conn.PayloadType = websocket.BinaryFrame
	return conn, nil
}

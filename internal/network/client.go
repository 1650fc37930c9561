package network

import (
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Tempo máximo para uma escrita na conexão completar.
	writeWait = 10 * time.Second

	// Tempo máximo esperando um pong do cliente.
	pongWait = 60 * time.Second

	// Frequência dos pings. Precisa ser menor que pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// Client representa uma conexão autenticada do ponto de vista do servidor.
// Além da conexão em si, carrega a identidade verificada do jogador e o
// lobby que ele pediu para entrar — os dois são fixados antes do registro
// no Hub e nunca mudam durante a vida da conexão.
type Client struct {
	conn *websocket.Conn
	hub  *Hub

	// Canal bufferizado de saída. O gerenciador de lobbies escreve aqui;
	// a goroutine writeLoop drena para a conexão. O buffer evita que a
	// lógica do jogo bloqueie atrás de um cliente lento.
	send chan Message

	playerID string
	lobbyID  string
}

// PlayerID é a identidade verificada (endereço da carteira) do jogador.
func (c *Client) PlayerID() string { return c.playerID }

// LobbyID é o lobby informado na URL de conexão.
func (c *Client) LobbyID() string { return c.lobbyID }

// Send expõe o canal de saída. Escrever nele é seguro de qualquer
// goroutine enquanto o cliente estiver registrado no Hub.
func (c *Client) Send() chan<- Message { return c.send }

// Close derruba a conexão subjacente. O readLoop percebe e cuida do
// desregistro; chamar Close mais de uma vez é inofensivo.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) readLoop() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[network] unexpected close from %s: %v", c.conn.RemoteAddr(), err)
			}
			// Qualquer erro (inclusive JSON inválido) encerra a conexão.
			return
		}
		c.hub.incoming <- clientMessage{client: c, msg: msg}
	}
}

// writeLoop bombeia o canal send para a conexão e mantém o ping periódico.
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// O Hub fechou o canal: o cliente foi desregistrado.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Printf("[network] write to %s failed: %v", c.conn.RemoteAddr(), err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

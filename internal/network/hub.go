package network

// clientMessage empacota uma mensagem junto com o cliente que a enviou,
// para o Hub repassar os dois ao EventHandler.
type clientMessage struct {
	client *Client
	msg    Message
}

// Hub mantém o conjunto de clientes ativos e serializa todos os eventos de
// rede em uma única goroutine antes de entregá-los ao handler.
type Hub struct {
	// Acessado SOMENTE pela goroutine do Hub.
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	incoming   chan clientMessage

	handler EventHandler
}

// NewHub cria um Hub ligado ao handler da lógica do jogo.
func NewHub(handler EventHandler) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan clientMessage),
		handler:    handler,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.handler.OnConnect(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				// Primeiro o handler larga as referências ao cliente, só
				// então o canal send é fechado. A ordem evita que a lógica
				// do jogo escreva em um canal fechado.
				h.handler.OnDisconnect(client)
				close(client.send)
			}

		case clientMsg := <-h.incoming:
			h.handler.OnMessage(clientMsg.client, clientMsg.msg)
		}
	}
}

package network

// EventHandler é a interface que liga a camada de rede à lógica do jogo.
// O Hub chama os três métodos sempre da sua própria goroutine, então o
// handler pode tratar cada chamada como um evento já serializado.
type EventHandler interface {
	// OnConnect é chamado quando um cliente autenticado entra no Hub.
	OnConnect(c *Client)

	// OnDisconnect é chamado quando a conexão de um cliente morre.
	// O canal de envio do cliente só é fechado depois que este método
	// retorna; o handler deve largar toda referência ao cliente aqui.
	OnDisconnect(c *Client)

	// OnMessage é chamado para cada mensagem recebida do cliente.
	OnMessage(c *Client, msg Message)
}

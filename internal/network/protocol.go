package network

import (
	"encoding/json"
)

// Tipos de mensagem que trafegam na conexão. O envelope é o mesmo nos dois
// sentidos; o payload é JSON bruto decodificado por quem conhece o tipo.
const (
	// Servidor -> cliente.
	TypeStart  = "start"  // a rodada começou, as cartas foram distribuídas
	TypeClosed = "closed" // o lobby foi encerrado pelo criador
	TypeError  = "error"  // uma operação do próprio cliente falhou

	// Cliente -> servidor.
	TypeClose = "close" // pedido de encerramento (só o criador é atendido)
	TypeTrade = "trade" // proposta de troca de carta por fundos

	// Servidor -> cliente, resultado de uma troca.
	TypeTradeExecuted = "trade_executed"
)

// Message é o envelope padrão de toda a comunicação.
// Payloads desconhecidos ou malformados são descartados em silêncio por
// quem os recebe; nunca viram falha.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage monta um envelope serializando o payload informado.
// Payload nil produz mensagem só de tipo, como {"type":"start"}.
func NewMessage(msgType string, payload any) Message {
	if payload == nil {
		return Message{Type: msgType}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		// Payloads são structs do próprio servidor; falha aqui é bug.
		panic("network: unmarshalable payload: " + err.Error())
	}
	return Message{Type: msgType, Payload: raw}
}

// ErrorPayload é o corpo das mensagens TypeError.
type ErrorPayload struct {
	Error string `json:"error"`
}

// NewErrorMessage é o atalho para respostas de erro ao cliente.
func NewErrorMessage(errorMsg string) Message {
	return NewMessage(TypeError, ErrorPayload{Error: errorMsg})
}

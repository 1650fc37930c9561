package lobby

import (
	"encoding/json"
	"errors"
	"log"

	"figgie/internal/game"
	"figgie/internal/network"
	"figgie/internal/session"
)

// TradePayload é o corpo inbound de uma proposta de troca. Quem envia a
// mensagem é o pagador: ele compra de From uma carta de Suit por Amount.
type TradePayload struct {
	From   string `json:"from"`
	Suit   string `json:"suit"`
	Amount int    `json:"amount"`
}

// TradeExecutedPayload é o corpo enviado às duas partes após uma troca.
type TradeExecutedPayload struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Suit   string `json:"suit"`
	Amount int    `json:"amount"`
}

// handleTrade valida e executa uma proposta de troca vinda da conexão.
// Payload malformado é descartado, seguindo a política geral de inbound;
// uma precondição de negócio violada volta como mensagem de erro para o
// remetente, sem tocar em nenhum estado.
func (m *Manager) handleTrade(l *Lobby, payerID session.PlayerID, raw json.RawMessage) {
	if !l.Started() {
		return
	}

	var trade TradePayload
	if err := json.Unmarshal(raw, &trade); err != nil {
		return
	}

	suit := game.Suit(trade.Suit)
	if !suit.Valid() || trade.Amount <= 0 || trade.From == "" || trade.From == payerID {
		return
	}

	err := l.session.SwapCardForFunds(trade.From, payerID, suit, trade.Amount)
	if err != nil {
		if conn, ok := l.conns[payerID]; ok {
			trySend(conn, network.NewErrorMessage(tradeErrorText(err)))
		}
		return
	}

	executed := network.NewMessage(network.TypeTradeExecuted, TradeExecutedPayload{
		From:   trade.From,
		To:     payerID,
		Suit:   trade.Suit,
		Amount: trade.Amount,
	})
	for _, id := range []session.PlayerID{trade.From, payerID} {
		if conn, ok := l.conns[id]; ok {
			trySend(conn, executed)
		}
	}

	log.Printf("[LobbyManager] lobby %s: %s bought 1 %s from %s for %d",
		l.ID, payerID, trade.Suit, trade.From, trade.Amount)
}

func tradeErrorText(err error) string {
	switch {
	case errors.Is(err, session.ErrInsufficientFunds):
		return "Insufficient funds"
	case errors.Is(err, session.ErrInsufficientCards):
		return "Insufficient cards"
	default:
		return "Trade rejected"
	}
}

package session

import "figgie/internal/game"

// SeedFunds define o saldo de todos os jogadores para o valor inicial.
// Chamar de novo sobrescreve os saldos (idempotente por chamada).
func (s *PlaySession) SeedFunds(amount int) {
	funds := make(PlayerFundsState, len(s.players))
	for _, id := range s.players {
		funds[id] = amount
	}
	s.fundsState = funds
}

// SwapCardForFunds executa uma troca de carta por fundos entre dois
// jogadores: `to` paga `amount` a `from` e recebe uma carta de `suit`.
//
// Atenção à direção, que é herdada do contrato da operação: é o saldo de
// `to` (o pagador) que precisa cobrir a oferta, e é `from` (o vendedor)
// quem é creditado. Não "corrigir" os nomes.
//
// A validação acontece nesta ordem: fundos do pagador, depois cartas do
// vendedor. Em caso de erro nenhum estado é tocado (tudo-ou-nada). Não
// existe preenchimento parcial nem lote de cartas.
func (s *PlaySession) SwapCardForFunds(from, to PlayerID, suit game.Suit, amount int) error {
	if s.cardState == nil || s.fundsState == nil {
		return ErrNotInitialized
	}

	if s.fundsState[to] < amount {
		return ErrInsufficientFunds
	}
	if s.cardState[from][suit] < 1 {
		return ErrInsufficientCards
	}

	s.fundsState[to] -= amount
	s.fundsState[from] += amount
	s.cardState[from][suit]--
	s.cardState[to][suit]++
	return nil
}

package session

import (
	"fmt"
	"math/rand/v2"

	"figgie/internal/game"
)

const (
	minPlayers = 4
	maxPlayers = 5

	// maxSuitAttempts limita os ressorteios de naipe em uma mesma carta.
	// É uma defesa contra uma fonte de aleatoriedade patológica; estourar
	// esse limite significa estado interno corrompido, não erro de uso.
	maxSuitAttempts = 50
)

// DealCards distribui o baralho inteiro entre os jogadores da sessão.
//
// O algoritmo: zera a mão de todos, mantém uma cópia mutável das contagens
// restantes e um cursor round-robin sobre os jogadores. A cada passo sorteia
// um naipe uniforme entre os que ainda têm cartas, entrega uma carta ao
// jogador do cursor e avança. Um contador de segurança semeado com o total
// do baralho garante término mesmo se a fonte de aleatoriedade se comportar
// mal — em entradas corretas ele nunca é o que encerra o laço.
//
// A distribuição resultante é aproximadamente igual entre jogadores, mas não
// exatamente, e não é uniforme sobre todos os deals possíveis. Esse é o
// comportamento esperado; não trocar por um embaralha-e-corta.
func (s *PlaySession) DealCards(r *rand.Rand) error {
	if len(s.players) < minPlayers || len(s.players) > maxPlayers {
		return ErrInvalidPlayerCount
	}

	composition, err := s.game.Composition()
	if err != nil {
		return fmt.Errorf("deal cards: %w", err)
	}

	remaining := make(map[game.Suit]int, len(composition.Counts))
	totalCards := 0
	for suit, count := range composition.Counts {
		remaining[suit] = count
		totalCards += count
	}

	cardState := make(PlayerCardState, len(s.players))
	for _, id := range s.players {
		hand := make(CardState, 4)
		for _, suit := range game.AllSuits() {
			hand[suit] = 0
		}
		cardState[id] = hand
	}

	hardLimit := game.DeckSize
	cursor := 0

	for totalCards > 0 && hardLimit > 0 {
		playerID := s.players[cursor]

		// Naipes ainda disponíveis, na ordem da permutação da composição.
		available := make([]game.Suit, 0, 4)
		for _, suit := range composition.Suits {
			if remaining[suit] > 0 {
				available = append(available, suit)
			}
		}

		selected, ok := pickSuit(r, available, remaining)
		if !ok {
			panic("session: no suit selected after 50 attempts")
		}

		cardState[playerID][selected]++
		remaining[selected]--
		totalCards--

		cursor++
		if cursor >= len(s.players) {
			cursor = 0
		}
		hardLimit--
	}

	s.cardState = cardState
	return nil
}

// pickSuit sorteia um naipe com cartas restantes, ressorteando até o limite.
func pickSuit(r *rand.Rand, available []game.Suit, remaining map[game.Suit]int) (game.Suit, bool) {
	for attempts := 0; attempts < maxSuitAttempts; attempts++ {
		candidate := available[r.IntN(len(available))]
		if remaining[candidate] > 0 {
			return candidate, true
		}
	}
	return "", false
}

package session

import (
	"figgie/internal/game"
)

// StartingFunds é o saldo inicial de cada jogador em uma rodada.
const StartingFunds = 350

// PlayerID é o identificador estável de um jogador, derivado da identidade
// verificada (o endereço da carteira). Nunca vem de input livre do usuário.
type PlayerID = string

// CardState mapeia naipe -> quantidade de cartas na mão de um jogador.
type CardState map[game.Suit]int

// PlayerCardState mapeia cada jogador para a sua mão.
// Invariante: para cada naipe, a soma entre jogadores é igual à contagem
// original da composição do baralho (conservação).
type PlayerCardState map[PlayerID]CardState

// PlayerFundsState mapeia cada jogador para o seu saldo.
// Invariante: a soma dos saldos é conservada por qualquer troca (soma zero).
type PlayerFundsState map[PlayerID]int

// PlaySession compõe uma instância de jogo, o livro de fundos/cartas e a
// escalação de jogadores de uma única rodada. Toda mutação acontece dentro
// da goroutine do gerenciador de lobbies; a struct em si não trava nada.
type PlaySession struct {
	id      string
	game    *game.Game
	players []PlayerID // ordem de entrada no lobby; o cursor do dealer percorre essa ordem

	cardState  PlayerCardState
	fundsState PlayerFundsState
}

// NewPlaySession cria a sessão de uma rodada. Cartas e fundos permanecem
// não inicializados até DealCards e SeedFunds serem chamados.
func NewPlaySession(id string, g *game.Game, players []PlayerID) *PlaySession {
	roster := make([]PlayerID, len(players))
	copy(roster, players)

	return &PlaySession{
		id:      id,
		game:    g,
		players: roster,
	}
}

func (s *PlaySession) ID() string       { return s.id }
func (s *PlaySession) Game() *game.Game { return s.game }

// Players retorna a escalação na ordem de entrada.
func (s *PlaySession) Players() []PlayerID {
	roster := make([]PlayerID, len(s.players))
	copy(roster, s.players)
	return roster
}

// CardState retorna o estado de cartas, ou ErrNotInitialized antes da
// distribuição. O mapa retornado é o estado vivo: o chamador não deve
// modificá-lo fora de SwapCardForFunds.
func (s *PlaySession) CardState() (PlayerCardState, error) {
	if s.cardState == nil {
		return nil, ErrNotInitialized
	}
	return s.cardState, nil
}

// FundsState retorna o estado de fundos, ou ErrNotInitialized antes de
// SeedFunds. Mesma observação de propriedade do CardState.
func (s *PlaySession) FundsState() (PlayerFundsState, error) {
	if s.fundsState == nil {
		return nil, ErrNotInitialized
	}
	return s.fundsState, nil
}

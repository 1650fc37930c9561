package game

import (
	"math/rand/v2"
)

// Game é uma instância de jogo de uma única rodada.
// Nasce vazia, é inicializada uma vez e a partir daí é somente leitura.
type Game struct {
	id          string
	name        string
	description string

	composition *Composition
}

// NewGame cria uma instância vazia. Nenhuma leitura dependente de estado
// funciona antes de Init.
func NewGame(id, name, description string) *Game {
	return &Game{
		id:          id,
		name:        name,
		description: description,
	}
}

func (g *Game) ID() string          { return g.id }
func (g *Game) Name() string        { return g.name }
func (g *Game) Description() string { return g.description }

// Init sorteia e instala a composição do baralho.
// Uma segunda chamada sobrescreve a composição em silêncio; o dono da
// instância (o gerenciador de lobbies) só chama Init uma vez por rodada.
func (g *Game) Init(r *rand.Rand) {
	c := GenerateComposition(r)
	g.composition = &c
}

// Composition retorna a composição da rodada, ou ErrNotInitialized se
// Init ainda não foi chamado. Nunca entrega estado parcial.
func (g *Game) Composition() (*Composition, error) {
	if g.composition == nil {
		return nil, ErrNotInitialized
	}
	return g.composition, nil
}

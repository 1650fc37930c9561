package game

import (
	"math/rand/v2"
)

const (
	// DeckSize é o total de cartas distribuídas em uma rodada.
	DeckSize = 40

	commonSuitCount = 12
	rareSuitCount   = 8
	normalSuitCount = 10
)

// suitCounts são as quantidades atribuídas às posições 0..3 da permutação.
// A posição 0 define o naipe comum.
var suitCounts = [4]int{commonSuitCount, normalSuitCount, normalSuitCount, rareSuitCount}

// Composition descreve o baralho de uma rodada: a permutação sorteada dos
// naipes, a contagem de cartas de cada um e o par comum/objetivo derivado.
type Composition struct {
	// Suits guarda a permutação sorteada. Suits[0] é o naipe comum.
	// A ordem importa: o distribuidor de cartas itera nessa ordem.
	Suits []Suit

	// Counts mapeia cada naipe para a quantidade de cartas no baralho.
	// Invariante: soma 40, exatamente um naipe com 12 e um com 8.
	Counts map[Suit]int

	CommonSuit Suit
	GoalSuit   Suit
}

// GenerateComposition sorteia a composição do baralho de uma rodada.
// O naipe que recebe 12 cartas é o comum; o naipe objetivo é o par de cor
// do comum (e portanto nunca é o próprio comum). Função pura da fonte de
// aleatoriedade: sem modos de falha.
func GenerateComposition(r *rand.Rand) Composition {
	suits := shuffleSuits(r, AllSuits())

	counts := make(map[Suit]int, len(suits))
	for i, s := range suits {
		counts[s] = suitCounts[i]
	}

	common := suits[0]
	return Composition{
		Suits:      suits,
		Counts:     counts,
		CommonSuit: common,
		GoalSuit:   common.ColorPair(),
	}
}

// shuffleSuits embaralha o slice in-place com Fisher-Yates e o retorna.
// Do último índice até o 1, troca o elemento atual com um índice
// uniforme <= atual. Entradas de 0 ou 1 elemento não entram no laço.
func shuffleSuits(r *rand.Rand, suits []Suit) []Suit {
	for i := len(suits) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		suits[i], suits[j] = suits[j], suits[i]
	}
	return suits
}

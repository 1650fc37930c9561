package game

// Suit identifica um dos quatro naipes do baralho.
// Usamos strings (e não iota) porque o valor viaja em payloads JSON
// e precisa ser legível dos dois lados da conexão.
type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// colorPairs mapeia cada naipe para o seu par de cor.
// O pareamento é fixo: copas<->ouros (vermelhos), paus<->espadas (pretos).
var colorPairs = map[Suit]Suit{
	Hearts:   Diamonds,
	Diamonds: Hearts,
	Clubs:    Spades,
	Spades:   Clubs,
}

// AllSuits retorna os quatro naipes na ordem canônica.
// Sempre devolve um slice novo, para que o chamador possa embaralhar à vontade.
func AllSuits() []Suit {
	return []Suit{Hearts, Diamonds, Clubs, Spades}
}

// ColorPair retorna o naipe da mesma cor do naipe informado.
func (s Suit) ColorPair() Suit {
	return colorPairs[s]
}

// Valid informa se a string corresponde a um naipe conhecido.
// Payloads vindos da rede passam por aqui antes de tocar em qualquer estado.
func (s Suit) Valid() bool {
	_, ok := colorPairs[s]
	return ok
}

func (s Suit) String() string { return string(s) }

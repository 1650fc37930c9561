package session

import "errors"

var (
	// ErrInvalidPlayerCount é retornado quando a distribuição de cartas é
	// tentada com menos de 4 ou mais de 5 jogadores na mesa.
	ErrInvalidPlayerCount = errors.New("invalid number of players")

	// ErrNotInitialized é retornado quando cartas ou fundos são lidos (ou
	// trocados) antes das respectivas inicializações.
	ErrNotInitialized = errors.New("session state not initialized")

	// ErrInsufficientFunds: o pagador não tem saldo para cobrir a oferta.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientCards: o vendedor não segura nenhuma carta do naipe.
	ErrInsufficientCards = errors.New("insufficient cards")
)

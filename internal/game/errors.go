package game

import "errors"

// ErrNotInitialized é retornado quando alguém tenta ler o estado de um jogo
// antes de Init. É um erro de sequência de chamadas, não de input do usuário,
// mas ainda assim é um resultado verificável e não um panic.
var ErrNotInitialized = errors.New("game state not initialized")

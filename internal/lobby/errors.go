package lobby

import "errors"

// Os textos viajam no corpo JSON da resposta de criação, então são os
// mesmos que o cliente web já trata.
var (
	// ErrDuplicateLobby: a identidade já é dona de um lobby rastreado.
	ErrDuplicateLobby = errors.New("Lobby already exists")

	// ErrLobbyLimit: o processo atingiu o teto de lobbies simultâneos.
	ErrLobbyLimit = errors.New("Lobby limit reached")

	// errStopped só aparece se alguém criar lobby depois do Stop.
	errStopped = errors.New("lobby manager stopped")
)

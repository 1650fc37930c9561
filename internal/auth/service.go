package auth

import (
	"fmt"
	"sync"
)

// TokenCache é o registro global endereço -> token corrente. Nasce vazio
// com o processo e só morre com ele. O mutex existe porque a cache é
// tocada pelas goroutines dos handlers HTTP, fora do ator de lobbies.
type TokenCache struct {
	mu     sync.Mutex
	tokens map[string]string
}

func NewTokenCache() *TokenCache {
	return &TokenCache{tokens: make(map[string]string)}
}

// Put registra a credencial como o token corrente da identidade,
// substituindo qualquer token anterior.
func (c *TokenCache) Put(address, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[address] = token
}

// Matches informa se a credencial é o token corrente da identidade.
func (c *TokenCache) Matches(address, token string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens[address] == token
}

// Service é o colaborador de identidade consumido pela camada de rede:
// verifica credenciais e mantém a cache de tokens correntes. A criação de
// lobby registra o token; a entrada por WebSocket exige o token registrado.
type Service struct {
	verifier *Verifier
	cache    *TokenCache
}

func NewService(verifier *Verifier) *Service {
	return &Service{
		verifier: verifier,
		cache:    NewTokenCache(),
	}
}

// Authorize verifica a credencial e a registra como token corrente.
func (s *Service) Authorize(token string) (string, error) {
	address, err := s.verifier.Verify(token)
	if err != nil {
		return "", err
	}
	s.cache.Put(address, token)
	return address, nil
}

// Admit verifica a credencial e exige que ela seja o token corrente da
// identidade — um token antigo, mesmo que ainda válido, não entra.
func (s *Service) Admit(token string) (string, error) {
	address, err := s.verifier.Verify(token)
	if err != nil {
		return "", err
	}
	if !s.cache.Matches(address, token) {
		return "", fmt.Errorf("%w: credential is not the current token", ErrUnauthenticated)
	}
	return address, nil
}

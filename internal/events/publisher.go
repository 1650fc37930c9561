// Package events publica o ciclo de vida dos lobbies em NATS.
// Os assuntos são consumidos por serviços de fora do processo (ranking,
// notificações); nada aqui participa do caminho crítico de uma rodada.
package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	subjectLobbyCreated = "figgie.lobby.created"
	subjectLobbyStarted = "figgie.lobby.started"
	subjectLobbyClosed  = "figgie.lobby.closed"
)

// Publisher envolve a conexão NATS. Um *Publisher nil é válido e vira
// no-op em todos os métodos, para rodar sem broker em dev e nos testes.
type Publisher struct {
	nc *nats.Conn
}

// Connect abre a conexão com o broker. Reconexão fica por conta da
// própria biblioteca; perder um evento de ciclo de vida não é fatal.
func Connect(url string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("figgie-server"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{nc: nc}, nil
}

// Close encerra a conexão depois de drenar o que estiver pendente.
func (p *Publisher) Close() {
	if p == nil || p.nc == nil {
		return
	}
	p.nc.Drain()
}

// Healthy informa se a conexão com o broker está de pé.
func (p *Publisher) Healthy() bool {
	if p == nil || p.nc == nil {
		return false
	}
	return p.nc.IsConnected()
}

type lobbyEvent struct {
	LobbyID string   `json:"lobbyId"`
	Creator string   `json:"creator,omitempty"`
	Players []string `json:"players,omitempty"`
}

func (p *Publisher) LobbyCreated(lobbyID, creator string) {
	p.publish(subjectLobbyCreated, lobbyEvent{LobbyID: lobbyID, Creator: creator})
}

func (p *Publisher) LobbyStarted(lobbyID string, players []string) {
	p.publish(subjectLobbyStarted, lobbyEvent{LobbyID: lobbyID, Players: players})
}

func (p *Publisher) LobbyClosed(lobbyID string) {
	p.publish(subjectLobbyClosed, lobbyEvent{LobbyID: lobbyID})
}

func (p *Publisher) publish(subject string, event lobbyEvent) {
	if p == nil || p.nc == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[events] marshal %s: %v", subject, err)
		return
	}
	if err := p.nc.Publish(subject, data); err != nil {
		log.Printf("[events] publish %s: %v", subject, err)
	}
}

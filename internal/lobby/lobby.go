package lobby

import (
	"time"

	"figgie/internal/network"
	"figgie/internal/session"
)

// Conn é o punho de entrega de mensagens para um jogador conectado.
// A camada de rede é dona do ciclo de vida da conexão; o lobby só guarda
// a referência para empurrar mensagens e pedir o fechamento.
type Conn interface {
	Send() chan<- network.Message
	Close() error
}

// Lobby é uma sala aguardando (ou já rodando) uma rodada. Todo acesso
// acontece dentro da goroutine do Manager; nenhum outro componente guarda
// referência que sobreviva à remoção do lobby.
type Lobby struct {
	ID      string
	Creator session.PlayerID

	// conns mapeia jogador -> conexão; order preserva a ordem de entrada,
	// que vira a ordem da escalação na hora da distribuição.
	conns map[session.PlayerID]Conn
	order []session.PlayerID

	// timer do auto-início; zerado quando a rodada começa ou o lobby fecha.
	timer *time.Timer

	// session só existe depois que a rodada começou.
	session *session.PlaySession
}

func newLobby(id string, creator session.PlayerID) *Lobby {
	return &Lobby{
		ID:      id,
		Creator: creator,
		conns:   make(map[session.PlayerID]Conn),
	}
}

// Session devolve a sessão da rodada, ou nil se a rodada não começou.
func (l *Lobby) Session() *session.PlaySession { return l.session }

// Started informa se a rodada já foi materializada.
func (l *Lobby) Started() bool { return l.session != nil }

// attach liga (ou religa) a conexão de um jogador. Uma reconexão substitui
// o punho antigo mas mantém a posição original na ordem de entrada.
func (l *Lobby) attach(playerID session.PlayerID, conn Conn) {
	if _, known := l.conns[playerID]; !known {
		l.order = append(l.order, playerID)
	}
	l.conns[playerID] = conn
}

// detach solta a conexão de um jogador, mas só se ela ainda for a conexão
// registrada — um detach atrasado de uma conexão substituída é ignorado.
func (l *Lobby) detach(playerID session.PlayerID, conn Conn) {
	if current, ok := l.conns[playerID]; ok && current == conn {
		delete(l.conns, playerID)
	}
}

// roster monta a escalação da rodada: os jogadores ainda conectados, na
// ordem de entrada.
func (l *Lobby) roster() []session.PlayerID {
	players := make([]session.PlayerID, 0, len(l.conns))
	for _, id := range l.order {
		if _, connected := l.conns[id]; connected {
			players = append(players, id)
		}
	}
	return players
}

// broadcast entrega a mensagem a todos os conectados sem bloquear: um
// cliente com o buffer de saída lotado perde a mensagem em vez de travar
// a goroutine do Manager.
func (l *Lobby) broadcast(msg network.Message) {
	for _, conn := range l.conns {
		trySend(conn, msg)
	}
}

func trySend(conn Conn, msg network.Message) {
	select {
	case conn.Send() <- msg:
	default:
	}
}

// stopTimer cancela o auto-início pendente; inofensivo se o timer já
// disparou ou já foi cancelado.
func (l *Lobby) stopTimer() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

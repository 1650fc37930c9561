package lobby

import (
	"errors"
	"math/rand/v2"
	"sync/atomic"
	"testing"
	"time"

	"figgie/internal/network"
	"figgie/internal/session"
)

// fakeConn implementa Conn para os testes, gravando o que o Manager envia.
type fakeConn struct {
	ch     chan network.Message
	closed atomic.Bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{ch: make(chan network.Message, 32)}
}

func (f *fakeConn) Send() chan<- network.Message { return f.ch }

func (f *fakeConn) Close() error {
	f.closed.Store(true)
	return nil
}

// drain devolve tudo que foi enviado até agora, sem bloquear.
func (f *fakeConn) drain() []network.Message {
	var msgs []network.Message
	for {
		select {
		case msg := <-f.ch:
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

func (f *fakeConn) lastType(t *testing.T) string {
	t.Helper()
	msgs := f.drain()
	if len(msgs) == 0 {
		t.Fatal("no message received")
	}
	return msgs[len(msgs)-1].Type
}

func newTestManager(t *testing.T, opts Options) *Manager {
	t.Helper()
	if opts.Countdown == 0 {
		opts.Countdown = time.Hour // o teste dispara o timer na mão
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(1, 2))
	}
	m := NewManager(opts)
	go m.Run()
	t.Cleanup(m.Stop)
	return m
}

// await faz um round-trip pela caixa de mensagens: quando retorna, tudo
// que foi enfileirado antes já foi processado pelo ator.
func await(m *Manager) *Lobby {
	return lobbyOf(m, "")
}

func lobbyOf(m *Manager, id string) *Lobby {
	reply := make(chan *Lobby, 1)
	m.enqueue(inspectCmd{lobbyID: id, reply: reply})
	return <-reply
}

// fireTimer simula o vencimento do prazo do lobby.
func fireTimer(m *Manager, id string) {
	m.enqueue(timerCmd{lobbyID: id})
	await(m)
}

func joinN(m *Manager, lobbyID string, n int) map[session.PlayerID]*fakeConn {
	conns := make(map[session.PlayerID]*fakeConn, n)
	names := []session.PlayerID{"p1", "p2", "p3", "p4", "p5", "p6"}
	for i := 0; i < n; i++ {
		conn := newFakeConn()
		conns[names[i]] = conn
		m.join(lobbyID, names[i], conn)
	}
	await(m)
	return conns
}

func TestCreateLobbyPolicies(t *testing.T) {
	m := newTestManager(t, Options{})

	first, err := m.CreateLobby("alice")
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first == "" {
		t.Fatal("first create returned empty id")
	}

	if _, err := m.CreateLobby("bob"); err != nil {
		t.Fatalf("second create by another identity: %v", err)
	}

	if _, err := m.CreateLobby("carol"); !errors.Is(err, ErrLobbyLimit) {
		t.Fatalf("third create: err = %v, want ErrLobbyLimit", err)
	}

	if _, err := m.CreateLobby("alice"); !errors.Is(err, ErrDuplicateLobby) {
		t.Fatalf("duplicate create: err = %v, want ErrDuplicateLobby", err)
	}
}

func TestJoinUnknownLobbyClosesConnection(t *testing.T) {
	m := newTestManager(t, Options{})

	conn := newFakeConn()
	m.join("no-such-lobby", "alice", conn)
	await(m)

	if !conn.closed.Load() {
		t.Fatal("connection to unknown lobby was not closed")
	}
}

func TestCreatorCloseBroadcastsAndRemoves(t *testing.T) {
	m := newTestManager(t, Options{})

	id, _ := m.CreateLobby("p1")
	conns := joinN(m, id, 3)

	m.dispatch(id, "p1", network.Message{Type: network.TypeClose})
	await(m)

	for name, conn := range conns {
		if got := conn.lastType(t); got != network.TypeClosed {
			t.Fatalf("%s: last message type = %s, want %s", name, got, network.TypeClosed)
		}
		if !conn.closed.Load() {
			t.Fatalf("%s: connection left open after close", name)
		}
	}

	if lobbyOf(m, id) != nil {
		t.Fatal("lobby still tracked after close")
	}

	// O criador fica livre para abrir outro lobby.
	if _, err := m.CreateLobby("p1"); err != nil {
		t.Fatalf("create after close: %v", err)
	}
}

func TestNonCreatorCloseIsIgnored(t *testing.T) {
	m := newTestManager(t, Options{})

	id, _ := m.CreateLobby("p1")
	conns := joinN(m, id, 2)

	m.dispatch(id, "p2", network.Message{Type: network.TypeClose})
	await(m)

	if lobbyOf(m, id) == nil {
		t.Fatal("non-creator close removed the lobby")
	}
	if msgs := conns["p2"].drain(); len(msgs) != 0 {
		t.Fatalf("non-creator close produced %d messages, want silence", len(msgs))
	}
}

func TestTimerFireStartsRound(t *testing.T) {
	m := newTestManager(t, Options{})

	id, _ := m.CreateLobby("p1")
	conns := joinN(m, id, 4)

	fireTimer(m, id)

	for name, conn := range conns {
		if got := conn.lastType(t); got != network.TypeStart {
			t.Fatalf("%s: last message type = %s, want %s", name, got, network.TypeStart)
		}
	}

	l := lobbyOf(m, id)
	if l == nil || !l.Started() {
		t.Fatal("lobby not started after timer fire")
	}

	sess := l.Session()
	funds, err := sess.FundsState()
	if err != nil {
		t.Fatalf("FundsState: %v", err)
	}
	for _, id := range sess.Players() {
		if funds[id] != session.StartingFunds {
			t.Fatalf("player %s funds = %d, want %d", id, funds[id], session.StartingFunds)
		}
	}
	if _, err := sess.CardState(); err != nil {
		t.Fatalf("CardState after start: %v", err)
	}
}

func TestTimerFireSurfacesBadRosterSize(t *testing.T) {
	m := newTestManager(t, Options{})

	id, _ := m.CreateLobby("p1")
	conns := joinN(m, id, 3)

	fireTimer(m, id)

	for name, conn := range conns {
		if got := conn.lastType(t); got != network.TypeError {
			t.Fatalf("%s: last message type = %s, want %s", name, got, network.TypeError)
		}
		if !conn.closed.Load() {
			t.Fatalf("%s: connection left open after failed start", name)
		}
	}
	if lobbyOf(m, id) != nil {
		t.Fatal("lobby still tracked after failed start")
	}
}

func TestTimerFireOnClosedLobbyIsNoOp(t *testing.T) {
	m := newTestManager(t, Options{})

	id, _ := m.CreateLobby("p1")
	conns := joinN(m, id, 4)

	m.dispatch(id, "p1", network.Message{Type: network.TypeClose})
	await(m)
	for _, conn := range conns {
		conn.drain()
	}

	fireTimer(m, id)

	if lobbyOf(m, id) != nil {
		t.Fatal("late timer fire resurrected the lobby")
	}
	for name, conn := range conns {
		if msgs := conn.drain(); len(msgs) != 0 {
			t.Fatalf("%s: late timer fire produced %d messages", name, len(msgs))
		}
	}
}

func TestAutoStartTimerFiresOnItsOwn(t *testing.T) {
	m := newTestManager(t, Options{Countdown: 20 * time.Millisecond})

	id, _ := m.CreateLobby("p1")
	conns := joinN(m, id, 4)

	deadline := time.After(2 * time.Second)
	select {
	case msg := <-conns["p1"].ch:
		if msg.Type != network.TypeStart {
			t.Fatalf("message type = %s, want %s", msg.Type, network.TypeStart)
		}
	case <-deadline:
		t.Fatal("auto-start timer never fired")
	}
}

func TestDisconnectShrinksRoster(t *testing.T) {
	m := newTestManager(t, Options{})

	id, _ := m.CreateLobby("p1")
	conns := joinN(m, id, 5)

	m.leave(id, "p5", conns["p5"])
	fireTimer(m, id)

	l := lobbyOf(m, id)
	if l == nil || !l.Started() {
		t.Fatal("lobby did not start")
	}
	roster := l.Session().Players()
	if len(roster) != 4 {
		t.Fatalf("roster size = %d, want 4", len(roster))
	}
	for _, playerID := range roster {
		if playerID == "p5" {
			t.Fatal("disconnected player ended up in the roster")
		}
	}
}

func TestStaleDetachKeepsReplacementConnection(t *testing.T) {
	m := newTestManager(t, Options{})

	id, _ := m.CreateLobby("p1")
	old := newFakeConn()
	m.join(id, "p1", old)

	// Reconexão: um punho novo substitui o antigo antes do detach atrasado.
	fresh := newFakeConn()
	m.join(id, "p1", fresh)
	m.leave(id, "p1", old)
	await(m)

	l := lobbyOf(m, id)
	if _, connected := l.conns["p1"]; !connected {
		t.Fatal("stale detach dropped the replacement connection")
	}
}

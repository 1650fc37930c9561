package lobby

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"figgie/internal/events"
	"figgie/internal/game"
	"figgie/internal/network"
	"figgie/internal/session"
)

const (
	// DefaultCountdown é o prazo entre a criação do lobby e o auto-início.
	DefaultCountdown = 60 * time.Second

	// DefaultMaxLobbies é o teto de lobbies simultâneos por processo.
	DefaultMaxLobbies = 2
)

// Options configura o Manager. O zero de cada campo cai no default.
type Options struct {
	Countdown     time.Duration
	MaxLobbies    int
	StartingFunds int

	// Rand é a fonte de aleatoriedade da composição e da distribuição.
	// Só é tocada de dentro da goroutine do ator.
	Rand *rand.Rand

	// Events pode ser nil; o publisher é no-op nesse caso.
	Events *events.Publisher
}

// Manager é o ator dono da coleção de lobbies. Toda mutação — criação,
// entrada, fechamento, disparo do timer, trocas — passa pela mesma caixa
// de mensagens e roda na goroutine de Run, então o estado compartilhado
// dispensa locks. O Manager implementa network.EventHandler e
// network.LobbyCreator.
type Manager struct {
	// Acessado SOMENTE pela goroutine de Run.
	lobbies map[string]*Lobby

	commands chan command
	quit     chan struct{}

	countdown     time.Duration
	maxLobbies    int
	startingFunds int
	rng           *rand.Rand
	events        *events.Publisher
}

// ---- Mensagens do ator ----

type command interface{ isCommand() }

type createCmd struct {
	creator session.PlayerID
	reply   chan createReply
}

type createReply struct {
	lobbyID string
	err     error
}

type joinCmd struct {
	lobbyID  string
	playerID session.PlayerID
	conn     Conn
}

type leaveCmd struct {
	lobbyID  string
	playerID session.PlayerID
	conn     Conn
	done     chan struct{}
}

type inboundCmd struct {
	lobbyID  string
	playerID session.PlayerID
	msg      network.Message
}

type timerCmd struct {
	lobbyID string
}

type inspectCmd struct {
	lobbyID string
	reply   chan *Lobby
}

func (createCmd) isCommand()  {}
func (joinCmd) isCommand()    {}
func (leaveCmd) isCommand()   {}
func (inboundCmd) isCommand() {}
func (timerCmd) isCommand()   {}
func (inspectCmd) isCommand() {}

// NewManager cria o ator. Chame Run em uma goroutine antes de usar.
func NewManager(opts Options) *Manager {
	if opts.Countdown <= 0 {
		opts.Countdown = DefaultCountdown
	}
	if opts.MaxLobbies <= 0 {
		opts.MaxLobbies = DefaultMaxLobbies
	}
	if opts.StartingFunds <= 0 {
		opts.StartingFunds = session.StartingFunds
	}
	if opts.Rand == nil {
		now := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(now, now>>1))
	}

	return &Manager{
		lobbies:       make(map[string]*Lobby),
		commands:      make(chan command),
		quit:          make(chan struct{}),
		countdown:     opts.Countdown,
		maxLobbies:    opts.MaxLobbies,
		startingFunds: opts.StartingFunds,
		rng:           opts.Rand,
		events:        opts.Events,
	}
}

// Run processa a caixa de mensagens até Stop.
func (m *Manager) Run() {
	log.Printf("[LobbyManager] actor started (countdown %s, max %d lobbies)", m.countdown, m.maxLobbies)
	for {
		select {
		case cmd := <-m.commands:
			m.handle(cmd)
		case <-m.quit:
			return
		}
	}
}

// Stop encerra a goroutine do ator. Comandos em trânsito são abandonados.
func (m *Manager) Stop() { close(m.quit) }

// enqueue entrega um comando ao ator sem ficar preso caso ele já parou.
func (m *Manager) enqueue(cmd command) {
	select {
	case m.commands <- cmd:
	case <-m.quit:
	}
}

// ---- API pública (produtores da caixa de mensagens) ----

// CreateLobby registra um lobby para a identidade e agenda o auto-início.
// Síncrono: responde o id novo, ErrDuplicateLobby ou ErrLobbyLimit.
func (m *Manager) CreateLobby(creator string) (string, error) {
	reply := make(chan createReply, 1)
	m.enqueue(createCmd{creator: creator, reply: reply})
	select {
	case r := <-reply:
		return r.lobbyID, r.err
	case <-m.quit:
		return "", errStopped
	}
}

// OnConnect entrega ao ator a entrada de um cliente já autenticado.
func (m *Manager) OnConnect(c *network.Client) {
	m.join(c.LobbyID(), c.PlayerID(), c)
}

// OnDisconnect remove o punho da conexão do lobby. Síncrono de propósito:
// quando retorna, o ator já largou a referência e o canal de envio do
// cliente pode ser fechado com segurança.
func (m *Manager) OnDisconnect(c *network.Client) {
	m.leave(c.LobbyID(), c.PlayerID(), c)
}

// OnMessage roteia uma mensagem inbound para o lobby do cliente.
func (m *Manager) OnMessage(c *network.Client, msg network.Message) {
	m.dispatch(c.LobbyID(), c.PlayerID(), msg)
}

func (m *Manager) join(lobbyID string, playerID session.PlayerID, conn Conn) {
	m.enqueue(joinCmd{lobbyID: lobbyID, playerID: playerID, conn: conn})
}

func (m *Manager) leave(lobbyID string, playerID session.PlayerID, conn Conn) {
	done := make(chan struct{})
	m.enqueue(leaveCmd{lobbyID: lobbyID, playerID: playerID, conn: conn, done: done})
	select {
	case <-done:
	case <-m.quit:
	}
}

func (m *Manager) dispatch(lobbyID string, playerID session.PlayerID, msg network.Message) {
	m.enqueue(inboundCmd{lobbyID: lobbyID, playerID: playerID, msg: msg})
}

// ---- Lado do ator ----

func (m *Manager) handle(cmd command) {
	switch c := cmd.(type) {
	case createCmd:
		id, err := m.handleCreate(c.creator)
		c.reply <- createReply{lobbyID: id, err: err}

	case joinCmd:
		m.handleJoin(c)

	case leaveCmd:
		if l, ok := m.lobbies[c.lobbyID]; ok {
			l.detach(c.playerID, c.conn)
		}
		close(c.done)

	case inboundCmd:
		m.handleInbound(c)

	case timerCmd:
		m.handleTimerFire(c.lobbyID)

	case inspectCmd:
		c.reply <- m.lobbies[c.lobbyID]
	}
}

func (m *Manager) handleCreate(creator session.PlayerID) (string, error) {
	for _, l := range m.lobbies {
		if l.Creator == creator {
			return "", ErrDuplicateLobby
		}
	}
	if len(m.lobbies) >= m.maxLobbies {
		return "", ErrLobbyLimit
	}

	id := uuid.NewString()
	l := newLobby(id, creator)
	l.timer = time.AfterFunc(m.countdown, func() {
		m.enqueue(timerCmd{lobbyID: id})
	})
	m.lobbies[id] = l

	log.Printf("[LobbyManager] lobby %s created by %s", id, creator)
	m.events.LobbyCreated(id, creator)
	return id, nil
}

func (m *Manager) handleJoin(c joinCmd) {
	l, ok := m.lobbies[c.lobbyID]
	if !ok {
		// O lobby pode ter fechado enquanto a credencial era verificada.
		c.conn.Close()
		return
	}
	l.attach(c.playerID, c.conn)
	log.Printf("[LobbyManager] player %s joined lobby %s (%d connected)", c.playerID, l.ID, len(l.conns))
}

func (m *Manager) handleInbound(c inboundCmd) {
	l, ok := m.lobbies[c.lobbyID]
	if !ok {
		return
	}

	switch c.msg.Type {
	case network.TypeClose:
		// Pedidos de quem não é o criador são ignorados em silêncio.
		if c.playerID == l.Creator {
			m.closeLobby(l)
		}

	case network.TypeTrade:
		m.handleTrade(l, c.playerID, c.msg.Payload)

	default:
		// Tipo desconhecido: descarta, não responde.
	}
}

// closeLobby é o encerramento explícito: avisa todo mundo, derruba as
// conexões, cancela o timer pendente e esquece o lobby.
func (m *Manager) closeLobby(l *Lobby) {
	l.broadcast(network.NewMessage(network.TypeClosed, nil))
	for _, conn := range l.conns {
		conn.Close()
	}
	l.stopTimer()
	delete(m.lobbies, l.ID)

	log.Printf("[LobbyManager] lobby %s closed", l.ID)
	m.events.LobbyClosed(l.ID)
}

// handleTimerFire materializa a rodada quando o prazo do lobby vence.
// Se o lobby já foi fechado, o disparo atrasado é um no-op.
func (m *Manager) handleTimerFire(lobbyID string) {
	l, ok := m.lobbies[lobbyID]
	if !ok {
		return
	}
	l.timer = nil

	roster := l.roster()

	g := game.NewGame(l.ID, "Figgie", "Figgie game")
	g.Init(m.rng)

	sess := session.NewPlaySession(l.ID, g, roster)
	sess.SeedFunds(m.startingFunds)

	if err := sess.DealCards(m.rng); err != nil {
		// Elenco fora de [4,5] na hora do início. O erro chega aos
		// conectados e o lobby morre; engolir isso esconderia rodadas
		// que nunca começaram.
		log.Printf("[LobbyManager] lobby %s failed to start: %v", l.ID, err)
		l.broadcast(network.NewErrorMessage("Unable to start the round: " + err.Error()))
		for _, conn := range l.conns {
			conn.Close()
		}
		delete(m.lobbies, l.ID)
		m.events.LobbyClosed(l.ID)
		return
	}

	l.session = sess
	l.broadcast(network.NewMessage(network.TypeStart, nil))

	log.Printf("[LobbyManager] lobby %s started with %d players", l.ID, len(roster))
	m.events.LobbyStarted(l.ID, roster)
}

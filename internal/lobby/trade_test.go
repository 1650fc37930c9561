package lobby

import (
	"encoding/json"
	"testing"

	"figgie/internal/game"
	"figgie/internal/network"
	"figgie/internal/session"
)

func startedLobby(t *testing.T) (*Manager, string, map[session.PlayerID]*fakeConn, *Lobby) {
	t.Helper()
	m := newTestManager(t, Options{})
	id, err := m.CreateLobby("p1")
	if err != nil {
		t.Fatalf("CreateLobby: %v", err)
	}
	conns := joinN(m, id, 4)
	fireTimer(m, id)

	l := lobbyOf(m, id)
	if l == nil || !l.Started() {
		t.Fatal("lobby did not start")
	}
	for _, conn := range conns {
		conn.drain() // descarta o "start"
	}
	return m, id, conns, l
}

func tradeMessage(t *testing.T, from session.PlayerID, suit game.Suit, amount int) network.Message {
	t.Helper()
	payload, err := json.Marshal(TradePayload{From: from, Suit: string(suit), Amount: amount})
	if err != nil {
		t.Fatalf("marshal trade payload: %v", err)
	}
	return network.Message{Type: network.TypeTrade, Payload: payload}
}

func TestTradeOverConnection(t *testing.T) {
	m, id, conns, l := startedLobby(t)

	suit := suitHeld(t, l.Session(), "p1")

	// p2 compra de p1 uma carta de `suit` por 5.
	m.dispatch(id, "p2", tradeMessage(t, "p1", suit, 5))
	await(m)

	for _, name := range []session.PlayerID{"p1", "p2"} {
		if got := conns[name].lastType(t); got != network.TypeTradeExecuted {
			t.Fatalf("%s: last message type = %s, want %s", name, got, network.TypeTradeExecuted)
		}
	}

	funds, _ := l.Session().FundsState()
	if funds["p1"] != 355 || funds["p2"] != 345 {
		t.Fatalf("funds after trade = %d/%d, want 355/345", funds["p1"], funds["p2"])
	}
}

func TestTradeInsufficientFundsAnswersPayer(t *testing.T) {
	m, id, conns, l := startedLobby(t)

	suit := suitHeld(t, l.Session(), "p1")

	m.dispatch(id, "p2", tradeMessage(t, "p1", suit, session.StartingFunds+1))
	await(m)

	if got := conns["p2"].lastType(t); got != network.TypeError {
		t.Fatalf("payer got %s, want %s", got, network.TypeError)
	}
	if msgs := conns["p1"].drain(); len(msgs) != 0 {
		t.Fatalf("seller got %d messages for a failed trade", len(msgs))
	}

	funds, _ := l.Session().FundsState()
	if funds["p1"] != session.StartingFunds || funds["p2"] != session.StartingFunds {
		t.Fatal("failed trade moved funds")
	}
}

func TestMalformedTradeIsDropped(t *testing.T) {
	m, id, conns, _ := startedLobby(t)

	for _, msg := range []network.Message{
		{Type: network.TypeTrade, Payload: json.RawMessage(`{not json`)},
		{Type: network.TypeTrade, Payload: json.RawMessage(`{"from":"p1","suit":"jokers","amount":5}`)},
		{Type: network.TypeTrade, Payload: json.RawMessage(`{"from":"p1","suit":"hearts","amount":-5}`)},
		{Type: network.TypeTrade, Payload: json.RawMessage(`{"from":"p2","suit":"hearts","amount":5}`)}, // consigo mesmo
		{Type: "warp", Payload: nil}, // tipo desconhecido
	} {
		m.dispatch(id, "p2", msg)
	}
	await(m)

	for name, conn := range conns {
		if msgs := conn.drain(); len(msgs) != 0 {
			t.Fatalf("%s: malformed inbound produced %d messages", name, len(msgs))
		}
	}
}

func TestTradeBeforeStartIsDropped(t *testing.T) {
	m := newTestManager(t, Options{})
	id, _ := m.CreateLobby("p1")
	conns := joinN(m, id, 4)

	m.dispatch(id, "p2", tradeMessage(t, "p1", game.Hearts, 5))
	await(m)

	for name, conn := range conns {
		if msgs := conn.drain(); len(msgs) != 0 {
			t.Fatalf("%s: pre-start trade produced %d messages", name, len(msgs))
		}
	}
}

func suitHeld(t *testing.T, s *session.PlaySession, id session.PlayerID) game.Suit {
	t.Helper()
	cards, err := s.CardState()
	if err != nil {
		t.Fatalf("CardState: %v", err)
	}
	for _, suit := range game.AllSuits() {
		if cards[id][suit] > 0 {
			return suit
		}
	}
	t.Fatalf("player %s holds no cards", id)
	return ""
}

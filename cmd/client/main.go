// Cliente de linha de comando para testar o servidor na mão: entra em um
// lobby, imprime tudo que chega e aceita comandos do stdin.
//
//	close                       pede o encerramento (só funciona para o criador)
//	trade <seller> <suit> <n>   compra do seller uma carta de suit por n
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"figgie/internal/lobby"
	"figgie/internal/network"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatalf("usage: %s <lobby-id> <token>", os.Args[0])
	}
	lobbyID, token := os.Args[1], os.Args[2]

	host := os.Getenv("FIGGIE_SERVER")
	if host == "" {
		host = "localhost:3000"
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	u := url.URL{
		Scheme:   "ws",
		Host:     host,
		Path:     "/ws/" + lobbyID,
		RawQuery: url.Values{"token": {token}}.Encode(),
	}
	log.Printf("Connecting to %s", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Could not connect: %v", err)
	}
	defer conn.Close()

	done := make(chan struct{})
	go readLoop(conn, done)

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			handleInput(conn, scanner.Text())
		}
	}()

	select {
	case <-done:
		log.Println("Disconnected from server.")
	case <-interrupt:
		log.Println("Interrupt received, closing connection.")
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}
}

func readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		var msg network.Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if len(msg.Payload) > 0 {
			fmt.Printf("<< %s %s\n", msg.Type, string(msg.Payload))
		} else {
			fmt.Printf("<< %s\n", msg.Type)
		}
	}
}

func handleInput(conn *websocket.Conn, line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "close":
		send(conn, network.NewMessage(network.TypeClose, nil))

	case "trade":
		if len(fields) != 4 {
			fmt.Println("usage: trade <seller> <suit> <amount>")
			return
		}
		amount, err := strconv.Atoi(fields[3])
		if err != nil {
			fmt.Println("amount must be a number")
			return
		}
		send(conn, network.NewMessage(network.TypeTrade, lobby.TradePayload{
			From:   fields[1],
			Suit:   fields[2],
			Amount: amount,
		}))

	default:
		fmt.Println("unknown command:", fields[0])
	}
}

func send(conn *websocket.Conn, msg network.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal: %v", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("write: %v", err)
	}
}

package network

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// Authenticator valida a credencial apresentada por um request e devolve a
// identidade estável do jogador. As duas operações existem porque o fluxo
// de criação registra o token e o fluxo de conexão exige o token registrado.
type Authenticator interface {
	// Authorize verifica a credencial e a registra como o token corrente
	// da identidade. Usado na rota HTTP de criação de lobby.
	Authorize(token string) (playerID string, err error)

	// Admit verifica a credencial e exige que ela seja o token corrente
	// da identidade. Usado no handshake do WebSocket.
	Admit(token string) (playerID string, err error)
}

// LobbyCreator é o ponto de entrada de criação de rodadas.
type LobbyCreator interface {
	// CreateLobby devolve o id do lobby criado ou um erro de política
	// (lobby duplicado, limite atingido).
	CreateLobby(creator string) (string, error)
}

// Server expõe as duas portas de entrada do processo: a rota HTTP de
// criação de lobby e a rota WebSocket de entrada em um lobby.
type Server struct {
	hub     *Hub
	auth    Authenticator
	lobbies LobbyCreator
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// O jogo roda dentro de um webview de terceiros; a origem não é um
	// limite de confiança aqui, o token é.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewServer injeta a lógica do jogo (handler), a verificação de identidade
// e o serviço de lobbies.
func NewServer(handler EventHandler, auth Authenticator, lobbies LobbyCreator) *Server {
	return &Server{
		hub:     NewHub(handler),
		auth:    auth,
		lobbies: lobbies,
	}
}

// Register instala as rotas do servidor no mux informado e põe o Hub para
// rodar. O chamador fica dono do http.Server (e de rotas extras, como o
// health check).
func (s *Server) Register(mux *http.ServeMux) {
	go s.hub.Run()
	mux.HandleFunc("POST /lobby", s.createLobbyHandler)
	mux.HandleFunc("GET /ws/{lobby}", s.wsHandler)
}

// createLobbyHandler autentica o criador e pede um lobby novo.
// Erros de política viram 400 com o texto do erro, igualzinho ao contrato
// que o cliente web já espera.
func (s *Server) createLobbyHandler(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	playerID, err := s.auth.Authorize(token)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	lobbyID, err := s.lobbies.CreateLobby(playerID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"lobbyId": lobbyID})
}

// wsHandler promove a conexão e só registra o cliente no Hub depois que a
// credencial foi verificada. A verificação pode demorar; quem confere se o
// lobby ainda existe nesse meio tempo é o gerenciador, na hora do join.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	lobbyID := r.PathValue("lobby")
	token := r.URL.Query().Get("token")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[network] upgrade failed: %v", err)
		return
	}

	if lobbyID == "" || token == "" {
		conn.Close()
		return
	}

	playerID, err := s.auth.Admit(token)
	if err != nil {
		conn.Close()
		return
	}

	client := &Client{
		conn:     conn,
		hub:      s.hub,
		send:     make(chan Message, 256),
		playerID: playerID,
		lobbyID:  lobbyID,
	}

	client.hub.register <- client

	go client.writeLoop()
	go client.readLoop()
}

// bearerToken aceita o token cru ou com o prefixo "Bearer ".
func bearerToken(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"figgie/internal/auth"
	"figgie/internal/cluster"
	"figgie/internal/config"
	"figgie/internal/events"
	"figgie/internal/lobby"
	"figgie/internal/network"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}

	// 1. Colaborador de identidade.
	if cfg.AuthPublicKey == "" {
		log.Fatal("FIGGIE_AUTH_PUBLIC_KEY is required")
	}
	key, err := auth.ParsePublicKey(cfg.AuthPublicKey)
	if err != nil {
		log.Fatalf("Could not parse auth public key: %v", err)
	}
	authService := auth.NewService(auth.NewVerifier(cfg.AuthIssuer, cfg.Domain, key))

	// 2. Publicador de eventos (opcional; nil é no-op).
	var publisher *events.Publisher
	if cfg.NatsURL != "" {
		publisher, err = events.Connect(cfg.NatsURL)
		if err != nil {
			log.Fatalf("Could not connect to NATS at %s: %v", cfg.NatsURL, err)
		}
		defer publisher.Close()
	}

	// 3. O ator dono dos lobbies.
	manager := lobby.NewManager(lobby.Options{Events: publisher})
	go manager.Run()

	// 4. Camada de rede: rota de criação + WebSocket.
	server := network.NewServer(manager, authService, manager)
	mux := http.NewServeMux()
	server.Register(mux)

	// 5. Health check, com o broker agregado quando configurado.
	health := cluster.NewHealthAggregator()
	if publisher != nil {
		health.AddCheck("nats", func() error {
			if !publisher.Healthy() {
				return errors.New("nats connection is down")
			}
			return nil
		})
	}
	mux.HandleFunc("GET /health", health.Handler())

	// 6. Presença no Consul, quando existe um agente por perto.
	if cfg.ConsulAddr != "" {
		if err := cluster.Register(cfg.ConsulAddr, cfg.Port); err != nil {
			log.Fatalf("Could not register in consul: %v", err)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("HTTP server listening on port %d", cfg.Port)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

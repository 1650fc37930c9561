// Package config centraliza a configuração do processo, toda vinda de
// variáveis de ambiente.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config é a configuração do servidor. Os limites de jogo (teto de
// lobbies, prazo de auto-início, fundos iniciais) são fixos no código de
// propósito; aqui só mora o que muda entre instalações.
type Config struct {
	// Porta do servidor HTTP/WebSocket.
	Port int `env:"PORT" envDefault:"3000"`

	// Domain é a audiência esperada nos tokens de identidade.
	Domain string `env:"DOMAIN" envDefault:"farggie.xyz"`

	// Emissor e chave pública (ed25519, base64) do provedor de identidade.
	AuthIssuer    string `env:"FIGGIE_AUTH_ISSUER" envDefault:"https://auth.farcaster.xyz"`
	AuthPublicKey string `env:"FIGGIE_AUTH_PUBLIC_KEY"`

	// Endereço do agente Consul. Vazio desliga o registro de serviço.
	ConsulAddr string `env:"CONSUL_HTTP_ADDR"`

	// URL do broker NATS. Vazio desliga a publicação de eventos.
	NatsURL string `env:"FIGGIE_NATS_URL"`
}

// Load lê a configuração do ambiente.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

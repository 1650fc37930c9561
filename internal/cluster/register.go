// Package cluster cuida da presença do processo na infraestrutura: o
// registro no Consul e o endpoint de health que o agente consulta.
package cluster

import (
	"fmt"
	"log"
	"os"

	consul "github.com/hashicorp/consul/api"
)

const serviceName = "figgie-server"

// Register inscreve este processo no agente Consul. O ID é derivado do
// hostname para cada réplica ter o seu; o health check bate no /health
// servido pelo próprio processo.
func Register(consulAddr string, servicePort int) error {
	cfg := consul.DefaultConfig()
	cfg.Address = consulAddr

	client, err := consul.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("create consul client: %w", err)
	}

	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname, _ = os.Hostname()
	}
	serviceID := fmt.Sprintf("%s-%s", serviceName, hostname)

	registration := &consul.AgentServiceRegistration{
		ID:   serviceID,
		Name: serviceName,
		Port: servicePort,

		// Sem Address: o agente usa o IP de quem registra, que dentro da
		// rede do compose é o hostname resolvível do contêiner.
		Check: &consul.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%d/health", hostname, servicePort),
			Timeout:  "5s",
			Interval: "10s",
			// Se a réplica ficar crítica por 1 minuto, some do catálogo.
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("register service in consul: %w", err)
	}

	log.Printf("[cluster] service %s registered in consul at %s", serviceID, consulAddr)
	return nil
}

package cluster

import (
	"fmt"

	consul "github.com/hashicorp/consul/api"
	"github.com/sirupsen/logrus"
)

// Registration descreve como o servidor se anuncia no Consul.
type Registration struct {
	ServiceName string
	Hostname    string
	Port        int
}

// ServiceID é único por máquina: nome do serviço mais hostname.
func (r Registration) ServiceID() string {
	return fmt.Sprintf("%s-%s", r.ServiceName, r.Hostname)
}

func (r Registration) agentRegistration() *consul.AgentServiceRegistration {
	return &consul.AgentServiceRegistration{
		ID:   r.ServiceID(),
		Name: r.ServiceName,
		Port: r.Port,
		Tags: []string{"websocket", "game"},
		Check: &consul.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/health", r.Hostname, r.Port),
			Timeout:                        "5s",
			Interval:                       "10s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}
}

// Register anuncia o serviço e devolve a função que o remove do catálogo.
func Register(client *consul.Client, r Registration, log *logrus.Entry) (func() error, error) {
	log = log.WithFields(logrus.Fields{"component": "cluster", "service_id": r.ServiceID()})

	if err := client.Agent().ServiceRegister(r.agentRegistration()); err != nil {
		return nil, fmt.Errorf("register %s in consul: %w", r.ServiceID(), err)
	}
	log.Info("service registered in consul")

	deregister := func() error {
		if err := client.Agent().ServiceDeregister(r.ServiceID()); err != nil {
			return fmt.Errorf("deregister %s: %w", r.ServiceID(), err)
		}
		log.Info("service deregistered from consul")
		return nil
	}
	return deregister, nil
}

// LeaderCheck é um CheckFunc que falha quando o agente Consul não tem líder.
func LeaderCheck(client *consul.Client) CheckFunc {
	return func() error {
		leader, err := client.Status().Leader()
		if err != nil {
			return err
		}
		if leader == "" {
			return fmt.Errorf("consul has no leader")
		}
		return nil
	}
}

package cluster

import (
	"fmt"
	"strings"

	consul "github.com/hashicorp/consul/api"
	"github.com/sirupsen/logrus"
)

// NewConsulClient tenta cada endereço da lista (separada por vírgula) até
// achar um agente que responda com um líder eleito.
func NewConsulClient(addrs string, log *logrus.Entry) (*consul.Client, error) {
	log = log.WithField("component", "cluster")

	for _, node := range strings.Split(addrs, ",") {
		node = strings.TrimSpace(node)
		if node == "" {
			continue
		}
		cfg := consul.DefaultConfig()
		cfg.Address = node

		client, err := consul.NewClient(cfg)
		if err != nil {
			log.WithError(err).WithField("node", node).Warn("consul client creation failed")
			continue
		}

		// Teste rápido de saúde
		if _, err := client.Status().Leader(); err != nil {
			log.WithError(err).WithField("node", node).Warn("consul node did not answer")
			continue
		}

		log.WithField("node", node).Info("connected to consul")
		return client, nil
	}

	return nil, fmt.Errorf("no consul node available in %q", addrs)
}

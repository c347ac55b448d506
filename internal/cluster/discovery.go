package cluster

import (
	"fmt"
	"math/rand/v2"

	consul "github.com/hashicorp/consul/api"
)

// DiscoverHealthy devolve "host:porta" de cada instância saudável do serviço,
// em ordem aleatória para espalhar os clientes.
func DiscoverHealthy(client *consul.Client, serviceName string) ([]string, error) {
	entries, _, err := client.Health().Service(serviceName, "", true, nil)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", serviceName, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no healthy instance of %s", serviceName)
	}

	addrs := make([]string, 0, len(entries))
	for _, e := range entries {
		addr := e.Service.Address
		if addr == "" {
			addr = e.Node.Address
		}
		addrs = append(addrs, fmt.Sprintf("%s:%d", addr, e.Service.Port))
	}
	rand.Shuffle(len(addrs), func(i, j int) { addrs[i], addrs[j] = addrs[j], addrs[i] })
	return addrs, nil
}

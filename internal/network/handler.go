package network

// Peer é uma conexão vista pela lógica do jogo. *Client implementa; os testes
// da sessão usam implementações falsas.
type Peer interface {
	ID() string

	// Send nunca bloqueia. Devolve false se a mensagem foi descartada
	// (conexão fechada ou buffer cheio).
	Send(msg Message) bool

	// Close encerra a conexão. O OnDisconnect correspondente ainda será entregue.
	Close()
}

// EventHandler é a interface que conecta a lógica da rede com a lógica do jogo.
// O Hub chama os três métodos a partir de uma única goroutine, um evento por vez.
type EventHandler interface {
	// OnConnect é chamado quando um novo cliente se conecta com sucesso.
	OnConnect(p Peer)

	// OnDisconnect é chamado quando um cliente se desconecta.
	OnDisconnect(p Peer)

	// OnMessage é chamado quando uma nova mensagem é recebida de um cliente.
	OnMessage(p Peer, msg Message)
}

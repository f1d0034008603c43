package ws

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: subscribe | unsubscribe | ping
// Sport: obrigatório para subscribe/unsubscribe
type ClientMsg struct {
	Type  string `json:"type"`  // subscribe | unsubscribe | ping
	Sport string `json:"sport"` // requerido em subscribe/unsubscribe
}

// PropUpdate representa uma atualização de quote enviada para clientes WebSocket
type PropUpdate struct {
	Sport   string      `json:"sport"`
	Key     string      `json:"key"` // player + prop type
	Payload interface{} `json:"payload"`
}

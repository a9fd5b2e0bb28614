package mock_generator

type MockChunk struct {
	Token   string `json:"token"`
	DelayMs int    `json:"delay_ms"`
}

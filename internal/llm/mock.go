package llm

import "context"

// MockClient permite tests sin llamar a un modelo real. Registra las
// llamadas recibidas para poder afirmar que un guard cortocircuitó.
type MockClient struct {
	Response string
	Err      error

	Calls      int
	LastSystem string
	LastUser   string
}

func (m *MockClient) Complete(_ context.Context, system, user string) (string, error) {
	m.Calls++
	m.LastSystem = system
	m.LastUser = user
	return m.Response, m.Err
}

package pipeline

import (
	"context"
)

type MockLLM struct {
	Response      string
	ResponseQueue []string
	Err           error
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}

type MockEmbedder struct {
	Vector []float32
	Calls  int
	Err    error
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Vector, nil
}

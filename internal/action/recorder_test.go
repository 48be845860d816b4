package action_test

import (
	"github.com/stretchr/testify/mock"

	"github.com/RomanHargrave/lyrebird/pkg/model"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(p model.Payload) error {
	args := m.Called(p)
	return args.Error(0)
}

func newRecorder() *mockRecorder {
	m := &mockRecorder{}
	m.On("Record", mock.Anything).Return(nil)
	return m
}

func (m *mockRecorder) payloads() []model.Payload {
	var out []model.Payload
	for _, c := range m.Calls {
		if c.Method == "Record" {
			out = append(out, c.Arguments.Get(0).(model.Payload))
		}
	}
	return out
}

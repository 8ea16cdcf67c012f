package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockMailManager is a testify mock of managers.MailMgr.
type MockMailManager struct {
	mock.Mock
}

func (m *MockMailManager) SendWelcomeMail(email, name string) error {
	args := m.Called(email, name)
	return args.Error(0)
}

func (m *MockMailManager) SendAdoptionMail(email, name, schoolName string) error {
	args := m.Called(email, name, schoolName)
	return args.Error(0)
}

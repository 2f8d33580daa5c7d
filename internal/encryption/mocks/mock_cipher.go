package mocks

import "github.com/stretchr/testify/mock"

type MockCipher struct {
	mock.Mock
}

func (m *MockCipher) Encrypt(plaintext []byte) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockCipher) Decrypt(encoded string) ([]byte, error) {
	args := m.Called(encoded)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

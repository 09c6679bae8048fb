package services

import (
	"sync"

	"github.com/voltline/voltline-api/models"
)

// MockEmailService records confirmation sends for testing
type MockEmailService struct {
	mu   sync.Mutex
	sent []string // order numbers in send order
	fail bool
}

// NewMockEmailService creates a new mock email service
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

// SetAsMockForTesting sets this mock as the global email service instance for testing
func (m *MockEmailService) SetAsMockForTesting() {
	SetEmailService(m)
}

// FailNext makes every subsequent send return an error
func (m *MockEmailService) FailNext(fail bool) {
	m.mu.Lock()
	m.fail = fail
	m.mu.Unlock()
}

// SendOrderConfirmation records the send instead of calling SES
func (m *MockEmailService) SendOrderConfirmation(order *models.Order, recipientEmail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errMockSendFailed
	}
	m.sent = append(m.sent, order.OrderNumber)
	return nil
}

// SentOrderNumbers returns the order numbers confirmed so far
func (m *MockEmailService) SentOrderNumbers() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.sent))
	copy(out, m.sent)
	return out
}

type mockSendError struct{}

func (mockSendError) Error() string { return "mock email send failed" }

var errMockSendFailed = mockSendError{}

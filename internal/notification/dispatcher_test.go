package notification_test

import (
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/evisarw/visa-management/internal/notification"
)

func TestNotification(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notification Suite")
}

type fakeSender struct {
	mu       sync.Mutex
	sent     []notification.Email
	failures int
}

func (f *fakeSender) Send(email notification.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, email)
	return nil
}

func (f *fakeSender) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeSender) lastSent() notification.Email {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

var _ = Describe("Dispatcher", func() {
	var (
		sender     *fakeSender
		dispatcher *notification.Dispatcher
		logger     *slog.Logger
	)

	BeforeEach(func() {
		sender = &fakeSender{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		dispatcher = notification.NewDispatcher(notification.DispatcherConfig{
			MaxWorkers:   2,
			QueueSize:    10,
			MaxAttempts:  3,
			RetryBackoff: 5 * time.Millisecond,
		}, sender, logger)
	})

	AfterEach(func() {
		dispatcher.Shutdown()
	})

	It("delivers an enqueued email", func() {
		err := dispatcher.Enqueue(notification.Email{
			To:      "amina.uwase@example.com",
			Subject: "Visa application received - RW26253001",
		})

		Expect(err).ToNot(HaveOccurred())
		Eventually(sender.sentCount, time.Second, 10*time.Millisecond).Should(Equal(1))
		Expect(sender.lastSent().To).To(Equal("amina.uwase@example.com"))
	})

	It("retries failed deliveries with backoff", func() {
		sender.failures = 2

		err := dispatcher.Enqueue(notification.Email{To: "amina.uwase@example.com"})

		Expect(err).ToNot(HaveOccurred())
		Eventually(sender.sentCount, 2*time.Second, 10*time.Millisecond).Should(Equal(1))
	})

	It("drops an email after exhausting attempts", func() {
		sender.failures = 5

		err := dispatcher.Enqueue(notification.Email{To: "amina.uwase@example.com"})

		Expect(err).ToNot(HaveOccurred())
		Consistently(sender.sentCount, 200*time.Millisecond, 20*time.Millisecond).Should(BeZero())
	})

	It("rejects work when the queue is full", func() {
		blocker := &blockingSender{release: make(chan struct{})}
		full := notification.NewDispatcher(notification.DispatcherConfig{
			MaxWorkers: 1,
			QueueSize:  1,
		}, blocker, logger)
		defer full.Shutdown()
		defer close(blocker.release)

		// The single worker blocks on the first email; once the queue slot
		// fills behind it, further enqueues are refused.
		Eventually(func() error {
			return full.Enqueue(notification.Email{To: "amina.uwase@example.com"})
		}, time.Second, 10*time.Millisecond).Should(HaveOccurred())
	})
})

type blockingSender struct {
	release chan struct{}
}

func (b *blockingSender) Send(notification.Email) error {
	<-b.release
	return nil
}

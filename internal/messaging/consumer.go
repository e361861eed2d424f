package messaging

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/avast/retry-go"
	amqp "github.com/rabbitmq/amqp091-go"

	"complaint-service/internal/model"
	"complaint-service/internal/repository"
)

const (
	maxRetryAttempts = 3
	initialDelay     = 1 * time.Second
	maxDelay         = 30 * time.Second
)

// DeliveryConsumer drains queued notification events and hands them to the
// delivery channel for their type. Email and SMS gateways live outside this
// service; in-app notifications are already persisted, so delivery here is a
// durable record that the event left the queue.
type DeliveryConsumer struct {
	rmq              *RabbitMQ
	notificationRepo *repository.NotificationRepository
	done             chan struct{}
	wg               sync.WaitGroup
}

func NewDeliveryConsumer(rmq *RabbitMQ, notificationRepo *repository.NotificationRepository) *DeliveryConsumer {
	return &DeliveryConsumer{
		rmq:              rmq,
		notificationRepo: notificationRepo,
		done:             make(chan struct{}),
	}
}

func (c *DeliveryConsumer) Start() {
	c.wg.Add(1)
	go c.consumeLoop()
	log.Println("consumer started")
}

func (c *DeliveryConsumer) consumeLoop() {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			log.Println("consumer: stopping")
			return
		default:
			msgs, err := c.rmq.Consume()
			if err != nil {
				log.Printf("consumer: error %v, retrying in 5s...", err)
				time.Sleep(5 * time.Second)
				continue
			}

			log.Println("consumer: listening for messages")
			c.processQueue(msgs)
		}
	}
}

func (c *DeliveryConsumer) processQueue(msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-c.done:
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Println("consumer: channel closed, reconnecting...")
				return
			}
			c.processMessageWithRetry(msg)
		}
	}
}

// processMessageWithRetry handles retry with backoff and deduplicates by
// message id so redeliveries never double-deliver.
func (c *DeliveryConsumer) processMessageWithRetry(msg amqp.Delivery) {
	messageID := msg.MessageId
	if messageID == "" {
		messageID = fmt.Sprintf("%x", msg.Body[:min(32, len(msg.Body))])
	}

	processed, err := c.notificationRepo.IsMessageProcessed(messageID)
	if err != nil {
		log.Printf("consumer: idempotency check failed: %v", err)
	}
	if processed {
		log.Printf("consumer: %s already processed", messageID)
		msg.Ack(false)
		return
	}

	err = retry.Do(
		func() error {
			return c.handleDelivery(msg)
		},
		retry.Attempts(maxRetryAttempts),
		retry.Delay(initialDelay),
		retry.MaxDelay(maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("consumer: retry %d: %v", n+1, err)
		}),
	)

	if err != nil {
		log.Printf("consumer: failed, sending to DLQ: %v", err)
		msg.Nack(false, false)
		return
	}

	if err := c.notificationRepo.MarkMessageProcessed(messageID); err != nil {
		log.Printf("consumer: mark processed failed: %v", err)
	}

	msg.Ack(false)
}

func (c *DeliveryConsumer) handleDelivery(msg amqp.Delivery) error {
	var event NotificationQueuedMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("consumer: bad json: %v", err)
		return nil
	}

	switch model.NotificationType(event.Type) {
	case model.NotificationInApp:
		// Already persisted by the dispatcher; nothing further to deliver.
	case model.NotificationEmail, model.NotificationSMS:
		// Gateway delivery is owned by an external collaborator.
		log.Printf("consumer: %s delivery for notification %s handed off", event.Type, event.NotificationID)
	default:
		log.Printf("consumer: unknown notification type %q", event.Type)
	}

	return nil
}

func (c *DeliveryConsumer) Stop() {
	close(c.done)
	c.wg.Wait()
	log.Println("consumer stopped")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

package kafka

import (
	"fmt"
	"net"
	"strconv"

	"github.com/segmentio/kafka-go"
)

// CreateTopicIfNotExists asks the cluster controller to create a topic; an
// already-existing topic is not an error.
func CreateTopicIfNotExists(brokers []string, topic string) error {
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return fmt.Errorf("failed to dial broker: %w", err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("failed to get controller: %w", err)
	}

	controllerConn, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return fmt.Errorf("failed to dial controller: %w", err)
	}
	defer controllerConn.Close()

	return controllerConn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
}

// EnsureTopicsExist creates every required topic, collecting the first error.
func EnsureTopicsExist(brokers []string, topics []string) error {
	var firstErr error
	for _, topic := range topics {
		if err := CreateTopicIfNotExists(brokers, topic); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/config"
	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/logger"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

const (
	handleTimeout   = 5 * time.Second
	disconnectQuiet = 250 // milliseconds
)

// Subscriber wires MQTT telemetry messages into the processor.
type Subscriber struct {
	cfg       config.MQTTConfig
	client    mqtt.Client
	processor *Processor
	log       *slog.Logger

	mu      sync.Mutex
	started bool
}

// NewSubscriber builds a paho client from cfg. The client id gets a random
// suffix so several server replicas can share one broker.
func NewSubscriber(cfg config.MQTTConfig, processor *Processor) (*Subscriber, error) {
	if cfg.Broker == "" {
		return nil, errors.New("mqtt broker is not configured")
	}
	if processor == nil {
		return nil, errors.New("processor is required")
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(fmt.Sprintf("%s-%s", cfg.ClientID, uuid.NewString()[:8]))
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetCleanSession(true)
	opts.SetKeepAlive(time.Duration(cfg.KeepAlive) * time.Second)
	opts.SetConnectTimeout(time.Duration(cfg.ConnectTimeout) * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Minute)

	s := &Subscriber{
		cfg:       cfg,
		processor: processor,
		log:       logger.WithComponent("mqtt"),
	}

	opts.SetOnConnectHandler(func(c mqtt.Client) {
		s.log.Info("MQTT client connected", "broker", cfg.Broker)
		// Subscriptions do not survive a clean-session reconnect.
		if err := s.subscribe(c); err != nil {
			s.log.Warn("Resubscribe failed", "error", err)
		}
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		s.log.Warn("MQTT connection lost", "error", err)
	})
	opts.SetReconnectingHandler(func(mqtt.Client, *mqtt.ClientOptions) {
		s.log.Info("Reconnecting to MQTT broker...")
	})

	s.client = mqtt.NewClient(opts)
	return s, nil
}

// Start connects to the broker. Subscription happens in the connect handler.
func (s *Subscriber) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	token := s.client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	s.started = true
	return nil
}

func (s *Subscriber) subscribe(c mqtt.Client) error {
	token := c.Subscribe(s.cfg.TelemetryTopic, byte(s.cfg.QoS), s.onMessage)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", s.cfg.TelemetryTopic, err)
	}
	s.log.Info("Listening for telemetry", "topic", s.cfg.TelemetryTopic, "qos", s.cfg.QoS)
	return nil
}

// Stop unsubscribes and disconnects from the broker.
func (s *Subscriber) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	token := s.client.Unsubscribe(s.cfg.TelemetryTopic)
	token.Wait()
	if err := token.Error(); err != nil {
		s.log.Warn("Failed to unsubscribe from telemetry topic", "error", err)
	}
	s.client.Disconnect(disconnectQuiet)
	s.started = false
	s.log.Info("Disconnected from MQTT broker")
}

// onMessage decodes a reading, validates it and hands it to the processor.
// Invalid payloads are logged and dropped.
func (s *Subscriber) onMessage(_ mqtt.Client, msg mqtt.Message) {
	reading, err := ParseTelemetry(msg.Topic(), msg.Payload())
	if err != nil {
		s.log.Warn("Invalid telemetry payload", "topic", msg.Topic(), "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	if _, err := s.processor.Process(ctx, reading); err != nil {
		s.log.Warn("Failed to apply telemetry", "topic", msg.Topic(), "error", err)
	}
}

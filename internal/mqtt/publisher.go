package mqttsink

import (
	"context"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// ErrPublishTimeout is returned when the broker does not acknowledge a
// publish within the publish timeout.
var ErrPublishTimeout = errors.New("mqtt: publish timed out")

// Options configure the broker connection.
type Options struct {
	Host     string
	Port     int
	Username string
	Password string
	ClientID string
}

// Publisher is the MQTT-backed publish sink.
type Publisher struct {
	client  mqtt.Client
	timeout time.Duration
}

// NewPublisher connects to the broker and returns a ready publisher.
func NewPublisher(opts Options, logger *zap.Logger) (*Publisher, error) {
	co := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", opts.Host, opts.Port)).
		SetClientID(opts.ClientID).
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true).
		SetOrderMatters(false)

	if opts.Username != "" {
		co.SetUsername(opts.Username)
		co.SetPassword(opts.Password)
	}

	co.OnConnect = func(mqtt.Client) {
		logger.Info("connected to mqtt broker",
			zap.String("host", opts.Host),
			zap.Int("port", opts.Port))
	}
	co.OnConnectionLost = func(_ mqtt.Client, err error) {
		logger.Warn("mqtt connection lost", zap.Error(err))
	}

	client := mqtt.NewClient(co)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		client.Disconnect(0)
		return nil, errors.New("mqtt: connect timed out")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt: connect: %w", err)
	}

	return &Publisher{client: client, timeout: publishTimeout}, nil
}

// Publish sends one payload and waits for broker acknowledgment, the
// context, or the publish timeout, whichever comes first.
func (p *Publisher) Publish(ctx context.Context, topic string, payload []byte, qos byte, retain bool) error {
	token := p.client.Publish(topic, qos, retain, payload)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-token.Done():
		return token.Error()
	case <-time.After(p.timeout):
		return ErrPublishTimeout
	}
}

// Close disconnects from the broker, allowing in-flight messages to drain.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}

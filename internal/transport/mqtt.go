package transport

import (
	"crypto/tls"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/zettelwerk/ticket-gateway/internal/shared/logger"
	"github.com/zettelwerk/ticket-gateway/internal/status"
	"go.uber.org/zap"
)

// MQTTConfig describes the broker connection.
type MQTTConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	UseTLS   bool
	ClientID string
}

// MQTTClient wraps the paho client behind the Publisher interface.
type MQTTClient struct {
	client mqtt.Client
}

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 30 * time.Second
)

// NewMQTTClient creates a client for the configured broker. Connect must be
// called before the first publish; reconnection after a drop is handled by
// the paho client itself.
func NewMQTTClient(cfg MQTTConfig) (*MQTTClient, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("MQTT host not configured")
	}

	scheme := "tcp"
	if cfg.UseTLS {
		scheme = "ssl"
	}
	broker := fmt.Sprintf("%s://%s:%d", scheme, cfg.Host, cfg.Port)

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("ticket-gateway-%d", time.Now().Unix())
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetOrderMatters(false)

	if cfg.Username != "" || cfg.Password != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	opts.SetOnConnectHandler(func(c mqtt.Client) {
		logger.Info("Connected to MQTT broker", zap.String("broker", broker))
		status.SetTransportConnected(true)
	})
	opts.SetConnectionLostHandler(func(c mqtt.Client, err error) {
		logger.Warn("MQTT connection lost", zap.Error(err))
		status.SetTransportConnected(false)
	})
	opts.SetReconnectingHandler(func(c mqtt.Client, o *mqtt.ClientOptions) {
		logger.Info("Reconnecting to MQTT broker", zap.String("broker", broker))
	})

	return &MQTTClient{client: mqtt.NewClient(opts)}, nil
}

// Connect establishes the broker connection.
func (m *MQTTClient) Connect() error {
	token := m.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("MQTT connect timed out after %s", connectTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("MQTT connect failed: %w", err)
	}
	return nil
}

// Publish sends one message and waits for the broker acknowledgement.
func (m *MQTTClient) Publish(topic string, qos byte, payload []byte) error {
	token := m.client.Publish(topic, qos, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %q timed out after %s", topic, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %q failed: %w", topic, err)
	}
	return nil
}

// Disconnect closes the broker connection, allowing in-flight messages a
// short grace period.
func (m *MQTTClient) Disconnect() {
	m.client.Disconnect(250)
	status.SetTransportConnected(false)
}

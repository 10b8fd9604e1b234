package mqttbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"green_index/internal/logger"
	"green_index/internal/models"
	"green_index/internal/service"
)

const (
	connectRetryInterval = 5 * time.Second
	disconnectQuiesceMS  = 250
	subscribeQoS         = 1
)

// Recorder is the ingestion boundary the bridge feeds.
type Recorder interface {
	Record(ctx context.Context, source string, pkt models.DevicePacket) (models.NormalizedReading, error)
}

type Config struct {
	Broker   string
	Topic    string
	ClientID string
	Username string
	Password string
}

// Bridge subscribes to device telemetry on an MQTT broker and records every
// message through the same boundary as the HTTP ingest endpoint.
type Bridge struct {
	cfg Config
	rec Recorder
	log *logger.Logger
}

func New(cfg Config, rec Recorder, log *logger.Logger) *Bridge {
	if log == nil {
		log = logger.Nop()
	}
	return &Bridge{cfg: cfg, rec: rec, log: log}
}

// Run connects and blocks until ctx is done. Subscriptions are renewed on
// every (re)connect.
func (b *Bridge) Run(ctx context.Context) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(b.cfg.Broker)
	opts.SetClientID(b.cfg.ClientID)
	opts.SetUsername(b.cfg.Username)
	opts.SetPassword(b.cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(connectRetryInterval)

	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		b.log.Warnw("mqtt_connection_lost", "err", err)
	})
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		b.log.Infow("mqtt_connected", "broker", b.cfg.Broker)
		token := client.Subscribe(b.cfg.Topic, subscribeQoS, func(_ mqtt.Client, msg mqtt.Message) {
			_ = b.handleMessage(ctx, msg.Topic(), msg.Payload())
		})
		if token.Wait() && token.Error() != nil {
			b.log.Errorw("mqtt_subscribe_failed", "topic", b.cfg.Topic, "err", token.Error())
			return
		}
		b.log.Infow("mqtt_subscribed", "topic", b.cfg.Topic)
	})

	client := mqtt.NewClient(opts)
	b.log.Infow("mqtt_connecting", "broker", b.cfg.Broker)
	token := client.Connect()
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("mqtt connect %s: %w", b.cfg.Broker, err)
		}
	case <-ctx.Done():
	}

	<-ctx.Done()
	client.Disconnect(disconnectQuiesceMS)
	b.log.Infow("mqtt_disconnected")
	return nil
}

// handleMessage decodes one device packet. When the payload omits deviceId
// the last topic segment is used, so greenindex/sensors/ROOM1 works for
// devices that publish bare readings.
func (b *Bridge) handleMessage(ctx context.Context, topic string, payload []byte) error {
	var pkt models.DevicePacket
	if err := json.Unmarshal(payload, &pkt); err != nil {
		b.log.Warnw("mqtt_bad_payload", "topic", topic, "err", err)
		return fmt.Errorf("decode %s: %w", topic, err)
	}
	if pkt.DeviceID == "" {
		pkt.DeviceID = deviceIDFromTopic(topic)
	}
	if _, err := b.rec.Record(ctx, service.SourceMQTT, pkt); err != nil {
		if errors.Is(err, models.ErrInvalidPacket) {
			b.log.Warnw("mqtt_invalid_packet", "topic", topic, "err", err)
		} else {
			b.log.Errorw("mqtt_record_failed", "topic", topic, "device_id", pkt.DeviceID, "err", err)
		}
		return err
	}
	return nil
}

func deviceIDFromTopic(topic string) string {
	i := strings.LastIndexByte(topic, '/')
	last := topic[i+1:]
	if last == "#" || last == "+" {
		return ""
	}
	return last
}

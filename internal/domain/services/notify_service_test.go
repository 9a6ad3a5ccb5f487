package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flatmoney-service/internal/infrastructure/config"
)

type fakeToken struct {
	mqtt.Token
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Error() error                   { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

// fakeClient 只实现通知服务用到的方法
type fakeClient struct {
	mqtt.Client
	connected bool
	messages  []published
}

func (c *fakeClient) IsConnected() bool { return c.connected }

func (c *fakeClient) Publish(topic string, qos byte, _ bool, payload interface{}) mqtt.Token {
	c.messages = append(c.messages, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return &fakeToken{}
}

func TestEventTopic(t *testing.T) {
	assert.Equal(t, "flatmoney/buildings/7/events", EventTopic("flatmoney", 7))
	assert.Equal(t, "acme/fm/buildings/7/events", EventTopic("/acme/fm/", 7))
	assert.Equal(t, "flatmoney/buildings/7/events", EventTopic("", 7))
}

func TestNewNotifyService_WithoutBrokerIsNoop(t *testing.T) {
	svc := NewNotifyService(&config.Config{})
	assert.IsType(t, NoopNotifyService{}, svc)
	assert.NoError(t, svc.Connect())
}

func TestMQTTNotify_Publish(t *testing.T) {
	client := &fakeClient{connected: true}
	svc := &MQTTNotifyService{
		Config:         &config.Config{MQTTTopicPrefix: "fm", MQTTQoS: 1},
		Client:         client,
		publishTimeout: time.Second,
	}
	svc.setConnected(true)

	svc.Publish(context.Background(), 3, EventBuildingDeleted, map[string]interface{}{"by": 1})

	require.Len(t, client.messages, 1)
	msg := client.messages[0]
	assert.Equal(t, "fm/buildings/3/events", msg.topic)
	assert.Equal(t, byte(1), msg.qos)

	var event BuildingEvent
	require.NoError(t, json.Unmarshal(msg.payload, &event))
	assert.Equal(t, EventBuildingDeleted, event.Type)
	assert.Equal(t, uint(3), event.BuildingID)
	assert.NotZero(t, event.Timestamp)
}

func TestMQTTNotify_DropsWhenDisconnected(t *testing.T) {
	client := &fakeClient{connected: false}
	svc := &MQTTNotifyService{
		Config:         &config.Config{MQTTTopicPrefix: "fm"},
		Client:         client,
		publishTimeout: time.Second,
	}
	svc.setConnected(true)

	svc.Publish(context.Background(), 3, EventObligationPaid, nil)
	assert.Empty(t, client.messages)
}

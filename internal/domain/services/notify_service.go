package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"flatmoney-service/internal/infrastructure/config"
	"flatmoney-service/pkg/logger"
)

// 楼宇事件类型
const (
	EventObligationsIssued = "obligations.issued"
	EventObligationPaid    = "obligation.paid"
	EventBuildingDeleted   = "building.deleted"
)

// BuildingEvent 发布到 MQTT 的楼宇事件
type BuildingEvent struct {
	Type       string      `json:"type"`
	BuildingID uint        `json:"building_id"`
	Timestamp  int64       `json:"timestamp"`
	Data       interface{} `json:"data,omitempty"`
}

// InterfaceNotifyService 楼宇事件通知，发布失败只记日志不影响请求结果
type InterfaceNotifyService interface {
	Connect() error
	Publish(ctx context.Context, buildingID uint, eventType string, data interface{})
	Disconnect()
}

// MQTTNotifyService 基于 MQTT 的事件通知
type MQTTNotifyService struct {
	Config *config.Config
	Client mqtt.Client

	connectedMutex sync.RWMutex
	isConnected    bool
	publishTimeout time.Duration
}

// NewNotifyService 创建通知服务；未配置 MQTT_BROKER_URL 时返回空实现
func NewNotifyService(cfg *config.Config) InterfaceNotifyService {
	if cfg.MQTTBrokerURL == "" {
		return NoopNotifyService{}
	}

	service := &MQTTNotifyService{
		Config:         cfg,
		publishTimeout: 3 * time.Second,
	}
	service.setupMQTTClient()
	return service
}

// setupMQTTClient 设置MQTT客户端
func (s *MQTTNotifyService) setupMQTTClient() {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(s.Config.MQTTBrokerURL)
	// 同一服务多实例时客户端ID不能重复
	opts.SetClientID(fmt.Sprintf("%s-%s", s.Config.MQTTClientID, uuid.New().String()[:8]))
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(30 * time.Second)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetCleanSession(true)

	if s.Config.MQTTUsername != "" {
		opts.SetUsername(s.Config.MQTTUsername)
		opts.SetPassword(s.Config.MQTTPassword)
	}

	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		logger.Warning("[MQTT] connection lost: %v", err)
		s.setConnected(false)
	})
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		logger.Info("[MQTT] connected to %s", s.Config.MQTTBrokerURL)
		s.setConnected(true)
	})

	s.Client = mqtt.NewClient(opts)
}

// Connect 连接到MQTT服务器，失败时不重试，由客户端自动重连接管
func (s *MQTTNotifyService) Connect() error {
	token := s.Client.Connect()
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("mqtt connect to %s timed out", s.Config.MQTTBrokerURL)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect to %s: %w", s.Config.MQTTBrokerURL, err)
	}
	s.setConnected(true)
	return nil
}

// Disconnect 断开与MQTT服务器的连接
func (s *MQTTNotifyService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
}

// Publish 发布楼宇事件到 <prefix>/buildings/<id>/events
func (s *MQTTNotifyService) Publish(ctx context.Context, buildingID uint, eventType string, data interface{}) {
	if !s.connected() {
		logger.L().Warn("mqtt not connected, dropping event",
			zap.String("event", eventType), zap.Uint("building_id", buildingID))
		return
	}

	payload, err := json.Marshal(BuildingEvent{
		Type:       eventType,
		BuildingID: buildingID,
		Timestamp:  time.Now().UnixMilli(),
		Data:       data,
	})
	if err != nil {
		logger.L().Error("marshal building event", zap.String("event", eventType), zap.Error(err))
		return
	}

	topic := EventTopic(s.Config.MQTTTopicPrefix, buildingID)
	token := s.Client.Publish(topic, byte(s.Config.MQTTQoS), false, payload)

	timeout := s.publishTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if !token.WaitTimeout(timeout) {
		logger.L().Warn("mqtt publish timed out", zap.String("topic", topic), zap.String("event", eventType))
		return
	}
	if err := token.Error(); err != nil {
		logger.L().Warn("mqtt publish failed", zap.String("topic", topic), zap.Error(err))
	}
}

func (s *MQTTNotifyService) connected() bool {
	s.connectedMutex.RLock()
	defer s.connectedMutex.RUnlock()
	return s.isConnected && s.Client.IsConnected()
}

func (s *MQTTNotifyService) setConnected(v bool) {
	s.connectedMutex.Lock()
	s.isConnected = v
	s.connectedMutex.Unlock()
}

// EventTopic 楼宇事件主题
func EventTopic(prefix string, buildingID uint) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = "flatmoney"
	}
	return fmt.Sprintf("%s/buildings/%d/events", prefix, buildingID)
}

// NoopNotifyService 未配置 MQTT 时使用
type NoopNotifyService struct{}

func (NoopNotifyService) Connect() error { return nil }

func (NoopNotifyService) Publish(context.Context, uint, string, interface{}) {}

func (NoopNotifyService) Disconnect() {}

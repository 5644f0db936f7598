// Package kafka 提供了与 Kafka 消息队列交互的功能。
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"entraide-go/internal/config"
	"entraide-go/pkg/events"
	"entraide-go/pkg/log"

	"github.com/segmentio/kafka-go"
)

// EventProcessor 定义了能够处理活动事件的组件接口。
// 它将 Kafka 消费者与具体的聚合实现解耦。
type EventProcessor interface {
	Process(ctx context.Context, event events.ActivityEvent) error
}

var producer *kafka.Writer

// InitProducer 初始化 Kafka 生产者。
func InitProducer(cfg config.KafkaConfig) {
	producer = &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Info("Kafka 生产者初始化成功")
}

// PublishActivity 发送一条活动事件到 Kafka。
// 事件发布失败只记录日志，不影响主业务流程。
func PublishActivity(event events.ActivityEvent) {
	if producer == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	eventBytes, err := json.Marshal(event)
	if err != nil {
		log.Errorf("无法序列化活动事件: %v", err)
		return
	}

	err = producer.WriteMessages(context.Background(),
		kafka.Message{
			Value: eventBytes,
		},
	)
	if err != nil {
		log.Errorf("发送活动事件失败: type=%s, error: %v", event.Type, err)
	}
}

// StartConsumer 启动一个 Kafka 消费者来聚合活动事件。
func StartConsumer(cfg config.KafkaConfig, processor EventProcessor) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{cfg.Brokers},
		Topic:    cfg.Topic,
		GroupID:  "entraide-go-consumer",
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})

	log.Infof("Kafka 消费者已启动，正在监听主题 '%s'", cfg.Topic)

	for {
		m, err := r.FetchMessage(context.Background())
		if err != nil {
			log.Error("从 Kafka 读取消息失败", err)
			break // 退出循环，可能需要重启策略
		}

		var event events.ActivityEvent
		if err := json.Unmarshal(m.Value, &event); err != nil {
			log.Errorf("无法解析 Kafka 消息: %v, value: %s", err, string(m.Value))
			// 消息格式错误，直接提交，避免阻塞队列
			if err := r.CommitMessages(context.Background(), m); err != nil {
				log.Errorf("提交错误消息失败: %v", err)
			}
			continue
		}

		if err := processor.Process(context.Background(), event); err != nil {
			// 统计计数器属于尽力而为的数据，失败时提交 offset 放弃该条
			log.Errorf("处理活动事件失败: type=%s, error: %v", event.Type, err)
		}
		if err := r.CommitMessages(context.Background(), m); err != nil {
			log.Errorf("提交 Kafka 消息 offset 失败: %v", err)
		}
	}

	if err := r.Close(); err != nil {
		log.Fatalf("关闭 Kafka 消费者失败: %v", err)
	}
}

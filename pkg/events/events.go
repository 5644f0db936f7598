// Package events 定义了通过 Kafka 传递的业务活动事件。
package events

import "time"

// 活动事件类型常量。
const (
	TypeUserRegistered      = "user_registered"
	TypeQuestionAsked       = "question_asked"
	TypeMeetSessionEnded    = "meet_session_ended"
	TypeConversationCleared = "conversation_cleared"
)

// ActivityEvent 代表一条异步上报的业务活动记录。
// 事件由各业务服务发布，由后台消费者聚合为按天统计的计数器。
type ActivityEvent struct {
	Type      string    `json:"type"`
	UserID    *uint     `json:"userId,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

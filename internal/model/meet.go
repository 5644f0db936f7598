// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

// 会面会话状态常量。
const (
	MeetSessionActive    = "active"
	MeetSessionCompleted = "completed"
)

// MeetRequest 对应于数据库中的 'meet_requests' 表（求助方发布的需求）。
type MeetRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"type:varchar(100)" json:"category"`
	Status      string    `gorm:"type:varchar(20);not null;default:open" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (MeetRequest) TableName() string {
	return "meet_requests"
}

// MeetOffer 对应于数据库中的 'meet_offers' 表（帮助方发布的服务）。
type MeetOffer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"type:varchar(100)" json:"category"`
	Status      string    `gorm:"type:varchar(20);not null;default:open" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (MeetOffer) TableName() string {
	return "meet_offers"
}

// MeetSession 对应于数据库中的 'meet_sessions' 表。
// 它由一条匹配成功的 request/offer 派生，记录求助方（demandeur）
// 与帮助方（offreur）之间的一次实时会面。
type MeetSession struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	DemandeurID uint       `gorm:"index;not null" json:"demandeurId"`
	OffreurID   uint       `gorm:"index;not null" json:"offreurId"`
	RequestID   uint       `gorm:"not null" json:"requestId"`
	OfferID     uint       `gorm:"not null" json:"offerId"`
	Status      string     `gorm:"type:varchar(20);not null;default:active" json:"status"`
	StartedAt   time.Time  `gorm:"autoCreateTime" json:"startedAt"`
	EndedAt     *time.Time `gorm:"default:null" json:"endedAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (MeetSession) TableName() string {
	return "meet_sessions"
}

// MeetRequestSummary 是关联查询时返回的需求摘要。
type MeetRequestSummary struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// MeetOfferSummary 是关联查询时返回的服务摘要。
type MeetOfferSummary struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// Summary 将需求记录压缩为摘要。
func (r *MeetRequest) Summary() *MeetRequestSummary {
	if r == nil {
		return nil
	}
	return &MeetRequestSummary{ID: r.ID, Title: r.Title, Category: r.Category}
}

// Summary 将服务记录压缩为摘要。
func (o *MeetOffer) Summary() *MeetOfferSummary {
	if o == nil {
		return nil
	}
	return &MeetOfferSummary{ID: o.ID, Title: o.Title, Category: o.Category}
}

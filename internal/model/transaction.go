// Package model 定义了与数据库表对应的 Go 结构体。
package model

import "time"

// Transaction 对应于数据库中的 'transactions' 表。
// 该表仅作为统计查询的读模型，本服务不负责交易的写入流程。
type Transaction struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Status           string    `gorm:"type:varchar(20);index;not null" json:"status"`
	TotalAmount      float64   `gorm:"not null" json:"totalAmount"`
	CommissionAmount float64   `gorm:"not null" json:"commissionAmount"`
	ProviderAmount   float64   `gorm:"not null" json:"providerAmount"`
	CommissionRate   float64   `gorm:"not null" json:"commissionRate"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionStats 是针对已完成交易的聚合统计结果。
type TransactionStats struct {
	Count                int64   `json:"count"`
	TotalAmount          float64 `json:"totalAmount"`
	TotalCommission      float64 `json:"totalCommission"`
	TotalProviderAmount  float64 `json:"totalProviderAmount"`
	AverageCommissionRate float64 `json:"averageCommissionRate"`
}

// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"entraide-go/internal/model"

	"gorm.io/gorm"
)

// TransactionRepository 接口定义了交易统计的只读查询。
type TransactionRepository interface {
	// GetStats 聚合所有已完成交易的金额与佣金统计。
	GetStats() (*model.TransactionStats, error)
}

// transactionRepository 是 TransactionRepository 接口的 GORM 实现。
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository 创建一个新的 TransactionRepository 实例。
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// GetStats 以单条聚合查询计算统计结果，空表时各项为零值。
func (r *transactionRepository) GetStats() (*model.TransactionStats, error) {
	var stats model.TransactionStats
	err := r.db.Model(&model.Transaction{}).
		Where("status = ?", "completed").
		Select(
			"COUNT(*) AS count, " +
				"COALESCE(SUM(total_amount), 0) AS total_amount, " +
				"COALESCE(SUM(commission_amount), 0) AS total_commission, " +
				"COALESCE(SUM(provider_amount), 0) AS total_provider_amount, " +
				"COALESCE(AVG(commission_rate), 0) AS average_commission_rate",
		).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

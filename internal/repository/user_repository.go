// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"entraide-go/internal/model"

	"gorm.io/gorm"
)

// UserRepository 接口定义了用户数据的持久化操作。
// 配额相关的三个方法都以单条 SQL 或事务执行，保证并发下计数器不会竞争。
type UserRepository interface {
	Create(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByID(userID uint) (*model.User, error)
	Update(user *model.User) error
	FindWithPagination(offset, limit int) ([]model.User, int64, error)

	// IncrementQuestions 无条件将提问计数 +1，返回更新后的用户记录。
	IncrementQuestions(userID uint) (*model.User, error)
	// ConsumeQuestion 原子地执行"检查并递增"：仅当 questions_asked <
	// questions_limit 时 +1。返回是否成功消费了一次提问额度。
	ConsumeQuestion(userID uint) (bool, error)
	// ResetQuestions 将提问计数归零。
	ResetQuestions(userID uint) error
}

// userRepository 是 UserRepository 接口的 GORM 实现。
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建一个新的 UserRepository 实例。
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 在数据库中创建一个新的用户记录。
func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// FindByEmail 根据邮箱从数据库中查找一个用户。
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID 根据用户 ID 从数据库中查找一个用户。
func (r *userRepository) FindByID(userID uint) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update 更新数据库中一个已存在的用户记录。
func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

// FindWithPagination 从数据库中分页检索用户记录。
// 它返回用户列表、总记录数和可能发生的错误。
func (r *userRepository) FindWithPagination(offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := r.db.Model(&model.User{})

	// 首先计算总记录数
	err := db.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	// 然后根据偏移量和限制获取当前页的数据
	err = db.Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// IncrementQuestions 以单条 UPDATE 执行计数递增。
// 受影响行数为 0 说明用户不存在（+1 必然改变行内容）。
func (r *userRepository) IncrementQuestions(userID uint) (*model.User, error) {
	result := r.db.Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("questions_asked", gorm.Expr("questions_asked + 1"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(userID)
}

// ConsumeQuestion 在 WHERE 条件中携带配额上限检查，
// 使"检查并递增"在数据库层面成为一个原子操作。
func (r *userRepository) ConsumeQuestion(userID uint) (bool, error) {
	result := r.db.Model(&model.User{}).
		Where("id = ? AND questions_asked < questions_limit", userID).
		UpdateColumn("questions_asked", gorm.Expr("questions_asked + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ResetQuestions 将提问计数归零。调用方负责先确认用户存在。
func (r *userRepository) ResetQuestions(userID uint) error {
	return r.db.Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("questions_asked", 0).Error
}

package models

import "time"

// User represents users table (caretakers and operators)
type User struct {
	UserID    uint      `gorm:"primaryKey;column:user_id" json:"user_id"`
	Username  string    `gorm:"type:varchar(50);not null;unique" json:"username"`
	FullName  string    `gorm:"type:varchar(100);not null" json:"full_name"`
	Role      string    `gorm:"type:varchar(20);not null;default:'caretaker'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

package models

type User struct {
	ID       string `gorm:"column:id;primaryKey" json:"id"`
	Username string `gorm:"column:username;uniqueIndex;not null" json:"username"`
	Password string `gorm:"column:password;not null" json:"-"`
}

func (User) TableName() string { return "users" }

package model

type User struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Email         string `gorm:"size:255" json:"email"`
	AccountNumber string `gorm:"column:accountnumber;size:20" json:"accountNumber"`
}

func (User) TableName() string {
	return "users"
}

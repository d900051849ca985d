package models

import "time"

type Passenger struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	FirstName      string    `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName       string    `gorm:"type:varchar(50);not null" json:"last_name"`
	Email          string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	PassportNumber string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"passport_number"`
	Phone          string    `gorm:"type:varchar(20)" json:"phone"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (p *Passenger) FullName() string {
	return p.FirstName + " " + p.LastName
}

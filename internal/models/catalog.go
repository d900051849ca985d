package models

import "time"

type PersonnelRole string

const (
	RolePilot      PersonnelRole = "PILOT"
	RoleCabinCrew  PersonnelRole = "CREW"
	RoleOperations PersonnelRole = "OPS"
)

func (r PersonnelRole) Valid() bool {
	switch r {
	case RolePilot, RoleCabinCrew, RoleOperations:
		return true
	}
	return false
}

type Airport struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(3);uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	City      string    `gorm:"type:varchar(100);not null" json:"city"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Aircraft struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	TailNumber       string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"tail_number"`
	Model            string    `gorm:"type:varchar(50);not null" json:"model"`
	CapacityEconomy  int       `gorm:"not null;default:180" json:"capacity_economy"`
	CapacityBusiness int       `gorm:"not null;default:20" json:"capacity_business"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Aircraft) TableName() string { return "aircraft" }

type Personnel struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	FirstName string        `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName  string        `gorm:"type:varchar(50);not null" json:"last_name"`
	Role      PersonnelRole `gorm:"type:varchar(10);not null" json:"role"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (Personnel) TableName() string { return "personnel" }

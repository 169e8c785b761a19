package models

import "time"

// User e a conta administrativa do estudio. Criada via seed no startup;
// nao existe cadastro aberto.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nome      string    `gorm:"column:nome;type:varchar(255);not null" json:"nome"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Senha     string    `gorm:"column:senha;type:varchar(255);not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null;default:'admin'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"github.com/uptrace/bun"

	"recipebox/recipebox/allergen"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64         `bun:"id,pk,autoincrement" json:"id"`
	Email        string        `bun:"email,notnull,unique" json:"email"`
	Name         string        `bun:"name,notnull" json:"name"`
	PasswordHash string        `bun:"password_hash,notnull" json:"-"`
	Allergies    allergen.List `bun:"allergies,type:jsonb" json:"allergies"`
	CreatedAt    time.Time     `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time     `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

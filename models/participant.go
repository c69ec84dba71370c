package models

import "github.com/uptrace/bun"

// Participant is a pool member. Password holds a bcrypt hash and may be empty
// for members imported without a login.
type Participant struct {
	bun.BaseModel `bun:"table:participants,alias:p"`

	ID       string `bun:"id,pk" json:"id"`
	Name     string `bun:"name,notnull" json:"name"`
	Password string `bun:"password,notnull,default:''" json:"-"`
	Admin    bool   `bun:"admin,notnull,default:false" json:"admin"`
}

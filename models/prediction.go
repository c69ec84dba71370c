package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Prediction is a participant's scoreline for a match. A participant has at
// most one prediction per match and it is never updated.
type Prediction struct {
	bun.BaseModel `bun:"table:predictions,alias:pr"`

	ID            int       `bun:"id,pk,autoincrement" json:"id"`
	ParticipantID string    `bun:"participant_id,notnull" json:"participantID"`
	MatchID       string    `bun:"match_id,notnull" json:"matchID"`
	Home          int       `bun:"home,notnull" json:"home"`
	Away          int       `bun:"away,notnull" json:"away"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`

	Participant *Participant `bun:"rel:belongs-to,join:participant_id=id" json:"-"`
	Match       *Match       `bun:"rel:belongs-to,join:match_id=match_id" json:"-"`
}

package model

import "time"

// QuarantinePair records two items a user confirmed as NOT duplicates of each
// other. The pair is stored normalized (ItemA < ItemB) so lookups are
// symmetric. Pairs are soft-deactivated rather than deleted and can be
// reactivated later.
type QuarantinePair struct {
	UUID          string     `json:"uuid"`
	OwnerID       string     `json:"owner_id"`
	ItemA         string     `json:"item_a_uuid"`
	ItemB         string     `json:"item_b_uuid"`
	CreatedAt     time.Time  `json:"created_at"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`
}

func (q QuarantinePair) Active() bool {
	return q.DeactivatedAt == nil
}

package domain

import "time"

// Like marks an artist as a favorite of its creator. CreatorID is set at
// creation and never reassigned. A creator holds at most one like per Src.
type Like struct {
	ID        string
	Src       string
	Name      string
	CreatorID string
	CreatedAt time.Time
}

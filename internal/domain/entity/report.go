package entity

import "time"

// Report is a customer-filed complaint about another user, consumed by
// supervisor moderation workflows.
type Report struct {
	ID        string
	Reporter  ProfileSnapshot // Snapshot of the reporting user.
	Reported  ProfileSnapshot // Snapshot of the reported user, including Blocked.
	Reason    string
	CreatedAt time.Time
}

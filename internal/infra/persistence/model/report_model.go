package model

// ReportDoc mirrors a reports/{id} record. Both parties are embedded as
// profile snapshots taken when the report was filed.
type ReportDoc struct {
	Reporter  SnapshotDoc `json:"reporter"`
	Reported  SnapshotDoc `json:"reported"`
	Reason    string      `json:"reason"`
	CreatedAt any         `json:"createdAt,omitempty"`
}

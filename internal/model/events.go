package model

// LeadAccepted is published to leads.accepted after a submission passes
// validation and is persisted. Consumers handle archive and notification.
type LeadAccepted struct {
	LeadID    string   `json:"lead_id"`
	Kind      LeadKind `json:"kind"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Payload   []byte   `json:"payload"`
	Timestamp string   `json:"timestamp"`
}

// CatalogAccepted is published to catalog.accepted for every listing the
// sync worker accepts. Projectors consume it and update the Redis read
// models (index, shard, delta).
type CatalogAccepted struct {
	Kind      Kind   `json:"kind"`
	ListingID string `json:"listing_id"`
	Category  string `json:"category"`
	Timestamp string `json:"timestamp"`
}

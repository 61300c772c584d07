package socket

// Broadcaster provides high-level methods for pushing events to the owning
// user's connected dashboard clients.
type Broadcaster struct {
	hub *Hub
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

// SendLeadCreated notifies the owner that a lead was created
func (b *Broadcaster) SendLeadCreated(userID string, lead map[string]interface{}) {
	b.hub.SendToUser(userID, MessageLeadCreated, lead)
}

// SendLeadUpdated notifies the owner that a lead changed
func (b *Broadcaster) SendLeadUpdated(userID string, lead map[string]interface{}) {
	b.hub.SendToUser(userID, MessageLeadUpdated, lead)
}

// SendLeadDeleted notifies the owner that a lead was removed
func (b *Broadcaster) SendLeadDeleted(userID, leadID string) {
	b.hub.SendToUser(userID, MessageLeadDeleted, map[string]interface{}{
		"leadId": leadID,
	})
}

// SendLeadStatusChanged notifies the owner of a pipeline stage move
func (b *Broadcaster) SendLeadStatusChanged(userID string, lead map[string]interface{}, oldStatus, newStatus string) {
	b.hub.SendToUser(userID, MessageLeadStatusChanged, map[string]interface{}{
		"lead":      lead,
		"oldStatus": oldStatus,
		"newStatus": newStatus,
	})
}

// SendInteractionAdded notifies the owner of a new timeline entry
func (b *Broadcaster) SendInteractionAdded(userID string, interaction map[string]interface{}) {
	b.hub.SendToUser(userID, MessageInteractionAdded, interaction)
}

// SendImportCompleted pushes a finished import summary to the importing user
func (b *Broadcaster) SendImportCompleted(userID string, total, imported, skipped, failed int) {
	b.hub.SendToUser(userID, MessageImportCompleted, map[string]interface{}{
		"total":    total,
		"imported": imported,
		"skipped":  skipped,
		"failed":   failed,
	})
}

package types

// Lead status values (pipeline stages)
const (
	StatusNew         = "new"
	StatusContacted   = "contacted"
	StatusQualified   = "qualified"
	StatusProposal    = "proposal"
	StatusNegotiation = "negotiation"
	StatusWon         = "won"
	StatusLost        = "lost"
)

// Lead priority values
const (
	PriorityHigh   = "high"
	PriorityNormal = "normal"
	PriorityLow    = "low"
)

// Interaction type values
const (
	InteractionCall         = "call"
	InteractionEmail        = "email"
	InteractionMeeting      = "meeting"
	InteractionNote         = "note"
	InteractionStatusChange = "status_change"
)

// Valid values for validation
var ValidLeadStatuses = []string{
	StatusNew, StatusContacted, StatusQualified,
	StatusProposal, StatusNegotiation, StatusWon, StatusLost,
}

var ValidPriorities = []string{
	PriorityHigh, PriorityNormal, PriorityLow,
}

var ValidInteractionTypes = []string{
	InteractionCall, InteractionEmail, InteractionMeeting,
	InteractionNote, InteractionStatusChange,
}

// Helper functions for validation
func IsValidLeadStatus(status string) bool {
	for _, s := range ValidLeadStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidPriority(priority string) bool {
	for _, p := range ValidPriorities {
		if p == priority {
			return true
		}
	}
	return false
}

func IsValidInteractionType(interactionType string) bool {
	for _, t := range ValidInteractionTypes {
		if t == interactionType {
			return true
		}
	}
	return false
}

package email

const (
	subjectNewOffer           = "You have a new offer on your inspection request"
	subjectRequestSubmitted   = "New inspection request for your property"
	subjectRequestRejected    = "Your inspection request was not approved"
	subjectLOIRejected        = "Your letter of intention was not approved"
	subjectAgentAssigned      = "You have been assigned to an inspection"
	subjectAgentRemoved       = "You have been removed from an inspection"
	subjectAssignmentRevoked  = "Inspection assignment cancelled"
	subjectParticipantDetails = "Contact details for your inspection"
	subjectInspectionReminder = "Reminder: upcoming property inspection"
)

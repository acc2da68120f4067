package mail

// Message is the provider-facing send request. Optional fields are omitted
// from the serialized form rather than sent as null.
type Message struct {
	From        string   `json:"from,omitempty"`
	To          []string `json:"to"`
	Cc          []string `json:"cc,omitempty"`
	Bcc         []string `json:"bcc,omitempty"`
	Subject     string   `json:"subject"`
	HTML        string   `json:"html,omitempty"`
	Text        string   `json:"text,omitempty"`
	ScheduledAt string   `json:"scheduled_at,omitempty"`
}

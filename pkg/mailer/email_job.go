package mailer

// Template names understood by the email worker.
const (
	TemplateWelcome        = "welcome"
	TemplateAccountDeleted = "account_deleted"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Subject/Text/HTML may be set directly, or a Template plus Data can be
// given and the worker renders it.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

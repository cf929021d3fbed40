package connectors

import "packlist/internal"

// MailConnector pulls supplier messages from one mailbox provider. Both the
// Gmail and IMAP implementations return full raw MIME so attachments survive.
type MailConnector interface {
	FetchInbox(label string, max int) ([]internal.FetchedMailMessage, error)
}

package mailbox

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hrzp/dayforge/internal/model"
	"github.com/hrzp/dayforge/internal/source"
)

// fetchLimit caps how many flagged messages a single fetch pulls.
const fetchLimit = 50

// Adapter implements source.Source for an IMAP mailbox. Flagged
// messages in the inbox are treated as requests from other people:
// the sender becomes the requester and the subject the request text.
type Adapter struct {
	client *IMAPClient
	// uids maps request IDs back to message UIDs for Acknowledge.
	uids map[string]uint32
}

// NewAdapter creates a new mailbox source adapter.
func NewAdapter(
	host, port, username, password string, useTLS bool,
) *Adapter {
	return &Adapter{
		client: NewIMAPClient(host, port, username, password, useTLS),
		uids:   make(map[string]uint32),
	}
}

// Type returns the source kind identifier.
func (a *Adapter) Type() source.Kind {
	return source.KindMailbox
}

// ValidateConnection verifies IMAP credentials by connecting,
// authenticating, and selecting INBOX.
func (a *Adapter) ValidateConnection(
	ctx context.Context,
) (string, error) {
	client, err := a.client.Connect(ctx)
	if err != nil {
		return "", fmt.Errorf("validating mailbox connection: %w", err)
	}
	defer func() { _ = client.Logout().Wait() }()

	if _, err := client.Select("INBOX", nil).Wait(); err != nil {
		return "", fmt.Errorf("selecting INBOX: %w", err)
	}

	return "connected to " + a.client.host, nil
}

// FetchRequests retrieves recent flagged messages and maps them to
// candidate requests. IDs derive from the Message-ID header so the
// same message never produces two requests across fetches.
func (a *Adapter) FetchRequests(
	ctx context.Context,
) ([]model.Request, error) {
	envelopes, err := a.client.FetchFlagged(ctx, fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching mailbox requests: %w", err)
	}

	requests := make([]model.Request, 0, len(envelopes))
	for _, env := range envelopes {
		req := a.envelopeToRequest(env)
		a.uids[req.ID] = env.UID
		requests = append(requests, req)
	}

	return requests, nil
}

// Acknowledge unflags the message behind an ingested request. Unknown
// IDs fall back to parsing a UID out of the identifier.
func (a *Adapter) Acknowledge(
	ctx context.Context, sourceItemID string,
) error {
	uid, ok := a.uids[sourceItemID]
	if !ok {
		parsed, err := parseUID(sourceItemID)
		if err != nil {
			return err
		}
		uid = parsed
	}
	return a.client.Unflag(ctx, uid)
}

// Preview fetches the message body behind a request for display,
// preferring plain text over stripped HTML.
func (a *Adapter) Preview(
	ctx context.Context, sourceItemID string,
) (string, error) {
	uid, ok := a.uids[sourceItemID]
	if !ok {
		parsed, err := parseUID(sourceItemID)
		if err != nil {
			return "", err
		}
		uid = parsed
	}

	msg, err := a.client.FetchMessage(ctx, uid)
	if err != nil {
		return "", fmt.Errorf(
			"fetching preview for %s: %w", sourceItemID, err,
		)
	}

	if msg.TextBody != "" {
		return msg.TextBody, nil
	}
	return stripHTML(msg.HTMLBody), nil
}

// envelopeToRequest converts an Envelope to a model.Request.
func (a *Adapter) envelopeToRequest(env Envelope) model.Request {
	id := "mail-" + sanitizeID(env.MessageID)
	if env.MessageID == "" {
		id = fmt.Sprintf("mail-uid-%d", env.UID)
	}

	person := env.From
	if person == "" {
		person = "unknown sender"
	}

	text := strings.TrimSpace(env.Subject)
	if text == "" {
		text = "(no subject)"
	}

	return model.Request{
		ID:        id,
		Person:    person,
		Text:      text,
		AddedDate: env.Date.Format(model.DateFormat),
	}
}

// parseUID converts a "mail-uid-N" identifier back to a uint32 UID.
func parseUID(sourceItemID string) (uint32, error) {
	raw, ok := strings.CutPrefix(sourceItemID, "mail-uid-")
	if !ok {
		return 0, fmt.Errorf("unknown mailbox item %q", sourceItemID)
	}
	uid, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf(
			"invalid mailbox UID %q: %w", sourceItemID, err,
		)
	}
	return uint32(uid), nil
}

// sanitizeID replaces characters that are not safe for use in a
// request ID.
var idUnsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func sanitizeID(s string) string {
	return idUnsafeChars.ReplaceAllString(s, "_")
}

// htmlTagPattern matches HTML tags for stripping.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTML removes HTML tags and decodes common entities, providing
// a basic plain-text rendering.
func stripHTML(html string) string {
	if html == "" {
		return ""
	}

	result := html
	for _, tag := range []string{
		"<br>", "<br/>", "<br />", "</p>", "</div>", "</li>",
	} {
		result = strings.ReplaceAll(result, tag, "\n")
	}

	result = htmlTagPattern.ReplaceAllString(result, "")

	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
	result = replacer.Replace(result)

	for strings.Contains(result, "\n\n\n") {
		result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	}

	return strings.TrimSpace(result)
}

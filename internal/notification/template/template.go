// Package template renders the portal's transactional emails.
//
// Rendering is deterministic: the same input always produces the same output,
// and no clock or random source is consulted. Values are inserted verbatim;
// callers that accept untrusted HTML must sanitize it before rendering.
package template

import (
	"bytes"
	"embed"
	"strings"
	texttemplate "text/template"

	"github.com/shandysiswandi/yatri/internal/notification/entity"
)

const (
	// WelcomeSubject is the subject of every welcome email.
	WelcomeSubject = "🎉 Welcome to YATRI Training Portal!"
	// BroadcastSubjectPrefix is prepended to the subject of every broadcast.
	BroadcastSubjectPrefix = "📢 "
	// TestSubject is the subject of the relay test email.
	TestSubject = "🧪 YATRI Portal Email Test"
	// DefaultSenderName signs broadcasts that do not name a sender.
	DefaultSenderName = "YATRI Management"
)

//go:embed templates/*.html
var files embed.FS

var templates = texttemplate.Must(texttemplate.New("").Option("missingkey=zero").ParseFS(files, "templates/*.html"))

// WelcomeData is the input of the welcome email.
type WelcomeData struct {
	StaffName         string
	StaffID           string
	TemporaryPassword string
}

// BroadcastData is the input of the broadcast email.
type BroadcastData struct {
	Subject    string
	Message    string
	SenderName string
}

// Welcome renders the email sent to a newly created staff member.
func Welcome(data WelcomeData) (entity.MessageContent, error) {
	body, err := render("welcome", data)
	if err != nil {
		return entity.MessageContent{}, err
	}

	return entity.MessageContent{
		Kind:     entity.KindWelcome,
		Subject:  WelcomeSubject,
		HTMLBody: body,
	}, nil
}

// Broadcast renders an announcement sent to every staff member.
func Broadcast(data BroadcastData) (entity.MessageContent, error) {
	data.Subject = strings.TrimSpace(data.Subject)
	if strings.TrimSpace(data.SenderName) == "" {
		data.SenderName = DefaultSenderName
	}

	body, err := render("broadcast", data)
	if err != nil {
		return entity.MessageContent{}, err
	}

	return entity.MessageContent{
		Kind:     entity.KindBroadcast,
		Subject:  BroadcastSubjectPrefix + data.Subject,
		HTMLBody: body,
	}, nil
}

// Test renders the email used to check the relay configuration.
func Test() (entity.MessageContent, error) {
	body, err := render("test", nil)
	if err != nil {
		return entity.MessageContent{}, err
	}

	return entity.MessageContent{
		Kind:     entity.KindTest,
		Subject:  TestSubject,
		HTMLBody: body,
	}, nil
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

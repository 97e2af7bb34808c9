package email

import (
	"context"
	"errors"
	netmail "net/mail"

	"github.com/shandysiswandi/yatri/internal/notification/entity"
	"github.com/shandysiswandi/yatri/internal/pkg/instrument"
	"github.com/shandysiswandi/yatri/internal/pkg/mail"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type Email struct {
	mail mail.Mail
	ins  instrument.Instrumentation
}

func New(m mail.Mail, ins instrument.Instrumentation) *Email {
	return &Email{mail: m, ins: ins}
}

func (e *Email) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return e.ins.Tracer("notification.outbound.email").Start(ctx, name)
}

func (e *Email) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, mail.ErrTransportUnavailable) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (e *Email) Available() bool {
	return e.mail.Available()
}

func (e *Email) Send(ctx context.Context, to entity.Recipient, content entity.MessageContent) (id string, err error) {
	ctx, span := e.startSpan(ctx, "Send")
	span.SetAttributes(attribute.String("mail.kind", content.Kind.String()))
	defer func() { e.endSpan(span, err) }()

	addr := to.Address
	if to.DisplayName != "" {
		addr = (&netmail.Address{Name: to.DisplayName, Address: to.Address}).String()
	}

	id, err = e.mail.Send(ctx, mail.Message{
		To:       []string{addr},
		Subject:  content.Subject,
		HTMLBody: content.HTMLBody,
	})
	return id, err
}

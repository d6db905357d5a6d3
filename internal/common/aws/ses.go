// internal/common/aws/ses.go
package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESAPI is the subset of the SES client the mailer needs.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// LoadConfig resolves AWS credentials for region using the default provider chain.
func LoadConfig(ctx context.Context, region string) (awssdk.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return awssdk.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

// Mailer sends plain text and HTML email through SES.
type Mailer struct {
	client SESAPI
	from   string
}

func NewMailer(client SESAPI, from string) *Mailer {
	return &Mailer{client: client, from: from}
}

// NewSESMailer builds a Mailer on a real SES client.
func NewSESMailer(cfg awssdk.Config, from string) *Mailer {
	return NewMailer(ses.NewFromConfig(cfg), from)
}

// Send delivers one message and returns the SES message id.
func (m *Mailer) Send(ctx context.Context, to, subject, textBody, htmlBody string) (string, error) {
	body := &types.Body{
		Text: &types.Content{Data: awssdk.String(textBody), Charset: awssdk.String("UTF-8")},
	}
	if htmlBody != "" {
		body.Html = &types.Content{Data: awssdk.String(htmlBody), Charset: awssdk.String("UTF-8")}
	}

	out, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      awssdk.String(m.from),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: awssdk.String(subject), Charset: awssdk.String("UTF-8")},
			Body:    body,
		},
	})
	if err != nil {
		return "", err
	}
	return awssdk.ToString(out.MessageId), nil
}

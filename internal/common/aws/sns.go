// internal/common/aws/sns.go
package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSAPI is the subset of the SNS client the SMS sender needs.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SMSSender publishes transactional text messages directly to phone numbers.
type SMSSender struct {
	client   SNSAPI
	senderID string
}

func NewSMSSender(client SNSAPI, senderID string) *SMSSender {
	return &SMSSender{client: client, senderID: senderID}
}

// NewSNSSender builds an SMSSender on a real SNS client.
func NewSNSSender(cfg awssdk.Config, senderID string) *SMSSender {
	return NewSMSSender(sns.NewFromConfig(cfg), senderID)
}

// Send publishes message to an E.164 phone number and returns the SNS message id.
func (s *SMSSender) Send(ctx context.Context, phone, message string) (string, error) {
	attrs := map[string]types.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {DataType: awssdk.String("String"), StringValue: awssdk.String("Transactional")},
	}
	if s.senderID != "" {
		attrs["AWS.SNS.SMS.SenderID"] = types.MessageAttributeValue{DataType: awssdk.String("String"), StringValue: awssdk.String(s.senderID)}
	}

	out, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber:       awssdk.String(phone),
		Message:           awssdk.String(message),
		MessageAttributes: attrs,
	})
	if err != nil {
		return "", err
	}
	return awssdk.ToString(out.MessageId), nil
}

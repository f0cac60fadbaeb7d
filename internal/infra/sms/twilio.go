package sms

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
	"golang.org/x/time/rate"

	"grocery-api/internal/pkg/config"
	"grocery-api/internal/pkg/errs"
)

// TwilioSender delivers verification codes over SMS. A process-wide rate
// limiter paces outbound sends so a burst of signups cannot trip the
// provider's throughput cap.
type TwilioSender struct {
	client  *twilio.RestClient
	from    string
	limiter *rate.Limiter
}

func NewTwilioSender(cfg config.Config) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.SMS.AccountSID,
		Password: cfg.SMS.AuthToken,
	})
	return &TwilioSender{
		client:  client,
		from:    cfg.SMS.FromNumber,
		limiter: rate.NewLimiter(rate.Limit(cfg.SMS.SendsPerSecond), 1),
	}
}

func (s *TwilioSender) SendCode(ctx context.Context, phone, code string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return errs.Wrap(err, "sms send cancelled while waiting for rate limiter")
	}

	body := fmt.Sprintf("Your verification code is %s. It expires in 30 minutes.", code)

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return errs.Wrap(err, "twilio message create failed")
	}
	return nil
}

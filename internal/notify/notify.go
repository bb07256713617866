// Package notify formats and hands off the scheduling outcome messages to a
// delivery capability. It is a stateless formatting and dispatch utility:
// the decision of what to send was already made upstream.
package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ikodinhi/interview-scheduler/internal/schedule"
)

// Sender is the external message delivery capability. A failed delivery must
// return a descriptive error, never silently drop the message.
type Sender interface {
	Deliver(ctx context.Context, to, subject, body string) error
}

// Delivery reports the result of one delivery request. Failures are carried
// as values so a broken recruiter notification never aborts the candidate's
// response.
type Delivery struct {
	Recipient string
	Subject   string
	Err       error
}

// Failed reports whether the delivery failed.
func (d Delivery) Failed() bool {
	return d.Err != nil
}

// Dispatcher fans out notification messages for a scheduling outcome.
type Dispatcher struct {
	sender Sender
	logger *zap.Logger
}

// NewDispatcher creates a dispatcher over the given delivery capability.
func NewDispatcher(sender Sender, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{sender: sender, logger: logger}
}

// Dispatch requests delivery of the outcome's messages: two for a scheduled
// interview (candidate confirmation and recruiter notification), one for no
// availability. Every delivery is attempted; failures are reported in the
// returned slice.
func (d *Dispatcher) Dispatch(ctx context.Context, outcome schedule.Outcome) []Delivery {
	if outcome.Kind == schedule.KindScheduled {
		return []Delivery{
			d.deliver(ctx, outcome.Candidate, candidateConfirmed(outcome)),
			d.deliver(ctx, outcome.Recruiter, recruiterNotified(outcome)),
		}
	}

	return []Delivery{
		d.deliver(ctx, outcome.Candidate, noAvailability()),
	}
}

type message struct {
	subject string
	body    string
}

func candidateConfirmed(outcome schedule.Outcome) message {
	return message{
		subject: "Interview Confirmation",
		body: fmt.Sprintf("Dear Candidate, your interview is scheduled on %s at %s.",
			outcome.Availability.DateString(), outcome.Availability.Start),
	}
}

func recruiterNotified(outcome schedule.Outcome) message {
	return message{
		subject: "New Interview Scheduled",
		body: fmt.Sprintf("Dear Recruiter, you have an interview scheduled with candidate %s on %s at %s.",
			outcome.Candidate, outcome.Availability.DateString(), outcome.Availability.Start),
	}
}

func noAvailability() message {
	return message{
		subject: "No Availability for Your Chosen Slot",
		body:    "Dear Candidate, unfortunately, no recruiters are available for the given slot. Please select another one.",
	}
}

func (d *Dispatcher) deliver(ctx context.Context, to string, msg message) Delivery {
	err := d.sender.Deliver(ctx, to, msg.subject, msg.body)
	if err != nil {
		d.logger.Warn("notification delivery failed",
			zap.String("recipient", to),
			zap.String("subject", msg.subject),
			zap.Error(err),
		)
	} else {
		d.logger.Info("notification delivered",
			zap.String("recipient", to),
			zap.String("subject", msg.subject),
		)
	}

	return Delivery{Recipient: to, Subject: msg.subject, Err: err}
}

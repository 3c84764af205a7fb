package notify

import (
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/models"
	"storefront/internal/util"
)

// Notifier fans submissions out to the email and SMS collaborators. Every
// dispatch is best-effort: a failure is logged and counted, never returned to
// the HTTP caller.
type Notifier struct {
	Email        EmailSender
	SMS          SMSSender
	InternalTo   string
	StaffNumbers []string
}

func NewNotifier(email EmailSender, sms SMSSender, cfg *config.Config) *Notifier {
	return &Notifier{
		Email:        email,
		SMS:          sms,
		InternalTo:   cfg.Email.InternalTo,
		StaffNumbers: cfg.SMS.StaffNumbers,
	}
}

// ContactSubmitted sends the internal notification, the auto-reply and the
// staff SMS fan-out for a contact submission. The returned flags report what
// actually succeeded.
func (n *Notifier) ContactSubmitted(sub *models.Contact) (emailSent, smsSent bool) {
	logger := util.GetLogger()

	subject, body := ContactNotificationEmail(sub)
	if result, err := n.Email.Send(subject, body, n.InternalTo, sub.Email); err != nil {
		util.EmailSendFailures.Inc()
		logger.Warn("contact notification email failed", zap.Error(err))
	} else {
		emailSent = result.Success
	}

	replySubject, replyBody := AutoReplyEmail(sub.Name, sub.InquiryType)
	if _, err := n.Email.Send(replySubject, replyBody, sub.Email, ""); err != nil {
		util.EmailSendFailures.Inc()
		logger.Warn("contact auto-reply failed", zap.Error(err))
	}

	smsSent = n.notifyStaff(ContactSMS(sub))
	return emailSent, smsSent
}

// OrderPlaced sends the customer confirmation and the staff SMS fan-out.
func (n *Notifier) OrderPlaced(order *models.Order) {
	logger := util.GetLogger()

	subject, body := OrderConfirmationEmail(order)
	if _, err := n.Email.Send(subject, body, order.CustomerInfo.Email, ""); err != nil {
		util.EmailSendFailures.Inc()
		logger.Warn("order confirmation email failed",
			zap.String("orderId", order.OrderID), zap.Error(err))
	}

	n.notifyStaff(OrderSMS(order))
}

// OrderStatusChanged emails the customer about a lifecycle change.
func (n *Notifier) OrderStatusChanged(order *models.Order) {
	subject, body := OrderStatusEmail(order)
	if _, err := n.Email.Send(subject, body, order.CustomerInfo.Email, ""); err != nil {
		util.EmailSendFailures.Inc()
		util.GetLogger().Warn("order status email failed",
			zap.String("orderId", order.OrderID), zap.Error(err))
	}
}

// notifyStaff loops the fixed staff list sequentially; each send is caught on
// its own so one hung provider call cannot abort the rest.
func (n *Notifier) notifyStaff(body string) bool {
	logger := util.GetLogger()
	anySent := false

	for _, number := range n.StaffNumbers {
		result, err := n.SMS.Send(body, number)
		if err != nil {
			util.SMSSendFailures.Inc()
			logger.Warn("staff sms failed", zap.String("to", number), zap.Error(err))
			continue
		}
		if result.Success {
			anySent = true
			logger.Info("staff sms sent", zap.String("to", number), zap.String("sid", result.SID))
		}
	}
	return anySent
}

package notify

import (
	"fmt"
	"time"

	"github.com/guonaihong/gout"
	"github.com/panjf2000/ants/v2"
	"github.com/primehomes/primehomes/config"
	"github.com/primehomes/primehomes/internal/domain"
	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Service fans out operator notifications for new inquiries. Sends
// are fire-and-forget on a bounded pool; failures are logged and
// never retried.
type Service struct {
	cfg  config.NotifyConfig
	pool *ants.Pool
}

func NewService(cfg config.NotifyConfig) (*Service, error) {
	pool, err := ants.NewPool(4, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	return &Service{cfg: cfg, pool: pool}, nil
}

// InquiryCreated dispatches mail and webhook notifications for a
// freshly captured inquiry.
func (s *Service) InquiryCreated(q domain.Inquiry) {
	if s.cfg.MailEnable && s.cfg.MailTo != "" {
		task := q
		if err := s.pool.Submit(func() { s.sendMail(task) }); err != nil {
			zap.L().Warn("notify pool rejected mail task", zap.Error(err))
		}
	}
	if s.cfg.WebhookURL != "" {
		task := q
		if err := s.pool.Submit(func() { s.sendWebhook(task) }); err != nil {
			zap.L().Warn("notify pool rejected webhook task", zap.Error(err))
		}
	}
}

func (s *Service) sendMail(q domain.Inquiry) {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SmtpUser)
	m.SetHeader("To", s.cfg.MailTo)
	m.SetHeader("Subject", fmt.Sprintf("New inquiry from %s", q.Name))
	m.SetBody("text/plain", fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\n\n%s\n", q.Name, q.Email, q.Phone, q.Message))

	d := gomail.NewDialer(s.cfg.SmtpHost, s.cfg.SmtpPort, s.cfg.SmtpUser, s.cfg.SmtpPasswd)
	if err := d.DialAndSend(m); err != nil {
		zap.L().Error("inquiry mail notification failed",
			zap.String("email", q.Email), zap.Error(err))
		return
	}
	zap.L().Info("inquiry mail notification sent", zap.Int64("inquiry_id", q.ID))
}

func (s *Service) sendWebhook(q domain.Inquiry) {
	var code int
	err := gout.POST(s.cfg.WebhookURL).
		SetTimeout(10 * time.Second).
		SetJSON(gout.H{
			"event":      "inquiry.created",
			"inquiry_id": fmt.Sprintf("%d", q.ID),
			"name":       q.Name,
			"email":      q.Email,
			"message":    q.Message,
			"created_at": q.CreatedAt.Format(time.RFC3339),
		}).
		Code(&code).
		Do()
	if err != nil || code >= 300 {
		zap.L().Error("inquiry webhook notification failed",
			zap.Int("code", code), zap.Error(err))
		return
	}
	zap.L().Info("inquiry webhook notification sent", zap.Int64("inquiry_id", q.ID))
}

// Release stops the worker pool
func (s *Service) Release() {
	s.pool.Release()
}

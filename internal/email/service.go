package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/rentaltrack/rental-api/internal/model"
)

// Service is the notification transport consumed by the reminder engine.
type Service interface {
	// SendExpirationReminder delivers the horizon-specific reminder: one
	// message to the landlord with the realtor CC'd, and a separate
	// internal copy to the realtor.
	SendExpirationReminder(ctx context.Context, lease *model.LeaseWithRelations, days int) error
	// Verify is the pre-flight reachability check run once before a sweep.
	Verify() error
}

type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	CompanyName string
}

type smtpService struct {
	dialer      *gomail.Dialer
	from        string
	companyName string
}

func NewSMTPService(cfg Config) Service {
	return &smtpService{
		dialer:      gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:        cfg.From,
		companyName: cfg.CompanyName,
	}
}

func (s *smtpService) Verify() error {
	closer, err := s.dialer.Dial()
	if err != nil {
		return fmt.Errorf("smtp connection failed: %w", err)
	}
	return closer.Close()
}

func (s *smtpService) SendExpirationReminder(ctx context.Context, lease *model.LeaseWithRelations, days int) error {
	subject := reminderSubject(days)

	landlordMsg := gomail.NewMessage()
	landlordMsg.SetAddressHeader("From", s.from, s.companyName)
	landlordMsg.SetHeader("To", lease.Landlord.Email)
	landlordMsg.SetHeader("Cc", lease.Realtor.Email)
	landlordMsg.SetHeader("Subject", subject)
	landlordMsg.SetBody("text/html", landlordBody(lease, days, s.companyName))

	internalMsg := gomail.NewMessage()
	internalMsg.SetAddressHeader("From", s.from, s.companyName)
	internalMsg.SetHeader("To", lease.Realtor.Email)
	internalMsg.SetHeader("Subject", "[Internal] "+subject)
	internalMsg.SetBody("text/html", realtorBody(lease, days, s.companyName))

	if err := s.dialer.DialAndSend(landlordMsg, internalMsg); err != nil {
		return fmt.Errorf("failed to send reminder emails for lease %s: %w", lease.ID, err)
	}
	return nil
}

package email

import (
	"fmt"
	"net/smtp"

	"github.com/SvetozarP/finance-tracker/internal/config"
	"github.com/SvetozarP/finance-tracker/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendForecastDigest sends a summary of the user's latest financial forecast
func (s *Sender) SendForecastDigest(to, username string, result *models.ForecastResult) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Your Financial Forecast Digest"

	// Format email body
	body := fmt.Sprintf(
		"Dear %s,\n\n", username,
	)
	body += fmt.Sprintf(
		"Here is your forecast for %s to %s:\n\n"+
			"Projected income:   %.2f\n"+
			"Projected expenses: %.2f\n"+
			"Projected savings:  %.2f\n"+
			"Confidence: %s\n",
		result.ForecastPeriod.StartDate.Format("2006-01-02"),
		result.ForecastPeriod.EndDate.Format("2006-01-02"),
		result.BaseScenario.ProjectedIncome,
		result.BaseScenario.ProjectedExpenses,
		result.BaseScenario.ProjectedSavings,
		result.BaseScenario.Confidence,
	)
	if len(result.RiskFactors) > 0 {
		body += "\nRisk factors:\n"
		for _, risk := range result.RiskFactors {
			body += fmt.Sprintf("- [%s] %s\n", risk.Severity, risk.Message)
		}
	}
	body += "\nBest regards,\nFinance Tracker"
	e.Text = []byte(body)

	// Send email
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	err := e.Send(addr, auth)
	if err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

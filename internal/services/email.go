package services

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/mtl/myhackx-api/internal/config"
	"github.com/mtl/myhackx-api/internal/models"
)

type EmailService struct {
	cfg config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != ""
}

func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to, subject, body)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

func (s *EmailService) SendTeamInvitation(to, teamName, inviterEmail string, event *models.HackathonEvent) error {
	subject := fmt.Sprintf("Team Invitation: %s - %s", teamName, event.Name)
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>You've been invited to join a team!</h2>
			<p><strong>%s</strong> has invited you to join their team <strong>%s</strong> for the event <strong>%s</strong>.</p>
			<h3>Event Details:</h3>
			<ul>
				<li>Date: %s</li>
				<li>Location: %s</li>
			</ul>
			<p>Please log in to the MyHackX app to accept or decline this invitation.</p>
			<p>Good luck!</p>
		</body>
		</html>
	`, inviterEmail, teamName, event.Name, event.StartDate.Format("Jan 2, 2006"), event.Location)

	return s.Send(to, subject, body)
}

func (s *EmailService) SendMemberJoined(leaderEmail, memberEmail, teamName string, event *models.HackathonEvent) error {
	subject := fmt.Sprintf("New Team Member - %s", teamName)
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>New Team Member Joined</h2>
			<p><strong>%s</strong> has joined your team <strong>%s</strong> for the event <strong>%s</strong>.</p>
			<p>Log in to the MyHackX app to view your team details.</p>
		</body>
		</html>
	`, memberEmail, teamName, event.Name)

	return s.Send(leaderEmail, subject, body)
}

func (s *EmailService) SendInvitationDeclined(leaderEmail, memberEmail, teamName string, event *models.HackathonEvent) error {
	subject := fmt.Sprintf("Team Invitation Declined - %s", teamName)
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Team Invitation Declined</h2>
			<p><strong>%s</strong> has declined to join your team <strong>%s</strong> for the event <strong>%s</strong>.</p>
			<p>You can invite other members through the MyHackX app.</p>
		</body>
		</html>
	`, memberEmail, teamName, event.Name)

	return s.Send(leaderEmail, subject, body)
}

func (s *EmailService) SendMemberRemoved(memberEmail, teamName string, event *models.HackathonEvent) error {
	subject := fmt.Sprintf("Team Membership Update - %s", teamName)
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Team Membership Update</h2>
			<p>You have been removed from the team <strong>%s</strong> for the event <strong>%s</strong> by the team leader.</p>
			<p>You can join or create another team through the MyHackX app.</p>
		</body>
		</html>
	`, teamName, event.Name)

	return s.Send(memberEmail, subject, body)
}

func (s *EmailService) SendPasswordReset(to, resetToken string, expiry time.Duration) error {
	subject := "MyHackX Password Reset"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Password Reset</h2>
			<p>A password reset was requested for your MyHackX account.</p>
			<p>Use the following code in the app to set a new password:</p>
			<p><strong>%s</strong></p>
			<p>This code expires in %d minutes. If you did not request a reset, you can ignore this email.</p>
		</body>
		</html>
	`, resetToken, int(expiry.Minutes()))

	return s.Send(to, subject, body)
}

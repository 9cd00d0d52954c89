// Package notifier delivers login codes to users out-of-band.
package notifier

import (
	"context"
	"fmt"
	"net/url"

	"gopkg.in/gomail.v2"

	"github.com/alliterative/accountd/pkg/configpkg"
)

const fromName = "Alliterative AI"

// SMTPSender sends login links over authenticated SMTP.
type SMTPSender struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

// NewSMTPSender returns an SMTPSender configured from the application config.
func NewSMTPSender(config configpkg.Config) *SMTPSender {
	dialer := gomail.NewDialer(config.EmailHost, config.EmailPort, config.EmailUser, config.EmailPass)
	dialer.SSL = config.EmailPort == 465

	return &SMTPSender{
		dialer:  dialer,
		from:    config.EmailUser,
		baseURL: config.BaseURL,
	}
}

// SendLoginCode mails the login link carrying the account id and the
// freshly issued code.
func (s *SMTPSender) SendLoginCode(_ context.Context, email, accountID, code string) error {
	query := url.Values{
		"email": {email},
		"id":    {accountID},
		"code":  {code},
	}
	link := fmt.Sprintf("%s?%s", s.baseURL, query.Encode())

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.from, fromName))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your login link")
	m.SetBody("text/plain", fmt.Sprintf("Copy %s into your browser to login.", link))
	m.AddAlternative("text/html", fmt.Sprintf("<p>Go to <a href=%q>%s</a> to login.</p>", link, link))

	return s.dialer.DialAndSend(m)
}

package booking

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type Mailer interface {
	Send(ctx context.Context, email Email) (string, error)
}

type Service struct {
	mailer Mailer
	from   string
	to     string
	now    func() time.Time
}

// NewService returns a booking service. A nil mailer or empty recipient
// leaves the service unconfigured and every submission fails with
// ErrNotConfigured.
func NewService(mailer Mailer, from, to string) *Service {
	return &Service{
		mailer: mailer,
		from:   from,
		to:     to,
		now:    time.Now,
	}
}

// Submit validates req and relays it to the agency inbox. It returns the id
// assigned by the email provider.
func (s *Service) Submit(ctx context.Context, req Request) (string, error) {
	req.normalize()
	if err := req.Validate(); err != nil {
		return "", err
	}
	if s.mailer == nil || s.to == "" {
		logrus.Error("booking received but the email service is not configured")
		return "", ErrNotConfigured
	}

	html, err := renderEmail(req, s.now())
	if err != nil {
		return "", err
	}

	id, err := s.mailer.Send(ctx, Email{
		From:    s.from,
		To:      []string{s.to},
		Subject: fmt.Sprintf("New Booking: %s - %s", ProjectTypeLabel(req.ProjectType), req.Name),
		HTML:    html,
		ReplyTo: req.Email,
	})
	if err != nil {
		logrus.Errorf("error sending booking from %s: %v", req.Email, err)
		return "", err
	}

	logrus.Infof("booking %s sent for %s", id, req.Email)
	return id, nil
}

var emailTemplate = template.Must(template.New("booking").Parse(`<div style="font-family: 'Segoe UI', Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="font-size: 22px;">New Booking Request</h1>
  <table style="width: 100%; border-collapse: collapse;">
    <tr><td>Name</td><td><strong>{{.Name}}</strong></td></tr>
    <tr><td>Email</td><td><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
    {{- if .Phone}}
    <tr><td>Phone</td><td>{{.Phone}}</td></tr>
    {{- end}}
    {{- if .Company}}
    <tr><td>Company</td><td>{{.Company}}</td></tr>
    {{- end}}
    <tr><td>Project Type</td><td>{{.ProjectType}}</td></tr>
    {{- if .Budget}}
    <tr><td>Budget</td><td>{{.Budget}}</td></tr>
    {{- end}}
  </table>
  <h2 style="font-size: 14px;">Project Details</h2>
  <p>{{range $i, $line := .MessageLines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
  <p style="font-size: 12px; color: #64748b;">JewelIQ &copy; {{.Year}}</p>
</div>`))

func renderEmail(req Request, now time.Time) (string, error) {
	data := struct {
		Request
		MessageLines []string
		Year         int
	}{
		Request:      req,
		MessageLines: strings.Split(req.Message, "\n"),
		Year:         now.Year(),
	}
	data.ProjectType = ProjectTypeLabel(req.ProjectType)

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error rendering booking email: %w", err)
	}
	return buf.String(), nil
}

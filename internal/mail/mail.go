package mail

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"log/slog"

	"github.com/elarafragrance/elara-backend/internal/dependency"
	"github.com/elarafragrance/elara-backend/internal/entity"
	gerr "github.com/elarafragrance/elara-backend/internal/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

type Config struct {
	APIKey         string        `mapstructure:"sendgrid_api_key"`
	FromEmail      string        `mapstructure:"from_email"`
	FromName       string        `mapstructure:"from_email_name"`
	WorkerInterval time.Duration `mapstructure:"worker_interval"`
}

type Mailer struct {
	cli            *sendgrid.Client
	mailRepository dependency.Mail
	from           *sgmail.Email
	c              *Config
	ctx            context.Context
	cancel         context.CancelFunc
	templates      map[templateName]*template.Template
}

type templateName string

func New(c *Config, mailRepository dependency.Mail) (*Mailer, error) {
	if c.APIKey == "" || c.FromEmail == "" || c.FromName == "" {
		return nil, fmt.Errorf("incomplete mail config")
	}
	if c.WorkerInterval <= 0 {
		c.WorkerInterval = time.Minute
	}

	m := &Mailer{
		cli:            sendgrid.NewSendClient(c.APIKey),
		mailRepository: mailRepository,
		from:           sgmail.NewEmail(c.FromName, c.FromEmail),
		c:              c,
		templates:      make(map[templateName]*template.Template),
	}

	if err := m.parseTemplates(); err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}

	return m, nil
}

func (m *Mailer) parseTemplates() error {
	templateDir := "templates"

	dirEntries, err := templatesFS.ReadDir(templateDir)
	if err != nil {
		return fmt.Errorf("error reading template directory: %w", err)
	}

	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}

		templatePath := filepath.Join(templateDir, entry.Name())
		tmpl, err := template.ParseFS(templatesFS, templatePath)
		if err != nil {
			return fmt.Errorf("error parsing template '%s': %w", entry.Name(), err)
		}

		m.templates[templateName(entry.Name())] = tmpl
	}

	return nil
}

// render executes the template into the outbox row shape.
func (m *Mailer) render(to string, tn templateName, data interface{}) (*entity.SendEmailRequest, error) {
	tmpl, ok := m.templates[tn]
	if !ok {
		return nil, fmt.Errorf("template not found: %v", tn)
	}

	subject, ok := templateSubjects[tn]
	if !ok {
		return nil, fmt.Errorf("subject not found for template: %v", tn)
	}

	body := &strings.Builder{}
	if err := tmpl.Execute(body, data); err != nil {
		return nil, fmt.Errorf("error executing template: %w", err)
	}

	return &entity.SendEmailRequest{
		To:      to,
		Subject: subject,
		Html:    body.String(),
	}, nil
}

func (m *Mailer) sendRaw(ctx context.Context, ser *entity.SendEmailRequest) error {
	email := sgmail.NewSingleEmail(m.from, ser.Subject, sgmail.NewEmail("", ser.To), "", ser.Html)

	resp, err := m.cli.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return gerr.ErrMailApiLimitReached
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("error sending email bad status code: %d: %s", resp.StatusCode, resp.Body)
	}

	return nil
}

// sendWithInsert writes the outbox row first and then attempts delivery. A
// failed delivery is left unsent for the worker to retry.
func (m *Mailer) sendWithInsert(ctx context.Context, rep dependency.Repository, ser *entity.SendEmailRequest) error {
	id, err := rep.Mail().AddMail(ctx, ser)
	if err != nil {
		return fmt.Errorf("error inserting email: %w", err)
	}

	if err := m.sendRaw(ctx, ser); err != nil {
		slog.Default().ErrorContext(ctx, "can't send mail",
			slog.String("err", err.Error()),
		)
		return nil
	}

	if err := rep.Mail().UpdateSent(ctx, id); err != nil {
		return fmt.Errorf("error updating email: %w", err)
	}

	return nil
}

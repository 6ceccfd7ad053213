package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
	"strings"

	"go.uber.org/zap"
)

type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	BaseURL  string
	Enabled  bool
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		zap.L().Warn("mail service disabled: missing SMTP environment variables")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		BaseURL:  baseURL,
		Enabled:  enabled,
	}
}

func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
		addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

		mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: World Connect <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

		err := smtp.SendMail(addr, auth, s.From, to, msg)
		if err != nil {
			zap.L().Error("send email", zap.Strings("to", to), zap.Error(err))
		} else {
			zap.L().Info("email sent", zap.Strings("to", to), zap.String("subject", subject))
		}
	}()
}

var (
	welcomeTmpl = template.Must(template.New("welcome").Parse(`
<h2>Welcome to World Connect, {{.Name}}!</h2>
<p>Your account is ready. Jump into the feed and say hello.</p>
<p><a href="{{.BaseURL}}">Open World Connect</a></p>`))

	replyTmpl = template.Must(template.New("reply").Parse(`
<h2>New activity on World Connect</h2>
<p>{{.Reason}}.</p>
<p><a href="{{.Link}}">View the conversation</a></p>`))
)

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func (s *MailService) SendWelcomeEmail(email, name string) {
	body, err := render(welcomeTmpl, map[string]string{
		"Name":    name,
		"BaseURL": s.BaseURL,
	})
	if err != nil {
		zap.L().Error("render welcome email", zap.Error(err))
		return
	}
	s.sendAsync([]string{email}, "Welcome to World Connect", body)
}

func (s *MailService) SendReplyNotification(email, reason, articleAid string) {
	body, err := render(replyTmpl, map[string]string{
		"Reason": reason,
		"Link":   s.BaseURL + "/articles/" + articleAid,
	})
	if err != nil {
		zap.L().Error("render reply notification email", zap.Error(err))
		return
	}
	s.sendAsync([]string{email}, "New reply to your comment", body)
}

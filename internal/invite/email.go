package invite

import (
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"github.com/baatolabs/baatometrics-api/internal/domain/team"
)

// Email is the rendered invitation email content. The service only
// generates it; actual delivery is left to a mail provider.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

type emailData struct {
	InviterName      string
	OrganizationName string
	Role             string
	RoleTitle        string
	RoleDescription  string
	InviteLink       string
}

var htmlTemplate = template.Must(template.New("invite-html").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Team Invitation</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
    <h1 style="color: white; margin: 0; font-size: 28px;">Welcome to {{.OrganizationName}}!</h1>
  </div>

  <div style="background: white; padding: 30px; border: 1px solid #e1e5e9; border-top: none; border-radius: 0 0 10px 10px;">
    <p style="font-size: 16px; margin-bottom: 20px;">Hi there!</p>

    <p style="font-size: 16px; margin-bottom: 20px;">
      <strong>{{.InviterName}}</strong> has invited you to join the {{.OrganizationName}} team as a <strong>{{.Role}}</strong>.
    </p>

    <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; margin: 25px 0;">
      <h3 style="margin: 0 0 10px 0; color: #495057;">Your Role: {{.RoleTitle}}</h3>
      <p style="margin: 0; color: #6c757d; font-size: 14px;">{{.RoleDescription}}</p>
    </div>

    <div style="text-align: center; margin: 30px 0;">
      <a href="{{.InviteLink}}"
         style="display: inline-block; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
                color: white; padding: 14px 30px; text-decoration: none; border-radius: 6px;
                font-weight: 600; font-size: 16px;">
        Accept Invitation
      </a>
    </div>

    <p style="font-size: 14px; color: #6c757d; text-align: center; margin-top: 30px;">
      This invitation will expire in 7 days. If you can't click the button, copy and paste this link:
    </p>
    <p style="font-size: 12px; color: #868e96; word-break: break-all; text-align: center; background: #f8f9fa; padding: 10px; border-radius: 4px;">
      {{.InviteLink}}
    </p>

    <hr style="border: none; border-top: 1px solid #e9ecef; margin: 30px 0;">

    <p style="font-size: 12px; color: #868e96; text-align: center; margin: 0;">
      This invitation was sent by {{.InviterName}} from {{.OrganizationName}}.<br>
      If you didn't expect this invitation, you can safely ignore this email.
    </p>
  </div>
</body>
</html>
`))

var textTemplate = texttemplate.Must(texttemplate.New("invite-text").Parse(`You've been invited to join {{.OrganizationName}}!

{{.InviterName}} has invited you to join the {{.OrganizationName}} team as a {{.Role}}.

Click here to accept: {{.InviteLink}}

Your role: {{.RoleTitle}}
- {{.RoleDescription}}

This invitation will expire in 7 days.

If you can't click the link, copy and paste: {{.InviteLink}}
`))

// RenderEmail renders the invitation email for the given invitee
func RenderEmail(to string, role team.Role, inviterName, organizationName, inviteLink string) (*Email, error) {
	data := emailData{
		InviterName:      inviterName,
		OrganizationName: organizationName,
		Role:             role.String(),
		RoleTitle:        titleCase(role.String()),
		RoleDescription:  role.Description(),
		InviteLink:       inviteLink,
	}

	var htmlBody strings.Builder
	if err := htmlTemplate.Execute(&htmlBody, data); err != nil {
		return nil, fmt.Errorf("failed to render invitation email html: %w", err)
	}

	var textBody strings.Builder
	if err := textTemplate.Execute(&textBody, data); err != nil {
		return nil, fmt.Errorf("failed to render invitation email text: %w", err)
	}

	return &Email{
		To:      to,
		Subject: fmt.Sprintf("You're invited to join %s", organizationName),
		HTML:    htmlBody.String(),
		Text:    textBody.String(),
	}, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

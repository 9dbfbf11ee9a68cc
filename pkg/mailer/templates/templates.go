package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

type emailTemplate struct {
	Subject string
	Text    string
	HTML    string
}

var registry = map[string]emailTemplate{
	"welcome": {
		Subject: "Welcome aboard",
		Text:    "Hi {{.Name}}, your account has been created. You can sign in right away.",
		HTML: `<html><body>
<h2>Welcome, {{.Name}}!</h2>
<p>Your account has been created and is ready to use.</p>
</body></html>`,
	},
	"account_deleted": {
		Subject: "Your account has been deleted",
		Text:    "Hi {{.Name}}, your account and its data have been removed. This cannot be undone.",
		HTML: `<html><body>
<h2>Goodbye, {{.Name}}</h2>
<p>Your account and its data have been removed. This cannot be undone.</p>
</body></html>`,
	},
}

// Render produces subject, text and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	tpl, ok := registry[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	text, err = render(name+"_text", tpl.Text, data)
	if err != nil {
		return "", "", "", err
	}
	html, err = render(name+"_html", tpl.HTML, data)
	if err != nil {
		return "", "", "", err
	}
	return tpl.Subject, text, html, nil
}

func render(name, body string, data map[string]any) (string, error) {
	t, err := template.New(name).Parse(body)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

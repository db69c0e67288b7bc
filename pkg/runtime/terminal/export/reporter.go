package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/aws-profile-manager/pkg/models/domain"
)

type TableConfig struct {
	NameWidth   int
	KindWidth   int
	RegionWidth int
	FlagWidth   int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:   32,
		KindWidth:   12,
		RegionWidth: 16,
		FlagWidth:   8,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatRow": func(name, kind, region, flag string) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s | %-*s |",
				c.config.NameWidth, name,
				c.config.KindWidth, kind,
				c.config.RegionWidth, region,
				c.config.FlagWidth, flag)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.KindWidth+2),
				strings.Repeat("-", c.config.RegionWidth+2),
				strings.Repeat("-", c.config.FlagWidth+2))
		},
		"mark": func(active bool) string {
			if active {
				return "*"
			}
			return ""
		},
		"presence": func(fs domain.FileStatus) string {
			switch {
			case !fs.Exists:
				return "missing"
			case !fs.Readable:
				return "unreadable"
			default:
				return "ok"
			}
		},
	}
}

func (c *Reporter) render(tmpl string, data any) error {
	t, err := template.New("report").Funcs(c.funcMap()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(c.writer, data)
}

func (c *Reporter) Profiles(profiles []domain.Profile) error {
	tmpl := `{{separator}}
{{formatRow "Name" "Kind" "Region" "Active"}}
{{separator}}
{{range .}}{{formatRow .Name (printf "%s" .Kind) .Region (mark .Active)}}
{{end}}{{separator}}
`
	return c.render(tmpl, profiles)
}

func (c *Reporter) Environments(envs []domain.Environment) error {
	tmpl := `{{separator}}
{{formatRow "Name" "Kind" "Region" "Active"}}
{{separator}}
{{range .}}{{formatRow .Name "environment" .Region ""}}
{{end}}{{separator}}
`
	return c.render(tmpl, envs)
}

func (c *Reporter) Status(snapshot domain.StatusSnapshot) error {
	tmpl := `Active profile:     {{.ActiveProfile}}
Active environment: {{.ActiveEnvironment}}
Profiles:           {{.ProfileCount}}
Environments:       {{.EnvironmentCount}}

Base file:          {{.BaseFile.Path}} ({{presence .BaseFile}})
Credentials file:   {{.CredentialsFile.Path}} ({{presence .CredentialsFile}})
Config file:        {{.ConfigFile.Path}} ({{presence .ConfigFile}})
`
	return c.render(tmpl, snapshot)
}

func (c *Reporter) Message(format string, args ...any) {
	fmt.Fprintf(c.writer, format+"\n", args...)
}

package commands

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/sqlkit/internal/cli/config"
	"github.com/leapstack-labs/sqlkit/internal/cli/output"
	"github.com/leapstack-labs/sqlkit/internal/executor"
	"github.com/spf13/cobra"
)

// Check statuses.
const (
	statusPass = "pass"
	statusWarn = "warn"
	statusFail = "error"
)

// DoctorOutput is the structured output of the doctor command.
type DoctorOutput struct {
	Checks          []HealthCheck `json:"checks" yaml:"checks"`
	Recommendations []string      `json:"recommendations" yaml:"recommendations"`
	IssueCount      int           `json:"issue_count" yaml:"issue_count"`
}

// HealthCheck is the result of one environment check.
type HealthCheck struct {
	Group  string `json:"group" yaml:"group"`
	Name   string `json:"name" yaml:"name"`
	Status string `json:"status" yaml:"status"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`

	recommendation string
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, dialect and database connectivity",
		Long: `Check the sqlkit environment and report problems:
- Configuration file and effective settings
- Dialect and formatting options
- Database driver and connectivity
- Terminal output mode

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON/YAML: Machine-readable format`,
		Example: `  sqlkit doctor
  sqlkit doctor --driver pgx --database "$DATABASE_URL" -o json`,
		Args: cobra.NoArgs,
		RunE: runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	checks := []HealthCheck{configCheck(), dialectCheck(cc), formatCheck(cc)}
	checks = append(checks, databaseChecks(cmd, cc)...)
	checks = append(checks, terminalCheck(cc))

	out := &DoctorOutput{Checks: checks, Recommendations: []string{}}
	seen := map[string]bool{}
	for _, c := range checks {
		if c.Status == statusPass {
			continue
		}
		out.IssueCount++
		if c.recommendation != "" && !seen[c.recommendation] {
			seen[c.recommendation] = true
			out.Recommendations = append(out.Recommendations, c.recommendation)
		}
	}

	r := cc.Renderer
	if ok, err := r.Data(out); ok {
		return err
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		renderDoctorMarkdown(r, out)
	} else {
		renderDoctorText(r, out)
	}
	return nil
}

func configCheck() HealthCheck {
	c := HealthCheck{Group: "configuration", Name: "Config file", Status: statusPass}
	if file := config.GetConfigFileUsed(); file != "" {
		c.Detail = file
		return c
	}
	c.Status = statusWarn
	c.Detail = "no sqlkit.yaml found, using defaults"
	c.recommendation = "Create a sqlkit.yaml to share dialect and format settings"
	return c
}

func dialectCheck(cc *CommandContext) HealthCheck {
	return HealthCheck{
		Group:  "configuration",
		Name:   "Dialect",
		Status: statusPass,
		Detail: cc.Dialect.Name,
	}
}

func formatCheck(cc *CommandContext) HealthCheck {
	c := HealthCheck{Group: "configuration", Name: "Format options", Status: statusPass}
	if err := cc.Cfg.Format.Validate(); err != nil {
		c.Status = statusFail
		c.Detail = err.Error()
		c.recommendation = "Fix the format section of the configuration"
		return c
	}
	var parts []string
	if cc.Cfg.Format.Reindent {
		parts = append(parts, fmt.Sprintf("reindent=%d", cc.Cfg.Format.IndentWidth))
	}
	if cc.Cfg.Format.KeywordCase != "" {
		parts = append(parts, "keywords="+string(cc.Cfg.Format.KeywordCase))
	}
	if cc.Cfg.Format.RightMargin > 0 {
		parts = append(parts, fmt.Sprintf("margin=%d", cc.Cfg.Format.RightMargin))
	}
	if len(parts) == 0 {
		parts = append(parts, "identity")
	}
	c.Detail = strings.Join(parts, ", ")
	return c
}

func databaseChecks(cmd *cobra.Command, cc *CommandContext) []HealthCheck {
	driver := HealthCheck{Group: "database", Name: "Driver", Status: statusPass, Detail: cc.Cfg.Driver}
	if want := executor.DialectFor(cc.Cfg.Driver); cc.Cfg.Dialect != config.DefaultDialect && want != "" && want != cc.Dialect.Name {
		driver.Status = statusWarn
		driver.Detail = fmt.Sprintf("%s usually pairs with dialect %s, configured %s", cc.Cfg.Driver, want, cc.Dialect.Name)
		driver.recommendation = fmt.Sprintf("Set dialect: %s to split scripts the way %s parses them", want, cc.Cfg.Driver)
	}

	conn := HealthCheck{Group: "database", Name: "Connection", Status: statusPass}
	db, err := executor.Open(cmd.Context(), cc.Cfg.Driver, cc.Cfg.Database)
	if err != nil {
		conn.Status = statusFail
		conn.Detail = err.Error()
		conn.recommendation = "Check the database and driver settings"
		return []HealthCheck{driver, conn}
	}
	_ = db.Close()
	conn.Detail = "ok"
	if cc.Cfg.Database == "" {
		conn.Detail = "in-memory"
	}
	return []HealthCheck{driver, conn}
}

func terminalCheck(cc *CommandContext) HealthCheck {
	r := cc.Renderer
	detail := fmt.Sprintf("output=%s", r.EffectiveMode())
	if r.IsTTY() && !cc.Cfg.NoColor {
		detail += ", color"
	}
	return HealthCheck{Group: "terminal", Name: "Output", Status: statusPass, Detail: detail}
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) {
	styles := r.Styles()

	r.Println(styles.Header.Render("sqlkit Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 40)))

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.Checks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println("")
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
		}

		icon := styles.Success.Render("✓")
		switch check.Status {
		case statusWarn:
			icon = styles.Warning.Render("!")
		case statusFail:
			icon = styles.Error.Render("✗")
		}
		line := fmt.Sprintf("   %s %s", icon, check.Name)
		if check.Detail != "" {
			line += styles.Muted.Render(": " + check.Detail)
		}
		r.Println(line)
	}
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println(styles.Header.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
	}
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) {
	r.Println(output.FormatHeader(1, "sqlkit Health Report"))

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.Checks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println("")
			r.Println(output.FormatHeader(2, titleCaser.String(currentGroup)))
			r.Println("")
		}
		r.Println(output.FormatKeyValue(check.Name, fmt.Sprintf("%s (%s)", check.Detail, check.Status)))
	}

	if len(out.Recommendations) > 0 {
		r.Println("")
		r.Println(output.FormatHeader(2, "Recommendations"))
		r.Println("")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
	}
}

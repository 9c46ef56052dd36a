package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"github.com/spf13/cobra"

	"github.com/aterm-app/aterm/internal/agent"
	"github.com/aterm-app/aterm/internal/config"
	"github.com/aterm-app/aterm/internal/persist"
	"github.com/aterm-app/aterm/internal/shell"
)

var (
	doctorJSON   bool
	doctorStrict bool
)

type doctorStatus string

const (
	doctorStatusOK   doctorStatus = "ok"
	doctorStatusWarn doctorStatus = "warn"
	doctorStatusFail doctorStatus = "fail"
)

type doctorCheck struct {
	ID          string                 `json:"id"`
	Status      doctorStatus           `json:"status"`
	Message     string                 `json:"message"`
	Details     map[string]interface{} `json:"details,omitempty"`
	Remediation string                 `json:"remediation,omitempty"`
}

type doctorSummary struct {
	Total int `json:"total"`
	OK    int `json:"ok"`
	Warn  int `json:"warn"`
	Fail  int `json:"fail"`
}

type doctorReport struct {
	Version     string        `json:"version"`
	GeneratedAt string        `json:"generated_at"`
	Overall     doctorStatus  `json:"overall_status"`
	Summary     doctorSummary `json:"summary"`
	Checks      []doctorCheck `json:"checks"`
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run local diagnostics with remediation hints",
	Long: `Run read-only diagnostics against the local aterm setup and print
actionable hints: shell resolution, pseudo-terminal support, agent CLI
availability, configuration and persisted state.

By default the output is human-readable text.
Use --json for machine-readable output.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output machine-readable JSON")
	doctorCmd.Flags().BoolVar(&doctorStrict, "strict", false, "return non-zero on warnings")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	report := collectDoctorReport()

	if doctorJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printDoctorText(report)
	}

	if report.Summary.Fail > 0 {
		return fmt.Errorf("doctor found %d failing check(s)", report.Summary.Fail)
	}
	if doctorStrict && report.Summary.Warn > 0 {
		return fmt.Errorf("doctor strict mode failed with %d warning(s)", report.Summary.Warn)
	}
	return nil
}

func collectDoctorReport() doctorReport {
	checks := []doctorCheck{
		checkConfigLoad(),
		checkShellResolution(),
		checkPTYSupport(),
		checkWorkspaceDeclaration(),
	}
	checks = append(checks, checkAgentCLIs()...)

	report := doctorReport{
		Version:     version,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Checks:      checks,
	}
	report.Summary.Total = len(checks)
	report.Overall = doctorStatusOK
	for _, c := range checks {
		switch c.Status {
		case doctorStatusOK:
			report.Summary.OK++
		case doctorStatusWarn:
			report.Summary.Warn++
			if report.Overall == doctorStatusOK {
				report.Overall = doctorStatusWarn
			}
		case doctorStatusFail:
			report.Summary.Fail++
			report.Overall = doctorStatusFail
		}
	}
	return report
}

func checkConfigLoad() doctorCheck {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return doctorCheck{
			ID:          "config.load",
			Status:      doctorStatusFail,
			Message:     fmt.Sprintf("configuration failed to load: %v", err),
			Remediation: "Fix or delete the config file; aterm falls back to defaults when it is absent.",
		}
	}
	return doctorCheck{
		ID:      "config.load",
		Status:  doctorStatusOK,
		Message: "configuration loaded",
		Details: map[string]interface{}{
			"shell_mode":    cfg.Terminal.ShellMode,
			"default_agent": cfg.Agent.Default,
		},
	}
}

func checkShellResolution() doctorCheck {
	path := shell.Resolve(shell.ModeAuto, "")
	if path == "" {
		return doctorCheck{
			ID:          "shell.resolve",
			Status:      doctorStatusFail,
			Message:     "no usable shell found",
			Remediation: "Set terminal.shell_mode=custom and terminal.shell_path in the config file.",
		}
	}
	if _, err := os.Stat(path); err != nil {
		if _, lerr := exec.LookPath(path); lerr != nil {
			return doctorCheck{
				ID:          "shell.resolve",
				Status:      doctorStatusWarn,
				Message:     fmt.Sprintf("resolved shell %s is not accessible", path),
				Remediation: "Point terminal.shell_path at an existing shell binary.",
			}
		}
	}
	return doctorCheck{
		ID:      "shell.resolve",
		Status:  doctorStatusOK,
		Message: "default shell resolved",
		Details: map[string]interface{}{"path": path},
	}
}

func checkPTYSupport() doctorCheck {
	ptmx, tty, err := pty.Open()
	if err != nil {
		return doctorCheck{
			ID:      "terminal.pty",
			Status:  doctorStatusWarn,
			Message: fmt.Sprintf("pseudo-terminal allocation unavailable: %v", err),
			Remediation: "Sessions will run in piped mode without true TTY semantics " +
				"(no resize, degraded colors).",
		}
	}
	_ = ptmx.Close()
	_ = tty.Close()
	return doctorCheck{
		ID:      "terminal.pty",
		Status:  doctorStatusOK,
		Message: "pseudo-terminal allocation works",
	}
}

func checkWorkspaceDeclaration() doctorCheck {
	path := persist.DefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return doctorCheck{
			ID:      "persist.workspaces",
			Status:  doctorStatusOK,
			Message: "no workspace declaration yet (fresh install)",
			Details: map[string]interface{}{"path": path},
		}
	}
	if decl := persist.NewStore(path).Load(); decl == nil {
		return doctorCheck{
			ID:          "persist.workspaces",
			Status:      doctorStatusWarn,
			Message:     "workspace declaration is unreadable or corrupt",
			Details:     map[string]interface{}{"path": path},
			Remediation: "Delete the file; aterm will start with an empty workspace list.",
		}
	} else {
		return doctorCheck{
			ID:      "persist.workspaces",
			Status:  doctorStatusOK,
			Message: fmt.Sprintf("workspace declaration readable (%d workspaces)", len(decl.Workspaces)),
			Details: map[string]interface{}{"path": path},
		}
	}
}

func checkAgentCLIs() []doctorCheck {
	var checks []doctorCheck
	for _, p := range agent.Presets {
		if p.Command == "" {
			continue
		}
		// "gh copilot" style commands probe the base binary only.
		bin := p.Command
		for i := 0; i < len(bin); i++ {
			if bin[i] == ' ' {
				bin = bin[:i]
				break
			}
		}
		if path, err := exec.LookPath(bin); err == nil {
			checks = append(checks, doctorCheck{
				ID:      "agent." + string(p.ID),
				Status:  doctorStatusOK,
				Message: fmt.Sprintf("%s CLI found", p.Name),
				Details: map[string]interface{}{"path": path},
			})
		} else {
			checks = append(checks, doctorCheck{
				ID:          "agent." + string(p.ID),
				Status:      doctorStatusWarn,
				Message:     fmt.Sprintf("%s CLI not on PATH", p.Name),
				Remediation: fmt.Sprintf("Install %q to use %s sessions.", p.Command, p.Name),
			})
		}
	}
	return checks
}

func printDoctorText(report doctorReport) {
	fmt.Printf("aterm doctor (%s)\n\n", report.Version)
	for _, c := range report.Checks {
		marker := "✓"
		switch c.Status {
		case doctorStatusWarn:
			marker = "!"
		case doctorStatusFail:
			marker = "✗"
		}
		fmt.Printf("  %s %-22s %s\n", marker, c.ID, c.Message)
		if c.Remediation != "" && c.Status != doctorStatusOK {
			fmt.Printf("      hint: %s\n", c.Remediation)
		}
	}
	fmt.Printf("\n%d checks: %d ok, %d warnings, %d failures\n",
		report.Summary.Total, report.Summary.OK, report.Summary.Warn, report.Summary.Fail)
}

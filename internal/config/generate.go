// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// GenerateCUE generates a CUE representation of the configuration that
// validates against #Config.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// devcmd configuration file\n")
	sb.WriteString("// Every field is optional; remove a line to fall back to the default.\n\n")

	fmt.Fprintf(&sb, "python:       %q\n", cfg.Python)
	fmt.Fprintf(&sb, "env_file:     %q\n", cfg.EnvFile)
	fmt.Fprintf(&sb, "env_template: %q\n", cfg.EnvTemplate)

	sb.WriteString("\nlint: {\n")
	fmt.Fprintf(&sb, "\tpaths: %s\n", cueList(cfg.Lint.Paths))
	fmt.Fprintf(&sb, "\ttest_paths: %s\n", cueList(cfg.Lint.TestPaths))
	fmt.Fprintf(&sb, "\tstrict: %v\n", cfg.Lint.Strict)
	sb.WriteString("}\n")

	sb.WriteString("\ntest: {\n")
	fmt.Fprintf(&sb, "\tdir: %q\n", cfg.Test.Dir)
	fmt.Fprintf(&sb, "\tintegration_dir: %q\n", cfg.Test.IntegrationDir)
	fmt.Fprintf(&sb, "\tsmoke_dir: %q\n", cfg.Test.SmokeDir)
	fmt.Fprintf(&sb, "\tcoverage_packages: %s\n", cueList(cfg.Test.CoveragePackages))
	fmt.Fprintf(&sb, "\tcoverage_report: %q\n", cfg.Test.CoverageReport)
	sb.WriteString("}\n")

	sb.WriteString("\nsam: {\n")
	fmt.Fprintf(&sb, "\tdefault_region: %q\n", cfg.SAM.DefaultRegion)
	fmt.Fprintf(&sb, "\tfunction_name: %q\n", cfg.SAM.FunctionName)
	fmt.Fprintf(&sb, "\ttemplate: %q\n", cfg.SAM.Template)
	fmt.Fprintf(&sb, "\tuse_container: %v\n", cfg.SAM.UseContainer)
	if len(cfg.SAM.FunctionEnv) > 0 {
		sb.WriteString("\tfunction_env: [\n")
		for _, e := range cfg.SAM.FunctionEnv {
			fmt.Fprintf(&sb, "\t\t{name: %q, value: %q},\n", e.Name, e.Value)
		}
		sb.WriteString("\t]\n")
	}
	sb.WriteString("}\n")

	sb.WriteString("\ndeploy: {\n")
	fmt.Fprintf(&sb, "\tscript: %q\n", cfg.Deploy.Script)
	fmt.Fprintf(&sb, "\tshell: %q\n", cfg.Deploy.Shell)
	fmt.Fprintf(&sb, "\tverify_bucket: %v\n", cfg.Deploy.VerifyBucket)
	fmt.Fprintf(&sb, "\tbucket_env: %q\n", cfg.Deploy.BucketEnv)
	sb.WriteString("}\n")

	sb.WriteString("\nhooks: {\n")
	fmt.Fprintf(&sb, "\ttool: %q\n", cfg.Hooks.Tool)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tlog_level: %q\n", cfg.UI.LogLevel)
	sb.WriteString("}\n")

	return sb.String()
}

// GenerateTOML renders the configuration as TOML for 'config dump --format toml'.
func GenerateTOML(cfg *Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config as TOML: %w", err)
	}
	return string(data), nil
}

func cueList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

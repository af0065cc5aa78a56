package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AccountConfig describes one broker/data account from accounts.yaml.
// Credential fields may use ${VAR} placeholders resolved from the
// environment at load time so secrets stay out of the file.
type AccountConfig struct {
	Broker       string  `yaml:"broker"`
	Type         string  `yaml:"type"` // cash or margin
	KeyID        string  `yaml:"key_id"`
	SecretKey    string  `yaml:"secret_key"`
	BaseURL      string  `yaml:"base_url"`
	DataSource   string  `yaml:"data_source"`
	StartingCash float64 `yaml:"starting_cash"`
	Active       bool    `yaml:"active"`
}

type accountsFile struct {
	Accounts map[string]AccountConfig `yaml:"accounts"`
}

// LoadAccounts parses accounts.yaml, expands ${VAR} credential references,
// and auto-disables alpaca accounts missing a key or secret.
func LoadAccounts(path string) (map[string]AccountConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}

	var raw accountsFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse accounts: %w", err)
	}

	out := make(map[string]AccountConfig, len(raw.Accounts))
	for name, acct := range raw.Accounts {
		acct.KeyID = expandEnv(acct.KeyID)
		acct.SecretKey = expandEnv(acct.SecretKey)
		acct.BaseURL = expandEnv(acct.BaseURL)

		if acct.Broker == "alpaca" && (acct.KeyID == "" || acct.SecretKey == "") {
			acct.Active = false
		}
		out[name] = acct
	}
	return out, nil
}

// MissingCredentials reports which credential fields are unset per alpaca
// account, for env-check reporting.
func MissingCredentials(accounts map[string]AccountConfig) map[string][]string {
	missing := make(map[string][]string)
	for name, acct := range accounts {
		if acct.Broker != "alpaca" {
			continue
		}
		if acct.KeyID == "" {
			missing[name] = append(missing[name], "key_id")
		}
		if acct.SecretKey == "" {
			missing[name] = append(missing[name], "secret_key")
		}
	}
	return missing
}

// expandEnv resolves a whole-string ${VAR} placeholder; anything else passes
// through untouched.
func expandEnv(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		return os.Getenv(val[2 : len(val)-1])
	}
	return val
}

package environment

import "strings"

// Environment is the deployment environment of a process.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Parse maps a configuration value, including the short forms "dev",
// "stage" and "prod", to an Environment. Unknown values are development.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Production), "prod":
		return Production
	case string(Staging), "stage":
		return Staging
	default:
		return Development
	}
}

func (e Environment) IsDevelopment() bool { return Parse(string(e)) == Development }
func (e Environment) IsStaging() bool     { return Parse(string(e)) == Staging }
func (e Environment) IsProduction() bool  { return Parse(string(e)) == Production }

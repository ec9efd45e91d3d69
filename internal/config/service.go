package config

type ServiceConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`

	// FrontendBaseURL is the public frontend origin used to derive
	// organization page and dashboard URLs
	FrontendBaseURL string `yaml:"frontend_base_url"`

	// Statement descriptor composition. The prefix is the platform name; the
	// max length bounds the per-organization suffix.
	StatementDescriptorPrefix          string `yaml:"statement_descriptor_prefix"`
	StatementDescriptorSuffixMaxLength int    `yaml:"statement_descriptor_suffix_max_length"`

	StripeSecretKey string `yaml:"stripe_secret_key"`
	JWTSecret       string `yaml:"jwt_secret"`
}

package webhook

// SecretTokenHeader carries the secret_token given to setWebhook.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	SecretToken     string   // Echoed by Telegram in SecretTokenHeader
	AllowedIPs      []string // IP or CIDR whitelist (optional)
	RateLimitPerMin int      // Max requests per minute per source IP
}

package config

import "time"

// defaultConfig returns the built-in fallback values applied after all
// explicit sources (env, flags, JSON) have been merged. It is appended last
// in [GetStructuredConfig] so it only fills fields still left at their zero
// value.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "filevault",
			TokenDuration: 168 * time.Hour,
		},
		Server: Server{
			HTTPAddress:    ":4000",
			RequestTimeout: 30 * time.Second,
		},
		Storage: Storage{
			Files: Files{
				BinaryDataDir: "/data/files",
			},
		},
		Mail: Mail{
			Port: 587,
		},
		RateLimit: RateLimit{
			TTL: 60 * time.Second,
			Max: 10,
		},
		Invite: Invite{
			TokenTTLHours: 72,
		},
	}
}

package config

import "time"

// Registry represents the entire user configuration file.
// It stores named backend profiles and application preferences.
type Registry struct {
	Version     int                 `yaml:"version"`
	Profiles    map[string]*Profile `yaml:"profiles,omitempty"` // Keyed by profile name
	Preferences *Preferences        `yaml:"preferences,omitempty"`
}

// Profile represents a saved backend login.
// A user typically has one profile per environment (production, staging)
// or one per role when testing multi-tenant behavior.
type Profile struct {
	BaseURL   string    `yaml:"base_url"`
	Token     string    `yaml:"token,omitempty"`      // Bearer token from the last login
	Role      string    `yaml:"role,omitempty"`       // admin, club or sponsor
	UserID    int64     `yaml:"user_id,omitempty"`    // Backend user id the token belongs to
	UserName  string    `yaml:"user_name,omitempty"`  // Display name shown in the status bar
	UserEmail string    `yaml:"user_email,omitempty"` // Login email
	LastLogin time.Time `yaml:"last_login,omitempty"` // Last successful login time
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultProfile string `yaml:"default_profile"` // Profile used when --profile is not given
	OutputFormat   string `yaml:"output_format"`   // Default output format for list commands
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:  1,
		Profiles: make(map[string]*Profile),
		Preferences: &Preferences{
			DefaultProfile: "default",
			OutputFormat:   "detailed",
		},
	}
}

// GetProfile retrieves a profile by name.
// Returns nil if the profile doesn't exist in the registry.
func (r *Registry) GetProfile(name string) *Profile {
	return r.Profiles[name]
}

// EnsureProfile ensures a profile entry exists in the registry.
// If the profile doesn't exist, creates a new empty entry.
// Returns the profile entry (existing or newly created).
func (r *Registry) EnsureProfile(name string) *Profile {
	if r.Profiles == nil {
		r.Profiles = make(map[string]*Profile)
	}

	if profile, exists := r.Profiles[name]; exists {
		return profile
	}

	profile := &Profile{}
	r.Profiles[name] = profile
	return profile
}

// SetLogin records a successful login on a profile.
func (r *Registry) SetLogin(name, baseURL, token, role string, userID int64, userName, userEmail string) {
	profile := r.EnsureProfile(name)
	profile.BaseURL = baseURL
	profile.Token = token
	profile.Role = role
	profile.UserID = userID
	profile.UserName = userName
	profile.UserEmail = userEmail
	profile.LastLogin = time.Now()
}

// ClearToken removes the stored token from a profile (logout).
// The base URL and role are kept so the next login is prefilled.
func (r *Registry) ClearToken(name string) {
	if profile, exists := r.Profiles[name]; exists {
		profile.Token = ""
	}
}

// DeleteProfile removes a profile entirely.
func (r *Registry) DeleteProfile(name string) {
	delete(r.Profiles, name)
}

// DefaultProfileName returns the preferred profile name, falling back to
// "default" when preferences are missing.
func (r *Registry) DefaultProfileName() string {
	if r.Preferences != nil && r.Preferences.DefaultProfile != "" {
		return r.Preferences.DefaultProfile
	}
	return "default"
}

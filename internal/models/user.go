package models

// ExperienceLevel is the self-reported skill bracket on a user profile.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "Beginner"
	ExperienceIntermediate ExperienceLevel = "Intermediate"
	ExperienceExpert       ExperienceLevel = "Expert"
)

// UserSummary is the compact user record used in lists.
type UserSummary struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Online    bool   `json:"online"`
	CreatedAt string `json:"createdAt"`
	Birthday  string `json:"birthday"`
}

// UserProfile is the full profile of a user.
type UserProfile struct {
	ID              int64           `json:"id"`
	Username        string          `json:"username"`
	DisplayName     string          `json:"displayName"`
	AvatarURL       string          `json:"avatarUrl"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	Birthday        string          `json:"birthday"`
	CreatedAt       string          `json:"createdAt"`
	Online          bool            `json:"online"`
}

// UserProfileUpdate holds the editable subset of a profile. Nil fields are
// left unchanged by the backend.
type UserProfileUpdate struct {
	DisplayName     *string          `json:"displayName,omitempty"`
	AvatarURL       *string          `json:"avatarUrl,omitempty"`
	ExperienceLevel *ExperienceLevel `json:"experienceLevel,omitempty"`
	Birthday        *string          `json:"birthday,omitempty"`
}

// Preferences holds per-user gameplay preferences.
type Preferences struct {
	AutoFold bool `json:"autoFold"`
	AutoCall bool `json:"autoCall"`
}

// PreferencesUpdate holds a partial preferences change.
type PreferencesUpdate struct {
	AutoFold *bool `json:"autoFold,omitempty"`
	AutoCall *bool `json:"autoCall,omitempty"`
}

// LoginRequest is the credential payload for authentication.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the authenticated profile.
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// MessageResponse is the generic acknowledgement body returned by
// mutation endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

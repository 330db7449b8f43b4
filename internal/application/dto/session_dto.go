package dto

// SessionResponse instantánea completa de la sesión resuelta.
type SessionResponse struct {
	Loaded          bool                `json:"loaded"`
	Resolving       bool                `json:"resolving"`
	Error           string              `json:"error,omitempty"`
	Role            string              `json:"role,omitempty"`
	PrimaryRole     string              `json:"primary_role,omitempty"`
	ActiveBusiness  *BusinessResponse   `json:"active_business,omitempty"`
	Businesses      []BusinessResponse  `json:"businesses"`
	Permissions     map[string]bool     `json:"permissions,omitempty"`
	AllowedFeatures []string            `json:"allowed_features"`
	NeedsOnboarding bool                `json:"needs_onboarding"`
}

// SwitchBusinessRequest cambio de negocio activo.
type SwitchBusinessRequest struct {
	BusinessID string `json:"business_id" validate:"required,uuid"`
}

// NavigationResponse pestañas visibles para la sesión vigente.
type NavigationResponse struct {
	Features []string `json:"features"`
}

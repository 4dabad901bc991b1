package domain

import "sort"

type Capability string

const (
	CapViewOwnStatus      Capability = "view_own_status"
	CapViewProfile        Capability = "view_profile"
	CapEditOwnProfile     Capability = "edit_own_profile"
	CapSubmitContent      Capability = "submit_content"
	CapViewOwnSubmissions Capability = "view_own_submissions"
	CapModerateAccounts   Capability = "moderate_accounts"
	CapModerateContent    Capability = "moderate_content"
	CapManageTeamMembers  Capability = "manage_team_members"
	CapManageSiteSettings Capability = "manage_site_settings"
	CapViewAllSubmissions Capability = "view_all_submissions"
)

type CapabilitySet map[Capability]struct{}

func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// List returns the capabilities sorted, for stable JSON payloads.
func (s CapabilitySet) List() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, string(c))
	}
	sort.Strings(out)
	return out
}

// CapabilitiesFor derives what an account may do from role + status.
// Must be called with a freshly loaded account on every protected
// request: a suspension takes effect on the user's next request.
func CapabilitiesFor(a *Account) CapabilitySet {
	caps := CapabilitySet{}
	if a == nil {
		return caps
	}

	caps[CapViewOwnStatus] = struct{}{}
	if a.Status != StatusApproved {
		// Pending, rejected and suspended accounts may only see their
		// own status notice, regardless of role.
		return caps
	}

	caps[CapViewProfile] = struct{}{}
	caps[CapEditOwnProfile] = struct{}{}
	caps[CapSubmitContent] = struct{}{}
	caps[CapViewOwnSubmissions] = struct{}{}

	if a.Role == RoleAdmin {
		caps[CapModerateAccounts] = struct{}{}
		caps[CapModerateContent] = struct{}{}
		caps[CapManageTeamMembers] = struct{}{}
		caps[CapManageSiteSettings] = struct{}{}
		caps[CapViewAllSubmissions] = struct{}{}
	}

	return caps
}

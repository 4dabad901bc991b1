package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesFor_NotSignedIn(t *testing.T) {
	caps := CapabilitiesFor(nil)
	assert.Empty(t, caps)
}

func TestCapabilitiesFor_NotApproved(t *testing.T) {
	for _, status := range []AccountStatus{StatusPending, StatusRejected, StatusSuspended} {
		for _, role := range []AccountRole{RoleMember, RoleAdmin} {
			caps := CapabilitiesFor(&Account{Role: role, Status: status})

			assert.True(t, caps.Has(CapViewOwnStatus), "status=%s role=%s", status, role)
			assert.Len(t, caps, 1, "status=%s role=%s must get the minimal set", status, role)
			assert.False(t, caps.Has(CapSubmitContent))
			assert.False(t, caps.Has(CapModerateAccounts))
		}
	}
}

func TestCapabilitiesFor_ApprovedMember(t *testing.T) {
	caps := CapabilitiesFor(&Account{Role: RoleMember, Status: StatusApproved})

	assert.True(t, caps.Has(CapViewProfile))
	assert.True(t, caps.Has(CapEditOwnProfile))
	assert.True(t, caps.Has(CapSubmitContent))
	assert.True(t, caps.Has(CapViewOwnSubmissions))

	assert.False(t, caps.Has(CapModerateAccounts))
	assert.False(t, caps.Has(CapModerateContent))
	assert.False(t, caps.Has(CapManageTeamMembers))
	assert.False(t, caps.Has(CapManageSiteSettings))
	assert.False(t, caps.Has(CapViewAllSubmissions))
}

func TestCapabilitiesFor_ApprovedAdmin(t *testing.T) {
	member := CapabilitiesFor(&Account{Role: RoleMember, Status: StatusApproved})
	admin := CapabilitiesFor(&Account{Role: RoleAdmin, Status: StatusApproved})

	// Admin capabilities are a superset of member capabilities.
	for c := range member {
		assert.True(t, admin.Has(c), "admin missing member capability %s", c)
	}

	assert.True(t, admin.Has(CapModerateAccounts))
	assert.True(t, admin.Has(CapModerateContent))
	assert.True(t, admin.Has(CapManageTeamMembers))
	assert.True(t, admin.Has(CapManageSiteSettings))
	assert.True(t, admin.Has(CapViewAllSubmissions))
}

func TestCapabilitySet_List_Sorted(t *testing.T) {
	caps := CapabilitiesFor(&Account{Role: RoleAdmin, Status: StatusApproved})
	list := caps.List()

	assert.Len(t, list, len(caps))
	assert.IsNonDecreasing(t, list)
}

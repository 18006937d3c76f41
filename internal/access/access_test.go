package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluatePrivateExcludedForStrangers(t *testing.T) {
	res := Resource{CreatorEmail: "owner@example.com", Privacy: PrivacyPrivate, AccessLevel: AccessFree}

	v := Evaluate(Viewer{Email: "someone@example.com", Role: RoleUser}, res)
	assert.Equal(t, Verdict{Visible: false, Locked: false, Reason: ReasonPrivate}, v)

	// Anonymous viewers can never satisfy ownership.
	v = Evaluate(Viewer{}, res)
	assert.Equal(t, ReasonPrivate, v.Reason)
	assert.False(t, v.Visible)
}

func TestEvaluatePrivateVisibleToOwnerAndAdmin(t *testing.T) {
	res := Resource{CreatorEmail: "owner@example.com", Privacy: PrivacyPrivate, AccessLevel: AccessFree}

	v := Evaluate(Viewer{Email: "owner@example.com", Role: RoleUser}, res)
	assert.Equal(t, Verdict{Visible: true, Locked: false}, v)

	v = Evaluate(Viewer{Email: "mod@example.com", Role: RoleAdmin}, res)
	assert.True(t, v.Visible)
	assert.False(t, v.Locked)
}

func TestEvaluatePremiumLocking(t *testing.T) {
	res := Resource{CreatorEmail: "owner@example.com", Privacy: PrivacyPublic, AccessLevel: AccessPremium}

	v := Evaluate(Viewer{Email: "free@example.com", Role: RoleUser}, res)
	assert.Equal(t, Verdict{Visible: true, Locked: true, Reason: ReasonPremiumRequired}, v)

	// Anonymous is gated the same way as a free user.
	v = Evaluate(Viewer{}, res)
	assert.Equal(t, ReasonPremiumRequired, v.Reason)

	v = Evaluate(Viewer{Email: "paid@example.com", Role: RoleUser, IsPremium: true}, res)
	assert.Equal(t, Verdict{Visible: true, Locked: false}, v)

	// Admins bypass the premium gate.
	v = Evaluate(Viewer{Email: "mod@example.com", Role: RoleAdmin}, res)
	assert.False(t, v.Locked)
}

// Private wins over premium: a private premium lesson is excluded for
// strangers, not shown locked.
func TestEvaluatePrivateBeatsPremium(t *testing.T) {
	res := Resource{CreatorEmail: "owner@example.com", Privacy: PrivacyPrivate, AccessLevel: AccessPremium}

	v := Evaluate(Viewer{Email: "paid@example.com", Role: RoleUser, IsPremium: true}, res)
	assert.Equal(t, ReasonPrivate, v.Reason)
	assert.False(t, v.Visible)

	// The owner passes the private rule; the premium gate still applies to
	// a non-premium owner viewing their own premium lesson.
	v = Evaluate(Viewer{Email: "owner@example.com", Role: RoleUser}, res)
	assert.True(t, v.Visible)
	assert.True(t, v.Locked)
}

// Every combination of the four policy inputs yields exactly one of the
// three defined verdicts.
func TestEvaluateTotality(t *testing.T) {
	viewers := []Viewer{
		{},
		{Email: "u@example.com", Role: RoleUser},
		{Email: "u@example.com", Role: RoleUser, IsPremium: true},
		{Email: "owner@example.com", Role: RoleUser},
		{Email: "a@example.com", Role: RoleAdmin},
		{Email: "a@example.com", Role: RoleAdmin, IsPremium: true},
	}
	known := map[Verdict]bool{
		{Visible: false, Locked: false, Reason: ReasonPrivate}:       true,
		{Visible: true, Locked: true, Reason: ReasonPremiumRequired}: true,
		{Visible: true, Locked: false, Reason: ReasonNone}:           true,
	}

	for _, privacy := range []Privacy{PrivacyPublic, PrivacyPrivate} {
		for _, level := range []AccessLevel{AccessFree, AccessPremium} {
			for _, viewer := range viewers {
				v := Evaluate(viewer, Resource{
					CreatorEmail: "owner@example.com",
					Privacy:      privacy,
					AccessLevel:  level,
				})
				assert.True(t, known[v], "unexpected verdict %+v for viewer %+v privacy=%s level=%s", v, viewer, privacy, level)
			}
		}
	}
}

// A premium upgrade changes the verdict on re-evaluation without any other
// state change.
func TestEvaluateAfterUpgrade(t *testing.T) {
	res := Resource{CreatorEmail: "owner@example.com", Privacy: PrivacyPublic, AccessLevel: AccessPremium}
	viewer := Viewer{Email: "v@example.com", Role: RoleUser}

	assert.Equal(t, Verdict{Visible: true, Locked: true, Reason: ReasonPremiumRequired}, Evaluate(viewer, res))

	viewer.IsPremium = true
	assert.Equal(t, Verdict{Visible: true, Locked: false, Reason: ReasonNone}, Evaluate(viewer, res))
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, CategoryCareer.Valid())
	assert.False(t, Category("Cooking").Valid())
	assert.True(t, ToneGratitude.Valid())
	assert.False(t, Tone("Angry").Valid())
	assert.True(t, PrivacyPublic.Valid())
	assert.False(t, Privacy("Hidden").Valid())
	assert.True(t, AccessPremium.Valid())
	assert.False(t, AccessLevel("Gold").Valid())
}

// Package access decides what a viewer may see of a lesson. It is pure:
// no I/O, no ambient session state, so verdicts can be recomputed whenever
// viewer or lesson state changes (premium upgrade, role change).
package access

// Role is the platform role carried by a user record. The zero value means
// the viewer is anonymous.
type Role string

const (
	RoleAnonymous Role = ""
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
)

// Privacy controls who may see a lesson at all.
type Privacy string

const (
	PrivacyPublic  Privacy = "Public"
	PrivacyPrivate Privacy = "Private"
)

// AccessLevel gates full content behind a premium subscription.
type AccessLevel string

const (
	AccessFree    AccessLevel = "Free"
	AccessPremium AccessLevel = "Premium"
)

// Category classifies a lesson's subject matter.
type Category string

const (
	CategoryPersonalGrowth  Category = "Personal Growth"
	CategoryCareer          Category = "Career"
	CategoryRelationships   Category = "Relationships"
	CategoryMindset         Category = "Mindset"
	CategoryMistakesLearned Category = "Mistakes Learned"
)

// Tone classifies a lesson's emotional register.
type Tone string

const (
	ToneMotivational Tone = "Motivational"
	ToneSad          Tone = "Sad"
	ToneRealization  Tone = "Realization"
	ToneGratitude    Tone = "Gratitude"
)

func (p Privacy) Valid() bool {
	return p == PrivacyPublic || p == PrivacyPrivate
}

func (a AccessLevel) Valid() bool {
	return a == AccessFree || a == AccessPremium
}

func (c Category) Valid() bool {
	switch c {
	case CategoryPersonalGrowth, CategoryCareer, CategoryRelationships,
		CategoryMindset, CategoryMistakesLearned:
		return true
	}
	return false
}

func (t Tone) Valid() bool {
	switch t {
	case ToneMotivational, ToneSad, ToneRealization, ToneGratitude:
		return true
	}
	return false
}

// Viewer is the actor a verdict is computed for. The zero value is an
// anonymous viewer: no email, no role, no premium entitlement.
type Viewer struct {
	Email     string
	Role      Role
	IsPremium bool
}

func (v Viewer) Anonymous() bool { return v.Email == "" }

func (v Viewer) Admin() bool { return v.Role == RoleAdmin }

// Resource is the subset of a lesson the policy needs.
type Resource struct {
	CreatorEmail string
	Privacy      Privacy
	AccessLevel  AccessLevel
}

// Reason explains a restrictive verdict.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonPrivate         Reason = "private"
	ReasonPremiumRequired Reason = "premium_required"
)

// Verdict is the visibility decision for one (viewer, lesson) pair.
// Visible=false means the lesson must be excluded from listings entirely,
// not merely rendered locked.
type Verdict struct {
	Visible bool   `json:"visible"`
	Locked  bool   `json:"locked"`
	Reason  Reason `json:"reason,omitempty"`
}

// Evaluate applies the access rules in order: private exclusion first,
// then premium locking, then open access. Anonymous viewers are treated as
// free non-owners.
func Evaluate(viewer Viewer, res Resource) Verdict {
	if res.Privacy == PrivacyPrivate && !viewer.Admin() &&
		(viewer.Anonymous() || viewer.Email != res.CreatorEmail) {
		return Verdict{Visible: false, Locked: false, Reason: ReasonPrivate}
	}
	if res.AccessLevel == AccessPremium && !viewer.IsPremium && !viewer.Admin() {
		return Verdict{Visible: true, Locked: true, Reason: ReasonPremiumRequired}
	}
	return Verdict{Visible: true, Locked: false, Reason: ReasonNone}
}

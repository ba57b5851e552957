package teams_enums

type MembershipStatus string

const (
	MembershipStatusActive    MembershipStatus = "ACTIVE"
	MembershipStatusInvited   MembershipStatus = "INVITED"
	MembershipStatusSuspended MembershipStatus = "SUSPENDED"
)

func (s MembershipStatus) IsValid() bool {
	switch s {
	case MembershipStatusActive, MembershipStatusInvited, MembershipStatusSuspended:
		return true
	default:
		return false
	}
}

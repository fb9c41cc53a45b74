package domain

// UserStatus 用户生命周期状态
type UserStatus string

const (
	StatusPendingVerification UserStatus = "PENDING_VERIFICATION"
	StatusActive              UserStatus = "ACTIVE"
	StatusInactive            UserStatus = "INACTIVE"
	StatusSuspended           UserStatus = "SUSPENDED"
	StatusClosed              UserStatus = "CLOSED"
)

// KycStatus 由合规侧维护，本服务只读
type KycStatus string

const (
	KycPending  KycStatus = "PENDING"
	KycVerified KycStatus = "VERIFIED"
	KycRejected KycStatus = "REJECTED"
	KycExpired  KycStatus = "EXPIRED"
)

func (s UserStatus) Valid() bool {
	switch s {
	case StatusPendingVerification, StatusActive, StatusInactive, StatusSuspended, StatusClosed:
		return true
	}
	return false
}

// statusTransitions 状态机转移表；CLOSED 为终态，无出边
var statusTransitions = map[UserStatus][]UserStatus{
	StatusPendingVerification: {StatusActive, StatusSuspended, StatusClosed},
	StatusActive:              {StatusInactive, StatusSuspended, StatusClosed},
	StatusInactive:            {StatusActive, StatusClosed},
	StatusSuspended:           {StatusActive, StatusClosed},
	StatusClosed:              {},
}

// CanTransition 判定 from → to 是否合法；同状态（no-op）恒为合法
func CanTransition(from, to UserStatus) bool {
	if from == to {
		return true
	}
	for _, t := range statusTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

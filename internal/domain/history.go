package domain

import "time"

// UserStatusHistory 状态变更审计记录，只追加不修改
type UserStatusHistory struct {
	ID             string     `gorm:"primaryKey;size:36" json:"id"`
	UserID         string     `gorm:"index;size:36;not null" json:"userId"`
	PreviousStatus UserStatus `gorm:"size:20;not null" json:"previousStatus"`
	NewStatus      UserStatus `gorm:"size:20;not null" json:"newStatus"`
	Reason         string     `gorm:"size:500" json:"reason,omitempty"`
	ChangedBy      string     `gorm:"size:100" json:"changedBy,omitempty"`
	ChangedFromIP  string     `gorm:"size:45" json:"changedFromIp,omitempty"`
	ChangedAt      time.Time  `gorm:"autoCreateTime;index" json:"changedAt"`
}

func (UserStatusHistory) TableName() string { return "user_status_history" }

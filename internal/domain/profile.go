package domain

import "time"

// UserProfile 与 User 一对一，首次写入时懒创建
type UserProfile struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"uniqueIndex;size:36;not null" json:"userId"`

	AddressLine1 string `gorm:"size:500" json:"addressLine1,omitempty"`
	AddressLine2 string `gorm:"size:500" json:"addressLine2,omitempty"`
	City         string `gorm:"size:100" json:"city,omitempty"`
	State        string `gorm:"size:100" json:"state,omitempty"`
	PostalCode   string `gorm:"size:20" json:"postalCode,omitempty"`
	Country      string `gorm:"size:100" json:"country,omitempty"`

	AvatarURL      string `gorm:"size:500" json:"avatarUrl,omitempty"`
	NationalID     string `gorm:"size:50" json:"nationalId,omitempty"`
	PassportNumber string `gorm:"size:50" json:"passportNumber,omitempty"`
	Occupation     string `gorm:"size:100" json:"occupation,omitempty"`
	Employer       string `gorm:"size:100" json:"employer,omitempty"`
	Bio            string `gorm:"type:text" json:"bio,omitempty"`

	PreferredLanguage    string `gorm:"size:10;default:en" json:"preferredLanguage"`
	Timezone             string `gorm:"size:50" json:"timezone,omitempty"`
	NotificationsEnabled bool   `gorm:"default:true" json:"notificationsEnabled"`
	MarketingEnabled     bool   `gorm:"default:false" json:"marketingEnabled"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// ProfilePatch 部分更新：nil 字段不动，非 nil 覆盖
type ProfilePatch struct {
	AddressLine1         *string `json:"addressLine1" binding:"omitempty,max=500"`
	AddressLine2         *string `json:"addressLine2" binding:"omitempty,max=500"`
	City                 *string `json:"city" binding:"omitempty,max=100"`
	State                *string `json:"state" binding:"omitempty,max=100"`
	PostalCode           *string `json:"postalCode" binding:"omitempty,max=20"`
	Country              *string `json:"country" binding:"omitempty,max=100"`
	NationalID           *string `json:"nationalId" binding:"omitempty,max=50"`
	PassportNumber       *string `json:"passportNumber" binding:"omitempty,max=50"`
	Occupation           *string `json:"occupation" binding:"omitempty,max=100"`
	Employer             *string `json:"employer" binding:"omitempty,max=100"`
	Bio                  *string `json:"bio" binding:"omitempty,max=1000"`
	PreferredLanguage    *string `json:"preferredLanguage" binding:"omitempty,max=10"`
	Timezone             *string `json:"timezone" binding:"omitempty,max=50"`
	NotificationsEnabled *bool   `json:"notificationsEnabled"`
	MarketingEnabled     *bool   `json:"marketingEnabled"`
}

// Apply 把 patch 中显式出现的字段写到 profile 上
func (p *ProfilePatch) Apply(prof *UserProfile) {
	if p.AddressLine1 != nil {
		prof.AddressLine1 = *p.AddressLine1
	}
	if p.AddressLine2 != nil {
		prof.AddressLine2 = *p.AddressLine2
	}
	if p.City != nil {
		prof.City = *p.City
	}
	if p.State != nil {
		prof.State = *p.State
	}
	if p.PostalCode != nil {
		prof.PostalCode = *p.PostalCode
	}
	if p.Country != nil {
		prof.Country = *p.Country
	}
	if p.NationalID != nil {
		prof.NationalID = *p.NationalID
	}
	if p.PassportNumber != nil {
		prof.PassportNumber = *p.PassportNumber
	}
	if p.Occupation != nil {
		prof.Occupation = *p.Occupation
	}
	if p.Employer != nil {
		prof.Employer = *p.Employer
	}
	if p.Bio != nil {
		prof.Bio = *p.Bio
	}
	if p.PreferredLanguage != nil {
		prof.PreferredLanguage = *p.PreferredLanguage
	}
	if p.Timezone != nil {
		prof.Timezone = *p.Timezone
	}
	if p.NotificationsEnabled != nil {
		prof.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.MarketingEnabled != nil {
		prof.MarketingEnabled = *p.MarketingEnabled
	}
}

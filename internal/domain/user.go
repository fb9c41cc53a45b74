package domain

import "time"

type User struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	AuthID      string     `gorm:"uniqueIndex;size:36;not null" json:"authId"`
	Email       string     `gorm:"uniqueIndex;size:100;not null" json:"email"`
	FirstName   string     `gorm:"size:50;not null" json:"firstName"`
	LastName    string     `gorm:"size:50;not null" json:"lastName"`
	PhoneNumber string     `gorm:"index;size:20" json:"phoneNumber,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`

	Status        UserStatus `gorm:"size:20;not null" json:"status"`
	KycStatus     KycStatus  `gorm:"size:20;not null" json:"kycStatus"`
	AccountNumber string     `gorm:"size:20" json:"accountNumber"`
	Currency      string     `gorm:"size:3;not null;default:USD" json:"currency"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// 乐观锁版本号，repo 写入时做条件更新
	Version int64 `gorm:"not null;default:0" json:"-"`
}

func (User) TableName() string { return "users" }

// FullName 读时拼接，不落库
func (u *User) FullName() string { return u.FirstName + " " + u.LastName }

// UserView 对外读模型
type UserView struct {
	ID            string     `json:"id"`
	AuthID        string     `json:"authId"`
	Email         string     `json:"email"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	FullName      string     `json:"fullName"`
	PhoneNumber   string     `json:"phoneNumber,omitempty"`
	DateOfBirth   *time.Time `json:"dateOfBirth,omitempty"`
	Status        UserStatus `json:"status"`
	KycStatus     KycStatus  `json:"kycStatus"`
	AccountNumber string     `json:"accountNumber"`
	Currency      string     `json:"currency"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (u *User) View() *UserView {
	return &UserView{
		ID:            u.ID,
		AuthID:        u.AuthID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		FullName:      u.FullName(),
		PhoneNumber:   u.PhoneNumber,
		DateOfBirth:   u.DateOfBirth,
		Status:        u.Status,
		KycStatus:     u.KycStatus,
		AccountNumber: u.AccountNumber,
		Currency:      u.Currency,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

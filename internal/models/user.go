package models

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

type User struct {
	ID               string  `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name             string  `gorm:"not null" json:"name"`
	Role             string  `gorm:"type:varchar(20);not null;index" json:"role"`
	HolidayBalance   int     `gorm:"not null" json:"holidayBalance"`
	ExtraHoursWallet float64 `gorm:"not null" json:"extraHoursWallet"`
	SickDaysTaken    int     `gorm:"not null" json:"sickDaysTaken"`
}

// TableName pins the table name.
func (User) TableName() string {
	return "users"
}

// IsManager reports whether the user may adjudicate requests.
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

// IsValidRole checks a role value read from fixtures or input.
func IsValidRole(role string) bool {
	return role == RoleEmployee || role == RoleManager
}

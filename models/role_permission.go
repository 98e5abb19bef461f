package models

// RolePermission is the role_permissions join row. Bulk assignment and
// revocation write it directly instead of going through GORM's association
// helpers, so the delta queries and ON CONFLICT inserts stay explicit.
type RolePermission struct {
	RoleID       uint `json:"role_id" gorm:"primaryKey"`
	PermissionID uint `json:"permission_id" gorm:"primaryKey"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

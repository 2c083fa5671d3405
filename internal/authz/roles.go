package authz

// Закрытый набор ролей. Сравнение ролей — только через функции ниже,
// без разбросанных строковых сравнений по хендлерам.
const (
	RoleUser           = "USER"
	RoleAdminOwner     = "ADMIN_OWNER"
	RoleAdminDeveloper = "ADMIN_DEVELOPER"
)

// IsValid — роль из закрытого перечня.
func IsValid(role string) bool {
	switch role {
	case RoleUser, RoleAdminOwner, RoleAdminDeveloper:
		return true
	}
	return false
}

// IsAdmin — единственная проверка "админских" возможностей.
func IsAdmin(role string) bool {
	return role == RoleAdminOwner || role == RoleAdminDeveloper
}

package auth

const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   string // owner por defecto
}

// IsStaff: personal de clínica. Puede ver cualquier mascota y mover el estado de las citas.
func (c Claims) IsStaff() bool {
	return c.Role == RoleStaff
}

// Can indica si el caller puede operar sobre recursos de ownerID.
func (c Claims) Can(ownerID string) bool {
	return c.IsStaff() || (c.UserID != "" && c.UserID == ownerID)
}

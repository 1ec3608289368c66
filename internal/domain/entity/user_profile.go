package entity

// DefaultProfileID identificador fijo del único perfil persistido.
const DefaultProfileID = "USER-001"

// UserProfile identidad del usuario que opera la aplicación.
type UserProfile struct {
	ID     string
	Name   string
	Role   string
	Avatar string
}

// UserProfilePatch actualización parcial del perfil.
type UserProfilePatch struct {
	Name   *string
	Role   *string
	Avatar *string
}

// Apply mezcla el patch sobre el perfil.
func (p UserProfilePatch) Apply(u *UserProfile) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
}

package dto

// UserCreateRequest representa a requisição de cadastro de funcionário
type UserCreateRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	ContactNo string `json:"contact_no"`
	Role      string `json:"role" binding:"required,oneof=admin staff"`
}

// UserUpdateRequest representa a requisição de atualização de perfil
type UserUpdateRequest struct {
	Name      string `json:"name" binding:"required"`
	ContactNo string `json:"contact_no"`
	Bio       string `json:"bio"`
}

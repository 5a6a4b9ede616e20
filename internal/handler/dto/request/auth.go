package request

import "parkhub/internal/domain/user"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) ToDomain() (user.Credentials, error) {
	email, err := user.NewEmail(r.Email)
	if err != nil {
		return user.Credentials{}, err
	}
	password, err := user.NewPassword(r.Password)
	if err != nil {
		return user.Credentials{}, err
	}
	return user.NewCredentials(email, password), nil
}

type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Username   string `json:"username" binding:"required,max=64"`
	FullName   string `json:"full_name" binding:"omitempty,max=128"`
	Address    string `json:"address" binding:"omitempty,max=256"`
	PostalCode string `json:"postal_code" binding:"omitempty,max=16"`
}

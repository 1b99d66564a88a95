package types

type RegisterRequest struct {
	Name      string `json:"name" validate:"required"`
	Surname1  string `json:"surname_1" validate:"required"`
	Surname2  string `json:"surname_2"`
	Email     string `json:"email" validate:"required,email"`
	Telephone string `json:"telephone" validate:"required,es_mobile"`
	Password  string `json:"password" validate:"required,password_strength"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Surname1  *string `json:"surname_1"`
	Surname2  *string `json:"surname_2"`
	Telephone *string `json:"telephone"`
	Password  *string `json:"password"`
}

type CreateUserRequest struct {
	Name       string `json:"name" validate:"required"`
	Surname1   string `json:"surname_1" validate:"required"`
	Surname2   string `json:"surname_2"`
	Email      string `json:"email" validate:"required,email"`
	Telephone  string `json:"telephone" validate:"required,es_mobile"`
	Password   string `json:"password" validate:"required,password_strength"`
	UserTypeID uint   `json:"userTypeId" validate:"omitempty,oneof=1 2"`
}

type CreateNodeRequest struct {
	UUID   string `json:"uuid" validate:"required,uuid4"`
	UserID uint   `json:"idUser" validate:"required"`
}

type CreateMeasurementRequest struct {
	Value *float64 `json:"value" validate:"required"`
	LocX  *float64 `json:"LocX" validate:"required"`
	LocY  *float64 `json:"LocY" validate:"required"`
	GasID uint     `json:"gasId" validate:"required"`
	UUID  string   `json:"uuid" validate:"required"`
}

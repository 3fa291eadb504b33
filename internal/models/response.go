package models

// APIResponse is the envelope every API endpoint replies with
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PurchaseRequestBody is the JSON body of the course payment call
type PurchaseRequestBody struct {
	Courses []int64 `json:"courses"`
}

// LoginData is the payload of a successful login
type LoginData struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

package response

type SuccessResponse struct {
	Data interface{} `json:"data"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// FieldErrorResponse carries per-field validation messages alongside the
// top-level error.
type FieldErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

type TokenResponse struct {
	Token       string `json:"token"`
	UserID      uint   `json:"user_id"`
	Email       string `json:"email"`
	CompanyName string `json:"company_name,omitempty"`
	Role        string `json:"role"`
}

package handlers

type ErrorResponse struct {
	Error string `json:"error" example:"camera not found"`
}

type SuccessResponse struct {
	Message string `json:"message" example:"ok"`
}

package models

const (
	ViewModeGrid = "grid"
	ViewModeList = "list"

	// ViewModeCookie persists the grid/list preference between visits
	ViewModeCookie = "view_mode"
)

// ViewModeRequest toggles the catalog display preference
type ViewModeRequest struct {
	Mode string `json:"mode" binding:"required,viewmode" example:"list"`
}

// LeadRequest is the "call me back" / contact form
type LeadRequest struct {
	Name    string  `json:"name" binding:"required,min=2" example:"Иван"`
	Phone   string  `json:"phone" binding:"required,phone" example:"+7 900 123-45-67"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Message *string `json:"message"`
}

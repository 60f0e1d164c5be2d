package chatroomhandler

type CreateRoomBody struct {
	Name       string `json:"name"       binding:"required" example:"Ranked Squad"`
	MaxMembers int    `json:"maxMembers"                    example:"4"`
	CreatedBy  string `json:"createdBy"  binding:"required" example:"alice"`
} // @name CreateRoomRequest

type MembershipBody struct {
	Username string `json:"username" binding:"required" example:"alice"`
} // @name MembershipRequest

type ErrorResponse struct {
	Error string `json:"error"`
} // @name ErrorResponse

type StatusResponse struct {
	Status  string `json:"status"  example:"online"`
	Message string `json:"message" example:"Backend is running smoothly."`
} // @name StatusResponse

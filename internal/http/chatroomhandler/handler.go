package chatroomhandler

import (
	"errors"
	"net/http"

	"github.com/kshitijx07/gemaverse-v2/internal/rooms"
	"github.com/kshitijx07/gemaverse-v2/internal/services/chatroom"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc chatroom.IChatRoomService
}

func New(svc chatroom.IChatRoomService) *Handler { return &Handler{svc: svc} }

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/api/status", h.status)
	r.GET("/api/chat/rooms", h.list)
	r.GET("/api/chat/rooms/:roomId", h.info)
	r.POST("/api/chat/rooms", h.create)
	r.POST("/api/chat/rooms/:roomId/join", h.join)
	r.POST("/api/chat/rooms/:roomId/leave", h.leave)
}

// errorStatus maps domain errors to HTTP codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, rooms.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, rooms.ErrRoomFull):
		return http.StatusConflict
	case errors.Is(err, rooms.ErrInvalidCapacity), errors.Is(err, rooms.ErrMissingField):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// @Summary		Service status
// @Tags			Status
// @Success		200	{object}	StatusResponse
// @Router			/api/status [get]
func (h *Handler) status(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{Status: "online", Message: "Backend is running smoothly."})
}

// @Summary		List chat rooms
// @Description	Returns every room in creation order; the lobby comes first.
// @Tags			Rooms
// @Success		200	{array}	rooms.Summary
// @Router			/api/chat/rooms [get]
func (h *Handler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListRooms(c.Request.Context()))
}

// @Summary		Get chat room
// @Tags			Rooms
// @Param			roomId	path		string	true	"Room ID"	default(public)
// @Success		200		{object}	rooms.Summary
// @Failure		404		{object}	ErrorResponse
// @Router			/api/chat/rooms/{roomId} [get]
func (h *Handler) info(c *gin.Context) {
	room, err := h.svc.GetRoom(c.Request.Context(), c.Param("roomId"))
	if err != nil {
		c.JSON(errorStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, room)
}

// @Summary		Create a chat room
// @Description	Creates an empty room. maxMembers must be at least 2.
// @Tags			Rooms
// @Param			body	body		CreateRoomBody	true	"Room payload"
// @Success		200		{object}	rooms.Summary
// @Failure		400		{object}	ErrorResponse
// @Router			/api/chat/rooms [post]
func (h *Handler) create(ginCtx *gin.Context) {
	var body CreateRoomBody
	if err := ginCtx.ShouldBindJSON(&body); err != nil {
		ginCtx.JSON(http.StatusBadRequest, &ErrorResponse{Error: err.Error()})
		return
	}

	room, err := h.svc.CreateRoom(ginCtx.Request.Context(), body.Name, body.MaxMembers, body.CreatedBy)
	if err != nil {
		ginCtx.JSON(errorStatus(err), &ErrorResponse{Error: err.Error()})
		return
	}
	ginCtx.JSON(http.StatusOK, room)
}

// @Summary		Join a chat room
// @Description	Adds the user to the room. Re-joining as a member is accepted even when the room is full.
// @Tags			Rooms
// @Param			roomId	path		string			true	"Room ID"	default(public)
// @Param			body	body		MembershipBody	true	"Username payload"
// @Success		200		{object}	rooms.Summary
// @Failure		400		{object}	ErrorResponse
// @Failure		404		{object}	ErrorResponse
// @Failure		409		{object}	ErrorResponse
// @Router			/api/chat/rooms/{roomId}/join [post]
func (h *Handler) join(ginCtx *gin.Context) {
	var body MembershipBody
	if err := ginCtx.ShouldBindJSON(&body); err != nil {
		ginCtx.JSON(http.StatusBadRequest, &ErrorResponse{Error: err.Error()})
		return
	}

	room, err := h.svc.JoinRoom(ginCtx.Request.Context(), ginCtx.Param("roomId"), body.Username)
	if err != nil {
		ginCtx.JSON(errorStatus(err), &ErrorResponse{Error: err.Error()})
		return
	}
	ginCtx.JSON(http.StatusOK, room)
}

// @Summary		Leave a chat room
// @Description	Removes the user and announces a LEAVE to the room.
// @Tags			Rooms
// @Param			roomId	path	string			true	"Room ID"	default(public)
// @Param			body	body	MembershipBody	true	"Username payload"
// @Success		200
// @Failure		400	{object}	ErrorResponse
// @Failure		404	{object}	ErrorResponse
// @Router			/api/chat/rooms/{roomId}/leave [post]
func (h *Handler) leave(ginCtx *gin.Context) {
	var body MembershipBody
	if err := ginCtx.ShouldBindJSON(&body); err != nil {
		ginCtx.JSON(http.StatusBadRequest, &ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.svc.LeaveRoom(ginCtx.Request.Context(), ginCtx.Param("roomId"), body.Username); err != nil {
		ginCtx.JSON(errorStatus(err), &ErrorResponse{Error: err.Error()})
		return
	}
	ginCtx.Status(http.StatusOK)
}

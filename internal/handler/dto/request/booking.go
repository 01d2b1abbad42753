package request

type CreateBookingRequest struct {
	UserID   int64  `json:"user_id" binding:"required,gt=0"`
	RoomID   int64  `json:"room_id" binding:"required,gt=0"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

type RescheduleBookingRequest struct {
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

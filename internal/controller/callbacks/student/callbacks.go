package student

// ========================
// Callback Data Patterns
// ========================
// Форматы callback data экранов студента

const (
	SetFilter        = "filter:"       // filter:available
	ToggleShowBooked = "toggle_booked" // переключить показ занятых
	ToggleDate       = "toggle_date:"  // toggle_date:10.03.2024
	SelectDate       = "select_date:"  // select_date:10.03.2024 | select_date:all

	BookSlot    = "book_slot:"    // book_slot:slot_id
	SessionCard = "session_card:" // session_card:slot_id

	RefreshView   = "refresh_view"
	ScheduleImage = "schedule_image"
	MySessions    = "my_sessions"
	CloseView     = "close_view"
)

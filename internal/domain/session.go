package domain

// Session валидная сессия managed auth провайдера (Supabase)
type Session struct {
	UserID string
	Email  string
	Role   string
	Token  string
}

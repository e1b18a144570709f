package contextkeys

type contextKey string

// UserContextKey guarda o db.User autenticado da requisição.
const UserContextKey contextKey = "user"
const LocaleKey contextKey = "locale"
const CSRFTokenKey contextKey = "csrf_token"
const FlashKey contextKey = "flash"

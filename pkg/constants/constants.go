// pkg/constants/constants.go
package constants

//============== CACHE KEYS ==============

// Префиксы для ключей в Redis.
const (
	// Счетчик неудачных попыток входа.
	// Формат: login_attempts:<userID> -> int
	CacheKeyLoginAttempts = "login_attempts:%s"

	// Признак блокировки аккаунта после превышения попыток.
	// Формат: lockout:<userID> -> "locked"
	CacheKeyLockout = "lockout:%s"
)

//============== DATE FORMATS ==============

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Package redact маскирует персональные данные и секреты перед записью в лог.
package redact

import (
	"net/url"
	"strings"
)

// Email оставляет первые две руны локальной части и домен: "alice@x.org" -> "al***@x.org".
func Email(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := []rune(parts[0]), parts[1]
	if len(local) > 2 {
		return string(local[:2]) + "***@" + domain
	}

	return "***@" + domain
}

// DSN заменяет пароль в строке подключения (postgres://, mongodb://, redis://) на "xxxxx".
// Непарсящаяся строка целиком заменяется на "***".
func DSN(s string) string {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return "***"
	}

	return u.Redacted()
}

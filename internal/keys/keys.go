// keys реализует иерархические ключи сущностей и их websafe-представление.
//
// Ключ — это путь от корня к сущности: каждый элемент пути состоит из вида (kind)
// и либо строкового имени, либо числового id. Например, секция 42 пользователя "u1":
//
//	Profile("u1") / Section(42)
//
// Encode даёт непрозрачную URL-безопасную строку, Decode — обратное преобразование.
// Одинаковые ключи всегда кодируются в одну и ту же строку, разные — в разные.
package keys

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidKey — строка не является корректно закодированным ключом.
var ErrInvalidKey = errors.New("invalid key")

// Key — элемент иерархического ключа.
// Ровно одно из полей ID/Name задаёт идентичность внутри родителя.
type Key struct {
	Parent *Key
	Kind   string
	ID     int64
	Name   string
}

// New создаёт ключ с числовым id внутри parent (parent может быть nil).
func New(parent *Key, kind string, id int64) Key {
	return Key{Parent: cloneParent(parent), Kind: kind, ID: id}
}

// NewNamed создаёт ключ со строковым именем внутри parent (parent может быть nil).
func NewNamed(parent *Key, kind, name string) Key {
	return Key{Parent: cloneParent(parent), Kind: kind, Name: name}
}

// cloneParent копирует цепочку родителей, чтобы ключ не разделял память с вызывающим.
func cloneParent(parent *Key) *Key {
	if parent == nil {
		return nil
	}

	c := *parent
	c.Parent = cloneParent(parent.Parent)

	return &c
}

// Incomplete сообщает, что у ключа не задан ни id, ни имя.
func (k Key) Incomplete() bool {
	return k.ID == 0 && k.Name == ""
}

// Root возвращает корневой элемент пути.
func (k Key) Root() Key {
	for k.Parent != nil {
		k = *k.Parent
	}

	return k
}

// Equal сравнивает ключи по всему пути.
func (k Key) Equal(o Key) bool {
	if k.Kind != o.Kind || k.ID != o.ID || k.Name != o.Name {
		return false
	}

	if k.Parent == nil || o.Parent == nil {
		return k.Parent == nil && o.Parent == nil
	}

	return k.Parent.Equal(*o.Parent)
}

// path возвращает элементы ключа от корня к листу.
func (k Key) path() []Key {
	var out []Key
	for cur := &k; cur != nil; cur = cur.Parent {
		out = append(out, *cur)
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out
}

// String — человекочитаемый путь, только для логов: Profile("u1")/Section(42).
func (k Key) String() string {
	var b strings.Builder
	for i, el := range k.path() {
		if i > 0 {
			b.WriteByte('/')
		}

		b.WriteString(el.Kind)
		if el.Name != "" {
			b.WriteString("(" + strconv.Quote(el.Name) + ")")
		} else {
			b.WriteString("(" + strconv.FormatInt(el.ID, 10) + ")")
		}
	}

	return b.String()
}

// Encode сериализует ключ в websafe-строку.
//
// Формат до base64: элементы пути через '/', каждый элемент — "kind:i<id>" или
// "kind:n<name>"; kind и name экранируются query-escape, поэтому не содержат ни '/', ни ':'.
// Если заданы и ID, и Name, кодируется Name.
func (k Key) Encode() string {
	var b strings.Builder
	for i, el := range k.path() {
		if i > 0 {
			b.WriteByte('/')
		}

		b.WriteString(escape(el.Kind))
		b.WriteByte(':')
		if el.Name != "" {
			b.WriteByte('n')
			b.WriteString(escape(el.Name))
		} else {
			b.WriteByte('i')
			b.WriteString(strconv.FormatInt(el.ID, 10))
		}
	}

	return base64.RawURLEncoding.EncodeToString([]byte(b.String()))
}

// Decode восстанавливает ключ из websafe-строки.
// Ошибки: ErrInvalidKey (обёрнутая с деталями).
func Decode(s string) (Key, error) {
	const op = "keys/Decode"

	s = strings.TrimSpace(s)
	if s == "" {
		return Key{}, fmt.Errorf("%s: empty: %w", op, ErrInvalidKey)
	}

	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Key{}, fmt.Errorf("%s: %w: %v", op, ErrInvalidKey, err)
	}

	var parent *Key
	var cur Key
	for _, part := range strings.Split(string(raw), "/") {
		kindEsc, rest, ok := strings.Cut(part, ":")
		if !ok || kindEsc == "" || rest == "" {
			return Key{}, fmt.Errorf("%s: bad element %q: %w", op, part, ErrInvalidKey)
		}

		kind, err := unescape(kindEsc)
		if err != nil {
			return Key{}, fmt.Errorf("%s: %w: %v", op, ErrInvalidKey, err)
		}

		switch rest[0] {
		case 'i':
			id, err := strconv.ParseInt(rest[1:], 10, 64)
			if err != nil || id <= 0 {
				return Key{}, fmt.Errorf("%s: bad id %q: %w", op, rest[1:], ErrInvalidKey)
			}

			cur = Key{Parent: parent, Kind: kind, ID: id}
		case 'n':
			name, err := unescape(rest[1:])
			if err != nil || name == "" {
				return Key{}, fmt.Errorf("%s: bad name %q: %w", op, rest[1:], ErrInvalidKey)
			}

			cur = Key{Parent: parent, Kind: kind, Name: name}
		default:
			return Key{}, fmt.Errorf("%s: bad element %q: %w", op, part, ErrInvalidKey)
		}

		el := cur
		parent = &el
	}

	return cur, nil
}

func escape(s string) string { return url.QueryEscape(s) }

func unescape(s string) (string, error) { return url.QueryUnescape(s) }

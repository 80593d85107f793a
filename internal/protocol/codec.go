package protocol

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"wordgame-service/domain"
)

const (
	Delimiter       = "|"
	RecordSeparator = ';'
	FieldSeparator  = ':'
	ListSeparator   = ','
	BoardSeparator  = '/'
)

// Fields holds the key:value pairs of a message payload.
type Fields map[string]string

// Get returns the value for key, or "" when absent.
func (f Fields) Get(key string) string {
	return f[key]
}

// Int parses the value for key as a decimal integer.
func (f Fields) Int(key string) (int, error) {
	v, ok := f[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing field %q", domain.ErrInvalidInput, key)
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: field %q is not a number", domain.ErrInvalidInput, key)
	}
	return n, nil
}

// Bool parses the value for key with strconv.ParseBool.
func (f Fields) Bool(key string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(f[key]))
	if err != nil {
		return false, fmt.Errorf("%w: field %q is not a boolean", domain.ErrInvalidInput, key)
	}
	return b, nil
}

// Message is one decoded protocol line.
type Message struct {
	Kind   Kind
	Type   string
	Length int // declared payload length, -1 when not a number
	Fields Fields

	payload string
}

// LengthMatches reports whether the declared length equals the payload's character count.
// The length is advisory and never enforced by Decode.
func (m Message) LengthMatches() bool {
	return m.Length == utf8.RuneCountInString(m.payload)
}

// Decode parses a TYPE|LENGTH|PAYLOAD line. Lines with fewer than three segments
// yield ErrMalformedMessage. Unknown types decode with KindUnknown.
func Decode(line string) (Message, error) {
	line = strings.TrimRight(line, "\r\n")
	parts := strings.SplitN(line, Delimiter, 3)
	if len(parts) < 3 {
		return Message{}, fmt.Errorf("%w: expected 3 segments, got %d", domain.ErrMalformedMessage, len(parts))
	}

	length, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		length = -1
	}

	return Message{
		Kind:    ParseKind(parts[0]),
		Type:    parts[0],
		Length:  length,
		Fields:  DecodeFields(parts[2]),
		payload: parts[2],
	}, nil
}

// DecodeFields parses a payload into Fields. Empty records are skipped and the
// first occurrence of a key wins.
func DecodeFields(payload string) Fields {
	fields := make(Fields)
	for _, record := range SplitEscaped(payload, RecordSeparator) {
		if record == "" {
			continue
		}
		key, value, ok := strings.Cut(record, string(FieldSeparator))
		if !ok || key == "" {
			continue
		}
		if _, seen := fields[key]; seen {
			continue
		}
		fields[key] = Unescape(value)
	}
	return fields
}

// EncodeFields serializes fields as key:value records joined by ';', keys sorted.
func EncodeFields(fields Fields) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(RecordSeparator)
		}
		b.WriteString(k)
		b.WriteByte(FieldSeparator)
		b.WriteString(Escape(fields[k], RecordSeparator))
	}
	return b.String()
}

// Encode builds a full protocol line (without the trailing newline).
func Encode(kind Kind, fields Fields) string {
	payload := EncodeFields(fields)
	return kind.String() + Delimiter + strconv.Itoa(utf8.RuneCountInString(payload)) + Delimiter + payload
}

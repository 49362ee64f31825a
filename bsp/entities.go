package bsp

import (
	"regexp"
	"strings"
)

// KeyValue is one ordered key/value binding inside an entity block.
type KeyValue struct {
	Key, Value string
}

// Entity is an ordered set of key/value bindings for one `{ ... }`
// block in the entity lump. Duplicate keys within a block are
// rejected: the first binding wins and a warning is recorded by the
// decoder (spec.md §4.5).
type Entity struct {
	Pairs []KeyValue
}

// Get returns the value bound to key, if present.
func (e Entity) Get(key string) (string, bool) {
	for _, kv := range e.Pairs {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// ClassName is a convenience accessor for the "classname" key.
func (e Entity) ClassName() string {
	v, _ := e.Get("classname")
	return v
}

func (e *Entity) has(key string) bool {
	_, ok := e.Get(key)
	return ok
}

// set appends a binding, first-wins: a second binding for an existing
// key is dropped, with a warning, by the caller after it checks has().
func (e *Entity) set(key, value string) {
	e.Pairs = append(e.Pairs, KeyValue{Key: key, Value: value})
}

// MessageTokenKind distinguishes an ASCII text run from a single
// preserved raw byte inside a worldspawn "message" value.
type MessageTokenKind int

const (
	MessageText MessageTokenKind = iota
	MessageRawByte
)

// MessageToken is one element of a tokenized "message" value: either
// an ASCII text run (consecutive printable-ASCII bytes coalesced into
// one string) or a single byte outside [0x20, 0x7F].
type MessageToken struct {
	Kind MessageTokenKind
	Text string
	Byte byte
}

func isMessageASCII(b byte) bool {
	return b >= 0x20 && b <= 0x7F
}

// MessageTokens tokenizes a raw "message" value per spec.md §4.5: runs
// of bytes in [0x20, 0x7F] coalesce into one MessageText token; any
// other byte becomes its own MessageRawByte token.
func MessageTokens(raw string) []MessageToken {
	var tokens []MessageToken
	var text []byte
	flush := func() {
		if len(text) > 0 {
			tokens = append(tokens, MessageToken{Kind: MessageText, Text: string(text)})
			text = nil
		}
	}
	for i := 0; i < len(raw); i++ {
		b := raw[i]
		if isMessageASCII(b) {
			text = append(text, b)
			continue
		}
		flush()
		tokens = append(tokens, MessageToken{Kind: MessageRawByte, Byte: b})
	}
	flush()
	return tokens
}

// TokensToMessage reassembles a token list back into the raw string it
// was derived from.
func TokensToMessage(tokens []MessageToken) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.Kind == MessageRawByte {
			b.WriteByte(t.Byte)
		} else {
			b.WriteString(t.Text)
		}
	}
	return b.String()
}

// HasNonASCIIMessage reports whether e's "message" value (if any)
// contains a byte outside [0x20, 0x7F].
func (e Entity) HasNonASCIIMessage() bool {
	msg, ok := e.Get("message")
	if !ok {
		return false
	}
	for i := 0; i < len(msg); i++ {
		if !isMessageASCII(msg[i]) {
			return true
		}
	}
	return false
}

// MessageTokens tokenizes e's "message" value, or nil if absent.
func (e Entity) MessageTokens() []MessageToken {
	msg, ok := e.Get("message")
	if !ok {
		return nil
	}
	return MessageTokens(msg)
}

type entityParseState int

const (
	entityOutsideBlock entityParseState = iota
	entityInsideBlock
)

var entityKVPattern = regexp.MustCompile(`"([^"]*)"`)

// decodeEntities parses the ASCII entity lump into an ordered list of
// blocks, splits out the worldspawn block, and returns decode
// warnings (duplicate keys) alongside the result. A syntax error on a
// single line is a warning, not fatal — decoding continues with the
// rest of the lump (spec.md §4.9).
func decodeEntities(raw []byte) (worldspawn Entity, entities []Entity, warnings []Warning, err error) {
	text := strings.TrimRight(string(raw), "\x00")
	lines := strings.Split(text, "\n")

	state := entityOutsideBlock
	var current Entity

	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)

		if strings.HasSuffix(trimmed, "}") {
			entities = append(entities, current)
			current = Entity{}
			state = entityOutsideBlock
			continue
		}
		if trimmed == "{" {
			state = entityInsideBlock
			continue
		}
		if strings.HasPrefix(trimmed, "{") {
			// "{" adhering to the following token still opens a block.
			state = entityInsideBlock
			trimmed = strings.Replace(trimmed, "{", "", 1)
		}
		if trimmed == "" {
			continue
		}
		if state != entityInsideBlock {
			continue
		}

		matches := entityKVPattern.FindAllStringSubmatch(trimmed, -1)
		if len(matches) < 2 {
			warnings = append(warnings, Warning{Kind: KindBadEntitySyntax, Lump: LumpEntities, Msg: "malformed key/value line: " + line})
			continue
		}
		key, value := matches[0][1], matches[1][1]
		if current.has(key) {
			warnings = append(warnings, Warning{Kind: KindBadEntitySyntax, Lump: LumpEntities, Msg: "duplicate key " + key + ", keeping first binding"})
			continue
		}
		current.set(key, value)
	}

	for i, ent := range entities {
		if ent.ClassName() == "worldspawn" {
			worldspawn = ent
			entities = append(entities[:i], entities[i+1:]...)
			break
		}
	}

	return worldspawn, entities, warnings, nil
}

// encodeEntities serializes worldspawn first, then the remaining
// entities in their original order, NUL-terminated.
func encodeEntities(worldspawn Entity, entities []Entity) []byte {
	var lines []string
	writeBlock := func(e Entity) {
		lines = append(lines, "{")
		for _, kv := range e.Pairs {
			lines = append(lines, `"`+kv.Key+`" "`+kv.Value+`"`)
		}
		lines = append(lines, "}")
	}
	writeBlock(worldspawn)
	for _, e := range entities {
		writeBlock(e)
	}
	return []byte(strings.Join(lines, "\n") + "\n\x00")
}

package businesscentral

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Key is one segment of an OData record key
type Key interface {
	odataKey() string
}

type stringKey string

func (k stringKey) odataKey() string {
	return "'" + url.PathEscape(strings.ReplaceAll(string(k), "'", "''")) + "'"
}

type intKey int

func (k intKey) odataKey() string {
	return strconv.Itoa(int(k))
}

type guidKey uuid.UUID

func (k guidKey) odataKey() string {
	return uuid.UUID(k).String()
}

// StringKey quotes a string key, doubling embedded single quotes
func StringKey(s string) Key { return stringKey(s) }

// IntKey renders an integer key
func IntKey(n int) Key { return intKey(n) }

// GUIDKey renders an unquoted GUID key as used by the v2 API pages
func GUIDKey(id uuid.UUID) Key { return guidKey(id) }

// Path is an OData resource address relative to the configured base URL.
// Query modifiers keep the order in which they were added.
type Path struct {
	segments []string
	params   []param
}

type param struct {
	key   string
	value string
}

// Root starts a path at the service root
func Root() Path {
	return Path{}
}

// CompanyPath starts a path at Company('name')
func CompanyPath(company string) Path {
	return Root().Entity("Company", StringKey(company))
}

// Collection appends an entity set or navigation property
func (p Path) Collection(name string) Path {
	return p.with(name)
}

// Entity appends a single record addressed by one or more key parts
func (p Path) Entity(set string, keys ...Key) Path {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.odataKey()
	}
	return p.with(set + "(" + strings.Join(parts, ",") + ")")
}

// Select restricts the returned fields
func (p Path) Select(fields ...string) Path {
	return p.withParam("$select", strings.Join(fields, ","))
}

// Filter adds a $filter expression
func (p Path) Filter(expr string) Path {
	return p.withParam("$filter", expr)
}

// Expand inlines a navigation property, optionally projecting its fields
func (p Path) Expand(nav string, fields ...string) Path {
	if len(fields) > 0 {
		nav += "($select=" + strings.Join(fields, ",") + ")"
	}
	return p.withParam("$expand", nav)
}

// Param adds a plain query parameter such as company=X on codeunit endpoints
func (p Path) Param(key, value string) Path {
	return p.withParam(key, value)
}

// String renders the escaped path and query
func (p Path) String() string {
	var b strings.Builder
	for _, s := range p.segments {
		b.WriteByte('/')
		b.WriteString(s)
	}
	for i, prm := range p.params {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(prm.key)
		b.WriteByte('=')
		b.WriteString(escapeQueryValue(prm.value))
	}
	return b.String()
}

func (p Path) with(segment string) Path {
	segments := make([]string, len(p.segments), len(p.segments)+1)
	copy(segments, p.segments)
	return Path{segments: append(segments, segment), params: p.params}
}

func (p Path) withParam(key, value string) Path {
	params := make([]param, len(p.params), len(p.params)+1)
	copy(params, p.params)
	return Path{segments: p.segments, params: append(params, param{key: key, value: value})}
}

// escapeQueryValue escapes like url.QueryEscape but encodes spaces as %20,
// which Business Central requires inside $filter expressions.
func escapeQueryValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

// Eq renders an OData equality term with a quoted string literal
func Eq(field, value string) string {
	return field + " eq '" + strings.ReplaceAll(value, "'", "''") + "'"
}

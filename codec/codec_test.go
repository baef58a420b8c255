package codec

import (
	"errors"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNew_BuiltinsRegistered(t *testing.T) {
	c := New()

	for _, keyword := range []string{"path", "date", "datetime", "url"} {
		if _, ok := c.Handler(keyword); !ok {
			t.Errorf("expected built-in handler %q to be registered", keyword)
		}
	}
}

func TestRegister_Overwrites(t *testing.T) {
	c := New()

	c.RegisterFunc("date", func(payload string) (any, error) {
		return "replaced", nil
	}, nil, nil)

	got, err := c.Parse("@date 2024-01-15")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got != "replaced" {
		t.Errorf("Parse = %v, want the replacement handler's output", got)
	}
}

func TestRegister_EmptyKeywordIgnored(t *testing.T) {
	c := NewEmpty()
	c.Register(Handler{Keyword: ""})

	if len(c.Keywords()) != 0 {
		t.Error("expected empty keyword to be ignored")
	}
}

func TestParse_Scalars(t *testing.T) {
	c := New()

	tests := []struct {
		name  string
		input any
		want  any
	}{
		{"plain string", "plain string", "plain string"},
		{"int", 42, 42},
		{"bool", true, true},
		{"nil", nil, nil},
		{"empty string", "", ""},
		{"bare at", "@", "@"},
		{"at without space", "@notaparser", "@notaparser"},
		{"unknown keyword", "@unknown some data", "@unknown some data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Path(t *testing.T) {
	c := New()

	got, err := c.Parse("@path /home/user/file.txt")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	p, ok := got.(Path)
	if !ok {
		t.Fatalf("Parse = %T, want codec.Path", got)
	}
	if p.String() != "/home/user/file.txt" {
		t.Errorf("path = %q, want /home/user/file.txt", p)
	}
}

func TestParse_WindowsPathVerbatim(t *testing.T) {
	c := New()

	got, err := c.Parse(`@path C:\Users\test\file.txt`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got.(Path).String() != `C:\Users\test\file.txt` {
		t.Errorf("backslashes were not preserved: %q", got)
	}
}

func TestParse_Date(t *testing.T) {
	c := New()

	got, err := c.Parse("@date 2024-01-15")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := Date{Year: 2024, Month: time.January, Day: 15}
	if got != want {
		t.Errorf("Parse = %v, want %v", got, want)
	}
}

func TestParse_DateTime(t *testing.T) {
	c := New()

	got, err := c.Parse("@datetime 2024-01-15T10:30:00")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	dt, ok := got.(time.Time)
	if !ok {
		t.Fatalf("Parse = %T, want time.Time", got)
	}
	want := time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local)
	if !dt.Equal(want) {
		t.Errorf("Parse = %v, want %v", dt, want)
	}
}

func TestParse_DateTimeWithOffset(t *testing.T) {
	c := New()

	got, err := c.Parse("@datetime 2024-01-15T10:30:00+01:00")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	dt := got.(time.Time)
	_, offset := dt.Zone()
	if offset != 3600 {
		t.Errorf("offset = %d seconds, want 3600", offset)
	}
}

func TestParse_URL(t *testing.T) {
	c := New()

	got, err := c.Parse("@url https://example.com/path")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	u, ok := got.(*url.URL)
	if !ok {
		t.Fatalf("Parse = %T, want *url.URL", got)
	}
	if u.Scheme != "https" || u.Host != "example.com" || u.Path != "/path" {
		t.Errorf("unexpected URL decomposition: %#v", u)
	}
}

func TestParse_MalformedValues(t *testing.T) {
	c := New()

	tests := []struct {
		name  string
		input string
	}{
		{"bad date", "@date not-a-date"},
		{"bad datetime", "@datetime not-a-datetime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Parse(tt.input)
			if err == nil {
				t.Fatal("expected a format error")
			}
			var formatErr *FormatError
			if !errors.As(err, &formatErr) {
				t.Errorf("error = %T, want *FormatError", err)
			}
		})
	}
}

func TestParse_NestedContainers(t *testing.T) {
	c := New()

	input := map[string]any{
		"name":    "test",
		"created": "@date 2024-01-15",
		"items": []any{
			"plain",
			"@path /tmp",
			42,
			map[string]any{"when": "@date 2024-01-16"},
		},
	}

	got, err := c.Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := map[string]any{
		"name":    "test",
		"created": Date{Year: 2024, Month: time.January, Day: 15},
		"items": []any{
			"plain",
			Path("/tmp"),
			42,
			map[string]any{"when": Date{Year: 2024, Month: time.January, Day: 16}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ErrorInNestedContainer(t *testing.T) {
	c := New()

	_, err := c.Parse(map[string]any{"bad": []any{"@date nope"}})
	if err == nil {
		t.Fatal("expected nested parse error to propagate")
	}
}

func TestParse_EmptyContainers(t *testing.T) {
	c := New()

	got, err := c.Parse(map[string]any{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(got.(map[string]any)) != 0 {
		t.Error("expected empty map")
	}

	got, err = c.Parse([]any{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(got.([]any)) != 0 {
		t.Error("expected empty slice")
	}
}

func TestParse_StringSlice(t *testing.T) {
	c := New()

	got, err := c.Parse([]string{"@date 2024-01-15", "x"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []any{Date{Year: 2024, Month: time.January, Day: 15}, "x"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestSerialize_Scalars(t *testing.T) {
	c := New()

	tests := []struct {
		name  string
		input any
		want  any
	}{
		{"plain string", "plain", "plain"},
		{"int", 42, 42},
		{"nil", nil, nil},
		{"date", Date{Year: 2024, Month: time.January, Day: 15}, "@date 2024-01-15"},
		{"path", Path("/home/user/file.txt"), "@path /home/user/file.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Serialize(tt.input)
			if err != nil {
				t.Fatalf("Serialize failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Serialize(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSerialize_DateTimeTaggedAsDate(t *testing.T) {
	c := New()

	dt := time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local)
	got, err := c.Serialize(dt)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	// Type-driven serialization of a datetime tags "@date"; only an
	// explicit SerializeAs(v, "datetime") produces a "@datetime" tag.
	if got != "@date 2024-01-15T10:30:00" {
		t.Errorf("Serialize = %v, want @date 2024-01-15T10:30:00", got)
	}
}

func TestSerialize_URL(t *testing.T) {
	c := New()

	u, _ := url.Parse("https://example.com/path")
	got, err := c.Serialize(u)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if got != "@url https://example.com/path" {
		t.Errorf("Serialize = %v, want @url https://example.com/path", got)
	}
}

func TestSerializeAs_ExplicitKeyword(t *testing.T) {
	c := New()

	got, err := c.SerializeAs(time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local), "datetime")
	if err != nil {
		t.Fatalf("SerializeAs failed: %v", err)
	}
	if got != "@datetime 2024-01-15T10:30:00" {
		t.Errorf("SerializeAs = %v, want @datetime 2024-01-15T10:30:00", got)
	}
}

func TestSerializeAs_UnknownKeyword(t *testing.T) {
	c := New()

	_, err := c.SerializeAs("x", "nope")
	var unknownErr *UnknownKeywordError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("error = %v, want *UnknownKeywordError", err)
	}
}

func TestSerialize_UnknownTypePassesThrough(t *testing.T) {
	c := New()

	type opaque struct{ n int }
	v := opaque{n: 1}

	got, err := c.Serialize(v)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if got != v {
		t.Errorf("Serialize = %v, want the value unchanged", got)
	}
}

func TestSerialize_NestedContainers(t *testing.T) {
	c := New()

	input := map[string]any{
		"name": "test",
		"dates": []any{
			Date{Year: 2024, Month: time.January, Day: 15},
			Date{Year: 2024, Month: time.January, Day: 16},
		},
		"config": map[string]any{"path": Path("/tmp")},
	}

	got, err := c.Serialize(input)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	want := map[string]any{
		"name":   "test",
		"dates":  []any{"@date 2024-01-15", "@date 2024-01-16"},
		"config": map[string]any{"path": "@path /tmp"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Serialize mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeSerialized(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		keyword string
		want    string
	}{
		{"plain value", "2024-01-15", "date", "@date 2024-01-15"},
		{"already tagged", "@date 2024-01-15", "date", "@date 2024-01-15"},
		{"keyword without at", "date 2024-01-15", "date", "@date 2024-01-15"},
		{"different tag preserved", "@other 2024-01-15", "date", "@other 2024-01-15"},
		{"empty payload", "", "test", "@test "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encodeSerialized(tt.text, tt.keyword)
			if got != tt.want {
				t.Errorf("encodeSerialized(%q, %q) = %q, want %q", tt.text, tt.keyword, got, tt.want)
			}
		})
	}
}

func TestEncodeSerialized_Idempotent(t *testing.T) {
	once := encodeSerialized("2024-01-15", "date")
	twice := encodeSerialized(once, "date")
	if once != twice {
		t.Errorf("encoding is not idempotent: %q then %q", once, twice)
	}
}

func TestRoundTrip(t *testing.T) {
	c := New()

	tests := []struct {
		name  string
		token string
	}{
		{"date", "@date 2024-01-15"},
		{"path", "@path /home/user/file.txt"},
		{"url", "@url https://example.com/path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := c.Parse(tt.token)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			serialized, err := c.Serialize(parsed)
			if err != nil {
				t.Fatalf("Serialize failed: %v", err)
			}
			if serialized != tt.token {
				t.Errorf("round trip = %v, want %v", serialized, tt.token)
			}
		})
	}
}

func TestRoundTrip_DateTimeExplicitKeyword(t *testing.T) {
	c := New()

	tokens := []string{
		"@datetime 2024-01-15T10:30:00",
		"@datetime 2024-01-15T10:30:00+01:00",
		"@datetime 2024-01-15T10:30:00Z",
	}

	for _, token := range tokens {
		parsed, err := c.Parse(token)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", token, err)
		}
		serialized, err := c.SerializeAs(parsed, "datetime")
		if err != nil {
			t.Fatalf("SerializeAs failed: %v", err)
		}
		if serialized != token {
			t.Errorf("round trip = %v, want %v", serialized, token)
		}
	}
}

func TestRoundTrip_ComplexDocument(t *testing.T) {
	c := New()

	original := map[string]any{
		"name":  "test",
		"dates": []any{"@date 2024-01-15", "@date 2024-01-16"},
		"config": map[string]any{
			"path": "@path /tmp",
			"url":  "@url https://example.com",
		},
	}

	parsed, err := c.Parse(original)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	serialized, err := c.Serialize(parsed)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	if diff := cmp.Diff(original, serialized); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCustomHandler(t *testing.T) {
	c := New()
	c.RegisterFunc("upper",
		func(payload string) (any, error) { return strings.ToUpper(payload), nil },
		func(value any) (string, error) { return strings.ToLower(value.(string)), nil },
		nil,
	)

	got, err := c.Parse("@upper hello")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got != "HELLO" {
		t.Errorf("Parse = %v, want HELLO", got)
	}

	serialized, err := c.SerializeAs("HELLO", "upper")
	if err != nil {
		t.Fatalf("SerializeAs failed: %v", err)
	}
	if serialized != "@upper hello" {
		t.Errorf("SerializeAs = %v, want @upper hello", serialized)
	}
}

func TestCustomHandler_TypeDriven(t *testing.T) {
	type coordinate struct{ X, Y float64 }

	c := New()
	c.Register(Handler{
		Keyword: "coord",
		Parse: func(payload string) (any, error) {
			xs, ys, found := strings.Cut(payload, ",")
			if !found {
				return nil, errors.New("expected x,y")
			}
			x, err := strconv.ParseFloat(xs, 64)
			if err != nil {
				return nil, err
			}
			y, err := strconv.ParseFloat(ys, 64)
			if err != nil {
				return nil, err
			}
			return coordinate{X: x, Y: y}, nil
		},
		Serialize: func(value any) (string, error) {
			coord := value.(coordinate)
			return strconv.FormatFloat(coord.X, 'g', -1, 64) + "," +
				strconv.FormatFloat(coord.Y, 'g', -1, 64), nil
		},
		ValueType: reflect.TypeOf(coordinate{}),
	})

	parsed, err := c.Parse("@coord 1.5,2.5")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed != (coordinate{X: 1.5, Y: 2.5}) {
		t.Errorf("Parse = %v, want {1.5 2.5}", parsed)
	}

	serialized, err := c.Serialize(parsed)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if serialized != "@coord 1.5,2.5" {
		t.Errorf("Serialize = %v, want @coord 1.5,2.5", serialized)
	}
}

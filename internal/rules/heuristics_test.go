package rules

import "testing"

func TestFakeDataReturn(t *testing.T) {
	data := []byte("    return fake_data\n")
	if ms := FakeDataReturn(data); len(ms) != 1 {
		t.Fatalf("expected match, got %+v", ms)
	}
}

func TestFakeHashAsID(t *testing.T) {
	data := []byte("user_id = md5(str(time.time()))\n")
	if ms := FakeHashAsID(data); len(ms) != 1 {
		t.Fatalf("expected match, got %+v", ms)
	}
}

func TestMissingErrorHandling(t *testing.T) {
	cases := []string{
		"try:\n    risky()\nexcept Exception: pass\n",
		"try { risky(); } catch (e) {}\n",
		"resp := doCall() // ignore errors here\n",
	}
	for _, c := range cases {
		if ms := MissingErrorHandling([]byte(c)); len(ms) != 1 {
			t.Fatalf("expected match for %q, got %+v", c, ms)
		}
	}
}

func TestTodoMarkerUppercaseOnly(t *testing.T) {
	if ms := TodoMarker([]byte("// TODO: wire retries\n")); len(ms) != 1 {
		t.Fatalf("expected TODO match, got %+v", ms)
	}
	if ms := TodoMarker([]byte("// we still need to do this todo list of chores\n")); len(ms) != 0 {
		t.Fatalf("lowercase todo should not match, got %+v", ms)
	}
}

func TestOverdocTrivial(t *testing.T) {
	data := []byte(`// Validates the incoming request payload against the schema,
// normalizes all fields, checks authorization scopes and
// returns whether the caller may proceed.
return true
`)
	if ms := OverdocTrivial(data); len(ms) != 1 {
		t.Fatalf("expected match, got %+v", ms)
	}
}

func TestCommentOnlyBody(t *testing.T) {
	data := []byte("  # In a real implementation this would call the payment API\n")
	if ms := CommentOnlyBody(data); len(ms) != 1 {
		t.Fatalf("expected match, got %+v", ms)
	}
}

func TestEmptyCollectionReturn(t *testing.T) {
	data := []byte("  return []  # placeholder until the index is built\n")
	if ms := EmptyCollectionReturn(data); len(ms) != 1 {
		t.Fatalf("expected match, got %+v", ms)
	}
}

func TestPlaceholderLiteral(t *testing.T) {
	data := []byte(`host = "your-server-here"` + "\n")
	if ms := PlaceholderLiteral(data); len(ms) != 1 {
		t.Fatalf("expected match, got %+v", ms)
	}
}

func TestMockWithoutReal(t *testing.T) {
	data := []byte("client = mock_client()  # swap for boto3 later\n")
	if ms := MockWithoutReal(data); len(ms) != 1 {
		t.Fatalf("expected match, got %+v", ms)
	}
}

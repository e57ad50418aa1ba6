package rules

import "testing"

func TestUndocumentedStub(t *testing.T) {
	data := []byte("def handler(req):\n    pass\n")
	ms := UndocumentedStub(data)
	if len(ms) != 1 || ms[0].Line != 2 {
		t.Fatalf("expected stub at line 2, got %+v", ms)
	}
}

func TestDocumentedStubNotFlagged(t *testing.T) {
	data := []byte("def handler(req):\n    # intentionally empty until the queue lands\n    pass\n")
	if ms := UndocumentedStub(data); len(ms) != 0 {
		t.Fatalf("documented stub should not match, got %+v", ms)
	}
}

func TestEllipsisStub(t *testing.T) {
	data := []byte("class Store:\n    ...\n")
	if ms := UndocumentedStub(data); len(ms) != 1 {
		t.Fatalf("expected ellipsis stub, got %+v", ms)
	}
}
